// Package report renders the outcome of a harness run for the console.
//
// Text output follows the fail-fast contract: a passing run prints one
// summary line on stdout, a failing run prints one diagnostic line for the
// failing case on stderr. Lines are localized through golang.org/x/text
// message catalogs (English and Brazilian Portuguese).
//
// Summarize produces the machine-readable form used by --format json.
package report
