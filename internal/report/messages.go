package report

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/roach88/casecheck/internal/harness"
)

// Message keys. The English text doubles as the key.
const (
	msgAllPassed  = "%[1]s of %[2]s passed"
	msgCaseFailed = "case #%[1]s failed: expected=%[2]s, actual=%[3]s"
	msgCaseError  = "case #%[1]s error: %[2]s"
	msgCaseDiff   = "case #%[1]s diff: %[2]s"

	msgNonZeroExit   = "process exited with code %[1]s. stderr: %[2]s"
	msgInvalidOutput = "output is not valid JSON: %[1]s"
)

// SupportedLanguages lists the languages with a complete catalog.
// The first entry is the fallback.
var SupportedLanguages = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var (
	messages = newCatalog()
	matcher  = language.NewMatcher(SupportedLanguages)
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	set := func(tag language.Tag, key, msg string) {
		if err := b.SetString(tag, key, msg); err != nil {
			panic(fmt.Sprintf("report: invalid catalog entry %q: %v", key, err))
		}
	}

	set(language.English, msgAllPassed, msgAllPassed)
	set(language.English, msgCaseFailed, msgCaseFailed)
	set(language.English, msgCaseError, msgCaseError)
	set(language.English, msgCaseDiff, msgCaseDiff)
	set(language.English, msgNonZeroExit, msgNonZeroExit)
	set(language.English, msgInvalidOutput, msgInvalidOutput)

	set(language.BrazilianPortuguese, msgAllPassed, "Todos os %[2]s casos passaram.")
	set(language.BrazilianPortuguese, msgCaseFailed, "Case #%[1]s falhou. Esperado=%[2]s, Obtido=%[3]s")
	set(language.BrazilianPortuguese, msgCaseError, "Case #%[1]s erro: %[2]s")
	set(language.BrazilianPortuguese, msgCaseDiff, "Case #%[1]s diferença: %[2]s")
	set(language.BrazilianPortuguese, msgNonZeroExit, "Processo saiu com código %[1]s. STDERR: %[2]s")
	set(language.BrazilianPortuguese, msgInvalidOutput, "Saída não é JSON válido: %[1]s")

	return b
}

// Printer renders report lines in one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter returns a Printer for the BCP 47 tag lang ("en", "pt-BR", ...).
// An empty lang selects English. A tag that matches no supported language
// is an error.
func NewPrinter(lang string) (*Printer, error) {
	tag := language.English
	if lang != "" {
		requested, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", lang, err)
		}
		_, idx, confidence := matcher.Match(requested)
		if confidence == language.No {
			return nil, fmt.Errorf("unsupported language %q: must be one of %v", lang, SupportedLanguages)
		}
		tag = SupportedLanguages[idx]
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(messages))}, nil
}

// Language returns the matched language.
func (p *Printer) Language() language.Tag {
	return p.tag
}

// Counts are passed as strings so the printer does not insert locale digit
// grouping ("1,000").

// AllPassed is the success summary.
func (p *Printer) AllPassed(passed, total int) string {
	return p.p.Sprintf(msgAllPassed, strconv.Itoa(passed), strconv.Itoa(total))
}

// CaseFailed is the diagnostic for a mismatching case.
func (p *Printer) CaseFailed(index int, expected, actual string) string {
	return p.p.Sprintf(msgCaseFailed, strconv.Itoa(index), expected, actual)
}

// CaseError is the diagnostic for every other failure kind.
func (p *Printer) CaseError(index int, detail string) string {
	return p.p.Sprintf(msgCaseError, strconv.Itoa(index), detail)
}

// CaseDiff is the verbose diff line for a mismatching case.
func (p *Printer) CaseDiff(index int, diff string) string {
	return p.p.Sprintf(msgCaseDiff, strconv.Itoa(index), diff)
}

// Detail describes a case error in the printer's language. Errors without a
// translation keep their own message.
func (p *Printer) Detail(err error) string {
	var (
		exitErr *harness.NonZeroExitError
		invalid *harness.InvalidOutputError
	)
	switch {
	case errors.As(err, &exitErr):
		return p.p.Sprintf(msgNonZeroExit, strconv.Itoa(exitErr.Code), exitErr.Stderr)
	case errors.As(err, &invalid):
		return p.p.Sprintf(msgInvalidOutput, invalid.Stdout)
	default:
		return err.Error()
	}
}
