// Package jsontext provides an order-preserving JSON value model and its
// canonical text serialization.
//
// Fixtures are compared against program output as serialized text, not as
// abstract values. The model therefore keeps everything that affects the
// text of a parsed document:
//
//   - object members stay in document order; a repeated key keeps the
//     first position and the last value
//   - numbers keep their literal spelling ("1.0" is not "1")
//   - strings are re-encoded with the minimal escape set
//
// This package imports nothing internal.
package jsontext
