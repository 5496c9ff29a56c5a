// Package convert turns comma-separated text into a pretty-printed JSON array.
//
// The parser is deliberately naive. Lines are split on '\n' and cells on ','
// with surrounding whitespace trimmed. Quoted fields, escaped delimiters and
// embedded newlines are not recognised.
//
// Each cell is coerced to the most specific JSON type it reads as:
//
//  1. number, when the cell is a non-empty decimal numeric literal
//  2. boolean, for "true" / "false" in any case
//  3. null, for "null" in any case or an empty cell
//  4. string, otherwise
//
// Conversion either succeeds completely or fails with an [*Error] whose
// [Kind] identifies the failed validation step:
//
//	out, err := convert.Convert("name,age\nAda,36")
//	if errors.Is(err, convert.ErrColumnMismatch) {
//	    // show err.Error() to the user
//	}
//
// The package holds no state; every function is safe for concurrent use.
package convert
