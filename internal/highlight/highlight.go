// Package highlight decorates serialized JSON with HTML spans for display.
//
// It works on text only and never reparses the document, so it can render
// anything the converter produced. Stripping the tags and unescaping the
// entities yields the original input.
package highlight

import (
	"regexp"
	"strings"
)

// CSS classes applied to each token type.
const (
	ClassKey     = "json-key"
	ClassString  = "json-string"
	ClassNumber  = "json-number"
	ClassBoolean = "json-boolean"
	ClassNull    = "json-null"
)

// escaper leaves quotes alone so string tokens still match.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// tokenRegex matches quoted strings (with an optional trailing colon for
// object keys), literals and numbers. Strings are tried first so digits
// inside them are never treated as numbers.
var tokenRegex = regexp.MustCompile(`"(\\u[a-fA-F0-9]{4}|\\[^u]|[^\\"])*"(\s*:)?|\b(true|false|null)\b|-?\d+(\.\d*)?([eE][+-]?\d+)?`)

// HTML returns json with every token wrapped in a classed <span>.
// Markup characters in the input are escaped.
func HTML(json string) string {
	escaped := escaper.Replace(json)

	return tokenRegex.ReplaceAllStringFunc(escaped, func(tok string) string {
		switch {
		case strings.HasPrefix(tok, `"`):
			if body, ok := strings.CutSuffix(tok, ":"); ok {
				trimmed := strings.TrimRight(body, " \t\r\n")
				gap := body[len(trimmed):]
				return span(ClassKey, trimmed) + gap + ":"
			}
			return span(ClassString, tok)
		case tok == "true" || tok == "false":
			return span(ClassBoolean, tok)
		case tok == "null":
			return span(ClassNull, tok)
		default:
			return span(ClassNumber, tok)
		}
	})
}

func span(class, text string) string {
	return `<span class="` + class + `">` + text + `</span>`
}
