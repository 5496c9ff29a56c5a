package convert

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Indent is the per-level indentation of the rendered JSON.
const Indent = "  "

// Convert parses csv and renders it as an indented JSON array of objects.
func Convert(csv string) (string, error) {
	doc, err := Parse(csv)
	if err != nil {
		return "", err
	}
	return Marshal(doc)
}

// Parse validates csv and builds one Record per data row.
// It fails on the first problem and never returns a partial Document.
func Parse(csv string) (Document, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil, &Error{Kind: EmptyInput}
	}

	lines := strings.Split(csv, "\n")
	if len(lines) < 2 {
		return nil, &Error{Kind: InsufficientRows}
	}

	header := splitLine(lines[0])

	doc := make(Document, 0, len(lines)-1)
	for i, line := range lines[1:] {
		cells := splitLine(line)
		if len(cells) != len(header) {
			return nil, &Error{
				Kind: ColumnMismatch,
				Row:  i + 2,
				Got:  len(cells),
				Want: len(header),
			}
		}

		rec := make(Record, 0, len(header))
		for j, name := range header {
			rec.Set(name, Coerce(cells[j]))
		}
		doc = append(doc, rec)
	}

	return doc, nil
}

// Marshal renders doc as a JSON array indented with two spaces.
// No trailing newline is written.
func Marshal(doc Document) (string, error) {
	if doc == nil {
		doc = Document{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// splitLine splits on every comma and trims each cell.
func splitLine(line string) []string {
	cells := strings.Split(line, ",")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}
