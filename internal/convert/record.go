package convert

import "bytes"

// Field is one named value of a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered mapping from header name to value. Keys are unique:
// setting an existing name replaces its value and keeps its position.
type Record []Field

// Set assigns name to v.
func (r *Record) Set(name string, v Value) {
	for i := range *r {
		if (*r)[i].Name == name {
			(*r)[i].Value = v
			return
		}
	}
	*r = append(*r, Field{Name: name, Value: v})
}

// Names returns the keys in output order.
func (r Record) Names() []string {
	names := make([]string, len(r))
	for i, f := range r {
		names[i] = f.Name
	}
	return names
}

// MarshalJSON writes the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeString(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Document is the converted output: one Record per data row.
type Document []Record
