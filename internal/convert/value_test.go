package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		// Numbers
		{name: "integer", input: "42", want: Number(42)},
		{name: "decimal", input: "3.14", want: Number(3.14)},
		{name: "negative", input: "-17", want: Number(-17)},
		{name: "explicit plus", input: "+5", want: Number(5)},
		{name: "leading decimal point", input: ".5", want: Number(0.5)},
		{name: "trailing decimal point", input: "5.", want: Number(5)},
		{name: "scientific", input: "1.5e3", want: Number(1500)},
		{name: "leading zeros", input: "007", want: Number(7)},
		{name: "zero", input: "0", want: Number(0)},
		{name: "negative zero", input: "-0", want: Number(0)},
		{name: "surrounding whitespace", input: "  12  ", want: Number(12)},

		// Booleans
		{name: "true lower", input: "true", want: Bool(true)},
		{name: "true upper", input: "TRUE", want: Bool(true)},
		{name: "false mixed", input: "False", want: Bool(false)},

		// Nulls
		{name: "empty", input: "", want: Null},
		{name: "blank", input: "   ", want: Null},
		{name: "null lower", input: "null", want: Null},
		{name: "null upper", input: "NULL", want: Null},

		// Strings
		{name: "plain text", input: "New York", want: String("New York")},
		{name: "infinity", input: "Infinity", want: String("Infinity")},
		{name: "nan", input: "NaN", want: String("NaN")},
		{name: "hex literal", input: "0x1F", want: String("0x1F")},
		{name: "digit separator", input: "1_000", want: String("1_000")},
		{name: "overflow", input: "1e400", want: String("1e400")},
		{name: "number with suffix", input: "12px", want: String("12px")},
		{name: "yes is not boolean", input: "yes", want: String("yes")},
		{name: "lone sign", input: "-", want: String("-")},
		{name: "lone dot", input: ".", want: String(".")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.input))
		})
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "integer", value: Number(42), want: "42"},
		{name: "decimal", value: Number(3.14), want: "3.14"},
		{name: "large", value: Number(1e21), want: "1e+21"},
		{name: "true", value: Bool(true), want: "true"},
		{name: "false", value: Bool(false), want: "false"},
		{name: "null", value: Null, want: "null"},
		{name: "string", value: String("New York"), want: `"New York"`},
		{name: "string with markup", value: String("a<b"), want: `"a<b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestCoerce_EmptyNeverZero(t *testing.T) {
	v := Coerce("")
	assert.Equal(t, KindNull, v.Kind)
	assert.NotEqual(t, Number(0), v)
}

func TestValueKind_String(t *testing.T) {
	assert.Equal(t, "number", KindNumber.String())
	assert.Equal(t, "boolean", KindBool.String())
	assert.Equal(t, "null", KindNull.String())
	assert.Equal(t, "string", KindString.String())
}
