package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/csv2json/internal/convert"
	"github.com/JonMunkholm/csv2json/internal/core"
)

func TestRun_StdinToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, strings.NewReader(core.Sample()), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	want, err := convert.Convert(core.Sample())
	require.NoError(t, err)
	assert.Equal(t, want+"\n", stdout.String())
}

func TestRun_FileWritesNextToInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(in, []byte("name,active\nAda,true\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{in}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())

	got, err := os.ReadFile(filepath.Join(dir, "people.json"))
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"name\": \"Ada\",\n    \"active\": true\n  }\n]\n", string(got))
}

func TestRun_ExplicitOutputAndHTML(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.html")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-html", "-o", out, "-"}, strings.NewReader("n\n1"), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), `<span class="json-number">1</span>`)
}

func TestRun_ConversionError(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, strings.NewReader("a,b\n1"), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "row 2 has 1 columns, expected 2 (CSV003)")
}

func TestRun_EncodedInputUnderLimit(t *testing.T) {
	t.Setenv("CONVERT_MAX_INPUT_SIZE", "20")

	var stdout, stderr bytes.Buffer
	in := "n\n" + strings.Repeat("\xE9", 15)
	code := run([]string{"-encoding", "latin1"}, strings.NewReader(in), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), `"n": "`+strings.Repeat("é", 15)+`"`)
}

func TestRun_UnsupportedFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "data.xlsx")
	require.NoError(t, os.WriteFile(in, []byte("a\n1"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{in}, nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "FILE002")
}

func TestRun_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{filepath.Join(t.TempDir(), "missing.csv")}, nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "open input")
}

func TestRun_TooManyArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"a.csv", "b.csv"}, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage:")
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("dir", "x.json"), outputPath(filepath.Join("dir", "x.csv"), false))
	assert.Equal(t, filepath.Join("dir", "x.html"), outputPath(filepath.Join("dir", "x.csv"), true))
}
