package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/csv2json/internal/core"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestPage_EscapesInput(t *testing.T) {
	html := renderString(t, Page("a,b\n<script>alert(1)</script>,x", 1024))

	assert.Contains(t, html, `data-max-bytes="1024"`)
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, html, "<script>alert(1)")
	assert.Contains(t, html, `<script src="/static/app.js" defer></script>`)
}

func TestOutputPartial(t *testing.T) {
	res := &core.Result{
		ID:      `id"x`,
		HTML:    `<span class="json-number">1</span>`,
		Records: 1,
		Columns: []string{"a", "b"},
	}
	html := renderString(t, OutputPartial(res))

	assert.Contains(t, html, `data-id="id&#34;x"`)
	assert.Contains(t, html, `data-records="1"`)
	assert.Contains(t, html, "1 record, 2 columns")
	assert.Contains(t, html, `<pre id="json-output" class="json"><span class="json-number">1</span></pre>`)
}

func TestOutputPartial_PluralRecords(t *testing.T) {
	html := renderString(t, OutputPartial(&core.Result{Records: 3, Columns: []string{"a"}}))
	assert.Contains(t, html, "3 records, 1 columns")
}

func TestErrorAlert(t *testing.T) {
	html := renderString(t, ErrorAlert("Bad <input>", "Fix it & retry", "CSV002"))

	assert.Contains(t, html, `data-code="CSV002"`)
	assert.Contains(t, html, `<p class="alert-message">Bad &lt;input&gt;</p>`)
	assert.Contains(t, html, `<p class="alert-action">Fix it &amp; retry</p>`)
	assert.Contains(t, html, "Code: CSV002")
}

func TestErrorAlert_NoAction(t *testing.T) {
	html := renderString(t, ErrorAlert("Something went wrong", "", "ERR000"))
	assert.NotContains(t, html, "alert-action")
}
