package docmark

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tsawler/docmark/internal/testdocs"
	"github.com/tsawler/docmark/model"
)

// countTables parses md as GitHub-flavoured Markdown and returns the number
// of tables found.
func countTables(t *testing.T, md string) int {
	t.Helper()

	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader([]byte(md)))
	n := 0
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && node.Kind() == east.KindTable {
			n++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return n
}

type stubRecognizer struct {
	text  string
	calls int
}

func (r *stubRecognizer) Recognize(img image.Image) (string, error) {
	r.calls++
	return r.text, nil
}

var salesBook = testdocs.Workbook{
	Sheets: []testdocs.Sheet{
		{Name: "Summary", Rows: [][]string{
			{"Region", "Total"},
			{"North", "10"},
			{"South|East", "7"},
		}},
		{Name: "Empty"},
	},
}

func TestConverter_IsImmutable(t *testing.T) {
	base := New()
	derived := base.WithContents(true).WithDPI(150).WithMinTextLength(10)

	assert.False(t, base.options.contents)
	assert.Equal(t, float64(300), base.options.dpi)
	assert.Equal(t, 50, base.options.minTextLength)

	assert.True(t, derived.options.contents)
	assert.Equal(t, float64(150), derived.options.dpi)
	assert.Equal(t, 10, derived.options.minTextLength)

	// Out-of-range values keep the previous setting.
	assert.Equal(t, float64(150), derived.WithDPI(0).options.dpi)
	assert.Equal(t, 10, derived.WithMinTextLength(-1).options.minTextLength)
}

func TestConvert_Workbook(t *testing.T) {
	path := testdocs.Write(t, t.TempDir(), "q3_sales-report.xlsx", salesBook)

	md, tally, err := New().WithContents(true).Convert(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "# Q3 Sales Report\n\n*Converted from: q3_sales-report.xlsx*\n\n"), md)
	assert.Contains(t, md, "## Contents\n\n- [Summary](#summary)\n- [Empty](#empty)")
	assert.Contains(t, md, "## Summary\n\n| Region | Total |\n| --- | --- |\n| North | 10 |\n| South\\|East | 7 |")
	assert.Contains(t, md, "## Empty\n\n*Empty sheet*\n\n---")
	assert.Equal(t, 2, tally[model.Table])
	assert.Equal(t, 1, countTables(t, md))
}

func TestConvert_Deck(t *testing.T) {
	deck := testdocs.Deck{
		Title:   "Quarterly Review",
		Creator: "Ann",
		Slides: []testdocs.Slide{
			{Title: "Intro", Shapes: []testdocs.Shape{{Text: "Welcome"}}, Notes: "Say hi"},
			{Shapes: []testdocs.Shape{{Table: [][]string{{"A", "B"}, {"1", "2"}}}}},
			{},
		},
	}
	path := testdocs.Write(t, t.TempDir(), "review.pptx", deck)

	var progress bytes.Buffer
	md, tally, err := New().WithProgress(&progress).Convert(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "# Quarterly Review\n\n*Converted from: review.pptx*\n\n*Author: Ann*\n\n---"), md)
	assert.Contains(t, md, "## Slide 1\n\n### Intro\n\nWelcome\n\n**Speaker Notes:**\n\n_Say hi_\n\n---")
	assert.Contains(t, md, "## Slide 2\n\n| A | B |\n| --- | --- |\n| 1 | 2 |\n\n---")
	assert.NotContains(t, md, "## Slide 3")
	assert.Equal(t, 3, tally[model.Direct])
	assert.Equal(t, 1, countTables(t, md))
	assert.Contains(t, progress.String(), "  Processing slide 3/3... (direct)\n")
}

func TestConvert_PDF(t *testing.T) {
	doc := testdocs.PDF{
		Title:  "Field Guide",
		Author: "Bo",
		Pages: []string{
			"Migration routes of shorebirds follow the coastline for several thousand kilometres.",
			"",
		},
	}
	path := testdocs.Write(t, t.TempDir(), "guide.pdf", doc)

	t.Run("without recognition", func(t *testing.T) {
		md, tally, err := New().Convert(path)
		require.NoError(t, err)

		assert.Contains(t, md, "# Field Guide")
		assert.Contains(t, md, "*Author: Bo*")
		assert.Contains(t, md, "## Page 1")
		assert.Contains(t, md, "shorebirds")
		assert.NotContains(t, md, "## Page 2")
		assert.Equal(t, "direct: 1, recognized: 0, table: 0, none: 1", tally.String())
	})

	t.Run("with recognition", func(t *testing.T) {
		rec := &stubRecognizer{text: "scanned words"}
		md, tally, err := New().WithRecognizer(rec).WithDPI(72).Convert(path)
		require.NoError(t, err)

		assert.Contains(t, md, "## Page 2\n\nscanned words\n\n---")
		assert.Equal(t, 1, rec.calls)
		assert.Equal(t, 1, tally[model.Recognized])
	})
}

func TestConvert_InvalidInput(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"unsupported extension", testdocs.Write(t, dir, "notes.docx", testdocs.Raw("PK"))},
		{"missing file", filepath.Join(dir, "missing.pdf")},
		{"directory", func() string {
			p := filepath.Join(dir, "folder.pdf")
			require.NoError(t, os.Mkdir(p, 0o755))
			return p
		}()},
		{"content mismatch", testdocs.Write(t, dir, "book.pdf", salesBook)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := New().Convert(tt.path)
			require.Error(t, err)
			assert.True(t, goerrors.IsCategory(err, goerrors.CategoryValidation), err.Error())
			assert.Equal(t, CodeInvalidInput, ErrorCode(err))
		})
	}
}

func TestConvert_OpenFailed(t *testing.T) {
	path := testdocs.Write(t, t.TempDir(), "corrupt.xlsx", testdocs.Raw("this is not a zip archive"))

	_, _, err := New().Convert(path)
	require.Error(t, err)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryCommand))
	assert.Equal(t, CodeOpenFailed, ErrorCode(err))
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := testdocs.Write(t, dir, "Sales.XLSX", salesBook)

	var progress bytes.Buffer
	out, tally, err := New().WithProgress(&progress).ConvertFile(in, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Sales.md"), out)
	assert.Equal(t, 2, tally.Total())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Sales\n"))
	assert.True(t, strings.HasSuffix(string(data), "---\n"))

	assert.Contains(t, progress.String(), "Converted: Sales.XLSX -> Sales.md\n")
	assert.Contains(t, progress.String(), "  Sheets: 2 (direct: 0, recognized: 0, table: 2, none: 0)\n")
}

func TestConvertFile_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	in := testdocs.Write(t, dir, "book.xlsx", salesBook)
	want := filepath.Join(dir, "out", "book.markdown")
	require.NoError(t, os.Mkdir(filepath.Dir(want), 0o755))

	out, _, err := New().ConvertFile(in, want)
	require.NoError(t, err)
	assert.Equal(t, want, out)
	assert.FileExists(t, want)
}

func TestConvertFile_WriteFailed(t *testing.T) {
	dir := t.TempDir()
	in := testdocs.Write(t, dir, "book.xlsx", salesBook)

	_, _, err := New().ConvertFile(in, filepath.Join(dir, "no-such-dir", "book.md"))
	require.Error(t, err)
	assert.Equal(t, CodeWriteFailed, ErrorCode(err))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "docs/report.md", OutputPath("docs/report.pdf"))
	assert.Equal(t, "Deck.md", OutputPath("Deck.PPTX"))
	assert.Equal(t, "archive.v2.md", OutputPath("archive.v2.xlsx"))
}
