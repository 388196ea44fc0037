package docmark

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/docmark/model"
)

type unitFunc func(u model.Unit) model.Result

func (f unitFunc) Extract(u model.Unit) model.Result { return f(u) }

// texts returns an extractor that yields texts[i] for unit i+1, tagged
// direct, or none when the text is empty.
func texts(texts ...string) unitFunc {
	return func(u model.Unit) model.Result {
		t := texts[u.Index()]
		if t == "" {
			return model.Result{Strategy: model.None}
		}
		return model.Result{Text: t, Strategy: model.Direct}
	}
}

func TestAssembleDocument_SingleUnit(t *testing.T) {
	meta := model.Metadata{SourceName: "notes.pdf"}
	units := model.NumberedUnits("Page", 1)

	md, tally := AssembleDocument(meta, units, texts("Hello   world"), AssembleOptions{Noun: "Page"})

	assert.Equal(t, "# Notes\n\n*Converted from: notes.pdf*\n\n---\n\nHello world\n\n---", md)
	assert.NotContains(t, md, "## Page 1")
	assert.Equal(t, 1, tally[model.Direct])
}

func TestAssembleDocument_TwoUnits(t *testing.T) {
	meta := model.Metadata{Title: " Deck ", SourceName: "deck.pptx", Author: "Ann"}
	units := model.NumberedUnits("Slide", 2)

	md, tally := AssembleDocument(meta, units, texts("first", "second"), AssembleOptions{Noun: "Slide"})

	want := "# Deck\n\n*Converted from: deck.pptx*\n\n*Author: Ann*\n\n---\n\n" +
		"## Slide 1\n\nfirst\n\n---\n\n## Slide 2\n\nsecond\n\n---"
	assert.Equal(t, want, md)
	assert.Less(t, strings.Index(md, "## Slide 1"), strings.Index(md, "## Slide 2"))
	assert.Equal(t, 2, tally.Total())
}

func TestAssembleDocument_EmptyUnitsEmitNothing(t *testing.T) {
	meta := model.Metadata{SourceName: "scan.pdf"}
	units := model.NumberedUnits("Page", 3)

	md, tally := AssembleDocument(meta, units, texts("one", "", "three"), AssembleOptions{Noun: "Page"})

	assert.NotContains(t, md, "## Page 2")
	assert.Contains(t, md, "## Page 1\n\none\n\n---\n\n## Page 3\n\nthree\n\n---")
	assert.Equal(t, "direct: 2, recognized: 0, table: 0, none: 1", tally.String())
}

func TestAssembleDocument_NoUnits(t *testing.T) {
	md, tally := AssembleDocument(model.Metadata{SourceName: "empty.pptx"}, nil, texts(), AssembleOptions{})

	assert.Equal(t, "# Empty\n\n*Converted from: empty.pptx*\n\n---", md)
	assert.Zero(t, tally.Total())
}

func TestAssembleDocument_FailingUnitsAreContained(t *testing.T) {
	meta := model.Metadata{SourceName: "broken.pdf"}
	units := model.NumberedUnits("Page", 3)

	ex := unitFunc(func(u model.Unit) model.Result {
		switch u.Ordinal {
		case 1:
			return model.Result{Text: "ok", Strategy: model.Direct}
		case 2:
			panic("bad page tree")
		default:
			return model.Failed(errors.New("cannot read page"))
		}
	})

	md, tally := AssembleDocument(meta, units, ex, AssembleOptions{Noun: "Page"})

	assert.Contains(t, md, "## Page 1\n\nok")
	assert.NotContains(t, md, "## Page 2")
	assert.NotContains(t, md, "## Page 3")
	assert.Equal(t, 1, tally[model.Direct])
	assert.Equal(t, 2, tally[model.None])
}

func TestAssembleDocument_Progress(t *testing.T) {
	var progress bytes.Buffer
	units := model.NumberedUnits("Page", 2)

	AssembleDocument(model.Metadata{SourceName: "a.pdf"}, units, texts("x", ""), AssembleOptions{
		Noun:     "Page",
		Progress: &progress,
	})

	assert.Equal(t, "  Processing page 1/2... (direct)\n  Processing page 2/2... (none)\n", progress.String())
}

func TestAssembleDocument_Contents(t *testing.T) {
	meta := model.Metadata{SourceName: "book.xlsx"}
	units := model.NamedUnits("Sheet", []string{"Q1 Sales", "Costs"})
	ex := unitFunc(func(u model.Unit) model.Result {
		return model.Result{Text: "| a |\n| --- |", Strategy: model.Table}
	})

	md, _ := AssembleDocument(meta, units, ex, AssembleOptions{Noun: "Sheet", Contents: true})

	assert.Contains(t, md, "*Converted from: book.xlsx*\n\n## Contents\n\n- [Q1 Sales](#q1-sales)\n- [Costs](#costs)\n\n---")

	// A single unit gets no contents list.
	md, _ = AssembleDocument(meta, units[:1], ex, AssembleOptions{Noun: "Sheet", Contents: true})
	assert.NotContains(t, md, "## Contents")
}

func TestAssembleDocument_NormalizesBodies(t *testing.T) {
	ex := unitFunc(func(u model.Unit) model.Result {
		return model.Result{Text: "  a \t b  \r\n\r\n\r\n\r\n\r\nc", Strategy: model.Recognized}
	})

	md, _ := AssembleDocument(model.Metadata{SourceName: "x.pdf"}, model.NumberedUnits("Page", 1), ex, AssembleOptions{})

	assert.True(t, strings.HasSuffix(md, "---\n\na b\n\n\nc\n\n---"), md)
}

func TestTitle(t *testing.T) {
	tests := []struct {
		meta model.Metadata
		want string
	}{
		{model.Metadata{Title: "Annual Report", SourceName: "ar.pdf"}, "Annual Report"},
		{model.Metadata{Title: "  lower case kept  ", SourceName: "x.pdf"}, "lower case kept"},
		{model.Metadata{Title: "   ", SourceName: "q3_sales-report.xlsx"}, "Q3 Sales Report"},
		{model.Metadata{SourceName: "my_REPORT.pdf"}, "My Report"},
		{model.Metadata{SourceName: "a__b--c.pptx"}, "A B C"},
		{model.Metadata{SourceName: ".pdf"}, "Untitled"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q/%q", tt.meta.Title, tt.meta.SourceName), func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.meta))
		})
	}
}

func TestAnchor(t *testing.T) {
	assert.Equal(t, "q1-sales", Anchor("Q1 Sales"))
	assert.Equal(t, "data", Anchor("Data"))
}
