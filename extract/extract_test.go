package extract

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/docmark/logging"
	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/pptx"
	"github.com/tsawler/docmark/table"
)

type fakePages struct {
	text      []string
	textErr   error
	renderErr error
	rendered  []float64
}

func (f *fakePages) PageText(i int) (string, error) {
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.text[i], nil
}

func (f *fakePages) RenderPage(i int, dpi float64) (image.Image, error) {
	f.rendered = append(f.rendered, dpi)
	if f.renderErr != nil {
		return nil, f.renderErr
	}
	return image.NewGray(image.Rect(0, 0, 1, 1)), nil
}

type fakeRecognizer struct {
	text  string
	err   error
	calls int
}

func (f *fakeRecognizer) Recognize(image.Image) (string, error) {
	f.calls++
	return f.text, f.err
}

type recordingLogger struct {
	logging.Logger
	warnings []string
}

func (r *recordingLogger) Warn(msg string, args ...any) {
	r.warnings = append(r.warnings, msg)
}

var unit1 = model.Unit{Ordinal: 1, Label: "Page 1"}

func TestPages_Thresholds(t *testing.T) {
	fifty := strings.Repeat("a", 50)
	fiftyOne := strings.Repeat("a", 51)

	tests := []struct {
		name     string
		text     string
		rec      *fakeRecognizer
		want     string
		strategy model.Strategy
		recCalls int
	}{
		{name: "long text is direct", text: "  " + fiftyOne + "\n", rec: &fakeRecognizer{text: "ocr"}, want: fiftyOne, strategy: model.Direct},
		{name: "exactly threshold without recognizer", text: fifty, want: fifty, strategy: model.Direct},
		{name: "exactly threshold goes to recognition", text: fifty, rec: &fakeRecognizer{text: " scanned words "}, want: "scanned words", strategy: model.Recognized, recCalls: 1},
		{name: "short text without recognizer", text: strings.Repeat("b", 49), want: strings.Repeat("b", 49), strategy: model.Direct},
		{name: "empty without recognizer", text: " \n ", strategy: model.None},
		{name: "recognizer finds nothing", text: "", rec: &fakeRecognizer{text: "  "}, strategy: model.None, recCalls: 1},
		{name: "recognizer finds nothing keeps short text", text: "Page 4", rec: &fakeRecognizer{}, want: "Page 4", strategy: model.Direct, recCalls: 1},
		{name: "length counts characters not bytes", text: strings.Repeat("é", 30), rec: &fakeRecognizer{text: "ocr"}, want: "ocr", strategy: model.Recognized, recCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakePages{text: []string{tt.text}}
			var rec Recognizer
			if tt.rec != nil {
				rec = tt.rec
			}
			p := NewPages(src, rec, nil)

			got := p.Extract(unit1)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.strategy, got.Strategy)
			assert.NoError(t, got.Err)
			if tt.rec != nil {
				assert.Equal(t, tt.recCalls, tt.rec.calls)
			}
		})
	}
}

func TestPages_RecognitionFailures(t *testing.T) {
	log := &recordingLogger{Logger: logging.NoOp()}

	src := &fakePages{text: []string{"short"}, renderErr: errors.New("render broke")}
	p := NewPages(src, &fakeRecognizer{text: "unused"}, log)
	got := p.Extract(unit1)
	assert.Equal(t, model.Result{Text: "short", Strategy: model.Direct}, got)

	src = &fakePages{text: []string{""}}
	p = NewPages(src, &fakeRecognizer{err: errors.New("tesseract died")}, log)
	got = p.Extract(unit1)
	assert.Equal(t, model.None, got.Strategy)
	assert.NoError(t, got.Err, "recognition failure is not a unit failure")

	assert.Equal(t, []string{"page render failed", "text recognition failed"}, log.warnings)
}

func TestPages_DPI(t *testing.T) {
	src := &fakePages{text: []string{""}}
	p := NewPages(src, &fakeRecognizer{}, nil)
	p.Extract(unit1)

	p.DPI = 150
	p.Extract(unit1)

	p.DPI = 0
	p.Extract(unit1)

	assert.Equal(t, []float64{300, 150, 300}, src.rendered)
}

func TestPages_CustomThreshold(t *testing.T) {
	p := NewPages(&fakePages{text: []string{"tiny"}}, &fakeRecognizer{text: "ocr"}, nil)
	p.MinTextLength = 3

	got := p.Extract(unit1)
	assert.Equal(t, model.Direct, got.Strategy)
	assert.Equal(t, "tiny", got.Text)
}

func TestPages_TextError(t *testing.T) {
	boom := errors.New("bad xref")
	p := NewPages(&fakePages{textErr: boom}, nil, nil)
	got := p.Extract(unit1)
	assert.Equal(t, model.None, got.Strategy)
	assert.ErrorIs(t, got.Err, boom)
}

type fakeSlides map[int]*pptx.Slide

func (f fakeSlides) Slide(i int) (*pptx.Slide, error) {
	s, ok := f[i]
	if !ok {
		return nil, pptx.ErrSlideRange
	}
	return s, nil
}

func TestSlides_Extract(t *testing.T) {
	src := fakeSlides{0: {
		Title: "Quarterly Results",
		Shapes: []pptx.Shape{
			{Name: "Title 1", Placeholder: "title", IsTitle: true, Text: "Quarterly Results"},
			{Name: "Body", Text: "  Revenue up\nCosts down  "},
			{Name: "Blank", Text: "   "},
			{Name: "Table", Table: table.Grid{{"Region", "Q1"}, {"North", "1|2"}}},
			{Name: "Empty table", Table: table.Grid{{"", ""}}},
			{Name: "Footer", Text: "Confidential"},
		},
		Notes: "Pause for questions",
	}}

	got := (&Slides{Source: src}).Extract(unit1)
	require.NoError(t, got.Err)
	assert.Equal(t, model.Direct, got.Strategy)

	want := strings.Join([]string{
		"### Quarterly Results",
		"Revenue up\nCosts down",
		"| Region | Q1 |\n| --- | --- |\n| North | 1\\|2 |",
		"Confidential",
		"**Speaker Notes:**",
		"_Pause for questions_",
	}, "\n\n")
	assert.Equal(t, want, got.Text)
}

func TestSlides_EmptySlide(t *testing.T) {
	got := (&Slides{Source: fakeSlides{0: {}}}).Extract(unit1)
	assert.Equal(t, model.Result{Strategy: model.Direct}, got)
}

func TestSlides_Error(t *testing.T) {
	got := (&Slides{Source: fakeSlides{}}).Extract(unit1)
	assert.Equal(t, model.None, got.Strategy)
	assert.ErrorIs(t, got.Err, pptx.ErrSlideRange)
}

type fakeSheets []table.Grid

func (f fakeSheets) Grid(i int) (table.Grid, error) {
	if i >= len(f) {
		return nil, errors.New("no such sheet")
	}
	return f[i], nil
}

func TestSheets_Extract(t *testing.T) {
	src := fakeSheets{
		{{"Name", "Age", ""}, {"Ann", "41", ""}, {"", "", ""}},
		{{"", ""}, nil},
	}
	e := &Sheets{Source: src}

	got := e.Extract(model.Unit{Ordinal: 1, Label: "People"})
	assert.Equal(t, model.Table, got.Strategy)
	assert.Equal(t, "| Name | Age |\n| --- | --- |\n| Ann | 41 |", got.Text)

	got = e.Extract(model.Unit{Ordinal: 2, Label: "Blank"})
	assert.Equal(t, model.Result{Text: table.EmptyMarker, Strategy: model.Table}, got)

	got = e.Extract(model.Unit{Ordinal: 3, Label: "Missing"})
	assert.Equal(t, model.None, got.Strategy)
	assert.Error(t, got.Err)
}

type extractorFunc func(model.Unit) model.Result

func (f extractorFunc) Extract(u model.Unit) model.Result { return f(u) }

func TestSafe(t *testing.T) {
	log := &recordingLogger{Logger: logging.NoOp()}

	ok := extractorFunc(func(model.Unit) model.Result {
		return model.Result{Text: "fine", Strategy: model.Direct}
	})
	assert.Equal(t, model.Result{Text: "fine", Strategy: model.Direct}, Safe(ok, unit1, log))

	panics := extractorFunc(func(model.Unit) model.Result { panic("corrupt stream") })
	got := Safe(panics, unit1, log)
	assert.Equal(t, model.None, got.Strategy)
	assert.Empty(t, got.Text)
	assert.ErrorContains(t, got.Err, "corrupt stream")

	// A result carrying an error is normalized to an empty None result.
	sloppy := extractorFunc(func(model.Unit) model.Result {
		return model.Result{Text: "partial", Strategy: model.Direct, Err: errors.New("half read")}
	})
	got = Safe(sloppy, unit1, nil)
	assert.Equal(t, model.None, got.Strategy)
	assert.Empty(t, got.Text)

	assert.Equal(t, []string{"unit extraction failed"}, log.warnings)
}
