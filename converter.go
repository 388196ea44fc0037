package docmark

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/docmark/extract"
	"github.com/tsawler/docmark/format"
	"github.com/tsawler/docmark/logging"
	"github.com/tsawler/docmark/model"
)

// Converter turns documents into Markdown. Each configuration method returns
// a new Converter, so a configured Converter can be shared and further
// specialized without affecting the original.
type Converter struct {
	options ConvertOptions
}

// New returns a Converter with the default options: no recognition, the
// default text threshold and render resolution, no contents list, and
// discarded logs and progress.
func New() *Converter {
	return &Converter{options: defaultOptions()}
}

// clone creates a copy of the Converter with a copy of its options.
func (c *Converter) clone() *Converter {
	return &Converter{options: c.options.clone()}
}

// WithRecognizer sets the recognizer used for pages whose text layer is too
// short. Pass nil to disable recognition.
func (c *Converter) WithRecognizer(r extract.Recognizer) *Converter {
	n := c.clone()
	n.options.recognizer = r
	return n
}

// WithMinTextLength sets the number of characters a page's trimmed text
// layer must exceed to be used without recognition.
func (c *Converter) WithMinTextLength(n int) *Converter {
	nc := c.clone()
	if n >= 0 {
		nc.options.minTextLength = n
	}
	return nc
}

// WithDPI sets the resolution pages are rendered at for recognition.
// Non-positive values are ignored.
func (c *Converter) WithDPI(dpi float64) *Converter {
	n := c.clone()
	if dpi > 0 {
		n.options.dpi = dpi
	}
	return n
}

// WithContents enables or disables the contents list for documents with more
// than one unit.
func (c *Converter) WithContents(on bool) *Converter {
	n := c.clone()
	n.options.contents = on
	return n
}

// WithLogger sets the logger for unit and batch diagnostics.
func (c *Converter) WithLogger(log logging.Logger) *Converter {
	n := c.clone()
	if log == nil {
		log = logging.NoOp()
	}
	n.options.log = log
	return n
}

// WithProgress sets the writer that receives per-unit progress lines and
// per-document summaries.
func (c *Converter) WithProgress(w io.Writer) *Converter {
	n := c.clone()
	if w == nil {
		w = io.Discard
	}
	n.options.progress = w
	return n
}

// Convert opens path and returns its Markdown rendering and strategy tally.
// The document is closed before Convert returns.
func (c *Converter) Convert(path string) (md string, tally model.Tally, err error) {
	doc, err := Open(path)
	if err != nil {
		return "", nil, err
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			c.options.log.Warn("close failed", "path", path, "error", cerr)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			md, tally = "", nil
			err = conversionFailed(path, fmt.Errorf("panic: %v", r))
		}
	}()

	opts := c.options.assembly(doc.Format.UnitNoun())
	md, tally = AssembleDocument(doc.Meta, doc.Units, doc.extractor(c.options), opts)
	return md, tally, nil
}

// ConvertFile converts in and writes the result to out, or next to the input
// with a .md extension when out is empty. It returns the path written.
func (c *Converter) ConvertFile(in, out string) (string, model.Tally, error) {
	if out == "" {
		out = OutputPath(in)
	}

	md, tally, err := c.Convert(in)
	if err != nil {
		return "", nil, err
	}

	if err := os.WriteFile(out, []byte(md+"\n"), 0o644); err != nil {
		return "", nil, writeFailed(out, err)
	}

	noun := format.Detect(in).UnitNoun() + "s"
	fmt.Fprintf(c.options.progress, "Converted: %s -> %s\n", filepath.Base(in), filepath.Base(out))
	fmt.Fprintf(c.options.progress, "  %s: %d (%s)\n", noun, tally.Total(), tally)
	c.options.log.Info("converted", "input", in, "output", out, "units", tally.Total())

	return out, tally, nil
}

// OutputPath returns in with its extension replaced by ".md".
func OutputPath(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".md"
}
