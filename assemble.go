package docmark

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tsawler/docmark/extract"
	"github.com/tsawler/docmark/logging"
	"github.com/tsawler/docmark/model"
	"github.com/tsawler/docmark/normalize"
)

// Rule separates the header and every unit in the output.
const Rule = "---"

// AssembleOptions controls how a document is assembled.
type AssembleOptions struct {
	// Noun names one unit in progress lines, e.g. "Page".
	Noun string
	// Contents adds a linked list of unit labels for multi-unit documents.
	Contents bool

	Log      logging.Logger
	Progress io.Writer
}

// AssembleDocument extracts every unit with ex, in order, and renders the
// Markdown document. It returns the document text and the number of units
// per strategy. A failing unit degrades to an empty unit and never stops the
// document.
func AssembleDocument(meta model.Metadata, units []model.Unit, ex extract.Extractor, opts AssembleOptions) (string, model.Tally) {
	log := opts.Log
	if log == nil {
		log = logging.NoOp()
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	noun := strings.ToLower(opts.Noun)
	if noun == "" {
		noun = "unit"
	}

	blocks := []string{
		"# " + Title(meta),
		fmt.Sprintf("*Converted from: %s*", meta.SourceName),
	}
	if author := strings.TrimSpace(meta.Author); author != "" {
		blocks = append(blocks, fmt.Sprintf("*Author: %s*", author))
	}
	if opts.Contents && len(units) > 1 {
		blocks = append(blocks, contents(units))
	}
	blocks = append(blocks, Rule)

	tally := model.Tally{}
	headed := len(units) > 1

	for _, u := range units {
		res := extract.Safe(ex, u, log)
		tally.Add(res.Strategy)
		fmt.Fprintf(progress, "  Processing %s %d/%d... (%s)\n", noun, u.Ordinal, len(units), res.Strategy)

		body := normalize.Text(res.Text)
		if strings.TrimSpace(body) == "" {
			continue
		}
		if headed {
			blocks = append(blocks, "## "+u.Label)
		}
		blocks = append(blocks, body, Rule)
	}

	return strings.Join(blocks, "\n\n"), tally
}

// Title returns the document heading: the explicit title when there is one,
// otherwise the source file name without its extension, with underscores
// and hyphens turned into spaces, title-cased.
func Title(meta model.Metadata) string {
	if title := strings.TrimSpace(meta.Title); title != "" {
		return title
	}

	name := strings.TrimSuffix(meta.SourceName, filepath.Ext(meta.SourceName))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Untitled"
	}
	return cases.Title(language.Und).String(name)
}

// Anchor returns the in-document link target for a unit heading.
func Anchor(label string) string {
	return strings.ReplaceAll(strings.ToLower(label), " ", "-")
}

func contents(units []model.Unit) string {
	var b strings.Builder
	b.WriteString("## Contents\n")
	for _, u := range units {
		fmt.Fprintf(&b, "\n- [%s](#%s)", u.Label, Anchor(u.Label))
	}
	return b.String()
}
