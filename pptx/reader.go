// Package pptx reads slides out of PPTX (Office Open XML Presentation)
// files: shapes in source order, tables, titles and speaker notes.
package pptx

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/tsawler/docmark/internal/opc"
	"github.com/tsawler/docmark/model"
)

// ErrSlideRange is returned for a slide index outside the presentation.
var ErrSlideRange = errors.New("slide index out of range")

const (
	presentationPart = "ppt/presentation.xml"
	relTypeNotes     = "/notesSlide"
)

// Reader provides access to PPTX document content. Slides are parsed on first
// access and cached.
type Reader struct {
	pkg    *opc.Package
	meta   model.Metadata
	parts  []string // slide parts in presentation order
	slides []*Slide
}

// Open opens a PPTX file for reading.
func Open(filename string) (*Reader, error) {
	pkg, err := opc.Open(filename, presentationPart)
	if err != nil {
		return nil, err
	}
	parts, err := slideParts(pkg)
	if err != nil {
		pkg.Close()
		return nil, fmt.Errorf("parsing presentation: %w", err)
	}
	return &Reader{
		pkg:    pkg,
		meta:   pkg.Metadata(),
		parts:  parts,
		slides: make([]*Slide, len(parts)),
	}, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return r.pkg.Close()
}

// slideParts lists slide parts in presentation order. Presentations whose
// slide list cannot be resolved fall back to slide file numbering.
func slideParts(pkg *opc.Package) ([]string, error) {
	var pres presentationXML
	if err := pkg.Decode(presentationPart, &pres); err != nil {
		return nil, err
	}

	targets := make(map[string]string)
	for _, rel := range pkg.Relationships(presentationPart) {
		targets[rel.ID] = opc.Resolve(presentationPart, rel.Target)
	}
	if pres.SlideIdList != nil && len(pres.SlideIdList.SlideId) > 0 {
		parts := make([]string, 0, len(pres.SlideIdList.SlideId))
		for _, id := range pres.SlideIdList.SlideId {
			part, ok := targets[id.RID]
			if !ok || !pkg.Has(part) {
				parts = nil
				break
			}
			parts = append(parts, part)
		}
		if len(parts) > 0 {
			return parts, nil
		}
	}

	var parts []string
	for _, name := range pkg.Names() {
		if slideNumber(name) > 0 {
			parts = append(parts, name)
		}
	}
	slices.SortFunc(parts, func(a, b string) int {
		return slideNumber(a) - slideNumber(b)
	})
	return parts, nil
}

// slideNumber extracts N from "ppt/slides/slideN.xml", or 0.
func slideNumber(name string) int {
	if path.Dir(name) != "ppt/slides" {
		return 0
	}
	base := path.Base(name)
	if !strings.HasPrefix(base, "slide") || !strings.HasSuffix(base, ".xml") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, "slide"), ".xml"))
	if err != nil {
		return 0
	}
	return n
}

// SlideCount returns the number of slides in the presentation.
func (r *Reader) SlideCount() int {
	return len(r.parts)
}

// Slide returns the slide at the given index (0-indexed).
func (r *Reader) Slide(index int) (*Slide, error) {
	if index < 0 || index >= len(r.slides) {
		return nil, fmt.Errorf("%w: %d (presentation has %d)", ErrSlideRange, index, len(r.slides))
	}
	if cached := r.slides[index]; cached != nil {
		return cached, nil
	}

	part := r.parts[index]
	var sx slideXML
	if err := r.pkg.Decode(part, &sx); err != nil {
		return nil, err
	}
	slide := buildSlide(index, &sx.CSld.SpTree)
	slide.Notes = r.notes(part)
	r.slides[index] = slide
	return slide, nil
}

// notes returns the speaker notes attached to a slide part. Unreadable notes
// are treated as absent.
func (r *Reader) notes(part string) string {
	for _, rel := range r.pkg.Relationships(part) {
		if !strings.HasSuffix(rel.Type, relTypeNotes) {
			continue
		}
		var nx slideXML
		if r.pkg.Decode(opc.Resolve(part, rel.Target), &nx) != nil {
			return ""
		}
		return notesText(&nx.CSld.SpTree)
	}
	return ""
}

// Metadata returns the presentation title and author from docProps/core.xml.
func (r *Reader) Metadata() model.Metadata {
	return r.meta
}
