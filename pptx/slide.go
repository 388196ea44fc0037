package pptx

import (
	"strings"

	"github.com/tsawler/docmark/table"
)

// Slide represents a parsed slide.
type Slide struct {
	Index  int     // 0-indexed position in the presentation
	Title  string  // Text of the title shape, trimmed
	Shapes []Shape // Shapes in source order, groups flattened
	Notes  string  // Speaker notes, trimmed
}

// Shape is one text shape or table on a slide.
type Shape struct {
	Name        string
	Placeholder string // Placeholder type, "" for free shapes
	IsTitle     bool   // The slide's title shape
	Text        string // Paragraphs joined by newlines
	Table       table.Grid
}

// HasTable reports whether the shape is a table.
func (s Shape) HasTable() bool {
	return s.Table != nil
}

func isTitlePlaceholder(ph string) bool {
	return ph == "title" || ph == "ctrTitle"
}

// buildSlide flattens a shape tree into a Slide. Only the first title
// placeholder is the slide title.
func buildSlide(index int, tree *shapeTreeXML) *Slide {
	slide := &Slide{Index: index}
	haveTitle := false
	walkShapes(tree, func(item shapeItemXML) {
		var shape Shape
		switch {
		case item.Sp != nil:
			shape = textShape(item.Sp)
			if !haveTitle && isTitlePlaceholder(shape.Placeholder) {
				haveTitle = true
				shape.IsTitle = true
				slide.Title = strings.TrimSpace(shape.Text)
			}
		case item.Frame != nil:
			if item.Frame.Graphic.GraphicData.Tbl == nil {
				return // charts, diagrams, media
			}
			shape = Shape{
				Name:  item.Frame.NvGraphicFramePr.CNvPr.Name,
				Table: tableGrid(item.Frame.Graphic.GraphicData.Tbl),
			}
		default:
			return
		}
		slide.Shapes = append(slide.Shapes, shape)
	})
	return slide
}

// walkShapes visits shapes and frames depth first in document order.
func walkShapes(tree *shapeTreeXML, visit func(shapeItemXML)) {
	for _, item := range tree.Items {
		if item.Group != nil {
			walkShapes(item.Group, visit)
			continue
		}
		visit(item)
	}
}

func textShape(sp *spXML) Shape {
	shape := Shape{Name: sp.NvSpPr.CNvPr.Name}
	if ph := sp.NvSpPr.NvPr.Ph; ph != nil {
		shape.Placeholder = ph.Type
		if shape.Placeholder == "" {
			shape.Placeholder = "obj"
		}
	}
	shape.Text = bodyText(sp.TxBody)
	return shape
}

// bodyText joins the paragraphs of a text body with newlines.
func bodyText(body *txBodyXML) string {
	if body == nil {
		return ""
	}
	paras := make([]string, len(body.P))
	for i, p := range body.P {
		paras[i] = p.Text
	}
	return strings.Join(paras, "\n")
}

// tableGrid returns a table's cell text. Cells continuing a merged span are
// left blank.
func tableGrid(tbl *tblXML) table.Grid {
	g := make(table.Grid, 0, len(tbl.Tr))
	for _, tr := range tbl.Tr {
		row := make([]string, len(tr.Tc))
		for j, tc := range tr.Tc {
			if tc.HMerge || tc.VMerge {
				continue
			}
			row[j] = strings.TrimSpace(bodyText(tc.TxBody))
		}
		g = append(g, row)
	}
	return g
}

// notesText picks the speaker notes out of a notes slide: the body
// placeholder when there is one, otherwise every shape that is not part of
// the notes page furniture.
func notesText(tree *shapeTreeXML) string {
	var body, rest []string
	walkShapes(tree, func(item shapeItemXML) {
		if item.Sp == nil {
			return
		}
		shape := textShape(item.Sp)
		switch shape.Placeholder {
		case "body":
			body = append(body, shape.Text)
		case "sldImg", "sldNum", "hdr", "ftr", "dt":
		default:
			rest = append(rest, shape.Text)
		}
	})
	if len(body) > 0 {
		return strings.TrimSpace(strings.Join(body, "\n"))
	}
	return strings.TrimSpace(strings.Join(rest, "\n"))
}
