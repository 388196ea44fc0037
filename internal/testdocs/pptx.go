package testdocs

import (
	"fmt"
	"strings"
)

// Deck describes a PPTX file.
type Deck struct {
	Title   string
	Creator string
	Slides  []Slide
}

// Slide is one slide. Title becomes a title placeholder ahead of Shapes.
type Slide struct {
	Title  string
	Shapes []Shape
	Notes  string
}

// Shape is a text box, a table, or a group of shapes. Text is split into
// paragraphs on newlines.
type Shape struct {
	Text  string
	Table [][]string
	Group []Shape
}

const (
	nsP = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	treeHeader = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`
)

// Bytes renders the deck.
func (d Deck) Bytes() ([]byte, error) {
	var slideParts []Part
	var ids, presRels []string
	for i, s := range d.Slides {
		n := i + 1
		slidePath := fmt.Sprintf("ppt/slides/slide%d.xml", n)
		slideParts = append(slideParts, Part{Name: slidePath, Body: slideXML(s)})
		if s.Notes != "" {
			slideParts = append(slideParts,
				Part{
					Name: fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n),
					Body: relationships(relationship("rId2", "notesSlide", fmt.Sprintf("../notesSlides/notesSlide%d.xml", n))),
				},
				Part{Name: fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), Body: notesXML(s.Notes, n)},
			)
		}
		ids = append(ids, fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 255+n, n))
		presRels = append(presRels, relationship(fmt.Sprintf("rId%d", n), "slide", fmt.Sprintf("slides/slide%d.xml", n)))
	}

	parts := []Part{
		{Name: "[Content_Types].xml", Body: xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` +
			`</Types>`},
		{Name: "_rels/.rels", Body: relationships(
			`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>`,
		)},
		{Name: "docProps/core.xml", Body: coreProps(d.Title, d.Creator)},
		{Name: "ppt/presentation.xml", Body: xmlHeader + `<p:presentation ` + nsP + `><p:sldIdLst>` +
			strings.Join(ids, "") + `</p:sldIdLst><p:sldSz cx="9144000" cy="6858000"/></p:presentation>`},
		{Name: "ppt/_rels/presentation.xml.rels", Body: relationships(presRels...)},
	}
	return Zip(append(parts, slideParts...))
}

func slideXML(s Slide) string {
	var b strings.Builder
	b.WriteString(xmlHeader + `<p:sld ` + nsP + `><p:cSld><p:spTree>` + treeHeader)
	id := 2
	if s.Title != "" {
		b.WriteString(spXML(&id, "Title 1", `<p:ph type="title"/>`, s.Title))
	}
	writeShapes(&b, &id, s.Shapes)
	b.WriteString(`</p:spTree></p:cSld></p:sld>`)
	return b.String()
}

func writeShapes(b *strings.Builder, id *int, shapes []Shape) {
	for _, sh := range shapes {
		switch {
		case sh.Group != nil:
			fmt.Fprintf(b, `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="%d" name="Group %d"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`, *id, *id)
			*id++
			writeShapes(b, id, sh.Group)
			b.WriteString(`</p:grpSp>`)
		case sh.Table != nil:
			b.WriteString(tableXML(id, sh.Table))
		default:
			b.WriteString(spXML(id, fmt.Sprintf("TextBox %d", *id), "", sh.Text))
		}
	}
}

func spXML(id *int, name, ph, text string) string {
	s := fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr>%s</p:nvPr></p:nvSpPr><p:spPr/>`, *id, esc(name), ph) +
		`<p:txBody><a:bodyPr/><a:lstStyle/>` + paragraphs(text) + `</p:txBody></p:sp>`
	*id++
	return s
}

func paragraphs(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			b.WriteString(`<a:p><a:endParaRPr lang="en-US"/></a:p>`)
			continue
		}
		b.WriteString(`<a:p><a:r><a:rPr lang="en-US" dirty="0"/><a:t>` + esc(line) + `</a:t></a:r></a:p>`)
	}
	return b.String()
}

func tableXML(id *int, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="Table %d"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`, *id, *id)
	*id++
	b.WriteString(`<p:xfrm/><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblGrid/>`)
	for _, row := range rows {
		b.WriteString(`<a:tr h="370840">`)
		for _, cell := range row {
			b.WriteString(`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/>` + paragraphs(cell) + `</a:txBody><a:tcPr/></a:tc>`)
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return b.String()
}

func notesXML(notes string, n int) string {
	id := 2
	return xmlHeader + `<p:notes ` + nsP + `><p:cSld><p:spTree>` + treeHeader +
		spXML(&id, "Slide Image Placeholder 1", `<p:ph type="sldImg"/>`, "") +
		spXML(&id, "Notes Placeholder 2", `<p:ph type="body" idx="1"/>`, notes) +
		spXML(&id, "Slide Number Placeholder 3", `<p:ph type="sldNum" idx="5"/>`, fmt.Sprint(n)) +
		`</p:spTree></p:cSld></p:notes>`
}
