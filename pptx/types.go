package pptx

import "encoding/xml"

// presentationXML represents the ppt/presentation.xml file structure.
type presentationXML struct {
	XMLName     xml.Name        `xml:"presentation"`
	SlideIdList *slideIdListXML `xml:"sldIdLst"`
}

type slideIdListXML struct {
	SlideId []slideIdXML `xml:"sldId"`
}

type slideIdXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

// slideXML represents a slide or notes slide. Both keep their shapes under
// cSld/spTree.
type slideXML struct {
	CSld cSldXML `xml:"cSld"`
}

type cSldXML struct {
	SpTree shapeTreeXML `xml:"spTree"`
}

// shapeTreeXML holds the children of an spTree or grpSp in document order.
type shapeTreeXML struct {
	Items []shapeItemXML
}

// shapeItemXML is exactly one of a shape, a graphic frame or a group.
type shapeItemXML struct {
	Sp    *spXML
	Frame *graphicFrameXML
	Group *shapeTreeXML
}

// UnmarshalXML keeps sp, graphicFrame and grpSp children in the order they
// appear. Markup-compatibility blocks contribute their fallback content.
func (t *shapeTreeXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "sp":
				var sp spXML
				if err := d.DecodeElement(&sp, &el); err != nil {
					return err
				}
				t.Items = append(t.Items, shapeItemXML{Sp: &sp})
			case "graphicFrame":
				var gf graphicFrameXML
				if err := d.DecodeElement(&gf, &el); err != nil {
					return err
				}
				t.Items = append(t.Items, shapeItemXML{Frame: &gf})
			case "grpSp":
				var g shapeTreeXML
				if err := d.DecodeElement(&g, &el); err != nil {
					return err
				}
				t.Items = append(t.Items, shapeItemXML{Group: &g})
			case "AlternateContent":
				var ac alternateContentXML
				if err := d.DecodeElement(&ac, &el); err != nil {
					return err
				}
				if chosen := ac.content(); chosen != nil {
					t.Items = append(t.Items, chosen.Items...)
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

type alternateContentXML struct {
	Choice   []shapeTreeXML `xml:"Choice"`
	Fallback *shapeTreeXML  `xml:"Fallback"`
}

func (ac *alternateContentXML) content() *shapeTreeXML {
	if ac.Fallback != nil {
		return ac.Fallback
	}
	if len(ac.Choice) > 0 {
		return &ac.Choice[0]
	}
	return nil
}

// spXML represents a shape element.
type spXML struct {
	NvSpPr nvSpPrXML  `xml:"nvSpPr"`
	TxBody *txBodyXML `xml:"txBody"`
}

type nvSpPrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
	NvPr  nvPrXML  `xml:"nvPr"`
}

type cNvPrXML struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type nvPrXML struct {
	Ph *phXML `xml:"ph"`
}

type phXML struct {
	Type string `xml:"type,attr"` // title, ctrTitle, body, subTitle, sldImg, ...
	Idx  int    `xml:"idx,attr"`
}

// txBodyXML represents text body content.
type txBodyXML struct {
	P []pXML `xml:"p"`
}

// pXML represents a paragraph. Runs, breaks and fields are kept in order.
type pXML struct {
	Text string
}

// UnmarshalXML flattens a paragraph to text; a:br becomes a line break.
func (p *pXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var text []byte
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "r", "fld":
				var run runXML
				if err := d.DecodeElement(&run, &el); err != nil {
					return err
				}
				text = append(text, run.T...)
			case "br":
				text = append(text, '\n')
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			p.Text = string(text)
			return nil
		}
	}
}

// runXML represents a text run or field.
type runXML struct {
	T string `xml:"t"`
}

// graphicFrameXML represents a graphic frame (tables, charts).
type graphicFrameXML struct {
	NvGraphicFramePr nvGraphicFramePrXML `xml:"nvGraphicFramePr"`
	Graphic          graphicXML          `xml:"graphic"`
}

type nvGraphicFramePrXML struct {
	CNvPr cNvPrXML `xml:"cNvPr"`
}

type graphicXML struct {
	GraphicData graphicDataXML `xml:"graphicData"`
}

type graphicDataXML struct {
	URI string  `xml:"uri,attr"`
	Tbl *tblXML `xml:"tbl"`
}

// tblXML represents a table.
type tblXML struct {
	Tr []trXML `xml:"tr"`
}

type trXML struct {
	Tc []tcXML `xml:"tc"`
}

type tcXML struct {
	TxBody *txBodyXML `xml:"txBody"`
	HMerge bool       `xml:"hMerge,attr"` // continuation of a horizontal span
	VMerge bool       `xml:"vMerge,attr"` // continuation of a vertical span
}
