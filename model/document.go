package model

import "fmt"

// Metadata holds the document-level information used for the Markdown header.
type Metadata struct {
	Title      string // explicit title from the document properties, may be empty
	SourceName string // base name of the input file
	Author     string // author from the document properties, may be empty
}

// Unit is one page, slide or worksheet of a document.
type Unit struct {
	Ordinal int    // 1-based position in source order
	Label   string // heading text, e.g. "Page 3" or a worksheet name
}

// Index returns the 0-based source index of the unit.
func (u Unit) Index() int {
	return u.Ordinal - 1
}

// NumberedUnits returns n units labelled "<noun> 1" through "<noun> n".
func NumberedUnits(noun string, n int) []Unit {
	units := make([]Unit, n)
	for i := range units {
		units[i] = Unit{
			Ordinal: i + 1,
			Label:   fmt.Sprintf("%s %d", noun, i+1),
		}
	}
	return units
}

// NamedUnits returns one unit per name, in order. Blank names fall back to
// "<noun> <ordinal>".
func NamedUnits(noun string, names []string) []Unit {
	units := make([]Unit, len(names))
	for i, name := range names {
		if name == "" {
			name = fmt.Sprintf("%s %d", noun, i+1)
		}
		units[i] = Unit{Ordinal: i + 1, Label: name}
	}
	return units
}
