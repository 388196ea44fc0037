// Package opc reads Open Packaging Convention archives, the ZIP container
// shared by PPTX and XLSX: named parts, relationship parts and Dublin Core
// properties.
package opc

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/tsawler/docmark/model"
)

var (
	// ErrMissingPart is returned for a part that is not in the archive.
	ErrMissingPart = errors.New("missing part")
	// ErrClosed is returned when reading from a closed package.
	ErrClosed = errors.New("package is closed")
)

// ContentTypes is the part every package carries.
const ContentTypes = "[Content_Types].xml"

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Items   []Relationship `xml:"Relationship"`
}

type coreProperties struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Creator string   `xml:"creator"`
}

// Package is an open archive indexed by part name.
type Package struct {
	zr    *zip.ReadCloser
	parts map[string]*zip.File
	names []string
}

// Open opens the archive at filename and checks that every part in
// required is present.
func Open(filename string, required ...string) (*Package, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	p := &Package{zr: zr, parts: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		p.parts[f.Name] = f
		p.names = append(p.names, f.Name)
	}
	for _, name := range append([]string{ContentTypes}, required...) {
		if !p.Has(name) {
			zr.Close()
			return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
		}
	}
	return p, nil
}

// Close releases the archive. Closing twice is a no-op.
func (p *Package) Close() error {
	if p.zr == nil {
		return nil
	}
	err := p.zr.Close()
	p.zr = nil
	return err
}

// Closed reports whether Close has been called.
func (p *Package) Closed() bool { return p.zr == nil }

// Has reports whether the archive contains the named part.
func (p *Package) Has(name string) bool {
	_, ok := p.parts[name]
	return ok
}

// Names returns every part name in archive order.
func (p *Package) Names() []string {
	return slices.Clone(p.names)
}

// Read returns the raw bytes of a part.
func (p *Package) Read(name string) ([]byte, error) {
	if p.zr == nil {
		return nil, ErrClosed
	}
	f, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Decode unmarshals the named XML part into v.
func (p *Package) Decode(name string, v any) error {
	data, err := p.Read(name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// DecodeOptional is Decode for parts a package may omit. It reports whether
// the part was present.
func (p *Package) DecodeOptional(name string, v any) (bool, error) {
	err := p.Decode(name, v)
	if errors.Is(err, ErrMissingPart) {
		return false, nil
	}
	return err == nil, err
}

// RelsPath returns the relationship part that belongs to part.
func RelsPath(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// Relationships returns the relationships of part. A missing or malformed
// .rels part yields none.
func (p *Package) Relationships(part string) []Relationship {
	var rels relationships
	if p.Decode(RelsPath(part), &rels) != nil {
		return nil
	}
	return rels.Items
}

// Resolve turns a relationship target into a part name. Targets are
// relative to the directory of the owning part unless they start with "/".
func Resolve(part, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(part), target)
}

// Metadata returns the title and creator from docProps/core.xml, or the
// zero value when the part is missing or unreadable.
func (p *Package) Metadata() model.Metadata {
	var props coreProperties
	if p.Decode("docProps/core.xml", &props) != nil {
		return model.Metadata{}
	}
	return model.Metadata{
		Title:  strings.TrimSpace(props.Title),
		Author: strings.TrimSpace(props.Creator),
	}
}
