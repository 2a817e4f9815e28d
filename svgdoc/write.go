package svgdoc

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"

	"github.com/benoitkugler/svgfit/fit"
	"github.com/benoitkugler/svgfit/svgpath"
)

const (
	// Namespace is the SVG XML namespace.
	Namespace = "http://www.w3.org/2000/svg"
	// FillStyle is the style of every written path:
	// opaque black fill, non-zero rule, no stroke.
	FillStyle = "stroke:none;fill-rule:nonzero;fill:rgb(0, 0, 0);fill-opacity:1;"
)

// Output is a normalized document.
type Output struct {
	ViewBox   string
	Paths     []svgpath.Path
	Precision int // decimals of the coordinates, negative for the shortest exact form
}

// NewOutput returns the document of a normalization result,
// written with the shortest number format.
func NewOutput(res *fit.Result) *Output {
	return &Output{ViewBox: res.Frame.ViewBox(), Paths: res.Paths, Precision: -1}
}

func name(local string) xml.Name { return xml.Name{Local: local} }

// Encode writes the document as SVG to w.
func (o *Output) Encode(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	root := xml.StartElement{Name: name("svg"), Attr: []xml.Attr{
		{Name: name("xmlns"), Value: Namespace},
		{Name: name("viewBox"), Value: o.ViewBox},
	}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	var data []byte
	for _, p := range o.Paths {
		data = p.AppendSVG(data[:0], o.Precision)
		el := xml.StartElement{Name: name("path"), Attr: []xml.Attr{
			{Name: name("d"), Value: string(data)},
			{Name: name("style"), Value: FillStyle},
		}}
		if err := enc.EncodeToken(el); err != nil {
			return err
		}
		if err := enc.EncodeToken(el.End()); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile encodes the document and saves it to the named file.
// Nothing is written if the encoding fails.
func (o *Output) WriteFile(filename string) error {
	var buf bytes.Buffer
	if err := o.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return &IOError{Op: "write", Path: filename, Err: err}
	}
	return nil
}
