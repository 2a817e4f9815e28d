// Implements a PDF proof of normalized paths,
// by wrapping github.com/jung-kurt/gofpdf.
// One path unit is rendered as one millimetre.
package svgpdf

import (
	"errors"
	"fmt"
	"io"

	"github.com/benoitkugler/svgfit/fit"
	"github.com/benoitkugler/svgfit/svgpath"
	"github.com/jung-kurt/gofpdf"
)

// ErrInvalidPage is returned for an empty frame.
var ErrInvalidPage = errors.New("invalid page size")

// Renderer fills paths on the current page of a PDF document.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// DrawPath fills p in opaque black, with the non-zero rule.
func (r Renderer) DrawPath(p svgpath.Path) {
	if len(p) == 0 {
		return
	}
	r.pdf.SetFillColor(0, 0, 0)
	r.pdf.SetAlpha(1, "")
	for _, op := range p {
		switch op := op.(type) {
		case svgpath.MoveTo:
			r.pdf.MoveTo(op.Point.X, op.Point.Y)
		case svgpath.LineTo:
			r.pdf.LineTo(op.Point.X, op.Point.Y)
		case svgpath.Close:
			r.pdf.ClosePath()
		}
	}
	r.pdf.DrawPath("f")
}

// NewDocument returns a document with one page of the size of frame,
// in millimetres.
func NewDocument(frame fit.Frame) (*gofpdf.Fpdf, error) {
	if !(frame.Width > 0 && frame.Height > 0) {
		return nil, fmt.Errorf("%w: %g x %g", ErrInvalidPage, frame.Width, frame.Height)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: frame.Width, Ht: frame.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return pdf, pdf.Error()
}

// Render writes the paths as a one page PDF document to w.
func Render(w io.Writer, frame fit.Frame, paths []svgpath.Path) error {
	pdf, err := NewDocument(frame)
	if err != nil {
		return err
	}
	r := NewRenderer(pdf)
	for _, p := range paths {
		r.DrawPath(p)
	}
	return pdf.Output(w)
}
