// Implements a raster preview of normalized paths,
// by wrapping rasterx.
package svgraster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/svgfit/fit"
	"github.com/benoitkugler/svgfit/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// MaxSize is the largest accepted image side, in pixels.
const MaxSize = 1 << 14

// ErrInvalidSize is returned when the preview would be empty or too large.
var ErrInvalidSize = errors.New("invalid preview size")

// Renderer fills paths with the output style:
// opaque black, non-zero winding rule.
type Renderer struct {
	filler *rasterx.Filler
	scale  float64

	first fixed.Point26_6 // start of the current sub-path
	open  bool
}

// NewRenderer returns a renderer drawing with the given scanner,
// mapping one path unit to scale pixels.
// If scanner is nil, a default scanner rasterx.ScannerGV is used.
func NewRenderer(img draw.Image, scale float64, scanner rasterx.Scanner) *Renderer {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if scanner == nil {
		scanner = rasterx.NewScannerGV(w, h, img, img.Bounds())
	}
	filler := rasterx.NewFiller(w, h, scanner)
	filler.SetWinding(true)
	filler.SetColor(color.Black)
	return &Renderer{filler: filler, scale: scale}
}

func (rd *Renderer) toFixed(p svgpath.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(p.X*rd.scale, p.Y*rd.scale)
}

// DrawPath fills p. Sub-paths are implicitly closed,
// as for any SVG fill.
func (rd *Renderer) DrawPath(p svgpath.Path) {
	for _, op := range p {
		switch op := op.(type) {
		case svgpath.MoveTo:
			rd.stop()
			rd.first = rd.toFixed(op.Point)
			rd.filler.Start(rd.first)
			rd.open = true
		case svgpath.LineTo:
			if !rd.open { // line after a close starts from the sub-path origin
				rd.filler.Start(rd.first)
				rd.open = true
			}
			rd.filler.Line(rd.toFixed(op.Point))
		case svgpath.Close:
			rd.stop()
		}
	}
	rd.stop()
	rd.filler.Draw()
	rd.filler.Clear()
}

func (rd *Renderer) stop() {
	if rd.open {
		rd.filler.Stop(true)
		rd.open = false
	}
}

// RasterToImage renders paths on a white background, in an image
// of size frame * scale.
func RasterToImage(frame fit.Frame, paths []svgpath.Path, scale float64) (*image.RGBA, error) {
	w, h := math.Ceil(frame.Width*scale), math.Ceil(frame.Height*scale)
	if !(w >= 1 && h >= 1 && w <= MaxSize && h <= MaxSize) {
		return nil, fmt.Errorf("%w: %g x %g pixels", ErrInvalidSize, w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	renderer := NewRenderer(img, scale, nil)
	for _, p := range paths {
		renderer.DrawPath(p)
	}
	return img, nil
}

// WritePNG renders paths and encodes the image as PNG.
func WritePNG(w io.Writer, frame fit.Frame, paths []svgpath.Path, scale float64) error {
	img, err := RasterToImage(frame, paths, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
