package fit

import (
	"math"
	"strconv"

	"github.com/benoitkugler/svgfit/svgpath"
)

// Mapper is the affine transform from the document extent
// to the target box. It is only built by Extent.Finalize.
type Mapper struct {
	xMin, yMin       float64
	xLength, yLength float64
	targetX, targetY float64
}

// Map returns the image of p. Points inside the extent are mapped
// into [0, TargetWidth] x [0, TargetHeight], the extreme points
// reaching the bounds exactly.
func (m *Mapper) Map(p svgpath.Point) svgpath.Point {
	return svgpath.Point{
		X: (p.X - m.xMin) / m.xLength * m.targetX,
		Y: (p.Y - m.yMin) / m.yLength * m.targetY,
	}
}

// XLength returns the width of the source extent.
func (m *Mapper) XLength() float64 { return m.xLength }

// YLength returns the height of the source extent.
func (m *Mapper) YLength() float64 { return m.yLength }

// TargetWidth returns the width of the target box.
func (m *Mapper) TargetWidth() float64 { return m.targetX }

// TargetHeight returns the height of the target box.
func (m *Mapper) TargetHeight() float64 { return m.targetY }

// Frame returns the output frame: t itself when both
// dimensions are given, the rounded target box otherwise.
func (m *Mapper) Frame(t Target) Frame {
	if t.Width > 0 && t.Height > 0 {
		return Frame{Width: t.Width, Height: t.Height}
	}
	return Frame{Width: math.Round(m.targetX), Height: math.Round(m.targetY)}
}

// Frame is the visible area of the output document, with origin (0, 0).
type Frame struct {
	Width, Height float64
}

// ViewBox returns the value of the viewBox attribute.
func (f Frame) ViewBox() string {
	return "0 0 " + strconv.FormatFloat(f.Width, 'f', -1, 64) + " " + strconv.FormatFloat(f.Height, 'f', -1, 64)
}
