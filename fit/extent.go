package fit

import (
	"fmt"
	"math"

	"github.com/benoitkugler/svgfit/svgpath"
	"honnef.co/go/curve"
)

// Target is the requested size of the output frame.
// A zero dimension is derived from the extent (identity scale).
type Target struct {
	Width, Height float64
}

func (t Target) validate() error {
	for _, v := range [2]float64{t.Width, t.Height} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %g x %g", ErrInvalidTarget, t.Width, t.Height)
		}
	}
	return nil
}

// Extent accumulates the bounding box of the absolute points
// of a whole document. Its zero value is an empty extent.
type Extent struct {
	box       curve.Rect
	points    int
	relatives int
}

// Observe updates the extent with the endpoint of op.
// Relative commands are counted but do not change the bounds.
// Close and Unsupported operations are ignored.
func (e *Extent) Observe(op svgpath.Operation) {
	switch op := op.(type) {
	case svgpath.MoveTo:
		e.observe(op.Position, op.Point)
	case svgpath.LineTo:
		e.observe(op.Position, op.Point)
	}
}

// ObservePath calls Observe for each operation of p.
func (e *Extent) ObservePath(p svgpath.Path) {
	for _, op := range p {
		e.Observe(op)
	}
}

func (e *Extent) observe(pos svgpath.Position, pt svgpath.Point) {
	if pos == svgpath.Relative {
		e.relatives++
		return
	}
	p := curve.Pt(pt.X, pt.Y)
	if e.points == 0 {
		// the zero Rect would include the origin
		e.box = curve.NewRectFromPoints(p, p)
	} else {
		e.box = e.box.UnionPoint(p)
	}
	e.points++
}

// Empty returns true if no absolute point has been observed.
func (e *Extent) Empty() bool { return e.points == 0 }

// AllAbsolute returns false once a relative command has been observed.
func (e *Extent) AllAbsolute() bool { return e.relatives == 0 }

// Relatives returns the number of relative commands observed.
func (e *Extent) Relatives() int { return e.relatives }

// Bounds returns the current bounding box, which is
// meaningless for an empty extent.
func (e *Extent) Bounds() (xMin, xMax, yMin, yMax float64) {
	return e.box.X0, e.box.X1, e.box.Y0, e.box.Y1
}

// Finalize validates the extent and freezes it into a Mapper
// scaling to the target t.
func (e *Extent) Finalize(t Target) (*Mapper, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	if e.relatives > 0 {
		return nil, &InvalidGeometryError{Reason: RelativeCommands, Relatives: e.relatives}
	}
	if e.points == 0 {
		return nil, &InvalidGeometryError{Reason: NoPoints}
	}
	xLength, yLength := e.box.Width(), e.box.Height()
	if !(xLength > 0 && yLength > 0) || math.IsInf(xLength, 0) || math.IsInf(yLength, 0) {
		return nil, &DegenerateGeometryError{XLength: xLength, YLength: yLength}
	}
	m := &Mapper{
		xMin: e.box.X0, yMin: e.box.Y0,
		xLength: xLength, yLength: yLength,
		targetX: t.Width, targetY: t.Height,
	}
	if m.targetX == 0 {
		m.targetX = xLength
	}
	if m.targetY == 0 {
		m.targetY = yLength
	}
	return m, nil
}
