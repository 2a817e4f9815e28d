// Implements an abstract representation of
// svg path data, restricted to the move, line and
// close commands, which can then be measured and
// rewritten by the fit package.
package svgpath

import (
	"math"
	"strconv"
)

// Point is a coordinate pair, in user units.
type Point struct {
	X, Y float64
}

// Position tells how the coordinates of a command
// are interpreted.
type Position uint8

const (
	// Absolute coordinates are given in the document frame (upper case letters).
	Absolute Position = iota
	// Relative coordinates are offsets from the current point (lower case letters).
	Relative
)

func (p Position) String() string {
	switch p {
	case Absolute:
		return "Absolute"
	case Relative:
		return "Relative"
	default:
		return "<unknown Position>"
	}
}

// Operation groups the different path commands.
// The set of implementations is closed.
type Operation interface {
	// command returns the SVG letter of the operation
	command() byte
}

// MoveTo starts a new sub-path at Point.
type MoveTo struct {
	Position Position
	Point    Point
}

// LineTo draws a straight line from the current point to Point.
type LineTo struct {
	Position Position
	Point    Point
}

// Close joins the ends of the current sub-path.
type Close struct{}

// Unsupported holds a well formed command which has no
// absolute-only rewrite: curves, arcs, and the horizontal
// and vertical line shorthands.
type Unsupported struct {
	Command byte // the SVG letter, its case giving the position
	Args    []float64
}

func (op MoveTo) command() byte {
	if op.Position == Relative {
		return 'm'
	}
	return 'M'
}

func (op LineTo) command() byte {
	if op.Position == Relative {
		return 'l'
	}
	return 'L'
}

func (Close) command() byte { return 'Z' }

func (op Unsupported) command() byte { return op.Command }

// Letter returns the SVG command letter of op.
func Letter(op Operation) byte { return op.command() }

// Path describes a sequence of basic SVG operations.
type Path []Operation

// ToSVGPath returns a string representation of the path,
// using the shortest decimal form of each coordinate.
func (p Path) ToSVGPath() string {
	return string(p.AppendSVG(nil, -1))
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// MaxPrecision is the largest number of decimals used by AppendSVG.
const MaxPrecision = 15

// AppendSVG appends the path data to dst, formatting
// numbers with prec decimals (-1 for the shortest exact form).
// prec is clamped to MaxPrecision.
func (p Path) AppendSVG(dst []byte, prec int) []byte {
	if prec > MaxPrecision {
		prec = MaxPrecision
	} else if prec < -1 {
		prec = -1
	}
	for i, op := range p {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = append(dst, op.command())
		switch op := op.(type) {
		case MoveTo:
			dst = appendPoint(dst, op.Point, prec)
		case LineTo:
			dst = appendPoint(dst, op.Point, prec)
		case Unsupported:
			for j, a := range op.Args {
				if j > 0 {
					dst = append(dst, ',')
				}
				dst = appendNumber(dst, a, prec)
			}
		}
	}
	return dst
}

func appendPoint(dst []byte, pt Point, prec int) []byte {
	dst = appendNumber(dst, pt.X, prec)
	dst = append(dst, ',')
	return appendNumber(dst, pt.Y, prec)
}

func appendNumber(dst []byte, f float64, prec int) []byte {
	if prec >= 0 {
		// rounding may still produce a negative zero, as in -0.0001 with 2 decimals
		pow := math.Pow(10, float64(prec))
		if scaled := f * pow; !math.IsInf(scaled, 0) {
			f = math.Round(scaled) / pow
		}
	}
	if f == 0 {
		f = 0 // avoid printing -0
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'f', prec, 64)
	if prec > 0 {
		// drop the padding zeros: 100.000 -> 100
		end := len(dst)
		for end > start && dst[end-1] == '0' {
			end--
		}
		if end > start && dst[end-1] == '.' {
			end--
		}
		dst = dst[:end]
	}
	return dst
}
