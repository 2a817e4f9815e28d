package fit

import "github.com/benoitkugler/svgfit/svgpath"

// Rewrite maps every endpoint of p with m, emitting absolute commands only.
// A close is appended unless p already ends with one.
// An Unsupported operation aborts the rewrite.
func Rewrite(p svgpath.Path, m *Mapper) (svgpath.Path, error) {
	out := make(svgpath.Path, 0, len(p)+1)
	for i, op := range p {
		switch op := op.(type) {
		case svgpath.MoveTo:
			out = append(out, svgpath.MoveTo{Position: svgpath.Absolute, Point: m.Map(op.Point)})
		case svgpath.LineTo:
			out = append(out, svgpath.LineTo{Position: svgpath.Absolute, Point: m.Map(op.Point)})
		case svgpath.Close:
			out = append(out, svgpath.Close{})
		default:
			return nil, &UnsupportedCommandError{Command: svgpath.Letter(op), Index: i}
		}
	}
	if len(out) == 0 {
		return append(out, svgpath.Close{}), nil
	}
	if _, closed := out[len(out)-1].(svgpath.Close); !closed {
		out = append(out, svgpath.Close{})
	}
	return out, nil
}
