// Package fit rescales the move and line commands of a set of
// paths into a target box.
//
// The work is done in three phases: the absolute points of every
// path are accumulated in an Extent, which is then validated and
// frozen into a Mapper, used in turn to rewrite each path with
// absolute coordinates only. A single relative command anywhere in
// the document prevents the extent from being finalized, since its
// points cannot be placed in the document frame.
package fit

import (
	"fmt"

	"github.com/benoitkugler/svgfit/svgpath"
)

// Result stores the rewritten paths, in input order.
type Result struct {
	Paths  []svgpath.Path
	Mapper *Mapper
	Frame  Frame
}

// Normalize fits paths into the target box t.
// It fails on the first error, returning no partial result.
func Normalize(paths []svgpath.Path, t Target) (*Result, error) {
	var ext Extent
	for _, p := range paths {
		ext.ObservePath(p)
	}
	m, err := ext.Finalize(t)
	if err != nil {
		return nil, err
	}
	out := make([]svgpath.Path, len(paths))
	for i, p := range paths {
		out[i], err = Rewrite(p, m)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
	}
	return &Result{Paths: out, Mapper: m, Frame: m.Frame(t)}, nil
}
