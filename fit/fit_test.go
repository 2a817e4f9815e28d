package fit

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/benoitkugler/svgfit/svgpath"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustParse(t *testing.T, data string) svgpath.Path {
	t.Helper()
	p, err := svgpath.Parse(data)
	if err != nil {
		t.Fatalf("can't parse %q: %s", data, err)
	}
	return p
}

func TestNormalizeSquare(t *testing.T) {
	p := mustParse(t, "M0,0 L10,0 L10,10 L0,10 Z")
	res, err := Normalize([]svgpath.Path{p}, Target{Width: 100, Height: 50})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Paths[0].String(); got != "M0,0 L100,0 L100,50 L0,50 Z" {
		t.Errorf("unexpected output %q", got)
	}
	if got := res.Frame.ViewBox(); got != "0 0 100 50" {
		t.Errorf("unexpected viewBox %q", got)
	}
}

func TestRelativeTaintsDocument(t *testing.T) {
	paths := []svgpath.Path{
		mustParse(t, "M0,0 L10,0 L10,10 Z"),
		mustParse(t, "M0,0 l5,5 Z"),
		mustParse(t, "M20,20 L30,30"),
	}
	_, err := Normalize(paths, Target{})
	var gerr *InvalidGeometryError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected an InvalidGeometryError, got %v", err)
	}
	if gerr.Reason != RelativeCommands || gerr.Relatives != 1 {
		t.Errorf("unexpected error %v", gerr)
	}
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Error("expected ErrInvalidGeometry to match")
	}
}

func TestNoPoints(t *testing.T) {
	for _, paths := range [][]svgpath.Path{
		nil,
		{nil},
		{mustParse(t, "Z z")},
	} {
		_, err := Normalize(paths, Target{})
		var gerr *InvalidGeometryError
		if !errors.As(err, &gerr) || gerr.Reason != NoPoints {
			t.Errorf("expected a NoPoints error, got %v", err)
		}
	}
}

func TestDegenerate(t *testing.T) {
	for _, data := range []string{
		"M5,5",
		"M5,0 L5,10 L5,3",
		"M0,7 L10,7",
	} {
		_, err := Normalize([]svgpath.Path{mustParse(t, data)}, Target{Width: 10, Height: 10})
		var derr *DegenerateGeometryError
		if !errors.As(err, &derr) {
			t.Errorf("%s: expected a DegenerateGeometryError, got %v", data, err)
		}
		if !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("%s: expected ErrInvalidGeometry to match", data)
		}
	}
}

func TestUnsupportedCommand(t *testing.T) {
	p := mustParse(t, "M0,0 L10,10 Q1,2 3,4 Z")
	_, err := Normalize([]svgpath.Path{mustParse(t, "M0,0 L1,1"), p}, Target{})
	var uerr *UnsupportedCommandError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected an UnsupportedCommandError, got %v", err)
	}
	if uerr.Command != 'Q' || uerr.Index != 2 {
		t.Errorf("unexpected error %v", uerr)
	}
	if errors.Is(err, ErrInvalidGeometry) {
		t.Error("unsupported command should not be a geometry error")
	}
}

func TestRelativeReportedBeforeUnsupported(t *testing.T) {
	p := mustParse(t, "M0,0 C1,1 2,2 3,3 l4,4")
	_, err := Normalize([]svgpath.Path{p}, Target{})
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected a geometry error, got %v", err)
	}
}

func TestInvalidTarget(t *testing.T) {
	var ext Extent
	ext.ObservePath(mustParse(t, "M0,0 L1,1"))
	for _, target := range []Target{{Width: -1}, {Height: -5}} {
		if _, err := ext.Finalize(target); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("%v: expected ErrInvalidTarget, got %v", target, err)
		}
	}
}

func TestExtent(t *testing.T) {
	var ext Extent
	if !ext.Empty() || !ext.AllAbsolute() {
		t.Fatal("zero Extent should be empty and absolute")
	}
	ext.ObservePath(mustParse(t, "M3,-2 L-1,4 Z m100,100 L2,8 H50"))
	xMin, xMax, yMin, yMax := ext.Bounds()
	if xMin != -1 || xMax != 3 || yMin != -2 || yMax != 8 {
		t.Errorf("unexpected bounds %g %g %g %g", xMin, xMax, yMin, yMax)
	}
	if ext.AllAbsolute() || ext.Relatives() != 1 {
		t.Errorf("expected one relative command, got %d", ext.Relatives())
	}
}

func TestExtentAwayFromOrigin(t *testing.T) {
	var ext Extent
	ext.ObservePath(mustParse(t, "M5,6 L7,9 L6,7"))
	xMin, xMax, yMin, yMax := ext.Bounds()
	if xMin != 5 || xMax != 7 || yMin != 6 || yMax != 9 {
		t.Errorf("unexpected bounds %g %g %g %g", xMin, xMax, yMin, yMax)
	}
	m, err := ext.Finalize(Target{})
	if err != nil {
		t.Fatal(err)
	}
	if m.XLength() != 2 || m.YLength() != 3 {
		t.Errorf("unexpected lengths %g x %g", m.XLength(), m.YLength())
	}
	if got := m.Map(svgpath.Point{X: 7, Y: 9}); got != (svgpath.Point{X: 2, Y: 3}) {
		t.Errorf("expected the far corner at the target size, got %v", got)
	}
}

func TestIdentityScale(t *testing.T) {
	p := mustParse(t, "M0,0 L37.5,12 L20,40.25 Z")
	res, err := Normalize([]svgpath.Path{p}, Target{})
	if err != nil {
		t.Fatal(err)
	}
	want := svgpath.Path{
		svgpath.MoveTo{Point: svgpath.Point{X: 0, Y: 0}},
		svgpath.LineTo{Point: svgpath.Point{X: 37.5, Y: 12}},
		svgpath.LineTo{Point: svgpath.Point{X: 20, Y: 40.25}},
		svgpath.Close{},
	}
	if diff := cmp.Diff(want, res.Paths[0], cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("identity scale mismatch (-want +got):\n%s", diff)
	}
	if res.Frame != (Frame{Width: 38, Height: 40}) {
		t.Errorf("unexpected frame %v", res.Frame)
	}
}

func TestFrame(t *testing.T) {
	var ext Extent
	ext.ObservePath(mustParse(t, "M10,10 L12.5,13.5"))
	for _, test := range []struct {
		target Target
		want   Frame
	}{
		{Target{}, Frame{3, 4}},
		{Target{Width: 100, Height: 50}, Frame{100, 50}},
		{Target{Width: 100}, Frame{100, 4}},
		{Target{Height: 7}, Frame{3, 7}},
	} {
		m, err := ext.Finalize(test.target)
		if err != nil {
			t.Fatal(err)
		}
		if got := m.Frame(test.target); got != test.want {
			t.Errorf("Frame(%v): expected %v, got %v", test.target, test.want, got)
		}
	}
}

func TestBoundedAbsoluteClosed(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for round := 0; round < 50; round++ {
		var paths []svgpath.Path
		for i, n := 0, 1+rng.Intn(4); i < n; i++ {
			p := svgpath.Path{svgpath.MoveTo{Point: svgpath.Point{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100}}}
			for j, n := 0, 1+rng.Intn(6); j < n; j++ {
				p = append(p, svgpath.LineTo{Point: svgpath.Point{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100}})
			}
			if rng.Intn(2) == 0 {
				p = append(p, svgpath.Close{})
			}
			paths = append(paths, p)
		}
		target := Target{Width: float64(1 + rng.Intn(255)), Height: float64(1 + rng.Intn(255))}
		res, err := Normalize(paths, target)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range res.Paths {
			closes := 0
			for _, op := range p {
				switch op := op.(type) {
				case svgpath.MoveTo:
					checkPoint(t, op.Position, op.Point, target)
				case svgpath.LineTo:
					checkPoint(t, op.Position, op.Point, target)
				case svgpath.Close:
					closes++
				}
			}
			if _, ok := p[len(p)-1].(svgpath.Close); !ok || closes != 1 {
				t.Errorf("path %s should end with exactly one close", p)
			}
		}
	}
}

func checkPoint(t *testing.T, pos svgpath.Position, pt svgpath.Point, target Target) {
	t.Helper()
	if pos != svgpath.Absolute {
		t.Errorf("unexpected relative point %v", pt)
	}
	if pt.X < 0 || pt.X > target.Width || pt.Y < 0 || pt.Y > target.Height {
		t.Errorf("point %v out of %v", pt, target)
	}
}

func TestRewriteClosure(t *testing.T) {
	var ext Extent
	ext.ObservePath(mustParse(t, "M0,0 L2,2"))
	m, err := ext.Finalize(Target{})
	if err != nil {
		t.Fatal(err)
	}
	for data, want := range map[string]string{
		"M0,0 L2,2":        "M0,0 L2,2 Z",
		"M0,0 L2,2 Z":      "M0,0 L2,2 Z",
		"M0,0 Z M1,1 L2,2": "M0,0 Z M1,1 L2,2 Z",
		"":                 "Z",
	} {
		got, err := Rewrite(mustParse(t, data), m)
		if err != nil {
			t.Fatal(err)
		}
		if got.String() != want {
			t.Errorf("Rewrite(%q): expected %q, got %q", data, want, got)
		}
	}
}
