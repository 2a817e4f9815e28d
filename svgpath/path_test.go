package svgpath

import (
	"strings"
	"testing"
)

func TestAppendSVG(t *testing.T) {
	p := Path{
		MoveTo{Absolute, Point{0, 0}},
		LineTo{Absolute, Point{100, 0}},
		LineTo{Absolute, Point{100, 50}},
		LineTo{Absolute, Point{0, 50}},
		Close{},
	}
	if got := p.ToSVGPath(); got != "M0,0 L100,0 L100,50 L0,50 Z" {
		t.Errorf("unexpected path data %q", got)
	}

	q := Path{
		MoveTo{Absolute, Point{1.0 / 3, -0.0001}},
		LineTo{Relative, Point{2.5, 10}},
	}
	if got := string(q.AppendSVG(nil, 2)); got != "M0.33,0 l2.5,10" {
		t.Errorf("unexpected path data %q", got)
	}
	if got := string(q.AppendSVG([]byte("d="), 0)); got != "d=M0,0 l3,10" {
		t.Errorf("unexpected path data %q", got)
	}
}

func TestLetter(t *testing.T) {
	for _, test := range []struct {
		op   Operation
		want byte
	}{
		{MoveTo{Position: Relative}, 'm'},
		{MoveTo{}, 'M'},
		{LineTo{Position: Relative}, 'l'},
		{LineTo{}, 'L'},
		{Close{}, 'Z'},
		{Unsupported{Command: 'q'}, 'q'},
	} {
		if got := Letter(test.op); got != test.want {
			t.Errorf("Letter(%v): expected %c, got %c", test.op, test.want, got)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	const data = "M0,0 L100,0 L100,50 L0,50 Z"
	p, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String(); got != data {
		t.Errorf("expected %q, got %q", data, got)
	}
}

func TestAppendSVGLargePrecision(t *testing.T) {
	p := Path{
		MoveTo{Absolute, Point{0, 0}},
		LineTo{Absolute, Point{100, 0.1}},
		LineTo{Absolute, Point{1e300, -2.5}},
	}
	for _, prec := range []int{15, 16, 400} {
		got := string(p.AppendSVG(nil, prec))
		if strings.Contains(got, "NaN") || strings.Contains(got, "Inf") {
			t.Fatalf("precision %d: invalid number in %q", prec, got)
		}
		if !strings.HasPrefix(got, "M0,0 L100,0.1 L1") || !strings.HasSuffix(got, ",-2.5") {
			t.Errorf("precision %d: unexpected path data %q", prec, got)
		}
	}
	if got := string(p[:2].AppendSVG(nil, -7)); got != "M0,0 L100,0.1" {
		t.Errorf("unexpected path data %q", got)
	}
}
