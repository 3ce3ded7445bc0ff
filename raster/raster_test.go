// seehuhn.de/go/paint - a raster drawing surface
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// approaches forces each of the two accumulation strategies.
var approaches = []struct {
	name      string
	threshold int
}{
	{"small", 1 << 30},
	{"large", 0},
}

// grid collects coverage values into a w×h buffer.
type grid struct {
	w, h int
	v    []float32
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, v: make([]float32, w*h)}
}

func (g *grid) emit(t *testing.T) Coverage {
	return func(y, xMin int, coverage []float32) {
		if y < 0 || y >= g.h || xMin < 0 || xMin+len(coverage) > g.w {
			t.Errorf("row %d, columns %d..%d outside %dx%d", y, xMin, xMin+len(coverage), g.w, g.h)
			return
		}
		copy(g.v[y*g.w+xMin:], coverage)
	}
}

func (g *grid) at(x, y int) float32 {
	return g.v[y*g.w+x]
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func polygon(vs ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, vs[:1]) {
			return
		}
		for i := 1; i < len(vs); i++ {
			if !yield(path.CmdLineTo, vs[i:i+1]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}

func line(x0, y0, x1, y1 float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{{X: x0, Y: y0}}) {
			return
		}
		yield(path.CmdLineTo, []vec.Vec2{{X: x1, Y: y1}})
	}
}

// TestTriangleCoverage verifies exact coverage values for a simple triangle.
// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := polygon(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 1})

	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 10, URy: 1})
			r.smallPathThreshold = a.threshold

			g := newGrid(10, 1)
			r.Fill(triangle, g.emit(t))

			const epsilon = 1e-6
			for x := range 10 {
				expected := float32(2*x+1) / 20.0
				if math.Abs(float64(g.at(x, 0)-expected)) > epsilon {
					t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, g.at(x, 0))
				}
			}
		})
	}
}

// TestApproachesAgree checks that both accumulation strategies produce the
// same coverage for curved shapes with holes.
func TestApproachesAgree(t *testing.T) {
	const size = 40
	o := makeOPath(size/2, size/2, 0.45*size, 0.3*size)

	var results [2]*grid
	for i, a := range approaches {
		r := NewRasterizer(rect.Rect{URx: size, URy: size})
		r.smallPathThreshold = a.threshold
		results[i] = newGrid(size, size)
		r.FillEvenOdd(o, results[i].emit(t))
	}

	const epsilon = 1e-4
	for i := range results[0].v {
		d := results[0].v[i] - results[1].v[i]
		if math.Abs(float64(d)) > epsilon {
			t.Fatalf("pixel (%d, %d): %g vs %g",
				i%size, i/size, results[0].v[i], results[1].v[i])
		}
	}

	// the centre of the "O" is a hole, the ring itself is solid
	if c := results[0].at(size/2, size/2); !near(c, 0) {
		t.Errorf("centre coverage %g, want 0", c)
	}
	if c := results[0].at(size/2, 3); c < 0.99 {
		t.Errorf("ring coverage %g, want 1", c)
	}
}

func TestFillRules(t *testing.T) {
	// Two nested squares with the same orientation: the inner square is
	// filled under the nonzero rule and empty under the even-odd rule.
	nested := func(yield func(path.Command, []vec.Vec2) bool) {
		for _, p := range []path.Path{
			polygon(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 0, Y: 10}),
			polygon(vec.Vec2{X: 3, Y: 3}, vec.Vec2{X: 7, Y: 3}, vec.Vec2{X: 7, Y: 7}, vec.Vec2{X: 3, Y: 7}),
		} {
			for cmd, pts := range p {
				if !yield(cmd, pts) {
					return
				}
			}
		}
	}

	clip := rect.Rect{URx: 10, URy: 10}
	r := NewRasterizer(clip)

	nz := newGrid(10, 10)
	r.Fill(nested, nz.emit(t))
	if c := nz.at(5, 5); !near(c, 1) {
		t.Errorf("nonzero: centre coverage %g, want 1", c)
	}

	eo := newGrid(10, 10)
	r.FillEvenOdd(nested, eo.emit(t))
	if c := eo.at(5, 5); !near(c, 0) {
		t.Errorf("even-odd: centre coverage %g, want 0", c)
	}
	if c := eo.at(1, 1); !near(c, 1) {
		t.Errorf("even-odd: corner coverage %g, want 1", c)
	}
}

func TestClip(t *testing.T) {
	for _, a := range approaches {
		t.Run(a.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 8, URy: 6})
			r.smallPathThreshold = a.threshold

			// the grid reports any output outside the clip rectangle
			g := newGrid(8, 6)
			r.Fill(polygon(vec.Vec2{X: -5, Y: -5}, vec.Vec2{X: 20, Y: -5},
				vec.Vec2{X: 20, Y: 20}, vec.Vec2{X: -5, Y: 20}), g.emit(t))

			for i, c := range g.v {
				if !near(c, 1) {
					t.Fatalf("pixel (%d, %d): coverage %g, want 1", i%8, i/8, c)
				}
			}
		})
	}
}

func TestCTM(t *testing.T) {
	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.CTM = matrix.Translate(2, 3)

	g := newGrid(10, 10)
	r.Fill(polygon(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1, Y: 0},
		vec.Vec2{X: 1, Y: 1}, vec.Vec2{X: 0, Y: 1}), g.emit(t))

	for y := range 10 {
		for x := range 10 {
			want := float32(0)
			if x == 2 && y == 3 {
				want = 1
			}
			if got := g.at(x, y); !near(got, want) {
				t.Errorf("pixel (%d, %d): coverage %g, want %g", x, y, got, want)
			}
		}
	}
}

func TestStrokeCaps(t *testing.T) {
	type testCase struct {
		name     string
		cap      graphics.LineCapStyle
		endCover bool // whether the pixels beyond the end points are covered
	}
	cases := []testCase{
		{"butt", graphics.LineCapButt, false},
		{"round", graphics.LineCapRound, true},
		{"square", graphics.LineCapSquare, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasterizer(rect.Rect{URx: 12, URy: 10})
			r.Width = 2
			r.Cap = tc.cap

			g := newGrid(12, 10)
			r.Stroke(line(2, 5, 8, 5), g.emit(t))

			// the body of the stroke covers rows 4 and 5 between x=2 and x=8
			for y := 4; y <= 5; y++ {
				for x := 2; x < 8; x++ {
					if c := g.at(x, y); c < 0.999 {
						t.Errorf("body pixel (%d, %d): coverage %g", x, y, c)
					}
				}
			}
			for x := range 12 {
				if c := g.at(x, 3) + g.at(x, 6); c > 1e-6 {
					t.Errorf("pixel column %d: coverage %g outside stroke", x, c)
				}
			}

			covered := g.at(1, 4) > 0.5 && g.at(8, 5) > 0.5
			if covered != tc.endCover {
				t.Errorf("cap coverage: %g %g", g.at(1, 4), g.at(8, 5))
			}
		})
	}
}

func TestStrokeDot(t *testing.T) {
	dot := func(yield func(path.Command, []vec.Vec2) bool) {
		p := []vec.Vec2{{X: 5, Y: 5}}
		if !yield(path.CmdMoveTo, p) {
			return
		}
		yield(path.CmdLineTo, p)
	}

	r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
	r.Width = 4

	g := newGrid(10, 10)
	r.Stroke(dot, g.emit(t))
	for i, c := range g.v {
		if c != 0 {
			t.Fatalf("butt cap: pixel (%d, %d) has coverage %g", i%10, i/10, c)
		}
	}

	r.Cap = graphics.LineCapRound
	r.Stroke(dot, g.emit(t))
	var total float64
	for _, c := range g.v {
		total += float64(c)
	}
	// The disc of radius 2 is approximated by an inscribed polygon, so
	// the area is slightly smaller than 4π.
	if total > 4*math.Pi+1e-3 || total < 10 {
		t.Errorf("round cap: total coverage %g, want about %g", total, 4*math.Pi)
	}
}

func TestStrokeJoins(t *testing.T) {
	// A right angle at (5, 5).  Only the miter join reaches the outer
	// corner pixel.
	corner := func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, []vec.Vec2{{X: 1, Y: 5}}) {
			return
		}
		if !yield(path.CmdLineTo, []vec.Vec2{{X: 5, Y: 5}}) {
			return
		}
		yield(path.CmdLineTo, []vec.Vec2{{X: 5, Y: 9}})
	}

	joins := []struct {
		join graphics.LineJoinStyle
		want bool
	}{
		{graphics.LineJoinMiter, true},
		{graphics.LineJoinRound, false},
		{graphics.LineJoinBevel, false},
	}
	for _, j := range joins {
		r := NewRasterizer(rect.Rect{URx: 10, URy: 10})
		r.Width = 4
		r.Join = j.join

		g := newGrid(10, 10)
		r.Stroke(corner, g.emit(t))

		// outer corner of the miter is at (7, 3)
		got := g.at(6, 3) > 0.99
		if got != j.want {
			t.Errorf("join %d: corner pixel coverage %g", j.join, g.at(6, 3))
		}
	}
}
