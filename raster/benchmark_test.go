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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

func BenchmarkRasterizerO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			center := float64(size) / 2
			oPath := makeOPath(center, center, float64(size)*0.45, float64(size)*0.30)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.FillEvenOdd(oPath, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorO draws the same shape using x/image/vector.
func BenchmarkVectorO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			center := float32(size) / 2
			outerR := float32(size) * 0.45
			innerR := float32(size) * 0.30

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, center, center, outerR, false)
				addCircleToVector(r, center, center, innerR, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkFreehand strokes a long polyline with round joins, as produced
// by a mouse drag across the canvas.
func BenchmarkFreehand(b *testing.B) {
	const size = 800
	clip := rect.Rect{URx: size, URy: size}
	r := NewRasterizer(clip)

	pts := make([]vec.Vec2, 0, 400)
	for i := range cap(pts) {
		x := float64(i * 2)
		y := size/2 + 200*float64((i/20)%2*2-1)*float64(i%20)/20
		pts = append(pts, vec.Vec2{X: x, Y: y})
	}
	stroke := func(yield func(path.Command, []vec.Vec2) bool) {
		if !yield(path.CmdMoveTo, pts[:1]) {
			return
		}
		for i := 1; i < len(pts); i++ {
			if !yield(path.CmdLineTo, pts[i:i+1]) {
				return
			}
		}
	}
	emit := func(y, xMin int, coverage []float32) {}

	b.ReportAllocs()
	for b.Loop() {
		r.Reset(clip)
		r.Width = 5
		r.Cap = graphics.LineCapRound
		r.Join = graphics.LineJoinRound
		r.Stroke(stroke, emit)
	}
}

// makeOPath creates an "O" shape: the outer circle is counter-clockwise,
// the inner circle clockwise.
func makeOPath(cx, cy, outerR, innerR float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if !addCircleToPath(yield, cx, cy, outerR, false) {
			return
		}
		addCircleToPath(yield, cx, cy, innerR, true)
	}
}

// addCircleToPath adds a circle made of four cubic Bézier curves.  It
// reports whether the consumer wants more path elements.
func addCircleToPath(yield func(path.Command, []vec.Vec2) bool, cx, cy, r float64, clockwise bool) bool {
	const k = 0.5522847498
	kr := k * r

	var buf [3]vec.Vec2

	buf[0] = vec.Vec2{X: cx, Y: cy - r}
	if !yield(path.CmdMoveTo, buf[:1]) {
		return false
	}
	s := 1.0
	if clockwise {
		s = -1
	}
	quarters := [4][3]vec.Vec2{
		{{X: cx + s*kr, Y: cy - r}, {X: cx + s*r, Y: cy - kr}, {X: cx + s*r, Y: cy}},
		{{X: cx + s*r, Y: cy + kr}, {X: cx + s*kr, Y: cy + r}, {X: cx, Y: cy + r}},
		{{X: cx - s*kr, Y: cy + r}, {X: cx - s*r, Y: cy + kr}, {X: cx - s*r, Y: cy}},
		{{X: cx - s*r, Y: cy - kr}, {X: cx - s*kr, Y: cy - r}, {X: cx, Y: cy - r}},
	}
	for _, q := range quarters {
		buf = q
		if !yield(path.CmdCubeTo, buf[:]) {
			return false
		}
	}
	return yield(path.CmdClose, nil)
}

// addCircleToVector adds a circle to a vector.Rasterizer using cubic Bézier curves.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius

	s := float32(1)
	if clockwise {
		s = -1
	}
	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+s*kr, cy-radius, cx+s*radius, cy-kr, cx+s*radius, cy)
	r.CubeTo(cx+s*radius, cy+kr, cx+s*kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-s*kr, cy+radius, cx-s*radius, cy+kr, cx-s*radius, cy)
	r.CubeTo(cx-s*radius, cy-kr, cx-s*kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}
