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

package shape

import (
	"image"
	"image/color"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/paint/canvas"
	"seehuhn.de/go/paint/raster"
)

// pixelCentres maps integer pixel coordinates to the centres of the
// corresponding device pixels.
var pixelCentres = matrix.Matrix{1, 0, 0, 1, 0.5, 0.5}

// coverageThreshold is the coverage at which a pixel is set when
// anti-aliasing is off.
const coverageThreshold = 0.5

// Painter draws shapes onto a canvas.  It keeps a rasterizer between calls
// to avoid repeated allocations, but carries no drawing state: every call
// is fully described by its arguments.
//
// A Painter is not safe for concurrent use.  The zero value is ready to
// use.
type Painter struct {
	// Antialias enables blending of partially covered pixels.
	Antialias bool

	r *raster.Rasterizer
}

// rasterizer prepares the rasterizer for drawing onto c.
func (p *Painter) rasterizer(c *canvas.Canvas, width int, style CapStyle) *raster.Rasterizer {
	clip := rect.Rect{URx: float64(c.Width()), URy: float64(c.Height())}
	if p.r == nil {
		p.r = raster.NewRasterizer(clip)
	} else {
		p.r.Reset(clip)
	}
	p.r.CTM = pixelCentres
	p.r.Width = float64(max(width, 1))
	switch style {
	case CapRound:
		p.r.Cap = graphics.LineCapRound
		p.r.Join = graphics.LineJoinRound
	default:
		p.r.Cap = graphics.LineCapButt
		p.r.Join = graphics.LineJoinMiter
	}
	return p.r
}

// paint returns a coverage callback which writes col to c.
func (p *Painter) paint(c *canvas.Canvas, col color.RGBA) raster.Coverage {
	if p.Antialias {
		return func(y, xMin int, coverage []float32) {
			for i, v := range coverage {
				c.Blend(xMin+i, y, col, v)
			}
		}
	}
	return func(y, xMin int, coverage []float32) {
		for i, v := range coverage {
			if v >= coverageThreshold {
				c.Set(xMin+i, y, col)
			}
		}
	}
}

// Point draws a filled disc of the given diameter centred at (x, y).
func (p *Painter) Point(c *canvas.Canvas, x, y int, col color.RGBA, diameter int) {
	r := p.rasterizer(c, diameter, CapRound)
	r.Stroke(dot(x, y), p.paint(c, col))
}

// Segment draws a straight stroke from (x1, y1) to (x2, y2).
func (p *Painter) Segment(c *canvas.Canvas, x1, y1, x2, y2 int, col color.RGBA, width int, style CapStyle) {
	r := p.rasterizer(c, width, style)
	r.Stroke(polyline(false, pt(x1, y1), pt(x2, y2)), p.paint(c, col))
}

// Rectangle draws the outline of the rectangle with corners (x1, y1) and
// (x2, y2).  The corners may be given in any order.
func (p *Painter) Rectangle(c *canvas.Canvas, x1, y1, x2, y2 int, col color.RGBA, width int) {
	x, y, w, h := normalize(x1, y1, x2, y2)
	if w == 0 || h == 0 {
		p.collapsed(c, x, y, w, h, col, width)
		return
	}
	r := p.rasterizer(c, width, CapButt)
	r.Stroke(polyline(true,
		pt(x, y), pt(x+w, y), pt(x+w, y+h), pt(x, y+h)), p.paint(c, col))
}

// Ellipse draws the outline of the ellipse inscribed in the rectangle with
// corners (x1, y1) and (x2, y2).  The corners may be given in any order.
func (p *Painter) Ellipse(c *canvas.Canvas, x1, y1, x2, y2 int, col color.RGBA, width int) {
	x, y, w, h := normalize(x1, y1, x2, y2)
	if w == 0 || h == 0 {
		p.collapsed(c, x, y, w, h, col, width)
		return
	}
	rx, ry := float64(w)/2, float64(h)/2
	r := p.rasterizer(c, width, CapButt)
	r.Stroke(ellipse(float64(x)+rx, float64(y)+ry, rx, ry), p.paint(c, col))
}

// collapsed draws an outline whose bounding box has zero width or height.
// Such an outline covers the bounding box, widened by half the stroke
// width on every side.
func (p *Painter) collapsed(c *canvas.Canvas, x, y, w, h int, col color.RGBA, width int) {
	r := p.rasterizer(c, width, CapButt)
	d := r.Width / 2
	x0, y0 := float64(x)-d, float64(y)-d
	x1, y1 := float64(x+w)+d, float64(y+h)+d
	r.Fill(polyline(true,
		vec.Vec2{X: x0, Y: y0}, vec.Vec2{X: x1, Y: y0},
		vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x0, Y: y1}), p.paint(c, col))
}

// Stroke draws a freehand stroke through the given points, using round
// caps and joins.  A single point is drawn as a disc.
func (p *Painter) Stroke(c *canvas.Canvas, points []image.Point, col color.RGBA, width int) {
	switch len(points) {
	case 0:
		return
	case 1:
		p.Point(c, points[0].X, points[0].Y, col, width)
		return
	}
	vs := make([]vec.Vec2, len(points))
	for i, q := range points {
		vs[i] = pt(q.X, q.Y)
	}
	r := p.rasterizer(c, width, CapRound)
	r.Stroke(polyline(false, vs...), p.paint(c, col))
}

// Draw rasterizes s using the tool configuration st.
func (p *Painter) Draw(c *canvas.Canvas, s Shape, st StrokeState) {
	saved := p.Antialias
	p.Antialias = st.Antialias
	defer func() { p.Antialias = saved }()

	w := st.width()
	switch s.Kind {
	case Point:
		p.Point(c, s.X1, s.Y1, st.Colour, w)
	case Line:
		p.Segment(c, s.X1, s.Y1, s.X2, s.Y2, st.Colour, w, CapButt)
	case Segment:
		p.Segment(c, s.X1, s.Y1, s.X2, s.Y2, st.Colour, w, CapRound)
	case Rectangle:
		p.Rectangle(c, s.X1, s.Y1, s.X2, s.Y2, st.Colour, w)
	case Ellipse:
		p.Ellipse(c, s.X1, s.Y1, s.X2, s.Y2, st.Colour, w)
	}
}

// DrawPoint draws a filled disc of the given diameter centred at (x, y).
// This is the unit of freehand drawing.
func DrawPoint(c *canvas.Canvas, x, y int, col color.RGBA, diameter int) {
	var p Painter
	p.Point(c, x, y, col, diameter)
}

// DrawSegment draws a straight stroke between two points.  Freehand tools
// use CapRound, the line tool uses CapButt.
func DrawSegment(c *canvas.Canvas, x1, y1, x2, y2 int, col color.RGBA, width int, style CapStyle) {
	var p Painter
	p.Segment(c, x1, y1, x2, y2, col, width, style)
}

// DrawRectangleOutline draws the outline of the rectangle spanned by
// (x1, y1) and (x2, y2), with mitered corners.
func DrawRectangleOutline(c *canvas.Canvas, x1, y1, x2, y2 int, col color.RGBA, width int) {
	var p Painter
	p.Rectangle(c, x1, y1, x2, y2, col, width)
}

// DrawEllipseOutline draws the outline of the ellipse inscribed in the
// rectangle spanned by (x1, y1) and (x2, y2).
func DrawEllipseOutline(c *canvas.Canvas, x1, y1, x2, y2 int, col color.RGBA, width int) {
	var p Painter
	p.Ellipse(c, x1, y1, x2, y2, col, width)
}

// DrawStroke draws a freehand stroke through points using st.
func DrawStroke(c *canvas.Canvas, points []image.Point, st StrokeState) {
	p := Painter{Antialias: st.Antialias}
	p.Stroke(c, points, st.Colour, st.width())
}

// Draw rasterizes s onto c using the tool configuration st.
func Draw(c *canvas.Canvas, s Shape, st StrokeState) {
	var p Painter
	p.Draw(c, s, st)
}

func pt(x, y int) vec.Vec2 {
	return vec.Vec2{X: float64(x), Y: float64(y)}
}

// dot is a subpath consisting of a single point.
func dot(x, y int) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		p := []vec.Vec2{pt(x, y)}
		if !yield(path.CmdMoveTo, p) {
			return
		}
		yield(path.CmdLineTo, p)
	}
}

// polyline builds a path through the given vertices.
func polyline(closed bool, vs ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if len(vs) == 0 {
			return
		}
		if !yield(path.CmdMoveTo, vs[:1]) {
			return
		}
		for i := 1; i < len(vs); i++ {
			if !yield(path.CmdLineTo, vs[i:i+1]) {
				return
			}
		}
		if closed {
			yield(path.CmdClose, nil)
		}
	}
}

// ellipse approximates an axis-parallel ellipse by four cubic Bézier
// curves.
func ellipse(cx, cy, rx, ry float64) path.Path {
	const k = 0.5522847498 // 4/3·(√2−1)
	kx, ky := k*rx, k*ry
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		buf[0] = vec.Vec2{X: cx + rx, Y: cy}
		if !yield(path.CmdMoveTo, buf[:1]) {
			return
		}
		quarters := [4][3]vec.Vec2{
			{{X: cx + rx, Y: cy + ky}, {X: cx + kx, Y: cy + ry}, {X: cx, Y: cy + ry}},
			{{X: cx - kx, Y: cy + ry}, {X: cx - rx, Y: cy + ky}, {X: cx - rx, Y: cy}},
			{{X: cx - rx, Y: cy - ky}, {X: cx - kx, Y: cy - ry}, {X: cx, Y: cy - ry}},
			{{X: cx + kx, Y: cy - ry}, {X: cx + rx, Y: cy - ky}, {X: cx + rx, Y: cy}},
		}
		for _, q := range quarters {
			buf = q
			if !yield(path.CmdCubeTo, buf[:]) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}
