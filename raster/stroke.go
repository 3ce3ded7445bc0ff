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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened piece of a subpath, in user space.
type strokeSegment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent, A→B
	N    vec.Vec2 // unit normal, 90° counter-clockwise from T
}

// Stroke rasterizes the outline of p using Width, Cap, Join and
// MiterLimit.  Subpaths which consist of a single point are drawn as
// discs of diameter Width when Cap is round, and are omitted otherwise.
func (r *Rasterizer) Stroke(p path.Path, emit Coverage) {
	r.flattenPath(p)
	if len(r.segsOffsets) == 0 && len(r.dots) == 0 {
		return
	}

	// All outline polygons go into one compound path, filled with the
	// nonzero rule, so that overlapping parts are painted only once.
	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.dots {
			start := len(r.stroke)
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, true)
			r.strokeOffsets = append(r.strokeOffsets, start)
		}
	}

	for i := range r.segsOffsets {
		start := len(r.stroke)
		r.strokeSubpath(r.subpathSegments(i), r.subpathClosed[i])
		if len(r.stroke)-start >= 3 {
			r.strokeOffsets = append(r.strokeOffsets, start)
		} else {
			r.stroke = r.stroke[:start]
		}
	}

	r.fillStrokeOutlines(emit)
}

func (r *Rasterizer) subpathSegments(i int) []strokeSegment {
	end := len(r.segs)
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	}
	return r.segs[r.segsOffsets[i]:end]
}

// flattenPath splits p into flattened subpaths.  The results are stored in
// r.segs, r.segsOffsets and r.subpathClosed; subpaths without direction
// end up in r.dots.
func (r *Rasterizer) flattenPath(p path.Path) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.dots = r.dots[:0]

	var current, start vec.Vec2
	first := 0     // index into r.segs where the current subpath starts
	open := false  // inside a subpath
	drawn := false // saw a drawing command in the current subpath

	finish := func(closed bool) {
		switch {
		case len(r.segs) > first:
			r.segsOffsets = append(r.segsOffsets, first)
			r.subpathClosed = append(r.subpathClosed, closed)
		case drawn || closed:
			r.dots = append(r.dots, start)
		}
	}

	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				finish(false)
			}
			current = pts[0]
			start = current
			first = len(r.segs)
			open = true
			drawn = false

		case path.CmdLineTo:
			if !open {
				continue
			}
			drawn = true
			r.addStrokeSegment(current, pts[0])
			current = pts[0]

		case path.CmdQuadTo:
			if !open {
				continue
			}
			drawn = true
			r.flattenQuadratic(current, pts[0], pts[1], r.addStrokeSegment)
			current = pts[1]

		case path.CmdCubeTo:
			if !open {
				continue
			}
			drawn = true
			r.flattenCubic(current, pts[0], pts[1], pts[2], r.addStrokeSegment)
			current = pts[2]

		case path.CmdClose:
			if !open {
				continue
			}
			if current != start {
				r.addStrokeSegment(current, start)
			}
			finish(true)
			current = start
			first = len(r.segs)
			open = false
			drawn = false
		}
	}
	if open && drawn {
		finish(false)
	}
}

// addStrokeSegment appends the segment a→b, skipping zero-length pieces.
func (r *Rasterizer) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// cross returns the z-component of the cross product of two tangents.
// Positive values mean a turn towards +N.
func cross(t1, t2 vec.Vec2) float64 {
	return t1.X*t2.Y - t1.Y*t2.X
}

// strokeSubpath appends the outline polygon of one subpath to r.stroke.
// The polygon runs forward along the +N side and back along the -N side;
// join geometry is only added on the outer side of each corner.
func (r *Rasterizer) strokeSubpath(segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2
	if closed {
		r.strokeClosed(segs, d)
	} else {
		r.strokeOpen(segs, d)
	}
}

func (r *Rasterizer) strokeOpen(segs []strokeSegment, d float64) {
	first := &segs[0]
	last := &segs[len(segs)-1]

	r.addCap(first.A, first.T.Mul(-1), d)

	skip := false
	for i := range segs {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)))
		}
		skip = false
		if i == len(segs)-1 {
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			break
		}
		next := &segs[i+1]
		s := cross(seg.T, next.T)
		switch {
		case math.Abs(s) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
		case s > 0:
			skip = r.addInnerCorner(seg.B, seg.T, next.T, seg.N, next.N, d, true)
		default:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
		}
	}

	r.addCap(last.B, last.T, d)

	skip = false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.B.Sub(seg.N.Mul(d)))
		}
		skip = false
		if i == 0 {
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		s := cross(prev.T, seg.T)
		switch {
		case math.Abs(s) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
		case s > 0:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
		default:
			skip = r.addInnerCorner(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
		}
	}
}

func (r *Rasterizer) strokeClosed(segs []strokeSegment, d float64) {
	first := &segs[0]
	last := &segs[len(segs)-1]
	sClose := cross(last.T, first.T)

	// forward along +N, including the closing corner
	r.stroke = append(r.stroke, first.A.Add(first.N.Mul(d)))
	for i := range segs {
		seg := &segs[i]
		next := first
		s := sClose
		if i < len(segs)-1 {
			next = &segs[i+1]
			s = cross(seg.T, next.T)
		}
		switch {
		case math.Abs(s) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)), next.A.Add(next.N.Mul(d)))
		case s > 0:
			r.addInnerCorner(seg.B, seg.T, next.T, seg.N, next.N, d, true)
		default:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
			r.stroke = append(r.stroke, next.A.Add(next.N.Mul(d)))
		}
	}

	// backward along -N, starting with the closing corner
	switch {
	case math.Abs(sClose) < collinearityThreshold:
		r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)), last.B.Sub(last.N.Mul(d)))
	case sClose > 0:
		r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
		r.addJoin(first.A, last.T, first.T, d, false)
		r.stroke = append(r.stroke, last.B.Sub(last.N.Mul(d)))
	default:
		r.addInnerCorner(first.A, last.T, first.T, last.N, first.N, d, false)
	}
	for i := len(segs) - 1; i > 0; i-- {
		seg := &segs[i]
		prev := &segs[i-1]
		s := cross(prev.T, seg.T)
		switch {
		case math.Abs(s) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)), prev.B.Sub(prev.N.Mul(d)))
		case s > 0:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
			r.stroke = append(r.stroke, prev.B.Sub(prev.N.Mul(d)))
		default:
			r.addInnerCorner(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
		}
	}
	r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
}

// addCap appends the cap at P.  T points away from the line.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.stroke = append(r.stroke, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(P, d, N, -math.Pi, true)
	}
	// butt caps need no extra vertices
}

// innerIntersection returns the point where the two inner offset lines of
// a corner meet.
func innerIntersection(P, T1, T2 vec.Vec2, d float64, plusSide bool) (vec.Vec2, bool) {
	cosTheta := T1.Dot(T2)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}
	half := math.Sqrt((1 + cosTheta) / 2)
	if half < 1e-9 {
		return vec.Vec2{}, false
	}

	dir := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
	if !plusSide {
		dir = dir.Mul(-1)
	}
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	return P.Add(dir.Mul(d / (l * half))), true
}

// addInnerCorner appends the inner side of a corner.  It reports whether
// the intersection point was used, in which case the caller must skip the
// offset point of the following segment.
func (r *Rasterizer) addInnerCorner(P, T1, T2, N1, N2 vec.Vec2, d float64, plusSide bool) bool {
	if pt, ok := innerIntersection(P, T1, T2, d, plusSide); ok {
		r.stroke = append(r.stroke, pt)
		return true
	}
	if plusSide {
		r.stroke = append(r.stroke, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
	} else {
		r.stroke = append(r.stroke, P.Sub(N1.Mul(d)), P.Sub(N2.Mul(d)))
	}
	return false
}

// addJoin appends the outer join geometry at P, where the tangent turns
// from T1 to T2.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64, plusSide bool) {
	cosTheta := T1.Dot(T2)
	sinTheta := cross(T1, T2)
	if math.Abs(sinTheta) < collinearityThreshold {
		return
	}
	if cosTheta < cuspCosineThreshold {
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		// The miter length relative to the line width is 1/sin(φ/2), where
		// φ is the interior angle of the corner; sin(φ/2) = cos(θ/2).
		half := math.Sqrt((1 + cosTheta) / 2)
		const eps = 1e-10
		if half <= 0 || 1/half > r.MiterLimit+eps {
			return // bevel
		}
		bisector := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
		if !plusSide {
			bisector = bisector.Mul(-1)
		}
		if l := bisector.Length(); l > zeroLengthThreshold {
			r.stroke = append(r.stroke, P.Add(bisector.Mul(d/(l*half))))
		}

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if plusSide {
			start := vec.Vec2{X: -T1.Y, Y: T1.X}
			if sinTheta < 0 {
				angle = -angle
			}
			r.addArc(P, d, start, angle, false)
		} else {
			start := vec.Vec2{X: T2.Y, Y: -T2.X}
			if sinTheta > 0 {
				angle = -angle
			}
			r.addArc(P, d, start, angle, false)
		}
	}
	// bevel joins need no extra vertices
}

// addArc appends vertices approximating a circular arc around center,
// starting in direction startDir and sweeping by sweep radians
// (positive is counter-clockwise).
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())

	rotate := func(a float64) vec.Vec2 {
		c, s := math.Cos(a), math.Sin(a)
		return vec.Vec2{
			X: startDir.X*c - startDir.Y*s,
			Y: startDir.X*s + startDir.Y*c,
		}
	}

	if devRadius < r.Flatness {
		if includeStart {
			r.stroke = append(r.stroke, center.Add(startDir.Mul(radius)))
		}
		r.stroke = append(r.stroke, center.Add(rotate(sweep).Mul(radius)))
		return
	}

	// A chord spanning angle θ deviates from the circle by r(1-cos(θ/2)).
	// At least eight chords per full circle.  A disc of diameter one
	// then covers more than half of its pixel.
	step := 2 * math.Acos(1-r.Flatness/devRadius)
	if step <= 0 || math.IsNaN(step) || step > math.Pi/4 {
		step = math.Pi / 4
	}
	n := max(int(math.Ceil(math.Abs(sweep)/step)), 1)

	i0 := 0
	if !includeStart {
		i0 = 1
	}
	for i := i0; i <= n; i++ {
		r.stroke = append(r.stroke, center.Add(rotate(float64(i)*sweep/float64(n)).Mul(radius)))
	}
}

// fillStrokeOutlines fills the collected outline polygons.
func (r *Rasterizer) fillStrokeOutlines(emit Coverage) {
	if len(r.strokeOffsets) == 0 {
		return
	}

	r.startEdges()
	for i, start := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		poly := r.stroke[start:end]
		if len(poly) < 2 {
			continue
		}
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}

	xMin, xMax, yMin, yMax, ok := r.edgeBounds()
	if !ok {
		return
	}
	r.rasterize(xMin, xMax, yMin, yMax, fillNonZero, emit)
}
