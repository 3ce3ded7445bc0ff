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

// Package raster converts paths into per-pixel coverage values.
//
// The Rasterizer is the engine behind the drawing tools: shapes are
// described as [path.Path] values, filled or stroked, and the resulting
// coverage is handed to a callback one scanline at a time.  The callback
// decides how coverage turns into colour.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Coverage receives the coverage of one scanline.  The values are in
// [0, 1] and belong to the pixels xMin, xMin+1, ... of row y.  The slice is
// only valid for the duration of the call.
type Coverage func(y, xMin int, coverage []float32)

// edge is a non-horizontal line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer converts paths to pixel coverage values.  Internal buffers
// grow as needed and are reused between calls, so a single Rasterizer
// should be kept around for a sequence of drawing operations.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM maps user space to device space.  Must be non-singular.
	CTM matrix.Matrix

	// Clip restricts output to this device-space rectangle.
	// Coordinates must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and its polygonal approximation.  Must be positive.
	Flatness float64

	// Width is the stroke width in user-space units.
	Width float64

	// Cap is the style used at the open ends of stroked subpaths.
	Cap graphics.LineCapStyle

	// Join is the style used where two stroke segments meet.
	Join graphics.LineJoinStyle

	// MiterLimit bounds the length of miter joins.  Must be at least 1.
	MiterLimit float64

	// smallPathThreshold is the largest bounding box area (in pixels)
	// rasterized with full 2D accumulation buffers.  Larger paths use an
	// active edge list and a single scanline buffer.
	smallPathThreshold int

	cover     []float32 // per-pixel cover change; reused for the output
	area      []float32 // per-pixel area contribution
	edges     []edge
	active    []int // indices into edges
	rowXMin   []int
	rowXMax   []int
	crossings []float64

	stroke        []vec.Vec2 // stroke outline vertices, all polygons contiguous
	strokeOffsets []int      // start of each polygon in stroke

	segs          []strokeSegment
	segsOffsets   []int
	subpathClosed []bool
	dots          []vec.Vec2 // subpaths without any direction

	bboxEmpty          bool
	bboxXMin, bboxXMax float64
	bboxYMin, bboxYMax float64
}

// NewRasterizer returns a Rasterizer for the given clip rectangle.
// Strokes default to width 1 with butt caps and miter joins.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,

		smallPathThreshold: smallPathThreshold,
	}
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
}

// transformLinear applies the linear part of the CTM to v.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
// All points are in user space.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)
	n := 1
	if errDev := r.transformLinear(e).Length(); errDev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(errDev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the number of segments.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))
	m := max(d1.Length(), d2.Length())
	n := 1
	if m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// Fill rasterizes the interior of p using the nonzero winding rule.
// Open subpaths are closed implicitly.
func (r *Rasterizer) Fill(p path.Path, emit Coverage) {
	r.fill(p, fillNonZero, emit)
}

// FillEvenOdd rasterizes the interior of p using the even-odd rule.
func (r *Rasterizer) FillEvenOdd(p path.Path, emit Coverage) {
	r.fill(p, fillEvenOdd, emit)
}

type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

func (r *Rasterizer) fill(p path.Path, rule fillRule, emit Coverage) {
	r.startEdges()
	r.collectPathEdges(p)
	xMin, xMax, yMin, yMax, ok := r.edgeBounds()
	if !ok {
		return
	}
	r.rasterize(xMin, xMax, yMin, yMax, rule, emit)
}

// rasterize picks the accumulation strategy based on the bounding box.
func (r *Rasterizer) rasterize(xMin, xMax, yMin, yMax int, rule fillRule, emit Coverage) {
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmall(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// collectPathEdges walks p and appends its edges in device space.
func (r *Rasterizer) collectPathEdges(p path.Path) {
	var current, start vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open && current != start {
				r.addEdge(current, start)
			}
			current = pts[0]
			start = current
			open = true
		case path.CmdLineTo:
			r.addEdge(current, pts[0])
			current = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(current, pts[0], pts[1], r.addEdge)
			current = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(current, pts[0], pts[1], pts[2], r.addEdge)
			current = pts[2]
		case path.CmdClose:
			if current != start {
				r.addEdge(current, start)
			}
			current = start
			open = false
		}
	}
	if open && current != start {
		r.addEdge(current, start)
	}
}

func (r *Rasterizer) startEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge transforms a user-space segment to device space and records it.
// Horizontal edges do not contribute to coverage and are dropped.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	x0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	y0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	x1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	y1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := y1 - y0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if r.bboxEmpty {
		r.bboxXMin, r.bboxXMax = min(x0, x1), max(x0, x1)
		r.bboxYMin, r.bboxYMax = min(y0, y1), max(y0, y1)
		r.bboxEmpty = false
		return
	}
	r.bboxXMin = min(r.bboxXMin, x0, x1)
	r.bboxXMax = max(r.bboxXMax, x0, x1)
	r.bboxYMin = min(r.bboxYMin, y0, y1)
	r.bboxYMax = max(r.bboxYMax, y0, y1)
}

// edgeBounds returns the integer bounding box of the collected edges,
// clipped to r.Clip.
func (r *Rasterizer) edgeBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.bboxXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bboxXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.bboxYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.bboxYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// Coverage accumulation:
//
// Every edge crossing a pixel adds a signed vertical extent ("cover") and
// that extent weighted by the uncovered fraction of the pixel to the
// right of the edge ("area").  Integrating a scanline from the left,
//
//	coverage[i] = sum(cover[:i]) + area[i],
//
// gives the signed area of the path inside each pixel.

// accumulateEdge adds the contribution of e to scanline y.  The buffers
// cover the pixel range [xLo, xHi).  Contributions left of the range are
// folded into the first pixel so that the running sum stays correct.
func (r *Rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, xLo, xHi int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	pixL := int(math.Floor(min(xa, xb)))
	pixR := int(math.Floor(max(xa, xb)))

	if pixR < xLo {
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	}
	if pixL >= xHi {
		return
	}

	if pixL == pixR {
		r.accumulateSpan(e, yTop, yBot, sign, pixL, cover, area, xLo, xHi)
		return
	}

	// The edge crosses pixel columns: split it at every column boundary.
	r.crossings = append(r.crossings[:0], yTop, yBot)
	dydx := 1 / e.dxdy
	for x := pixL + 1; x <= pixR; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > yTop && yx < yBot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		y0, y1 := r.crossings[i], r.crossings[i+1]
		if y1 <= y0 {
			continue
		}
		xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		r.accumulateSpan(e, y0, y1, sign, int(math.Floor(xMid)), cover, area, xLo, xHi)
	}
}

// accumulateSpan handles the part of an edge between yTop and yBot which
// lies inside the single pixel column pix.
func (r *Rasterizer) accumulateSpan(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, xLo, xHi int) {
	c := sign * float32(yBot-yTop)
	switch {
	case pix < xLo:
		cover[0] += c
		area[0] += c
	case pix < xHi:
		xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
		frac := xMid - float64(pix)
		i := pix - xLo
		cover[i] += c
		area[i] += c * float32(1-frac)
	}
}

// integrateNonZero turns accumulated cover/area values into coverage using
// the nonzero winding rule.  The result overwrites cover.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := acc + area[i]
		acc += cover[i]
		cover[i] = min(abs32(raw), 1)
	}
}

// integrateEvenOdd is like integrateNonZero, but uses the even-odd rule.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i := range cover {
		raw := abs32(acc + area[i])
		acc += cover[i]
		m := raw - 2*float32(int(raw/2))
		cover[i] = 1 - abs32(1-m)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros strips leading and trailing zeros.  It returns nil if all
// values are zero.
func trimZeros(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage) - 1
	for coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

func integrate(rule fillRule, cover, area []float32) {
	if rule == fillNonZero {
		integrateNonZero(cover, area)
	} else {
		integrateEvenOdd(cover, area)
	}
}

// fillSmall accumulates all scanlines at once in 2D buffers.
func (r *Rasterizer) fillSmall(xMin, xMax, yMin, yMax int, rule fillRule, emit Coverage) {
	width := xMax - xMin
	height := yMax - yMin
	size := width * height

	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowXMin = slices.Grow(r.rowXMin[:0], height)[:height]
	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range height {
		r.rowXMin[i] = width
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]
		lo := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		hi := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := lo; y < hi; y++ {
			row := y - yMin
			off := row * width
			r.accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)

			x := r.edgeColumn(e, y, xMin, xMax)
			r.rowXMin[row] = min(r.rowXMin[row], x)
			r.rowXMax[row] = max(r.rowXMax[row], x)
		}
	}

	for row := range height {
		if r.rowXMax[row] < 0 {
			continue
		}
		off := row * width
		line := r.cover[off : off+width]
		integrate(rule, line, r.area[off:off+width])
		if trimmed, lo := trimZeros(line); trimmed != nil {
			emit(yMin+row, xMin+lo, trimmed)
		}
	}
}

// edgeColumn returns the buffer column where e crosses the middle of its
// extent within scanline y.
func (r *Rasterizer) edgeColumn(e *edge, y, xMin, xMax int) int {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	x := int(math.Floor(e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)))
	return min(max(x, xMin), xMax-1) - xMin
}

// fillLarge processes one scanline at a time using an active edge list.
func (r *Rasterizer) fillLarge(xMin, xMax, yMin, yMax int, rule fillRule, emit Coverage) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf, yNext := float64(y), float64(y+1)
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yNext {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if max(e.y0, e.y1) <= yf {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			touched = true
			i++
		}
		if !touched {
			continue
		}

		integrate(rule, r.cover, r.area)
		if trimmed, lo := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+lo, trimmed)
		}
	}
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit turns joins sharper than about 11.5 degrees into
	// bevels.
	defaultMiterLimit = 10.0

	horizontalEdgeThreshold = 1e-10

	// TODO: tune this threshold based on profiling
	smallPathThreshold = 65536

	zeroLengthThreshold   = 1e-10
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself,
	// cos(179.43°) ≈ -0.9999.
	cuspCosineThreshold = -0.9999
)
