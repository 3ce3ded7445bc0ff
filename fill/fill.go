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

// Package fill implements the paint-bucket tool.
//
// [Fill] recolours the connected region of pixels around a seed point
// whose colours are close to the seed's colour.  Closeness is measured by
// [canvas.Distance] against an adaptive tolerance, see
// [AdaptiveTolerance].
//
// By default diagonal neighbours are part of the region.  This means a
// fill can pass through a one pixel wide diagonal line; use
// [FourConnected] to prevent this.
package fill

import (
	"image"
	"image/color"
	"log/slog"

	"seehuhn.de/go/paint/canvas"
	"seehuhn.de/go/paint/internal/logging"
)

// MinTolerance is the smallest effective tolerance.  It guarantees progress
// on nearly uniform regions, even for a base tolerance of zero.
const MinTolerance = 5

// Connectivity selects which neighbours of a pixel are considered.
type Connectivity int

const (
	// EightConnected visits the four axis neighbours and the four
	// diagonal neighbours.
	EightConnected Connectivity = iota

	// FourConnected visits only the axis neighbours.
	FourConnected
)

// Options controls a flood fill.  A nil *Options selects the defaults.
type Options struct {
	Connectivity Connectivity
}

var (
	axisSteps     = []image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalSteps = []image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
)

// AdaptiveTolerance returns the tolerance applied to a pixel whose colour
// has the given distance from the seed colour: the base tolerance is
// reduced by a tenth of the distance, but never below MinTolerance.
func AdaptiveTolerance(base, distance int) int {
	return max(base-distance/10, MinTolerance)
}

// Matches reports whether a pixel of colour candidate belongs to the
// region grown from a seed of colour seed.
func Matches(seed, candidate color.RGBA, tolerance int) bool {
	d := canvas.Distance(seed, candidate)
	return d <= AdaptiveTolerance(tolerance, d)
}

// Changes reports whether Fill(c, x, y, col, ...) would modify c.
func Changes(c *canvas.Canvas, x, y int, col color.RGBA) bool {
	return c.In(x, y) && c.At(x, y) != col
}

// Fill sets all pixels in the region around (x, y) to col and returns the
// number of pixels changed.
//
// If (x, y) is outside the canvas or if the seed pixel already has colour
// col, the canvas is left unchanged and 0 is returned.  A negative
// tolerance is treated as zero.
func Fill(c *canvas.Canvas, x, y int, col color.RGBA, tolerance int, opt *Options) int {
	log := logging.Logger()
	if !c.In(x, y) {
		log.Warn("flood fill: seed outside canvas",
			slog.Int("x", x), slog.Int("y", y),
			slog.Int("width", c.Width()), slog.Int("height", c.Height()))
		return 0
	}
	seed := c.At(x, y)
	if seed == col {
		return 0
	}
	tolerance = max(tolerance, 0)

	steps := diagonalSteps
	if opt != nil && opt.Connectivity == FourConnected {
		steps = axisSteps
	}

	w := c.Width()
	visited := make([]bool, w*c.Height())
	visited[y*w+x] = true
	stack := []image.Point{{x, y}}

	// Pixels are only written after they have been marked as visited, so
	// every unvisited pixel still has its original colour.
	count := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c.Set(p.X, p.Y, col)
		count++

		for _, s := range steps {
			q := p.Add(s)
			if !c.In(q.X, q.Y) {
				continue
			}
			i := q.Y*w + q.X
			if visited[i] || !Matches(seed, c.At(q.X, q.Y), tolerance) {
				continue
			}
			visited[i] = true
			stack = append(stack, q)
		}
	}

	log.Debug("flood fill",
		slog.Int("x", x), slog.Int("y", y),
		slog.Int("tolerance", tolerance), slog.Int("pixels", count))
	return count
}
