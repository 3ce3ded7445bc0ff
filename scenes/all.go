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

package scenes

import (
	"image"
	"image/color"
	"math"

	"seehuhn.de/go/paint/shape"
)

// All lists the scenes by category.
var All = map[string][]Scene{
	"shapes":   shapeScenes,
	"freehand": freehandScenes,
	"fill":     fillScenes,
	"history":  historyScenes,
}

var (
	black = color.RGBA{A: 0xFF}
	red   = color.RGBA{R: 0xFF, A: 0xFF}
	green = color.RGBA{G: 0xC0, A: 0xFF}
	blue  = color.RGBA{B: 0xFF, A: 0xFF}
)

var shapeScenes = []Scene{
	{
		Name:   "rectangle",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Draw{Shape: shape.Shape{Kind: shape.Rectangle, X1: 10, Y1: 10, X2: 53, Y2: 53}, Colour: black, Width: 1},
		},
	},
	{
		Name:   "rectangle_reversed",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Draw{Shape: shape.Shape{Kind: shape.Rectangle, X1: 53, Y1: 53, X2: 10, Y2: 10}, Colour: black, Width: 1},
		},
	},
	{
		Name:   "ellipse",
		Width:  64,
		Height: 48,
		Steps: []Step{
			Draw{Shape: shape.Shape{Kind: shape.Ellipse, X1: 4, Y1: 4, X2: 59, Y2: 43}, Colour: blue, Width: 3},
		},
	},
	{
		Name:   "lines",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Draw{Shape: shape.Shape{Kind: shape.Line, X1: 4, Y1: 4, X2: 59, Y2: 59}, Colour: red, Width: 5},
			Draw{Shape: shape.Shape{Kind: shape.Line, X1: 4, Y1: 59, X2: 59, Y2: 4}, Colour: green, Width: 5},
		},
	},
	{
		Name:   "clipped",
		Width:  32,
		Height: 32,
		Steps: []Step{
			Draw{Shape: shape.Shape{Kind: shape.Ellipse, X1: -20, Y1: -20, X2: 20, Y2: 20}, Colour: black, Width: 3},
			Draw{Shape: shape.Shape{Kind: shape.Rectangle, X1: 16, Y1: 16, X2: 100, Y2: 100}, Colour: red, Width: 3},
		},
	},
}

var freehandScenes = []Scene{
	{
		Name:   "wave",
		Width:  96,
		Height: 48,
		Steps: []Step{
			Stroke{Points: wave(8, 88, 24, 12, 2), Colour: black, Width: 4},
		},
	},
	{
		Name:   "erased",
		Width:  96,
		Height: 48,
		Steps: []Step{
			Stroke{Points: wave(8, 88, 24, 12, 2), Colour: black, Width: 4},
			Stroke{Points: []image.Point{{48, 0}, {48, 47}}, Width: 9, Eraser: true},
		},
	},
	{
		Name:   "dots",
		Width:  48,
		Height: 16,
		Steps: []Step{
			Draw{Shape: shape.Shape{Kind: shape.Point, X1: 8, Y1: 8}, Colour: red, Width: 1},
			Draw{Shape: shape.Shape{Kind: shape.Point, X1: 24, Y1: 8}, Colour: red, Width: 5},
			Draw{Shape: shape.Shape{Kind: shape.Point, X1: 40, Y1: 8}, Colour: red, Width: 11},
		},
	},
}

var fillScenes = []Scene{
	{
		Name:   "blank",
		Width:  10,
		Height: 10,
		Steps: []Step{
			Flood{X: 5, Y: 5, Colour: black, Tolerance: 10},
			Flood{X: 0, Y: 0, Colour: black, Tolerance: 10},
		},
	},
	{
		Name:   "inside_ellipse",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Draw{Shape: shape.Shape{Kind: shape.Ellipse, X1: 8, Y1: 8, X2: 55, Y2: 55}, Colour: black, Width: 3},
			Flood{X: 32, Y: 32, Colour: blue, Tolerance: 32},
		},
	},
	{
		Name:   "outside_rectangle",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Draw{Shape: shape.Shape{Kind: shape.Rectangle, X1: 16, Y1: 16, X2: 47, Y2: 47}, Colour: black, Width: 3},
			Flood{X: 0, Y: 0, Colour: green, Tolerance: 32},
		},
	},
}

var historyScenes = []Scene{
	{
		Name:   "undo_redo",
		Width:  64,
		Height: 64,
		Steps: []Step{
			Draw{Shape: shape.Shape{Kind: shape.Rectangle, X1: 8, Y1: 8, X2: 55, Y2: 55}, Colour: black, Width: 3},
			Draw{Shape: shape.Shape{Kind: shape.Ellipse, X1: 8, Y1: 8, X2: 55, Y2: 55}, Colour: red, Width: 3},
			Undo{},
			Redo{},
			Undo{},
		},
	},
}

// wave samples a sine curve between x0 and x1, as a mouse would while
// the user draws.
func wave(x0, x1, y, amplitude int, periods float64) []image.Point {
	var pts []image.Point
	for x := x0; x <= x1; x += 3 {
		t := float64(x-x0) / float64(x1-x0)
		dy := float64(amplitude) * math.Sin(2*math.Pi*periods*t)
		pts = append(pts, image.Point{X: x, Y: y + int(math.Round(dy))})
	}
	return pts
}
