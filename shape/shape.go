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

// Package shape implements the drawing tools of the paint program.
//
// Shapes are rasterized immediately and are not retained: once drawn,
// they are indistinguishable from other pixels.  Integer coordinates refer
// to pixel centres.
//
// Freehand tools (pencil and eraser) use round caps and joins; the line,
// rectangle and ellipse tools use butt caps and mitered corners.  An
// eraser is any tool used with the background colour, see
// [StrokeState.Eraser].
package shape

import (
	"fmt"
	"image/color"
)

// StrokeState is the tool configuration for a drawing operation.
type StrokeState struct {
	// Colour is the colour used for drawing.
	Colour color.RGBA

	// Background is the canvas background colour, used by the eraser.
	Background color.RGBA

	// Width is the stroke width in pixels.  Values below 1 are treated
	// as 1.
	Width int

	// Antialias enables blending of partially covered pixels.  If false,
	// pixels which are at least half covered are set to Colour and all
	// other pixels are left alone.
	Antialias bool
}

// Eraser returns a copy of st which draws with the background colour.
func (st StrokeState) Eraser() StrokeState {
	st.Colour = st.Background
	return st
}

func (st StrokeState) width() int {
	return max(st.Width, 1)
}

// Kind identifies the type of a [Shape].
type Kind int

// These are the supported shape kinds.
const (
	// Point is a filled disc of diameter StrokeState.Width at (X1, Y1).
	Point Kind = iota

	// Line is a straight line from (X1, Y1) to (X2, Y2) with butt caps.
	Line

	// Segment is a piece of a freehand stroke from (X1, Y1) to (X2, Y2),
	// with round caps.
	Segment

	// Rectangle is the outline of the rectangle with corners (X1, Y1) and
	// (X2, Y2).
	Rectangle

	// Ellipse is the outline of the ellipse inscribed in the rectangle
	// with corners (X1, Y1) and (X2, Y2).
	Ellipse
)

func (k Kind) String() string {
	switch k {
	case Point:
		return "point"
	case Line:
		return "line"
	case Segment:
		return "segment"
	case Rectangle:
		return "rectangle"
	case Ellipse:
		return "ellipse"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Shape describes a single drawing operation.  All kinds share the same
// geometry fields; Point only uses X1 and Y1.
type Shape struct {
	Kind   Kind
	X1, Y1 int
	X2, Y2 int
}

// Normalize returns the bounding box of the shape's two corners as the
// top-left corner and the (non-negative) width and height.
func (s Shape) Normalize() (x, y, w, h int) {
	return normalize(s.X1, s.Y1, s.X2, s.Y2)
}

func normalize(x1, y1, x2, y2 int) (x, y, w, h int) {
	return min(x1, x2), min(y1, y2), abs(x2 - x1), abs(y2 - y1)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CapStyle selects how the ends of a segment are drawn.
type CapStyle int

const (
	// CapButt ends the stroke exactly at the end points; corners are
	// mitered.  This is used by the line and shape tools.
	CapButt CapStyle = iota

	// CapRound adds a half disc at each end point; corners are rounded.
	// This is used by the pencil and the eraser.
	CapRound
)
