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

// Package canvas implements the pixel buffer of a drawing.
//
// A [Canvas] has a fixed size and stores one 8-bit RGBA value per pixel in
// row-major order.  All coordinate based access is clipped: reading outside
// the canvas returns the zero colour and writing outside the canvas does
// nothing.
package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ErrInvalidSize is returned when a canvas would have a non-positive width
// or height.
var ErrInvalidSize = errors.New("invalid canvas size")

// Canvas is a fixed-size RGBA pixel buffer.
//
// Colour values are stored unpremultiplied, so that every channel is an
// independent 8-bit value.
type Canvas struct {
	width, height int
	pix           []uint8
}

// New allocates a canvas of the given size.  All pixels start out as
// transparent black.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint8, 4*width*height),
	}, nil
}

// Width returns the width of the canvas in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the height of the canvas in pixels.
func (c *Canvas) Height() int { return c.height }

// Bounds returns the rectangle covered by the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// In reports whether (x, y) lies on the canvas.
func (c *Canvas) In(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

func (c *Canvas) offset(x, y int) int {
	return 4 * (y*c.width + x)
}

// At returns the colour of the pixel at (x, y).  Outside the canvas the
// zero colour is returned.
func (c *Canvas) At(x, y int) color.RGBA {
	if !c.In(x, y) {
		return color.RGBA{}
	}
	p := c.pix[c.offset(x, y):]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set changes the colour of the pixel at (x, y).  Calls outside the canvas
// are ignored.  The return value reports whether a pixel was written.
func (c *Canvas) Set(x, y int, col color.RGBA) bool {
	if !c.In(x, y) {
		return false
	}
	p := c.pix[c.offset(x, y):]
	p[0], p[1], p[2], p[3] = col.R, col.G, col.B, col.A
	return true
}

// Blend composites col over the pixel at (x, y), where coverage is the
// fraction of the pixel covered by the shape being drawn.  Calls outside
// the canvas are ignored.
func (c *Canvas) Blend(x, y int, col color.RGBA, coverage float32) {
	if !c.In(x, y) || coverage <= 0 {
		return
	}
	if coverage >= 1 && col.A == 0xFF {
		c.Set(x, y, col)
		return
	}

	p := c.pix[c.offset(x, y):]
	a := min(coverage, 1) * float32(col.A) / 255
	keep := 1 - a
	for i, v := range [3]uint8{col.R, col.G, col.B} {
		p[i] = uint8(float32(v)*a + float32(p[i])*keep + 0.5)
	}
	p[3] = uint8(255*a + float32(p[3])*keep + 0.5)
}

// FillAll sets every pixel to col.
func (c *Canvas) FillAll(col color.RGBA) {
	if len(c.pix) == 0 {
		return
	}
	c.pix[0], c.pix[1], c.pix[2], c.pix[3] = col.R, col.G, col.B, col.A
	for n := 4; n < len(c.pix); n *= 2 {
		copy(c.pix[n:], c.pix[:n])
	}
}

// Copy returns a deep copy of the canvas.  The copy does not share memory
// with c.
func (c *Canvas) Copy() *Canvas {
	return &Canvas{
		width:  c.width,
		height: c.height,
		pix:    bytes.Clone(c.pix),
	}
}

// Equal reports whether c and other have the same size and identical
// pixels.
func (c *Canvas) Equal(other *Canvas) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.width == other.width && c.height == other.height &&
		bytes.Equal(c.pix, other.pix)
}

// Pix returns the raw pixel buffer: 4 bytes (R, G, B, A) per pixel, rows
// from top to bottom, no padding between rows.  The slice aliases the
// canvas memory.
func (c *Canvas) Pix() []uint8 {
	return c.pix
}

// Image returns an [image.RGBA] which shares its pixel memory with the
// canvas.  This is meant for handing the buffer to an image encoder.
//
// The standard library interprets image.RGBA values as premultiplied;
// for fully opaque pixels, which is the normal case for a drawing, both
// interpretations agree.
func (c *Canvas) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    c.pix,
		Stride: 4 * c.width,
		Rect:   c.Bounds(),
	}
}

// FromImage creates a new canvas holding a copy of img.  The top-left
// corner of img.Bounds() becomes the canvas origin.
func FromImage(img image.Image) (*Canvas, error) {
	b := img.Bounds()
	c, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	draw.Draw(c.Image(), c.Bounds(), img, b.Min, draw.Src)
	return c, nil
}

// Distance returns the sum of the absolute differences of the red, green
// and blue channels of a and b.  Alpha is ignored.
func Distance(a, b color.RGBA) int {
	return absDiff(a.R, b.R) + absDiff(a.G, b.G) + absDiff(a.B, b.B)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
