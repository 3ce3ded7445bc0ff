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

// Package units converts image dimensions between pixels and physical
// units.
//
// Pixels are the canonical representation.  Lengths in centimetres or
// inches are always derived from a pixel count on demand and are never
// stored, so that switching units back and forth cannot accumulate
// rounding errors.  Conversion back to pixels truncates towards zero;
// a single round trip pixel → unit → pixel may therefore lose one pixel.
package units

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Unit is a unit of length for image dimensions.
type Unit int

// These are the supported units.
const (
	Pixel Unit = iota
	Centimetre
	Inch
)

const cmPerInch = 2.54

var (
	// ErrUnknownUnit is returned by [ParseUnit] for unrecognised names.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrInvalidSize indicates a size which does not correspond to at
	// least one pixel in each direction.
	ErrInvalidSize = errors.New("invalid size")
)

func (u Unit) String() string {
	switch u {
	case Pixel:
		return "px"
	case Centimetre:
		return "cm"
	case Inch:
		return "in"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// ParseUnit converts a unit name to a Unit.  Both the short names
// returned by [Unit.String] and the long English names are recognised.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "px", "pixel", "pixels":
		return Pixel, nil
	case "cm", "centimetre", "centimetres", "centimeter", "centimeters":
		return Centimetre, nil
	case "in", "inch", "inches":
		return Inch, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownUnit)
}

// ToUnit converts a length in pixels into the unit u, at the given
// resolution in dots per inch.
func ToUnit(pixels int, u Unit, dpi int) float64 {
	switch u {
	case Centimetre:
		return float64(pixels) / (float64(dpi) / cmPerInch)
	case Inch:
		return float64(pixels) / float64(dpi)
	default:
		return float64(pixels)
	}
}

// ToPixels converts a length given in unit u into pixels, at the given
// resolution in dots per inch.  The result is truncated, not rounded.
//
// ToPixels performs no validation; callers must reject results which are
// not positive.
func ToPixels(v float64, u Unit, dpi int) int {
	switch u {
	case Centimetre:
		return int(v * (float64(dpi) / cmPerInch))
	case Inch:
		return int(v * float64(dpi))
	default:
		return int(v)
	}
}

// SizeSpec describes the dimensions of an image.  Width and Height are the
// canonical pixel values; Unit records how the size was last presented to
// the user.
type SizeSpec struct {
	Width, Height int
	Unit          Unit

	dpi int
}

// NewSizeSpec returns a SizeSpec in pixel units.  The resolution is fixed
// for the lifetime of the SizeSpec.
func NewSizeSpec(width, height, dpi int) SizeSpec {
	return SizeSpec{Width: width, Height: height, Unit: Pixel, dpi: dpi}
}

// DPI returns the resolution used for conversions.
func (s SizeSpec) DPI() int {
	return s.dpi
}

// Display returns the width and height expressed in s.Unit.
func (s SizeSpec) Display() (w, h float64) {
	return ToUnit(s.Width, s.Unit, s.dpi), ToUnit(s.Height, s.Unit, s.dpi)
}

// WithUnit returns a copy of s which presents its size in unit u.  The
// pixel values are not changed.
func (s SizeSpec) WithUnit(u Unit) SizeSpec {
	s.Unit = u
	return s
}

// Set replaces the size by w×h given in unit u.  If either dimension is
// not finite or converts to less than one pixel, ErrInvalidSize is
// returned and s is left unchanged.
func (s *SizeSpec) Set(w, h float64, u Unit) error {
	if !finite(w) || !finite(h) || w > maxLength || h > maxLength {
		return fmt.Errorf("%gx%g %s: %w", w, h, u, ErrInvalidSize)
	}
	pw := ToPixels(w, u, s.dpi)
	ph := ToPixels(h, u, s.dpi)
	if pw <= 0 || ph <= 0 {
		return fmt.Errorf("%gx%g %s: %w", w, h, u, ErrInvalidSize)
	}
	s.Width, s.Height, s.Unit = pw, ph, u
	return nil
}

// maxLength keeps the pixel conversion well inside the range of int.
const maxLength = 1 << 30

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
