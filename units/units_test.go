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
package units

import (
	"errors"
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, dpi := range []int{72, 96, 150, 300} {
		for _, u := range []Unit{Pixel, Centimetre, Inch} {
			for px := 1; px <= 2000; px++ {
				back := ToPixels(ToUnit(px, u, dpi), u, dpi)
				if back < px-1 || back > px {
					t.Fatalf("%d dpi, %s: %d px -> %d px", dpi, u, px, back)
				}
			}
		}
	}
}

func TestExample(t *testing.T) {
	cm := ToUnit(240, Centimetre, 96)
	if math.Abs(cm-6.35) > 1e-9 {
		t.Errorf("240 px = %g cm, want 6.35", cm)
	}
	if px := ToPixels(cm, Centimetre, 96); px != 239 && px != 240 {
		t.Errorf("6.35 cm = %d px, want 239 or 240", px)
	}
	if in := ToUnit(240, Inch, 96); in != 2.5 {
		t.Errorf("240 px = %g in, want 2.5", in)
	}
}

func TestTruncation(t *testing.T) {
	type testCase struct {
		v    float64
		u    Unit
		want int
	}
	cases := []testCase{
		{1.99, Pixel, 1},
		{0.99, Pixel, 0},
		{0.5, Inch, 48},
		{0.999, Inch, 95},
		{1, Centimetre, 37},
		{0.01, Centimetre, 0},
	}
	for _, tc := range cases {
		if got := ToPixels(tc.v, tc.u, 96); got != tc.want {
			t.Errorf("ToPixels(%g, %s, 96) = %d, want %d", tc.v, tc.u, got, tc.want)
		}
	}
}

func TestParseUnit(t *testing.T) {
	good := map[string]Unit{
		"px":          Pixel,
		"Pixels":      Pixel,
		"cm":          Centimetre,
		" centimeter": Centimetre,
		"in":          Inch,
		"INCH":        Inch,
	}
	for s, want := range good {
		got, err := ParseUnit(s)
		if err != nil || got != want {
			t.Errorf("ParseUnit(%q) = %s, %v", s, got, err)
		}
	}
	for _, u := range []Unit{Pixel, Centimetre, Inch} {
		if got, err := ParseUnit(u.String()); err != nil || got != u {
			t.Errorf("ParseUnit(%q) = %s, %v", u.String(), got, err)
		}
	}

	if _, err := ParseUnit("mm"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("ParseUnit(\"mm\"): got error %v", err)
	}
}

func TestSizeSpec(t *testing.T) {
	s := NewSizeSpec(240, 120, 96)
	if s.Unit != Pixel || s.DPI() != 96 {
		t.Fatalf("unexpected initial state %+v", s)
	}

	// changing the presentation unit keeps the pixel values
	s = s.WithUnit(Inch)
	if s.Width != 240 || s.Height != 120 {
		t.Errorf("WithUnit changed the size to %dx%d", s.Width, s.Height)
	}
	if w, h := s.Display(); w != 2.5 || h != 1.25 {
		t.Errorf("Display() = %g, %g, want 2.5, 1.25", w, h)
	}
	s = s.WithUnit(Pixel)
	if w, h := s.Display(); w != 240 || h != 120 {
		t.Errorf("Display() = %g, %g, want 240, 120", w, h)
	}

	if err := s.Set(1.5, 0.5, Inch); err != nil {
		t.Fatal(err)
	}
	if s.Width != 144 || s.Height != 48 || s.Unit != Inch {
		t.Errorf("after Set: %+v", s)
	}
}

func TestSizeSpecReject(t *testing.T) {
	inputs := []struct {
		w, h float64
		u    Unit
	}{
		{0, 10, Pixel},
		{10, 0.5, Pixel},
		{-3, 10, Centimetre},
		{0.01, 1, Centimetre},
		{math.NaN(), 1, Inch},
		{1, math.Inf(1), Inch},
		{1e300, 1, Pixel},
	}
	for _, in := range inputs {
		s := NewSizeSpec(100, 50, 96)
		before := s
		err := s.Set(in.w, in.h, in.u)
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Set(%g, %g, %s): got error %v", in.w, in.h, in.u, err)
		}
		if s != before {
			t.Errorf("Set(%g, %g, %s) modified the size: %+v", in.w, in.h, in.u, s)
		}
	}
}
