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

// Package scenes contains scripted drawing sessions, used by tests,
// benchmarks and the paint-export tool.
package scenes

import (
	"fmt"
	"image"
	"image/color"

	"seehuhn.de/go/paint"
	"seehuhn.de/go/paint/shape"
)

// Scene is a named sequence of editing steps on a blank canvas.
type Scene struct {
	Name   string // lowercase a-z and _ only
	Width  int    // canvas width in pixels
	Height int    // canvas height in pixels
	Steps  []Step
}

// Step is a single editing operation.
type Step interface {
	apply(d *paint.Document)
}

// Draw draws a shape.
type Draw struct {
	Shape  shape.Shape
	Colour color.RGBA
	Width  int
	Eraser bool // draw with the background colour instead of Colour
}

func (s Draw) apply(d *paint.Document) {
	st := d.StrokeState(s.Colour, s.Width)
	if s.Eraser {
		st = st.Eraser()
	}
	d.Apply(s.Shape, st)
}

// Stroke is a freehand stroke.
type Stroke struct {
	Points []image.Point
	Colour color.RGBA
	Width  int
	Eraser bool
}

func (s Stroke) apply(d *paint.Document) {
	st := d.StrokeState(s.Colour, s.Width)
	if s.Eraser {
		st = st.Eraser()
	}
	d.ApplyStroke(s.Points, st)
}

// Flood is a paint-bucket operation.
type Flood struct {
	X, Y      int
	Colour    color.RGBA
	Tolerance int
}

func (s Flood) apply(d *paint.Document) {
	d.FloodFill(s.X, s.Y, s.Colour, s.Tolerance)
}

// Undo undoes the previous step.
type Undo struct{}

func (Undo) apply(d *paint.Document) { d.Undo() }

// Redo redoes the previously undone step.
type Redo struct{}

func (Redo) apply(d *paint.Document) { d.Redo() }

// Render replays the scene on a new document with a white background.
func (s Scene) Render() (*paint.Document, error) {
	d, err := paint.NewDocument(s.Width, s.Height, &paint.Options{Label: s.Name})
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	for _, step := range s.Steps {
		step.apply(d)
	}
	return d, nil
}

// Find returns the scene with the given category and name, written as
// "category_name".
func Find(fullName string) (Scene, bool) {
	for category, list := range All {
		for _, s := range list {
			if category+"_"+s.Name == fullName {
				return s, true
			}
		}
	}
	return Scene{}, false
}
