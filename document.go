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

package paint

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/draw"

	"seehuhn.de/go/paint/canvas"
	"seehuhn.de/go/paint/fill"
	"seehuhn.de/go/paint/history"
	"seehuhn.de/go/paint/internal/logging"
	"seehuhn.de/go/paint/shape"
	"seehuhn.de/go/paint/units"
)

// ErrInvalidDPI is returned when a document is created with a resolution
// which is not positive.
var ErrInvalidDPI = errors.New("invalid resolution")

// Default values for [Options].
const (
	DefaultDPI          = 96
	DefaultHistoryLimit = history.DefaultLimit
)

// White is the default background colour.
var White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Options configures a new [Document].  A nil *Options selects all
// defaults.
type Options struct {
	// Background is the colour of a new canvas.  The zero value selects
	// opaque white.
	Background color.RGBA

	// DPI is the resolution used for unit conversions.  It is fixed for
	// the lifetime of the document.  The zero value selects DefaultDPI.
	DPI int

	// HistoryLimit is the maximal number of undo steps.  The zero value
	// selects DefaultHistoryLimit.
	HistoryLimit int

	// Label describes the document, for example by its file name.  It is
	// stored with every history snapshot.
	Label string
}

// Document is an open drawing: the live canvas together with its undo
// history.
//
// Every editing method first records the current canvas in the history and
// then modifies the canvas in place.  The canvas returned by
// [Document.Canvas] is owned by the document; history snapshots never
// share memory with it.
//
// A Document is not safe for concurrent use.
type Document struct {
	canvas     *canvas.Canvas
	history    *history.Manager
	painter    shape.Painter
	background color.RGBA
	dpi        int
	label      string
}

// NewDocument creates a document with a blank canvas of the given size.
func NewDocument(width, height int, opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}
	dpi := opt.DPI
	if dpi == 0 {
		dpi = DefaultDPI
	}
	if dpi < 0 {
		return nil, fmt.Errorf("%d dpi: %w", dpi, ErrInvalidDPI)
	}
	bg := opt.Background
	if bg == (color.RGBA{}) {
		bg = White
	}

	c, err := canvas.New(width, height)
	if err != nil {
		return nil, err
	}
	c.FillAll(bg)

	logging.Logger().Info("new document",
		slog.String("label", opt.Label),
		slog.Int("width", width), slog.Int("height", height),
		slog.Int("dpi", dpi))
	return &Document{
		canvas:     c,
		history:    history.NewManager(opt.HistoryLimit),
		background: bg,
		dpi:        dpi,
		label:      opt.Label,
	}, nil
}

// Canvas returns the live canvas.  Callers may read it freely, but should
// modify it only through the document's methods, so that changes can be
// undone.
func (d *Document) Canvas() *canvas.Canvas {
	return d.canvas
}

// Image returns the live canvas as an image, for encoding.  The image
// shares memory with the canvas.
func (d *Document) Image() *image.RGBA {
	return d.canvas.Image()
}

// Label returns the document label.
func (d *Document) Label() string {
	return d.label
}

// SetLabel changes the document label, for example after saving under a
// new file name.
func (d *Document) SetLabel(label string) {
	d.label = label
}

// Background returns the background colour of the document.
func (d *Document) Background() color.RGBA {
	return d.background
}

// DPI returns the resolution used for unit conversions.
func (d *Document) DPI() int {
	return d.dpi
}

// Size returns the canvas size, presented in pixels.
func (d *Document) Size() units.SizeSpec {
	return units.NewSizeSpec(d.canvas.Width(), d.canvas.Height(), d.dpi)
}

// StrokeState returns a tool configuration with the given colour and width
// and the document's background colour.
func (d *Document) StrokeState(col color.RGBA, width int) shape.StrokeState {
	return shape.StrokeState{Colour: col, Background: d.background, Width: width}
}

func (d *Document) record() {
	d.history.RecordBeforeChange(d.canvas, d.label)
}

// Apply draws s onto the canvas.
func (d *Document) Apply(s shape.Shape, st shape.StrokeState) {
	d.record()
	d.painter.Draw(d.canvas, s, st)
	logging.Logger().Debug("draw", slog.String("kind", s.Kind.String()))
}

// ApplyStroke draws a complete freehand stroke.  The whole stroke forms a
// single undo step.
func (d *Document) ApplyStroke(points []image.Point, st shape.StrokeState) {
	if len(points) == 0 {
		return
	}
	d.record()
	d.painter.Antialias = st.Antialias
	d.painter.Stroke(d.canvas, points, st.Colour, max(st.Width, 1))
	logging.Logger().Debug("draw", slog.String("kind", "stroke"), slog.Int("points", len(points)))
}

// FloodFill fills the region around (x, y) with col and returns the number
// of changed pixels.  If nothing would change, no undo step is recorded.
func (d *Document) FloodFill(x, y int, col color.RGBA, tolerance int) int {
	if !fill.Changes(d.canvas, x, y, col) {
		if !d.canvas.In(x, y) {
			logging.Logger().Warn("flood fill: seed outside canvas",
				slog.Int("x", x), slog.Int("y", y))
		}
		return 0
	}
	d.record()
	return fill.Fill(d.canvas, x, y, col, tolerance, nil)
}

// Undo restores the canvas to its state before the most recent change.
// It returns false if there is nothing to undo.
func (d *Document) Undo() bool {
	e, ok := d.history.Undo(d.canvas, d.label)
	if !ok {
		return false
	}
	d.install(e)
	return true
}

// Redo reverts the most recent Undo.  It returns false if there is
// nothing to redo.
func (d *Document) Redo() bool {
	e, ok := d.history.Redo(d.canvas, d.label)
	if !ok {
		return false
	}
	d.install(e)
	return true
}

func (d *Document) install(e history.Entry) {
	d.canvas = e.Canvas()
	d.label = e.Label
}

// CanUndo reports whether Undo would change the canvas.
func (d *Document) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether Redo would change the canvas.
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// Replace installs c as the new live canvas.  The document takes ownership
// of c.  The previous canvas can be restored using Undo.
func (d *Document) Replace(c *canvas.Canvas, label string) {
	d.record()
	d.canvas = c
	d.label = label
}

// Load replaces the canvas by a copy of img, for example after decoding an
// image file.  The previous canvas can be restored using Undo.
func (d *Document) Load(img image.Image, label string) error {
	c, err := canvas.FromImage(img)
	if err != nil {
		return fmt.Errorf("loading %q: %w", label, err)
	}
	d.Replace(c, label)
	logging.Logger().Info("image loaded", slog.String("label", label),
		slog.Int("width", c.Width()), slog.Int("height", c.Height()))
	return nil
}

// Reset starts a new drawing: the canvas is replaced by a blank canvas of
// the given size and the history is cleared.
func (d *Document) Reset(width, height int) error {
	c, err := canvas.New(width, height)
	if err != nil {
		return err
	}
	c.FillAll(d.background)
	d.canvas = c
	d.history.Clear()
	logging.Logger().Info("document reset",
		slog.Int("width", width), slog.Int("height", height))
	return nil
}

// Resize changes the canvas size.  The old pixels keep their position
// relative to the top-left corner; new areas are filled with the
// background colour.
func (d *Document) Resize(width, height int) error {
	c, err := canvas.New(width, height)
	if err != nil {
		return err
	}
	if width == d.canvas.Width() && height == d.canvas.Height() {
		return nil
	}
	c.FillAll(d.background)
	draw.Draw(c.Image(), d.canvas.Bounds(), d.canvas.Image(), image.Point{}, draw.Src)

	d.record()
	d.canvas = c
	logging.Logger().Info("canvas resized",
		slog.Int("width", width), slog.Int("height", height))
	return nil
}

// ResizeUnits changes the canvas size to w×h given in unit u, converted
// at the document's resolution.  Sizes smaller than one pixel are
// rejected and leave the document unchanged.
func (d *Document) ResizeUnits(w, h float64, u units.Unit) error {
	size := d.Size()
	if err := size.Set(w, h, u); err != nil {
		logging.Logger().Warn("resize rejected", slog.Any("error", err))
		return err
	}
	return d.Resize(size.Width, size.Height)
}
