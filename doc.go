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

// Package paint implements the drawing surface of a raster paint program.
//
// A [Document] owns the live pixel canvas and its undo history.  The user
// interface drives it through a small set of calls: draw a shape or a
// freehand stroke, flood fill a region, undo and redo, replace or resize
// the canvas.  The building blocks live in sub-packages:
//
//   - [seehuhn.de/go/paint/canvas]: the pixel buffer
//   - [seehuhn.de/go/paint/shape]: points, lines, rectangles, ellipses and
//     freehand strokes
//   - [seehuhn.de/go/paint/fill]: the paint bucket
//   - [seehuhn.de/go/paint/history]: undo and redo snapshots
//   - [seehuhn.de/go/paint/units]: pixel, centimetre and inch conversion
//
// All operations are synchronous.  Nothing in this module starts
// goroutines or performs I/O.
package paint

import (
	"log/slog"

	"seehuhn.de/go/paint/internal/logging"
)

// SetLogger sets the logger used by all packages of the module.  By
// default nothing is logged.  Pass nil to disable logging again.
//
// Log levels:
//   - [slog.LevelDebug]: individual drawing, fill and history operations
//   - [slog.LevelInfo]: document lifecycle (new, reset, resize, load)
//   - [slog.LevelWarn]: rejected input, such as a fill outside the canvas
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the logger used by the module.
func Logger() *slog.Logger {
	return logging.Logger()
}
