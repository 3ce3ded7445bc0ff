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

// Package history implements undo and redo for a canvas using full
// snapshots.
//
// The [Manager] keeps two bounded stacks of [Entry] values.  Each entry
// owns a private copy of the pixels, so that later changes to the live
// canvas never affect the history.
package history

import (
	"log/slog"

	"seehuhn.de/go/paint/canvas"
	"seehuhn.de/go/paint/internal/logging"
)

// DefaultLimit is the number of undo steps kept when no limit is given.
const DefaultLimit = 50

// Entry is an immutable snapshot of a canvas.
type Entry struct {
	// Label describes the document at the time of the snapshot,
	// for example the file name.
	Label string

	snap *canvas.Canvas
}

// Canvas returns a new canvas holding the snapshot's pixels.  Every call
// returns an independent copy.
func (e Entry) Canvas() *canvas.Canvas {
	if e.snap == nil {
		return nil
	}
	return e.snap.Copy()
}

// Width returns the width of the snapshot in pixels.
func (e Entry) Width() int {
	if e.snap == nil {
		return 0
	}
	return e.snap.Width()
}

// Height returns the height of the snapshot in pixels.
func (e Entry) Height() int {
	if e.snap == nil {
		return 0
	}
	return e.snap.Height()
}

func snapshot(c *canvas.Canvas, label string) Entry {
	return Entry{Label: label, snap: c.Copy()}
}

// Manager maintains the undo and redo stacks of one document.
//
// The zero value is not usable; use [NewManager].
type Manager struct {
	limit int
	undo  []Entry
	redo  []Entry
}

// NewManager returns an empty history which keeps at most limit undo
// steps.  If limit is not positive, DefaultLimit is used.
func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Limit returns the maximal number of entries on each stack.
func (m *Manager) Limit() int {
	return m.limit
}

// RecordBeforeChange saves the state of c before a mutating operation.
// No entry is added if c is identical to the most recent undo entry.
// Adding an entry discards the redo stack.  The return value reports
// whether an entry was added.
func (m *Manager) RecordBeforeChange(c *canvas.Canvas, label string) bool {
	if n := len(m.undo); n > 0 && m.undo[n-1].snap.Equal(c) {
		logging.Logger().Debug("history: unchanged canvas, snapshot skipped")
		return false
	}
	m.undo = m.push(m.undo, snapshot(c, label))
	clear(m.redo)
	m.redo = m.redo[:0]
	logging.Logger().Debug("history: snapshot recorded", slog.Int("undo", len(m.undo)))
	return true
}

// Undo returns the most recent undo entry, which the caller should install
// as the live canvas.  The current state is moved onto the redo stack.
// If there is nothing to undo, ok is false and nothing changes.
func (m *Manager) Undo(current *canvas.Canvas, label string) (e Entry, ok bool) {
	if len(m.undo) == 0 {
		return Entry{}, false
	}
	m.redo = m.push(m.redo, snapshot(current, label))
	e, m.undo = pop(m.undo)
	return e, true
}

// Redo is the inverse of Undo.
func (m *Manager) Redo(current *canvas.Canvas, label string) (e Entry, ok bool) {
	if len(m.redo) == 0 {
		return Entry{}, false
	}
	m.undo = m.push(m.undo, snapshot(current, label))
	e, m.redo = pop(m.redo)
	return e, true
}

// Clear empties both stacks.
func (m *Manager) Clear() {
	clear(m.undo)
	clear(m.redo)
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
}

// CanUndo reports whether Undo would return an entry.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether Redo would return an entry.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// UndoLen returns the number of entries on the undo stack.
func (m *Manager) UndoLen() int { return len(m.undo) }

// RedoLen returns the number of entries on the redo stack.
func (m *Manager) RedoLen() int { return len(m.redo) }

// push appends e to stack, dropping the oldest entry once the stack would
// exceed the limit.
func (m *Manager) push(stack []Entry, e Entry) []Entry {
	stack = append(stack, e)
	if extra := len(stack) - m.limit; extra > 0 {
		clear(stack[:extra])
		stack = append(stack[:0], stack[extra:]...)
		logging.Logger().Debug("history: oldest snapshot dropped", slog.Int("limit", m.limit))
	}
	return stack
}

func pop(stack []Entry) (Entry, []Entry) {
	n := len(stack) - 1
	e := stack[n]
	stack[n] = Entry{}
	return e, stack[:n]
}
