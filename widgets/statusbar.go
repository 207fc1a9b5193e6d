// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widgets/statusbar.go
// Summary: Single-row status bar showing the focused widget's key hints
// (left) and a transient message (right, e.g. a failed navigation
// attempt). Trimmed from the teacher's StatusBar: no timed-message queue
// or background ticker, since this demo only ever needs one message
// visible at a time and the UIManager already redraws on every input
// event, so Draw can recompute hints on the spot.

package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/framegrace/spatialnav/core"
	"github.com/framegrace/spatialnav/theme"
)

// StatusBar displays key hints for the currently focused widget and an
// optional right-aligned transient message. It implements
// core.FocusObserver so it can be registered directly with a UIManager.
type StatusBar struct {
	core.BaseWidget

	focused core.Widget
	message string
}

// NewStatusBar creates a single-row status bar of the given width.
func NewStatusBar(x, y, w int) *StatusBar {
	sb := &StatusBar{}
	sb.SetPosition(x, y)
	sb.Resize(w, 1)
	sb.SetFocusable(false)
	return sb
}

// OnFocusChanged implements core.FocusObserver: it remembers which widget
// to pull key hints from on the next Draw.
func (s *StatusBar) OnFocusChanged(prev, next core.Widget) {
	s.focused = next
}

// ShowMessage sets the right-aligned transient message, replacing any
// previous one.
func (s *StatusBar) ShowMessage(text string) { s.message = text }

// ClearMessage removes the transient message.
func (s *StatusBar) ClearMessage() { s.message = "" }

// keyHintsText walks to the most deeply focused widget (so a focused Pane
// reports its focused child's hints, not its own) and formats whatever
// core.KeyHintsProvider hints it advertises.
func (s *StatusBar) keyHintsText() string {
	deep := core.FindDeepFocused(s.focused)
	if deep == nil {
		return ""
	}
	khp, ok := deep.(core.KeyHintsProvider)
	if !ok {
		return ""
	}
	return core.FormatKeyHints(khp.GetKeyHints())
}

// Draw renders key hints left-aligned and the transient message
// right-aligned, truncating hints first if both don't fit.
func (s *StatusBar) Draw(p *core.Painter) {
	tm := theme.Get()
	fg := tm.GetSemanticColor("text.secondary")
	bg := tm.GetSemanticColor("bg.surface")
	style := tcell.StyleDefault.Foreground(fg).Background(bg)

	for x := 0; x < s.Rect.W; x++ {
		p.SetCell(s.Rect.X+x, s.Rect.Y, ' ', style)
	}

	left := []rune(s.keyHintsText())
	right := []rune(s.message)

	avail := s.Rect.W - 2
	if len(right) > 0 {
		maxLeft := avail - len(right) - 3
		if maxLeft < 0 {
			maxLeft = 0
		}
		if len(left) > maxLeft {
			left = left[:maxLeft]
		}
	}

	if len(left) > 0 {
		p.DrawText(s.Rect.X+1, s.Rect.Y, string(left), style)
	}
	if len(right) > 0 {
		errFg := tm.GetSemanticColor("action.danger")
		msgStyle := tcell.StyleDefault.Foreground(errFg).Background(bg)
		rightX := s.Rect.X + s.Rect.W - len(right) - 1
		p.DrawText(rightX, s.Rect.Y, string(right), msgStyle)
	}
}
