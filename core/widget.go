// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/widget.go
// Summary: Core widget interfaces and the BaseWidget embeddable struct.

package core

import "github.com/gdamore/tcell/v2"

// Widget is the minimal contract every drawable, focusable element satisfies.
type Widget interface {
	Draw(p *Painter)
	Resize(w, h int)
	Size() (int, int)
	SetPosition(x, y int)
	Position() (int, int)
	HitTest(x, y int) bool

	Focusable() bool
	SetFocusable(bool)
	Focus()
	Blur()
	IsFocused() bool

	HandleKey(ev *tcell.EventKey) bool
}

// ZIndexer lets a widget opt into explicit paint/hit-test ordering.
type ZIndexer interface {
	ZIndex() int
}

// MouseAware widgets receive routed mouse events.
type MouseAware interface {
	HandleMouse(ev *tcell.EventMouse) bool
}

// InvalidationAware widgets accept a callback used to request a partial redraw.
type InvalidationAware interface {
	SetInvalidator(fn func(Rect))
}

// ChildContainer exposes a widget's children for focus/hit traversal.
type ChildContainer interface {
	VisitChildren(f func(Widget))
}

// HitTester resolves the most specific widget under a point.
type HitTester interface {
	WidgetAt(x, y int) Widget
}

// FocusState reports whether a widget currently holds focus.
type FocusState interface {
	IsFocused() bool
}

// FocusObserver is notified whenever the UIManager's focused widget changes.
type FocusObserver interface {
	OnFocusChanged(prev, next Widget)
}

// FocusCycler is implemented by container widgets that manage their own
// internal Tab order. The UIManager defers to CycleFocus before falling
// back to its own root-level cycling.
type FocusCycler interface {
	CycleFocus(forward bool) bool
}

// BaseWidget implements the bookkeeping shared by nearly every concrete
// widget: geometry, focus state and style resolution. Embed it and override
// Draw/HandleKey as needed.
type BaseWidget struct {
	Rect Rect

	focused            bool
	focusable          bool
	zIndex             int
	focusStyleEnabled  bool
	focusedStyle       tcell.Style
}

func (b *BaseWidget) SetPosition(x, y int) { b.Rect.X, b.Rect.Y = x, y }
func (b *BaseWidget) Position() (int, int) { return b.Rect.X, b.Rect.Y }
func (b *BaseWidget) Resize(w, h int)      { b.Rect.W, b.Rect.H = w, h }
func (b *BaseWidget) Size() (int, int)     { return b.Rect.W, b.Rect.H }
func (b *BaseWidget) HitTest(x, y int) bool { return b.Rect.Contains(x, y) }

func (b *BaseWidget) Focusable() bool        { return b.focusable }
func (b *BaseWidget) SetFocusable(f bool)    { b.focusable = f }
func (b *BaseWidget) Focus()                 { b.focused = true }
func (b *BaseWidget) Blur()                  { b.focused = false }
func (b *BaseWidget) IsFocused() bool        { return b.focused }

func (b *BaseWidget) ZIndex() int       { return b.zIndex }
func (b *BaseWidget) SetZIndex(z int)   { b.zIndex = z }

// SetFocusedStyle configures an alternate style applied while focused.
func (b *BaseWidget) SetFocusedStyle(s tcell.Style, enabled bool) {
	b.focusedStyle = s
	b.focusStyleEnabled = enabled
}

// EffectiveStyle returns the focused style override when focused and
// enabled, otherwise the base style passed in.
func (b *BaseWidget) EffectiveStyle(base tcell.Style) tcell.Style {
	if b.focused && b.focusStyleEnabled {
		return b.focusedStyle
	}
	return base
}

// HandleKey is a no-op default; concrete widgets override it.
func (b *BaseWidget) HandleKey(ev *tcell.EventKey) bool { return false }

// Draw is a no-op default; concrete widgets override it.
func (b *BaseWidget) Draw(p *Painter) {}
