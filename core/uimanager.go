// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/uimanager.go
// Summary: Mutex-protected widget tree with dirty-rect invalidation and
// Tab-order focus cycling. This is the rendering substrate the spatial
// navigation Coordinator drives through AddFocusObserver/Focus.

package core

import (
	"sort"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// UIManager owns a flat set of top-level widgets, tracks which one is
// focused and renders them into a dirty-rect-tracked cell buffer.
type UIManager struct {
	mu sync.Mutex

	W, H    int
	widgets []Widget
	bgStyle tcell.Style

	notifier chan bool

	dirtyMu sync.Mutex
	dirty   []Rect
	buf     [][]Cell

	focused Widget

	focusObservers []FocusObserver
}

// NewUIManager constructs an empty manager. Call Resize before Render.
func NewUIManager() *UIManager {
	return &UIManager{bgStyle: tcell.StyleDefault}
}

// SetRefreshNotifier wires a channel the manager signals whenever a render
// is requested; the standalone runner bridges it to the terminal event loop.
func (m *UIManager) SetRefreshNotifier(ch chan bool) {
	m.mu.Lock()
	m.notifier = ch
	m.mu.Unlock()
}

// RequestRefresh asks the host loop to redraw without any particular dirty
// region (used after structural changes like adding a widget).
func (m *UIManager) RequestRefresh() {
	m.mu.Lock()
	m.requestRefreshLocked()
	m.mu.Unlock()
}

func (m *UIManager) requestRefreshLocked() {
	if m.notifier == nil {
		return
	}
	select {
	case m.notifier <- true:
	default:
	}
}

// Resize changes the logical screen size and reallocates the cell buffer.
func (m *UIManager) Resize(w, h int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.W, m.H = w, h
	m.ensureBufferLocked()
	m.invalidateAllLocked()
}

func (m *UIManager) ensureBufferLocked() {
	if len(m.buf) == m.H && (m.H == 0 || len(m.buf[0]) == m.W) {
		return
	}
	m.buf = make([][]Cell, m.H)
	for y := range m.buf {
		m.buf[y] = make([]Cell, m.W)
	}
}

// AddWidget registers a top-level widget and wires it to this manager's
// invalidation channel.
func (m *UIManager) AddWidget(w Widget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.widgets = append(m.widgets, w)
	m.propagateInvalidator(w)
	m.invalidateAllLocked()
	m.requestRefreshLocked()
}

// RemoveWidget detaches a top-level widget.
func (m *UIManager) RemoveWidget(w Widget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.widgets {
		if existing == w {
			m.widgets = append(m.widgets[:i], m.widgets[i+1:]...)
			break
		}
	}
	if m.focused == w {
		m.focused = nil
	}
	m.invalidateAllLocked()
	m.requestRefreshLocked()
}

// Widgets returns the top-level widgets in z-order (lowest first).
func (m *UIManager) Widgets() []Widget {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedWidgetsLocked(false)
}

func (m *UIManager) propagateInvalidator(w Widget) {
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(m.Invalidate)
	}
}

// AddFocusObserver registers a callback invoked whenever the manager's
// notion of the focused widget changes.
func (m *UIManager) AddFocusObserver(o FocusObserver) {
	m.mu.Lock()
	m.focusObservers = append(m.focusObservers, o)
	m.mu.Unlock()
}

// RemoveFocusObserver unregisters a previously added observer.
func (m *UIManager) RemoveFocusObserver(o FocusObserver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.focusObservers {
		if existing == o {
			m.focusObservers = append(m.focusObservers[:i], m.focusObservers[i+1:]...)
			return
		}
	}
}

func (m *UIManager) notifyFocusChangedLocked(prev, next Widget) {
	observers := make([]FocusObserver, len(m.focusObservers))
	copy(observers, m.focusObservers)
	// Called synchronously so a navigation Coordinator can rely on ordering
	// with respect to the Focus() call that triggered it.
	for _, o := range observers {
		o.OnFocusChanged(prev, next)
	}
}

// Focus sets the focused widget, blurring whichever widget previously held
// focus. Passing nil blurs everything.
func (m *UIManager) Focus(w Widget) {
	m.mu.Lock()
	m.focusLocked(w)
	m.mu.Unlock()
}

func (m *UIManager) focusLocked(w Widget) {
	prev := m.focused
	if prev == w {
		return
	}
	if prev != nil {
		prev.Blur()
	}
	m.focused = w
	if w != nil {
		w.Focus()
	}
	m.invalidateAllLocked()
	m.notifyFocusChangedLocked(prev, w)
	m.requestRefreshLocked()
}

// Focused returns the widget that currently holds focus, or nil.
func (m *UIManager) Focused() Widget {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focused
}

// HandleKey routes a key event to the focused widget, falling back to
// root-level Tab/Backtab cycling when nothing claims the key.
func (m *UIManager) HandleKey(ev *tcell.EventKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		forward := ev.Key() == tcell.KeyTab
		if m.focused != nil {
			if fc, ok := m.focused.(FocusCycler); ok && fc.CycleFocus(forward) {
				m.requestRefreshLocked()
				return true
			}
		}
		return m.cycleRootWidgetsLocked(forward)
	}

	if m.focused != nil {
		if m.focused.HandleKey(ev) {
			m.requestRefreshLocked()
			return true
		}
	}
	return false
}

func (m *UIManager) cycleRootWidgetsLocked(forward bool) bool {
	focusables := m.focusableRootWidgetsLocked()
	if len(focusables) == 0 {
		return false
	}
	idx := -1
	for i, w := range focusables {
		if w == m.focused {
			idx = i
			break
		}
	}
	var next int
	switch {
	case idx < 0 && forward:
		next = 0
	case idx < 0:
		next = len(focusables) - 1
	case forward:
		next = (idx + 1) % len(focusables)
	default:
		next = (idx - 1 + len(focusables)) % len(focusables)
	}
	m.focusLocked(focusables[next])
	return true
}

func (m *UIManager) focusableRootWidgetsLocked() []Widget {
	var out []Widget
	for _, w := range m.widgets {
		if w.Focusable() {
			out = append(out, w)
		}
	}
	return out
}

// HandleMouse routes a mouse event to the topmost widget under the cursor.
func (m *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	x, y := ev.Position()
	w := m.rootWidgetAtLocked(x, y)
	if w == nil {
		return false
	}
	if ma, ok := w.(MouseAware); ok {
		handled := ma.HandleMouse(ev)
		if handled {
			m.requestRefreshLocked()
		}
		return handled
	}
	return false
}

func (m *UIManager) rootWidgetAtLocked(x, y int) Widget {
	sorted := m.sortedWidgetsLocked(true)
	for _, w := range sorted {
		if w.HitTest(x, y) {
			return w
		}
	}
	return nil
}

func (m *UIManager) sortedWidgetsLocked(descending bool) []Widget {
	sorted := make([]Widget, len(m.widgets))
	copy(sorted, m.widgets)
	sort.SliceStable(sorted, func(i, j int) bool {
		zi, zj := getZIndex(sorted[i]), getZIndex(sorted[j])
		if descending {
			return zi > zj
		}
		return zi < zj
	})
	return sorted
}

func getZIndex(w Widget) int {
	if z, ok := w.(ZIndexer); ok {
		return z.ZIndex()
	}
	return 0
}

// Invalidate marks rect as needing redraw on the next Render call.
func (m *UIManager) Invalidate(rect Rect) {
	m.dirtyMu.Lock()
	m.dirty = mergeRects(m.dirty, rect)
	m.dirtyMu.Unlock()
	m.mu.Lock()
	m.requestRefreshLocked()
	m.mu.Unlock()
}

// InvalidateAll marks the entire screen as needing redraw.
func (m *UIManager) InvalidateAll() {
	m.mu.Lock()
	m.invalidateAllLocked()
	m.mu.Unlock()
}

func (m *UIManager) invalidateAllLocked() {
	m.dirtyMu.Lock()
	m.dirty = []Rect{{X: 0, Y: 0, W: m.W, H: m.H}}
	m.dirtyMu.Unlock()
}

// Render draws every dirty region and returns the full cell buffer.
// Callers blit the returned buffer to the terminal.
func (m *UIManager) Render() [][]Cell {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureBufferLocked()

	m.dirtyMu.Lock()
	regions := m.dirty
	m.dirty = nil
	m.dirtyMu.Unlock()

	if len(regions) == 0 {
		return m.buf
	}

	sorted := m.sortedWidgetsLocked(false)
	for _, region := range regions {
		p := NewPainter(m.buf, region)
		p.Fill(region, ' ', m.bgStyle)
		for _, w := range sorted {
			w.Draw(p)
		}
	}
	return m.buf
}

func rectsOverlap(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func union(a, b Rect) Rect {
	left := min(a.X, b.X)
	top := min(a.Y, b.Y)
	right := max(a.X+a.W, b.X+b.W)
	bottom := max(a.Y+a.H, b.Y+b.H)
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// mergeRects folds rect into the dirty list, coalescing it with the first
// existing entry it overlaps to keep the list small. Rects that only touch
// at an edge are kept as separate entries.
func mergeRects(dirty []Rect, rect Rect) []Rect {
	for i, existing := range dirty {
		if rectsOverlap(existing, rect) {
			dirty[i] = union(existing, rect)
			return dirty
		}
	}
	return append(dirty, rect)
}
