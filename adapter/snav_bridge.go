// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/snav_bridge.go
// Summary: Binds the snav spatial-navigation engine's collaborator
// interfaces (Geometry, Query, Attributes, Dispatcher) to a core.UIManager
// widget tree, and a FocusObserver that reports focus changes made through
// UIManager.Focus outside the engine's own FocusElement path (such as
// root-level Tab cycling). Focus changes a container makes on its own
// children (a Pane's mouse clicks or its own Tab cycling) do not go through
// UIManager.Focus and are not reported.

package adapter

import (
	"sort"

	"github.com/framegrace/spatialnav/core"
	"github.com/framegrace/spatialnav/snav"
)

// WidgetElement is a snav.Element handle wrapping a core.Widget. Two
// handles compare equal (via ==) iff they wrap the same widget, since
// WidgetElement is a pointer type and the bridge hands out exactly one per
// registered widget.
type WidgetElement struct {
	id string
	w  core.Widget
}

// ElementID returns the id the widget was registered under.
func (e *WidgetElement) ElementID() string { return e.id }

// Widget returns the underlying core.Widget.
func (e *WidgetElement) Widget() core.Widget { return e.w }

type widgetMeta struct {
	disabled  bool
	tabIndex  *int
	classes   map[string]bool
	overrides map[snav.Direction]string
	groups    []string // selector group names this element belongs to
}

// Bridge registers core.Widget instances as snav Elements and implements
// snav.Geometry, snav.Query, snav.Attributes and snav.Dispatcher over the
// registry plus the wrapped core.UIManager. It is the seam between the
// terminal widget tree and the navigation Coordinator.
type Bridge struct {
	ui *core.UIManager

	elements map[core.Widget]*WidgetElement
	byID     map[string]*WidgetElement
	meta     map[*WidgetElement]*widgetMeta
	order    []*WidgetElement
}

// NewBridge constructs a Bridge over ui. ui may be nil for tests that only
// exercise selector/attribute bookkeeping.
func NewBridge(ui *core.UIManager) *Bridge {
	return &Bridge{
		ui:       ui,
		elements: make(map[core.Widget]*WidgetElement),
		byID:     make(map[string]*WidgetElement),
		meta:     make(map[*WidgetElement]*widgetMeta),
	}
}

// Register wraps w as a snav.Element under the given stable id. Calling
// Register twice for the same widget returns the existing handle.
func (b *Bridge) Register(id string, w core.Widget, groups ...string) *WidgetElement {
	if existing, ok := b.elements[w]; ok {
		return existing
	}
	el := &WidgetElement{id: id, w: w}
	b.elements[w] = el
	b.byID[id] = el
	b.meta[el] = &widgetMeta{
		classes:   make(map[string]bool),
		overrides: make(map[snav.Direction]string),
		groups:    append([]string(nil), groups...),
	}
	b.order = append(b.order, el)
	return el
}

// Element returns the handle registered for w, or nil.
func (b *Bridge) Element(w core.Widget) *WidgetElement { return b.elements[w] }

// ByID returns the handle registered under id, or nil.
func (b *Bridge) ByID(id string) *WidgetElement { return b.byID[id] }

func (b *Bridge) metaFor(e snav.Element) *widgetMeta {
	we, ok := e.(*WidgetElement)
	if !ok {
		return nil
	}
	return b.meta[we]
}

// SetDisabled marks el disabled for navigation purposes, independent of
// the widget's own Focusable flag.
func (b *Bridge) SetDisabled(el *WidgetElement, disabled bool) {
	if m := b.meta[el]; m != nil {
		m.disabled = disabled
	}
}

// AddClass attaches a marker class (the engine only ever reads
// "non-scrollable", but the registry supports arbitrary names for future
// adapters and tests).
func (b *Bridge) AddClass(el *WidgetElement, class string) {
	if m := b.meta[el]; m != nil {
		m.classes[class] = true
	}
}

// SetDirectionOverride installs a data-sn-<direction>-equivalent override.
// An empty target suppresses navigation in that direction entirely.
func (b *Bridge) SetDirectionOverride(el *WidgetElement, dir snav.Direction, target string) {
	if m := b.meta[el]; m != nil {
		m.overrides[dir] = target
	}
}

// --- snav.Geometry -------------------------------------------------------

// Measure implements snav.Geometry over the widget's own Position/Size.
// Visibility mirrors offsetWidth/offsetHeight: a zero-area widget is never
// navigable.
func (b *Bridge) Measure(e snav.Element) (left, top, width, height float64, visible bool) {
	we, ok := e.(*WidgetElement)
	if !ok || we.w == nil {
		return 0, 0, 0, 0, false
	}
	x, y := we.w.Position()
	w, h := we.w.Size()
	return float64(x), float64(y), float64(w), float64(h), w > 0 && h > 0
}

// --- snav.Query ----------------------------------------------------------

// QuerySelector resolves three selector forms: "#id" matches the element
// registered under that id; "*" matches every registered element in
// registration order; anything else matches elements registered under that
// group name via Register's variadic groups argument.
func (b *Bridge) QuerySelector(selector string) []snav.Element {
	if selector == "" {
		return nil
	}
	if selector == "*" {
		out := make([]snav.Element, 0, len(b.order))
		for _, el := range b.order {
			out = append(out, el)
		}
		return out
	}
	if len(selector) > 1 && selector[0] == '#' {
		if el, ok := b.byID[selector[1:]]; ok {
			return []snav.Element{el}
		}
		return nil
	}
	var out []snav.Element
	for _, el := range b.order {
		m := b.meta[el]
		for _, g := range m.groups {
			if g == selector {
				out = append(out, el)
				break
			}
		}
	}
	return out
}

// --- snav.Attributes -------------------------------------------------------

// Disabled implements snav.Attributes.
func (b *Bridge) Disabled(e snav.Element) bool {
	if m := b.metaFor(e); m != nil {
		return m.disabled
	}
	return false
}

// TabIndex implements snav.Attributes.
func (b *Bridge) TabIndex(e snav.Element) (int, bool) {
	m := b.metaFor(e)
	if m == nil || m.tabIndex == nil {
		return 0, false
	}
	return *m.tabIndex, true
}

// SetTabIndex implements snav.Attributes.
func (b *Bridge) SetTabIndex(e snav.Element, idx int) {
	if m := b.metaFor(e); m != nil {
		v := idx
		m.tabIndex = &v
	}
}

// DirectionOverride implements snav.Attributes.
func (b *Bridge) DirectionOverride(e snav.Element, dir snav.Direction) (string, bool) {
	m := b.metaFor(e)
	if m == nil {
		return "", false
	}
	v, ok := m.overrides[dir]
	return v, ok
}

// HasClass implements snav.Attributes.
func (b *Bridge) HasClass(e snav.Element, class string) bool {
	m := b.metaFor(e)
	if m == nil {
		return false
	}
	return m.classes[class]
}

// --- snav.Dispatcher -------------------------------------------------------

// NativeFocus implements snav.Dispatcher by focusing the wrapped widget in
// the underlying UIManager.
func (b *Bridge) NativeFocus(e snav.Element) {
	we, ok := e.(*WidgetElement)
	if !ok || b.ui == nil {
		return
	}
	b.ui.Focus(we.w)
}

// NativeBlur implements snav.Dispatcher by blurring the wrapped widget
// directly, without disturbing whatever else the manager currently
// considers focused.
func (b *Bridge) NativeBlur(e snav.Element) {
	we, ok := e.(*WidgetElement)
	if !ok {
		return
	}
	we.w.Blur()
}

// FocusObserverFor returns a core.FocusObserver that reports focus changes
// made through UIManager.Focus (such as root-level Tab cycling) back into
// coord. Mouse clicks do not change the UIManager's focused widget, so they
// are not reported. Register it with ui.AddFocusObserver.
func (b *Bridge) FocusObserverFor(coord *snav.Coordinator) core.FocusObserver {
	return focusBridge{b: b, coord: coord}
}

type focusBridge struct {
	b     *Bridge
	coord *snav.Coordinator
}

func (f focusBridge) OnFocusChanged(prev, next core.Widget) {
	if next == nil {
		return
	}
	if el, ok := f.b.elements[next]; ok {
		f.coord.NotifyNativeFocus(el)
	}
}

// sortedIDs is a debugging/test helper returning every registered id in
// stable sorted order.
func (b *Bridge) sortedIDs() []string {
	ids := make([]string, 0, len(b.byID))
	for id := range b.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
