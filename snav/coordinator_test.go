// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package snav_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/spatialnav/snav"
)

// fakeEnv is a minimal in-memory Geometry/Query/Attributes/Dispatcher
// triple good enough to drive a Coordinator in tests, without a real
// widget tree.
type fakeEnv struct {
	rects      map[fakeElement]snav.Rect
	groups     map[string][]fakeElement
	disabled   map[fakeElement]bool
	overrides  map[fakeElement]map[snav.Direction]string
	classes    map[fakeElement]map[string]bool
	tabIndexes map[fakeElement]int
	focused    fakeElement
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		rects:      make(map[fakeElement]snav.Rect),
		groups:     make(map[string][]fakeElement),
		disabled:   make(map[fakeElement]bool),
		overrides:  make(map[fakeElement]map[snav.Direction]string),
		classes:    make(map[fakeElement]map[string]bool),
		tabIndexes: make(map[fakeElement]int),
	}
}

func (e *fakeEnv) add(group string, id fakeElement, left, top, w, h float64) fakeElement {
	e.rects[id] = rect(id, left, top, w, h)
	e.groups[group] = append(e.groups[group], id)
	return id
}

func (e *fakeEnv) Measure(el snav.Element) (float64, float64, float64, float64, bool) {
	id := el.(fakeElement)
	r, ok := e.rects[id]
	if !ok {
		return 0, 0, 0, 0, false
	}
	return r.Left, r.Top, r.Width, r.Height, true
}

func (e *fakeEnv) QuerySelector(selector string) []snav.Element {
	var out []snav.Element
	for _, id := range e.groups[selector] {
		out = append(out, id)
	}
	return out
}

func (e *fakeEnv) Disabled(el snav.Element) bool { return e.disabled[el.(fakeElement)] }

func (e *fakeEnv) TabIndex(el snav.Element) (int, bool) {
	v, ok := e.tabIndexes[el.(fakeElement)]
	return v, ok
}

func (e *fakeEnv) SetTabIndex(el snav.Element, idx int) { e.tabIndexes[el.(fakeElement)] = idx }

func (e *fakeEnv) DirectionOverride(el snav.Element, dir snav.Direction) (string, bool) {
	m, ok := e.overrides[el.(fakeElement)]
	if !ok {
		return "", false
	}
	v, ok := m[dir]
	return v, ok
}

func (e *fakeEnv) setOverride(el fakeElement, dir snav.Direction, target string) {
	if e.overrides[el] == nil {
		e.overrides[el] = make(map[snav.Direction]string)
	}
	e.overrides[el][dir] = target
}

func (e *fakeEnv) HasClass(el snav.Element, class string) bool {
	return e.classes[el.(fakeElement)][class]
}

func (e *fakeEnv) NativeFocus(el snav.Element) { e.focused = el.(fakeElement) }
func (e *fakeEnv) NativeBlur(el snav.Element) {
	if e.focused == el.(fakeElement) {
		e.focused = ""
	}
}

func TestCoordinatorMoveRightAcrossSections(t *testing.T) {
	env := newFakeEnv()
	left := env.add("left", "left-1", 0, 0, 10, 10)
	right := env.add("right", "right-1", 30, 0, 10, 10)

	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("left")}, "left")
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("right")}, "right")

	require.True(t, coord.FocusElement(left, "left", nil))
	assert.True(t, coord.Move(snav.Right))
	assert.Equal(t, right, coord.GetFocusedElement())
}

// Default restrict policy is self-first: with two elements in the source
// section, moving right must stay inside that section rather than jump to
// another section's closer-seeming element.
func TestCoordinatorSelfFirstStaysInSection(t *testing.T) {
	env := newFakeEnv()
	a := env.add("grid", "a", 0, 0, 10, 10)
	b := env.add("grid", "b", 20, 0, 10, 10)
	env.add("other", "c", 15, 0, 10, 10)

	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("grid")}, "grid")
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("other")}, "other")

	require.True(t, coord.FocusElement(a, "grid", nil))
	assert.True(t, coord.Move(snav.Right))
	assert.Equal(t, b, coord.GetFocusedElement())
}

// An empty-string direction override suppresses navigation entirely: the
// move must report failure without touching focus.
func TestCoordinatorEmptyOverrideSuppressesMove(t *testing.T) {
	env := newFakeEnv()
	a := env.add("grid", "a", 0, 0, 10, 10)
	env.add("grid", "b", 20, 0, 10, 10)
	env.setOverride(a, snav.Right, "")

	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("grid")}, "grid")

	require.True(t, coord.FocusElement(a, "grid", nil))

	var failed bool
	coord.On(snav.NavigateFailed, func(e *snav.Event) { failed = true })

	assert.False(t, coord.Move(snav.Right))
	assert.True(t, failed)
	assert.Equal(t, a, coord.GetFocusedElement())
}

// A cancelled will-move event prevents the move from taking effect.
func TestCoordinatorWillMoveCancelPreventsMove(t *testing.T) {
	env := newFakeEnv()
	a := env.add("grid", "a", 0, 0, 10, 10)
	env.add("grid", "b", 20, 0, 10, 10)

	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("grid")}, "grid")

	require.True(t, coord.FocusElement(a, "grid", nil))
	coord.On(snav.WillMove, func(e *snav.Event) { e.PreventDefault() })

	assert.False(t, coord.Move(snav.Right))
	assert.Equal(t, a, coord.GetFocusedElement())
}

// When a self-only section has nothing to elect in a direction, its
// leaveFor override for that direction wins: gotoLeaveFor is consulted on
// the "no element elected" path and focuses the escape target directly.
func TestCoordinatorLeaveForOverridesElection(t *testing.T) {
	env := newFakeEnv()
	a := env.add("grid", "a", 0, 0, 10, 10)
	escape := env.add("escape", "escape", 100, 100, 10, 10)

	restrictSelfOnly := snav.RestrictSelfOnly
	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{
		Selector: snav.SelectorTarget("grid"),
		Restrict: &restrictSelfOnly,
		LeaveFor: snav.LeaveFor{snav.Right: snav.SelectorTarget("escape")},
	}, "grid")
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("escape")}, "escape")

	require.True(t, coord.FocusElement(a, "grid", nil))
	assert.True(t, coord.Move(snav.Right))
	assert.Equal(t, escape, coord.GetFocusedElement())
}

// Re-entrant FocusElement calls made from inside an event handler take the
// silent path: no nested will-focus/focused events fire.
func TestCoordinatorReentrantFocusIsSilent(t *testing.T) {
	env := newFakeEnv()
	a := env.add("grid", "a", 0, 0, 10, 10)
	b := env.add("grid", "b", 20, 0, 10, 10)

	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{Selector: snav.SelectorTarget("grid")}, "grid")

	var focusedEvents int
	coord.On(snav.Focused, func(e *snav.Event) {
		focusedEvents++
		if focusedEvents == 1 {
			coord.FocusElement(b, "grid", nil)
		}
	})

	require.True(t, coord.FocusElement(a, "grid", nil))
	assert.Equal(t, 1, focusedEvents)
	assert.Equal(t, b, coord.GetFocusedElement())
}

func TestCoordinatorFocusSectionPrefersDefault(t *testing.T) {
	env := newFakeEnv()
	env.add("grid", "a", 0, 0, 10, 10)
	b := env.add("grid", "b", 20, 0, 10, 10)

	coord := snav.NewCoordinator(env, env, env, env)
	coord.AddSection(snav.Config{
		Selector:               snav.SelectorTarget("grid"),
		DefaultElementSelector: "defaultOnly",
	}, "grid")
	env.groups["defaultOnly"] = []fakeElement{b}

	assert.True(t, coord.FocusSection("grid"))
	assert.Equal(t, b, coord.GetFocusedElement())
}
