// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snav/section.go
// Summary: A named region of navigable elements: config, per-section
// state (last-focused, previous-focus snap-back record), and the
// predicates determining membership and navigability.

package snav

// PreviousFocus records a focus move so rememberSource can snap back to
// the element a reversed direction came from.
type PreviousFocus struct {
	Target      Element
	Destination Element
	Reverse     Direction
}

// LeaveForResult is the three-valued outcome of Section.gotoLeaveFor. Do
// not collapse it to a bool: LeaveForSuppressed ("nothing" in the source
// algorithm) means the override explicitly blocks navigation, which is a
// different outcome from LeaveForNotApplicable ("no override configured,
// fall through to the normal election result").
type LeaveForResult int

const (
	// LeaveForNotApplicable means no leaveFor entry applied; the caller
	// should fall through to its own handling.
	LeaveForNotApplicable LeaveForResult = iota
	// LeaveForHandled means the override resolved and focus was issued.
	LeaveForHandled
	// LeaveForSuppressed means the override explicitly blocks navigation
	// (an empty-string resolution); the caller must report navigate-failed
	// and must not fall through to any other handling.
	LeaveForSuppressed
)

// Section is a named grouping of focusable elements sharing config.
type Section struct {
	id          string
	coordinator *Coordinator
	config      Config

	disabled           bool
	lastFocusedElement Element
	previousFocus      *PreviousFocus
}

func newSection(c *Coordinator, id string, cfg Config) *Section {
	if c == nil {
		panicProgrammer("newSection", "a Section cannot be constructed without a Coordinator")
	}
	return &Section{id: id, coordinator: c, config: cfg}
}

// ID returns the section's identifier, stable for its lifetime.
func (s *Section) ID() string { return s.id }

// Disabled reports whether the section is currently disabled.
func (s *Section) Disabled() bool { return s.disabled }

func (s *Section) effective() effectiveConfig {
	return mergeConfig(s.config, s.coordinator.defaultConfig)
}

// isNavigable reports whether element belongs to this section (per
// navigableFilter and, if verifySelector, per selector match) and can
// currently receive focus: visible, non-zero area, and not disabled.
func (s *Section) isNavigable(e Element, verifySelector bool) bool {
	if s.disabled || e == nil {
		return false
	}
	if s.coordinator.attrs != nil && s.coordinator.attrs.Disabled(e) {
		return false
	}
	if s.coordinator.geometry != nil {
		_, _, _, _, visible := s.coordinator.geometry.Measure(e)
		if !visible {
			return false
		}
	}
	if verifySelector && !s.matchesSelector(e) {
		return false
	}
	eff := s.effective()
	if eff.navigableFilter != nil {
		return eff.navigableFilter(e)
	}
	return true
}

func (s *Section) matchesSelector(e Element) bool {
	for _, el := range s.resolveSelectorElements() {
		if el == e {
			return true
		}
	}
	return false
}

func (s *Section) resolveSelectorElements() []Element {
	return s.coordinator.resolveElements(s.config.Selector)
}

// getNavigableElements materialises every element the section's selector
// matches, filtered by isNavigable. Returns nil if the section is
// disabled.
func (s *Section) getNavigableElements() []Element {
	if s.disabled {
		return nil
	}
	var out []Element
	for _, e := range s.resolveSelectorElements() {
		if s.isNavigable(e, false) {
			out = append(out, e)
		}
	}
	return out
}

// getDefaultElement resolves defaultElementSelector, re-checking
// navigability at read time.
func (s *Section) getDefaultElement() Element {
	if s.config.DefaultElementSelector == "" {
		return nil
	}
	for _, e := range s.coordinator.resolveElements(SelectorTarget(s.config.DefaultElementSelector)) {
		if s.isNavigable(e, true) {
			return e
		}
	}
	return nil
}

// getLastFocusedElement returns the section's remembered last-focused
// element, re-verified against navigability and selector membership.
func (s *Section) getLastFocusedElement() Element {
	if s.lastFocusedElement == nil {
		return nil
	}
	if !s.isNavigable(s.lastFocusedElement, true) {
		return nil
	}
	return s.lastFocusedElement
}

// getPrimaryElement resolves the element Section.focus() should prefer,
// dispatched by the effective priority strategy.
func (s *Section) getPrimaryElement() Element {
	switch s.effective().priority {
	case PriorityLastFocused:
		if e := s.getLastFocusedElement(); e != nil {
			return e
		}
		return s.getDefaultElement()
	case PriorityDefaultElement:
		return s.getDefaultElement()
	default:
		return nil
	}
}

// focus attempts to move focus into this section. With PriorityLastFocused
// it tries the last-focused element, then the default element; with any
// other priority it tries the default element, then the last-focused one.
// Either way it falls back to the first navigable element. Returns whether
// a focus change was issued.
func (s *Section) focus() bool {
	if s.disabled {
		return false
	}

	var candidates []Element
	if s.effective().priority == PriorityLastFocused {
		candidates = []Element{s.getLastFocusedElement(), s.getDefaultElement()}
	} else {
		candidates = []Element{s.getDefaultElement(), s.getLastFocusedElement()}
	}
	for _, e := range candidates {
		if e != nil {
			return s.coordinator.focusElement(e, s.id, nil)
		}
	}

	navigable := s.getNavigableElements()
	if len(navigable) == 0 {
		return false
	}
	return s.coordinator.focusElement(navigable[0], s.id, nil)
}

// makeFocusable assigns tab-index -1 to every selector match that isn't in
// tabIndexIgnoreList and doesn't already carry a tab index.
func (s *Section) makeFocusable() {
	if s.coordinator.attrs == nil {
		return
	}
	ignore := make(map[Element]bool)
	for _, e := range s.coordinator.resolveElements(s.config.TabIndexIgnoreList) {
		ignore[e] = true
	}
	for _, e := range s.resolveSelectorElements() {
		if ignore[e] {
			continue
		}
		if _, ok := s.coordinator.attrs.TabIndex(e); ok {
			continue
		}
		s.coordinator.attrs.SetTabIndex(e, -1)
	}
}

// savePreviousFocus records a move so a later reversed direction can snap
// back to target via rememberSource.
func (s *Section) savePreviousFocus(target, destination Element, reverse Direction) {
	s.previousFocus = &PreviousFocus{Target: target, Destination: destination, Reverse: reverse}
}

// gotoLeaveFor resolves config.leaveFor[direction], if any, and attempts
// to honor it. See LeaveForResult for the three-valued contract.
func (s *Section) gotoLeaveFor(dir Direction) LeaveForResult {
	eff := s.effective()
	if eff.leaveFor == nil {
		return LeaveForNotApplicable
	}
	target, ok := eff.leaveFor[dir]
	if !ok {
		return LeaveForNotApplicable
	}
	target = resolveTarget(target)

	switch v := target.(type) {
	case SelectorTarget:
		if string(v) == "" {
			return LeaveForSuppressed
		}
		if s.coordinator.focusExtendedSelector(string(v), &dir) {
			return LeaveForHandled
		}
		return LeaveForNotApplicable
	default:
		return LeaveForNotApplicable
	}
}
