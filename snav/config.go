// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snav/config.go
// Summary: Section/coordinator configuration: restrict policy, priority
// strategy, the Target selector sum type and leave-for overrides, with
// careful unset-vs-falsy semantics for overlay onto coordinator defaults.

package snav

// RestrictPolicy controls which sections' navigables an election may pick
// from once the source section has none of its own.
type RestrictPolicy int

const (
	// RestrictSelfFirst elects among the source section first, falling
	// back to every other section. This is the default.
	RestrictSelfFirst RestrictPolicy = iota
	// RestrictSelfOnly never elects outside the source section.
	RestrictSelfOnly
	// RestrictNone elects among every section's navigables, including the
	// source section's own, on equal footing.
	RestrictNone
)

// PriorityStrategy controls which element a section offers up when it is
// asked to take focus directly (Section.focus, cross-section leave-for
// fallback, focusSection).
type PriorityStrategy int

const (
	// PriorityNoneStrategy has no primary element; Section.focus tries the
	// default element, then the last-focused element, then the first
	// navigable element.
	PriorityNoneStrategy PriorityStrategy = iota
	// PriorityLastFocused prefers the section's last-focused element,
	// falling back to its default element.
	PriorityLastFocused
	// PriorityDefaultElement makes the configured default element the
	// section's only primary element; Section.focus still falls back to the
	// last-focused element, then the first navigable element.
	PriorityDefaultElement
)

// Target is the engine's selector sum type: a Leave-for override or a
// section's `selector`/`tabIndexIgnoreList` config key can be a selector
// string, a direct element, a collection of elements, or a callable that
// resolves to one of the above. isTarget is unexported so only the
// variants below satisfy the interface, mirroring a closed union.
type Target interface {
	isTarget()
}

// SelectorTarget is a CSS-selector-style string understood by a Query
// implementation. A leading '@' designates a section id (extended
// selector); an empty string means "explicitly suppress navigation".
type SelectorTarget string

func (SelectorTarget) isTarget() {}

// ElementTarget wraps a single resolved element handle.
type ElementTarget struct{ Element Element }

func (ElementTarget) isTarget() {}

// ElementListTarget wraps a pre-resolved collection of element handles.
type ElementListTarget []Element

func (ElementListTarget) isTarget() {}

// FuncTarget defers resolution: it is invoked at the moment a target is
// needed and must return one of the other three variants (or nil).
type FuncTarget func() Target

func (FuncTarget) isTarget() {}

// resolveTarget repeatedly invokes FuncTarget variants until it reaches a
// concrete target, preventing an accidental infinite loop from a callable
// that always returns another callable.
func resolveTarget(t Target) Target {
	for i := 0; i < 8; i++ {
		fn, ok := t.(FuncTarget)
		if !ok {
			return t
		}
		if fn == nil {
			return nil
		}
		t = fn()
	}
	return t
}

// LeaveFor is a partial direction → Target override map.
type LeaveFor map[Direction]Target

// Config is the behavioral configuration shared by a Section and the
// coordinator-wide defaults. Every field is a pointer (or nil-able map/
// func) so a section can leave a key genuinely unset, letting it inherit
// the coordinator default rather than silently defaulting to zero/false.
type Config struct {
	Selector                 Target
	StraightOnly             *bool
	StraightOverlapThreshold *float64
	RememberSource           *bool
	Priority                 *PriorityStrategy
	LeaveFor                 LeaveFor
	Restrict                 *RestrictPolicy
	TabIndexIgnoreList       Target
	NavigableFilter          func(Element) bool
	OnFocus                  func(Element)
	OnBlur                   func(Element)

	// Section-only keys; meaningless in the coordinator-wide defaults.
	ID                     string
	DefaultElementSelector string
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func priorityOr(p *PriorityStrategy, def PriorityStrategy) PriorityStrategy {
	if p == nil {
		return def
	}
	return *p
}

func restrictOr(p *RestrictPolicy, def RestrictPolicy) RestrictPolicy {
	if p == nil {
		return def
	}
	return *p
}

// effectiveConfig overlays a section's config on top of the coordinator's
// own default config, field by field, honoring the unset/falsy
// distinction: a nil pointer means "inherit", never "false".
type effectiveConfig struct {
	straightOnly             bool
	straightOverlapThreshold float64
	rememberSource           bool
	priority                 PriorityStrategy
	leaveFor                 LeaveFor
	restrict                 RestrictPolicy
	navigableFilter          func(Element) bool
	onFocus                  func(Element)
	onBlur                   func(Element)
}

func mergeConfig(section, def Config) effectiveConfig {
	leaveFor := def.LeaveFor
	if section.LeaveFor != nil {
		leaveFor = section.LeaveFor
	}
	filter := def.NavigableFilter
	if section.NavigableFilter != nil {
		filter = section.NavigableFilter
	}
	onFocus := def.OnFocus
	if section.OnFocus != nil {
		onFocus = section.OnFocus
	}
	onBlur := def.OnBlur
	if section.OnBlur != nil {
		onBlur = section.OnBlur
	}
	return effectiveConfig{
		straightOnly:             boolOr(section.StraightOnly, boolOr(def.StraightOnly, false)),
		straightOverlapThreshold: floatOr(section.StraightOverlapThreshold, floatOr(def.StraightOverlapThreshold, DefaultOverlapThreshold)),
		rememberSource:           boolOr(section.RememberSource, boolOr(def.RememberSource, false)),
		priority:                 priorityOr(section.Priority, priorityOr(def.Priority, PriorityNoneStrategy)),
		leaveFor:                 leaveFor,
		restrict:                 restrictOr(section.Restrict, restrictOr(def.Restrict, RestrictSelfFirst)),
		navigableFilter:          filter,
		onFocus:                  onFocus,
		onBlur:                   onBlur,
	}
}
