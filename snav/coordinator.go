// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snav/coordinator.go
// Summary: The engine's front door. Owns the section registry, runs the
// election across sections, drives the focus-change state machine and
// the cancellable event protocol, and guards re-entrancy.

package snav

import (
	"fmt"
	"strings"
)

// Modifiers reports which modifier keys were held during a key event;
// intake suppresses navigation while any is down.
type Modifiers struct {
	Shift, Ctrl, Alt, Meta bool
}

func (m Modifiers) any() bool { return m.Shift || m.Ctrl || m.Alt || m.Meta }

// Coordinator is the engine's public entry point: it owns every Section,
// tracks which element is focused, and translates directional input into
// focus changes via the Elector.
type Coordinator struct {
	geometry   Geometry
	query      Query
	attrs      Attributes
	dispatcher Dispatcher
	emitter    *emitter

	sections map[string]*Section
	order    []string // insertion order, preserved per the design notes

	idPool           int
	defaultSectionID string
	lastSectionID    string
	focusedElement   Element

	ready             bool
	paused            bool
	duringFocusChange bool

	defaultConfig Config

	// deferFocus schedules a deferred native focus call for elements
	// marked non-scrollable. Defaults to synchronous; a terminal or DOM
	// adapter can install a real scheduler (animation frame, tick queue).
	deferFocus func(func())
}

// NewCoordinator builds a Coordinator bound to the given collaborators.
// geometry, query and attrs may be nil in tests that never exercise the
// paths needing them; dispatcher may be nil to run with no native focus
// side effects at all (useful for pure election tests).
func NewCoordinator(geometry Geometry, query Query, attrs Attributes, dispatcher Dispatcher) *Coordinator {
	return &Coordinator{
		sections:   make(map[string]*Section),
		emitter:    newEmitter(),
		geometry:   geometry,
		query:      query,
		attrs:      attrs,
		dispatcher: dispatcher,
		deferFocus: func(fn func()) { fn() },
	}
}

// SetScheduler overrides how a "smart focus" (non-scrollable-classed
// element) defers its native focus call. The same scheduler runs the
// refocus callback of a cancelled NotifyNativeBlur.
func (c *Coordinator) SetScheduler(fn func(func())) {
	if fn == nil {
		fn = func(f func()) { f() }
	}
	c.deferFocus = fn
}

// On registers an event handler and returns an unsubscribe function.
func (c *Coordinator) On(typ EventType, h Handler) func() { return c.emitter.On(typ, h) }

// --- Lifecycle -------------------------------------------------------

// Init marks the coordinator ready to handle input. Idempotent.
func (c *Coordinator) Init() { c.ready = true }

// Uninit clears all state and marks the coordinator not ready.
func (c *Coordinator) Uninit() {
	c.ready = false
	c.Clear()
}

// Clear removes every section and all focus state.
func (c *Coordinator) Clear() {
	c.sections = make(map[string]*Section)
	c.order = nil
	c.defaultSectionID = ""
	c.lastSectionID = ""
	c.focusedElement = nil
	c.duringFocusChange = false
}

// Pause suspends focus-move handling: Move and HandleArrowKey return false
// without moving, and FocusElement takes the silent path. HandleEnterDown
// and HandleEnterUp still fire their events while paused.
func (c *Coordinator) Pause() { c.paused = true }

// Resume undoes Pause.
func (c *Coordinator) Resume() { c.paused = false }

// Ready reports whether Init has been called without a matching Uninit.
func (c *Coordinator) Ready() bool { return c.ready }

// --- Section management ------------------------------------------------

// AddSection registers a new section. If id is empty cfg.ID is used, and if
// that is empty too one is generated. Adding a section under an id that
// already exists is a programmer error.
func (c *Coordinator) AddSection(cfg Config, id string) *Section {
	if id == "" {
		id = cfg.ID
	}
	if id == "" {
		c.idPool++
		id = fmt.Sprintf("section-%d", c.idPool)
	}
	if _, exists := c.sections[id]; exists {
		panicProgrammer("AddSection", fmt.Sprintf("section id %q already exists", id))
	}
	s := newSection(c, id, cfg)
	c.sections[id] = s
	c.order = append(c.order, id)
	return s
}

// GetSection returns the section with the given id, or nil.
func (c *Coordinator) GetSection(id string) *Section { return c.sections[id] }

// GetLastSection returns the most recently focused section, or nil.
func (c *Coordinator) GetLastSection() *Section { return c.sections[c.lastSectionID] }

// FindSection returns the section e belongs to by selector match, or nil.
func (c *Coordinator) FindSection(e Element) *Section { return c.findSectionLocked(e) }

func (c *Coordinator) findSectionLocked(e Element) *Section {
	if e == nil {
		return nil
	}
	for _, sid := range c.order {
		if c.sections[sid].matchesSelector(e) {
			return c.sections[sid]
		}
	}
	return nil
}

// RemoveSection detaches a section. s must not be nil.
func (c *Coordinator) RemoveSection(s *Section) {
	if s == nil {
		panicProgrammer("RemoveSection", "section must not be nil")
	}
	c.RemoveSectionByID(s.id)
}

// RemoveSectionByID detaches the section with the given id. An empty id is
// a programmer error; an unknown id is a silent no-op.
func (c *Coordinator) RemoveSectionByID(id string) {
	if id == "" {
		panicProgrammer("RemoveSectionByID", "id must not be empty")
	}
	if _, ok := c.sections[id]; !ok {
		return
	}
	delete(c.sections, id)
	for i, sid := range c.order {
		if sid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	if c.defaultSectionID == id {
		c.defaultSectionID = ""
	}
	if c.lastSectionID == id {
		c.lastSectionID = ""
	}
}

// DisableSection marks a section disabled; unknown ids are a no-op.
func (c *Coordinator) DisableSection(id string) {
	if s, ok := c.sections[id]; ok {
		s.disabled = true
	}
}

// EnableSection clears a section's disabled flag; unknown ids are a no-op.
func (c *Coordinator) EnableSection(id string) {
	if s, ok := c.sections[id]; ok {
		s.disabled = false
	}
}

// SetDefaultSection designates the section focusSection falls back to
// first. An empty id clears the default. A non-empty unknown id is a
// programmer error.
func (c *Coordinator) SetDefaultSection(id string) {
	if id != "" {
		if _, ok := c.sections[id]; !ok {
			panicProgrammer("SetDefaultSection", fmt.Sprintf("unknown section id %q", id))
		}
	}
	c.defaultSectionID = id
}

// MakeFocusable runs Section.makeFocusable on the named section, or on
// every section when id is empty. An unknown non-empty id panics.
func (c *Coordinator) MakeFocusable(id string) {
	if id != "" {
		s, ok := c.sections[id]
		if !ok {
			panicProgrammer("MakeFocusable", fmt.Sprintf("unknown section id %q", id))
		}
		s.makeFocusable()
		return
	}
	for _, sid := range c.order {
		c.sections[sid].makeFocusable()
	}
}

// SetConfig mutates the coordinator-wide default config when sectionID is
// empty, or overlays cfg onto the named section's config otherwise. An
// unknown sectionID panics.
func (c *Coordinator) SetConfig(cfg Config, sectionID string) {
	if sectionID == "" {
		c.defaultConfig = overlayConfig(c.defaultConfig, cfg)
		return
	}
	s, ok := c.sections[sectionID]
	if !ok {
		panicProgrammer("SetConfig", fmt.Sprintf("unknown section id %q", sectionID))
	}
	s.config = overlayConfig(s.config, cfg)
}

func overlayConfig(base, patch Config) Config {
	out := base
	if patch.Selector != nil {
		out.Selector = patch.Selector
	}
	if patch.StraightOnly != nil {
		out.StraightOnly = patch.StraightOnly
	}
	if patch.StraightOverlapThreshold != nil {
		out.StraightOverlapThreshold = patch.StraightOverlapThreshold
	}
	if patch.RememberSource != nil {
		out.RememberSource = patch.RememberSource
	}
	if patch.Priority != nil {
		out.Priority = patch.Priority
	}
	if patch.LeaveFor != nil {
		out.LeaveFor = patch.LeaveFor
	}
	if patch.Restrict != nil {
		out.Restrict = patch.Restrict
	}
	if patch.TabIndexIgnoreList != nil {
		out.TabIndexIgnoreList = patch.TabIndexIgnoreList
	}
	if patch.NavigableFilter != nil {
		out.NavigableFilter = patch.NavigableFilter
	}
	if patch.OnFocus != nil {
		out.OnFocus = patch.OnFocus
	}
	if patch.OnBlur != nil {
		out.OnBlur = patch.OnBlur
	}
	return out
}

// --- Selector resolution ----------------------------------------------

func (c *Coordinator) resolveElements(t Target) []Element {
	if t == nil {
		return nil
	}
	switch v := resolveTarget(t).(type) {
	case SelectorTarget:
		if c.query == nil || v == "" {
			return nil
		}
		return c.query.QuerySelector(string(v))
	case ElementTarget:
		if v.Element == nil {
			return nil
		}
		return []Element{v.Element}
	case ElementListTarget:
		return []Element(v)
	default:
		return nil
	}
}

// --- Focus: public surface ---------------------------------------------

// GetFocusedElement returns the element currently focused through this
// coordinator, or nil.
func (c *Coordinator) GetFocusedElement() Element { return c.focusedElement }

// Focus focuses the best available section, trying default, then
// last-active, then every remaining section in insertion order.
func (c *Coordinator) Focus() bool { return c.focusSection("") }

// FocusSection focuses the named section directly.
func (c *Coordinator) FocusSection(id string) bool { return c.focusSection(id) }

func (c *Coordinator) focusSection(id string) bool {
	var candidates []*Section
	seen := make(map[string]bool)
	add := func(s *Section) {
		if s == nil || seen[s.id] {
			return
		}
		seen[s.id] = true
		candidates = append(candidates, s)
	}

	if id != "" {
		add(c.sections[id])
	} else {
		add(c.sections[c.defaultSectionID])
		add(c.sections[c.lastSectionID])
		for _, sid := range c.order {
			add(c.sections[sid])
		}
	}

	for _, s := range candidates {
		if s.focus() {
			return true
		}
	}
	return false
}

// FocusExtendedSelector resolves an extended selector (a leading '@'
// designates a section id; "@" alone falls back to Focus()) and attempts
// to focus it.
func (c *Coordinator) FocusExtendedSelector(selector string, dir *Direction) bool {
	return c.focusExtendedSelector(selector, dir)
}

func (c *Coordinator) focusExtendedSelector(selector string, dir *Direction) bool {
	if selector == "" {
		return false
	}
	if strings.HasPrefix(selector, "@") {
		return c.focusSection(strings.TrimPrefix(selector, "@"))
	}
	elems := c.resolveElements(SelectorTarget(selector))
	if len(elems) == 0 {
		return false
	}
	e := elems[0]
	sec := c.findSectionLocked(e)
	if sec == nil || !sec.isNavigable(e, true) {
		return false
	}
	return c.focusElement(e, sec.id, dir)
}

// FocusElement issues a focus change to e directly, running the full
// cancellable focus-change protocol (or the silent re-entrant path).
func (c *Coordinator) FocusElement(e Element, sectionID string, dir *Direction) bool {
	return c.focusElement(e, sectionID, dir)
}

func (c *Coordinator) focusElement(e Element, sectionID string, dir *Direction) bool {
	if c.duringFocusChange {
		c.silentFocus(e, sectionID)
		return true
	}

	c.duringFocusChange = true
	if c.paused {
		c.silentFocus(e, sectionID)
		c.duringFocusChange = false
		return true
	}

	prev := c.focusedElement
	prevSection := c.findSectionLocked(prev)

	var direction Direction
	hasDir := dir != nil
	if hasDir {
		direction = *dir
	}

	if prev != nil {
		evt := &Event{Type: WillUnfocus, Target: prev, Other: e, OtherID: sectionID, Direction: direction, HasDir: hasDir}
		if c.emitter.emit(evt) {
			c.duringFocusChange = false
			return false
		}
		if c.dispatcher != nil {
			c.dispatcher.NativeBlur(prev)
		}
		if prevSection != nil && prevSection.id != sectionID {
			if onBlur := prevSection.effective().onBlur; onBlur != nil {
				onBlur(prev)
			}
		}
		c.emitter.emit(&Event{Type: Unfocused, Target: prev, Other: e, OtherID: sectionID, Direction: direction, HasDir: hasDir})
	}

	focusEvt := &Event{Type: WillFocus, Target: e, Other: prev, SectionID: sectionID, Direction: direction, HasDir: hasDir}
	if c.emitter.emit(focusEvt) {
		c.duringFocusChange = false
		return false
	}

	commit := func() {
		c.focusedElement = e
		if c.dispatcher != nil {
			c.dispatcher.NativeFocus(e)
		}
		c.emitter.emit(&Event{Type: Focused, Target: e, Other: prev, SectionID: sectionID, Direction: direction, HasDir: hasDir})
		c.duringFocusChange = false
		if dest, ok := c.sections[sectionID]; ok {
			dest.lastFocusedElement = e
			if onFocus := dest.effective().onFocus; onFocus != nil {
				onFocus(e)
			}
		}
		c.lastSectionID = sectionID
	}

	if c.attrs != nil && c.attrs.HasClass(e, "non-scrollable") {
		c.deferFocus(commit)
	} else {
		commit()
	}
	return true
}

// silentFocus performs a blur+focus with no cancellable events, used for
// re-entrant and paused focus changes per the concurrency model.
func (c *Coordinator) silentFocus(e Element, sectionID string) {
	prev := c.focusedElement
	if prev != nil && c.dispatcher != nil {
		c.dispatcher.NativeBlur(prev)
	}
	c.focusedElement = e
	if c.dispatcher != nil {
		c.dispatcher.NativeFocus(e)
	}
	if dest, ok := c.sections[sectionID]; ok {
		dest.lastFocusedElement = e
	}
	if sectionID != "" {
		c.lastSectionID = sectionID
	}
}

// --- Directional movement ----------------------------------------------

// Move runs one round of directional election from the currently focused
// element and issues (or reports the failure of) the resulting focus
// change. cause is reported as "api".
func (c *Coordinator) Move(dir Direction) bool { return c.move(dir, "api") }

// HandleArrowKey is the keydown entry point: it suppresses the move if
// any modifier is held, then runs Move with cause "keydown".
func (c *Coordinator) HandleArrowKey(dir Direction, mods Modifiers) bool {
	if mods.any() {
		return false
	}
	return c.move(dir, "keydown")
}

// HandleEnterDown fires the cancellable enter-down event on the focused
// element. Returns false (caller should not perform its default action)
// if a handler cancelled it.
func (c *Coordinator) HandleEnterDown() bool {
	if c.focusedElement == nil {
		return true
	}
	return !c.emitter.emit(&Event{Type: EnterDown, Target: c.focusedElement})
}

// HandleEnterUp fires the cancellable enter-up event on the focused
// element, with the same return convention as HandleEnterDown.
func (c *Coordinator) HandleEnterUp() bool {
	if c.focusedElement == nil {
		return true
	}
	return !c.emitter.emit(&Event{Type: EnterUp, Target: c.focusedElement})
}

func (c *Coordinator) move(dir Direction, cause string) bool {
	if len(c.order) == 0 || c.paused {
		return false
	}

	focused := c.focusedElement
	if focused == nil {
		if last := c.sections[c.lastSectionID]; last != nil {
			last.focus()
			focused = c.focusedElement
		}
		if focused == nil {
			if !c.focusSection("") {
				return false
			}
			focused = c.focusedElement
		}
	}
	if focused == nil {
		return false
	}

	sourceSection := c.findSectionLocked(focused)
	sourceSectionID := ""
	if sourceSection != nil {
		sourceSectionID = sourceSection.id
	}

	willMove := &Event{Type: WillMove, Target: focused, Direction: dir, HasDir: true, SectionID: sourceSectionID, Cause: cause}
	if c.emitter.emit(willMove) {
		return false
	}

	if c.attrs != nil {
		if override, ok := c.attrs.DirectionOverride(focused, dir); ok {
			if override == "" {
				c.fireNavigateFailed(focused, dir, sourceSectionID, cause)
				return false
			}
			if c.focusExtendedSelector(override, &dir) {
				return true
			}
			c.fireNavigateFailed(focused, dir, sourceSectionID, cause)
			return false
		}
	}

	eff := mergeConfig(Config{}, c.defaultConfig)
	if sourceSection != nil {
		eff = sourceSection.effective()
	}

	candidateElems := c.gatherCandidates(sourceSection, focused, eff.restrict)

	targetRect := c.measure(focused)
	candidates := c.buildCandidates(candidateElems)

	var previous *PreviousFocus
	if sourceSection != nil {
		previous = sourceSection.previousFocus
	}

	elected, ok := Elect(targetRect, dir, candidates, ElectConfig{
		StraightOnly:             eff.straightOnly,
		StraightOverlapThreshold: eff.straightOverlapThreshold,
		RememberSource:           eff.rememberSource,
		Previous:                 previous,
	})

	if !ok {
		if sourceSection != nil {
			switch sourceSection.gotoLeaveFor(dir) {
			case LeaveForHandled:
				return true
			}
		}
		c.fireNavigateFailed(focused, dir, sourceSectionID, cause)
		return false
	}

	if sourceSection != nil {
		sourceSection.savePreviousFocus(focused, elected, dir.Reverse())
	}

	destSection := c.findSectionLocked(elected)
	if destSection != nil && sourceSection != nil && destSection != sourceSection {
		switch sourceSection.gotoLeaveFor(dir) {
		case LeaveForHandled:
			return true
		case LeaveForSuppressed:
			c.fireNavigateFailed(focused, dir, sourceSectionID, cause)
			return false
		case LeaveForNotApplicable:
			if primary := destSection.getPrimaryElement(); primary != nil {
				elected = primary
			}
		}
	}

	destSectionID := sourceSectionID
	if destSection != nil {
		destSectionID = destSection.id
	}
	return c.focusElement(elected, destSectionID, &dir)
}

func (c *Coordinator) fireNavigateFailed(source Element, dir Direction, sectionID, cause string) {
	c.emitter.emit(&Event{Type: NavigateFailed, Target: source, Direction: dir, HasDir: true, SectionID: sectionID, Cause: cause})
}

func (c *Coordinator) gatherCandidates(source *Section, focused Element, restrict RestrictPolicy) []Element {
	var own []Element
	if source != nil {
		for _, e := range source.getNavigableElements() {
			if e != focused {
				own = append(own, e)
			}
		}
	}

	switch restrict {
	case RestrictSelfOnly:
		return own
	case RestrictSelfFirst:
		if len(own) > 0 {
			return own
		}
		return c.otherNavigables(source)
	default: // RestrictNone
		var all []Element
		for _, sid := range c.order {
			for _, e := range c.sections[sid].getNavigableElements() {
				if e != focused {
					all = append(all, e)
				}
			}
		}
		return all
	}
}

func (c *Coordinator) otherNavigables(source *Section) []Element {
	var out []Element
	for _, sid := range c.order {
		s := c.sections[sid]
		if s == source {
			continue
		}
		out = append(out, s.getNavigableElements()...)
	}
	return out
}

func (c *Coordinator) measure(e Element) Rect {
	if c.geometry == nil || e == nil {
		return Rect{Element: e}
	}
	left, top, w, h, _ := c.geometry.Measure(e)
	return NewRect(e, left, top, w, h)
}

func (c *Coordinator) buildCandidates(elems []Element) []Candidate {
	out := make([]Candidate, 0, len(elems))
	for _, e := range elems {
		out = append(out, Candidate{Element: e, Rect: c.measure(e)})
	}
	return out
}

// --- Native focus/blur integration --------------------------------------

// NotifyNativeFocus reports that e received focus outside the
// coordinator's own FocusElement path (e.g. a host's own focus cycling).
// It runs the same will-focus/focused protocol with Native set.
func (c *Coordinator) NotifyNativeFocus(e Element) bool {
	if !c.ready || c.duringFocusChange {
		return true
	}
	sec := c.findSectionLocked(e)
	if sec == nil {
		return false
	}
	evt := &Event{Type: WillFocus, Target: e, SectionID: sec.id, Native: true}
	if c.emitter.emit(evt) {
		if c.dispatcher != nil {
			c.dispatcher.NativeBlur(e)
		}
		return false
	}
	c.focusedElement = e
	sec.lastFocusedElement = e
	c.lastSectionID = sec.id
	c.emitter.emit(&Event{Type: Focused, Target: e, SectionID: sec.id, Native: true})
	return true
}

// NotifyNativeBlur reports that e lost focus outside the coordinator's
// own path. refocus, if provided, is run through the scheduler installed by
// SetScheduler when a handler cancels the blur; with the default scheduler
// it runs synchronously, before NotifyNativeBlur returns.
func (c *Coordinator) NotifyNativeBlur(e Element, refocus func()) bool {
	evt := &Event{Type: WillUnfocus, Target: e, Native: true}
	if c.emitter.emit(evt) {
		if refocus != nil {
			c.deferFocus(refocus)
		}
		return false
	}
	if c.focusedElement == e {
		c.focusedElement = nil
	}
	c.emitter.emit(&Event{Type: Unfocused, Target: e, Native: true})
	return true
}
