// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: snav/event.go
// Summary: The cancellable "sn:" event protocol. Grounded on the same
// mutex-protected Register/Trigger registry shape the host library uses
// for its control bus, adapted to a typed, in-process pub/sub instead of
// real DOM CustomEvents (dispatch on DOM nodes is explicitly out of
// scope; this is the engine's own listener mechanism).

package snav

import "sync"

// EventType names one of the protocol's event kinds.
type EventType string

const (
	WillMove       EventType = "will-move"
	WillFocus      EventType = "will-focus"
	WillUnfocus    EventType = "will-unfocus"
	EnterDown      EventType = "enter-down"
	EnterUp        EventType = "enter-up"
	Focused        EventType = "focused"
	Unfocused      EventType = "unfocused"
	NavigateFailed EventType = "navigate-failed"
)

var cancelableEvents = map[EventType]bool{
	WillMove:    true,
	WillFocus:   true,
	WillUnfocus: true,
	EnterDown:   true,
	EnterUp:     true,
}

// Event is the payload delivered to a listener. Detail fields are
// populated according to the event type; zero values mean "not
// applicable to this event" rather than absence.
type Event struct {
	Type      EventType
	Target    Element
	Direction Direction
	HasDir    bool
	SectionID string
	OtherID   string // nextSectionId on will-unfocus/unfocused; empty otherwise
	Other     Element
	Native    bool
	Cause     string // "keydown" | "api"

	cancelled bool
}

// PreventDefault cancels the transition a cancellable event guards. It is
// a no-op on non-cancellable events, matching DOM semantics.
func (e *Event) PreventDefault() {
	if cancelableEvents[e.Type] {
		e.cancelled = true
	}
}

// Cancelled reports whether a handler called PreventDefault.
func (e *Event) Cancelled() bool { return e.cancelled }

// Handler receives a fired event.
type Handler func(*Event)

// emitter is a mutex-protected per-type handler registry, mirroring the
// host library's ControlBus: On appends, emit invokes the current
// snapshot of handlers in registration order.
type emitter struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

func newEmitter() *emitter {
	return &emitter{handlers: make(map[EventType][]Handler)}
}

// On registers a handler for typ and returns an unsubscribe function.
func (e *emitter) On(typ EventType, h Handler) func() {
	removed := false
	e.mu.Lock()
	e.handlers[typ] = append(e.handlers[typ], func(evt *Event) {
		e.mu.RLock()
		skip := removed
		e.mu.RUnlock()
		if !skip {
			h(evt)
		}
	})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		removed = true
		e.mu.Unlock()
	}
}

// emit fires evt synchronously against every handler registered for its
// type, in order, and returns whether the event ended up cancelled.
func (e *emitter) emit(evt *Event) bool {
	e.mu.RLock()
	list := make([]Handler, len(e.handlers[evt.Type]))
	copy(list, e.handlers[evt.Type])
	e.mu.RUnlock()

	for _, h := range list {
		h(evt)
	}
	return evt.cancelled
}
