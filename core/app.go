// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/app.go
// Summary: App is the contract the standalone runner drives.

package core

import "github.com/gdamore/tcell/v2"

// App is the minimal surface the standalone runner needs to drive a
// terminal session: it owns a render loop and reacts to resize/key input.
type App interface {
	Run() error
	Stop()
	Resize(w, h int)
	Render() [][]Cell
	GetTitle() string
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(ch chan bool)
}

// PasteHandler is an optional capability; the runner checks for it with a
// type assertion before delivering bracketed-paste payloads.
type PasteHandler interface {
	HandlePaste(data []byte)
}

// MouseHandler is an optional capability; the runner checks for it with a
// type assertion before delivering mouse events.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse) bool
}
