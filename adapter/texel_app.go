// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: adapter/texel_app.go
// Summary: Adapts a core.UIManager to the core.App contract the standalone
// runner drives.

package adapter

import (
	"github.com/gdamore/tcell/v2"
	"github.com/framegrace/spatialnav/core"
)

// UIApp wraps a *core.UIManager so it can be driven by standalone.Run.
type UIApp struct {
	title    string
	ui       *core.UIManager
	stopCh   chan struct{}
	onResize func(w, h int)
}

// NewUIApp wraps ui in an App with the given window title.
func NewUIApp(title string, ui *core.UIManager) *UIApp {
	return &UIApp{title: title, ui: ui, stopCh: make(chan struct{})}
}

// UI returns the wrapped manager, for callers that need direct access
// (e.g. to register widgets or focus observers before Run).
func (a *UIApp) UI() *core.UIManager { return a.ui }

// SetOnResize installs a callback invoked after every Resize.
func (a *UIApp) SetOnResize(fn func(w, h int)) { a.onResize = fn }

// Run blocks until Stop is called. All real work happens through the
// UIManager via the event loop in the standalone runner.
func (a *UIApp) Run() error {
	<-a.stopCh
	return nil
}

// Stop signals Run to return.
func (a *UIApp) Stop() {
	select {
	case <-a.stopCh:
	default:
		close(a.stopCh)
	}
}

// Resize forwards to the wrapped manager and notifies onResize if set.
func (a *UIApp) Resize(w, h int) {
	a.ui.Resize(w, h)
	if a.onResize != nil {
		a.onResize(w, h)
	}
}

// Render forwards to the wrapped manager.
func (a *UIApp) Render() [][]core.Cell { return a.ui.Render() }

// GetTitle returns the window title.
func (a *UIApp) GetTitle() string { return a.title }

// HandleKey forwards to the wrapped manager.
func (a *UIApp) HandleKey(ev *tcell.EventKey) { a.ui.HandleKey(ev) }

// HandleMouse forwards to the wrapped manager, satisfying core.MouseHandler.
func (a *UIApp) HandleMouse(ev *tcell.EventMouse) bool { return a.ui.HandleMouse(ev) }

// SetRefreshNotifier forwards to the wrapped manager.
func (a *UIApp) SetRefreshNotifier(ch chan bool) { a.ui.SetRefreshNotifier(ch) }
