// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/snav-demo/main.go
// Summary: Demonstrates the spatial-navigation engine wiring three Pane
// "sections", each containing a grid of Input fields, driven by arrow
// keys instead of Tab.

package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/framegrace/spatialnav/adapter"
	"github.com/framegrace/spatialnav/core"
	"github.com/framegrace/spatialnav/snav"
	"github.com/framegrace/spatialnav/standalone"
	"github.com/framegrace/spatialnav/widgets"
)

// navApp wraps adapter.UIApp, routing arrow keys to the Coordinator
// instead of letting them fall through to the focused widget.
type navApp struct {
	*adapter.UIApp
	coord *snav.Coordinator
}

// Coordinator implements standalone.NavAware so the runner drives the
// Coordinator's Init/Uninit lifecycle and pauses it during paste bursts.
func (a *navApp) Coordinator() *snav.Coordinator { return a.coord }

func (a *navApp) HandleKey(ev *tcell.EventKey) {
	mods := snav.Modifiers{
		Shift: ev.Modifiers()&tcell.ModShift != 0,
		Ctrl:  ev.Modifiers()&tcell.ModCtrl != 0,
		Alt:   ev.Modifiers()&tcell.ModAlt != 0,
		Meta:  ev.Modifiers()&tcell.ModMeta != 0,
	}
	switch ev.Key() {
	case tcell.KeyUp:
		if a.coord.HandleArrowKey(snav.Up, mods) {
			return
		}
	case tcell.KeyDown:
		if a.coord.HandleArrowKey(snav.Down, mods) {
			return
		}
	case tcell.KeyLeft:
		if a.coord.HandleArrowKey(snav.Left, mods) {
			return
		}
	case tcell.KeyRight:
		if a.coord.HandleArrowKey(snav.Right, mods) {
			return
		}
	}
	a.UIApp.HandleKey(ev)
}

func buildSection(ui *core.UIManager, bridge *adapter.Bridge, coord *snav.Coordinator, id string, x, y, cols, rows int) {
	pane := widgets.NewPane()
	pane.SetPosition(x, y)
	pane.Resize(cols*12+2, rows*2+2)
	ui.AddWidget(pane)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			in := widgets.NewInput()
			in.SetPosition(x+1+c*12, y+1+r*2)
			in.Resize(10, 1)
			in.Placeholder = fmt.Sprintf("%s-%d.%d", id, r, c)
			pane.AddChild(in)

			el := bridge.Register(fmt.Sprintf("%s-%d-%d", id, r, c), in, id)
			_ = el
		}
	}

	coord.AddSection(snav.Config{Selector: snav.SelectorTarget(id)}, id)
}

func buildUI() (*core.UIManager, *snav.Coordinator) {
	ui := core.NewUIManager()
	ui.Resize(80, 24)
	bridge := adapter.NewBridge(ui)
	coord := snav.NewCoordinator(bridge, bridge, bridge, bridge)

	buildSection(ui, bridge, coord, "left", 0, 0, 2, 3)
	buildSection(ui, bridge, coord, "right", 28, 0, 2, 3)
	buildSection(ui, bridge, coord, "bottom", 0, 14, 4, 2)

	status := widgets.NewStatusBar(0, 22, 80)
	ui.AddWidget(status)
	ui.AddFocusObserver(status)
	coord.On(snav.NavigateFailed, func(e *snav.Event) {
		status.ShowMessage(fmt.Sprintf("no navigable element %s", e.Direction))
	})
	coord.On(snav.Focused, func(e *snav.Event) {
		status.ClearMessage()
	})

	ui.AddFocusObserver(bridge.FocusObserverFor(coord))

	// Init/Uninit is bracketed by the standalone runner (navApp implements
	// standalone.NavAware); only the initial section focus happens here.
	coord.Focus()

	return ui, coord
}

func main() {
	ui, coord := buildUI()
	app := &navApp{UIApp: adapter.NewUIApp("snav-demo", ui), coord: coord}

	if err := standalone.RunWithOptions(func([]string) (core.App, error) {
		return app, nil
	}, standalone.Options{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
