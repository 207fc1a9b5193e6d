package core_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/spatialnav/core"
	"github.com/framegrace/spatialnav/widgets"
)

func TestUIManagerRendersPaneAndInput(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(20, 5)

	pane := widgets.NewPane()
	pane.Resize(20, 5)
	pane.Style = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

	in := widgets.NewInput()
	in.Text = "hi"
	in.SetPosition(1, 1)
	pane.AddChild(in)

	ui.AddWidget(pane)

	buf := ui.Render()
	require.Len(t, buf, 5)
	require.Len(t, buf[0], 20)
	assert.Equal(t, 'h', buf[1][1].Ch)
	assert.Equal(t, 'i', buf[1][2].Ch)
}

func TestUIManagerFocusNotifiesObservers(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(10, 3)

	a := widgets.NewInput()
	a.SetFocusable(true)
	b := widgets.NewInput()
	b.SetFocusable(true)
	ui.AddWidget(a)
	ui.AddWidget(b)

	var transitions [][2]core.Widget
	obs := focusObserverFunc(func(prev, next core.Widget) {
		transitions = append(transitions, [2]core.Widget{prev, next})
	})
	ui.AddFocusObserver(obs)

	ui.Focus(a)
	ui.Focus(b)

	require.Len(t, transitions, 2)
	assert.Nil(t, transitions[0][0])
	assert.Equal(t, core.Widget(a), transitions[0][1])
	assert.Equal(t, core.Widget(a), transitions[1][0])
	assert.Equal(t, core.Widget(b), transitions[1][1])
	assert.True(t, b.IsFocused())
	assert.False(t, a.IsFocused())
}

func TestUIManagerTabCyclesRootWidgets(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(10, 3)

	a := widgets.NewInput()
	a.SetFocusable(true)
	b := widgets.NewInput()
	b.SetFocusable(true)
	ui.AddWidget(a)
	ui.AddWidget(b)

	ui.Focus(a)
	handled := ui.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	assert.True(t, handled)
	assert.Equal(t, core.Widget(b), ui.Focused())

	handled = ui.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	assert.True(t, handled)
	assert.Equal(t, core.Widget(a), ui.Focused())
}

type focusObserverFunc func(prev, next core.Widget)

func (f focusObserverFunc) OnFocusChanged(prev, next core.Widget) { f(prev, next) }
