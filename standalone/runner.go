// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: standalone/runner.go
// Summary: Standalone tcell event loop driving a core.App. When the App
// also exposes a snav.Coordinator (via NavAware), the loop takes over the
// Coordinator's lifecycle: Init/Uninit bracket the run, and the
// Coordinator is paused for the duration of a bracketed-paste burst so a
// pasted arrow-key escape sequence can never be mistaken for directional
// input and fire a spurious section change.

package standalone

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/framegrace/spatialnav/adapter"
	"github.com/framegrace/spatialnav/core"
	"github.com/framegrace/spatialnav/snav"
	"github.com/framegrace/spatialnav/theme"
)

// Builder constructs a core.App, optionally using CLI args.
type Builder func(args []string) (core.App, error)

// NavAware is implemented by an App that wants the runner to drive its
// snav.Coordinator's lifecycle (Init/Uninit) and pause it during paste
// bursts. cmd/snav-demo's navApp implements this.
type NavAware interface {
	Coordinator() *snav.Coordinator
}

// Options controls the standalone runner behavior.
type Options struct {
	ExitKey      tcell.Key
	DisableMouse bool
	OnInit       func(screen tcell.Screen)
	OnExit       func()
}

var (
	screenFactory = tcell.NewScreen
	registryMu    sync.RWMutex
	registry      = map[string]Builder{}

	exitMu     sync.Mutex
	activeExit chan struct{}
)

// Register adds a builder to the standalone registry.
func Register(name string, builder Builder) {
	if name == "" || builder == nil {
		return
	}
	registryMu.Lock()
	registry[name] = builder
	registryMu.Unlock()
}

// RunApp runs a registered app by name.
func RunApp(name string, args []string) error {
	registryMu.RLock()
	builder := registry[name]
	registryMu.RUnlock()
	if builder == nil {
		return fmt.Errorf("standalone: unknown app %q", name)
	}
	return RunWithOptions(builder, Options{}, args...)
}

// Run runs a core.App builder in a standalone terminal session.
func Run(builder Builder, args ...string) error {
	return RunWithOptions(builder, Options{}, args...)
}

// RunWithOptions runs a core.App builder with custom options.
func RunWithOptions(builder Builder, opts Options, args ...string) error {
	if builder == nil {
		return fmt.Errorf("standalone: nil builder")
	}
	app, err := builder(args)
	if err != nil {
		return err
	}
	return newRunner(app, opts).run()
}

// RunUI runs a UIManager directly in a standalone terminal session.
func RunUI(ui *core.UIManager) error {
	return RunUIWithOptions(ui, Options{})
}

// RunUIWithOptions runs a UIManager with custom options.
func RunUIWithOptions(ui *core.UIManager, opts Options) error {
	app := adapter.NewUIApp("", ui)
	return newRunner(app, opts).run()
}

// RequestExit signals the active runner (if any) to exit.
func RequestExit() {
	exitMu.Lock()
	ch := activeExit
	exitMu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

// SetScreenFactory overrides the screen factory used by the runner.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

func normalizeOptions(opts Options) Options {
	if opts.ExitKey == 0 {
		opts.ExitKey = tcell.KeyEscape
	}
	return opts
}

// runner owns the mutable state of one standalone session: the screen, the
// app it drives, and the paste-capture buffer. Splitting it out of a single
// long function makes the Coordinator pause/resume hook (see handlePasteBoundary)
// a small, local addition instead of more closure-captured state.
type runner struct {
	app  core.App
	opts Options
	nav  *snav.Coordinator // nil if app doesn't implement NavAware

	screen tcell.Screen

	pasteBuffer []byte
	inPaste     bool
}

func newRunner(app core.App, opts Options) *runner {
	r := &runner{app: app, opts: normalizeOptions(opts)}
	if na, ok := app.(NavAware); ok {
		r.nav = na.Coordinator()
	}
	return r
}

func (r *runner) run() error {
	exitMu.Lock()
	activeExit = make(chan struct{}, 1)
	exitMu.Unlock()
	defer func() {
		exitMu.Lock()
		activeExit = nil
		exitMu.Unlock()
	}()

	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	r.screen = screen
	defer screen.Fini()

	if r.opts.OnInit != nil {
		r.opts.OnInit(screen)
	}
	if !r.opts.DisableMouse {
		screen.EnableMouse(tcell.MouseMotionEvents)
		defer screen.DisableMouse()
	}
	screen.EnablePaste()

	_ = theme.Get()
	if err := theme.GetLoadError(); err != nil {
		return fmt.Errorf("theme: %w", err)
	}

	if r.nav != nil {
		r.nav.Init()
		defer r.nav.Uninit()
	}

	width, height := screen.Size()
	r.app.Resize(width, height)
	refreshCh := make(chan bool, 1)
	r.app.SetRefreshNotifier(refreshCh)

	r.draw()

	runErr := make(chan error, 1)
	go func() {
		runErr <- r.app.Run()
	}()
	defer r.app.Stop()

	go func() {
		for range refreshCh {
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	for {
		select {
		case err := <-runErr:
			r.finish()
			return err
		case <-activeExit:
			r.finish()
			return nil
		default:
		}

		switch tev := screen.PollEvent().(type) {
		case *tcell.EventInterrupt:
			r.draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			r.app.Resize(w, h)
			r.draw()
		case *tcell.EventPaste:
			r.handlePasteBoundary(tev)
		case *tcell.EventKey:
			if tev.Key() == r.opts.ExitKey || tev.Key() == tcell.KeyCtrlC {
				r.finish()
				return nil
			}
			r.handleKey(tev)
		case *tcell.EventMouse:
			r.handleMouse(tev)
		}
	}
}

func (r *runner) finish() {
	if r.opts.OnExit != nil {
		r.opts.OnExit()
	}
}

func (r *runner) draw() {
	r.screen.Clear()
	buffer := r.app.Render()
	if buffer != nil {
		for y := 0; y < len(buffer); y++ {
			row := buffer[y]
			for x := 0; x < len(row); x++ {
				cell := row[x]
				r.screen.SetContent(x, y, cell.Ch, nil, cell.Style)
			}
		}
	}
	r.screen.Show()
}

// handlePasteBoundary enters or leaves paste-capture mode. While a paste is
// in flight the Coordinator is paused: a pasted payload is delivered as a
// burst of synthetic key events, and an arrow character anywhere in it must
// never be read as directional input.
func (r *runner) handlePasteBoundary(tev *tcell.EventPaste) {
	switch {
	case tev.Start():
		r.inPaste = true
		r.pasteBuffer = nil
		if r.nav != nil {
			r.nav.Pause()
		}
	case tev.End():
		r.inPaste = false
		if r.nav != nil {
			r.nav.Resume()
		}
		if ph, ok := r.app.(interface{ HandlePaste([]byte) }); ok && len(r.pasteBuffer) > 0 {
			ph.HandlePaste(r.pasteBuffer)
			r.draw()
		}
		r.pasteBuffer = nil
	}
}

func (r *runner) handleKey(tev *tcell.EventKey) {
	if r.inPaste {
		if tev.Key() == tcell.KeyRune {
			r.pasteBuffer = append(r.pasteBuffer, []byte(string(tev.Rune()))...)
		} else if tev.Key() == tcell.KeyEnter || tev.Key() == 10 {
			r.pasteBuffer = append(r.pasteBuffer, '\n')
		}
		return
	}
	r.app.HandleKey(tev)
	r.draw()
}

func (r *runner) handleMouse(tev *tcell.EventMouse) {
	if mh, ok := r.app.(core.MouseHandler); ok {
		if mh.HandleMouse(tev) {
			r.draw()
		}
	}
}
