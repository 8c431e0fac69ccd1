package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kasperlewau/vimb/internal/config"
	"github.com/kasperlewau/vimb/internal/input/keycode"
	"github.com/kasperlewau/vimb/internal/input/mode"
)

// Run initializes the screen and processes events until quit. Everything
// that touches engine or mode state happens here, on this goroutine.
func (app *Application) Run() error {
	if err := app.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}

	app.draw()
	for !app.quit {
		ev := app.screen.PollEvent()
		if ev == nil {
			break
		}
		app.HandleEvent(ev)
		app.draw()
	}
	return nil
}

// HandleEvent dispatches one event. Exposed so tests can drive the loop
// directly with a simulation screen.
func (app *Application) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			app.quit = true
			return
		}
		b, ok := keycode.FromEvent(ev)
		if !ok {
			return
		}
		state := app.engine.HandleKeys([]byte{b})
		app.logger.WithComponent("mapper").Debug("key %#x -> %s", b, state)

	case *eventTimeout:
		app.engine.HandleTimeout()

	case *eventReload:
		defs, err := config.LoadMapFile(ev.path)
		if err != nil {
			app.logger.WithComponent("config").Error("reload %s: %v", ev.path, err)
			return
		}
		config.Apply(defs, app.table)
		app.logger.WithComponent("config").Info("reloaded %d mappings from %s", len(defs), ev.path)

	case *tcell.EventResize:
		app.screen.Sync()
	}
}

// draw renders the status line: mode and any command-line text on the
// left, pending keys and the last action on the right.
func (app *Application) draw() {
	width, height := app.screen.Size()
	if width == 0 || height == 0 {
		return
	}
	app.screen.Clear()

	row := height - 1
	style := tcell.StyleDefault.Reverse(true)

	left := app.statusLeft()
	col := 0
	for _, r := range left {
		if col >= width {
			break
		}
		app.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		app.screen.SetContent(col, row, ' ', nil, style)
	}

	right := app.statusRight()
	col = width - len(right)
	for _, r := range right {
		if col >= 0 && col < width {
			app.screen.SetContent(col, row, r, nil, style)
		}
		col++
	}

	app.screen.Show()
}

// statusLeft renders the mode indicator and mode-owned text.
func (app *Application) statusLeft() string {
	current := app.modes.Current()
	if current == nil {
		return ""
	}
	switch m := current.(type) {
	case *mode.CommandMode:
		return ":" + m.Line()
	case *mode.InputMode:
		return "-- INPUT -- " + m.Text()
	default:
		return "-- " + current.ID().String() + " --"
	}
}

// statusRight renders pending keys and the last completed action.
func (app *Application) statusRight() string {
	if app.pending != "" && app.lastAction != "" {
		return app.lastAction + "  " + app.pending
	}
	if app.pending != "" {
		return app.pending
	}
	return app.lastAction
}
