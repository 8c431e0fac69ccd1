// Package app wires the key-input subsystem together and runs it inside a
// terminal event loop: key events become raw bytes, the mapper resolves
// them against the mapping table, and the active mode consumes the result.
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kasperlewau/vimb/internal/config"
	"github.com/kasperlewau/vimb/internal/input/keymap"
	"github.com/kasperlewau/vimb/internal/input/mapper"
	"github.com/kasperlewau/vimb/internal/input/mode"
	"github.com/kasperlewau/vimb/internal/input/showcmd"
	"github.com/kasperlewau/vimb/internal/plugin/lua"
)

// Options configure the application.
type Options struct {
	// ConfigPath is the settings file. Missing files fall back to
	// defaults.
	ConfigPath string

	// ScriptPath overrides the Lua script named in the settings.
	ScriptPath string

	// Screen lets tests inject a simulation screen. When nil a real
	// terminal screen is created.
	Screen tcell.Screen

	// Logger defaults to the standard stderr logger.
	Logger *Logger

	// WatchMapFiles re-applies map files when they change on disk.
	WatchMapFiles bool
}

// Application owns all input-subsystem state. Everything except the map
// file watcher and the disambiguation timer runs on the event loop
// goroutine; both of those only post events back into the loop.
type Application struct {
	logger   *Logger
	settings *config.Settings

	screen tcell.Screen
	table  *keymap.Table
	modes  *mode.Manager
	engine *mapper.Mapper
	show   *showcmd.Buffer

	watcher *config.Watcher
	scripts *lua.Runtime

	pending    string // rendered showcmd text
	lastAction string
	quit       bool
}

// New builds the application: settings, mapping table, map files, Lua
// script, modes, and the resolution engine.
func New(opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(DefaultLoggerConfig())
	}

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	app := &Application{
		logger:   logger,
		settings: settings,
		table:    keymap.NewTable(),
		modes:    mode.NewManager(),
	}

	app.show = showcmd.New(func(s string) { app.pending = s })

	env := mode.Env{
		Switch: app.modes.Enter,
		Do:     app.handleAction,
	}
	app.modes.Register(mode.NewNormalMode(env))
	app.modes.Register(mode.NewInputMode(env))
	app.modes.Register(mode.NewCommandMode(env))
	app.modes.Register(mode.NewPassThroughMode(env))

	initial, ok := mode.ParseID(settings.DefaultMode)
	if !ok {
		return nil, fmt.Errorf("unknown default-mode %q", settings.DefaultMode)
	}
	if err := app.modes.Enter(initial); err != nil {
		return nil, err
	}

	if err := app.applyMapFiles(); err != nil {
		return nil, err
	}
	if err := app.runScript(opts.ScriptPath); err != nil {
		return nil, err
	}

	screen := opts.Screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("creating terminal screen: %w", err)
		}
	}
	app.screen = screen

	app.engine = mapper.New(app.table, app.modes, app.modes, app.show,
		mapper.WithTimeout(settings.MapTimeout()),
		mapper.WithTimeoutNotify(func() {
			_ = app.screen.PostEvent(newEventTimeout())
		}),
	)

	if opts.WatchMapFiles && len(settings.MapFiles) > 0 {
		if err := app.startWatcher(); err != nil {
			logger.Warn("map file watching disabled: %v", err)
		}
	}

	return app, nil
}

// applyMapFiles loads every configured map file into the table.
func (app *Application) applyMapFiles() error {
	for _, path := range app.settings.MapFiles {
		defs, err := config.LoadMapFile(path)
		if err != nil {
			return err
		}
		config.Apply(defs, app.table)
		app.logger.WithComponent("config").Debug("applied %d mappings from %s", len(defs), path)
	}
	return nil
}

// runScript executes the startup Lua script, if any.
func (app *Application) runScript(override string) error {
	path := app.settings.Script
	if override != "" {
		path = override
	}
	if path == "" {
		return nil
	}

	scripts, err := lua.New(app.table)
	if err != nil {
		return err
	}
	app.scripts = scripts

	if err := scripts.RunFile(path); err != nil {
		return err
	}
	app.logger.WithComponent("lua").Debug("ran script %s", path)
	return nil
}

// startWatcher posts a reload event into the loop when a map file changes.
func (app *Application) startWatcher() error {
	w, err := config.NewWatcher(
		func(path string) { _ = app.screen.PostEvent(newEventReload(path)) },
		func(err error) { app.logger.WithComponent("watcher").Error("%v", err) },
	)
	if err != nil {
		return err
	}
	for _, path := range app.settings.MapFiles {
		if err := w.Watch(path); err != nil {
			_ = w.Close()
			return err
		}
	}
	app.watcher = w
	return nil
}

// Table returns the mapping table, for configuration code.
func (app *Application) Table() *keymap.Table { return app.table }

// Modes returns the mode manager.
func (app *Application) Modes() *mode.Manager { return app.modes }

// handleAction executes a completed mode action.
func (app *Application) handleAction(a mode.Action) {
	app.lastAction = a.Name
	switch a.Name {
	case "quit":
		app.quit = true
	case "command.run":
		app.runCommand(a.Arg)
	}
	app.logger.WithComponent("action").Debug("%s count=%d arg=%q", a.Name, a.Count, a.Arg)
}

// runCommand interprets a submitted ex command line. Only the commands
// the demo needs; everything else just shows up on the status line.
func (app *Application) runCommand(line string) {
	switch line {
	case "q", "quit":
		app.quit = true
	}
	app.lastAction = ":" + line
}

// Shutdown releases all resources and cancels the pending timer.
func (app *Application) Shutdown() {
	if app.engine != nil {
		app.engine.Close()
	}
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	if app.scripts != nil {
		app.scripts.Close()
	}
	if app.screen != nil {
		app.screen.Fini()
	}
}
