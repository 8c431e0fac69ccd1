package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kasperlewau/vimb/internal/input/mode"
)

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	opts.Screen = screen
	opts.Logger = NullLogger
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(t.TempDir(), "no-config.toml")
	}

	app, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(app.Shutdown)
	return app
}

func keyEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestMappingExpandsToCommand(t *testing.T) {
	app := newTestApp(t, Options{})
	app.Table().Insert("gh", ":open home<CR>", mode.ModeNormal)

	app.HandleEvent(keyEvent('g'))
	if app.pending != "g" {
		t.Errorf("pending = %q, want %q while ambiguous", app.pending, "g")
	}

	app.HandleEvent(keyEvent('h'))
	if app.lastAction != ":open home" {
		t.Errorf("lastAction = %q, want %q", app.lastAction, ":open home")
	}
	if app.Modes().ModeID() != mode.ModeNormal {
		t.Errorf("mode = %q, want %q after command submits", app.Modes().ModeID(), mode.ModeNormal)
	}
}

func TestQuitCommand(t *testing.T) {
	app := newTestApp(t, Options{})

	app.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	if !app.quit {
		t.Error("ctrl-q in normal mode should quit")
	}
}

func TestTimeoutEventResolvesPendingKeys(t *testing.T) {
	app := newTestApp(t, Options{})
	app.Table().Insert("a", "j", mode.ModeNormal)
	app.Table().Insert("ab", "k", mode.ModeNormal)

	app.HandleEvent(keyEvent('a'))
	if app.engine.QueueLen() != 1 {
		t.Fatalf("QueueLen() = %d, want 1 while ambiguous", app.engine.QueueLen())
	}

	app.HandleEvent(newEventTimeout())
	if app.engine.QueueLen() != 0 {
		t.Errorf("QueueLen() = %d, want 0 after timeout", app.engine.QueueLen())
	}
	if app.lastAction != "scroll.down" {
		t.Errorf("lastAction = %q, want %q (shorter mapping resolved)", app.lastAction, "scroll.down")
	}
}

func TestReloadEventAppliesMapFile(t *testing.T) {
	app := newTestApp(t, Options{})

	path := filepath.Join(t.TempDir(), "maps.toml")
	content := "[[map]]\nmode = \"normal\"\nlhs = \"gy\"\nrhs = \"y\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	app.HandleEvent(newEventReload(path))
	if match, _ := app.Table().Lookup([]byte("gy"), mode.ModeNormal, false); match == nil {
		t.Error("reloaded mapping not found in table")
	}
}

func TestNewAppliesConfiguredMapFiles(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "maps.toml")
	if err := os.WriteFile(mapPath, []byte("[[map]]\nmode = \"normal\"\nlhs = \"gt\"\nrhs = \"l\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("map-files = [\""+mapPath+"\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, Options{ConfigPath: configPath})
	if match, _ := app.Table().Lookup([]byte("gt"), mode.ModeNormal, false); match == nil {
		t.Error("map file from settings not applied")
	}
}

func TestNewRunsScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`vimb.nmap("gs", "j")`), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, Options{ScriptPath: path})
	if match, _ := app.Table().Lookup([]byte("gs"), mode.ModeNormal, false); match == nil {
		t.Error("script-defined mapping not found in table")
	}
}

func TestNewRejectsUnknownDefaultMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default-mode = \"bogus\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()

	if _, err := New(Options{ConfigPath: path, Screen: screen, Logger: NullLogger}); err == nil {
		t.Error("New should reject an unknown default mode")
	}
}

func TestSuppressRemapBypassesTable(t *testing.T) {
	app := newTestApp(t, Options{})
	app.Table().Insert("j", "k", mode.ModeNormal)

	app.Modes().SuppressRemap()
	app.HandleEvent(keyEvent('j'))
	if app.lastAction != "scroll.down" {
		t.Errorf("lastAction = %q, want %q (mapping bypassed)", app.lastAction, "scroll.down")
	}
	if app.Modes().RemapSuppressed() {
		t.Error("suppress-remap flag should clear after the key drains")
	}
}
