// Package lua runs user configuration scripts that define key mappings.
//
// Scripts see a `vimb` module:
//
//	vimb.nmap("gh", ":open home<CR>")
//	vimb.imap("<C-e>", "<Esc>")
//	vimb.cmap("<C-a>", "<C-b>")
//	vimb.unmap("n", "gh")
package lua

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/kasperlewau/vimb/internal/input/keymap"
	"github.com/kasperlewau/vimb/internal/input/mode"
)

// ErrClosed reports use of a runtime after Close.
var ErrClosed = errors.New("lua runtime is closed")

// Runtime wraps a sandboxed Lua state bound to a mapping table.
//
// gopher-lua's LState is not goroutine-safe: all calls on a Runtime must
// come from one goroutine, which matches the single-threaded model of the
// rest of the input subsystem.
type Runtime struct {
	mu sync.Mutex

	L      *lua.LState
	table  *keymap.Table
	closed bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// New creates a Lua runtime bound to the given mapping table. Only the
// base, table and string libraries are opened; scripts get no io, os or
// network access.
func New(table *keymap.Table, opts ...Option) (*Runtime, error) {
	if table == nil {
		return nil, fmt.Errorf("lua runtime needs a mapping table")
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("opening lua lib %s: %w", lib.name, err)
		}
	}

	r := &Runtime{L: L, table: table}
	for _, opt := range opts {
		opt(r)
	}

	r.register()
	return r, nil
}

// register installs the vimb module into the state.
func (r *Runtime) register() {
	mod := r.L.NewTable()
	r.L.SetFuncs(mod, map[string]lua.LGFunction{
		"nmap":  r.mapFunc(mode.ModeNormal),
		"imap":  r.mapFunc(mode.ModeInput),
		"cmap":  r.mapFunc(mode.ModeCommand),
		"unmap": r.unmapFunc(),
	})
	r.L.SetGlobal("vimb", mod)
}

// mapFunc builds the Lua binding for one mode's map command.
func (r *Runtime) mapFunc(id mode.ID) lua.LGFunction {
	return func(L *lua.LState) int {
		lhs := L.CheckString(1)
		rhs := L.CheckString(2)
		if lhs == "" {
			L.ArgError(1, "empty lhs")
			return 0
		}
		r.table.Insert(lhs, rhs, id)
		return 0
	}
}

// unmapFunc builds the Lua binding for unmap. Pushes whether a mapping
// was removed.
func (r *Runtime) unmapFunc() lua.LGFunction {
	return func(L *lua.LState) int {
		modeName := L.CheckString(1)
		lhs := L.CheckString(2)

		id, ok := mode.ParseID(modeName)
		if !ok {
			L.ArgError(1, fmt.Sprintf("unknown mode %q", modeName))
			return 0
		}

		L.Push(lua.LBool(r.table.Delete(lhs, id)))
		return 1
	}
}

// RunFile executes a script file.
func (r *Runtime) RunFile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("running lua script %s: %w", path, err)
	}
	return nil
}

// RunString executes script source directly.
func (r *Runtime) RunString(src string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if err := r.L.DoString(src); err != nil {
		return fmt.Errorf("running lua script: %w", err)
	}
	return nil
}

// Close releases the Lua state.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}
