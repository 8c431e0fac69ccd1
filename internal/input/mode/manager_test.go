package mode

import "testing"

func newTestManager() (*Manager, *[]Action) {
	actions := &[]Action{}
	m := NewManager()
	env := Env{
		Switch: m.Enter,
		Do:     func(a Action) { *actions = append(*actions, a) },
	}
	m.Register(NewNormalMode(env))
	m.Register(NewInputMode(env))
	m.Register(NewCommandMode(env))
	return m, actions
}

func TestManagerEnter(t *testing.T) {
	m, _ := newTestManager()

	if err := m.Enter(ModeNormal); err != nil {
		t.Fatalf("Enter(normal) returned error: %v", err)
	}
	if m.ModeID() != ModeNormal {
		t.Errorf("ModeID() = %q, want %q", m.ModeID(), ModeNormal)
	}

	if err := m.Enter(ID('x')); err == nil {
		t.Error("Enter of unknown mode should return an error")
	}
}

func TestManagerSuppressRemapClearedOnEnter(t *testing.T) {
	m, _ := newTestManager()
	if err := m.Enter(ModeNormal); err != nil {
		t.Fatal(err)
	}

	m.SuppressRemap()
	if !m.RemapSuppressed() {
		t.Fatal("RemapSuppressed() = false after SuppressRemap()")
	}
	if err := m.Enter(ModeInput); err != nil {
		t.Fatal(err)
	}
	if m.RemapSuppressed() {
		t.Error("suppress-remap flag should reset on mode change")
	}
}

func TestNormalModeCommands(t *testing.T) {
	tests := []struct {
		name    string
		keys    []byte
		want    []Action
		results []Result
	}{
		{
			name:    "single key command",
			keys:    []byte("j"),
			want:    []Action{{Name: "scroll.down"}},
			results: []Result{ResultComplete},
		},
		{
			name:    "count prefix",
			keys:    []byte("12j"),
			want:    []Action{{Name: "scroll.down", Count: 12}},
			results: []Result{ResultMore, ResultMore, ResultComplete},
		},
		{
			name:    "two key command",
			keys:    []byte("gg"),
			want:    []Action{{Name: "scroll.top"}},
			results: []Result{ResultMore, ResultComplete},
		},
		{
			name:    "unknown key",
			keys:    []byte("q"),
			want:    nil,
			results: []Result{ResultError},
		},
		{
			name:    "unknown prefixed key",
			keys:    []byte("gq"),
			want:    nil,
			results: []Result{ResultMore, ResultError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, actions := newTestManager()
			if err := m.Enter(ModeNormal); err != nil {
				t.Fatal(err)
			}

			normal := m.Current().(*NormalMode)
			for i, b := range tt.keys {
				got := normal.HandleKey(b)
				if got != tt.results[i] {
					t.Errorf("HandleKey(%q) = %v, want %v", b, got, tt.results[i])
				}
			}

			if len(*actions) != len(tt.want) {
				t.Fatalf("got %d actions, want %d", len(*actions), len(tt.want))
			}
			for i, want := range tt.want {
				if (*actions)[i] != want {
					t.Errorf("action %d = %+v, want %+v", i, (*actions)[i], want)
				}
			}
		})
	}
}

func TestNormalModeSwitchesToCommand(t *testing.T) {
	m, _ := newTestManager()
	if err := m.Enter(ModeNormal); err != nil {
		t.Fatal(err)
	}

	if more := m.ConsumeKey(':'); more {
		t.Error("ConsumeKey(':') should complete, not await more keys")
	}
	if m.ModeID() != ModeCommand {
		t.Errorf("ModeID() = %q, want %q", m.ModeID(), ModeCommand)
	}
}

func TestCommandModeSubmits(t *testing.T) {
	m, actions := newTestManager()
	if err := m.Enter(ModeCommand); err != nil {
		t.Fatal(err)
	}

	for _, b := range []byte("open") {
		if more := m.ConsumeKey(b); !more {
			t.Errorf("ConsumeKey(%q) should await more keys", b)
		}
	}
	if more := m.ConsumeKey('\n'); more {
		t.Error("ConsumeKey('\\n') should complete the command")
	}

	if len(*actions) != 1 {
		t.Fatalf("got %d actions, want 1", len(*actions))
	}
	got := (*actions)[0]
	if got.Name != "command.run" || got.Arg != "open" {
		t.Errorf("action = %+v, want command.run with arg \"open\"", got)
	}
	if m.ModeID() != ModeNormal {
		t.Errorf("mode after submit = %q, want %q", m.ModeID(), ModeNormal)
	}
}

func TestInputModeEscape(t *testing.T) {
	m, _ := newTestManager()
	if err := m.Enter(ModeInput); err != nil {
		t.Fatal(err)
	}

	input := m.Current().(*InputMode)
	for _, b := range []byte("hi") {
		input.HandleKey(b)
	}
	if input.Text() != "hi" {
		t.Errorf("Text() = %q, want %q", input.Text(), "hi")
	}

	input.HandleKey(0x1b)
	if m.ModeID() != ModeNormal {
		t.Errorf("mode after escape = %q, want %q", m.ModeID(), ModeNormal)
	}
}
