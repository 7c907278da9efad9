package lifecycle

import "testing"

func TestRunState_String(t *testing.T) {
	tests := []struct {
		state RunState
		want  string
	}{
		{Uninitialized, "Uninitialized"},
		{Initializing, "Initializing"},
		{Started, "Started"},
		{Paused, "Paused"},
		{Restarted, "Restarted"},
		{Exited, "Exited"},
		{Killed, "Killed"},
		{RunState(-1), "Unknown"},
		{RunState(99), "Unknown"},
	}

	for _, tt := range tests {
		got := tt.state.String()
		if got != tt.want {
			t.Errorf("RunState(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestParseRunState(t *testing.T) {
	for _, s := range States() {
		got, ok := ParseRunState(s.String())
		if !ok || got != s {
			t.Errorf("ParseRunState(%q) = %v, %v; want %v, true", s.String(), got, ok, s)
		}
	}

	if _, ok := ParseRunState("started"); ok {
		t.Error("ParseRunState should be case-sensitive")
	}
	if _, ok := ParseRunState("Unknown"); ok {
		t.Error("ParseRunState(Unknown) should fail")
	}
}

func TestRunState_IsActiveVerb(t *testing.T) {
	verbs := map[RunState]bool{
		Initializing: true,
		Starting:     true,
		Pausing:      true,
		Resuming:     true,
		Stopping:     true,
		Restarting:   true,
		Exiting:      true,
		Killing:      true,
	}

	for _, s := range States() {
		if got := s.IsActiveVerb(); got != verbs[s] {
			t.Errorf("%s.IsActiveVerb() = %v, want %v", s, got, verbs[s])
		}
	}
}
