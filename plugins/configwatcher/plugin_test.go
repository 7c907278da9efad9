package configwatcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/runctl"
	"github.com/bft-labs/runctl/pkg/log"
)

// fakeTuner records the limits pushed by the plugin.
type fakeTuner struct {
	mu        sync.Mutex
	maxCycles int64
	timeLimit time.Duration
}

func (f *fakeTuner) SetMaxCycles(n int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 {
		f.maxCycles = 1
		return errors.New("invalid")
	}
	f.maxCycles = n
	return nil
}

func (f *fakeTuner) SetTimeLimit(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timeLimit = d
}

func (f *fakeTuner) MaxCycles() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxCycles
}

func (f *fakeTuner) TimeLimit() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.timeLimit
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestPlugin_Name(t *testing.T) {
	if got := New(Config{}).Name(); got != "configwatcher" {
		t.Errorf("Name() = %q", got)
	}
}

func TestPlugin_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, `max_cycles = 100`)

	tuner := &fakeTuner{maxCycles: 100, timeLimit: 10 * time.Second}
	p := New(Config{Path: path, DebounceDelay: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.Initialize(ctx, runctl.PluginConfig{Logger: log.NewNoopLogger(), Tuner: tuner}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer p.Shutdown(context.Background())

	writeConfig(t, path, "max_cycles = 500\ntime_limit = \"45s\"\n")

	waitFor(t, func() bool {
		return tuner.MaxCycles() == 500 && tuner.TimeLimit() == 45*time.Second
	})
}

func TestPlugin_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeConfig(t, path, `max_cycles = 100`)

	tuner := &fakeTuner{maxCycles: 100}
	p := New(Config{Path: path, DebounceDelay: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Initialize(ctx, runctl.PluginConfig{Logger: log.NewNoopLogger(), Tuner: tuner}); err != nil {
		t.Fatal(err)
	}
	defer p.Shutdown(context.Background())

	writeConfig(t, filepath.Join(dir, "other.toml"), `max_cycles = 7`)
	time.Sleep(100 * time.Millisecond)

	if tuner.MaxCycles() != 100 {
		t.Errorf("MaxCycles() = %d, want 100", tuner.MaxCycles())
	}
}

func TestPlugin_Reload(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		pinned    map[string]bool
		wantMax   int64
		wantLimit time.Duration
	}{
		{"applies both", "max_cycles = 9\ntime_limit = \"1m\"", nil, 9, time.Minute},
		{"pinned max cycles", "max_cycles = 9\ntime_limit = \"1m\"", map[string]bool{"max-cycles": true}, 100, time.Minute},
		{"pinned time limit", "max_cycles = 9\ntime_limit = \"1m\"", map[string]bool{"time-limit": true}, 9, 10 * time.Second},
		{"invalid duration", "time_limit = \"later\"", nil, 100, 10 * time.Second},
		{"negative duration", "time_limit = \"-1s\"", nil, 100, 10 * time.Second},
		{"zero cycles ignored", "max_cycles = 0", nil, 100, 10 * time.Second},
		{"malformed file", "max_cycles = [", nil, 100, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			writeConfig(t, path, tt.content)

			tuner := &fakeTuner{maxCycles: 100, timeLimit: 10 * time.Second}
			p := New(Config{Path: path, Pinned: tt.pinned})
			p.logger = log.NewNoopLogger()
			p.tuner = tuner

			p.reload()

			if tuner.MaxCycles() != tt.wantMax {
				t.Errorf("MaxCycles() = %d, want %d", tuner.MaxCycles(), tt.wantMax)
			}
			if tuner.TimeLimit() != tt.wantLimit {
				t.Errorf("TimeLimit() = %v, want %v", tuner.TimeLimit(), tt.wantLimit)
			}
		})
	}
}

func TestPlugin_DisabledWithoutPath(t *testing.T) {
	p := New(Config{})
	if err := p.Initialize(context.Background(), runctl.PluginConfig{Logger: log.NewNoopLogger(), Tuner: &fakeTuner{}}); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := DefaultConfig()
	if cfg.Path == "" {
		t.Error("Path is empty")
	}
	if cfg.DebounceDelay != 100*time.Millisecond {
		t.Errorf("DebounceDelay = %v", cfg.DebounceDelay)
	}
}
