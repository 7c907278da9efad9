package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bft-labs/runctl/internal/domain"
	"github.com/bft-labs/runctl/internal/ports"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.000000"},
		{1500 * time.Millisecond, "1.500000"},
		{2*time.Second + 3*time.Microsecond, "2.000003"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.d); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRender_Fields(t *testing.T) {
	f := newFixture(Config{})
	c := f.ctrl
	c.DoInit()
	c.DoStart()
	c.SetCycles(12)
	c.SetInput("ls")
	f.clock.Advance(1500 * time.Millisecond)

	want := ">-(alice@box)-$ [ls]\n" +
		" (State)=[Started]\n" +
		" (Cycles)=[12]\n" +
		" (Timer)=[1.500000s]\n" +
		"\n\n"
	if got := c.Render(); got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
	if f.console.Clears() != 1 {
		t.Errorf("ClearScreen called %d times, want 1", f.console.Clears())
	}
}

func TestRender_FreezesTimerWhilePaused(t *testing.T) {
	f := newFixture(Config{})
	c := f.ctrl
	c.DoInit()
	c.DoStart()
	f.clock.Advance(2 * time.Second)
	c.Render()

	c.DoPause()
	f.clock.Advance(5 * time.Second)

	v := c.StatusView()
	if v.Timer != " (Timer)=[2.000000s]\n" {
		t.Errorf("paused timer line = %q", v.Timer)
	}
	if v.Seconds != "2.000000" {
		t.Errorf("paused Seconds = %q", v.Seconds)
	}

	c.DoResume()
	f.clock.Advance(time.Second)
	if got := c.StatusView().Timer; got != " (Timer)=[3.000000s]\n" {
		t.Errorf("resumed timer line = %q", got)
	}
}

func TestRender_StopShowsZero(t *testing.T) {
	f := newFixture(Config{})
	c := f.ctrl
	c.DoInit()
	c.DoStart()
	f.clock.Advance(time.Second)
	c.Render()
	c.DoStop()

	if got := c.StatusView().Timer; got != " (Timer)=[0.000000s]\n" {
		t.Errorf("stopped timer line = %q", got)
	}
}

func TestRender_StripsControlBytes(t *testing.T) {
	f := newFixture(Config{})
	f.ctrl.renderer = ports.RenderFunc(func(v domain.StatusView) string {
		return "a\rb\x00c"
	})

	if got := f.ctrl.Render(); got != "abc" {
		t.Errorf("Render() = %q, want %q", got, "abc")
	}
}

func TestRender_ExecText(t *testing.T) {
	f := newFixture(Config{})
	f.shell.out = "file.txt"
	if err := f.submit("ls"); err != nil {
		t.Fatal(err)
	}
	if got := f.ctrl.Render(); !strings.HasSuffix(got, "\nfile.txt\n") {
		t.Errorf("Render() = %q, want exec text suffix", got)
	}
}

func TestRenderLoop_StopsOnCancel(t *testing.T) {
	f := newFixture(Config{RenderInterval: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.ctrl.RenderLoop(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for f.console.Clears() < 3 {
		select {
		case <-deadline:
			t.Fatal("render loop did not draw")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("render loop did not stop")
	}
}
