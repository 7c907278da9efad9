package app

import (
	"context"
	"strconv"
	"time"

	"github.com/bft-labs/runctl/internal/domain"
)

// RenderLoop redraws the status display every render interval until ctx
// is done. Each frame is drawn under the controller lock; the remainder of
// the interval is slept outside it.
func (c *Controller) RenderLoop(ctx context.Context) {
	t := time.NewTimer(0)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		t.Reset(c.renderFrame())
	}
}

// Render draws one frame and returns the printed text.
func (c *Controller) Render() string {
	c.renderFrame()
	return c.Output()
}

// renderFrame draws one frame and returns the time left in its budget.
func (c *Controller) renderFrame() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := c.timer.Now() + c.renderInterval
	c.console.ClearScreen()
	c.output = strip(c.renderer.Render(c.statusView()), 0, '\r')
	c.console.Print(c.output)

	if wait := deadline - c.timer.Now(); wait > 0 {
		return wait
	}
	return 0
}

// StatusView composes the current status frame.
func (c *Controller) StatusView() domain.StatusView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusView()
}

// statusView requires c.mu. While the controller runs the timer line is
// remembered; once it stops running but the timer has not been stopped,
// as when paused, the remembered line is shown instead.
func (c *Controller) statusView() domain.StatusView {
	secs := formatSeconds(c.timer.Elapsed())
	v := domain.StatusView{
		User:      c.user,
		Host:      c.host,
		Input:     c.input,
		StateName: c.state.String(),
		CycleN:    c.cycles,
		Seconds:   secs,
		ExecText:  c.execText,
	}
	v.Timer = " (Timer)=[" + secs + "s]\n"

	if c.isRunning() {
		c.timerText = v.Timer
		c.timerSecs = secs
	} else if c.timer.IsRunning() {
		v.Timer = c.timerText
		v.Seconds = c.timerSecs
	}

	v.Prompt = ">-(" + c.user + "@" + c.host + ")-$ [" + c.input + "]\n"
	v.State = " (State)=[" + v.StateName + "]\n"
	v.Cycles = " (Cycles)=[" + strconv.FormatInt(c.cycles, 10) + "]\n"
	v.Exec = "\n" + c.execText + "\n"
	return v
}

// formatSeconds renders d as seconds with six decimals.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
}
