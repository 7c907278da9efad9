package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/runctl/internal/domain"
	"github.com/bft-labs/runctl/internal/ports"
	"github.com/bft-labs/runctl/pkg/lifecycle"
)

// Loop runs the input loop until the state reaches Exited or beyond, the
// time limit runs out, ctx is cancelled, or input fails. The render loop
// runs alongside it and is stopped before Loop returns. A positive runtime
// replaces the timer limit.
//
// The exit code is domain.ExitCodeKilled when the run was killed and
// domain.ExitCodeOK otherwise. Cancelling ctx requests a clean exit first.
func (c *Controller) Loop(ctx context.Context, runtime time.Duration) (int, error) {
	if runtime > 0 {
		c.SetTimeLimit(runtime)
	}

	renderCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.RenderLoop(renderCtx)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	var poll *time.Ticker
	if c.pollInterval > 0 {
		poll = time.NewTicker(c.pollInterval)
		defer poll.Stop()
	}

	for c.State() < lifecycle.Exited && c.Remaining() > 0 {
		if ctx.Err() != nil {
			return c.cancelled(), nil
		}
		if err := c.ProcessInput(ctx); err != nil {
			return domain.ExitCodeError, err
		}
		c.ProcessCycles()

		if poll != nil {
			select {
			case <-ctx.Done():
				return c.cancelled(), nil
			case <-poll.C:
			}
		}
	}

	if c.Remaining() <= 0 {
		c.logger.Info("time limit reached", ports.Duration("limit", c.TimeLimit()))
	}
	return c.Outcome().ExitCode(), nil
}

func (c *Controller) cancelled() int {
	c.logger.Info("context cancelled, exiting", ports.Stringer("state", c.State()))
	if c.State() < lifecycle.Exited {
		c.DoExit()
	}
	return c.Outcome().ExitCode()
}
