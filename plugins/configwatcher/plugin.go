// Package configwatcher reloads runtime limits from the runctl config file.
// When enabled, it watches the file for changes and applies max_cycles and
// time_limit to the running session.
package configwatcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/runctl"
	"github.com/bft-labs/runctl/internal/cliconfig"
	"github.com/bft-labs/runctl/pkg/log"
)

// Plugin watches a TOML config file and applies hot-reloadable fields.
type Plugin struct {
	mu sync.Mutex

	path          string
	pinned        map[string]bool
	debounceDelay time.Duration

	logger   runctl.Logger
	tuner    runctl.Tuner
	watcher  *fsnotify.Watcher
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// Path is the config file to watch. An empty path disables the plugin.
	Path string

	// Pinned lists flag names ("max-cycles", "time-limit") set on the
	// command line. Pinned fields are never reloaded.
	Pinned map[string]bool

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config watching the default config path.
func DefaultConfig() Config {
	return Config{
		Path:          cliconfig.DefaultConfigPath(),
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	return &Plugin{
		path:          cfg.Path,
		pinned:        cfg.Pinned,
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching the config file's directory. Failures to set
// up the watch are logged and leave the plugin idle.
func (p *Plugin) Initialize(ctx context.Context, cfg runctl.PluginConfig) error {
	p.mu.Lock()
	p.logger = cfg.Logger
	p.tuner = cfg.Tuner
	p.mu.Unlock()

	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	if p.path == "" || p.tuner == nil {
		p.logger.Warn("config watcher disabled: no config path or tuner")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("config watcher: failed to create watcher", log.Err(err))
		return nil
	}
	// Watch the directory so editors that replace the file are seen.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		p.logger.Error("config watcher: failed to watch directory",
			log.String("dir", filepath.Dir(p.path)), log.Err(err))
		watcher.Close()
		return nil
	}
	p.watcher = watcher

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("config watcher plugin initialized", log.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)
	return nil
}

// Shutdown stops the watcher and any pending reload.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()
	defer p.watcher.Close()

	target := filepath.Clean(p.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("config watcher: watcher error", log.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.reload()
	})
}

// reload re-reads the file and pushes changed, unpinned limits to the tuner.
func (p *Plugin) reload() {
	fc, err := cliconfig.LoadFileConfig(p.path)
	if err != nil {
		p.logger.Warn("config watcher: reload failed", log.String("path", p.path), log.Err(err))
		return
	}

	if fc.MaxCycles > 0 && !p.pinned["max-cycles"] && fc.MaxCycles != p.tuner.MaxCycles() {
		if err := p.tuner.SetMaxCycles(fc.MaxCycles); err != nil {
			p.logger.Warn("config watcher: max_cycles rejected", log.Err(err))
		} else {
			p.logger.Info("config watcher: max_cycles reloaded", log.Int64("max_cycles", fc.MaxCycles))
		}
	}

	if fc.TimeLimit != "" && !p.pinned["time-limit"] {
		d, err := time.ParseDuration(fc.TimeLimit)
		switch {
		case err != nil:
			p.logger.Warn("config watcher: invalid time_limit", log.String("value", fc.TimeLimit), log.Err(err))
		case d <= 0:
			p.logger.Warn("config watcher: time_limit must be positive", log.Duration("time_limit", d))
		case d != p.tuner.TimeLimit():
			p.tuner.SetTimeLimit(d)
			p.logger.Info("config watcher: time_limit reloaded", log.Duration("time_limit", d))
		}
	}
}

// Ensure Plugin implements runctl.Plugin.
var _ runctl.Plugin = (*Plugin)(nil)
