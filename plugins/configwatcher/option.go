package configwatcher

import "github.com/bft-labs/runctl"

// WithConfigWatcher returns a runctl Option that enables config reloading.
//
// Usage:
//
//	r, err := runctl.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        Path:          "/home/me/.runctl/config.toml",
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) runctl.Option {
	return runctl.WithPlugin(New(cfg))
}

// WithDefaultConfigWatcher watches the default config path with a 100ms
// debounce.
func WithDefaultConfigWatcher() runctl.Option {
	return WithConfigWatcher(DefaultConfig())
}
