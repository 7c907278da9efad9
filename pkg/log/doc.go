// Package log provides the logging abstraction used by runctl components.
//
// The controller, the console adapters and the plugins log through the
// [Logger] interface so that embedding programs can route lifecycle
// messages into their own logging setup. A zerolog-backed implementation
// and a no-op implementation are provided.
//
// # Usage
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)
//	logger.Info("state transition",
//	    log.Stringer("from", lifecycle.Started),
//	    log.Stringer("to", lifecycle.Pausing),
//	)
//
// Note that the status screen is redrawn on stdout many times per second;
// point the logger at a file when running interactively at debug level.
//
// # Version
//
// Current version: 0.1.0
// Minimum compatible version: 0.1.0
package log
