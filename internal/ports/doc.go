// Package ports defines the interfaces that connect the controller in
// internal/app to the outside world.
//
//   - [Console]: keyboard polling, screen clearing and printing
//   - [ShellExecutor]: runs a non-command input line and captures its output
//   - [Renderer]: turns a [domain.StatusView] into printable text
//
// Adapters in internal/adapters implement them; tests use in-memory fakes.
package ports
