// Package app contains the run controller: the lifecycle actions, the
// line editor that turns keystrokes into commands or shell lines, and the
// input and render loops that share the controller's lock.
package app
