// Package domain holds the value types shared by the controller, its ports
// and the adapters: the error sentinels, the run [Outcome] with its exit
// code, and the [StatusView] composed on every render tick.
//
// The package has no dependencies outside the standard library.
package domain
