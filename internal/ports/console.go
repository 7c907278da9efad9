package ports

// Console is the interactive terminal the controller reads keys from and
// draws the status display on.
type Console interface {
	// KeyHit reports whether a key is waiting. It must not block.
	KeyHit() bool

	// ReadChar returns the next waiting key as a byte value.
	// It is only called after KeyHit returned true.
	ReadChar() int

	// ClearScreen clears the display and homes the cursor.
	ClearScreen()

	// Print writes text to the display.
	Print(text string)
}
