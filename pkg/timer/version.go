package timer

// Version information for the timer module, checked by runctl.New.
const (
	Version              = "0.1.0"
	MinCompatibleVersion = "0.1.0"
)
