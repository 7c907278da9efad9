package lifecycle

// Version information for the lifecycle module, checked by runctl.New.
const (
	Version              = "0.1.0"
	MinCompatibleVersion = "0.1.0"
)
