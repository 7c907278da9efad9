package domain

// Outcome records how a run ended.
type Outcome int

const (
	// OutcomeNone means the run has not reached a terminal state.
	OutcomeNone Outcome = iota
	// OutcomeExited means the run reached Exited through a clean exit.
	OutcomeExited
	// OutcomeKilled means the run was killed, either on request or because
	// a clean exit failed.
	OutcomeKilled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeExited:
		return "exited"
	case OutcomeKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// Exit codes reported by the main loop.
const (
	ExitCodeOK     = 0
	ExitCodeError  = 1
	ExitCodeKilled = -1
)

// ExitCode maps the outcome to the process exit code.
func (o Outcome) ExitCode() int {
	if o == OutcomeKilled {
		return ExitCodeKilled
	}
	return ExitCodeOK
}
