package domain

// StatusView is one frame of the status display. Each field is already
// formatted, including its trailing newline, so a plain renderer only has
// to concatenate them.
type StatusView struct {
	Prompt string
	State  string
	Cycles string
	Timer  string
	Exec   string

	// Raw values behind the formatted fields, for renderers that restyle.
	User      string
	Host      string
	Input     string
	StateName string
	CycleN    int64
	Seconds   string
	ExecText  string
}

// String concatenates the five formatted fields in display order.
func (v StatusView) String() string {
	return v.Prompt + v.State + v.Cycles + v.Timer + v.Exec
}
