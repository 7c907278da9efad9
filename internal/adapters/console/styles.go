package console

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/bft-labs/runctl/internal/domain"
)

var (
	colorPrompt = lipgloss.Color("#E07A5F")
	colorLabel  = lipgloss.Color("#6B7280")
	colorValue  = lipgloss.Color("#FFFFFF")
	colorActive = lipgloss.Color("#10B981")
	colorIdle   = lipgloss.Color("#F59E0B")
	colorDead   = lipgloss.Color("#EF4444")
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrompt)
	labelStyle  = lipgloss.NewStyle().Foreground(colorLabel)
	valueStyle  = lipgloss.NewStyle().Foreground(colorValue)
)

// stateStyle colours a state name: green while active, amber while
// parked, red once terminal.
func stateStyle(name string) lipgloss.Style {
	switch name {
	case "Paused", "Stopped", "Restarted", "Uninitialized":
		return lipgloss.NewStyle().Bold(true).Foreground(colorIdle)
	case "Exiting", "Exited", "Killing", "Killed":
		return lipgloss.NewStyle().Bold(true).Foreground(colorDead)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(colorActive)
	}
}

// PlainRenderer prints the five status fields as they are.
type PlainRenderer struct{}

// Render concatenates the formatted fields.
func (PlainRenderer) Render(v domain.StatusView) string {
	return v.String()
}

// StyledRenderer colours the status fields with lipgloss. Without colour
// support the text matches PlainRenderer's.
type StyledRenderer struct{}

// Render styles each field from the view's raw values.
func (StyledRenderer) Render(v domain.StatusView) string {
	seconds := v.Seconds
	if seconds == "" {
		seconds = "0.000000"
	}
	prompt := promptStyle.Render(">-("+v.User+"@"+v.Host+")-$") + " [" + valueStyle.Render(v.Input) + "]\n"
	state := labelStyle.Render(" (State)=") + "[" + stateStyle(v.StateName).Render(v.StateName) + "]\n"
	cycles := labelStyle.Render(" (Cycles)=") + "[" + valueStyle.Render(strconv.FormatInt(v.CycleN, 10)) + "]\n"
	timer := labelStyle.Render(" (Timer)=") + "[" + valueStyle.Render(seconds+"s") + "]\n"
	// Exec output is left unstyled; lipgloss would pad multi-line text.
	return prompt + state + cycles + timer + v.Exec
}
