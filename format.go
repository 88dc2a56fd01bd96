package loggerr

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Formatter renders one log record twice: a colorized string for the console
// and a plain string for the log file. Provide your own in Config.Formatter
// to change the line layout.
type Formatter interface {
	Display(when time.Time, level Level, name, msg string) string
	Plain(when time.Time, level Level, name, msg string) string
}

// The console color for each level: magenta, blue, green, yellow, red.
var levelStyles = map[Level]lipgloss.Style{ //nolint:gochecknoglobals
	DebugLevel:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	InfoLevel:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	SuccessLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	WarningLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ErrorLevel:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

// textFormatter writes "[time stamp] LEVEL    name: msg" lines.
type textFormatter struct {
	layout string // Go time layout for the time stamp.
	color  bool
}

// Plain satisfies the Formatter interface.
func (f *textFormatter) Plain(when time.Time, level Level, name, msg string) string {
	return fmt.Sprintf("[%s] %-8s %s: %s", when.Format(f.layout), level, name, msg)
}

// Display satisfies the Formatter interface. The whole line is colored by level.
func (f *textFormatter) Display(when time.Time, level Level, name, msg string) string {
	line := f.Plain(when, level, name, msg)
	if !f.color {
		return line
	}

	if style, ok := levelStyles[level]; ok {
		return style.Render(line)
	}

	return line
}

// Our formatter must satisfy the Formatter interface.
var _ Formatter = (*textFormatter)(nil)
