package loggerr

import (
	"fmt"
	"strings"
)

// Level is one of the five ordered log severities. The order is total:
// DEBUG < INFO < SUCCESS < WARNING < ERROR. A record is emitted when its
// level is at or above the logger's minimum.
type Level int8

// The five levels, lowest to highest.
const (
	DebugLevel Level = iota
	InfoLevel
	SuccessLevel
	WarningLevel
	ErrorLevel
)

var levelNames = [...]string{"DEBUG", "INFO", "SUCCESS", "WARNING", "ERROR"} //nolint:gochecknoglobals

// String returns the level's upper-case name.
func (l Level) String() string {
	if l < DebugLevel || l > ErrorLevel {
		return fmt.Sprintf("LEVEL(%d)", int8(l))
	}

	return levelNames[l]
}

// ParseLevel converts a level name to a Level, case-insensitively.
// Unknown names return ErrInvalidLevel.
func ParseLevel(name string) (Level, error) {
	upper := strings.ToUpper(name)
	for idx, known := range levelNames {
		if upper == known {
			return Level(idx), nil //nolint:gosec
		}
	}

	return InfoLevel, fmt.Errorf("%w: %q (choose from %s)",
		ErrInvalidLevel, name, strings.Join(levelNames[:], ", "))
}
