package loggerr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTextFormatterPlain(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	format := &textFormatter{layout: DefaultTimeFormat}
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(
		"[2024-01-02 03:04:05] WARNING  app: careful",
		format.Plain(when, WarningLevel, "app", "careful"),
		"level names pad to eight columns")

	assert.Equal(
		"[2024-01-02 03:04:05] INFO     app: hello",
		format.Plain(when, InfoLevel, "app", "hello"))
}

func TestTextFormatterDisplay(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	// Colorless display equals the plain rendering.
	format := &textFormatter{layout: DefaultTimeFormat}
	assert.Equal(
		format.Plain(when, ErrorLevel, "app", "boom"),
		format.Display(when, ErrorLevel, "app", "boom"))

	// Colored display still carries the text; whether escape codes appear
	// depends on the terminal profile, so only the content is asserted.
	format = &textFormatter{layout: DefaultTimeFormat, color: true}
	for _, level := range []Level{DebugLevel, InfoLevel, SuccessLevel, WarningLevel, ErrorLevel} {
		assert.Contains(format.Display(when, level, "app", "boom"), "boom")
	}
}
