package loggerr

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/multierr"
	"golift.io/loggerr/archiver"
	"golift.io/loggerr/sink"
)

// Logger is what you get in return for providing a Config. Every record goes
// to the console (colored) and, when a file path is configured, to the log
// file (plain) with a rotation check after each write.
//
// One mutex serializes append, due-check and rotation as a single critical
// section, so concurrent callers never tear a line or race a rotation. The
// lock belongs to this instance alone: two Loggers pointed at the same path
// do not coordinate, and neither do two processes.
type Logger struct {
	mu      sync.Mutex
	name    string
	level   Level
	format  Formatter
	console io.Writer
	writer  *sink.Writer // nil when file output is disabled.
	policy  archiver.Policy
	rotator Rotator
}

// New takes in your configuration and returns a Logger. The log and archive
// directories are created here; if that fails, so does construction, since no
// file logging could ever succeed without them. Invalid level names and
// negative sizes or counts are configuration errors, also fatal here.
func New(config *Config) (*Logger, error) {
	level, err := config.validate()
	if err != nil {
		return nil, err
	}

	format := config.Formatter
	if format == nil {
		layout := config.TimeFormat
		if layout == "" {
			layout = DefaultTimeFormat
		}

		format = &textFormatter{layout: layout, color: !config.NoColor}
	}

	logger := &Logger{
		name:    config.Name,
		level:   level,
		format:  format,
		console: config.Console,
	}

	if logger.console == nil {
		logger.console = os.Stdout
	}

	if config.Filepath == "" {
		return logger, nil // console only; no files, no rotation.
	}

	if err := logger.openFile(config); err != nil {
		return nil, err
	}

	return logger, nil
}

// openFile wires up the file side: archiver, directories, sink writer, policy.
func (l *Logger) openFile(config *Config) error {
	l.rotator = config.Rotator
	if l.rotator == nil {
		l.rotator = &archiver.Archive{
			Dir:    config.ArchiveDir,
			Count:  config.BackupCount,
			Format: config.ArchiveTimeFormat,
		}
	}

	l.policy = config.Policy
	if l.policy == nil {
		l.policy = archiver.SizePolicy{Max: config.FileSize}
	}

	dirMode := config.DirMode
	if dirMode == 0 {
		dirMode = DirMode
	}

	fileMode := config.FileMode
	if fileMode == 0 {
		fileMode = FileMode
	}

	dirs, err := l.rotator.Dirs(config.Filepath)
	if err != nil {
		return fmt.Errorf("validating Rotator: %w", err)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("making directories for logfiles: %w", err)
		}
	}

	l.writer, err = sink.New(config.Filepath, fileMode, dirMode, nil)
	if err != nil {
		return err
	}

	return nil
}

// Log writes one record at the given level. Records below the minimum level
// go nowhere. The console always gets the record, even when the file write
// fails, so a broken disk never silences operator-visible logging; the file
// error still comes back to the caller. Rotation and prune errors are
// returned too, but logging keeps going either way.
func (l *Logger) Log(level Level, msg string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return nil
	}

	now := time.Now()
	fmt.Fprintln(l.console, l.format.Display(now, level, l.name, msg))

	if l.writer == nil {
		return nil
	}

	if _, err := l.writer.Append(l.format.Plain(now, level, l.name, msg)); err != nil {
		return err
	}

	if l.policy.Due(l.writer.Size()) {
		return l.rotate()
	}

	return nil
}

// Debug logs a record at DEBUG level.
func (l *Logger) Debug(format string, v ...any) error {
	return l.Log(DebugLevel, fmt.Sprintf(format, v...))
}

// Info logs a record at INFO level.
func (l *Logger) Info(format string, v ...any) error {
	return l.Log(InfoLevel, fmt.Sprintf(format, v...))
}

// Success logs a record at SUCCESS level.
func (l *Logger) Success(format string, v ...any) error {
	return l.Log(SuccessLevel, fmt.Sprintf(format, v...))
}

// Warning logs a record at WARNING level.
func (l *Logger) Warning(format string, v ...any) error {
	return l.Log(WarningLevel, fmt.Sprintf(format, v...))
}

// Error logs a record at ERROR level.
func (l *Logger) Error(format string, v ...any) error {
	return l.Log(ErrorLevel, fmt.Sprintf(format, v...))
}

// SetLevel changes the minimum level by name. An unknown name returns
// ErrInvalidLevel and leaves the current level exactly as it was.
func (l *Logger) SetLevel(name string) error {
	level, err := ParseLevel(name)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.level = level
	l.mu.Unlock()

	return nil
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.level
}

// Rotate forces a rotation immediately, regardless of file size.
// It does nothing on a console-only logger.
func (l *Logger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return nil
	}

	return l.rotate()
}

// rotate runs the full rollover with the lock already held: close the active
// file, archive it, reopen fresh. The file is reopened no matter what the
// archiver says; after a failed archive attempt the old content is still at
// the original path and appends continue past the limit until the next
// rotation is due.
func (l *Logger) rotate() error {
	if err := l.writer.Close(); err != nil {
		return err
	}

	_, err := l.rotator.Rotate(l.writer.Path())
	if rerr := l.writer.Reopen(); rerr != nil {
		err = multierr.Append(err, rerr)
	}

	return err
}

// Close syncs and closes the log file. Records logged afterwards still reach
// the console, but the file side reports sink.ErrClosed until a forced
// Rotate() or a new Logger reopens a file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.writer == nil {
		return nil
	}

	return l.writer.Close()
}

// The stock archiver must satisfy our Rotator interface.
var _ Rotator = (*archiver.Archive)(nil)
