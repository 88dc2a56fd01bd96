package loggerr

import (
	"errors"
	"io"
	"os"

	"golift.io/loggerr/archiver"
)

// These are the default directory and log file POSIX modes.
const (
	FileMode os.FileMode = 0o600
	DirMode  os.FileMode = 0o750
)

// Stock values for the optional settings. The library itself never applies
// DefaultFileSize or DefaultBackupCount silently: a zero FileSize means "no
// rotation" and a zero BackupCount means "retain no backups", both documented
// states. Callers that want the stock behavior set these explicitly (see
// cmd/exampleapp, which feeds them through viper defaults).
const (
	DefaultFileSize    int64 = 10 * 1024 * 1024
	DefaultBackupCount       = 5
	DefaultTimeFormat        = "2006-01-02 15:04:05"
)

// Custom errors returned by this package. All three mean the configuration
// was rejected outright; nothing was created or changed.
var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrNegativeSize  = errors.New("negative max file size")
	ErrNegativeCount = errors.New("negative backup count")
)

// Config is the data needed to create a new Logger. Only Name matters for a
// console-only logger; file output and rotation switch on when Filepath is set.
// The configuration is copied at construction and never re-read: to change
// anything but the minimum level, build a new Logger.
type Config struct {
	Name       string // Prefix printed on every record.
	Filepath   string // Full path to the log file. Empty disables file output and rotation.
	TimeFormat string // Go time layout for record time stamps. Default: DefaultTimeFormat.
	Level      string // Minimum level name. Default: INFO.
	// FileSize is the rotation threshold in bytes. The log rotates on the
	// first append that reaches it. Zero (or less) disables rotation: the
	// file grows forever. Negative values are rejected with ErrNegativeSize.
	FileSize int64
	// BackupCount is how many compressed backups survive each rotation.
	// Zero means every backup is deleted the moment it is made. Negative
	// values are rejected with ErrNegativeCount.
	BackupCount int
	// ArchiveDir is where rotated backups go. Default: <dir(Filepath)>/archive.
	ArchiveDir string
	// ArchiveTimeFormat is the Go time layout embedded in backup names.
	// Keep it fixed-width and year-first so backup names sort in
	// chronological order. Default: archiver.FormatDefault.
	ArchiveTimeFormat string
	Console           io.Writer   // Console destination. Default: os.Stdout.
	NoColor           bool        // Plain console output, no ANSI colors.
	FileMode          os.FileMode // POSIX mode for the log file. Default: 0600.
	DirMode           os.FileMode // POSIX mode for created folders. Default: 0750.
	// Overridable collaborators. Leave nil for the stock line format,
	// size-triggered policy and gzip archiver.
	Formatter Formatter
	Rotator   Rotator
	Policy    archiver.Policy
}

// validate rejects the configuration states the library refuses to guess at.
func (c *Config) validate() (Level, error) {
	if c.FileSize < 0 {
		return 0, ErrNegativeSize
	}

	if c.BackupCount < 0 {
		return 0, ErrNegativeCount
	}

	if c.Level == "" {
		return InfoLevel, nil
	}

	return ParseLevel(c.Level)
}
