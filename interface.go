package loggerr

//go:generate mockgen -destination=mocks/rotator.go -package=mocks golift.io/loggerr Rotator

// Rotator allows passing in your own logic for archiving rotated log files.
// A working Rotator lives in the archiver package; use it directly, or
// extend it with your own methods and interface.
type Rotator interface {
	// Rotate is called, with the active file already closed, any time the
	// log must roll over. It archives fileName and returns the path of the
	// backup it created. A non-empty path alongside a non-nil error means
	// the backup exists but housekeeping (pruning) failed.
	Rotate(fileName string) (archive string, err error)

	// Dirs is called once on startup. It should validate configuration and
	// return the list of directories to create before logging starts.
	Dirs(fileName string) (dirPaths []string, err error)
}
