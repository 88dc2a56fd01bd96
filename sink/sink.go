// Package sink owns the active log file. It appends whole lines, keeps the
// running byte size, and hands the file over to the archiver during rotation
// through its Close and Reopen methods.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golift.io/loggerr/filer"
)

// ErrClosed is returned by Append when the active file handle is closed.
// This happens if Append races a failed rotation, or after Close.
var ErrClosed = errors.New("log file is closed")

// Writer appends lines to the active log file. Writes go straight to the
// OS with no buffering in between, so a line is flushed once Append returns.
// Writer is not safe for concurrent use; the owning Logger serializes access.
type Writer struct {
	path     string
	fileMode os.FileMode
	dirMode  os.FileMode
	file     *os.File
	size     int64
	filer.Filer
}

// New opens (or creates) the log file at path in append mode and returns a
// Writer for it. The containing directory is created if missing; failing to
// create it fails construction. Append mode means another writer pointed at
// the same path cannot truncate data already written.
func New(path string, fileMode, dirMode os.FileMode, fileSys filer.Filer) (*Writer, error) {
	if fileSys == nil {
		fileSys = filer.Default()
	}

	writer := &Writer{
		path:     path,
		fileMode: fileMode,
		dirMode:  dirMode,
		Filer:    fileSys,
	}

	if err := writer.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("making log directory: %w", err)
	}

	if err := writer.Reopen(); err != nil {
		return nil, err
	}

	return writer, nil
}

// Append writes line plus a terminator to the active file and returns the
// number of bytes written. The size counter follows every successful write.
func (w *Writer) Append(line string) (int, error) {
	if w.file == nil {
		return 0, fmt.Errorf("appending %q: %w", w.path, ErrClosed)
	}

	size, err := w.file.WriteString(line + "\n")
	w.size += int64(size)

	if err != nil {
		return size, fmt.Errorf("writing log msg: %w", err)
	}

	return size, nil
}

// Size returns the byte length of the active file as of the last write.
func (w *Writer) Size() int64 {
	return w.size
}

// Path returns the active file's path.
func (w *Writer) Path() string {
	return w.path
}

// Close syncs and closes the active file. Closing a closed Writer is a no-op.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}

	_ = w.file.Sync()
	err := w.file.Close()
	w.file = nil

	if err != nil {
		return fmt.Errorf("closing log file %s: %w", w.path, err)
	}

	return nil
}

// Reopen opens a new handle at the original path and re-reads its size.
// After a successful rotation the file is created empty; after a failed one
// the old content is still there and appending continues past the limit.
func (w *Writer) Reopen() error {
	if w.file != nil {
		if err := w.Close(); err != nil {
			return err
		}
	}

	file, err := w.OpenFile(w.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, w.fileMode)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	w.file = file
	w.size = 0

	if info, err := w.Stat(w.path); err == nil {
		w.size = info.Size()
	}

	return nil
}
