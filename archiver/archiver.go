// Package archiver turns the active log file into a compressed, time-stamped
// backup and enforces the retention bound on existing backups. Backups are
// named <base>_<timestamp>.gz and live flat in one archive directory; the
// count of retained backups never exceeds Count once a rotation completes.
package archiver

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
	"golift.io/loggerr/compressor"
	"golift.io/loggerr/filer"
)

// Custom errors returned by this package. A Rotate error wrapping ErrPrune
// means the backup was created and the new log file is safe; only deleting
// old backups failed. Anything wrapping ErrRotate means the original file
// was left in place, uncompressed.
var (
	ErrRotate = errors.New("log rotation failed")
	ErrPrune  = errors.New("pruning old backups failed")
)

// FormatDefault is the time stamp layout used in backup names when no Format
// is configured. Keep custom layouts fixed-width and big-endian (year first):
// that is what makes lexicographic name order match chronological order.
const FormatDefault = "20060102_150405"

// Joiner sits between the log file's base name and the time stamp, and
// between the time stamp and a collision sequence number.
const Joiner = "_"

// Archive creates compressed backups of a log file and prunes old ones.
// The zero value is usable after Dirs() fills in the defaults.
type Archive struct {
	Dir    string // Location where backups are written. Default: <dir(log)>/archive.
	Count  int    // Backups retained after each rotation. Zero retains none.
	Format string // Go time layout embedded in backup names. Default: FormatDefault.
	UseUTC bool   // Render time stamps in UTC instead of local time.
	// PostRotate is called after a successful rotation, inside the logger's
	// critical section. Keep it snappy or hand off to a go routine.
	PostRotate func(fileName, newFile string)
	// Logf receives a one-line compression report after each rotation.
	Logf func(msg string, v ...any)
	filer.Filer
}

// Rotate compresses fileName into the archive directory under a time-stamped
// name and prunes backups beyond the retention count, oldest first. It
// returns the path of the backup it created. With Count == 0 the backup it
// just wrote is itself pruned: every rotation leaves the archive empty.
func (a *Archive) Rotate(fileName string) (string, error) {
	now := time.Now()
	if a.UseUTC {
		now = now.UTC()
	}

	newFile := a.backupName(fileName, now)

	report, err := compressor.Compress(fileName, newFile)
	if a.Logf != nil {
		go compressor.Log(report, a.Logf) // in a go routine to avoid deadlock with the logger.
	}

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRotate, err)
	}

	if a.PostRotate != nil {
		a.PostRotate(fileName, newFile)
	}

	return newFile, a.prune(fileName)
}

// Dirs validates the configuration, fills in defaults, and returns the
// directories the logger must create before anything else happens.
func (a *Archive) Dirs(fileName string) ([]string, error) {
	if a.Format == "" {
		a.Format = FormatDefault
	}

	if a.Filer == nil {
		a.Filer = filer.Default()
	}

	if a.Dir == "" {
		a.Dir = filepath.Join(filepath.Dir(fileName), "archive")
	}

	switch fpath := filepath.Dir(fileName); {
	case fpath == a.Dir:
		return []string{fpath}, nil
	default:
		return []string{fpath, a.Dir}, nil
	}
}

// backupName picks the backup file name for a rotation happening now.
// If a backup with the same time stamp already exists (two rotations inside
// one second), a sequence number keeps the names unique.
func (a *Archive) backupName(fileName string, now time.Time) string {
	prefix := filepath.Base(fileName) + Joiner + now.Format(a.Format)
	name := filepath.Join(a.Dir, prefix+compressor.SuffixGZ)

	for seq := 1; ; seq++ {
		if _, err := a.Stat(name); err != nil {
			return name // name is free.
		}

		name = filepath.Join(a.Dir, prefix+Joiner+strconv.Itoa(seq)+compressor.SuffixGZ)
	}
}

// prune deletes the oldest backups until no more than Count remain.
// Failures here never undo the rotation; they are reported wrapped in
// ErrPrune and the next rotation tries again.
func (a *Archive) prune(fileName string) error {
	backups, err := a.getAllBackups(fileName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPrune, err)
	}

	var failed error

	for idx, path := range backups.Files {
		if len(backups.Files)-idx <= a.Count {
			break // the rest are young enough to keep.
		}

		if err := a.Remove(path); err != nil {
			failed = multierr.Append(failed, err)
		}
	}

	if failed != nil {
		return fmt.Errorf("%w: %w", ErrPrune, failed)
	}

	return nil
}

// getAllBackups finds the backups belonging to fileName and returns them
// sorted oldest first. A file only counts when its name parses back to a
// time stamp in our layout; anything else in the directory is not ours.
func (a *Archive) getAllBackups(fileName string) (*backupFiles, error) {
	list := &backupFiles{Files: []string{}, stamps: []time.Time{}, seqs: []int{}}
	prefix := filepath.Base(fileName) + Joiner

	entries, err := a.ReadDir(a.Dir)
	if err != nil {
		return nil, fmt.Errorf("listing archive dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, compressor.SuffixGZ) {
			continue // not our file.
		}

		part := strings.TrimSuffix(strings.TrimPrefix(name, prefix), compressor.SuffixGZ)

		when, seq, ok := a.parseStamp(part)
		if !ok {
			continue // not our file.
		}

		list.Files = append(list.Files, filepath.Join(a.Dir, name))
		list.stamps = append(list.stamps, when)
		list.seqs = append(list.seqs, seq)
	}

	sort.Sort(list)

	return list, nil
}

// parseStamp decodes "<stamp>" or "<stamp>_<seq>" from a backup name.
func (a *Archive) parseStamp(part string) (time.Time, int, bool) {
	if when, err := time.Parse(a.Format, part); err == nil {
		return when, 0, true
	}

	idx := strings.LastIndex(part, Joiner)
	if idx < 0 {
		return time.Time{}, 0, false
	}

	seq, err := strconv.Atoi(part[idx+1:])
	if err != nil {
		return time.Time{}, 0, false
	}

	when, err := time.Parse(a.Format, part[:idx])
	if err != nil {
		return time.Time{}, 0, false
	}

	return when, seq, true
}
