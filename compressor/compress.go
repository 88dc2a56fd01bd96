// Package compressor gzips rotated log files into their archive location.
// The Archiver calls this while a rotation is in flight; the source file is
// removed only after the compressed copy is fully written.
package compressor

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"golift.io/loggerr/filer"
)

// SuffixGZ is appended to backup file names.
const SuffixGZ = ".gz"

// CompressLevel sets the global compression level.
var CompressLevel = gzip.DefaultCompression //nolint:gochecknoglobals

// Filer allows overriding os-file procedures.
var Filer = filer.Default() //nolint:gochecknoglobals

// Report contains a report of one compression operation.
// Always check Error to make sure the New* data is valid.
type Report struct {
	OldFile string
	NewFile string
	OldSize int64
	NewSize int64
	Elapsed time.Duration
	Error   error
}

// Compress gzips srcFile into dstFile and returns a report. Blocks until
// finished. On success the source file is removed; on failure the partial
// destination file is removed and the source is left untouched.
func Compress(srcFile, dstFile string) (*Report, error) {
	report := &Report{
		OldFile: srcFile,
		NewFile: dstFile,
		OldSize: 0,
		NewSize: 0,
		Error:   nil,
		Elapsed: 0,
	}

	level := CompressLevel
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}

	oldFile, err := Filer.Stat(report.OldFile)
	if report.Error = err; report.Error != nil {
		return report, fmt.Errorf("stating old file: %w", report.Error)
	}

	report.OldSize = oldFile.Size()
	start := time.Now()
	report.NewSize, report.Error = compress(report.OldFile, report.NewFile, oldFile.Mode(), level)
	report.Elapsed = time.Since(start)

	if report.Error != nil {
		return report, fmt.Errorf("compressor error: %w", report.Error)
	}

	return report, nil
}

// Log sends a report to a custom procedure.
func Log(report *Report, printf func(msg string, fmt ...any)) {
	if printf == nil {
		printf = log.Printf
	}

	const kilobyte = 1024

	if report.Error != nil {
		printf("Compression Error after %v: %v", report.Elapsed.Round(time.Second), report.Error)
	} else {
		printf("Compression Finished in %v: %s/%dkB -> %s/%dkB", report.Elapsed.Round(time.Second),
			report.OldFile, report.OldSize/kilobyte, report.NewFile, report.NewSize/kilobyte)
	}
}

// compress does the "hard" work: Open the old file, open the new file, create a gzip writer,
// copy the writer to the new file, close all open file handles, and lastly delete the old file.
func compress(oldFile, newFile string, mode os.FileMode, level int) (int64, error) {
	var (
		size     int64
		err      error
		ncf, gzf *os.File
	)

	defer func() { // First, so it executes last.
		if err != nil {
			_ = Filer.Remove(newFile)
		} else {
			_ = Filer.Remove(oldFile)
		}
	}()

	ncf, err = Filer.OpenFile(oldFile, os.O_RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("opening source file: %w", err)
	}
	defer ncf.Close()

	gzf, err = Filer.OpenFile(newFile, os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		return 0, fmt.Errorf("opening gz file: %w", err)
	}

	defer func() {
		gzf.Close()
		// Set size of new file.
		if fs, serr := Filer.Stat(newFile); serr == nil {
			size = fs.Size()
		}
	}()

	gzw, _ := gzip.NewWriterLevel(gzf, level)
	defer gzw.Close()
	gzw.Name = oldFile

	size, err = io.Copy(gzw, ncf)
	if err != nil {
		return size, fmt.Errorf("%s -> %s: %w", oldFile, newFile, err)
	}

	return size, nil
}
