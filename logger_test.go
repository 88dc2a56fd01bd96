package loggerr_test

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golift.io/loggerr"
	"golift.io/loggerr/mocks"
	"golift.io/loggerr/sink"
)

// rawFormatter emits the bare message, making byte counts in rotation tests
// exact: an N-byte message lands as N+1 bytes in the file.
type rawFormatter struct{}

func (rawFormatter) Display(_ time.Time, _ loggerr.Level, _, msg string) string { return msg }
func (rawFormatter) Plain(_ time.Time, _ loggerr.Level, _, msg string) string   { return msg }

func TestNewConfigErrors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := loggerr.New(&loggerr.Config{FileSize: -1})
	assert.ErrorIs(err, loggerr.ErrNegativeSize)

	_, err = loggerr.New(&loggerr.Config{BackupCount: -1})
	assert.ErrorIs(err, loggerr.ErrNegativeCount)

	_, err = loggerr.New(&loggerr.Config{Level: "BOGUS"})
	assert.ErrorIs(err, loggerr.ErrInvalidLevel)
}

func TestNewBadDirectoryIsFatal(t *testing.T) {
	t.Parallel()

	// A regular file blocks creation of the log directory.
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "blocker"), []byte("x"), 0o600))

	_, err := loggerr.New(&loggerr.Config{
		Filepath: filepath.Join(base, "blocker", "logs", "app.log"),
		Console:  io.Discard,
	})
	assert.Error(t, err)
}

func TestConsoleOnly(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	console := &bytes.Buffer{}

	logger, err := loggerr.New(&loggerr.Config{Name: "app", Console: console, NoColor: true})
	require.NoError(err)

	assert.NoError(logger.Info("hello %s", "world"))
	assert.Contains(console.String(), "INFO")
	assert.Contains(console.String(), "app: hello world")
	assert.NoError(logger.Close())
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	console := &bytes.Buffer{}
	logFile := filepath.Join(t.TempDir(), "app.log")

	logger, err := loggerr.New(&loggerr.Config{
		Name:     "app",
		Filepath: logFile,
		Level:    "WARNING",
		Console:  console,
		NoColor:  true,
	})
	require.NoError(err)

	assert.NoError(logger.Debug("quiet"))
	assert.NoError(logger.Info("quiet"))
	assert.NoError(logger.Success("quiet"))
	assert.Empty(console.String(), "records below the minimum level produce nothing")

	assert.NoError(logger.Warning("loud"))
	assert.NoError(logger.Error("loud"))

	lines := strings.Split(strings.TrimSuffix(console.String(), "\n"), "\n")
	assert.Len(lines, 2)
	assert.Contains(lines[0], "WARNING")
	assert.Contains(lines[1], "ERROR")

	require.NoError(logger.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(err)
	assert.Equal(2, strings.Count(string(data), "\n"), "the file sees the same filter")
	assert.NotContains(string(data), "quiet")
}

func TestSetLevel(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	console := &bytes.Buffer{}

	logger, err := loggerr.New(&loggerr.Config{Name: "app", Level: "ERROR", Console: console, NoColor: true})
	require.NoError(err)

	assert.NoError(logger.Debug("nope"))
	assert.Empty(console.String())

	// Unknown names are rejected and change nothing.
	assert.ErrorIs(logger.SetLevel("BOGUS"), loggerr.ErrInvalidLevel)
	assert.Equal(loggerr.ErrorLevel, logger.Level())
	assert.NoError(logger.Debug("still nope"))
	assert.Empty(console.String())

	// Names parse case-insensitively.
	assert.NoError(logger.SetLevel("debug"))
	assert.Equal(loggerr.DebugLevel, logger.Level())
	assert.NoError(logger.Debug("finally"))
	assert.Contains(console.String(), "finally")
}

// Ten 20-byte lines against a 100-byte limit and two retained backups:
// rotations happen, the bound holds, and the active file stays small.
func TestRotationScenario(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	logFile := filepath.Join(t.TempDir(), "app.log")
	line := strings.Repeat("a", 19) // plus the terminator: 20 bytes.

	logger, err := loggerr.New(&loggerr.Config{
		Filepath:    logFile,
		FileSize:    100,
		BackupCount: 2,
		Console:     io.Discard,
		Formatter:   rawFormatter{},
	})
	require.NoError(err)

	for i := 0; i < 10; i++ {
		require.NoError(logger.Info(line))
	}

	require.NoError(logger.Close())

	archiveDir := filepath.Join(filepath.Dir(logFile), "archive")
	entries, err := os.ReadDir(archiveDir)
	require.NoError(err)
	assert.NotEmpty(entries, "at least one rotation must have happened")
	assert.LessOrEqual(len(entries), 2, "retention bound")

	info, err := os.Stat(logFile)
	require.NoError(err)
	assert.Less(info.Size(), int64(100))
}

// The append that reaches the limit triggers the rotation; the next append
// lands in the new, empty active file.
func TestRotationBoundary(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	logFile := filepath.Join(t.TempDir(), "app.log")
	line := strings.Repeat("b", 19)

	logger, err := loggerr.New(&loggerr.Config{
		Filepath:    logFile,
		FileSize:    100,
		BackupCount: 3,
		Console:     io.Discard,
		Formatter:   rawFormatter{},
	})
	require.NoError(err)

	for i := 0; i < 5; i++ { // exactly reaches 100 bytes.
		require.NoError(logger.Info(line))
	}

	require.NoError(logger.Info("the sixth line"))
	require.NoError(logger.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(err)
	assert.Equal("the sixth line\n", string(data), "only post-rotation bytes in the active file")
}

func TestRotationDisabled(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	logFile := filepath.Join(t.TempDir(), "app.log")
	line := strings.Repeat("c", 511)

	logger, err := loggerr.New(&loggerr.Config{
		Filepath:  logFile,
		FileSize:  0, // no limit, ever.
		Console:   io.Discard,
		Formatter: rawFormatter{},
	})
	require.NoError(err)

	for i := 0; i < 4096; i++ { // 2MB of lines.
		require.NoError(logger.Info(line))
	}

	require.NoError(logger.Close())

	info, err := os.Stat(logFile)
	require.NoError(err)
	assert.Equal(int64(4096*512), info.Size())

	entries, err := os.ReadDir(filepath.Join(filepath.Dir(logFile), "archive"))
	require.NoError(err)
	assert.Empty(entries, "no rotation may ever fire with no size limit")
}

// Concurrent writers must never tear or interleave partial lines, and each
// goroutine's lines must land in its own order.
func TestConcurrentWriters(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	const (
		writers = 8
		records = 50
	)

	logFile := filepath.Join(t.TempDir(), "app.log")

	logger, err := loggerr.New(&loggerr.Config{
		Filepath:  logFile,
		Console:   io.Discard,
		Formatter: rawFormatter{},
	})
	require.NoError(err)

	var waits sync.WaitGroup

	for w := 0; w < writers; w++ {
		waits.Add(1)

		go func(w int) {
			defer waits.Done()

			for r := 0; r < records; r++ {
				_ = logger.Info(fmt.Sprintf("writer=%02d record=%03d", w, r))
			}
		}(w)
	}

	waits.Wait()
	require.NoError(logger.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(lines, writers*records)

	next := make([]int, writers) // per-writer expected record counter.

	for _, line := range lines {
		var w, r int
		_, err := fmt.Sscanf(line, "writer=%d record=%d", &w, &r)
		require.NoError(err, "torn or merged line: %q", line)
		require.Equal(next[w], r, "writer %d records out of order", w)
		next[w]++
	}
}

// A dead file never silences the console.
func TestWriteErrorStillHitsConsole(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	console := &bytes.Buffer{}

	logger, err := loggerr.New(&loggerr.Config{
		Name:     "app",
		Filepath: filepath.Join(t.TempDir(), "app.log"),
		Console:  console,
		NoColor:  true,
	})
	require.NoError(err)
	require.NoError(logger.Close())

	err = logger.Error("disk trouble")
	assert.ErrorIs(err, sink.ErrClosed, "the file failure comes back to the caller")
	assert.Contains(console.String(), "disk trouble", "the console still got the record")
}

func TestForcedRotate(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	logFile := filepath.Join(t.TempDir(), "app.log")

	logger, err := loggerr.New(&loggerr.Config{
		Filepath:    logFile,
		FileSize:    1024 * 1024, // nowhere near due.
		BackupCount: 3,
		Console:     io.Discard,
		Formatter:   rawFormatter{},
	})
	require.NoError(err)

	require.NoError(logger.Info("before the forced rotation"))
	require.NoError(logger.Rotate())
	require.NoError(logger.Info("after"))
	require.NoError(logger.Close())

	data, err := os.ReadFile(logFile)
	require.NoError(err)
	assert.Equal("after\n", string(data))

	entries, err := os.ReadDir(filepath.Join(filepath.Dir(logFile), "archive"))
	require.NoError(err)
	assert.Len(entries, 1)
}

// A custom Rotator sees exactly one Rotate call when the size limit is hit.
func TestRotatorInvocation(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	dir := t.TempDir()
	logFile := filepath.Join(dir, "app.log")

	mockRotator := mocks.NewMockRotator(mockCtrl)
	mockRotator.EXPECT().Dirs(logFile).Return([]string{dir}, nil)

	logger, err := loggerr.New(&loggerr.Config{
		Filepath:  logFile,
		FileSize:  50,
		Console:   io.Discard,
		Formatter: rawFormatter{},
		Rotator:   mockRotator,
	})
	require.NoError(err)

	line := strings.Repeat("d", 10) // 11 bytes per append.
	for i := 0; i < 4; i++ {        // 44 bytes, not due yet.
		require.NoError(logger.Info(line))
	}

	mockRotator.EXPECT().Rotate(logFile).DoAndReturn(func(fileName string) (string, error) {
		return "", os.Remove(fileName) // archive by discarding.
	})
	require.NoError(logger.Info(line)) // 55 >= 50: rotate.
	require.NoError(logger.Close())
}
