// Package main is a simple example app to write logs and watch rotation,
// archival and retention pruning in action.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golift.io/loggerr"
)

// ///////////////////////////////////////////////////////////////////////// //

/* Watch the archive directory while this runs:

   go run ./cmd/exampleapp --max-size 65536 --backup-count 3

   Any flag may come from a YAML config file instead:

   go run ./cmd/exampleapp --config example.yaml
*/

// ///////////////////////////////////////////////////////////////////////// //

const (
	defaultLogFile   = "/tmp/loggerr/example.log"
	defaultLineBytes = 200
	defaultInterval  = 50 * time.Millisecond
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "exampleapp",
		Short:        "emit an endless stream of leveled logs to exercise rotation",
		SilenceUsage: true,
		RunE:         run,
	}

	flags := cmd.Flags()
	flags.String("config", "", "optional YAML config file")
	flags.String("name", "exampleapp", "logger name printed on every record")
	flags.String("file", defaultLogFile, "log file path")
	flags.String("level", "DEBUG", "minimum level: DEBUG, INFO, SUCCESS, WARNING or ERROR")
	flags.Int64("max-size", loggerr.DefaultFileSize, "rotation threshold in bytes; 0 disables rotation")
	flags.Int("backup-count", loggerr.DefaultBackupCount, "retained backups; 0 retains none")
	flags.String("archive-dir", "", "where backups go; default <dir(file)>/archive")
	flags.Duration("interval", defaultInterval, "delay between records")
	flags.Int("line-bytes", defaultLineBytes, "padding bytes per record")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}

	return cmd
}

func run(_ *cobra.Command, _ []string) error {
	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)

		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	logger, err := loggerr.New(&loggerr.Config{
		Name:        viper.GetString("name"),
		Filepath:    viper.GetString("file"),
		Level:       viper.GetString("level"),
		FileSize:    viper.GetInt64("max-size"),
		BackupCount: viper.GetInt("backup-count"),
		ArchiveDir:  viper.GetString("archive-dir"),
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	makeLogs(logger, viper.GetDuration("interval"), viper.GetInt("line-bytes"))

	return nil
}

// makeLogs writes fake records forever, cycling through the five levels.
func makeLogs(logger *loggerr.Logger, interval time.Duration, lineBytes int) {
	emit := []func(string, ...any) error{
		logger.Debug, logger.Info, logger.Success, logger.Warning, logger.Error,
	}
	padding := strings.Repeat("_", lineBytes)

	ticker := time.NewTicker(interval)
	for count := 0; ; count++ {
		<-ticker.C

		if err := emit[count%len(emit)]("record %d %s", count, padding); err != nil {
			fmt.Fprintln(os.Stderr, "log error:", err)
		}
	}
}
