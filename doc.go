// Package loggerr is a leveled, colorized logger with size-triggered log
// rotation and compressed archival. Records print to the console with one
// color per level and, when a file path is configured, append to a plain-text
// log file. Once the file reaches its size limit it is gzipped into an
// archive directory under a time-stamped name, a fresh file takes its place,
// and the oldest backups past the retention count are deleted.
//
// The rotation machinery lives behind two small interfaces so it can be
// swapped without touching the file writer: a Policy decides when a file is
// due (the stock one goes by size), and a Rotator performs the archival (the
// stock one, in the archiver package, gzips and prunes). The included filer
// package lets tests and unusual apps override file-system procedures.
//
// There is no ambient default logger and no process-wide registry: construct
// a Logger and pass it where it is needed. Each Logger owns its file alone;
// coordination between processes, shipping logs anywhere, and structured
// output are all out of scope.
package loggerr
