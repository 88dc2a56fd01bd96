// Package filer is an interface used by the loggerr subpackages.
// You may override this to gain more control of file operations in your app,
// or to inject faults in tests.
package filer

//go:generate mockgen -destination=../mocks/filer.go -package=mocks golift.io/loggerr/filer Filer

import (
	"os"
)

// Filer is used to override file-managing procedures.
type Filer interface {
	MkdirAll(path string, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	ReadDir(dirPath string) ([]os.DirEntry, error)
	Remove(fileName string) error
	Stat(fileName string) (os.FileInfo, error)
}

// Default returns a Filer interface that works, using default procedures.
func Default() Filer {
	return &File{}
}

// File can be embedded in a custom type to provide the missing methods for the Filer interface.
type File struct{}

// MkdirAll provides os.MkdirAll.
func (f *File) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// OpenFile provides os.OpenFile.
func (f *File) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// ReadDir provides os.ReadDir.
func (f *File) ReadDir(dirPath string) ([]os.DirEntry, error) {
	return os.ReadDir(dirPath)
}

// Remove provides os.Remove.
func (f *File) Remove(fileName string) error {
	return os.Remove(fileName)
}

// Stat provides os.Stat.
func (f *File) Stat(fileName string) (os.FileInfo, error) {
	return os.Stat(fileName)
}
