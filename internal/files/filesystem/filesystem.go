package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider is the minimal set of file operations the tool performs.
// No locking is assumed.
type FileSystemProvider interface {
	// ReadFile reads a whole file.
	ReadFile(path string) ([]byte, error)

	// WriteFile creates or truncates a file with the given content.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// Exists reports whether a regular file exists at path.
	// Errors other than "not exist" are returned.
	Exists(path string) (bool, error)
}
