package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// File represents an entry discovered while walking a directory tree.
type File interface {
	// Path returns the absolute path to the entry
	Path() string

	// RelativePath returns the path relative to the walked root
	RelativePath() string

	// Info returns the entry metadata as seen by the walk (symlinks are not followed)
	Info() FileInfo

	// Open opens the entry for streaming reads
	Open() (io.ReadCloser, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory, with symlinks resolved
	Path() string

	// Walk traverses the directory tree, calling the provided function for each file and directory.
	// Errors for individual entries are passed to fn with a nil File; returning nil continues the walk.
	// If the function returns an error, walking stops
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is a factory for creating Directory instances
type FileSystemProvider interface {
	// Open opens a directory at the specified path.
	// A symlink at path is followed so mounted snapshot links can be walked.
	Open(path string) (Directory, error)

	// OpenFile opens a regular file for reading
	OpenFile(path string) (io.ReadCloser, error)

	// Stat returns file information for the given path, following symlinks
	Stat(path string) (FileInfo, error)
}
