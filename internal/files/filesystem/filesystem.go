package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider gives read-only access to files by path.
type FileSystemProvider interface {
	// Stat returns file information for the given path.
	// A missing path yields an error matching fs.ErrNotExist.
	Stat(path string) (FileInfo, error)

	// Open opens the file at path for reading. The caller closes it.
	Open(path string) (io.ReadCloser, error)
}
