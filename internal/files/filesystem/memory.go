package filesystem

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory entries
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

func (f *memoryFileInfo) Mode() fs.FileMode {
	if f.isDir {
		return fs.ModeDir | 0755
	}
	return 0644
}

// MemoryFileSystem is an in-memory FileSystemProvider for tests.
// Paths are slash-separated; parent directories exist implicitly.
// Safe for concurrent use.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	mtime time.Time
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		mtime: time.Now(),
	}
}

// AddFile stores content at filePath, replacing any previous content.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[path.Clean(filePath)] = []byte(content)
}

// Remove deletes the file at filePath if present.
func (mfs *MemoryFileSystem) Remove(filePath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	delete(mfs.files, path.Clean(filePath))
}

func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	clean := path.Clean(statPath)
	if content, ok := mfs.files[clean]; ok {
		return &memoryFileInfo{name: path.Base(clean), size: int64(len(content)), modTime: mfs.mtime}, nil
	}

	prefix := strings.TrimSuffix(clean, "/") + "/"
	for p := range mfs.files {
		if strings.HasPrefix(p, prefix) {
			return &memoryFileInfo{name: path.Base(clean), modTime: mfs.mtime, isDir: true}, nil
		}
	}

	return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
}

func (mfs *MemoryFileSystem) Open(openPath string) (io.ReadCloser, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	content, ok := mfs.files[path.Clean(openPath)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: openPath, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}
