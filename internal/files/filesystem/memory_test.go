package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ FileSystemProvider = (*MemoryFileSystem)(nil)
	_ FileSystemProvider = (*OSFileSystem)(nil)
)

func TestMemoryFileSystem_StatFile(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("/data/import/credit.csv", "a,b\n1,2\n")

	info, err := mfs.Stat("/data/import/credit.csv")
	require.NoError(t, err)
	assert.Equal(t, "credit.csv", info.Name())
	assert.Equal(t, int64(8), info.Size())
	assert.False(t, info.IsDir())
}

func TestMemoryFileSystem_StatImplicitDirectory(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("/data/import/credit.csv", "a\n")

	info, err := mfs.Stat("/data/import")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, info.Mode().IsDir())
}

func TestMemoryFileSystem_StatMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()

	_, err := mfs.Stat("/data/import/credit.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_OpenReadsContent(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("data/x.csv", "h\nv\n")

	rc, err := mfs.Open("./data/x.csv")
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "h\nv\n", string(content))
}

func TestMemoryFileSystem_Remove(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("/x.csv", "h\n")
	mfs.Remove("/x.csv")

	_, err := mfs.Open("/x.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
