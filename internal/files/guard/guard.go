package guard

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/vvka-141/csvmongo/internal/files/filesystem"
	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// Guard is the existence check run at the START stage.
type Guard struct {
	fsProvider filesystem.FileSystemProvider
}

// NewGuard creates a Guard over the OS filesystem.
func NewGuard() *Guard {
	return NewGuardWithFS(filesystem.NewOSFileSystem())
}

// NewGuardWithFS creates a Guard over the given filesystem.
func NewGuardWithFS(fsProvider filesystem.FileSystemProvider) *Guard {
	return &Guard{fsProvider: fsProvider}
}

// Check returns nil if path is an existing regular file. Otherwise the error
// matches csvmongo.ErrMissingInput and names the path.
func (g *Guard) Check(path string) error {
	info, err := g.fsProvider.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf(`input file %s does not exist: %w

Possible causes:
  - The data volume is not mounted (check the volumes section of docker-compose.yml)
  - The file was renamed or not copied into the import directory
  - Wrong --input path`, path, csvmongo.ErrMissingInput)
		}
		return fmt.Errorf("cannot access input file %s (%v): %w", path, err, csvmongo.ErrMissingInput)
	}

	if info.IsDir() {
		return fmt.Errorf("input path %s is a directory, not a file: %w", path, csvmongo.ErrMissingInput)
	}

	return nil
}
