package adapter

import (
	"context"

	"github.com/Yates-Labs/automigrate/internal/ingest/local"
	"github.com/spf13/afero"
)

// LocalSource reads a project from a filesystem, usually the working tree on disk
type LocalSource struct {
	fsys       afero.Fs
	location   string
	ignoreDirs []string
}

// NewLocalSource opens the project directory dir
func NewLocalSource(dir string, ignoreDirs []string) (*LocalSource, error) {
	fsys, err := local.OpenProject(dir)
	if err != nil {
		return nil, err
	}
	return NewLocalSourceFs(fsys, dir, ignoreDirs), nil
}

// NewLocalSourceFs wraps an existing filesystem whose root is the project root
func NewLocalSourceFs(fsys afero.Fs, location string, ignoreDirs []string) *LocalSource {
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}
	return &LocalSource{fsys: fsys, location: location, ignoreDirs: ignoreDirs}
}

// Platform returns the local platform identifier
func (s *LocalSource) Platform() SourcePlatform {
	return PlatformLocal
}

// Location returns the project directory
func (s *LocalSource) Location() string {
	return s.location
}

// ReadFile reads a project file
func (s *LocalSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return local.ReadFile(s.fsys, name)
}

// ListFiles walks the project below root
func (s *LocalSource) ListFiles(ctx context.Context, root string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return local.ListFiles(s.fsys, root, s.ignoreDirs)
}
