package adapter

import (
	"context"
)

// SourcePlatform represents where a project is read from
type SourcePlatform string

const (
	PlatformLocal  SourcePlatform = "local"
	PlatformGit    SourcePlatform = "git"
	PlatformGitHub SourcePlatform = "github"
)

// DefaultIgnoreDirs are directory names never searched for story files
var DefaultIgnoreDirs = []string{"node_modules", ".git"}

// Source defines the interface for reading a project regardless of where it lives.
// Paths are slash-separated and relative to the project root.
type Source interface {
	// Platform returns the source platform identifier
	Platform() SourcePlatform

	// Location describes the project, e.g. a directory, a URL or owner/repo@ref
	Location() string

	// ReadFile returns the contents of a file; missing files wrap fs.ErrNotExist
	ReadFile(ctx context.Context, name string) ([]byte, error)

	// ListFiles returns every file under root, skipping ignored directories
	ListFiles(ctx context.Context, root string) ([]string, error)
}
