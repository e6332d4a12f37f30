package adapter

import (
	"context"
	"fmt"

	"github.com/Yates-Labs/automigrate/internal/ingest/git"
	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// GitSource reads a project from the tree of a commit
type GitSource struct {
	tree       *object.Tree
	snapshot   *git.Snapshot
	ignoreDirs []string
}

// NewGitSource resolves ref (empty means HEAD) in an opened repository
func NewGitSource(repo *gogit.Repository, location, ref string, ignoreDirs []string) (*GitSource, error) {
	tree, snapshot, err := git.ResolveTree(repo, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	snapshot.URL = location
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}
	return &GitSource{tree: tree, snapshot: snapshot, ignoreDirs: ignoreDirs}, nil
}

// OpenGitSource opens a local repository, or clones a remote one to memory
// when path is not a repository on disk
func OpenGitSource(path, ref string, ignoreDirs []string) (*GitSource, error) {
	localPath := path
	repo, err := git.OpenRepository(path)
	if err != nil {
		localPath = ""
		repo, err = git.CloneRepository(path, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to open or clone repository '%s': %w", path, err)
		}
	}

	source, err := NewGitSource(repo, path, ref, ignoreDirs)
	if err != nil {
		return nil, err
	}
	source.snapshot.LocalPath = localPath
	return source, nil
}

// Platform returns the git platform identifier
func (s *GitSource) Platform() SourcePlatform {
	return PlatformGit
}

// Location returns the repository path or URL with the resolved commit
func (s *GitSource) Location() string {
	return fmt.Sprintf("%s@%s", s.snapshot.URL, s.snapshot.ShortHash)
}

// Snapshot describes the commit files are read from
func (s *GitSource) Snapshot() git.Snapshot {
	return *s.snapshot
}

// ReadFile reads a file from the commit tree
func (s *GitSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return git.ReadFile(s.tree, name)
}

// ListFiles lists the commit tree below root
func (s *GitSource) ListFiles(ctx context.Context, root string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return git.ListFiles(s.tree, root, s.ignoreDirs)
}
