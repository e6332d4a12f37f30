package adapter

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	githubapi "github.com/Yates-Labs/automigrate/internal/github"
	"github.com/Yates-Labs/automigrate/internal/ingest"
	"github.com/google/go-github/v77/github"
)

// GitHubSource reads a project through the GitHub REST API without cloning it
type GitHubSource struct {
	client     *github.Client
	repo       *githubapi.Repository
	ignoreDirs []string

	treeOnce sync.Once
	tree     []githubapi.TreeEntry
	treeErr  error
}

// NewGitHubSource resolves owner/repo at ref (empty means the default branch)
func NewGitHubSource(ctx context.Context, client *github.Client, owner, repo, ref string, ignoreDirs []string) (*GitHubSource, error) {
	r, err := githubapi.GetRepository(ctx, client, owner, repo, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s/%s: %w", owner, repo, err)
	}
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}
	return &GitHubSource{client: client, repo: r, ignoreDirs: ignoreDirs}, nil
}

// Platform returns the GitHub platform identifier
func (s *GitHubSource) Platform() SourcePlatform {
	return PlatformGitHub
}

// Location returns owner/repo@ref
func (s *GitHubSource) Location() string {
	return fmt.Sprintf("%s/%s@%s", s.repo.Owner, s.repo.Name, s.repo.Ref)
}

// ReadFile fetches a file through the contents API
func (s *GitHubSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	return githubapi.GetFileContent(ctx, s.client, s.repo, name)
}

// ListFiles lists blobs below root from a single recursive tree request,
// fetched once per source
func (s *GitHubSource) ListFiles(ctx context.Context, root string) ([]string, error) {
	s.treeOnce.Do(func() {
		s.tree, s.treeErr = githubapi.ListTree(ctx, s.client, s.repo)
	})
	if s.treeErr != nil {
		return nil, s.treeErr
	}

	root = strings.TrimPrefix(path.Clean(root), "./")
	if root == "." || root == "/" {
		root = ""
	}
	var files []string
	for _, entry := range s.tree {
		if root != "" && !strings.HasPrefix(entry.Path, root+"/") {
			continue
		}
		if ingest.InIgnoredDir(entry.Path, s.ignoreDirs) {
			continue
		}
		files = append(files, entry.Path)
	}
	return files, nil
}
