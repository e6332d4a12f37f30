package github

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/google/go-github/v77/github"
)

// ErrTreeTruncated is returned when GitHub could not list a tree in one response
var ErrTreeTruncated = errors.New("repository tree listing truncated")

// NewClient creates a GitHub API client with authentication
// token: GitHub personal access token (empty for anonymous access)
func NewClient(token string) *github.Client {
	client := github.NewClient(nil)
	if token == "" {
		return client
	}
	return client.WithAuthToken(token)
}

// GetRepository fetches repository metadata and fills Ref with the default
// branch when ref is empty
func GetRepository(ctx context.Context, client *github.Client, owner, repo, ref string) (*Repository, error) {
	ghRepo, _, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	r := &Repository{
		Owner:         owner,
		Name:          repo,
		Ref:           ref,
		DefaultBranch: ghRepo.GetDefaultBranch(),
		HTMLURL:       ghRepo.GetHTMLURL(),
	}
	if r.Ref == "" {
		r.Ref = r.DefaultBranch
	}
	return r, nil
}

// GetFileContent returns the decoded contents of a file at the repository ref.
// Missing files report an error wrapping fs.ErrNotExist.
func GetFileContent(ctx context.Context, client *github.Client, repo *Repository, name string) ([]byte, error) {
	name = strings.TrimPrefix(path.Clean(name), "./")

	opts := &github.RepositoryContentGetOptions{Ref: repo.Ref}
	file, dir, resp, err := client.Repositories.GetContents(ctx, repo.Owner, repo.Name, name, opts)
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contents of %s: %w", name, err)
	}
	if file == nil || dir != nil {
		return nil, fmt.Errorf("%s is a directory: %w", name, fs.ErrNotExist)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return []byte(content), nil
}

// ListTree lists every file (blob) of the repository ref recursively
func ListTree(ctx context.Context, client *github.Client, repo *Repository) ([]TreeEntry, error) {
	tree, _, err := client.Git.GetTree(ctx, repo.Owner, repo.Name, repo.Ref, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get tree: %w", err)
	}
	if tree.GetTruncated() {
		return nil, fmt.Errorf("%w: %s/%s@%s", ErrTreeTruncated, repo.Owner, repo.Name, repo.Ref)
	}

	entries := make([]TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		entries = append(entries, TreeEntry{
			Path: entry.GetPath(),
			SHA:  entry.GetSHA(),
			Size: entry.GetSize(),
		})
	}
	return entries, nil
}
