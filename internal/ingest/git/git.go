package git

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/memory"

	"github.com/Yates-Labs/automigrate/internal/ingest"
)

// OpenRepository opens a Git repository from a local path
func OpenRepository(path string) (*git.Repository, error) {
	return git.PlainOpen(path)
}

// CloneRepository clones a Git repository to memory. Only the tip of the
// default branch is fetched unless ref names another revision.
func CloneRepository(url, ref string) (*git.Repository, error) {
	opts := &git.CloneOptions{URL: url}
	if ref == "" {
		opts.Depth = 1
	}
	return git.Clone(memory.NewStorage(), nil, opts)
}

// ResolveTree resolves a revision (branch, tag, hash; empty means HEAD) to its
// commit tree and describes the commit in a Snapshot
func ResolveTree(repo *git.Repository, ref string) (*object.Tree, *Snapshot, error) {
	if ref == "" {
		ref = "HEAD"
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve %s: %w", ref, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get commit %s: %w", hash, err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get tree: %w", err)
	}

	snapshot := &Snapshot{
		Ref:        ref,
		CommitHash: commit.Hash.String(),
		ShortHash:  commit.Hash.String()[:8],
	}
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		snapshot.HeadBranch = head.Name().Short()
	}

	return tree, snapshot, nil
}

// ReadFile returns the contents of a file in a tree.
// Missing files report an error wrapping fs.ErrNotExist.
func ReadFile(tree *object.Tree, name string) ([]byte, error) {
	name = strings.TrimPrefix(path.Clean(name), "./")

	file, err := tree.File(name)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return []byte(contents), nil
}

// ListFiles returns the slash-separated paths of every file in the tree under
// root, skipping any directory whose name is in ignoreDirs
func ListFiles(tree *object.Tree, root string, ignoreDirs []string) ([]string, error) {
	root = strings.TrimPrefix(path.Clean(root), "./")
	if root == "." || root == "/" {
		root = ""
	}

	var files []string
	err := tree.Files().ForEach(func(file *object.File) error {
		if root != "" && file.Name != root && !strings.HasPrefix(file.Name, root+"/") {
			return nil
		}
		if ingest.InIgnoredDir(file.Name, ignoreDirs) {
			return nil
		}
		files = append(files, file.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk tree: %w", err)
	}

	return files, nil
}
