package adapter

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
)

func commitFiles(t *testing.T, dir string, wt *gogit.Worktree, files map[string]string, message string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("Failed to add %s: %v", name, err)
		}
	}
	_, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Alice", Email: "alice@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}
}

func TestOpenGitSource_ReadsCommittedTree(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init repository: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	commitFiles(t, dir, wt, map[string]string{
		"package.json":         `{"devDependencies":{"react":"18.2.0"}}`,
		".storybook/main.json": `{"framework":"@storybook/vue3-vite","stories":["../src/**/*.mdx"]}`,
		"src/Intro.mdx":        "# Intro",
	}, "add storybook")

	// Uncommitted changes are not visible through the git source
	if err := os.WriteFile(filepath.Join(dir, "src", "Draft.mdx"), []byte("draft"), 0o644); err != nil {
		t.Fatalf("Failed to write draft: %v", err)
	}

	source, err := OpenGitSource(dir, "", nil)
	if err != nil {
		t.Fatalf("OpenGitSource failed: %v", err)
	}
	if source.Platform() != PlatformGit {
		t.Errorf("Expected platform git, got %s", source.Platform())
	}
	if !strings.HasPrefix(source.Location(), dir+"@") {
		t.Errorf("Unexpected location %s", source.Location())
	}
	if source.Snapshot().LocalPath != dir {
		t.Errorf("Expected local path %s, got %s", dir, source.Snapshot().LocalPath)
	}

	files, err := NewGlobLister(source).List(context.Background(), []string{"../src/**/*.mdx"}, ".storybook")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(files) != 1 || files[0] != "src/Intro.mdx" {
		t.Errorf("Expected [src/Intro.mdx], got %v", files)
	}

	_, err = source.ReadFile(context.Background(), "src/Draft.mdx")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist for uncommitted file, got %v", err)
	}
}

func TestOpenGitSource_InvalidPath(t *testing.T) {
	_, err := OpenGitSource(filepath.Join(t.TempDir(), "missing"), "", nil)
	if err == nil {
		t.Error("Expected error for a path that is neither a repository nor a URL")
	}
}
