// Package local reads projects from a filesystem through afero so the same code
// serves the working tree on disk and in-memory fixtures.
package local

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// OpenProject returns a filesystem rooted at dir. Paths passed to ReadFile and
// ListFiles are relative to that root.
func OpenProject(dir string) (afero.Fs, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open project %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project %s is not a directory", dir)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), dir), nil
}

// ReadFile reads a slash-separated path relative to the filesystem root.
// Missing files report an error wrapping fs.ErrNotExist.
func ReadFile(fsys afero.Fs, name string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, toFsPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// ListFiles walks root and returns slash-separated file paths relative to the
// filesystem root, skipping directories named in ignoreDirs. A missing root
// yields no files.
func ListFiles(fsys afero.Fs, root string, ignoreDirs []string) ([]string, error) {
	start := toFsPath(root)
	exists, err := afero.DirExists(fsys, start)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !exists {
		return nil, nil
	}

	var files []string
	err = afero.Walk(fsys, start, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if p != start && slices.Contains(ignoreDirs, info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, strings.TrimPrefix(filepath.ToSlash(p), "/"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

// toFsPath maps a project-relative slash path onto the rooted filesystem
func toFsPath(name string) string {
	return filepath.FromSlash(path.Join("/", name))
}
