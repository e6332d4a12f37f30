package adapter

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// GlobLister resolves story globs against the files of a Source.
// It implements advisor.FileLister.
type GlobLister struct {
	source Source
}

// NewGlobLister creates a lister over source
func NewGlobLister(source Source) *GlobLister {
	return &GlobLister{source: source}
}

// List returns the project-relative paths matching any pattern, sorted.
// Patterns are relative to baseDir; negated patterns and patterns that
// escape the project root match nothing.
func (l *GlobLister) List(ctx context.Context, patterns []string, baseDir string) ([]string, error) {
	matched := make(map[string]bool)
	listed := make(map[string][]string)

	for _, pattern := range patterns {
		resolved, ok := resolvePattern(baseDir, pattern)
		if !ok {
			continue
		}

		matchers, err := compilePattern(resolved)
		if err != nil {
			return nil, fmt.Errorf("invalid stories pattern %q: %w", pattern, err)
		}

		root := staticPrefix(resolved)
		files, seen := listed[root]
		if !seen {
			files, err = l.source.ListFiles(ctx, root)
			if err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", root, err)
			}
			listed[root] = files
		}

		for _, file := range files {
			for _, m := range matchers {
				if m.Match(file) {
					matched[file] = true
					break
				}
			}
		}
	}

	result := make([]string, 0, len(matched))
	for file := range matched {
		result = append(result, file)
	}
	sort.Strings(result)
	return result, nil
}

// resolvePattern joins a pattern to baseDir and cleans it to a project-relative path
func resolvePattern(baseDir, pattern string) (string, bool) {
	pattern = strings.TrimSpace(strings.ReplaceAll(pattern, "\\", "/"))
	if pattern == "" || strings.HasPrefix(pattern, "!") {
		return "", false
	}

	resolved := path.Clean(path.Join(baseDir, pattern))
	resolved = strings.TrimPrefix(resolved, "/")
	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return "", false
	}
	return resolved, true
}

// staticPrefix returns the directory part of a pattern before its first wildcard
func staticPrefix(pattern string) string {
	segments := strings.Split(pattern, "/")
	var static []string
	for _, segment := range segments[:len(segments)-1] {
		if strings.ContainsAny(segment, "*?[{(") {
			break
		}
		static = append(static, segment)
	}
	if len(static) == 0 {
		return "."
	}
	return strings.Join(static, "/")
}

// compilePattern compiles a Storybook-style glob. Extglob groups and "**/"
// (which may match zero directories) are expanded into plain variants, each
// compiled as its own matcher.
func compilePattern(pattern string) ([]glob.Glob, error) {
	expanded, err := expandExtglob(pattern)
	if err != nil {
		return nil, err
	}

	var matchers []glob.Glob
	for _, p := range expanded {
		for _, variant := range globstarVariants(p) {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, err
			}
			matchers = append(matchers, g)
		}
	}
	return matchers, nil
}

// globstarVariants expands every "**/" into "its presence" and "its absence"
func globstarVariants(pattern string) []string {
	idx := strings.Index(pattern, "**/")
	if idx < 0 {
		return []string{pattern}
	}
	head, tail := pattern[:idx], pattern[idx+len("**/"):]

	var variants []string
	for _, rest := range globstarVariants(tail) {
		variants = append(variants, head+"**/"+rest, head+rest)
	}
	return variants
}

// maxExtglobRepeat bounds how many times "+(...)" and "*(...)" groups repeat
const maxExtglobRepeat = 3

// ErrUnsupportedExtglob is returned for extglob forms that cannot be expressed
// as a set of plain globs
var ErrUnsupportedExtglob = errors.New("unsupported extglob")

// expandExtglob rewrites extglob groups into brace alternations. "@(a|b)"
// becomes "{a,b}"; "?(...)" adds a variant without the group; "+(...)" and
// "*(...)" repeat the group up to maxExtglobRepeat times. "!(...)" is rejected.
func expandExtglob(pattern string) ([]string, error) {
	start, end := findExtglob(pattern)
	if start < 0 {
		return []string{pattern}, nil
	}

	op := pattern[start]
	if op == '!' {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtglob, pattern[start:end+1])
	}

	alternatives := splitAlternatives(pattern[start+2 : end])
	group := alternatives[0]
	if len(alternatives) > 1 {
		group = "{" + strings.Join(alternatives, ",") + "}"
	}

	var replacements []string
	switch op {
	case '@':
		replacements = []string{group}
	case '?':
		replacements = []string{"", group}
	case '+', '*':
		if op == '*' {
			replacements = append(replacements, "")
		}
		for n := 1; n <= maxExtglobRepeat; n++ {
			replacements = append(replacements, strings.Repeat(group, n))
		}
	}

	head, tail := pattern[:start], pattern[end+1:]
	var variants []string
	for _, r := range replacements {
		expanded, err := expandExtglob(head + r + tail)
		if err != nil {
			return nil, err
		}
		variants = append(variants, expanded...)
	}
	return variants, nil
}

// findExtglob locates the first extglob group, returning the index of its
// operator and of its closing parenthesis, or -1 when there is none
func findExtglob(pattern string) (int, int) {
	for i := 0; i+1 < len(pattern); i++ {
		if !strings.ContainsRune("@?*+!", rune(pattern[i])) || pattern[i+1] != '(' {
			continue
		}
		depth := 0
		for j := i + 1; j < len(pattern); j++ {
			switch pattern[j] {
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return i, j
				}
			}
		}
		return -1, -1
	}
	return -1, -1
}

// splitAlternatives splits on "|" outside nested groups
func splitAlternatives(inner string) []string {
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '|':
			if depth == 0 {
				parts = append(parts, inner[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, inner[last:])
}
