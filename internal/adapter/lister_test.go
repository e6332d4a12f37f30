package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func newMemSource(t *testing.T, files map[string]string) *LocalSource {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fsys, "/"+name, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return NewLocalSourceFs(fsys, "mem", nil)
}

func TestGlobLister_List(t *testing.T) {
	source := newMemSource(t, map[string]string{
		"package.json":                     `{}`,
		".storybook/main.json":             `{}`,
		"src/Button.stories.tsx":           "",
		"src/Intro.mdx":                    "",
		"src/forms/Input.stories.mdx":      "",
		"src/forms/Input.tsx":              "",
		"docs/Changelog.mdx":               "",
		"node_modules/lib/Lib.stories.mdx": "",
	})
	lister := NewGlobLister(source)

	tests := []struct {
		name     string
		patterns []string
		baseDir  string
		expected []string
	}{
		{
			name:     "relative to config dir with extglob",
			patterns: []string{"../src/**/*.stories.@(js|jsx|ts|tsx|mdx)"},
			baseDir:  ".storybook",
			expected: []string{"src/Button.stories.tsx", "src/forms/Input.stories.mdx"},
		},
		{
			name:     "globstar matches zero directories",
			patterns: []string{"src/**/*.mdx"},
			baseDir:  "",
			expected: []string{"src/Intro.mdx", "src/forms/Input.stories.mdx"},
		},
		{
			name:     "multiple patterns are merged and deduplicated",
			patterns: []string{"../src/**/*.mdx", "../**/*.mdx"},
			baseDir:  ".storybook",
			expected: []string{"docs/Changelog.mdx", "src/Intro.mdx", "src/forms/Input.stories.mdx"},
		},
		{
			name:     "nested extglob from default specifier",
			patterns: []string{"../src/forms/**/*.@(mdx|stories.@(js|jsx|mjs|ts|tsx))"},
			baseDir:  ".storybook",
			expected: []string{"src/forms/Input.stories.mdx"},
		},
		{
			name:     "negated and escaping patterns match nothing",
			patterns: []string{"!../src/**", "../../outside/*.mdx"},
			baseDir:  ".storybook",
			expected: []string{},
		},
		{
			name:     "one-or-more extglob",
			patterns: []string{"../src/**/*.+(mdx|tsx)"},
			baseDir:  ".storybook",
			expected: []string{"src/Button.stories.tsx", "src/Intro.mdx", "src/forms/Input.stories.mdx", "src/forms/Input.tsx"},
		},
		{
			name:     "zero-or-more and optional extglobs",
			patterns: []string{"../src/**/*.*(mdx)", "../docs/Changelog.?(mdx)"},
			baseDir:  ".storybook",
			expected: []string{"docs/Changelog.mdx", "src/Intro.mdx", "src/forms/Input.stories.mdx"},
		},
		{
			name:     "no match",
			patterns: []string{"*.stories.ts"},
			baseDir:  "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := lister.List(context.Background(), tt.patterns, tt.baseDir)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(files) != len(tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, files)
			}
			for i := range files {
				if files[i] != tt.expected[i] {
					t.Errorf("Expected %s at %d, got %s", tt.expected[i], i, files[i])
				}
			}
		})
	}
}

type failingSource struct {
	LocalSource
	err error
}

func (s *failingSource) ListFiles(ctx context.Context, root string) ([]string, error) {
	return nil, s.err
}

func TestGlobLister_PropagatesSourceError(t *testing.T) {
	boom := errors.New("listing failed")
	lister := NewGlobLister(&failingSource{err: boom})

	_, err := lister.List(context.Background(), []string{"src/*.mdx"}, "")
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped source error, got %v", err)
	}
}

func TestExpandExtglob(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{input: "*.stories.@(js|ts)", expected: []string{"*.stories.{js,ts}"}},
		{input: "*.@(mdx|stories.@(js|ts))", expected: []string{"*.{mdx,stories.{js,ts}}"}},
		{input: "*.?(mdx)", expected: []string{"*.", "*.mdx"}},
		{input: "*.+(mdx|tsx)", expected: []string{"*.{mdx,tsx}", "*.{mdx,tsx}{mdx,tsx}", "*.{mdx,tsx}{mdx,tsx}{mdx,tsx}"}},
		{input: "*.*(mdx)", expected: []string{"*.", "*.mdx", "*.mdxmdx", "*.mdxmdxmdx"}},
		{input: "a|b.js", expected: []string{"a|b.js"}},
		{input: "plain/*.mdx", expected: []string{"plain/*.mdx"}},
	}

	for _, tt := range tests {
		got, err := expandExtglob(tt.input)
		if err != nil {
			t.Errorf("expandExtglob(%q) failed: %v", tt.input, err)
			continue
		}
		if len(got) != len(tt.expected) {
			t.Errorf("expandExtglob(%q) = %q, expected %q", tt.input, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("expandExtglob(%q)[%d] = %q, expected %q", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestExpandExtglob_Negation(t *testing.T) {
	_, err := expandExtglob("src/*.!(mdx)")
	if !errors.Is(err, ErrUnsupportedExtglob) {
		t.Errorf("Expected ErrUnsupportedExtglob, got %v", err)
	}

	lister := NewGlobLister(newMemSource(t, map[string]string{"src/Intro.mdx": ""}))
	_, err = lister.List(context.Background(), []string{"src/*.!(mdx)"}, "")
	if !errors.Is(err, ErrUnsupportedExtglob) {
		t.Errorf("Expected List to reject the pattern, got %v", err)
	}
}

func TestGlobstarVariants(t *testing.T) {
	variants := globstarVariants("a/**/b/**/*.mdx")
	expected := map[string]bool{
		"a/**/b/**/*.mdx": true,
		"a/b/**/*.mdx":    true,
		"a/**/b/*.mdx":    true,
		"a/b/*.mdx":       true,
	}
	if len(variants) != len(expected) {
		t.Fatalf("Expected %d variants, got %v", len(expected), variants)
	}
	for _, v := range variants {
		if !expected[v] {
			t.Errorf("Unexpected variant %s", v)
		}
	}
}

func TestStaticPrefix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "src/**/*.mdx", expected: "src"},
		{input: "src/components/*.stories.ts", expected: "src/components"},
		{input: "*.stories.ts", expected: "."},
		{input: "**/*.mdx", expected: "."},
		{input: "src/{a,b}/*.mdx", expected: "src"},
	}

	for _, tt := range tests {
		if got := staticPrefix(tt.input); got != tt.expected {
			t.Errorf("staticPrefix(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
