package mainconfig

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultStoryFiles is the files glob used when a stories specifier omits one
const DefaultStoryFiles = "**/*.@(mdx|stories.@(js|jsx|mjs|ts|tsx))"

// MainConfig is the normalized Storybook main configuration
// Only the fields the migration checks read are modelled; unknown fields are ignored
type MainConfig struct {
	Stories   []StoriesEntry `json:"stories,omitempty" yaml:"stories,omitempty"`
	Addons    []Addon        `json:"addons,omitempty" yaml:"addons,omitempty"`
	Framework *Framework     `json:"framework,omitempty" yaml:"framework,omitempty"`
}

// Framework is either a plain identifier or a descriptor carrying a name
type Framework struct {
	Identifier string
	Descriptor *NamedEntry
}

// NamedEntry is the object form shared by framework and addon descriptors
type NamedEntry struct {
	Name    string         `json:"name" yaml:"name"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Name returns the raw framework name regardless of shape
func (f *Framework) Name() string {
	if f == nil {
		return ""
	}
	if f.Descriptor != nil {
		return f.Descriptor.Name
	}
	return f.Identifier
}

// Canonical returns the framework package name used for rule matching
func (f *Framework) Canonical() string {
	return CanonicalPackageName(f.Name())
}

func (f *Framework) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*f = Framework{Identifier: id}
		return nil
	}
	var desc NamedEntry
	if err := json.Unmarshal(data, &desc); err != nil {
		return fmt.Errorf("framework must be a string or an object with a name: %w", err)
	}
	*f = Framework{Descriptor: &desc}
	return nil
}

func (f Framework) MarshalJSON() ([]byte, error) {
	if f.Descriptor != nil {
		return json.Marshal(f.Descriptor)
	}
	return json.Marshal(f.Identifier)
}

func (f *Framework) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*f = Framework{Identifier: node.Value}
		return nil
	}
	var desc NamedEntry
	if err := node.Decode(&desc); err != nil {
		return fmt.Errorf("framework must be a string or a mapping with a name: %w", err)
	}
	*f = Framework{Descriptor: &desc}
	return nil
}

func (f Framework) MarshalYAML() (interface{}, error) {
	if f.Descriptor != nil {
		return f.Descriptor, nil
	}
	return f.Identifier, nil
}

// Addon is either an addon package name or a descriptor with options
type Addon struct {
	Identifier string
	Descriptor *NamedEntry
}

// Name returns the raw addon name regardless of shape
func (a Addon) Name() string {
	if a.Descriptor != nil {
		return a.Descriptor.Name
	}
	return a.Identifier
}

func (a *Addon) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*a = Addon{Identifier: id}
		return nil
	}
	var desc NamedEntry
	if err := json.Unmarshal(data, &desc); err != nil {
		return fmt.Errorf("addon must be a string or an object with a name: %w", err)
	}
	*a = Addon{Descriptor: &desc}
	return nil
}

func (a Addon) MarshalJSON() ([]byte, error) {
	if a.Descriptor != nil {
		return json.Marshal(a.Descriptor)
	}
	return json.Marshal(a.Identifier)
}

func (a *Addon) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*a = Addon{Identifier: node.Value}
		return nil
	}
	var desc NamedEntry
	if err := node.Decode(&desc); err != nil {
		return fmt.Errorf("addon must be a string or a mapping with a name: %w", err)
	}
	*a = Addon{Descriptor: &desc}
	return nil
}

func (a Addon) MarshalYAML() (interface{}, error) {
	if a.Descriptor != nil {
		return a.Descriptor, nil
	}
	return a.Identifier, nil
}

// StoriesSpecifier is the object form of a stories entry
type StoriesSpecifier struct {
	Directory   string `json:"directory" yaml:"directory"`
	Files       string `json:"files,omitempty" yaml:"files,omitempty"`
	TitlePrefix string `json:"titlePrefix,omitempty" yaml:"titlePrefix,omitempty"`
}

// StoriesEntry is either a glob pattern or a StoriesSpecifier
type StoriesEntry struct {
	Pattern   string
	Specifier *StoriesSpecifier
}

// Glob returns the pattern this entry matches, relative to the config dir
func (s StoriesEntry) Glob() string {
	if s.Specifier == nil {
		return s.Pattern
	}
	files := s.Specifier.Files
	if files == "" {
		files = DefaultStoryFiles
	}
	return path.Join(s.Specifier.Directory, files)
}

func (s *StoriesEntry) UnmarshalJSON(data []byte) error {
	var pattern string
	if err := json.Unmarshal(data, &pattern); err == nil {
		*s = StoriesEntry{Pattern: pattern}
		return nil
	}
	var specifier StoriesSpecifier
	if err := json.Unmarshal(data, &specifier); err != nil {
		return fmt.Errorf("stories entry must be a string or a specifier: %w", err)
	}
	*s = StoriesEntry{Specifier: &specifier}
	return nil
}

func (s StoriesEntry) MarshalJSON() ([]byte, error) {
	if s.Specifier != nil {
		return json.Marshal(s.Specifier)
	}
	return json.Marshal(s.Pattern)
}

func (s *StoriesEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = StoriesEntry{Pattern: node.Value}
		return nil
	}
	var specifier StoriesSpecifier
	if err := node.Decode(&specifier); err != nil {
		return fmt.Errorf("stories entry must be a string or a specifier: %w", err)
	}
	*s = StoriesEntry{Specifier: &specifier}
	return nil
}

func (s StoriesEntry) MarshalYAML() (interface{}, error) {
	if s.Specifier != nil {
		return s.Specifier, nil
	}
	return s.Pattern, nil
}

// StoryPatterns returns the glob of every stories entry in declaration order
func (c *MainConfig) StoryPatterns() []string {
	if c == nil {
		return nil
	}
	patterns := make([]string, 0, len(c.Stories))
	for _, entry := range c.Stories {
		if g := entry.Glob(); g != "" {
			patterns = append(patterns, g)
		}
	}
	return patterns
}

// AddonNames returns the canonical package name of every addon
func (c *MainConfig) AddonNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Addons))
	for _, addon := range c.Addons {
		if name := CanonicalPackageName(addon.Name()); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// CanonicalPackageName reduces a framework or addon reference to its package name.
// Resolved paths such as "/app/node_modules/@storybook/react-vite/preset" become
// "@storybook/react-vite"; bare names pass through with any sub-path removed.
func CanonicalPackageName(ref string) string {
	ref = strings.TrimSpace(strings.ReplaceAll(ref, "\\", "/"))
	if ref == "" {
		return ""
	}
	if idx := strings.LastIndex(ref, "node_modules/"); idx >= 0 {
		ref = ref[idx+len("node_modules/"):]
	} else if strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, ".") {
		// local path outside node_modules, keep as-is for substring rules
		return ref
	}

	parts := strings.Split(ref, "/")
	if strings.HasPrefix(parts[0], "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
