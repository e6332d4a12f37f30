package advisor

import (
	"context"

	"github.com/Yates-Labs/automigrate/internal/mainconfig"
	"github.com/Yates-Labs/automigrate/internal/manifest"
)

// Reason records which step of the check decided the outcome
type Reason string

const (
	ReasonVersionBelowMinimum   Reason = "version_below_minimum"
	ReasonDependencyAbsent      Reason = "dependency_absent"
	ReasonFrameworkRequiresDeps Reason = "framework_requires_dependency"
	ReasonRemovable             Reason = "removable"
)

// PackageRetriever returns the project's package manifest.
// A nil manifest with a nil error is treated as a manifest with no tiers.
type PackageRetriever interface {
	RetrievePackageJSON(ctx context.Context) (*manifest.PackageJSON, error)
}

// FileLister resolves story globs, relative to baseDir, into file paths
type FileLister interface {
	List(ctx context.Context, patterns []string, baseDir string) ([]string, error)
}

// Rules configures what the advisor looks for
type Rules struct {
	// TargetPackage is the runtime dependency the advisory proposes to remove
	TargetPackage string `json:"target_package" yaml:"target_package" mapstructure:"target_package"`

	// MinimumMajor is the first host major version that no longer needs the dependency
	MinimumMajor uint64 `json:"minimum_major" yaml:"minimum_major" mapstructure:"minimum_major"`

	// FrameworkExclusions are fragments of framework package names that require
	// the dependency themselves (matched by exact name or substring)
	FrameworkExclusions []string `json:"framework_exclusions" yaml:"framework_exclusions" mapstructure:"framework_exclusions"`

	// DocsAddons are addon package names that bring in the docs addon
	DocsAddons []string `json:"docs_addons" yaml:"docs_addons" mapstructure:"docs_addons"`

	// MDXExtensions are story file extensions that indicate MDX authoring
	MDXExtensions []string `json:"mdx_extensions" yaml:"mdx_extensions" mapstructure:"mdx_extensions"`
}

// DefaultRules returns the rules of the remove-react-dependency migration
func DefaultRules() Rules {
	return Rules{
		TargetPackage:       "react",
		MinimumMajor:        8,
		FrameworkExclusions: []string{"react", "nextjs"},
		DocsAddons:          []string{"@storybook/addon-docs", "@storybook/addon-essentials"},
		MDXExtensions:       []string{".mdx"},
	}
}

// Input is everything a single check reads
type Input struct {
	// Version is the host Storybook version, e.g. "8.0.0"
	Version string

	// Packages retrieves the dependency tiers
	Packages PackageRetriever

	// Main is the normalized main configuration; nil means empty
	Main *mainconfig.MainConfig

	// ConfigDir is the directory story globs are relative to
	ConfigDir string

	// Files lists story files; only invoked when the advisory applies
	Files FileLister
}

// Result is the outcome of a check
type Result struct {
	ShouldPrompt  bool   `json:"should_prompt" yaml:"should_prompt"`
	UsesDocsAddon bool   `json:"uses_docs_addon" yaml:"uses_docs_addon"`
	UsesMDX       bool   `json:"uses_mdx" yaml:"uses_mdx"`
	Reason        Reason `json:"reason" yaml:"reason"`

	// Diagnostics
	MajorVersion   uint64        `json:"major_version" yaml:"major_version"`
	Framework      string        `json:"framework,omitempty" yaml:"framework,omitempty"`
	DependencyTier manifest.Tier `json:"dependency_tier,omitempty" yaml:"dependency_tier,omitempty"`
	MDXFiles       []string      `json:"mdx_files,omitempty" yaml:"mdx_files,omitempty"`
}
