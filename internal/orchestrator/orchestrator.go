// Package orchestrator wires a project source, its configuration files and the
// advisor into a single migration check.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Yates-Labs/automigrate/internal/adapter"
	"github.com/Yates-Labs/automigrate/internal/advisor"
	githubapi "github.com/Yates-Labs/automigrate/internal/github"
	"github.com/Yates-Labs/automigrate/internal/logging"
	"github.com/Yates-Labs/automigrate/internal/mainconfig"
	"github.com/Yates-Labs/automigrate/internal/manifest"
	"github.com/Yates-Labs/automigrate/internal/narrative"
	"github.com/Yates-Labs/automigrate/internal/report"
)

// DefaultVersionPackages are probed, in order, to infer the Storybook version
var DefaultVersionPackages = []string{"storybook", "@storybook/cli", "@storybook/core"}

// Options controls a single check
type Options struct {
	// ConfigDir is the Storybook config directory relative to the project root
	ConfigDir string

	// MainConfigPath reads the main config from this path instead of probing ConfigDir
	MainConfigPath string

	// StorybookVersion overrides the version inferred from package.json
	StorybookVersion string

	// Ref selects a branch, tag or commit; empty means HEAD or the default branch
	Ref string

	// Token authenticates GitHub API access; falls back to GITHUB_TOKEN
	Token string

	Rules           advisor.Rules
	IgnoreDirs      []string
	VersionPackages []string

	Logger *logging.Logger
}

func (o Options) withDefaults() Options {
	if o.ConfigDir == "" {
		o.ConfigDir = ".storybook"
	}
	if o.Token == "" {
		o.Token = os.Getenv("GITHUB_TOKEN")
	}
	if len(o.VersionPackages) == 0 {
		o.VersionPackages = DefaultVersionPackages
	}
	if o.Logger == nil {
		o.Logger = logging.NopLogger()
	}
	return o
}

// CheckProject runs the remove-dependency check against a project.
// The project can be a local directory, a local git repository (with Ref set)
// or a remote repository URL.
func CheckProject(ctx context.Context, project string, opts Options) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled before check: %w", err)
	}
	opts = opts.withDefaults()
	log := opts.Logger.WithProject(project)

	source, err := OpenSource(ctx, project, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	log.Debug("project opened", "platform", source.Platform(), "location", source.Location())

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled after ingestion: %w", err)
	}

	r, err := CheckSource(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	r.Project = project
	return r, nil
}

// OpenSource picks the Source implementation for a project argument
func OpenSource(ctx context.Context, project string, opts Options) (adapter.Source, error) {
	platform, owner, repo := detectPlatform(project)

	switch platform {
	case adapter.PlatformGitHub:
		if opts.Token != "" && owner != "" && repo != "" {
			client := githubapi.NewClient(opts.Token)
			return adapter.NewGitHubSource(ctx, client, owner, repo, opts.Ref, opts.IgnoreDirs)
		}
		return adapter.OpenGitSource(project, opts.Ref, opts.IgnoreDirs)
	case adapter.PlatformLocal:
		if opts.Ref != "" {
			return adapter.OpenGitSource(project, opts.Ref, opts.IgnoreDirs)
		}
		return adapter.NewLocalSource(project, opts.IgnoreDirs)
	default:
		return adapter.OpenGitSource(project, opts.Ref, opts.IgnoreDirs)
	}
}

// CheckSource runs the check against an already opened source
func CheckSource(ctx context.Context, source adapter.Source, opts Options) (*report.Report, error) {
	opts = opts.withDefaults()
	log := opts.Logger.WithProject(source.Location())

	mainCfg, mainPath, err := mainconfig.Load(ctx, source, opts.ConfigDir, opts.MainConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load main config: %w", err)
	}
	log.Debug("main config loaded", "path", mainPath, "framework", mainCfg.Framework.Canonical())

	var packages advisor.PackageRetriever = adapter.NewPackageRetriever(source)
	version, versionSource := opts.StorybookVersion, report.VersionFromFlag
	if version == "" {
		pkg, err := manifest.Load(ctx, source)
		if err != nil && !errors.Is(err, manifest.ErrManifestNotFound) {
			return nil, fmt.Errorf("failed to resolve storybook version: %w", err)
		}
		packages = preloaded{pkg: pkg, err: err}
		version, versionSource = resolveVersion(pkg, err, opts.VersionPackages)
		log.Debug("storybook version resolved", "version", version, "source", versionSource)
	}

	adv := advisor.New(opts.Rules)
	result, err := adv.Check(ctx, advisor.Input{
		Version:   version,
		Packages:  packages,
		Main:      mainCfg,
		ConfigDir: opts.ConfigDir,
		Files:     adapter.NewGlobLister(source),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	logGates(log, result, adv.Rules())

	r := &report.Report{
		Project:          source.Location(),
		Location:         source.Location(),
		Platform:         source.Platform(),
		ConfigDir:        opts.ConfigDir,
		MainConfigPath:   mainPath,
		StorybookVersion: version,
		VersionSource:    versionSource,
		Rules:            adv.Rules(),
		Result:           result,
		Message:          narrative.AdvisoryMessage(result, adv.Rules().TargetPackage),
		CheckedAt:        time.Now(),
	}
	log.Info("check complete", "decision", r.Decision(), "reason", result.Reason)

	return r, nil
}

// resolveVersion infers the Storybook version from the manifest. Only a missing
// manifest reaches here as an error; it leaves the version unknown so the
// version gate fails first.
func resolveVersion(pkg *manifest.PackageJSON, err error, packages []string) (string, report.VersionSource) {
	if err != nil {
		return "", report.VersionUnknown
	}
	if v, ok := pkg.DeclaredVersion(packages...); ok {
		return v, report.VersionFromManifest
	}
	return "", report.VersionUnknown
}

// logGates records how far the check got before deciding
func logGates(log *logging.Logger, result advisor.Result, rules advisor.Rules) {
	log.Debug("version gate",
		"major", result.MajorVersion,
		"minimum", rules.MinimumMajor,
		"passed", result.Reason != advisor.ReasonVersionBelowMinimum)
	if result.Reason == advisor.ReasonVersionBelowMinimum {
		return
	}
	log.Debug("dependency gate",
		"package", rules.TargetPackage,
		"tier", result.DependencyTier,
		"passed", result.Reason != advisor.ReasonDependencyAbsent)
	if result.Reason == advisor.ReasonDependencyAbsent {
		return
	}
	log.Debug("framework gate",
		"framework", result.Framework,
		"passed", result.Reason != advisor.ReasonFrameworkRequiresDeps)
	if result.ShouldPrompt {
		log.Debug("removal signals", "docs_addon", result.UsesDocsAddon, "mdx_files", len(result.MDXFiles))
	}
}

// preloaded serves a manifest that was already read while resolving the version
type preloaded struct {
	pkg *manifest.PackageJSON
	err error
}

func (p preloaded) RetrievePackageJSON(ctx context.Context) (*manifest.PackageJSON, error) {
	return p.pkg, p.err
}

// IsNotFound reports whether err means the project lacks a file the check needs
func IsNotFound(err error) bool {
	return errors.Is(err, mainconfig.ErrMainConfigNotFound) || errors.Is(err, manifest.ErrManifestNotFound)
}
