// Package advisor decides whether a project should be prompted to drop a
// runtime dependency the host tool no longer needs.
//
// The check is a pure function of its Input: it holds no state, performs no
// writes, and only calls the PackageRetriever and FileLister it is given.
package advisor

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Advisor evaluates the remove-dependency advisory under a set of Rules
type Advisor struct {
	rules Rules
}

// New creates an Advisor. Zero-valued rule fields fall back to DefaultRules.
func New(rules Rules) *Advisor {
	defaults := DefaultRules()
	if rules.TargetPackage == "" {
		rules.TargetPackage = defaults.TargetPackage
	}
	if rules.MinimumMajor == 0 {
		rules.MinimumMajor = defaults.MinimumMajor
	}
	if rules.FrameworkExclusions == nil {
		rules.FrameworkExclusions = defaults.FrameworkExclusions
	}
	if rules.DocsAddons == nil {
		rules.DocsAddons = defaults.DocsAddons
	}
	if rules.MDXExtensions == nil {
		rules.MDXExtensions = defaults.MDXExtensions
	}
	return &Advisor{rules: rules}
}

// Rules returns the rules the advisor evaluates
func (a *Advisor) Rules() Rules {
	return a.rules
}

// Check runs the gates in order and stops at the first one that fails:
// host version, dependency presence, framework exclusion. When all pass the
// result recommends removal and carries the docs addon and MDX signals.
func (a *Advisor) Check(ctx context.Context, in Input) (Result, error) {
	var res Result

	major, ok := ParseMajor(in.Version)
	res.MajorVersion = major
	if !ok || major < a.rules.MinimumMajor {
		res.Reason = ReasonVersionBelowMinimum
		return res, nil
	}

	if in.Packages == nil {
		res.Reason = ReasonDependencyAbsent
		return res, nil
	}
	pkg, err := in.Packages.RetrievePackageJSON(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to retrieve package.json: %w", err)
	}
	tier, found := pkg.Find(a.rules.TargetPackage)
	if !found {
		res.Reason = ReasonDependencyAbsent
		return res, nil
	}
	res.DependencyTier = tier

	if in.Main != nil {
		res.Framework = in.Main.Framework.Canonical()
	}
	if a.excludesFramework(res.Framework) {
		res.Reason = ReasonFrameworkRequiresDeps
		return res, nil
	}

	res.ShouldPrompt = true
	res.Reason = ReasonRemovable
	res.UsesDocsAddon = a.usesDocsAddon(in.Main.AddonNames())

	patterns := in.Main.StoryPatterns()
	if len(patterns) == 0 || in.Files == nil {
		return res, nil
	}
	files, err := in.Files.List(ctx, patterns, in.ConfigDir)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list story files: %w", err)
	}
	for _, file := range files {
		if a.isMDX(file) {
			res.MDXFiles = append(res.MDXFiles, file)
		}
	}
	res.UsesMDX = len(res.MDXFiles) > 0

	return res, nil
}

// excludesFramework matches the canonical framework name against the exclusion fragments
func (a *Advisor) excludesFramework(framework string) bool {
	if framework == "" {
		return false
	}
	name := strings.ToLower(framework)
	for _, fragment := range a.rules.FrameworkExclusions {
		fragment = strings.ToLower(strings.TrimSpace(fragment))
		if fragment == "" {
			continue
		}
		if name == fragment || strings.Contains(name, fragment) {
			return true
		}
	}
	return false
}

func (a *Advisor) usesDocsAddon(addons []string) bool {
	for _, addon := range addons {
		if slices.Contains(a.rules.DocsAddons, addon) {
			return true
		}
	}
	return false
}

func (a *Advisor) isMDX(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	for _, candidate := range a.rules.MDXExtensions {
		if ext == strings.ToLower(candidate) {
			return true
		}
	}
	return false
}
