// Package manifest reads the dependency tiers of a package.json.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrManifestNotFound = errors.New("package.json not found")
	ErrInvalidManifest  = errors.New("invalid package.json")
)

// FileName is the manifest file name at a project root
const FileName = "package.json"

// Parse extracts the name, version and dependency tiers of a package.json
func Parse(data []byte) (*PackageJSON, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidManifest
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrInvalidManifest)
	}

	return &PackageJSON{
		Name:             root.Get("name").String(),
		Version:          root.Get("version").String(),
		Dependencies:     parseTier(root, TierProduction),
		DevDependencies:  parseTier(root, TierDevelopment),
		PeerDependencies: parseTier(root, TierPeer),
	}, nil
}

// parseTier returns nil when the tier is missing or not an object
func parseTier(root gjson.Result, tier Tier) map[string]string {
	value := root.Get(string(tier))
	if !value.IsObject() {
		return nil
	}
	deps := make(map[string]string)
	value.ForEach(func(key, version gjson.Result) bool {
		deps[key.String()] = version.String()
		return true
	})
	return deps
}

// HasDependency reports whether any tier declares the package
func (p *PackageJSON) HasDependency(name string) bool {
	_, ok := p.Find(name)
	return ok
}

// Find returns the first tier, in manifest order, that declares the package
func (p *PackageJSON) Find(name string) (Tier, bool) {
	for _, tier := range Tiers {
		if _, ok := p.Tier(tier)[name]; ok {
			return tier, true
		}
	}
	return "", false
}

// DeclaredVersion returns the version range of the first listed package any
// tier declares, with range operators stripped ("^8.1.0" becomes "8.1.0").
func (p *PackageJSON) DeclaredVersion(names ...string) (string, bool) {
	for _, name := range names {
		for _, tier := range Tiers {
			if v, ok := p.Tier(tier)[name]; ok {
				return StripRange(v), true
			}
		}
	}
	return "", false
}

// StripRange removes the leading operator of a simple semver range
func StripRange(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.IndexAny(v, " |"); i >= 0 {
		v = v[:i]
	}
	return strings.TrimLeft(v, "^~=<>v")
}

// Reader reads a file from a project by slash-separated path
type Reader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// Load reads and parses the package.json at the project root
func Load(ctx context.Context, r Reader) (*PackageJSON, error) {
	data, err := r.ReadFile(ctx, FileName)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrManifestNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	pkg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return pkg, nil
}
