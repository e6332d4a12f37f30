// Package mainconfig models the normalized Storybook main configuration that
// migration checks read. Evaluating main.js/main.ts is left to the caller; this
// package consumes the JSON or YAML snapshot that evaluation produces.
package mainconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrMainConfigNotFound = errors.New("main config not found")
	ErrUnsupportedFormat  = errors.New("unsupported main config format")
)

// CandidateFiles lists the file names probed inside a config dir, in order
var CandidateFiles = []string{"main.json", "main.yaml", "main.yml"}

// FileReader reads a file from a project by slash-separated path
type FileReader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
}

// Parse decodes a main config. Format is "json", "yaml" or "yml"; an empty
// format is inferred from the first non-space byte.
func Parse(data []byte, format string) (*MainConfig, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		format = detectFormat(data)
	}

	var cfg MainConfig
	switch format {
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse main config as JSON: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse main config as YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return &cfg, nil
}

func detectFormat(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return "json"
	}
	return "yaml"
}

// Load reads the main config of a project. When explicit is set it is read
// directly; otherwise each of CandidateFiles is tried inside configDir.
// Returns the config and the path it was read from.
func Load(ctx context.Context, r FileReader, configDir, explicit string) (*MainConfig, string, error) {
	candidates := []string{explicit}
	if explicit == "" {
		candidates = candidates[:0]
		for _, name := range CandidateFiles {
			candidates = append(candidates, path.Join(configDir, name))
		}
	}

	for _, candidate := range candidates {
		data, err := r.ReadFile(ctx, candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", candidate, err)
		}
		cfg, err := Parse(data, path.Ext(candidate))
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", candidate, err)
		}
		return cfg, candidate, nil
	}

	return nil, "", fmt.Errorf("%w: tried %s", ErrMainConfigNotFound, strings.Join(candidates, ", "))
}
