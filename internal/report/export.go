// Package report holds the result of a migration check and exports it.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Yates-Labs/automigrate/internal/adapter"
	"github.com/Yates-Labs/automigrate/internal/advisor"
)

// ExportFormat represents supported export formats
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ReportExport is a Report flattened for machine consumption
type ReportExport struct {
	SchemaVersion    string                 `json:"schema_version" yaml:"schema_version"`
	Project          string                 `json:"project" yaml:"project"`
	Location         string                 `json:"location" yaml:"location"`
	Platform         adapter.SourcePlatform `json:"platform" yaml:"platform"`
	ConfigDir        string                 `json:"config_dir" yaml:"config_dir"`
	MainConfigPath   string                 `json:"main_config,omitempty" yaml:"main_config,omitempty"`
	StorybookVersion string                 `json:"storybook_version" yaml:"storybook_version"`
	VersionSource    VersionSource          `json:"version_source" yaml:"version_source"`
	TargetPackage    string                 `json:"target_package" yaml:"target_package"`
	Decision         string                 `json:"decision" yaml:"decision"`
	Result           advisor.Result         `json:"result" yaml:"result"`
	MDXFileCount     int                    `json:"mdx_file_count" yaml:"mdx_file_count"`
	Message          string                 `json:"message,omitempty" yaml:"message,omitempty"`
	CheckedAt        time.Time              `json:"checked_at" yaml:"checked_at"`
}

// Export writes the report in the given format (json or yaml, case-insensitive)
func Export(r *Report, format string, writer io.Writer) error {
	exportFormat := ExportFormat(strings.ToLower(strings.TrimSpace(format)))

	export := toExport(r)

	switch exportFormat {
	case FormatJSON:
		return exportJSON(export, writer)
	case FormatYAML:
		return exportYAML(export, writer)
	default:
		return fmt.Errorf("%w: %s (supported: json, yaml)", ErrUnsupportedFormat, format)
	}
}

func toExport(r *Report) ReportExport {
	return ReportExport{
		SchemaVersion:    SchemaVersion,
		Project:          r.Project,
		Location:         r.Location,
		Platform:         r.Platform,
		ConfigDir:        r.ConfigDir,
		MainConfigPath:   r.MainConfigPath,
		StorybookVersion: r.StorybookVersion,
		VersionSource:    r.VersionSource,
		TargetPackage:    r.Rules.TargetPackage,
		Decision:         r.Decision(),
		Result:           r.Result,
		MDXFileCount:     len(r.Result.MDXFiles),
		Message:          r.Message,
		CheckedAt:        r.CheckedAt.UTC(),
	}
}

// exportJSON writes the report as indented JSON
func exportJSON(export ReportExport, writer io.Writer) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

// exportYAML writes the report as YAML
func exportYAML(export ReportExport, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return encoder.Close()
}
