package report

import (
	"time"

	"github.com/Yates-Labs/automigrate/internal/adapter"
	"github.com/Yates-Labs/automigrate/internal/advisor"
)

// SchemaVersion identifies the layout of exported reports
const SchemaVersion = "1"

// VersionSource records where the Storybook version came from
type VersionSource string

const (
	VersionFromFlag     VersionSource = "flag"
	VersionFromManifest VersionSource = "package.json"
	VersionUnknown      VersionSource = "unknown"
)

// Report is the outcome of checking one project
type Report struct {
	Project          string                 `json:"project" yaml:"project"`
	Location         string                 `json:"location" yaml:"location"`
	Platform         adapter.SourcePlatform `json:"platform" yaml:"platform"`
	ConfigDir        string                 `json:"config_dir" yaml:"config_dir"`
	MainConfigPath   string                 `json:"main_config,omitempty" yaml:"main_config,omitempty"`
	StorybookVersion string                 `json:"storybook_version" yaml:"storybook_version"`
	VersionSource    VersionSource          `json:"version_source" yaml:"version_source"`
	Rules            advisor.Rules          `json:"rules" yaml:"rules"`
	Result           advisor.Result         `json:"result" yaml:"result"`
	Message          string                 `json:"message,omitempty" yaml:"message,omitempty"`
	CheckedAt        time.Time              `json:"checked_at" yaml:"checked_at"`
}

// Decision returns a short label for the outcome
func (r *Report) Decision() string {
	if r.Result.ShouldPrompt {
		return "remove " + r.Rules.TargetPackage
	}
	return "keep " + r.Rules.TargetPackage
}
