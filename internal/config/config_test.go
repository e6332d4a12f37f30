package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Rules.TargetPackage != "react" {
		t.Errorf("Rules.TargetPackage = %q, want %q", cfg.Rules.TargetPackage, "react")
	}
	if cfg.Rules.MinimumMajor != 8 {
		t.Errorf("Rules.MinimumMajor = %d, want 8", cfg.Rules.MinimumMajor)
	}
	if cfg.Project.ConfigDir != ".storybook" {
		t.Errorf("Project.ConfigDir = %q, want %q", cfg.Project.ConfigDir, ".storybook")
	}
	if len(cfg.Project.VersionPackages) == 0 || cfg.Project.VersionPackages[0] != "storybook" {
		t.Errorf("Project.VersionPackages = %v, want storybook first", cfg.Project.VersionPackages)
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config should be valid, got %v", errs)
	}
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
rules:
  minimum_major: 9
  framework_exclusions: [react, nextjs, preact]
project:
  config_dir: config/storybook
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("GITHUB_TOKEN", "env-token")

	SetDefaults()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Rules.MinimumMajor != 9 {
		t.Errorf("Rules.MinimumMajor = %d, want 9", cfg.Rules.MinimumMajor)
	}
	if len(cfg.Rules.FrameworkExclusions) != 3 {
		t.Errorf("Rules.FrameworkExclusions = %v, want 3 entries", cfg.Rules.FrameworkExclusions)
	}
	if cfg.Rules.TargetPackage != "react" {
		t.Errorf("Rules.TargetPackage should keep its default, got %q", cfg.Rules.TargetPackage)
	}
	if cfg.Project.ConfigDir != "config/storybook" {
		t.Errorf("Project.ConfigDir = %q", cfg.Project.ConfigDir)
	}
	if cfg.GitHub.Token != "env-token" {
		t.Errorf("GitHub.Token = %q, want token from GITHUB_TOKEN", cfg.GitHub.Token)
	}
}

func TestLoad_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("rules.minimum_major", 0)
	viper.Set("logging.level", "verbose")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	verrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Errorf("expected 2 validation errors, got %d: %v", len(verrs), verrs)
	}
	if !strings.Contains(err.Error(), "rules.minimum_major") {
		t.Errorf("error should mention rules.minimum_major: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "empty target", mutate: func(c *Config) { c.Rules.TargetPackage = " " }, field: "rules.target_package"},
		{name: "extension without dot", mutate: func(c *Config) { c.Rules.MDXExtensions = []string{"mdx"} }, field: "rules.mdx_extensions"},
		{name: "empty config dir", mutate: func(c *Config) { c.Project.ConfigDir = "" }, field: "project.config_dir"},
		{name: "temperature out of range", mutate: func(c *Config) { c.LLM.Temperature = 3 }, field: "llm.temperature"},
		{name: "negative max tokens", mutate: func(c *Config) { c.LLM.MaxTokens = -1 }, field: "llm.max_tokens"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %v", errs)
			}
			if errs[0].Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, errs[0].Field)
			}
		})
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigDir(); got != filepath.Join("/tmp/xdg", "automigrate") {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got := ConfigFile(); got != filepath.Join("/tmp/xdg", "automigrate", "config.yaml") {
		t.Errorf("ConfigFile() = %q", got)
	}
}
