package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Yates-Labs/automigrate/internal/advisor"
	"github.com/Yates-Labs/automigrate/internal/adapter"
	"github.com/Yates-Labs/automigrate/internal/logging"
)

// Config represents the complete automigrate configuration
type Config struct {
	Rules   advisor.Rules `mapstructure:"rules"`
	Project ProjectConfig `mapstructure:"project"`
	Logging LoggingConfig `mapstructure:"logging"`
	GitHub  GitHubConfig  `mapstructure:"github"`
	LLM     LLMConfig     `mapstructure:"llm"`
}

// ProjectConfig controls how a project is located and searched
type ProjectConfig struct {
	// ConfigDir is the Storybook config directory relative to the project root (default: ".storybook")
	ConfigDir string `mapstructure:"config_dir"`
	// IgnoreDirs are directory names skipped when listing story files
	IgnoreDirs []string `mapstructure:"ignore_dirs"`
	// VersionPackages are probed, in order, to infer the Storybook version from package.json
	VersionPackages []string `mapstructure:"version_packages"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR (default: WARN)
	Level string `mapstructure:"level"`
	// File receives JSON log lines; empty writes to stderr
	File string `mapstructure:"file"`
}

// GitHubConfig controls access to hosted repositories
type GitHubConfig struct {
	// Token is a personal access token; falls back to GITHUB_TOKEN
	Token string `mapstructure:"token"`
}

// LLMConfig controls the explanation model
type LLMConfig struct {
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	// APIKey falls back to OPENAI_API_KEY
	APIKey string `mapstructure:"api_key"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Rules: advisor.DefaultRules(),
		Project: ProjectConfig{
			ConfigDir:       ".storybook",
			IgnoreDirs:      append([]string(nil), adapter.DefaultIgnoreDirs...),
			VersionPackages: []string{"storybook", "@storybook/cli", "@storybook/core"},
		},
		Logging: LoggingConfig{
			Level: logging.LevelWarn,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o",
			MaxTokens: 1200,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("rules.target_package", defaults.Rules.TargetPackage)
	viper.SetDefault("rules.minimum_major", defaults.Rules.MinimumMajor)
	viper.SetDefault("rules.framework_exclusions", defaults.Rules.FrameworkExclusions)
	viper.SetDefault("rules.docs_addons", defaults.Rules.DocsAddons)
	viper.SetDefault("rules.mdx_extensions", defaults.Rules.MDXExtensions)

	viper.SetDefault("project.config_dir", defaults.Project.ConfigDir)
	viper.SetDefault("project.ignore_dirs", defaults.Project.IgnoreDirs)
	viper.SetDefault("project.version_packages", defaults.Project.VersionPackages)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)

	viper.SetDefault("github.token", "")

	viper.SetDefault("llm.model", defaults.LLM.Model)
	viper.SetDefault("llm.temperature", defaults.LLM.Temperature)
	viper.SetDefault("llm.max_tokens", defaults.LLM.MaxTokens)
	viper.SetDefault("llm.api_key", "")
}

// Load reads the configuration from viper into a Config struct and validates it.
// Credentials left empty are taken from GITHUB_TOKEN and OPENAI_API_KEY.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "automigrate")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".automigrate"
	}
	return filepath.Join(home, ".config", "automigrate")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
