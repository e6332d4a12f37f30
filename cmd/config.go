package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Yates-Labs/automigrate/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View automigrate configuration",
	Long: `View the effective automigrate configuration.

Without arguments, displays the current configuration after defaults, the
config file and AUTOMIGRATE_* environment variables are applied.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "# Config file: (none - using defaults)")
	}

	// Credentials are never printed
	shown := *cfg
	shown.GitHub.Token = redact(shown.GitHub.Token)
	shown.LLM.APIKey = redact(shown.LLM.APIKey)

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(configView(shown)); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return encoder.Close()
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), config.ConfigFile())
	return nil
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

// configView mirrors config.Config with YAML keys matching the config file
func configView(cfg config.Config) map[string]any {
	return map[string]any{
		"rules": cfg.Rules,
		"project": map[string]any{
			"config_dir":       cfg.Project.ConfigDir,
			"ignore_dirs":      cfg.Project.IgnoreDirs,
			"version_packages": cfg.Project.VersionPackages,
		},
		"logging": map[string]any{
			"level": cfg.Logging.Level,
			"file":  cfg.Logging.File,
		},
		"github": map[string]any{
			"token": cfg.GitHub.Token,
		},
		"llm": map[string]any{
			"model":       cfg.LLM.Model,
			"temperature": cfg.LLM.Temperature,
			"max_tokens":  cfg.LLM.MaxTokens,
			"api_key":     cfg.LLM.APIKey,
		},
	}
}
