package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/automigrate/internal/config"
	"github.com/Yates-Labs/automigrate/internal/logging"
	"github.com/Yates-Labs/automigrate/internal/narrative"
	"github.com/Yates-Labs/automigrate/internal/orchestrator"
	"github.com/Yates-Labs/automigrate/internal/report"
)

var (
	configDir        string
	mainConfigPath   string
	storybookVersion string
	ref              string
	exportFile       string
	outputFormat     string
)

var checkCmd = &cobra.Command{
	Use:   "check [project]",
	Short: "Check whether react can be removed from a Storybook project",
	Long: `Check whether a Storybook 8+ project can drop its react dependency.

The project is a local directory (default "."), a local git repository read at
--ref, or a repository URL. GitHub repositories are read through the API when a
token is configured and cloned otherwise.

The advisory applies when Storybook is 8 or later, react is declared in
package.json, and the framework does not render with react itself. It also
reports whether the docs addon is enabled and whether any story file is MDX.

Examples:
  automigrate check
  automigrate check ./packages/ui --config-dir .storybook
  automigrate check . --ref main --storybook-version 8.1.0
  automigrate check https://github.com/user/repo --export report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addCheckFlags(checkCmd)
	checkCmd.Flags().StringVar(&exportFile, "export", "", "Export the report to a file: --export <filename>")
	checkCmd.Flags().StringVar(&outputFormat, "format", "", "Machine-readable format: json or yaml")
}

// addCheckFlags registers the flags shared by commands that run a check
func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configDir, "config-dir", "", "Storybook config directory relative to the project (default .storybook)")
	cmd.Flags().StringVar(&mainConfigPath, "main", "", "Normalized main config file relative to the project")
	cmd.Flags().StringVar(&storybookVersion, "storybook-version", "", "Storybook version (default: read from package.json)")
	cmd.Flags().StringVar(&ref, "ref", "", "Branch, tag or commit to read instead of the working tree")
}

func runCheck(cmd *cobra.Command, args []string) error {
	project := projectArg(args)

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	r, err := orchestrator.CheckProject(cmd.Context(), project, checkOptions(cfg, logger))
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	out := cmd.OutOrStdout()

	if exportFile != "" {
		return handleExport(out, r, exportFile, outputFormat)
	}
	if outputFormat != "" {
		return report.Export(r, outputFormat, out)
	}

	renderReport(out, r)
	return nil
}

func projectArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// checkOptions merges flag values over the loaded configuration
func checkOptions(cfg *config.Config, logger *logging.Logger) orchestrator.Options {
	opts := orchestrator.Options{
		ConfigDir:        cfg.Project.ConfigDir,
		MainConfigPath:   mainConfigPath,
		StorybookVersion: storybookVersion,
		Ref:              ref,
		Token:            cfg.GitHub.Token,
		Rules:            cfg.Rules,
		IgnoreDirs:       cfg.Project.IgnoreDirs,
		VersionPackages:  cfg.Project.VersionPackages,
		Logger:           logger,
	}
	if configDir != "" {
		opts.ConfigDir = configDir
	}
	return opts
}

func handleExport(out io.Writer, r *report.Report, filename, format string) error {
	if format == "" {
		format = formatFromExtension(filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := report.Export(r, format, file); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(out, "✓ Exported report for %s to %s\n", r.Project, filename)
	return nil
}

func formatFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return string(report.FormatYAML)
	default:
		return string(report.FormatJSON)
	}
}

func renderReport(out io.Writer, r *report.Report) {
	res := r.Result

	row := func(label, value string) {
		fmt.Fprintln(out, labelStyle.Render(label)+valueStyle.Render(value))
	}
	yesNo := func(v bool) string {
		if v {
			return "yes"
		}
		return "no"
	}

	fmt.Fprintln(out, headerStyle.Render("Storybook migration check: remove "+r.Rules.TargetPackage))
	fmt.Fprintln(out)

	row("Project", r.Location)
	row("Source", string(r.Platform))
	if r.MainConfigPath != "" {
		row("Main config", r.MainConfigPath)
	}
	version := r.StorybookVersion
	if version == "" {
		version = "unknown"
	}
	row("Storybook", fmt.Sprintf("%s (%s)", version, r.VersionSource))
	if res.Framework != "" {
		row("Framework", res.Framework)
	}
	if res.DependencyTier != "" {
		row("Declared in", string(res.DependencyTier))
	}
	if res.ShouldPrompt {
		row("Docs addon", yesNo(res.UsesDocsAddon))
		row("MDX files", fmt.Sprintf("%d", len(res.MDXFiles)))
	}
	fmt.Fprintln(out)

	decision := keepStyle.Render(strings.ToUpper(r.Decision()))
	if res.ShouldPrompt {
		decision = removeStyle.Render(strings.ToUpper(r.Decision()))
	}
	fmt.Fprintln(out, decision)
	fmt.Fprintln(out, noteStyle.Render(narrative.DescribeReason(res, r.Rules)))

	if r.Message != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, boxStyle.Render(strings.TrimSpace(r.Message)))
	}
}
