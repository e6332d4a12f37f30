package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Yates-Labs/automigrate/internal/narrative"
	"github.com/Yates-Labs/automigrate/internal/orchestrator"
)

var (
	showPrompt bool
	verbose    bool
)

var explainCmd = &cobra.Command{
	Use:   "explain [project]",
	Short: "Explain the check result with an LLM",
	Long: `Run the same check as "automigrate check" and ask an LLM to write a migration
note tailored to the project.

Required environment variables:
  OPENAI_API_KEY     - OpenAI API key (or llm.api_key in the config file)

Examples:
  automigrate explain
  automigrate explain ./apps/docs --storybook-version 8.0.0
  automigrate explain . --show-prompt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
	addCheckFlags(explainCmd)
	explainCmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "Print the prompt instead of calling the LLM")
	explainCmd.Flags().BoolVar(&verbose, "verbose", false, "Show progress")
}

func runExplain(cmd *cobra.Command, args []string) error {
	project := projectArg(args)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	if verbose {
		fmt.Fprintln(out, noteStyle.Render("→ Checking project..."))
	}
	r, err := orchestrator.CheckProject(ctx, project, checkOptions(cfg, logger))
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	prompt, err := narrative.AssemblePrompt(r)
	if err != nil {
		return err
	}
	if showPrompt {
		fmt.Fprintln(out, prompt)
		return nil
	}

	llmConfig := narrative.LLMConfig{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		APIKey:      cfg.LLM.APIKey,
	}
	llm, err := narrative.NewOpenAILLM(llmConfig)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(out, noteStyle.Render(fmt.Sprintf("→ Asking %s...", llmConfig.Model)))
	}
	note, err := narrative.NewExplainer(llm, llmConfig.Model).Explain(ctx, r, prompt)
	if err != nil {
		return fmt.Errorf("failed to generate explanation: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Migration note for %s", r.Location)))
	fmt.Fprintln(out)
	fmt.Fprintln(out, valueStyle.Render(note.Text))
	fmt.Fprintln(out)
	return nil
}
