// Package narrative turns migration check results into text for people.
// AdvisoryMessage renders the fixed advisory shown after a check and
// Explainer asks a language model for a note tailored to the project.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// LLM completes a single prompt. OpenAILLM talks to the API, MockLLM is for tests.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMConfig mirrors the llm section of the automigrate config
type LLMConfig struct {
	Model string

	// Temperature of 0 leaves the provider default
	Temperature float32

	// MaxTokens of 0 leaves the provider default
	MaxTokens int

	// APIKey falls back to OPENAI_API_KEY when empty
	APIKey string

	// BaseURL points at an OpenAI-compatible endpoint; empty uses api.openai.com
	BaseURL string
}

// DefaultLLMConfig is the model setup used for migration notes
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:     "gpt-4o",
		MaxTokens: 1200,
	}
}

// resolve fills the API key from the environment and checks required fields
func (c LLMConfig) resolve() (LLMConfig, error) {
	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.APIKey == "" {
		return c, fmt.Errorf("%w: missing API key (set OPENAI_API_KEY or llm.api_key)", ErrInvalidConfig)
	}
	if c.Model == "" {
		return c, fmt.Errorf("%w: missing model name", ErrInvalidConfig)
	}
	return c, nil
}
