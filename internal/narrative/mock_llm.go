package narrative

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM is a deterministic LLM implementation for testing.
type MockLLM struct {
	// Response is the fixed text returned by Generate.
	// If empty, a response is derived from the prompt.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	// LastPrompt stores the most recent prompt passed to Generate.
	LastPrompt string
}

// NewMockLLM creates a mock LLM with the given fixed response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{Response: response}
}

// NewMockLLMWithError creates a mock LLM that always returns an error.
func NewMockLLMWithError(err error) *MockLLM {
	return &MockLLM{Error: err}
}

// Generate returns the configured response or a deterministic one.
func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt

	if m.Error != nil {
		return "", m.Error
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return generateMockResponse(prompt), nil
}

// generateMockResponse echoes the project and decision found in the prompt
func generateMockResponse(prompt string) string {
	project := promptField(prompt, "**Project:**", "unknown project")
	decision := promptField(prompt, "**Decision:**", "no decision")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Migration note for %s: %s. ", project, decision))
	if strings.Contains(prompt, "**Uses MDX:** yes") {
		b.WriteString("MDX story files were found. ")
	}
	b.WriteString("Review the dependency change before committing it.")
	return b.String()
}

func promptField(prompt, label, fallback string) string {
	idx := strings.Index(prompt, label)
	if idx < 0 {
		return fallback
	}
	rest := prompt[idx+len(label):]
	if end := strings.IndexByte(rest, '\n'); end >= 0 {
		rest = rest[:end]
	}
	if value := strings.TrimSpace(rest); value != "" {
		return value
	}
	return fallback
}
