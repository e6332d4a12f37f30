package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Yates-Labs/automigrate/internal/advisor"
)

func TestExplainer_Explain(t *testing.T) {
	mockLLM := NewMockLLM("  You can drop react from devDependencies.\n")
	r := createTestReport(removableResult())
	prompt, err := AssemblePrompt(r)
	if err != nil {
		t.Fatalf("unexpected prompt assembly error: %v", err)
	}

	explanation, err := NewExplainer(mockLLM, "test-model").Explain(context.Background(), r, prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if explanation.Project != "acme/ui" {
		t.Errorf("expected project acme/ui, got %s", explanation.Project)
	}
	if explanation.Decision != "remove react" {
		t.Errorf("expected decision remove react, got %s", explanation.Decision)
	}
	if explanation.Text != "You can drop react from devDependencies." {
		t.Errorf("expected trimmed text, got %q", explanation.Text)
	}
	if explanation.Model != "test-model" {
		t.Errorf("expected model test-model, got %s", explanation.Model)
	}
	if explanation.GeneratedAt.IsZero() {
		t.Error("generated timestamp is zero")
	}
	if mockLLM.LastPrompt != prompt {
		t.Error("LLM did not receive the assembled prompt")
	}
}

func TestExplainer_Explain_InvalidInput(t *testing.T) {
	r := createTestReport(removableResult())

	tests := []struct {
		name      string
		explainer *Explainer
		prompt    string
		nilReport bool
	}{
		{name: "nil llm", explainer: NewExplainer(nil, "m"), prompt: "x"},
		{name: "nil report", explainer: NewExplainer(NewMockLLM("note"), "m"), prompt: "x", nilReport: true},
		{name: "blank prompt", explainer: NewExplainer(NewMockLLM("note"), "m"), prompt: "  \n"},
		{name: "empty reply", explainer: NewExplainer(NewMockLLM(" "), "m"), prompt: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := r
			if tt.nilReport {
				input = nil
			}
			_, err := tt.explainer.Explain(context.Background(), input, tt.prompt)
			if !errors.Is(err, ErrExplainFailed) {
				t.Errorf("expected ErrExplainFailed, got %v", err)
			}
		})
	}
}

func TestExplainer_Explain_LLMError(t *testing.T) {
	llmErr := errors.New("API rate limit exceeded")
	explainer := NewExplainer(NewMockLLMWithError(llmErr), "gpt-4o")

	_, err := explainer.Explain(context.Background(), createTestReport(removableResult()), "some prompt")
	if !errors.Is(err, ErrExplainFailed) {
		t.Errorf("expected ErrExplainFailed, got %v", err)
	}
	if !errors.Is(err, llmErr) {
		t.Errorf("expected the LLM error to be wrapped, got %v", err)
	}
}

func TestExplainer_KeepDecision(t *testing.T) {
	r := createTestReport(advisor.Result{Reason: advisor.ReasonVersionBelowMinimum, MajorVersion: 7})
	prompt, err := AssemblePrompt(r)
	if err != nil {
		t.Fatalf("unexpected prompt assembly error: %v", err)
	}

	explanation, err := NewExplainer(&MockLLM{}, "gpt-4o").Explain(context.Background(), r, prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if explanation.Decision != "keep react" || explanation.Reason != advisor.ReasonVersionBelowMinimum {
		t.Errorf("expected keep react / version_below_minimum, got %s / %s", explanation.Decision, explanation.Reason)
	}
	if !strings.Contains(explanation.Text, "keep react") {
		t.Errorf("expected keep decision in the note, got %s", explanation.Text)
	}
}

func TestMockLLM_Generate(t *testing.T) {
	tests := []struct {
		name     string
		mock     *MockLLM
		prompt   string
		wantErr  bool
		wantText string
	}{
		{
			name:     "fixed response",
			mock:     NewMockLLM("Fixed text"),
			prompt:   "Any prompt",
			wantText: "Fixed text",
		},
		{
			name:    "error response",
			mock:    NewMockLLMWithError(errors.New("mock error")),
			prompt:  "Any prompt",
			wantErr: true,
		},
		{
			name:     "auto-generated response",
			mock:     &MockLLM{},
			prompt:   "**Project:** ./web\n**Decision:** keep react\n",
			wantText: "Migration note for ./web: keep react",
		},
		{
			name:     "auto-generated without fields",
			mock:     &MockLLM{},
			prompt:   "nothing useful",
			wantText: "unknown project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := tt.mock.Generate(context.Background(), tt.prompt)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantText != "" && !strings.Contains(text, tt.wantText) {
				t.Errorf("expected text to contain %q, got %q", tt.wantText, text)
			}
			if tt.mock.LastPrompt != tt.prompt {
				t.Errorf("expected LastPrompt to be %q, got %q", tt.prompt, tt.mock.LastPrompt)
			}
		})
	}
}
