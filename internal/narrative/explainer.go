package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Yates-Labs/automigrate/internal/advisor"
	"github.com/Yates-Labs/automigrate/internal/report"
)

var ErrExplainFailed = errors.New("migration explanation failed")

// Explanation is a model-written migration note for one checked project,
// kept next to the decision it explains.
type Explanation struct {
	Project     string         `json:"project"`
	Decision    string         `json:"decision"`
	Reason      advisor.Reason `json:"reason,omitempty"`
	Text        string         `json:"text"`
	Model       string         `json:"model"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Explainer asks an LLM to explain a check report
type Explainer struct {
	llm   LLM
	model string
}

func NewExplainer(llm LLM, model string) *Explainer {
	return &Explainer{llm: llm, model: model}
}

// Explain sends prompt, normally AssemblePrompt(r), and returns the reply
// as an Explanation of r. The prompt is not rebuilt here.
func (e *Explainer) Explain(ctx context.Context, r *report.Report, prompt string) (*Explanation, error) {
	if e.llm == nil {
		return nil, fmt.Errorf("%w: no LLM configured", ErrExplainFailed)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %w", ErrExplainFailed, ErrMissingReport)
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: empty prompt for %s", ErrExplainFailed, r.Project)
	}

	text, err := e.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExplainFailed, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: model returned an empty note for %s", ErrExplainFailed, r.Project)
	}

	return &Explanation{
		Project:     r.Project,
		Decision:    r.Decision(),
		Reason:      r.Result.Reason,
		Text:        text,
		Model:       e.model,
		GeneratedAt: time.Now(),
	}, nil
}
