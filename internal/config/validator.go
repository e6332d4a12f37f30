package config

import (
	"fmt"
	"strings"

	"github.com/Yates-Labs/automigrate/internal/logging"
)

// ValidationError describes a single invalid configuration value
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors aggregates every invalid value found by Validate
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns every problem found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(c.Rules.TargetPackage) == "" {
		errs = append(errs, ValidationError{Field: "rules.target_package", Value: c.Rules.TargetPackage, Message: "must not be empty"})
	}
	if c.Rules.MinimumMajor < 1 {
		errs = append(errs, ValidationError{Field: "rules.minimum_major", Value: c.Rules.MinimumMajor, Message: "must be at least 1"})
	}
	for _, ext := range c.Rules.MDXExtensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, ValidationError{Field: "rules.mdx_extensions", Value: ext, Message: "extensions must start with a dot"})
		}
	}
	if strings.TrimSpace(c.Project.ConfigDir) == "" {
		errs = append(errs, ValidationError{Field: "project.config_dir", Value: c.Project.ConfigDir, Message: "must not be empty"})
	}
	if !logging.IsValidLevel(c.Logging.Level) {
		errs = append(errs, ValidationError{Field: "logging.level", Value: c.Logging.Level, Message: "must be one of DEBUG, INFO, WARN, ERROR"})
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, ValidationError{Field: "llm.temperature", Value: c.LLM.Temperature, Message: "must be between 0 and 2"})
	}
	if c.LLM.MaxTokens < 0 {
		errs = append(errs, ValidationError{Field: "llm.max_tokens", Value: c.LLM.MaxTokens, Message: "must not be negative"})
	}

	return errs
}
