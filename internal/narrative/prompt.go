package narrative

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Yates-Labs/automigrate/internal/advisor"
	"github.com/Yates-Labs/automigrate/internal/report"
)

var (
	ErrMissingReport = errors.New("report required for explanation prompt")
)

// maxPromptFiles caps the MDX files listed in a prompt
const maxPromptFiles = 20

// AdvisoryMessage renders the advisory shown when a check recommends removing
// target. It returns an empty string when the result does not recommend it.
func AdvisoryMessage(result advisor.Result, target string) string {
	if !result.ShouldPrompt {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Storybook %d no longer needs %q installed in projects that do not render with it.\n", result.MajorVersion, target))
	if result.DependencyTier != "" {
		b.WriteString(fmt.Sprintf("Your package.json declares it in %s", result.DependencyTier))
	} else {
		b.WriteString("Your package.json declares it")
	}
	if result.Framework != "" {
		b.WriteString(fmt.Sprintf(" and your framework is %s", result.Framework))
	}
	b.WriteString(". You can remove it unless your own code imports it.\n")

	if result.UsesDocsAddon || result.UsesMDX {
		b.WriteString("\nBefore removing it, check these:\n")
		if result.UsesDocsAddon {
			b.WriteString("- The docs addon is enabled. It ships its own copy of the renderer, so docs pages keep working.\n")
		}
		if result.UsesMDX {
			b.WriteString(fmt.Sprintf("- %d MDX file(s) were found. MDX that imports %q directly still needs it.\n", len(result.MDXFiles), target))
		}
	}

	return b.String()
}

// DescribeReason explains in one sentence why a check ended the way it did
func DescribeReason(result advisor.Result, rules advisor.Rules) string {
	switch result.Reason {
	case advisor.ReasonVersionBelowMinimum:
		return fmt.Sprintf("Storybook %d or later is required before %s can be removed.", rules.MinimumMajor, rules.TargetPackage)
	case advisor.ReasonDependencyAbsent:
		return fmt.Sprintf("No dependency tier declares %s.", rules.TargetPackage)
	case advisor.ReasonFrameworkRequiresDeps:
		return fmt.Sprintf("The %s framework renders with %s itself.", result.Framework, rules.TargetPackage)
	case advisor.ReasonRemovable:
		return fmt.Sprintf("%s is declared but the framework does not need it.", rules.TargetPackage)
	}
	return "The check did not run."
}

// AssemblePrompt builds the LLM prompt explaining a check report
func AssemblePrompt(r *report.Report) (string, error) {
	if r == nil {
		return "", ErrMissingReport
	}

	var b strings.Builder
	res := r.Result

	b.WriteString("You are helping a team upgrade Storybook. ")
	b.WriteString("An automated check decided whether they should remove a dependency Storybook no longer needs. ")
	b.WriteString("Explain the outcome and the next steps for this project.\n\n")

	b.WriteString("# Check Result\n\n")
	b.WriteString(fmt.Sprintf("**Project:** %s\n", r.Project))
	b.WriteString(fmt.Sprintf("**Source:** %s (%s)\n", r.Location, r.Platform))
	b.WriteString(fmt.Sprintf("**Storybook Version:** %s\n", orNA(r.StorybookVersion)))
	b.WriteString(fmt.Sprintf("**Framework:** %s\n", orNA(res.Framework)))
	b.WriteString(fmt.Sprintf("**Decision:** %s\n", r.Decision()))
	b.WriteString(fmt.Sprintf("**Reason:** %s\n", DescribeReason(res, r.Rules)))
	if res.DependencyTier != "" {
		b.WriteString(fmt.Sprintf("**Declared In:** %s\n", res.DependencyTier))
	}
	b.WriteString(fmt.Sprintf("**Uses Docs Addon:** %s\n", yesNo(res.UsesDocsAddon)))
	b.WriteString(fmt.Sprintf("**Uses MDX:** %s\n\n", yesNo(res.UsesMDX)))

	if len(res.MDXFiles) > 0 {
		b.WriteString("**MDX Files:**\n")
		for i, file := range res.MDXFiles {
			if i == maxPromptFiles {
				b.WriteString(fmt.Sprintf("- ... and %d more\n", len(res.MDXFiles)-maxPromptFiles))
				break
			}
			b.WriteString(fmt.Sprintf("- %s\n", file))
		}
		b.WriteString("\n")
	}

	if r.Message != "" {
		b.WriteString("**Advisory Shown To The User:**\n")
		b.WriteString(r.Message)
		b.WriteString("\n")
	}

	b.WriteString("# Task\n\n")
	if res.ShouldPrompt {
		b.WriteString(fmt.Sprintf("Write a short migration note (2-3 paragraphs) explaining why %s can be removed, ", r.Rules.TargetPackage))
		b.WriteString("the command to remove it with the project's package manager, and what to verify afterwards. ")
		b.WriteString("Mention the docs addon and MDX files only if they are marked as used.\n")
	} else {
		b.WriteString(fmt.Sprintf("Write one short paragraph explaining why %s should stay for now ", r.Rules.TargetPackage))
		b.WriteString("and what would have to change before the check recommends removing it.\n")
	}
	b.WriteString("Do not invent details about the project beyond the facts above.\n")

	return b.String(), nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
