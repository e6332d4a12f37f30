package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Yates-Labs/automigrate/internal/adapter"
	"github.com/Yates-Labs/automigrate/internal/advisor"
)

func createTestReport() *Report {
	return &Report{
		Project:          "./design-system",
		Location:         "./design-system",
		Platform:         adapter.PlatformLocal,
		ConfigDir:        ".storybook",
		MainConfigPath:   ".storybook/main.json",
		StorybookVersion: "8.1.0",
		VersionSource:    VersionFromManifest,
		Rules:            advisor.DefaultRules(),
		Result: advisor.Result{
			ShouldPrompt:  true,
			UsesDocsAddon: true,
			UsesMDX:       true,
			Reason:        advisor.ReasonRemovable,
			MajorVersion:  8,
			Framework:     "@storybook/vue3-vite",
			MDXFiles:      []string{"src/Intro.mdx", "src/Colors.mdx"},
		},
		Message:   "You can remove react.",
		CheckedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer

	if err := Export(createTestReport(), "JSON", &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ReportExport
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if export.SchemaVersion != SchemaVersion {
		t.Errorf("Expected schema version %s, got %s", SchemaVersion, export.SchemaVersion)
	}
	if export.Decision != "remove react" {
		t.Errorf("Expected decision 'remove react', got '%s'", export.Decision)
	}
	if export.MDXFileCount != 2 {
		t.Errorf("Expected 2 MDX files, got %d", export.MDXFileCount)
	}
	if !export.Result.ShouldPrompt || !export.Result.UsesMDX || !export.Result.UsesDocsAddon {
		t.Errorf("Result flags not exported: %+v", export.Result)
	}
	if export.Platform != adapter.PlatformLocal {
		t.Errorf("Expected platform local, got %s", export.Platform)
	}
}

func TestExport_YAML(t *testing.T) {
	report := createTestReport()
	report.Result = advisor.Result{Reason: advisor.ReasonFrameworkRequiresDeps, MajorVersion: 8, Framework: "@storybook/react-vite"}
	var buf bytes.Buffer

	if err := Export(report, "yaml", &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Failed to parse YAML output: %v", err)
	}
	if export["decision"] != "keep react" {
		t.Errorf("Expected decision 'keep react', got %v", export["decision"])
	}
	result, ok := export["result"].(map[string]any)
	if !ok {
		t.Fatalf("Expected result mapping, got %T", export["result"])
	}
	if result["reason"] != string(advisor.ReasonFrameworkRequiresDeps) {
		t.Errorf("Expected reason %s, got %v", advisor.ReasonFrameworkRequiresDeps, result["reason"])
	}
	if result["should_prompt"] != false {
		t.Errorf("Expected should_prompt false, got %v", result["should_prompt"])
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer

	err := Export(createTestReport(), "xml", &buf)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("Nothing should be written for an unsupported format")
	}
}
