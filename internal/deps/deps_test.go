package deps_test

import (
	"testing"

	"scribe/internal/deps"
	"scribe/internal/testsupport"
)

func TestCheckBinariesReportsAvailability(t *testing.T) {
	testsupport.StubBinaries(t, "", "ffmpeg")

	requirements := []deps.Requirement{
		{Name: "ffmpeg", Command: "ffmpeg", Description: "audio extraction"},
		{Name: "container runtime", Command: "definitely-not-installed-runtime", Description: "recognizer"},
		{Name: "unset", Command: "   ", Description: "blank command"},
	}

	results := deps.CheckBinaries(requirements)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected ffmpeg to be available: %+v", results[0])
	}
	if results[1].Available {
		t.Fatalf("expected missing runtime to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail for missing binary")
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected status for blank command: %+v", results[2])
	}
}

func TestRequiredUsesConfiguredCommands(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Tools.FFmpeg = "ffmpeg-custom"
	cfg.Tools.ContainerRuntime = "podman-custom"

	requirements := deps.Required(cfg)
	if len(requirements) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(requirements))
	}
	if requirements[0].Command != "ffmpeg-custom" {
		t.Fatalf("unexpected ffmpeg command: %q", requirements[0].Command)
	}
	if requirements[1].Command != "podman-custom" {
		t.Fatalf("unexpected runtime command: %q", requirements[1].Command)
	}
}
