package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/config"
	"scribe/internal/metadata"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MediaDir = filepath.Join(base, "media")
	cfg.Paths.MetadataDir = filepath.Join(base, "metadata")
	cfg.Paths.TranscriptsDir = filepath.Join(base, "transcripts")
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Workflow.QueuePollInterval = 1

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WriteMediaFile places a fake media file in the configured media directory.
func WriteMediaFile(t testing.TB, cfg *config.Config, filename string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.MediaDir, filename)
	if err := os.WriteFile(path, []byte("fake media payload"), 0o644); err != nil {
		t.Fatalf("write media file %s: %v", filename, err)
	}
	return path
}

// WriteMetadataRecord persists an initial metadata record the way the
// upload path would, before any transcription ran.
func WriteMetadataRecord(t testing.TB, cfg *config.Config, filename, mediaType string) *metadata.Record {
	t.Helper()
	record := &metadata.Record{
		ID:        "test-" + filename,
		Filename:  filename,
		Path:      "/media/" + filename,
		Type:      mediaType,
		Timestamp: "2026-01-02T15:04:05Z",
		Labels:    []string{},
	}
	if err := metadata.NewStore(cfg.Paths.MetadataDir).Write(record); err != nil {
		t.Fatalf("write metadata record %s: %v", filename, err)
	}
	return record
}

// StubBinaries writes stub executables for the provided names and prepends
// them to PATH, letting pipeline tests run without real external tools.
func StubBinaries(t testing.TB, script string, names ...string) {
	t.Helper()
	binDir := t.TempDir()
	if script == "" {
		script = "#!/bin/sh\nexit 0\n"
	}
	for _, name := range names {
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
