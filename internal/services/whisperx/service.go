package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"scribe/internal/fileutil"
)

// Service runs WhisperX inside a container against a staged audio file.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config) *Service {
	if cfg.Runtime == "" {
		cfg.Runtime = DefaultRuntime
	}
	if cfg.Image == "" {
		cfg.Image = DefaultImage
	}
	if cfg.ComputeType == "" {
		cfg.ComputeType = DefaultComputeType
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Segment is one transcribed utterance from the WhisperX JSON output.
// Index is the element's 0-based position in the recognizer output and is
// preserved even when surrounding elements were dropped during decoding.
type Segment struct {
	Start float64
	End   float64
	Text  string
	Index int
}

// Transcribe stages the audio file into a fresh scratch directory, runs the
// recognizer container against it, and decodes the first JSON document the
// tool produced. The scratch directory is removed on all exit paths.
//
// Individual segments that do not carry numeric start/end and string text
// are skipped; a response without a segments array fails the whole call.
func (s *Service) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	scratchDir, err := os.MkdirTemp("", "whisperx")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratchDir)

	// The container runs as a different UID; the scratch dir and the staged
	// audio must be writable for the recognizer's output files.
	if err := os.Chmod(scratchDir, 0o777); err != nil {
		return nil, fmt.Errorf("chmod scratch directory: %w", err)
	}

	audioName := filepath.Base(audioPath)
	if err := fileutil.CopyFileMode(audioPath, filepath.Join(scratchDir, audioName), 0o666); err != nil {
		return nil, fmt.Errorf("stage audio file: %w", err)
	}

	args := s.buildArgs(scratchDir, audioName)
	if err := s.run(ctx, args...); err != nil {
		return nil, fmt.Errorf("whisperx: %w", err)
	}

	jsonPath, err := findJSONOutput(scratchDir)
	if err != nil {
		return nil, err
	}
	return decodeSegments(jsonPath)
}

func (s *Service) buildArgs(scratchDir, audioName string) []string {
	return []string{
		"run",
		"--rm",
		"-v", scratchDir + ":/app:Z",
		s.cfg.Image,
		"--",
		"--output_format", OutputFormat,
		"--compute_type", s.cfg.ComputeType,
		audioName,
	}
}

func (s *Service) run(ctx context.Context, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, s.cfg.Runtime, args...)
	}
	cmd := exec.CommandContext(ctx, s.cfg.Runtime, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", s.cfg.Runtime, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// findJSONOutput locates the first .json file in dir. The recognizer's
// output naming is not otherwise assumed.
func findJSONOutput(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read recognizer output directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".json") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no JSON output produced by recognizer")
}

func decodeSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read recognizer output: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse recognizer output: %w", err)
	}

	raw, ok := payload["segments"].([]any)
	if !ok {
		return nil, fmt.Errorf("recognizer output missing segments array")
	}

	segments := make([]Segment, 0, len(raw))
	for i, element := range raw {
		fields, ok := element.(map[string]any)
		if !ok {
			continue
		}
		start, startOK := fields["start"].(float64)
		end, endOK := fields["end"].(float64)
		text, textOK := fields["text"].(string)
		if !startOK || !endOK || !textOK {
			continue
		}
		segments = append(segments, Segment{Start: start, End: end, Text: text, Index: i})
	}
	return segments, nil
}
