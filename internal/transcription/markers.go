package transcription

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"scribe/internal/metadata"
)

// Markers manages the durable per-filename terminal-state files in the
// transcripts directory: <filename>.json holds the completed transcript in
// our own integration format, <filename>.failed holds the raw error text.
// The two are mutually exclusive; the discovery scan consults both so
// already-resolved files are never re-enqueued after a restart.
type Markers struct {
	dir string
}

// NewMarkers creates a marker accessor rooted at dir.
func NewMarkers(dir string) *Markers {
	return &Markers{dir: dir}
}

// TranscriptPath returns the completed-transcript marker path for filename.
func (m *Markers) TranscriptPath(filename string) string {
	return filepath.Join(m.dir, filename+".json")
}

// FailedPath returns the failure marker path for filename.
func (m *Markers) FailedPath(filename string) string {
	return filepath.Join(m.dir, filename+".failed")
}

// HasResolution reports whether filename already reached a terminal state
// in a previous run.
func (m *Markers) HasResolution(filename string) bool {
	if _, err := os.Stat(m.TranscriptPath(filename)); err == nil {
		return true
	}
	_, err := os.Stat(m.FailedPath(filename))
	return err == nil
}

// WriteTranscript persists the ordered segment list as the completed marker.
func (m *Markers) WriteTranscript(filename string, segments []metadata.TranscriptSegment) error {
	data, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(m.TranscriptPath(filename), data, 0o644); err != nil {
		return fmt.Errorf("write transcript marker: %w", err)
	}
	return nil
}

// ReadTranscript loads a previously written completed marker.
func (m *Markers) ReadTranscript(filename string) ([]metadata.TranscriptSegment, error) {
	data, err := os.ReadFile(m.TranscriptPath(filename))
	if err != nil {
		return nil, fmt.Errorf("read transcript marker: %w", err)
	}
	var segments []metadata.TranscriptSegment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("parse transcript marker: %w", err)
	}
	return segments, nil
}

// WriteFailure persists the raw error text as the failure marker.
func (m *Markers) WriteFailure(filename, message string) error {
	if err := os.WriteFile(m.FailedPath(filename), []byte(message), 0o644); err != nil {
		return fmt.Errorf("write failure marker: %w", err)
	}
	return nil
}
