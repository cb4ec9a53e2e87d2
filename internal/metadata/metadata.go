package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// TranscriptSegment is one recognized utterance with offsets into the audio.
// Segment preserves the element's 0-based position in the recognizer output,
// even when later elements were dropped during decoding. Speaker and
// Metadata are absent unless a downstream consumer supplies them.
type TranscriptSegment struct {
	Start    float64 `yaml:"start" json:"start"`
	End      float64 `yaml:"end" json:"end"`
	Text     string  `yaml:"text" json:"text"`
	Segment  int     `yaml:"segment" json:"segment"`
	Speaker  string  `yaml:"speaker,omitempty" json:"speaker,omitempty"`
	Metadata string  `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Record is the metadata document stored alongside each uploaded media
// file: YAML frontmatter for the structured fields, Markdown body for the
// flattened transcription text. The upload path creates it; the
// transcription pipeline rewrites it whole with transcripts filled in.
type Record struct {
	ID          string              `yaml:"id" json:"id"`
	Filename    string              `yaml:"filename" json:"filename"`
	Path        string              `yaml:"path" json:"path"`
	Type        string              `yaml:"type" json:"type"`
	Timestamp   string              `yaml:"timestamp" json:"timestamp"`
	Duration    float64             `yaml:"duration,omitempty" json:"duration,omitempty"`
	Labels      []string            `yaml:"labels" json:"labels"`
	Transcripts []TranscriptSegment `yaml:"transcripts,omitempty" json:"transcripts,omitempty"`

	// Transcription lives in the Markdown body, not the frontmatter.
	Transcription string `yaml:"-" json:"transcription"`
}

// ErrRecordNotFound is returned when no metadata record exists for a filename.
var ErrRecordNotFound = errors.New("metadata record not found")

const recordExt = ".md"

// Store reads and writes metadata records in a single directory, one
// Markdown file per media filename.
type Store struct {
	dir string
}

// NewStore creates a metadata store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// RecordPath returns the on-disk path of the record for filename.
func (s *Store) RecordPath(filename string) string {
	return filepath.Join(s.dir, filename+recordExt)
}

// Read loads the record for filename. The Markdown body becomes the
// record's Transcription field.
func (s *Store) Read(filename string) (*Record, error) {
	content, err := os.ReadFile(s.RecordPath(filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, filename)
		}
		return nil, fmt.Errorf("read metadata record: %w", err)
	}

	var record Record
	body, err := frontmatter.Parse(bytes.NewReader(content), &record)
	if err != nil {
		return nil, fmt.Errorf("parse metadata frontmatter: %w", err)
	}
	record.Transcription = string(body)
	return &record, nil
}

// Write persists the whole record: frontmatter from the structured fields,
// body from Transcription. The write is not atomic; this process is the
// record's only writer.
func (s *Store) Write(record *Record) error {
	if record == nil {
		return errors.New("write metadata record: nil record")
	}
	if strings.TrimSpace(record.Filename) == "" {
		return errors.New("write metadata record: filename required")
	}

	encoded, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal metadata frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(encoded)
	buf.WriteString("---\n\n")
	buf.WriteString(record.Transcription)

	if err := os.WriteFile(s.RecordPath(record.Filename), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write metadata record: %w", err)
	}
	return nil
}

// List loads every record in the store directory, sorted by filename.
// Unreadable records are skipped.
func (s *Store) List() ([]*Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read metadata directory: %w", err)
	}

	var records []*Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExt) {
			continue
		}
		record, err := s.Read(strings.TrimSuffix(entry.Name(), recordExt))
		if err != nil {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// ApplyTranscripts replaces the record's transcript segments and recomputes
// the flattened transcription text: every segment's text in segment order,
// each followed by a single space.
func (r *Record) ApplyTranscripts(segments []TranscriptSegment) {
	r.Transcripts = segments
	var fullText strings.Builder
	for _, segment := range segments {
		fullText.WriteString(segment.Text)
		fullText.WriteString(" ")
	}
	r.Transcription = fullText.String()
}
