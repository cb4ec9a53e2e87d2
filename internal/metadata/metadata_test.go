package metadata_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"scribe/internal/metadata"
)

func sampleRecord() *metadata.Record {
	return &metadata.Record{
		ID:        "1234",
		Filename:  "clip.mp4",
		Path:      "/media/clip.mp4",
		Type:      "video",
		Timestamp: "2026-03-14T09:26:53Z",
		Labels:    []string{"meeting"},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := metadata.NewStore(t.TempDir())

	record := sampleRecord()
	record.ApplyTranscripts([]metadata.TranscriptSegment{
		{Start: 0, End: 1.2, Text: "hello", Segment: 0},
		{Start: 1.2, End: 2.5, Text: "world", Segment: 1},
	})
	if err := store.Write(record); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := store.Read("clip.mp4")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if loaded.ID != "1234" || loaded.Type != "video" {
		t.Fatalf("unexpected record: %+v", loaded)
	}
	if len(loaded.Transcripts) != 2 {
		t.Fatalf("expected 2 transcript segments, got %d", len(loaded.Transcripts))
	}
	if loaded.Transcripts[1].Segment != 1 || loaded.Transcripts[1].Text != "world" {
		t.Fatalf("unexpected second segment: %+v", loaded.Transcripts[1])
	}
	if loaded.Transcription != "hello world " {
		t.Fatalf("unexpected transcription body: %q", loaded.Transcription)
	}
}

func TestApplyTranscriptsJoinsInOrder(t *testing.T) {
	record := sampleRecord()
	record.ApplyTranscripts([]metadata.TranscriptSegment{
		{Text: "one", Segment: 0},
		{Text: "", Segment: 1},
		{Text: "three", Segment: 3},
	})
	if record.Transcription != "one  three " {
		t.Fatalf("unexpected transcription: %q", record.Transcription)
	}
}

func TestListSkipsUnreadableEntries(t *testing.T) {
	dir := t.TempDir()
	store := metadata.NewStore(dir)

	first := sampleRecord()
	if err := store.Write(first); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	second := sampleRecord()
	second.Filename = "talk.mp3"
	second.Type = "audio"
	if err := store.Write(second); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := os.WriteFile(store.RecordPath("broken.wav"), []byte("---\n\t: bad yaml\n---\n"), 0o644); err != nil {
		t.Fatalf("write broken record: %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestReadMissingRecord(t *testing.T) {
	store := metadata.NewStore(t.TempDir())
	if _, err := store.Read("nope.mp3"); !errors.Is(err, metadata.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestWrittenFileHasFrontmatterDelimiters(t *testing.T) {
	dir := t.TempDir()
	store := metadata.NewStore(dir)
	if err := store.Write(sampleRecord()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	raw, err := os.ReadFile(store.RecordPath("clip.mp4"))
	if err != nil {
		t.Fatalf("read raw record: %v", err)
	}
	text := string(raw)
	if !strings.HasPrefix(text, "---\n") || !strings.Contains(text, "\n---\n") {
		t.Fatalf("expected frontmatter delimiters, got:\n%s", text)
	}
	if !strings.Contains(text, "filename: clip.mp4") {
		t.Fatalf("expected filename in frontmatter, got:\n%s", text)
	}
}
