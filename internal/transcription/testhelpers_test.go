package transcription_test

import (
	"context"
	"os"
	"testing"
	"time"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/metadata"
	"scribe/internal/queue"
	"scribe/internal/services/whisperx"
	"scribe/internal/testsupport"
	"scribe/internal/transcription"
)

// fakeExtractor records invocations and writes the destination file like
// ffmpeg would.
type fakeExtractor struct {
	calls []string
	err   error
}

func (f *fakeExtractor) ExtractAudio(ctx context.Context, source, dest string) error {
	f.calls = append(f.calls, source)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, []byte("pcm"), 0o644)
}

// fakeRecognizer returns canned segments and records the audio path it saw.
type fakeRecognizer struct {
	segments  []whisperx.Segment
	err       error
	audioPath string
}

func (f *fakeRecognizer) Transcribe(ctx context.Context, audioPath string) ([]whisperx.Segment, error) {
	f.audioPath = audioPath
	if f.err != nil {
		return nil, f.err
	}
	return f.segments, nil
}

func helloWorldSegments() []whisperx.Segment {
	return []whisperx.Segment{
		{Start: 0.0, End: 1.2, Text: "hello", Index: 0},
		{Start: 1.2, End: 2.5, Text: "world", Index: 1},
	}
}

type pipelineFixture struct {
	cfg        *config.Config
	store      *queue.Store
	markers    *transcription.Markers
	records    *metadata.Store
	extractor  *fakeExtractor
	recognizer *fakeRecognizer
	pipeline   *transcription.Pipeline
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	markers := transcription.NewMarkers(cfg.Paths.TranscriptsDir)
	records := metadata.NewStore(cfg.Paths.MetadataDir)
	extractor := &fakeExtractor{}
	recognizer := &fakeRecognizer{segments: helloWorldSegments()}
	pipeline := transcription.NewPipeline(transcription.PipelineOptions{
		MediaDir:   cfg.Paths.MediaDir,
		StagingDir: cfg.Paths.StagingDir,
		Markers:    markers,
		Records:    records,
		Extractor:  extractor,
		Recognizer: recognizer,
		Logger:     logging.NewNop(),
	})
	return &pipelineFixture{
		cfg:        cfg,
		store:      queue.NewStore(),
		markers:    markers,
		records:    records,
		extractor:  extractor,
		recognizer: recognizer,
		pipeline:   pipeline,
	}
}

func (f *pipelineFixture) newWorker(t *testing.T) *transcription.Worker {
	t.Helper()
	return transcription.NewWorker(f.store, f.pipeline, f.markers, logging.NewNop(), 10*time.Millisecond)
}

// waitForTerminal polls the store until filename reaches a terminal state.
func waitForTerminal(t *testing.T, store *queue.Store, filename string) queue.JobStatus {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		for _, row := range store.Snapshot() {
			if row.Filename == filename && row.Status.IsTerminal() {
				return row
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached a terminal state: %+v", filename, store.Snapshot())
	return queue.JobStatus{}
}
