package transcription

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/metadata"
	"scribe/internal/services"
	"scribe/internal/services/whisperx"
)

// Stage names used to prefix pipeline failures.
const (
	StageClassify  = "classify"
	StageExtract   = "extract"
	StageRecognize = "recognize"
	StageIntegrate = "integrate"
)

// AudioExtractor converts a video file into normalized audio.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, source, dest string) error
}

// SpeechRecognizer produces timestamped segments from an audio file.
type SpeechRecognizer interface {
	Transcribe(ctx context.Context, audioPath string) ([]whisperx.Segment, error)
}

// Pipeline drives one filename through extraction, recognition, and
// integration. It is synchronous; the worker owns scheduling.
type Pipeline struct {
	mediaDir   string
	stagingDir string
	markers    *Markers
	records    *metadata.Store
	extractor  AudioExtractor
	recognizer SpeechRecognizer
	// toolTimeout bounds each external tool invocation. Zero disables the
	// bound, preserving the original stall-on-hang behavior.
	toolTimeout time.Duration
	logger      *slog.Logger
}

// PipelineOptions configures a Pipeline.
type PipelineOptions struct {
	MediaDir    string
	StagingDir  string
	Markers     *Markers
	Records     *metadata.Store
	Extractor   AudioExtractor
	Recognizer  SpeechRecognizer
	ToolTimeout time.Duration
	Logger      *slog.Logger
}

// NewPipeline constructs a transcription pipeline.
func NewPipeline(opts PipelineOptions) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		mediaDir:    opts.MediaDir,
		stagingDir:  opts.StagingDir,
		markers:     opts.Markers,
		records:     opts.Records,
		extractor:   opts.Extractor,
		recognizer:  opts.Recognizer,
		toolTimeout: opts.ToolTimeout,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Process runs the full pipeline for one filename. Any error aborts the
// remaining stages and carries the failing stage's name; the caller records
// it as the job's terminal failure.
func (p *Pipeline) Process(ctx context.Context, filename string) error {
	sourcePath := filepath.Join(p.mediaDir, filename)
	if _, err := os.Stat(sourcePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, StageClassify, "", fmt.Sprintf("file does not exist: %s", sourcePath), nil)
		}
		return services.Wrap(services.ErrTransient, StageClassify, "stat", "", err)
	}

	kind := media.Classify(filename)
	if kind == media.KindUnsupported {
		return services.Wrap(services.ErrValidation, StageClassify, "", fmt.Sprintf("unsupported file type: %s", filename), nil)
	}

	audioPath := sourcePath
	if kind == media.KindVideo {
		audioPath = filepath.Join(p.stagingDir, filename+".wav")
		if err := p.extract(ctx, sourcePath, audioPath); err != nil {
			return err
		}
		defer p.removeScratchAudio(audioPath)
	}

	segments, err := p.recognize(ctx, audioPath)
	if err != nil {
		return err
	}

	if err := p.markers.WriteTranscript(filename, segments); err != nil {
		return services.Wrap(services.ErrTransient, StageRecognize, "persist transcript", "", err)
	}

	return p.integrate(filename, segments)
}

func (p *Pipeline) extract(ctx context.Context, sourcePath, audioPath string) error {
	toolCtx, cancel := p.toolContext(ctx)
	defer cancel()
	if err := p.extractor.ExtractAudio(toolCtx, sourcePath, audioPath); err != nil {
		return services.Wrap(services.ErrExternalTool, StageExtract, "ffmpeg", "", err)
	}
	return nil
}

func (p *Pipeline) recognize(ctx context.Context, audioPath string) ([]metadata.TranscriptSegment, error) {
	toolCtx, cancel := p.toolContext(ctx)
	defer cancel()

	recognized, err := p.recognizer.Transcribe(toolCtx, audioPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, StageRecognize, "whisperx", "", err)
	}

	segments := make([]metadata.TranscriptSegment, 0, len(recognized))
	for _, segment := range recognized {
		segments = append(segments, metadata.TranscriptSegment{
			Start:   segment.Start,
			End:     segment.End,
			Text:    segment.Text,
			Segment: segment.Index,
		})
	}
	return segments, nil
}

func (p *Pipeline) integrate(filename string, segments []metadata.TranscriptSegment) error {
	record, err := p.records.Read(filename)
	if err != nil {
		if errors.Is(err, metadata.ErrRecordNotFound) {
			return services.Wrap(services.ErrNotFound, StageIntegrate, "", "metadata record missing", err)
		}
		return services.Wrap(services.ErrTransient, StageIntegrate, "load record", "", err)
	}

	record.ApplyTranscripts(segments)

	if err := p.records.Write(record); err != nil {
		return services.Wrap(services.ErrTransient, StageIntegrate, "persist record", "", err)
	}
	return nil
}

// removeScratchAudio deletes the extracted WAV. Best effort: downstream
// results stand either way, so a failed removal is only logged.
func (p *Pipeline) removeScratchAudio(audioPath string) {
	if err := os.Remove(audioPath); err != nil {
		p.logger.Warn("failed to remove scratch audio",
			logging.String("path", audioPath),
			logging.Error(err),
		)
	}
}

func (p *Pipeline) toolContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.toolTimeout > 0 {
		return context.WithTimeout(ctx, p.toolTimeout)
	}
	return context.WithCancel(ctx)
}
