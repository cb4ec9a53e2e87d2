package transcription

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"scribe/internal/logging"
	"scribe/internal/queue"
)

// Worker drains the job store and drives each filename through the
// pipeline. Exactly one worker runs per process: jobs are strictly serial
// and at most one is in flight at a time.
type Worker struct {
	store        *queue.Store
	pipeline     *Pipeline
	markers      *Markers
	logger       *slog.Logger
	pollInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewWorker constructs a worker over the given store and pipeline.
func NewWorker(store *queue.Store, pipeline *Pipeline, markers *Markers, logger *slog.Logger, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &Worker{
		store:        store,
		pipeline:     pipeline,
		markers:      markers,
		logger:       logging.NewComponentLogger(logger, "worker"),
		pollInterval: pollInterval,
	}
}

// Start begins background processing.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return errAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.wg.Add(1)
	go w.run(runCtx)
	return nil
}

// Stop terminates background processing and waits for the in-flight job to
// be abandoned.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	w.running = false
	w.cancel = nil
	w.mu.Unlock()

	cancel()
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		filename, ok := w.store.Dequeue()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.pollInterval):
			}
			continue
		}

		w.processJob(ctx, filename)
		if ctx.Err() != nil {
			return
		}
	}
}

func (w *Worker) processJob(ctx context.Context, filename string) {
	jobLogger := w.logger.With(
		logging.String(logging.FieldFilename, filename),
		logging.String(logging.FieldJobID, uuid.NewString()),
	)
	jobLogger.Info("transcription started", logging.String(logging.FieldEventType, "job_start"))
	jobStart := time.Now()

	err := w.pipeline.Process(ctx, filename)
	if err == nil {
		w.store.MarkCompleted(filename)
		jobLogger.Info("transcription completed",
			logging.String(logging.FieldEventType, "job_complete"),
			logging.Duration("job_duration", time.Since(jobStart)),
		)
		return
	}

	if ctx.Err() != nil {
		// Shutdown interrupted the job. Leave no terminal marker so the
		// discovery scan reconsiders the file on the next start.
		w.store.Release(filename)
		jobLogger.Info("transcription abandoned by shutdown", logging.String(logging.FieldEventType, "job_abandoned"))
		return
	}

	w.store.MarkFailed(filename, err.Error())
	if markerErr := w.markers.WriteFailure(filename, err.Error()); markerErr != nil {
		jobLogger.Error("failed to write failure marker", logging.Error(markerErr))
	}
	jobLogger.Error("transcription failed",
		logging.String(logging.FieldEventType, "job_failed"),
		logging.Error(err),
		logging.Duration("job_duration", time.Since(jobStart)),
	)
}
