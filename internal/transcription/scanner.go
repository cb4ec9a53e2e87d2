package transcription

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/queue"
)

var errAlreadyRunning = errors.New("worker already running")

// Scanner rebuilds the queue from disk at startup. Files with a transcript
// or failure marker are skipped, so work already resolved in a previous run
// is never repeated; everything else transcribable is enqueued.
type Scanner struct {
	mediaDir string
	markers  *Markers
	store    *queue.Store
	logger   *slog.Logger
}

// NewScanner constructs a discovery scanner over the media directory.
func NewScanner(mediaDir string, markers *Markers, store *queue.Store, logger *slog.Logger) *Scanner {
	return &Scanner{
		mediaDir: mediaDir,
		markers:  markers,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "scanner"),
	}
}

// Scan runs once and returns the number of filenames enqueued.
func (s *Scanner) Scan() (int, error) {
	entries, err := os.ReadDir(s.mediaDir)
	if err != nil {
		return 0, fmt.Errorf("read media directory: %w", err)
	}

	enqueued := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filename := entry.Name()
		if !media.IsTranscribable(filename) {
			continue
		}
		if s.markers.HasResolution(filename) {
			continue
		}
		if s.store.Enqueue(filename) {
			enqueued++
			s.logger.Debug("enqueued unresolved media file", logging.String(logging.FieldFilename, filename))
		}
	}

	s.logger.Info("discovery scan finished",
		logging.Int("enqueued", enqueued),
		logging.String(logging.FieldEventType, "discovery_scan"),
	)
	return enqueued, nil
}
