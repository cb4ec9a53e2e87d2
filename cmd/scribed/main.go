// Command scribed runs the transcription daemon: it serves the upload and
// status API, discovers unprocessed media at startup, and drains the
// transcription queue with a single worker.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"scribe/internal/api"
	"scribe/internal/config"
	"scribe/internal/deps"
	"scribe/internal/logging"
	"scribe/internal/metadata"
	"scribe/internal/queue"
	"scribe/internal/services/ffmpeg"
	"scribe/internal/services/whisperx"
	"scribe/internal/transcription"
)

const shutdownGrace = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		OutputPaths: []string{
			"stdout",
			filepath.Join(cfg.Paths.LogDir, "scribed.log"),
		},
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("daemon exited with error", logging.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	lock := flock.New(cfg.LockFilePath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another scribed instance holds %s", cfg.LockFilePath())
	}
	defer lock.Unlock() //nolint:errcheck

	reportMissingBinaries(cfg, logger)

	store := queue.NewStore()
	markers := transcription.NewMarkers(cfg.Paths.TranscriptsDir)
	records := metadata.NewStore(cfg.Paths.MetadataDir)

	pipeline := transcription.NewPipeline(transcription.PipelineOptions{
		MediaDir:   cfg.Paths.MediaDir,
		StagingDir: cfg.Paths.StagingDir,
		Markers:    markers,
		Records:    records,
		Extractor:  ffmpeg.NewExtractor(cfg.Tools.FFmpeg),
		Recognizer: whisperx.NewService(whisperx.Config{
			Runtime:     cfg.Tools.ContainerRuntime,
			Image:       cfg.Tools.WhisperXImage,
			ComputeType: cfg.Tools.ComputeType,
		}),
		ToolTimeout: time.Duration(cfg.Workflow.ToolTimeout) * time.Second,
		Logger:      logger,
	})

	scanner := transcription.NewScanner(cfg.Paths.MediaDir, markers, store, logger)
	discovered, err := scanner.Scan()
	if err != nil {
		return fmt.Errorf("discovery scan: %w", err)
	}
	logger.Info("discovery scan complete",
		logging.String(logging.FieldComponent, "scribed"),
		logging.Int("discovered", discovered))

	worker := transcription.NewWorker(store, pipeline, markers, logger,
		time.Duration(cfg.Workflow.QueuePollInterval)*time.Second)
	if err := worker.Start(ctx); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	defer worker.Stop()

	server := api.NewServer(store, records, cfg.Paths.MediaDir, logger)
	httpServer := &http.Server{
		Addr:              cfg.Paths.APIBind,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("api listening",
			logging.String(logging.FieldComponent, "scribed"),
			logging.String("addr", cfg.Paths.APIBind))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("scribed shutting down", logging.String(logging.FieldComponent, "scribed"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("api shutdown", logging.Error(err))
	}
	return nil
}

func reportMissingBinaries(cfg *config.Config, logger *slog.Logger) {
	for _, status := range deps.CheckBinaries(deps.Required(cfg)) {
		if status.Available {
			continue
		}
		logger.Warn("external tool unavailable, jobs that need it will fail",
			logging.String(logging.FieldComponent, "scribed"),
			logging.String("tool", status.Name),
			logging.String("detail", status.Detail))
	}
}
