// Package api exposes the daemon's HTTP surface: media upload, metadata
// retrieval, and transcription queue status.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"scribe/internal/logging"
	"scribe/internal/media"
	"scribe/internal/metadata"
	"scribe/internal/queue"
)

// maxUploadBytes bounds a single multipart upload request.
const maxUploadBytes = 500 << 20

// Server handles HTTP requests against the job store and metadata records.
type Server struct {
	store    *queue.Store
	records  *metadata.Store
	mediaDir string
	logger   *slog.Logger
}

// NewServer creates an HTTP server over the given store and record
// directories.
func NewServer(store *queue.Store, records *metadata.Store, mediaDir string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		store:    store,
		records:  records,
		mediaDir: mediaDir,
		logger:   logger.With(logging.String(logging.FieldComponent, "api")),
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/upload", s.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/api/transcription/status", s.handleTranscriptionStatus).Methods(http.MethodGet)
	router.HandleFunc("/api/metadata", s.handleMetadataList).Methods(http.MethodGet)
	router.HandleFunc("/api/metadata/{filename}", s.handleMetadataGet).Methods(http.MethodGet)
	router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/media/{filename}", s.handleMediaFile).Methods(http.MethodGet)
	return router
}

type uploadFileResult struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Metadata string `json:"metadata"`
	Detail   string `json:"detail,omitempty"`
}

// handleUpload accepts one or more files in a multipart form, persists them
// to the media directory, writes an initial metadata record for each, and
// enqueues audio and video files for transcription.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	results := make([]uploadFileResult, 0, len(files))
	accepted := 0
	for _, header := range files {
		result := s.storeUpload(header)
		if result.Status == "success" {
			accepted++
		}
		results = append(results, result)
	}

	status := http.StatusOK
	if accepted == 0 {
		status = http.StatusBadRequest
	}
	s.writeJSON(w, status, map[string]any{
		"status": "success",
		"files":  results,
		"count":  accepted,
	})
}

// storeUpload persists a single uploaded file and creates its metadata
// record. Failures are reported per file rather than failing the request.
func (s *Server) storeUpload(header *multipart.FileHeader) uploadFileResult {
	filename := filepath.Base(header.Filename)
	if filename == "." || filename == ".." || filename == "" || filename != header.Filename {
		return uploadFileResult{
			Status:   "rejected",
			Filename: header.Filename,
			Detail:   "invalid filename",
		}
	}

	result := uploadFileResult{
		Status:   "success",
		Filename: filename,
		Path:     "/media/" + filename,
		Metadata: "/api/metadata/" + filename,
	}

	src, err := header.Open()
	if err != nil {
		s.logger.Error("failed to open uploaded file",
			logging.String(logging.FieldFilename, filename), logging.Error(err))
		return uploadFileResult{Status: "failed", Filename: filename, Detail: "unreadable upload"}
	}
	defer src.Close()

	destPath := filepath.Join(s.mediaDir, filename)
	dst, err := os.Create(destPath)
	if err != nil {
		s.logger.Error("failed to create media file",
			logging.String(logging.FieldFilename, filename), logging.Error(err))
		return uploadFileResult{Status: "failed", Filename: filename, Detail: "could not persist file"}
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		s.logger.Error("failed to write media file",
			logging.String(logging.FieldFilename, filename), logging.Error(err))
		return uploadFileResult{Status: "failed", Filename: filename, Detail: "could not persist file"}
	}

	kind := media.Classify(filename)
	record := &metadata.Record{
		ID:        uuid.NewString(),
		Filename:  filename,
		Path:      "/media/" + filename,
		Type:      string(kind),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Labels:    []string{},
	}
	if err := s.records.Write(record); err != nil {
		s.logger.Error("failed to write metadata record",
			logging.String(logging.FieldFilename, filename), logging.Error(err))
		return uploadFileResult{Status: "failed", Filename: filename, Detail: "could not write metadata"}
	}

	if media.IsTranscribable(filename) {
		if s.store.Enqueue(filename) {
			s.logger.Info("enqueued uploaded file for transcription",
				logging.String(logging.FieldFilename, filename))
		} else {
			s.logger.Info("uploaded file already tracked by queue",
				logging.String(logging.FieldFilename, filename))
		}
	}
	return result
}

func (s *Server) handleTranscriptionStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleMetadataList(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List()
	if err != nil {
		s.logger.Error("failed to list metadata records", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to read metadata records")
		return
	}
	if records == nil {
		records = []*metadata.Record{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleMetadataGet(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]
	record, err := s.records.Read(filename)
	if err != nil {
		if errors.Is(err, metadata.ErrRecordNotFound) {
			s.writeError(w, http.StatusNotFound, "metadata not found")
			return
		}
		s.logger.Error("failed to read metadata record",
			logging.String(logging.FieldFilename, filename), logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to read metadata record")
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Counts())
}

func (s *Server) handleMediaFile(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Base(mux.Vars(r)["filename"])
	http.ServeFile(w, r, filepath.Join(s.mediaDir, filename))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}
