package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/api"
	"scribe/internal/metadata"
	"scribe/internal/queue"
)

type fixture struct {
	server   *api.Server
	store    *queue.Store
	records  *metadata.Store
	mediaDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mediaDir := t.TempDir()
	store := queue.NewStore()
	records := metadata.NewStore(t.TempDir())
	return &fixture{
		server:   api.NewServer(store, records, mediaDir, nil),
		store:    store,
		records:  records,
		mediaDir: mediaDir,
	}
}

func multipartUpload(t *testing.T, filenames map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range filenames {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadPersistsFileAndEnqueues(t *testing.T) {
	fx := newFixture(t)

	body, contentType := multipartUpload(t, map[string]string{"talk.mp3": "audio-bytes"})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	fx.server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	saved, err := os.ReadFile(filepath.Join(fx.mediaDir, "talk.mp3"))
	if err != nil {
		t.Fatalf("uploaded file not persisted: %v", err)
	}
	if string(saved) != "audio-bytes" {
		t.Fatalf("unexpected file contents: %q", saved)
	}

	record, err := fx.records.Read("talk.mp3")
	if err != nil {
		t.Fatalf("metadata record not written: %v", err)
	}
	if record.Type != "audio" {
		t.Fatalf("unexpected media type: %q", record.Type)
	}
	if record.ID == "" || record.Timestamp == "" {
		t.Fatalf("expected populated id and timestamp: %+v", record)
	}

	counts := fx.store.Counts()
	if counts.Queued != 1 {
		t.Fatalf("expected 1 queued job, got %+v", counts)
	}
}

func TestUploadUnsupportedTypeSkipsQueue(t *testing.T) {
	fx := newFixture(t)

	body, contentType := multipartUpload(t, map[string]string{"notes.txt": "plain text"})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	fx.server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if counts := fx.store.Counts(); counts.Queued != 0 {
		t.Fatalf("unsupported file must not be enqueued: %+v", counts)
	}
	record, err := fx.records.Read("notes.txt")
	if err != nil {
		t.Fatalf("metadata record should still be written: %v", err)
	}
	if record.Type != "unsupported" {
		t.Fatalf("unexpected media type: %q", record.Type)
	}
}

func TestUploadWithoutFilesRejected(t *testing.T) {
	fx := newFixture(t)

	body, contentType := multipartUpload(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	fx.server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTranscriptionStatusReturnsSnapshot(t *testing.T) {
	fx := newFixture(t)
	fx.store.Enqueue("first.mp4")
	fx.store.Enqueue("second.mp3")

	req := httptest.NewRequest(http.MethodGet, "/api/transcription/status", nil)
	rec := httptest.NewRecorder()
	fx.server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var rows []queue.JobStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Filename != "first.mp4" || rows[0].Status != queue.StatusQueued {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
}

func TestMetadataEndpoints(t *testing.T) {
	fx := newFixture(t)
	record := &metadata.Record{
		ID:        "42",
		Filename:  "clip.mp4",
		Path:      "/media/clip.mp4",
		Type:      "video",
		Timestamp: "2026-03-14T09:26:53Z",
		Labels:    []string{},
	}
	if err := fx.records.Write(record); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/metadata/clip.mp4", nil)
	rec := httptest.NewRecorder()
	fx.server.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var loaded metadata.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &loaded); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if loaded.ID != "42" || loaded.Type != "video" {
		t.Fatalf("unexpected record: %+v", loaded)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/metadata/missing.mp3", nil)
	rec = httptest.NewRecorder()
	fx.server.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing record, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/metadata", nil)
	rec = httptest.NewRecorder()
	fx.server.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for list, got %d", rec.Code)
	}
	var all []metadata.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 record, got %d", len(all))
	}
}

func TestHealthReportsCounts(t *testing.T) {
	fx := newFixture(t)
	fx.store.Enqueue("one.mp3")
	fx.store.Enqueue("two.mp3")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	fx.server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var summary queue.HealthSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if summary.Queued != 2 {
		t.Fatalf("expected 2 queued, got %+v", summary)
	}
}
