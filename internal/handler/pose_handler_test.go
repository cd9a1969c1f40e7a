package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"thsl-backend-go/internal/layout"
	"thsl-backend-go/internal/model"
	"thsl-backend-go/internal/service"
	"thsl-backend-go/internal/storage"
	"thsl-backend-go/pkg/models"
)

// fakeWordRepo is an in-memory WordRepository for handler tests
type fakeWordRepo struct {
	rows   []*model.Word
	nextID uint
}

func (f *fakeWordRepo) FindByWord(word string) ([]*model.Word, error) {
	var out []*model.Word
	for _, row := range f.rows {
		if row.Word == word {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeWordRepo) Create(word *model.Word) error {
	f.nextID++
	word.ID = f.nextID
	f.rows = append(f.rows, word)
	return nil
}

func (f *fakeWordRepo) Delete(id uint) error {
	for i, row := range f.rows {
		if row.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("word with id %d: %w", id, gorm.ErrRecordNotFound)
}

func (f *fakeWordRepo) List(page, pageSize int) ([]*model.Word, int64, error) {
	return f.rows, int64(len(f.rows)), nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newPoseRouter wires a gin router with the pose handler over a temp pose dir
func newPoseRouter(t *testing.T, repo *fakeWordRepo) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := testLogger()
	poseDir := t.TempDir()
	poseFiles, err := storage.NewResolver(poseDir)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}

	wordService := service.NewWordService(repo, poseFiles, logger)
	scanner := layout.NewScanner(layout.DefaultReferenceOffset)
	h := NewPoseHandler(wordService, poseFiles, scanner, 33, logger)

	router := gin.New()
	h.RegisterRoutes(router)
	return router, poseDir
}

func doRequest(router *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestResolveWordStatusCodes(t *testing.T) {
	router, poseDir := newPoseRouter(t, &fakeWordRepo{})
	if err := os.WriteFile(filepath.Join(poseDir, "hello.pose"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if rec := doRequest(router, http.MethodGet, "/api/resolve", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("Missing word: expected 400, got %d", rec.Code)
	}

	rec := doRequest(router, http.MethodGet, "/api/resolve?word=hello", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.ResolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Decoding response failed: %v", err)
	}
	if !resp.Found || resp.Source != service.SourceDiskFallback {
		t.Errorf("Expected a disk fallback hit, got %+v", resp)
	}
}

func TestGetPoseFileStatusCodes(t *testing.T) {
	router, poseDir := newPoseRouter(t, &fakeWordRepo{})
	if err := os.WriteFile(filepath.Join(poseDir, "hello.pose"), []byte("pose data"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"missing name", "/api/pose", http.StatusBadRequest},
		{"escaping name", "/api/pose?name=..%2Fsecret.pose", http.StatusBadRequest},
		{"absent file", "/api/pose?name=missing.pose", http.StatusNotFound},
		{"existing file", "/api/pose?name=hello.pose", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doRequest(router, http.MethodGet, tt.target, nil); rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestGetPoseMetaStatusCodes(t *testing.T) {
	router, poseDir := newPoseRouter(t, &fakeWordRepo{})

	// a plausible raw file: reference-length header plus 12 body-only frames
	size := layout.DefaultReferenceOffset + 12*layout.FrameBytes(33)
	if err := os.WriteFile(filepath.Join(poseDir, "hello.pose"), make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"missing name", "/api/pose_meta", http.StatusBadRequest},
		{"escaping name", "/api/pose_meta?name=..%2Fsecret.pose", http.StatusBadRequest},
		{"bad landmarks", "/api/pose_meta?name=hello.pose&landmarks=zero", http.StatusBadRequest},
		{"absent file", "/api/pose_meta?name=missing.pose", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doRequest(router, http.MethodGet, tt.target, nil); rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
		})
	}

	rec := doRequest(router, http.MethodGet, "/api/pose_meta?name=hello.pose", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var meta models.PoseMetaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil {
		t.Fatalf("Decoding response failed: %v", err)
	}
	if meta.Offset != layout.DefaultReferenceOffset || meta.Frames != 12 || meta.Landmarks != 33 {
		t.Errorf("Unexpected layout: %+v", meta)
	}
	if meta.PoseDir == "" {
		t.Error("Expected the pose directory reported")
	}
}

func TestWordAdminEndpoints(t *testing.T) {
	repo := &fakeWordRepo{}
	router, _ := newPoseRouter(t, repo)

	// create
	body, _ := json.Marshal(models.WordRequest{Word: "hello", PoseFilename: "hello.pose"})
	rec := doRequest(router, http.MethodPost, "/api/words", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created model.Word
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Decoding created entry failed: %v", err)
	}
	if created.ID == 0 || created.Word != "hello" {
		t.Errorf("Unexpected created entry: %+v", created)
	}

	// list
	rec = doRequest(router, http.MethodGet, "/api/words", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("List: expected 200, got %d", rec.Code)
	}
	var page service.WordListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("Decoding list failed: %v", err)
	}
	if page.Total != 1 || len(page.Words) != 1 {
		t.Errorf("Expected one entry listed, got %+v", page)
	}

	// delete
	rec = doRequest(router, http.MethodDelete, fmt.Sprintf("/api/words/%d", created.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Delete: expected 200, got %d", rec.Code)
	}
	if len(repo.rows) != 0 {
		t.Error("Expected the entry removed from the store")
	}
}

func TestWordAdminErrorStatusCodes(t *testing.T) {
	router, _ := newPoseRouter(t, &fakeWordRepo{})

	escaping, _ := json.Marshal(models.WordRequest{Word: "hello", PoseFilename: "../x.pose"})
	noWord, _ := json.Marshal(models.WordRequest{PoseFilename: "x.pose"})

	tests := []struct {
		name   string
		method string
		target string
		body   []byte
		want   int
	}{
		{"create invalid json", http.MethodPost, "/api/words", []byte("{"), http.StatusBadRequest},
		{"create empty word", http.MethodPost, "/api/words", noWord, http.StatusBadRequest},
		{"create escaping filename", http.MethodPost, "/api/words", escaping, http.StatusBadRequest},
		{"delete non-numeric id", http.MethodDelete, "/api/words/abc", nil, http.StatusBadRequest},
		{"delete missing id", http.MethodDelete, "/api/words/99", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := doRequest(router, tt.method, tt.target, tt.body); rec.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
