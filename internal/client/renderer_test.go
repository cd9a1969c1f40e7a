package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"thsl-backend-go/internal/pose"
)

func testSequence(frames int) *pose.Pose {
	h := pose.HeaderForLandmarks(2)
	h.Dimensions = pose.Dimensions{Width: 1250, Height: 1250}
	p := &pose.Pose{Header: h, Frames: make([]pose.Frame, frames)}
	for i := range p.Frames {
		p.Frames[i] = pose.Frame{
			Points:     make([]pose.Point, 2),
			Confidence: make([]float32, 2),
		}
		p.Frames[i].Points[0].X = float32(i)
	}
	return p
}

func TestRender(t *testing.T) {
	p := testSequence(4)
	video := []byte("fake mp4 bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/render" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Parsing multipart form failed: %v", err)
		}
		for field, want := range map[string]string{
			"fps":       "24",
			"frames":    "4",
			"landmarks": "2",
			"width":     "1250",
			"height":    "1250",
		} {
			if got := r.FormValue(field); got != want {
				t.Errorf("Field %s: expected %q, got %q", field, want, got)
			}
		}

		file, _, err := r.FormFile("pose")
		if err != nil {
			t.Fatalf("Reading pose form file failed: %v", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			t.Fatalf("Reading pose bytes failed: %v", err)
		}
		if !bytes.Equal(data, pose.EncodeFrames(p)) {
			t.Error("Uploaded pose bytes differ from the encoded sequence")
		}

		w.Write(video)
	}))
	defer server.Close()

	c := NewRendererClient(server.URL, 5*time.Second, testLogger())
	got, err := c.Render(context.Background(), p, 24)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.Equal(got, video) {
		t.Errorf("Expected the video bytes back, got %d bytes", len(got))
	}
}

func TestRenderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "encoder crashed", http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewRendererClient(server.URL, 5*time.Second, testLogger())
	if _, err := c.Render(context.Background(), testSequence(2), 24); err == nil {
		t.Error("Expected an error for a non-200 response")
	}
}
