package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"thsl-backend-go/internal/pose"

	"github.com/sirupsen/logrus"
)

// RendererClient is the client for the Python model service's pose
// rasterizer/video encoder
type RendererClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewRendererClient creates a new client for the renderer service
func NewRendererClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *RendererClient {
	return &RendererClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Render uploads an encoded pose sequence and returns the encoded video bytes
func (c *RendererClient) Render(ctx context.Context, p *pose.Pose, fps int) ([]byte, error) {
	c.logger.Infof("Sending %d-frame sequence to renderer", p.Len())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	poseWriter, err := writer.CreateFormFile("pose", "sentence.pose")
	if err != nil {
		return nil, fmt.Errorf("creating form field for pose data: %w", err)
	}
	if _, err := poseWriter.Write(pose.EncodeFrames(p)); err != nil {
		return nil, fmt.Errorf("writing pose data: %w", err)
	}

	if err := writer.WriteField("fps", fmt.Sprintf("%d", fps)); err != nil {
		return nil, fmt.Errorf("writing fps: %w", err)
	}
	if err := writer.WriteField("frames", fmt.Sprintf("%d", p.Len())); err != nil {
		return nil, fmt.Errorf("writing frame count: %w", err)
	}
	if err := writer.WriteField("landmarks", fmt.Sprintf("%d", p.Header.PointCount())); err != nil {
		return nil, fmt.Errorf("writing landmark count: %w", err)
	}
	if err := writer.WriteField("width", fmt.Sprintf("%d", p.Header.Dimensions.Width)); err != nil {
		return nil, fmt.Errorf("writing width: %w", err)
	}
	if err := writer.WriteField("height", fmt.Sprintf("%d", p.Header.Dimensions.Height)); err != nil {
		return nil, fmt.Errorf("writing height: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	url := fmt.Sprintf("%s/render", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c.logger.Debugf("Sending POST request to %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("renderer service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	c.logger.Infof("Renderer returned %d bytes of video", len(respBody))
	return respBody, nil
}
