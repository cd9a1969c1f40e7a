package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"thsl-backend-go/pkg/models"

	"github.com/sirupsen/logrus"
)

// ClassifierClient is the client for the Python model service's per-frame
// signing classifier
type ClassifierClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClassifierClient creates a new client for the classifier service
func NewClassifierClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *ClassifierClient {
	return &ClassifierClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Predict sends a batch of per-frame feature vectors and returns one
// signing probability per vector
func (c *ClassifierClient) Predict(ctx context.Context, instances [][]float32) ([]float64, error) {
	c.logger.Debugf("Sending %d feature vectors to classifier", len(instances))

	payload, err := json.Marshal(models.PredictRequest{Instances: instances})
	if err != nil {
		return nil, fmt.Errorf("marshaling predict request: %w", err)
	}

	url := fmt.Sprintf("%s/predict", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		return nil, fmt.Errorf("classifier service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var predictResp models.PredictResponse
	if err := json.Unmarshal(respBody, &predictResp); err != nil {
		return nil, fmt.Errorf("parsing JSON response: %w", err)
	}

	if len(predictResp.Probabilities) != len(instances) {
		return nil, fmt.Errorf("classifier returned %d probabilities for %d instances",
			len(predictResp.Probabilities), len(instances))
	}

	return predictResp.Probabilities, nil
}

// CheckHealth checks the state of the Python model service
func (c *ClassifierClient) CheckHealth(ctx context.Context) (*models.ModelHealthResponse, error) {
	c.logger.Debug("Checking model service health")

	url := fmt.Sprintf("%s/health", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

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
		return nil, fmt.Errorf("model service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var healthResp models.ModelHealthResponse
	if err := json.Unmarshal(respBody, &healthResp); err != nil {
		return nil, fmt.Errorf("parsing JSON response: %w", err)
	}

	return &healthResp, nil
}
