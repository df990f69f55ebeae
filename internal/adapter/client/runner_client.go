package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LoadRequest asks the runner to load a model.
type LoadRequest struct {
	Model     string `json:"model"`
	MaxLength int    `json:"max_length,omitempty"`
}

// PredictRequest carries texts for one batched forward pass.
type PredictRequest struct {
	Texts     []string `json:"texts"`
	BatchSize int      `json:"batch_size,omitempty"`
}

// ScoreEntry is one (label, score) pair of a distribution.
type ScoreEntry struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// PredictResponse holds one score distribution per input text, in input
// order, covering all labels the model knows.
type PredictResponse struct {
	Results [][]ScoreEntry `json:"results"`
}

// InfoResponse describes the runner's model state.
type InfoResponse struct {
	Loaded    bool    `json:"loaded"`
	ModelName string  `json:"model_name"`
	Device    string  `json:"device"`
	LoadMs    float64 `json:"load_time_ms"`
}

// RunnerClient is an HTTP client for the model runner service.
type RunnerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRunnerClient creates a new model runner client.
func NewRunnerClient(baseURL string, timeout time.Duration) *RunnerClient {
	return &RunnerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Load asks the runner to load the named model. The runner returns its
// state once the model is resident; reloading an already-loaded model is
// a no-op on its side.
func (c *RunnerClient) Load(ctx context.Context, model string, maxLength int) (*InfoResponse, error) {
	reqBody := LoadRequest{
		Model:     model,
		MaxLength: maxLength,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/load", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("model runner returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("model runner returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result InfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Info reports the runner's model state without triggering a load.
func (c *RunnerClient) Info(ctx context.Context) (*InfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/info", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model runner returned status %d", resp.StatusCode)
	}

	var result InfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// Predict sends texts for one batched forward pass. The runner returns a
// full per-label score distribution for every input, preserving order.
func (c *RunnerClient) Predict(ctx context.Context, texts []string, batchSize int) (*PredictResponse, error) {
	reqBody := PredictRequest{
		Texts:     texts,
		BatchSize: batchSize,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("model runner returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("model runner returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Results) != len(texts) {
		return nil, fmt.Errorf("model runner returned %d results for %d texts", len(result.Results), len(texts))
	}

	return &result, nil
}
