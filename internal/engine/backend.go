package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// BackendClient talks to the MT worker pool over HTTP. One deployment
// serves every registered model; the model name selects the worker
// queue on the backend side.
type BackendClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Entry
}

type backendRequest struct {
	Model  string `json:"model"`
	Src    string `json:"src"`
	Tgt    string `json:"tgt"`
	Q      string `json:"q"`
	APIKey string `json:"api_key,omitempty"`
}

type backendResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error,omitempty"`
}

// NewBackendClient creates an MT backend client.
func NewBackendClient(baseURL, apiKey string, logger *logrus.Entry) *BackendClient {
	return &BackendClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// Translate sends one segment to the backend and returns the translated
// text as produced by the workers (trailing newline included).
func (c *BackendClient) Translate(ctx context.Context, model, src, tgt, text string) (string, error) {
	reqBody, err := json.Marshal(backendRequest{
		Model:  model,
		Src:    src,
		Tgt:    tgt,
		Q:      text,
		APIKey: c.apiKey,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mt backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("mt backend response read failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mt backend returned status %d: %s", resp.StatusCode, string(body))
	}

	var out backendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("mt backend response parse failed: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("mt backend error: %s", out.Error)
	}

	c.logger.WithFields(logrus.Fields{
		"model":      model,
		"src":        src,
		"tgt":        tgt,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("Backend translation completed")

	return out.TranslatedText, nil
}

// HealthCheck verifies the backend is reachable.
func (c *BackendClient) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mt backend health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mt backend health check returned status %d", resp.StatusCode)
	}
	return nil
}
