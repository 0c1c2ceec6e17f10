package mlserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"syscall"
	"time"
)

const (
	// DefaultBaseURL is the local classifier service address
	DefaultBaseURL = "http://localhost:5001"
	// DefaultPredictTimeout bounds a single classification request
	DefaultPredictTimeout = 30 * time.Second
	// DefaultBatchTimeout bounds a batch classification request
	DefaultBatchTimeout = 60 * time.Second
)

var (
	// ErrUnavailable means the classifier service refused the connection
	ErrUnavailable = errors.New("ML server unavailable")
	// ErrTimeout means the classifier did not answer within the deadline
	ErrTimeout = errors.New("request timeout")
)

// APIError carries a non-2xx status from the classifier service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ML server error (status %d): %s", e.StatusCode, e.Message)
}

// Client is an HTTP client for the scan classification service
type Client struct {
	baseURL        string
	httpClient     *http.Client
	predictTimeout time.Duration
	batchTimeout   time.Duration
}

// Config holds configuration for the classifier client
type Config struct {
	BaseURL        string
	PredictTimeout time.Duration
	BatchTimeout   time.Duration
}

// NewClient creates a new classifier client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.PredictTimeout == 0 {
		config.PredictTimeout = DefaultPredictTimeout
	}
	if config.BatchTimeout == 0 {
		config.BatchTimeout = DefaultBatchTimeout
	}

	return &Client{
		baseURL:        config.BaseURL,
		httpClient:     &http.Client{},
		predictTimeout: config.PredictTimeout,
		batchTimeout:   config.BatchTimeout,
	}
}

// PredictRequest is the payload for a single classification
type PredictRequest struct {
	Image    string `json:"image"` // base64-encoded image bytes
	MimeType string `json:"mimetype"`
	Filename string `json:"filename"`
}

// PredictResponse is the classifier's answer for one image
type PredictResponse struct {
	Prediction    string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
	Model         string             `json:"model"`
}

// BatchPredictResponse is the classifier's answer for a batch request
type BatchPredictResponse struct {
	Results []PredictResponse `json:"results"`
}

// Predict classifies a single image. The image bytes are base64-encoded
// into the JSON payload.
func (c *Client) Predict(ctx context.Context, imageData []byte, mimeType, filename string) (*PredictResponse, error) {
	req := PredictRequest{
		Image:    base64.StdEncoding.EncodeToString(imageData),
		MimeType: mimeType,
		Filename: filename,
	}

	var result PredictResponse
	if err := c.post(ctx, "/predict", req, &result, c.predictTimeout); err != nil {
		return nil, err
	}
	return &result, nil
}

// PredictBatch classifies multiple images in one request
func (c *Client) PredictBatch(ctx context.Context, requests []PredictRequest) (*BatchPredictResponse, error) {
	payload := map[string]interface{}{"images": requests}

	var result BatchPredictResponse
	if err := c.post(ctx, "/predict/batch", payload, &result, c.batchTimeout); err != nil {
		return nil, err
	}
	return &result, nil
}

// HealthCheck verifies the classifier service is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Message: "health check failed"}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, result interface{}, timeout time.Duration) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := extractErrorMessage(respBody)
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// classifyTransportError maps transport failures to the typed errors the
// handlers translate into 503/504 responses.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return ErrUnavailable
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}

	return ErrUnavailable
}

func extractErrorMessage(body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return string(body)
}
