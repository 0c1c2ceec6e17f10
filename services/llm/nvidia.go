package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// NvidiaBaseURL is the NVIDIA NIM OpenAI-compatible API base URL
	NvidiaBaseURL = "https://integrate.api.nvidia.com/v1"
	// DefaultNvidiaModel is used when no model is configured
	DefaultNvidiaModel = "meta/llama-3.1-70b-instruct"
)

// NvidiaClient calls an NVIDIA NIM OpenAI-compatible chat completions API
type NvidiaClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NvidiaConfig holds configuration for the NVIDIA client
type NvidiaConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewNvidiaClient creates a new NVIDIA NIM client
func NewNvidiaClient(config NvidiaConfig) *NvidiaClient {
	if config.BaseURL == "" {
		config.BaseURL = NvidiaBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultNvidiaModel
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultCompletionTimeout
	}

	return &NvidiaClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Name returns the backend identifier
func (c *NvidiaClient) Name() Backend {
	return BackendNvidia
}

// Configured reports whether a real API key is present
func (c *NvidiaClient) Configured() bool {
	key := strings.TrimSpace(c.apiKey)
	return key != "" && !strings.HasPrefix(strings.ToLower(key), "your")
}

type nvidiaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type nvidiaRequest struct {
	Model       string          `json:"model"`
	Messages    []nvidiaMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	TopP        float64         `json:"top_p,omitempty"`
	Stream      bool            `json:"stream"`
}

type nvidiaResponse struct {
	Choices []struct {
		Message nvidiaMessage `json:"message"`
	} `json:"choices"`
}

// Complete runs a chat completion against /chat/completions
func (c *NvidiaClient) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	req := nvidiaRequest{
		Model:       c.model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		TopP:        opts.TopP,
		Stream:      false,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, nvidiaMessage{Role: m.Role, Content: m.Content})
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("nvidia API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result nvidiaResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from nvidia")
	}

	return result.Choices[0].Message.Content, nil
}
