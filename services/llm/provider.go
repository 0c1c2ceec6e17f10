package llm

import (
	"context"
	"time"
)

// Backend identifies an LLM provider
type Backend string

const (
	BackendGemini Backend = "gemini"
	BackendNvidia Backend = "nvidia"
	BackendOllama Backend = "ollama"

	// DefaultBackend handles requests for unknown or unconfigured backends
	DefaultBackend = BackendGemini
)

// DefaultCompletionTimeout bounds a single provider call
const DefaultCompletionTimeout = 60 * time.Second

// Message is one turn of a provider conversation
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// Options tunes a completion request
type Options struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// DefaultOptions are the generation settings used when a caller passes none
var DefaultOptions = Options{
	Temperature: 0.7,
	MaxTokens:   1024,
	TopP:        0.95,
}

// Provider is a text completion backend
type Provider interface {
	// Name returns the backend identifier
	Name() Backend
	// Configured reports whether the provider has usable credentials
	Configured() bool
	// Complete runs a chat completion and returns the response text
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

// VisionProvider can additionally answer questions about an image
type VisionProvider interface {
	Provider
	// CompleteVision runs a completion over a prompt plus inline image
	CompleteVision(ctx context.Context, prompt string, imageData []byte, mimeType string, opts Options) (string, error)
}

// ParseBackend maps a request string to a Backend, defaulting on unknowns
func ParseBackend(s string) Backend {
	switch Backend(s) {
	case BackendGemini, BackendNvidia, BackendOllama:
		return Backend(s)
	default:
		return DefaultBackend
	}
}
