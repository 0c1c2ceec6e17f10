package llm

import (
	"context"
	"fmt"
	"log"
)

// Result is the outcome of a dispatch. Text is always usable; Degraded
// marks canned fallback content and Reason says why.
type Result struct {
	Text     string
	Backend  Backend
	Degraded bool
	Reason   string
}

// HistoryTurn is one prior exchange fed back into the chat prompt
type HistoryTurn struct {
	Role    string // "USER" or "ASSISTANT"
	Message string
}

// chatHistoryWindow is the number of prior turns included in a chat prompt
const chatHistoryWindow = 5

// Dispatcher routes completion requests to the selected provider and
// guarantees a usable answer: provider failures degrade to canned text
// instead of surfacing errors.
type Dispatcher struct {
	providers map[Backend]Provider
}

// NewDispatcher creates a dispatcher over the given providers
func NewDispatcher(providers ...Provider) *Dispatcher {
	m := make(map[Backend]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Dispatcher{providers: m}
}

// Provider returns the provider that will serve the given backend,
// falling back to the default when the requested one is missing or
// unconfigured.
func (d *Dispatcher) Provider(backend Backend) Provider {
	if p, ok := d.providers[backend]; ok && p.Configured() {
		return p
	}
	if p, ok := d.providers[DefaultBackend]; ok {
		return p
	}
	return nil
}

// VisionProvider returns a vision-capable provider, preferring the
// requested backend
func (d *Dispatcher) VisionProvider(backend Backend) VisionProvider {
	if p, ok := d.providers[backend]; ok && p.Configured() {
		if vp, ok := p.(VisionProvider); ok {
			return vp
		}
	}
	if p, ok := d.providers[DefaultBackend]; ok {
		if vp, ok := p.(VisionProvider); ok {
			return vp
		}
	}
	return nil
}

// Suggest generates post-scan guidance for a classified detection
func (d *Dispatcher) Suggest(ctx context.Context, pc PatientContext, detectionType, prediction string, confidence float64, riskLevel string, backend Backend) Result {
	provider := d.Provider(backend)
	if provider == nil {
		return Result{Text: FallbackSuggestionText, Backend: backend, Degraded: true, Reason: "no provider available"}
	}

	prompt := BuildSuggestionPrompt(pc, detectionType, prediction, confidence, riskLevel)
	text, err := provider.Complete(ctx, []Message{{Role: "user", Content: prompt}}, DefaultOptions)
	if err != nil {
		log.Printf("[llm] suggestion via %s failed: %v", provider.Name(), err)
		return Result{Text: FallbackSuggestionText, Backend: provider.Name(), Degraded: true, Reason: err.Error()}
	}

	return Result{Text: text, Backend: provider.Name()}
}

// Chat answers a user message with patient context and recent history
func (d *Dispatcher) Chat(ctx context.Context, userMessage string, pc PatientContext, history []HistoryTurn, backend Backend) Result {
	provider := d.Provider(backend)
	if provider == nil {
		return Result{Text: FallbackChatResponse(userMessage), Backend: backend, Degraded: true, Reason: "no provider available"}
	}

	messages := []Message{{Role: "system", Content: BuildChatSystemPrompt(pc)}}

	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}
	for _, turn := range history {
		role := "user"
		if turn.Role == "ASSISTANT" {
			role = "assistant"
		}
		messages = append(messages, Message{Role: role, Content: turn.Message})
	}
	messages = append(messages, Message{Role: "user", Content: userMessage})

	text, err := provider.Complete(ctx, messages, DefaultOptions)
	if err != nil {
		log.Printf("[llm] chat via %s failed: %v", provider.Name(), err)
		return Result{Text: FallbackChatResponse(userMessage), Backend: provider.Name(), Degraded: true, Reason: err.Error()}
	}

	return Result{Text: text, Backend: provider.Name()}
}

// Complete runs a raw completion on the selected provider. Unlike Suggest
// and Chat it surfaces errors, for callers with their own fallback.
func (d *Dispatcher) Complete(ctx context.Context, messages []Message, opts Options, backend Backend) (string, Backend, error) {
	provider := d.Provider(backend)
	if provider == nil {
		return "", backend, fmt.Errorf("no provider available for backend %q", backend)
	}

	text, err := provider.Complete(ctx, messages, opts)
	return text, provider.Name(), err
}
