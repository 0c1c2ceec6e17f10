package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeProvider is a scriptable Provider for dispatcher tests
type fakeProvider struct {
	name       Backend
	configured bool
	reply      string
	err        error

	lastMessages []Message
}

func (f *fakeProvider) Name() Backend    { return f.name }
func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	f.lastMessages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestDispatcherRoutesToRequestedBackend(t *testing.T) {
	gemini := &fakeProvider{name: BackendGemini, configured: true, reply: "from gemini"}
	ollama := &fakeProvider{name: BackendOllama, configured: true, reply: "from ollama"}
	d := NewDispatcher(gemini, ollama)

	res := d.Chat(context.Background(), "hello", PatientContext{}, nil, BackendOllama)
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	if res.Text != "from ollama" {
		t.Errorf("text = %q, want ollama reply", res.Text)
	}
	if res.Backend != BackendOllama {
		t.Errorf("backend = %s, want ollama", res.Backend)
	}
}

func TestDispatcherUnconfiguredBackendFallsBackToDefault(t *testing.T) {
	gemini := &fakeProvider{name: BackendGemini, configured: true, reply: "from gemini"}
	nvidia := &fakeProvider{name: BackendNvidia, configured: false}
	d := NewDispatcher(gemini, nvidia)

	res := d.Chat(context.Background(), "hello", PatientContext{}, nil, BackendNvidia)
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	if res.Text != "from gemini" {
		t.Errorf("text = %q, want default provider reply", res.Text)
	}
	if len(nvidia.lastMessages) != 0 {
		t.Error("unconfigured provider should not receive the request")
	}
}

func TestDispatcherProviderFailureDegrades(t *testing.T) {
	gemini := &fakeProvider{name: BackendGemini, configured: true, err: errors.New("boom")}
	d := NewDispatcher(gemini)

	res := d.Chat(context.Background(), "what diet should I follow?", PatientContext{}, nil, BackendGemini)
	if !res.Degraded {
		t.Fatal("expected degraded result")
	}
	if res.Reason != "boom" {
		t.Errorf("reason = %q", res.Reason)
	}
	if !strings.Contains(res.Text, "balanced plate") {
		t.Errorf("expected diet fallback, got %q", res.Text)
	}
}

func TestDispatcherNoProvidersDegrades(t *testing.T) {
	d := NewDispatcher()

	res := d.Suggest(context.Background(), PatientContext{}, "kidney", "Stone", 0.9, "HIGH", BackendGemini)
	if !res.Degraded {
		t.Fatal("expected degraded result")
	}
	if res.Text != FallbackSuggestionText {
		t.Errorf("text = %q", res.Text)
	}
}

func TestDispatcherChatHistoryWindow(t *testing.T) {
	gemini := &fakeProvider{name: BackendGemini, configured: true, reply: "ok"}
	d := NewDispatcher(gemini)

	var history []HistoryTurn
	for i := 0; i < 12; i++ {
		role := "USER"
		if i%2 == 1 {
			role = "ASSISTANT"
		}
		history = append(history, HistoryTurn{Role: role, Message: "turn"})
	}

	d.Chat(context.Background(), "latest question", PatientContext{}, history, BackendGemini)

	// system prompt + last 5 history turns + current message
	if len(gemini.lastMessages) != 7 {
		t.Fatalf("expected 7 messages, got %d", len(gemini.lastMessages))
	}
	if gemini.lastMessages[0].Role != "system" {
		t.Errorf("first message role = %s, want system", gemini.lastMessages[0].Role)
	}
	last := gemini.lastMessages[len(gemini.lastMessages)-1]
	if last.Role != "user" || last.Content != "latest question" {
		t.Errorf("last message = %+v", last)
	}
}

func TestDispatcherSuggestIncludesScanDetails(t *testing.T) {
	gemini := &fakeProvider{name: BackendGemini, configured: true, reply: "advice"}
	d := NewDispatcher(gemini)

	res := d.Suggest(context.Background(), PatientContext{Age: 50}, "kidney", "Cyst", 0.8, "MODERATE", BackendGemini)
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}

	prompt := gemini.lastMessages[0].Content
	for _, want := range []string{"kidney", "Cyst", "MODERATE", "Age: 50"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestFallbackChatResponseKeywords(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"hello there", "health assistant"},
		{"I have a symptom that worries me", "medical attention"},
		{"what exercise is good for me", "150 minutes"},
		{"tell me a joke", "temporarily unavailable"},
	}

	for _, tt := range tests {
		got := FallbackChatResponse(tt.message)
		if !strings.Contains(got, tt.want) {
			t.Errorf("FallbackChatResponse(%q) = %q, want substring %q", tt.message, got, tt.want)
		}
	}
}

func TestParseBackend(t *testing.T) {
	if got := ParseBackend("ollama"); got != BackendOllama {
		t.Errorf("ParseBackend(ollama) = %s", got)
	}
	if got := ParseBackend("gpt-17"); got != DefaultBackend {
		t.Errorf("ParseBackend(unknown) = %s, want default", got)
	}
	if got := ParseBackend(""); got != DefaultBackend {
		t.Errorf("ParseBackend(empty) = %s, want default", got)
	}
}
