package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{
		client: &client,
		model:  "claude-haiku-4-5-20251001",
	}
}

// anthropicMessage writes a Messages API reply holding the given text blocks.
func anthropicMessage(w http.ResponseWriter, stop string, texts ...string) {
	content := make([]map[string]any, 0, len(texts))
	for _, text := range texts {
		content = append(content, map[string]any{"type": "text", "text": text})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     content,
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 280, "output_tokens": 390},
	})
}

func anthropicError(w http.ResponseWriter, status int, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": kind},
	})
}

func TestAnthropicProvider_SendsTutorPrompt(t *testing.T) {
	var got struct {
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		Messages    []struct {
			Role    string `json:"role"`
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		// Two text blocks are joined into one reply.
		anthropicMessage(w, "end_turn", "Force equals mass times acceleration.\n\n",
			"Question 1: What is momentum? Question 2: How is force related to acceleration?")
	})

	resp, err := p.Generate(context.Background(), Prompt(tutorPrompt, 0.1, 2048))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.MaxTokens != 2048 || got.Temperature != 0.1 {
		t.Errorf("max_tokens/temperature = %d/%v", got.MaxTokens, got.Temperature)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" ||
		len(got.Messages[0].Content) != 1 || got.Messages[0].Content[0].Text != tutorPrompt {
		t.Fatalf("expected one user message with the prompt, got %+v", got.Messages)
	}

	if resp.Text != tutorReply {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
	if resp.Usage.TotalTokens != 670 {
		t.Errorf("total tokens = %d, want 670", resp.Usage.TotalTokens)
	}
	if resp.StopReason != "end" {
		t.Errorf("stop reason = %q, want end", resp.StopReason)
	}
}

func TestAnthropicProvider_DefaultMaxTokens(t *testing.T) {
	var got struct {
		MaxTokens int `json:"max_tokens"`
	}
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		anthropicMessage(w, "end_turn", tutorReply)
	})

	if _, err := p.Generate(context.Background(), Prompt(tutorPrompt, 0.1, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MaxTokens != anthropicDefaultMaxTokens {
		t.Fatalf("max_tokens = %d, want %d", got.MaxTokens, anthropicDefaultMaxTokens)
	}
}

func TestAnthropicProvider_RateLimitCarriesRetryAfter(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		anthropicError(w, http.StatusTooManyRequests, "rate_limit_error")
	})

	_, err := p.Generate(context.Background(), Prompt(tutorPrompt, 0.1, 256))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
	if rl.RetryAfter != 7*time.Second {
		t.Errorf("retry after = %s, want 7s", rl.RetryAfter)
	}
}

func TestAnthropicProvider_ErrorClassification(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicError(w, http.StatusUnauthorized, "authentication_error")
	})
	_, err := p.Generate(context.Background(), Prompt(tutorPrompt, 0.1, 256))
	var rejected *ErrRequestRejected
	if !errors.As(err, &rejected) || rejected.Provider != "anthropic" {
		t.Fatalf("expected ErrRequestRejected, got %T (%v)", err, err)
	}

	p = newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicError(w, 529, "overloaded_error")
	})
	_, err = p.Generate(context.Background(), Prompt(tutorPrompt, 0.1, 256))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) || unavail.StatusCode != 529 {
		t.Fatalf("expected ErrProviderUnavailable(529), got %T (%v)", err, err)
	}
}

func TestAnthropicProvider_EmptyReplyAtTokenLimit(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicMessage(w, "max_tokens", "")
	})

	_, err := p.Generate(context.Background(), Prompt(tutorPrompt, 0.1, 64))
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) || maxTok.Limit != 64 {
		t.Fatalf("expected ErrMaxTokensExceeded(64), got %T (%v)", err, err)
	}
}

func TestAnthropicProvider_NoTextBlock(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicMessage(w, "end_turn")
	})

	_, err := p.Generate(context.Background(), Prompt(tutorPrompt, 0.1, 256))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-opus-4-5", "claude-opus-4-5"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
