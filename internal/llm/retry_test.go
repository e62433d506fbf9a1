package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func outage() error {
	return &ErrProviderUnavailable{Provider: "openai", StatusCode: 503, Err: errors.New("overloaded")}
}

func TestRetry_RecoversFromOutage(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: outage()}, MockResponse{Text: tutorReply})
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), Prompt(tutorPrompt, 0.1, 256))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != tutorReply {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
	// Every attempt sends the same prompt.
	if mock.Calls[0].Messages[0].Content != mock.Calls[1].Messages[0].Content {
		t.Fatal("retry changed the prompt")
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider()
	mock.SetFallback(MockResponse{Err: outage()})
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Prompt(tutorPrompt, 0.1, 256))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected the last outage error, got %T (%v)", err, err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	p := WithRetry(mock, RetryConfig{})

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_PermanentFailuresNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"rejected", &ErrRequestRejected{Provider: "openai", StatusCode: 401, Err: errors.New("bad key")}},
		{"token budget spent", &ErrMaxTokensExceeded{Provider: "openai", Limit: 256}},
		{"deadline", context.DeadlineExceeded},
		{"canceled", context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(MockResponse{Err: tt.err}, MockResponse{Text: "never reached"})
			p := WithRetry(mock, retryConfig())

			_, err := p.Generate(context.Background(), Request{})
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if mock.CallCount() != 1 {
				t.Fatalf("expected 1 call, got %d", mock.CallCount())
			}
		})
	}
}

func TestRetry_BlankReplyRetriedOnce(t *testing.T) {
	blank := &ErrInvalidResponse{Provider: "openai", Err: errors.New("reply has no text")}
	mock := NewMockProvider(
		MockResponse{Err: blank},
		MockResponse{Err: blank},
		MockResponse{Text: "never reached"},
	)
	p := WithRetry(mock, retryConfig())

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{Provider: "anthropic", RetryAfter: 20 * time.Millisecond, Err: errors.New("429")}},
		MockResponse{Text: "ok"},
	)
	p := WithRetry(mock, retryConfig())

	start := time.Now()
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if waited := time.Since(start); waited < 20*time.Millisecond {
		t.Fatalf("retried after %s, before Retry-After elapsed", waited)
	}
}

// A session bounds each operation with its own deadline. A backoff that
// would outlast it must not be slept through.
func TestRetry_StopsWhenBackoffOutlastsDeadline(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{Provider: "openai", RetryAfter: time.Hour, Err: errors.New("429")}},
		MockResponse{Text: "never reached"},
	)
	p := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Generate(ctx, Prompt(tutorPrompt, 0.1, 256))
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("waited %s despite the deadline", elapsed)
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected the rate limit error, got %T (%v)", err, err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_DeadlineDuringBackoff(t *testing.T) {
	mock := NewMockProvider()
	mock.SetFallback(MockResponse{Err: outage()})
	cfg := RetryConfig{MaxAttempts: 5, InitialWait: 30 * time.Millisecond, MaxWait: 30 * time.Millisecond, Multiplier: 1}
	p := WithRetry(mock, cfg)

	// Long enough for the first backoff check to pass, short enough to
	// expire while waiting.
	ctx, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	_, err := p.Generate(ctx, Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavail *ErrProviderUnavailable
	if !errors.Is(err, context.DeadlineExceeded) && !errors.As(err, &unavail) {
		t.Fatalf("expected a deadline or the last outage, got %T (%v)", err, err)
	}
	if mock.CallCount() >= 5 {
		t.Fatalf("expected the deadline to cut retries short, got %d calls", mock.CallCount())
	}
}

func TestRetry_CancelledBeforeFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	p := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), retryConfig())
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}
