package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrRateLimit reports a 429 from the provider. RetryAfter is set when the
// provider said how long to back off.
type ErrRateLimit struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: rate limited, retry after %s: %v", label(e.Provider), e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("%s: rate limited: %v", label(e.Provider), e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable reports a 5xx or a transport failure. StatusCode is
// zero when no HTTP response arrived.
type ErrProviderUnavailable struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ErrProviderUnavailable) Error() string {
	msg := label(e.Provider) + ": provider unavailable"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRequestRejected reports a 4xx other than 429: a bad API key, an unknown
// model or a prompt the provider refuses. Sending it again cannot help.
type ErrRequestRejected struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("%s: request rejected (HTTP %d): %v", label(e.Provider), e.StatusCode, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// ErrInvalidResponse reports a reply the tutor cannot use, such as one with
// no text at all.
type ErrInvalidResponse struct {
	Provider string
	Err      error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("%s: invalid response: %v", label(e.Provider), e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded reports a reply that hit the token limit before any
// visible text was produced. Reasoning models do this when the whole budget
// goes to hidden reasoning. A truncated reply that still has text is
// returned as a normal Response with StopReason "max_tokens".
type ErrMaxTokensExceeded struct {
	Provider string
	Limit    int
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("%s: reply empty after reaching the %d token limit", label(e.Provider), e.Limit)
}

func label(provider string) string {
	if provider == "" {
		return "llm"
	}
	return provider
}

// classifyStatus maps an HTTP status from a provider SDK error onto the
// typed errors above.
func classifyStatus(provider string, status int, retryAfter time.Duration, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Provider: provider, RetryAfter: retryAfter, Err: err}
	case status >= 400 && status < 500:
		return &ErrRequestRejected{Provider: provider, StatusCode: status, Err: err}
	default:
		return &ErrProviderUnavailable{Provider: provider, StatusCode: status, Err: err}
	}
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After")))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// checkReply rejects replies with no visible text, telling a spent token
// budget apart from an otherwise empty answer.
func checkReply(provider string, resp *Response, limit int) error {
	if strings.TrimSpace(resp.Text) != "" {
		return nil
	}
	if resp.StopReason == "max_tokens" {
		return &ErrMaxTokensExceeded{Provider: provider, Limit: limit}
	}
	return &ErrInvalidResponse{Provider: provider, Err: errors.New("reply has no text")}
}
