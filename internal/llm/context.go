package llm

import "context"

type (
	purposeKey struct{}
	sessionKey struct{}
)

// WithPurpose labels the calls made under ctx for the audit log, e.g.
// "explain" or "evaluate".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose label of ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// WithSession ties the calls made under ctx to a tutoring session so the
// audit log can be filtered per student conversation.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionFrom returns the session ID attached to ctx, if any.
func SessionFrom(ctx context.Context) string {
	v, _ := ctx.Value(sessionKey{}).(string)
	return v
}
