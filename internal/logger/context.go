package logger

import "context"

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// chatIDKey is the context key for the chat correlation ID.
var chatIDKey = contextKey{}

// WithChatID returns a new context with the given chat correlation ID stored.
func WithChatID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, chatIDKey, id)
}

// ChatID extracts the chat correlation ID from the context.
// Returns an empty string if none is set.
func ChatID(ctx context.Context) string {
	id, _ := ctx.Value(chatIDKey).(string)
	return id
}
