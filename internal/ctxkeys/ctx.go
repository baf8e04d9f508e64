package ctxkeys

import (
	"context"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	AdminKey     contextKey = "admin"
)

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Admin returns the subject of the verified admin token, if any.
func Admin(ctx context.Context) string {
	subject, _ := ctx.Value(AdminKey).(string)
	return subject
}

func WithAdmin(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, AdminKey, subject)
}
