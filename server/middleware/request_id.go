package middleware

import "context"

// requestIDKey ключ request ID в контексте
type requestIDKey struct{}

// SetRequestID сохраняет request ID в контексте
func SetRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, reqID)
}

// GetRequestID извлекает request ID из контекста
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
