// Package requestctx carries per-request values between middleware and handlers.
package requestctx

import "context"

type requestIDKey struct{}

type callerKey struct{}

// Caller is the authenticated employee behind a request.
type Caller struct {
	EmployeeID string
	Role       string
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stamped by the request-id middleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}
