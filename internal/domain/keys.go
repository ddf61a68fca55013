package domain

import "context"

type CtxKey string

const (
	KeyCaller    CtxKey = "Caller"
	KeyRequestID CtxKey = "RequestID"
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// ContextWithCaller attaches the caller to ctx.
func ContextWithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, KeyCaller, caller)
}

// CallerFromContext returns the caller set by the auth middleware, if any.
func CallerFromContext(ctx context.Context) (*Caller, bool) {
	caller, ok := ctx.Value(KeyCaller).(*Caller)
	return caller, ok && caller != nil
}
