// Package reqctx carries per-request metadata (caller identity and client details) on a context.
package reqctx

import "context"

type contextKey struct{}

// Metadata describes the request that triggered an operation
type Metadata struct {
	RequestID string
	IPAddress string
	UserAgent string
	UserID    string
	UserRole  string
}

// WithMetadata returns a copy of ctx carrying md
func WithMetadata(ctx context.Context, md Metadata) context.Context {
	return context.WithValue(ctx, contextKey{}, md)
}

// FromContext returns the metadata stored on ctx, or the zero value
func FromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	md, _ := ctx.Value(contextKey{}).(Metadata)
	return md
}

// WithActor sets the authenticated caller on the metadata stored in ctx
func WithActor(ctx context.Context, userID, role string) context.Context {
	md := FromContext(ctx)
	md.UserID = userID
	md.UserRole = role
	return WithMetadata(ctx, md)
}
