// Package api implements the single egress point for backend REST calls:
// a JSON HTTP client that attaches the persisted bearer token and treats
// an authorization failure outside the auth endpoints as session expiry.
package api

import "context"

// Client is the backend API surface consumed by pages. Body and out are
// JSON-encoded/decoded; out may be nil when no response body is expected.
type Client interface {
	Do(ctx context.Context, method, path string, body, out any) error
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// TokenSource is the subset of the persisted token store the client needs.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
