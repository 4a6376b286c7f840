package endpoint

import (
	"context"
	"net/http"
)

// FetchRequest is a single upstream call.
type FetchRequest struct {
	URL    string
	Method string
}

// FetchResponse is the raw upstream reply.
type FetchResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Fetcher performs HTTP requests on behalf of the endpoints.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (*FetchResponse, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req FetchRequest) (*FetchResponse, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, req FetchRequest) (*FetchResponse, error) {
	return f(ctx, req)
}

type requestIDKey struct{}

// WithRequestID returns a context carrying a request ID for upstream calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored in ctx, if any.
func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}
