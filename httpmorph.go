// Package httpmorph exposes package-level Get/Post convenience functions
// backed by a lazily-constructed, process-default engine.Client, mirroring
// the original's module-level requests.get/requests.post shortcuts
// (spec.md §6).
package httpmorph

import (
	"context"
	"net/http"
	"sync"

	"github.com/arman-bd/httpmorph-go/engine"
)

var (
	defaultOnce   sync.Once
	defaultClient *engine.Client
)

func client() *engine.Client {
	defaultOnce.Do(func() {
		defaultClient = engine.NewClient()
	})
	return defaultClient
}

// Get issues a GET request through the process-default Client.
func Get(ctx context.Context, url string) (*engine.Response, error) {
	return client().Do(ctx, engine.NewRequest(http.MethodGet, url))
}

// Post issues a POST request with body through the process-default Client.
func Post(ctx context.Context, url string, body engine.Body) (*engine.Response, error) {
	req := engine.NewRequest(http.MethodPost, url)
	req.Body = body
	return client().Do(ctx, req)
}

// NewSession constructs a new, independent engine.Session, for callers that
// need cookie persistence across calls instead of the stateless Get/Post
// shortcuts.
func NewSession(opts ...engine.Option) (*engine.Session, error) {
	return engine.NewSession(opts...)
}

// NewClient constructs a new, independent engine.Client.
func NewClient(opts ...engine.Option) *engine.Client {
	return engine.NewClient(opts...)
}
