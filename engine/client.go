package engine

import "context"

// Client is a stateless, one-shot request issuer: no cookie jar persists
// between calls, though a single call can still pin an explicit cookie set
// via Request.CookiesOverride (spec.md §6's Client, as distinct from
// Session). It shares the same connection pool and profile configuration
// machinery as Session.
type Client struct {
	core *core
}

// NewClient builds a Client from the given Options.
func NewClient(opts ...Option) *Client {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Client{core: newCore(cfg)}
}

// Do issues req and follows redirects. No cookie jar is consulted or
// updated; only an explicit Request.CookiesOverride affects the Cookie
// header sent.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	return c.core.do(ctx, req, nil)
}

// Close closes every idle connection in the Client's pool, which is the
// process-wide default pool shared with other Sessions/Clients unless
// WithPool was used.
func (c *Client) Close() error {
	c.core.pool.CloseIdle()
	return nil
}
