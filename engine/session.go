package engine

import (
	"context"

	"github.com/arman-bd/httpmorph-go/cookiejar"
)

// Session is a stateful client: it keeps a cookiejar.Jar across calls, the
// way a browser tab keeps cookies across navigations, and reuses pooled
// connections between them (spec.md §3's Session type).
type Session struct {
	core *core
	jar  *cookiejar.Jar
}

// NewSession builds a Session from the given Options. Unless WithPool is
// used, it shares the process-wide default connection pool with every other
// Session/Client that also didn't request one of its own.
func NewSession(opts ...Option) (*Session, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Session{core: newCore(cfg), jar: cookiejar.New()}, nil
}

// Do issues req and follows redirects, reading and writing cookies through
// the Session's jar.
func (s *Session) Do(ctx context.Context, req *Request) (*Response, error) {
	return s.core.do(ctx, req, s.jar)
}

// Jar returns the Session's cookie jar, for callers that want to inspect or
// seed it directly.
func (s *Session) Jar() *cookiejar.Jar { return s.jar }

// Close releases the Session's idle pooled connections. It is safe to call
// even when the Session shares the process-wide default pool with other
// Sessions/Clients — they simply redial on their next request.
func (s *Session) Close() error {
	s.core.pool.CloseIdle()
	return nil
}
