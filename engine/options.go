package engine

import (
	"net/url"
	"time"

	"github.com/arman-bd/httpmorph-go/browser"
	"github.com/arman-bd/httpmorph-go/headers"
	"github.com/arman-bd/httpmorph-go/metrics"
	"github.com/arman-bd/httpmorph-go/pool"
)

// config is the shared construction state for both Session and Client;
// Option mutates it. Keeping the two constructors (NewSession, NewClient)
// thin wrappers around the same option set mirrors the teacher's
// config.Config/DefaultConfig pattern of one settings bag consulted at
// construction time.
type config struct {
	profile *browser.Profile
	os      browser.OS
	http2   bool
	verify  VerifyMode

	proxy map[string]*url.URL

	pool *pool.Pool

	header *headers.Ordered

	metrics *metrics.Metrics

	connectTimeout time.Duration
	readTimeout    time.Duration
	maxRedirects   int
}

func newConfig() *config {
	return &config{
		profile:        browser.Default(),
		os:             browser.OSMacOS,
		http2:          false,
		verify:         VerifyStrict,
		proxy:          make(map[string]*url.URL),
		header:         headers.New(),
		connectTimeout: 10 * time.Second,
		readTimeout:    30 * time.Second,
		maxRedirects:   30,
	}
}

// Option configures a Session or Client at construction time.
type Option func(*config)

// WithProfile selects the browser.Profile (by registry id, e.g. "chrome",
// "firefox", "safari17") whose wire shape this session/client reproduces.
func WithProfile(id string) Option {
	return func(c *config) {
		if p, err := browser.Lookup(id); err == nil {
			c.profile = p
		}
	}
}

// WithOS selects which OS variant of the profile's User-Agent to send.
func WithOS(os browser.OS) Option {
	return func(c *config) { c.os = os }
}

// WithHTTP2 toggles HTTP/2 preference (spec.md §6's `http2` option). When
// false, the TLS ClientHello used for this session/client's connections
// offers only "http/1.1" in ALPN — see http1OnlyProfile in dial.go for why
// this is the chosen interpretation of a per-session http2 toggle on a fingerprint
// whose ALPN offer list is otherwise fixed by the profile.
func WithHTTP2(enabled bool) Option {
	return func(c *config) { c.http2 = enabled }
}

// WithVerify sets the TLS certificate verification policy.
func WithVerify(mode VerifyMode) Option {
	return func(c *config) { c.verify = mode }
}

// WithProxy sets a single proxy URL used for both "http" and "https"
// targets. rawURL may carry Basic-auth userinfo.
func WithProxy(rawURL string) Option {
	return func(c *config) {
		u, err := url.Parse(rawURL)
		if err != nil {
			return
		}
		c.proxy["http"] = u
		c.proxy["https"] = u
	}
}

// WithProxies sets a per-scheme proxy mapping, e.g.
// {"http": "http://p1:8080", "https": "http://p2:8080"}.
func WithProxies(byScheme map[string]string) Option {
	return func(c *config) {
		for scheme, raw := range byScheme {
			if u, err := url.Parse(raw); err == nil {
				c.proxy[scheme] = u
			}
		}
	}
}

// WithPool overrides the connection pool a Session/Client uses. Pass the
// same *pool.Pool to multiple sessions to share connections across them,
// per spec.md §3's ConnectionPool invariant ("process-scoped").
func WithPool(p *pool.Pool) Option {
	return func(c *config) { c.pool = p }
}

// WithTimeouts sets the default connect/read phase timeouts (spec.md §4.10
// step 7); a zero value leaves the built-in default in place.
func WithTimeouts(connect, read time.Duration) Option {
	return func(c *config) {
		if connect > 0 {
			c.connectTimeout = connect
		}
		if read > 0 {
			c.readTimeout = read
		}
	}
}

// WithMaxRedirects sets the default redirect chain cap (spec.md §4.10).
func WithMaxRedirects(n int) Option {
	return func(c *config) { c.maxRedirects = n }
}

// WithHeader adds a persistent default header sent on every request issued
// through this session/client, overridable per-call.
func WithHeader(key, value string) Option {
	return func(c *config) { c.header.Add(key, value) }
}

// WithMetrics attaches m to this session/client: every request's outcome
// (success/failure) and every redirect hop followed increments m's
// counters. Pass the same *metrics.Metrics to several sessions/clients (or
// to jobs submitted through a single worker.WorkerPool) to aggregate across
// them, the way cmd/httpmorph-demo reports one Snapshot for a whole batch.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// sharedPool is the process-scoped default connection pool (spec.md §3):
// every Session/Client constructed without WithPool shares this single
// pool, so connection reuse crosses session boundaries exactly as the
// "process-scoped ConnectionPool" data-model invariant requires.
var sharedPool = pool.New(0, 0, 0)
