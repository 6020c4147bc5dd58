package engine

import (
	"context"
	"net"
	"net/url"
	"time"

	"github.com/arman-bd/httpmorph-go/browser"
	"github.com/arman-bd/httpmorph-go/pool"
	"github.com/arman-bd/httpmorph-go/tlsengine"
	"github.com/arman-bd/httpmorph-go/transport"
)

// http1OnlyProfile returns a shallow copy of p with its ALPN offer list
// restricted to "http/1.1". golang.org/x/net/http2 takes over a connection
// the moment ALPN negotiates "h2", and that transport's own read loop would
// then race pool.Pool's liveness probe against the same socket, so a
// session/client that hasn't opted into HTTP/2 must never let the server
// pick it. Cloning rather than mutating the registry's shared profile keeps
// every other session's fingerprint untouched.
func http1OnlyProfile(p *browser.Profile) *browser.Profile {
	clone := *p
	clone.TLS.ALPNProtocols = []string{"http/1.1"}
	return &clone
}

// dialConn establishes a fresh profile-shaped connection for addr ("host:port"),
// tunnelling through proxy if set and, for https, performing the TLS
// handshake. It returns the negotiated ALPN protocol alongside the conn
// ("" for plain HTTP). When timing is non-nil its ConnectUs/TLSUs fields are
// filled in.
func dialConn(ctx context.Context, scheme, addr string, profile *browser.Profile, proxy *url.URL, connectTimeout time.Duration, insecureSkipVerify bool, timing *Timing) (net.Conn, string, error) {
	start := time.Now()
	raw, err := transport.Dial(ctx, transport.Config{Proxy: proxy, DialTimeout: connectTimeout}, scheme, addr)
	if timing != nil {
		timing.ConnectUs = time.Since(start).Microseconds()
	}
	if err != nil {
		return nil, "", err
	}
	if scheme != "https" {
		return raw, "", nil
	}
	host, _, splitErr := net.SplitHostPort(addr)
	if splitErr != nil {
		host = addr
	}
	tlsStart := time.Now()
	tctx, err := tlsengine.Handshake(ctx, raw, host, profile, insecureSkipVerify)
	if timing != nil {
		timing.TLSUs = time.Since(tlsStart).Microseconds()
	}
	if err != nil {
		raw.Close()
		return nil, "", err
	}
	return tctx, tctx.NegotiatedProtocol(), nil
}

// acquireConnection returns a pooled connection for key when one is
// available and alive, or dials a fresh one otherwise. The returned bool
// reports whether the connection came from the pool (and so deserves the
// "stale, retry once before any response bytes" treatment on first-write
// failure). A pooled connection contributes no connect/TLS time.
func acquireConnection(ctx context.Context, p *pool.Pool, key, scheme, addr string, profile *browser.Profile, proxy *url.URL, connectTimeout time.Duration, insecureSkipVerify bool, timing *Timing) (*pool.Connection, bool, error) {
	if c, ok := p.Get(key); ok {
		return c, true, nil
	}
	conn, protocol, err := dialConn(ctx, scheme, addr, profile, proxy, connectTimeout, insecureSkipVerify, timing)
	if err != nil {
		return nil, false, err
	}
	if protocol == "" {
		protocol = "h1"
	}
	return &pool.Connection{Conn: conn, Key: key, Protocol: protocol, CreatedAt: time.Now(), LastUsed: time.Now()}, false, nil
}
