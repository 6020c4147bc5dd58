// Package transport establishes the raw byte-level connection a request
// runs over (component C3): a direct TCP dial, a TCP dial to a proxy
// followed by an HTTP CONNECT tunnel (for an https target, or any target
// the caller asks to tunnel), or a plain TCP dial to the proxy with no
// CONNECT handshake at all (for a cleartext-HTTP target, which the caller
// then addresses with an absolute-form request line per RFC 7230 §5.3.2). It
// hands back a plain net.Conn — TLS, if the scheme calls for it, is layered
// on top by tlsengine.
package transport

import (
	"context"
	"net"
	"net/url"
	"time"
)

// Config controls how Dial reaches a target host.
type Config struct {
	// Proxy, if non-nil, is an http:// or https:// proxy URL (optionally
	// carrying userinfo credentials) this dial routes through. A nil Proxy
	// dials the target directly. How the proxy is used depends on the
	// target scheme passed to Dial: an https target tunnels through HTTP
	// CONNECT, a cleartext-HTTP target does not — see Dial.
	Proxy *url.URL

	DialTimeout time.Duration
	KeepAlive   time.Duration
}

func (c Config) dialer() *net.Dialer {
	d := &net.Dialer{Timeout: c.DialTimeout, KeepAlive: c.KeepAlive}
	if d.Timeout == 0 {
		d.Timeout = 10 * time.Second
	}
	if d.KeepAlive == 0 {
		d.KeepAlive = 30 * time.Second
	}
	return d
}

// Dial returns a connection to addr ("host:port") for a request targeting
// the given scheme ("http" or "https"), transparently routing through
// Config.Proxy when one is set. The returned conn has TCP_NODELAY enabled
// (browsers disable Nagle's algorithm for latency-sensitive requests)
// whenever the underlying connection is a *net.TCPConn.
//
// Proxy routing has two modes, per spec.md §4.3:
//   - scheme == "https": Dial opens a CONNECT tunnel through the proxy to
//     addr and hands back the tunnel — tlsengine then layers TLS on top of
//     it end-to-end to the real origin, exactly as if the proxy weren't
//     there. This is the only way to proxy a TLS connection: the proxy
//     can't read the encrypted bytes to route them any other way.
//   - scheme == "http": the request itself travels as plaintext, so the
//     proxy can route it directly. Dial just connects to the proxy and
//     returns that raw conn with no CONNECT handshake; the caller is
//     responsible for writing an absolute-form request line (the full
//     "http://host/path" URI, per RFC 7230 §5.3.2) naming addr, since the
//     proxy has no tunnel context to infer the target from.
func Dial(ctx context.Context, cfg Config, scheme, addr string) (net.Conn, error) {
	if cfg.Proxy == nil {
		conn, err := cfg.dialer().DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, &ConnectionError{Addr: addr, Err: err}
		}
		disableNagle(conn)
		return conn, nil
	}

	proxyAddr := cfg.Proxy.Host
	if cfg.Proxy.Port() == "" {
		proxyAddr = net.JoinHostPort(cfg.Proxy.Hostname(), defaultPortForScheme(cfg.Proxy.Scheme))
	}

	conn, err := cfg.dialer().DialContext(ctx, "tcp", proxyAddr)
	if err != nil {
		return nil, &ConnectionError{Addr: proxyAddr, Err: err}
	}
	disableNagle(conn)

	if scheme != "https" {
		// Cleartext target: no tunnel, the caller writes an absolute-form
		// request line directly to this connection.
		return conn, nil
	}

	if err := connectTunnel(ctx, conn, cfg.Proxy, addr); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func disableNagle(conn net.Conn) {
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
}

func defaultPortForScheme(scheme string) string {
	if scheme == "https" {
		return "443"
	}
	return "80"
}
