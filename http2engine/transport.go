// Package http2engine wraps golang.org/x/net/http2 to carry part of a
// browser profile's HTTP/2 connection-preface shape (component C5): the
// header table size and max header list size SETTINGS values. The profile's
// SETTINGS order, initial window size and WINDOW_UPDATE increment are not
// applied; the library sends its own.
//
// golang.org/x/net/http2 owns HPACK compression and frame serialization
// internally; this package only configures the knobs it exposes. Header
// ordering itself is applied exactly once, by the orchestrator's
// headers.Ordered template (the same one C4's HTTP/1.1 codec writes),
// before the *http.Request ever reaches Transport.RoundTrip — so this
// package's roundTripper is a pass-through and must not re-apply the
// profile's header defaults, which would duplicate every one of them on
// the wire.
package http2engine

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/http2"

	"github.com/arman-bd/httpmorph-go/browser"
	"github.com/arman-bd/httpmorph-go/tlsengine"
	"github.com/arman-bd/httpmorph-go/transport"
)

// PseudoHeaderOrder documents the order a real browser writes HTTP/2
// pseudo-headers. golang.org/x/net/http2 hard-codes its own pseudo-header
// write order internally and exposes no hook to override it, so this
// engine cannot achieve byte-level fidelity there — the same fidelity gap
// the teacher of this package's HTTP/1.1 sibling documents for SETTINGS
// ordering. PseudoHeaderOrder is kept here for callers that want to record
// or reason about the target order even though it can't be enforced.
func PseudoHeaderOrder(p *browser.Profile) [4]string { return p.HTTP2.PseudoHeaderOrder }

// Config groups the parameters NewTransport needs beyond what's already on
// the browser.Profile.
type Config struct {
	Profile     *browser.Profile
	Proxy       *url.URL
	DialTimeout time.Duration

	IdleConnTimeout time.Duration
	PingTimeout     time.Duration
	ReadIdleTimeout time.Duration

	InsecureSkipVerify bool
}

// NewTransport returns an http.RoundTripper that dials with a profile-shaped
// TLS ClientHello and configures golang.org/x/net/http2's exposed SETTINGS
// knobs (header table size, max header list size) from the same profile.
func NewTransport(cfg Config) http.RoundTripper {
	profile := cfg.Profile
	if profile == nil {
		profile = browser.Default()
	}
	idle := cfg.IdleConnTimeout
	if idle == 0 {
		idle = 90 * time.Second
	}

	dial := dialer{profile: profile, proxy: cfg.Proxy, dialTimeout: cfg.DialTimeout, insecureSkipVerify: cfg.InsecureSkipVerify}

	h2t := &http2.Transport{
		DialTLSContext:     dial.dialTLSContext,
		DisableCompression: false,
		IdleConnTimeout:    idle,
		PingTimeout:        cfg.PingTimeout,
		ReadIdleTimeout:    cfg.ReadIdleTimeout,
	}

	for _, s := range profile.HTTP2.Settings {
		switch s.ID {
		case browser.SettingsHeaderTableSize:
			h2t.MaxDecoderHeaderTableSize = s.Value
			h2t.MaxEncoderHeaderTableSize = s.Value
		case browser.SettingsMaxHeaderListSize:
			h2t.MaxHeaderListSize = s.Value
		}
	}

	return &roundTripper{h2: h2t, profile: profile}
}

// dialer bridges http2.Transport's DialTLSContext hook (which expects to
// hand back a net.Conn on top of a *tls.Config it doesn't know we're
// ignoring) to transport.Dial + tlsengine.Handshake.
type dialer struct {
	profile            *browser.Profile
	proxy              *url.URL
	dialTimeout        time.Duration
	insecureSkipVerify bool
}

func (d dialer) dialTLSContext(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
	raw, err := transport.Dial(ctx, transport.Config{Proxy: d.proxy, DialTimeout: d.dialTimeout}, "https", addr)
	if err != nil {
		return nil, err
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	tctx, err := tlsengine.Handshake(ctx, raw, host, d.profile, d.insecureSkipVerify)
	if err != nil {
		raw.Close()
		return nil, err
	}
	return tctx, nil
}

// roundTripper delegates framing entirely to http2.Transport. It carries
// profile only so callers inspecting a constructed Transport (e.g. tests)
// can confirm which profile it was built for — RoundTrip itself must not
// touch req.Header, since the caller (engine.core.buildHeaders, for both
// the h1 and h2 paths) has already applied the profile's ordered header
// template plus any overrides before handing the request here.
type roundTripper struct {
	h2      *http2.Transport
	profile *browser.Profile
}

func (t *roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.h2.RoundTrip(req)
}
