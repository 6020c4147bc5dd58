// Package tlsengine performs the browser-shaped TLS handshake (component
// C2): it takes an established connection (plain TCP, or already tunnelled
// through a proxy by the transport package) and a browser.Profile, and
// produces a TLS connection whose ClientHello is byte-shaped according to
// that profile.
package tlsengine

import (
	"context"
	"net"

	"github.com/arman-bd/httpmorph-go/browser"
	utls "github.com/refraction-networking/utls"
)

// Context is an established, profile-shaped TLS connection. It embeds
// *utls.UConn, so it satisfies net.Conn directly and can be handed straight
// to an HTTP/1.1 codec or to golang.org/x/net/http2's DialTLSContext hook.
type Context struct {
	*utls.UConn
	profile *browser.Profile
}

// Handshake performs a TLS handshake over conn using the ClientHello shape
// described by profile, verifying the peer against serverName unless
// insecureSkipVerify is set (engine.WithVerify(engine.VerifyInsecure)).
//
// GREASE values are never cached: buildSpec constructs a brand new
// *utls.ClientHelloSpec on every call, so each connection gets independently
// randomised GREASE cipher suites, groups and extension codepoints, exactly
// as a real browser would draw them fresh per connection.
func Handshake(ctx context.Context, conn net.Conn, serverName string, profile *browser.Profile, insecureSkipVerify bool) (*Context, error) {
	cfg := &utls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: insecureSkipVerify,
	}

	uconn := utls.UClient(conn, cfg, utls.HelloCustom)
	if err := uconn.ApplyPreset(buildSpec(profile)); err != nil {
		return nil, &HandshakeError{ServerName: serverName, Err: err}
	}

	if err := uconn.HandshakeContext(ctx); err != nil {
		return nil, classifyHandshakeError(serverName, err)
	}

	return &Context{UConn: uconn, profile: profile}, nil
}

// NegotiatedProtocol returns the ALPN protocol selected during the
// handshake ("h2", "http/1.1", or "" if ALPN wasn't negotiated).
func (c *Context) NegotiatedProtocol() string {
	return c.ConnectionState().NegotiatedProtocol
}

// Profile returns the browser profile this connection was shaped from.
func (c *Context) Profile() *browser.Profile { return c.profile }
