package engine

import (
	"encoding/base64"
	"errors"
	"net/url"
)

// basicAuthHeader renders a's credentials as an RFC 7617 Authorization
// header value.
func basicAuthHeader(a *BasicAuth) string {
	raw := a.Username + ":" + a.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// proxyAuthHeader renders proxy's userinfo as a Proxy-Authorization header
// value, for the absolute-form cleartext-HTTP-via-proxy path (spec.md §4.3)
// where there is no CONNECT handshake to carry the credentials instead.
func proxyAuthHeader(proxy *url.URL) string {
	password, _ := proxy.User.Password()
	raw := proxy.User.Username() + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// timeouter matches any error type exposing Timeout() bool, including
// net.Error, tlsengine.TimeoutError and this package's own Timeout, without
// requiring the deprecated net.Error.Temporary method.
type timeouter interface {
	Timeout() bool
}

// classifyRoundTripError turns a raw dial/handshake/write/read error into
// this engine's RequestError taxonomy. A net.Error reporting Timeout() is
// surfaced as a Timeout; everything else is a connection failure (including
// a proxy CONNECT failure, via classifyTransportError).
//
// No phase marker reaches this function, so every Timeout it builds has
// Phase "read", whether the deadline hit during connect or during read.
func classifyRoundTripError(rawURL string, err error) RequestError {
	if re, ok := err.(RequestError); ok {
		return re
	}
	var to timeouter
	if errors.As(err, &to) && to.Timeout() {
		return &Timeout{URL: rawURL, Phase: "read", Err: err}
	}
	return classifyTransportError(rawURL, err)
}
