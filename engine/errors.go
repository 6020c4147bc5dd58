package engine

import (
	"errors"
	"fmt"

	"github.com/arman-bd/httpmorph-go/transport"
)

// RequestError is the root of this engine's error taxonomy. Every error Do
// can return satisfies it, so callers can distinguish "this engine failed in
// a way it understands" from an unrelated error with a single type switch or
// errors.As(err, new(engine.RequestError)).
type RequestError interface {
	error
	requestError()
}

// ConnectionError reports a DNS failure, refused TCP connection, or TLS
// handshake failure — anything that happened before a request could be
// written. It wraps whatever transport.ConnectionError or
// tlsengine.HandshakeError produced it.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("engine: connect to %s: %v", e.URL, e.Err)
}
func (e *ConnectionError) Unwrap() error { return e.Err }
func (*ConnectionError) requestError()   {}

// ProxyError is a ConnectionError specific to a CONNECT tunnel failure,
// including the 407-authentication-required case
// (errors.Is(err, transport.ErrProxyAuthRequired)).
type ProxyError struct {
	ConnectionError
}

func (*ProxyError) requestError() {}

// Timeout reports that either the connect phase or the read phase exceeded
// its deadline. classifyRoundTripError, which builds every Timeout, always
// sets Phase to "read"; it does not tell a connect timeout apart.
type Timeout struct {
	URL   string
	Phase string // "connect" or "read"
	Err   error
}

func (e *Timeout) Error() string {
	return fmt.Sprintf("engine: %s %s timed out: %v", e.Phase, e.URL, e.Err)
}
func (e *Timeout) Unwrap() error { return e.Err }
func (e *Timeout) Timeout() bool { return true }
func (*Timeout) requestError()   {}

// TooManyRedirects reports that a redirect chain exceeded max_redirects.
type TooManyRedirects struct {
	URL string
	Max int
}

func (e *TooManyRedirects) Error() string {
	return fmt.Sprintf("engine: %s: redirect chain exceeded max_redirects=%d", e.URL, e.Max)
}
func (*TooManyRedirects) requestError() {}

// HTTPError carries a response whose status is >= 400. It is never returned
// by Do itself — only by the caller's explicit call to
// (*Response).RaiseForStatus().
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("engine: %s: HTTP %d", e.URL, e.StatusCode)
}
func (*HTTPError) requestError() {}

// DecodingError reports a body that could not be decompressed. A malformed
// chunked-transfer framing is not reported as a DecodingError: the HTTP/1.1
// path returns it as a ConnectionError.
type DecodingError struct {
	URL string
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("engine: %s: decode body: %v", e.URL, e.Err)
}
func (e *DecodingError) Unwrap() error { return e.Err }
func (*DecodingError) requestError()   {}

// RequestException mirrors spec.md's catch-all base error for failures that
// don't fit a more specific category above (e.g. an unparsable URL or an
// unsupported body type).
type RequestException struct {
	URL string
	Err error
}

func (e *RequestException) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("engine: %v", e.Err)
	}
	return fmt.Sprintf("engine: %s: %v", e.URL, e.Err)
}
func (e *RequestException) Unwrap() error { return e.Err }
func (*RequestException) requestError()   {}

// ErrProxyAuthRequired is returned (wrapped by *ProxyError) when the proxy
// demanded credentials the request did not supply or that it rejected.
var ErrProxyAuthRequired = transport.ErrProxyAuthRequired

// classifyTransportError turns a raw dial/handshake error into a
// RequestError, preserving it via Unwrap.
func classifyTransportError(rawURL string, err error) RequestError {
	var proxyErr *transport.ProxyError
	if as, ok := err.(*transport.ProxyError); ok {
		proxyErr = as
		return &ProxyError{ConnectionError{URL: rawURL, Err: proxyErr}}
	}
	return &ConnectionError{URL: rawURL, Err: err}
}
