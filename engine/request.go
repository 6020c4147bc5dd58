package engine

import (
	"time"

	"github.com/arman-bd/httpmorph-go/headers"
)

// VerifyMode selects TLS certificate verification behaviour (spec.md §4.2).
type VerifyMode int

const (
	// VerifyStrict validates the peer certificate chain against the system
	// trust store. This is the default.
	VerifyStrict VerifyMode = iota
	// VerifyInsecure skips chain validation. The connection still records
	// that it did so, for the orchestrator to surface if a caller wants it.
	VerifyInsecure
)

// BasicAuth carries RFC 7617 Basic credentials, for either the target
// server (Request.Auth) or a CONNECT proxy (Request.ProxyAuth).
type BasicAuth struct {
	Username string
	Password string
}

// Request is one call's worth of input to Session.Do / Client.Do: the
// per-request arguments of spec.md §4.10, merged against session defaults
// by the orchestrator.
type Request struct {
	Method string
	URL    string

	// Params is merged into the URL's query string (spec.md §8's
	// idempotence property: this engine's choice is "new wins" — see
	// core.roundTripOnce).
	Params map[string][]string

	// Header carries only this call's overrides; the orchestrator overlays
	// it on the session defaults and the browser profile template.
	Header *headers.Ordered

	Body Body

	// CookiesOverride, when CookiesSet is true, replaces jar-sourced
	// cookies entirely for this call (spec.md §4.9), including the empty
	// map meaning "send no cookies".
	CookiesOverride map[string]string
	CookiesSet      bool

	Auth      *BasicAuth
	Proxy     map[string]string // scheme -> proxy URL, overrides session
	ProxyAuth *BasicAuth

	// ConnectTimeout and ReadTimeout are this call's phase timeouts; a zero
	// value means "use the session default".
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// AllowRedirects and MaxRedirects are pointers so "unset" (use session
	// default) is distinguishable from an explicit false/0.
	AllowRedirects *bool
	MaxRedirects   *int

	Verify *VerifyMode
	HTTP2  *bool

	// Stream, when true, skips compression decoding and leaves the body
	// available for chunked consumption instead of eager materialization.
	Stream bool
}

// NewRequest returns a Request with an empty Header ready for Add/Set.
func NewRequest(method, rawURL string) *Request {
	return &Request{Method: method, URL: rawURL, Header: headers.New()}
}
