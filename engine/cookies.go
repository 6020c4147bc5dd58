package engine

import (
	"net/http"
	"net/url"

	"github.com/arman-bd/httpmorph-go/cookiejar"
	"github.com/arman-bd/httpmorph-go/headers"
)

// extractSetCookies parses every Set-Cookie header in h the way net/http
// does (leading on http.Header's own RFC 6265 tokenizer via a synthetic
// Response, per cookiejar's documented contract) and stores them in jar
// against u.
func extractSetCookies(jar *cookiejar.Jar, u *url.URL, h *headers.Ordered) {
	if jar == nil {
		return
	}
	var raw []string
	for _, e := range h.Entries() {
		if http.CanonicalHeaderKey(e.Key) == "Set-Cookie" {
			raw = append(raw, e.Value)
		}
	}
	if len(raw) == 0 {
		return
	}
	synthetic := &http.Response{Header: http.Header{"Set-Cookie": raw}}
	jar.SetCookies(u, synthetic.Cookies())
}

// cookieHeaderFor resolves the Cookie header value for one request, honoring
// a per-request override (spec.md §4.9): CookiesSet true always wins,
// including an empty map meaning "send none"; otherwise the jar (if any)
// supplies the value.
func cookieHeaderFor(jar *cookiejar.Jar, u *url.URL, req *Request) string {
	if req.CookiesSet {
		if len(req.CookiesOverride) == 0 {
			return ""
		}
		pairs := make([]string, 0, len(req.CookiesOverride))
		for k, v := range req.CookiesOverride {
			pairs = append(pairs, k+"="+v)
		}
		out := pairs[0]
		for _, p := range pairs[1:] {
			out += "; " + p
		}
		return out
	}
	if jar == nil {
		return ""
	}
	return jar.CookieHeader(u)
}
