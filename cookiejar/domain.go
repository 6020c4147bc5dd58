package cookiejar

import (
	"net"
	"net/url"
	"strings"
)

// canonicalDomain lowercases host and strips a trailing dot, per RFC 6265
// §5.1.3.
func canonicalDomain(host string) string {
	host = strings.ToLower(host)
	return strings.TrimSuffix(host, ".")
}

// domainMatch reports whether cookieDomain (already canonical, without a
// leading dot) matches requestHost, per RFC 6265 §5.1.3: exact match, or
// requestHost is a subdomain of cookieDomain.
func domainMatch(requestHost, cookieDomain string) bool {
	requestHost = canonicalDomain(requestHost)
	if requestHost == cookieDomain {
		return true
	}
	if !strings.HasSuffix(requestHost, "."+cookieDomain) {
		return false
	}
	// Guard against an all-numeric requestHost matching a domain cookie
	// (RFC 6265 forbids IP addresses from being treated as domain-matchable).
	return net.ParseIP(requestHost) == nil
}

// defaultPath implements RFC 6265 §5.1.4's default-path algorithm for a
// Set-Cookie response that omitted the Path attribute.
func defaultPath(requestPath string) string {
	if requestPath == "" || requestPath[0] != '/' {
		return "/"
	}
	idx := strings.LastIndexByte(requestPath, '/')
	if idx == 0 {
		return "/"
	}
	return requestPath[:idx]
}

// pathMatch implements RFC 6265 §5.1.4's path-match algorithm.
func pathMatch(requestPath, cookiePath string) bool {
	if requestPath == cookiePath {
		return true
	}
	if strings.HasPrefix(requestPath, cookiePath) {
		if strings.HasSuffix(cookiePath, "/") {
			return true
		}
		if requestPath[len(cookiePath)] == '/' {
			return true
		}
	}
	return false
}

// urlPath returns u.Path, defaulting to "/" like net/http does for an empty
// request-target path.
func urlPath(u *url.URL) string {
	if u.Path == "" {
		return "/"
	}
	return u.Path
}
