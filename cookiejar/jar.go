// Package cookiejar implements an RFC 6265 cookie jar that preserves
// insertion order and the creation time of an updated cookie (component
// C7). The standard library's net/http/cookiejar stores cookies in an
// unordered map, so a Cookie header built from it can't reproduce the order
// a real browser would send cookies in, and it discards a cookie's original
// creation time on update — both of which this engine's fingerprinting goal
// requires.
package cookiejar

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// entry is this jar's internal representation of one stored cookie.
type entry struct {
	name, value       string
	domain            string // canonical, without a leading dot
	hostOnly          bool
	path              string
	secure, httpOnly  bool
	sameSite          http.SameSite
	persistent        bool
	expires           time.Time
	created, lastSeen time.Time
}

func (e *entry) key() string {
	return e.domain + ";" + e.path + ";" + e.name
}

func (e *entry) expired(now time.Time) bool {
	return e.persistent && !e.expires.IsZero() && now.After(e.expires)
}

// Jar is a cookie store safe for concurrent use by multiple goroutines.
type Jar struct {
	mu    sync.Mutex
	byKey map[string]*entry
	order []string // keys, in first-insertion order
}

// New returns an empty Jar.
func New() *Jar {
	return &Jar{byKey: make(map[string]*entry)}
}

// SetCookies stores the cookies a response to u sent in its Set-Cookie
// headers. Cookies are parsed by net/http (http.Response.Cookies /
// http.ReadSetCookies upstream of this call); SetCookies only applies
// RFC 6265 domain/path defaulting, rejection rules, and insertion-order and
// creation-time bookkeeping.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	now := timeNow()
	requestHost := canonicalDomain(u.Hostname())

	j.mu.Lock()
	defer j.mu.Unlock()

	for _, c := range cookies {
		e, ok := j.toEntry(c, requestHost, u, now)
		if !ok {
			continue // rejected: empty name or domain mismatch
		}
		key := e.key()
		if existing, found := j.byKey[key]; found {
			e.created = existing.created // preserve creation time across updates
			if e.expired(now) {
				delete(j.byKey, key)
				j.removeFromOrder(key)
				continue
			}
			j.byKey[key] = e
			continue // keep its original position in j.order
		}
		if e.expired(now) {
			continue // a brand-new cookie that's already expired: no-op
		}
		j.byKey[key] = e
		j.order = append(j.order, key)
	}
}

func (j *Jar) removeFromOrder(key string) {
	for i, k := range j.order {
		if k == key {
			j.order = append(j.order[:i], j.order[i+1:]...)
			return
		}
	}
}

func (j *Jar) toEntry(c *http.Cookie, requestHost string, u *url.URL, now time.Time) (*entry, bool) {
	if c.Name == "" {
		return nil, false
	}

	domain := canonicalDomain(c.Domain)
	hostOnly := domain == ""
	if hostOnly {
		domain = requestHost
	} else if !domainMatch(requestHost, domain) {
		return nil, false // a server may not set cookies for a domain it isn't part of
	}

	path := c.Path
	if path == "" {
		path = defaultPath(urlPath(u))
	}

	e := &entry{
		name:     c.Name,
		value:    c.Value,
		domain:   domain,
		hostOnly: hostOnly,
		path:     path,
		secure:   c.Secure,
		httpOnly: c.HttpOnly,
		sameSite: c.SameSite,
		created:  now,
		lastSeen: now,
	}
	switch {
	case !c.Expires.IsZero():
		e.persistent = true
		e.expires = c.Expires
	case c.MaxAge < 0:
		e.persistent = true
		e.expires = time.Unix(0, 0) // already expired: deletes any existing cookie
	case c.MaxAge > 0:
		e.persistent = true
		e.expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	}
	return e, true
}

// Cookies returns the cookies that apply to a request for u, in
// insertion order (spec.md §4.7: the serialized `Cookie:` header is built
// "in insertion-order"), not the path-length/creation-time order RFC 6265
// §5.4 recommends. j.order already tracks first-insertion order and a
// cookie updated in place keeps its original slot (see SetCookies), so a
// single pass over j.order under j.mu is enough — no secondary sort.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	now := timeNow()
	requestHost := canonicalDomain(u.Hostname())
	requestPath := urlPath(u)
	isSecure := u.Scheme == "https"

	j.mu.Lock()
	defer j.mu.Unlock()

	var out []*http.Cookie
	for _, key := range j.order {
		e := j.byKey[key]
		if e == nil || e.expired(now) {
			continue
		}
		if e.hostOnly {
			if e.domain != requestHost {
				continue
			}
		} else if !domainMatch(requestHost, e.domain) {
			continue
		}
		if !pathMatch(requestPath, e.path) {
			continue
		}
		if e.secure && !isSecure {
			continue
		}
		out = append(out, &http.Cookie{Name: e.name, Value: e.value})
	}
	return out
}

// CookieHeader renders the cookies that apply to u as a single Cookie
// header value ("a=1; b=2"), in the same order Cookies returns them.
func (j *Jar) CookieHeader(u *url.URL) string {
	cookies := j.Cookies(u)
	parts := make([]string, len(cookies))
	for i, c := range cookies {
		parts[i] = c.Name + "=" + c.Value
	}
	return strings.Join(parts, "; ")
}

// timeNow exists so tests can't accidentally depend on wall-clock ordering
// within the same nanosecond-granularity tick on fast machines; production
// code always uses time.Now.
var timeNow = time.Now
