package cookiejar_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/arman-bd/httpmorph-go/cookiejar"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestSetAndGetHostOnlyCookie(t *testing.T) {
	j := cookiejar.New()
	u := mustURL(t, "https://example.com/path")
	j.SetCookies(u, []*http.Cookie{{Name: "a", Value: "1"}})

	if got := j.CookieHeader(u); got != "a=1" {
		t.Errorf("CookieHeader = %q, want a=1", got)
	}
}

func TestCookieNotSentToOtherHost(t *testing.T) {
	j := cookiejar.New()
	j.SetCookies(mustURL(t, "https://example.com/"), []*http.Cookie{{Name: "a", Value: "1"}})

	if got := j.CookieHeader(mustURL(t, "https://other.com/")); got != "" {
		t.Errorf("CookieHeader for unrelated host = %q, want empty", got)
	}
}

func TestDomainCookieAppliesToSubdomain(t *testing.T) {
	j := cookiejar.New()
	j.SetCookies(mustURL(t, "https://www.example.com/"), []*http.Cookie{{Name: "a", Value: "1", Domain: "example.com"}})

	if got := j.CookieHeader(mustURL(t, "https://sub.example.com/")); got != "a=1" {
		t.Errorf("CookieHeader for sibling subdomain = %q, want a=1", got)
	}
}

func TestSecureCookieNotSentOverPlainHTTP(t *testing.T) {
	j := cookiejar.New()
	j.SetCookies(mustURL(t, "https://example.com/"), []*http.Cookie{{Name: "a", Value: "1", Secure: true}})

	if got := j.CookieHeader(mustURL(t, "http://example.com/")); got != "" {
		t.Errorf("CookieHeader over http for a Secure cookie = %q, want empty", got)
	}
}

func TestInsertionOrderPreservedForSamePathCookies(t *testing.T) {
	j := cookiejar.New()
	u := mustURL(t, "https://example.com/")
	j.SetCookies(u, []*http.Cookie{{Name: "first", Value: "1"}})
	j.SetCookies(u, []*http.Cookie{{Name: "second", Value: "2"}})

	if got := j.CookieHeader(u); got != "first=1; second=2" {
		t.Errorf("CookieHeader = %q, want first=1; second=2", got)
	}
}

func TestPathLengthDoesNotReorderCookies(t *testing.T) {
	// spec.md §4.7 calls for insertion order, not RFC 6265 §5.4's
	// longer-path-first order, so a cookie set on a shorter path before one
	// set on a longer path still precedes it in the Cookie header.
	j := cookiejar.New()
	root := mustURL(t, "https://example.com/")
	deep := mustURL(t, "https://example.com/a/b")
	j.SetCookies(root, []*http.Cookie{{Name: "shallow", Value: "1", Path: "/"}})
	j.SetCookies(root, []*http.Cookie{{Name: "deep", Value: "2", Path: "/a/b"}})

	if got := j.CookieHeader(deep); got != "shallow=1; deep=2" {
		t.Errorf("CookieHeader = %q, want shallow=1; deep=2 (insertion order)", got)
	}
}

func TestUpdatePreservesCreationTimeAndPosition(t *testing.T) {
	j := cookiejar.New()
	u := mustURL(t, "https://example.com/")
	j.SetCookies(u, []*http.Cookie{{Name: "a", Value: "1"}})
	j.SetCookies(u, []*http.Cookie{{Name: "b", Value: "2"}})
	// Update "a"'s value. Its position in insertion order must not move to
	// the end even though it was just re-set.
	j.SetCookies(u, []*http.Cookie{{Name: "a", Value: "updated"}})

	if got := j.CookieHeader(u); got != "a=updated; b=2" {
		t.Errorf("CookieHeader after update = %q, want a=updated; b=2 (original position kept)", got)
	}
}

func TestExpiredCookieIsNotSent(t *testing.T) {
	j := cookiejar.New()
	u := mustURL(t, "https://example.com/")
	j.SetCookies(u, []*http.Cookie{{Name: "a", Value: "1", Expires: time.Now().Add(-time.Hour)}})

	if got := j.CookieHeader(u); got != "" {
		t.Errorf("CookieHeader with an already-expired cookie = %q, want empty", got)
	}
}

func TestNegativeMaxAgeDeletesExistingCookie(t *testing.T) {
	j := cookiejar.New()
	u := mustURL(t, "https://example.com/")
	j.SetCookies(u, []*http.Cookie{{Name: "a", Value: "1"}})
	j.SetCookies(u, []*http.Cookie{{Name: "a", Value: "", MaxAge: -1}})

	if got := j.CookieHeader(u); got != "" {
		t.Errorf("CookieHeader after MaxAge=-1 deletion = %q, want empty", got)
	}
}

func TestCrossDomainRejection(t *testing.T) {
	j := cookiejar.New()
	// A response from example.com may not set a cookie scoped to a
	// completely different domain.
	j.SetCookies(mustURL(t, "https://example.com/"), []*http.Cookie{{Name: "a", Value: "1", Domain: "evil.com"}})

	if got := j.CookieHeader(mustURL(t, "https://evil.com/")); got != "" {
		t.Errorf("CookieHeader = %q, want empty (cross-domain Set-Cookie must be rejected)", got)
	}
}
