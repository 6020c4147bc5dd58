package engine

import (
	"bytes"
	"context"
	"crypto/tls"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/arman-bd/httpmorph-go/browser"
	"github.com/arman-bd/httpmorph-go/compress"
	"github.com/arman-bd/httpmorph-go/cookiejar"
	"github.com/arman-bd/httpmorph-go/fingerprint"
	"github.com/arman-bd/httpmorph-go/headers"
	"github.com/arman-bd/httpmorph-go/http1"
	"github.com/arman-bd/httpmorph-go/metrics"
	"github.com/arman-bd/httpmorph-go/pool"
)

// core is the configuration and connection resources shared by Session and
// Client; both are thin wrappers choosing whether a cookiejar.Jar persists
// across calls.
type core struct {
	profile *browser.Profile
	os      browser.OS
	http2   bool
	verify  VerifyMode

	proxy map[string]*url.URL
	pool  *pool.Pool

	header *headers.Ordered

	metrics *metrics.Metrics

	connectTimeout time.Duration
	readTimeout    time.Duration
	maxRedirects   int
}

func newCore(cfg *config) *core {
	p := cfg.pool
	if p == nil {
		p = sharedPool
	}
	return &core{
		profile:        cfg.profile,
		os:             cfg.os,
		http2:          cfg.http2,
		verify:         cfg.verify,
		proxy:          cfg.proxy,
		pool:           p,
		header:         cfg.header,
		metrics:        cfg.metrics,
		connectTimeout: cfg.connectTimeout,
		readTimeout:    cfg.readTimeout,
		maxRedirects:   cfg.maxRedirects,
	}
}

// do runs req to completion, following redirects per spec.md §4.10 and
// attaching fingerprint/timing metadata to the final Response. jar may be
// nil (a stateless Client call with no cookie persistence).
func (c *core) do(ctx context.Context, req *Request, jar *cookiejar.Jar) (*Response, error) {
	if c.metrics != nil {
		c.metrics.IncrementTotal()
	}

	allowRedirects := true
	if req.AllowRedirects != nil {
		allowRedirects = *req.AllowRedirects
	}
	maxRedirects := c.maxRedirects
	if req.MaxRedirects != nil {
		maxRedirects = *req.MaxRedirects
	}

	method := req.Method
	rawURL := req.URL
	var body Body = req.Body
	var history []*Response

	for hop := 0; ; hop++ {
		resp, err := c.roundTripOnce(ctx, req, method, rawURL, body, jar)
		if err != nil {
			if c.metrics != nil {
				c.metrics.IncrementFailed()
			}
			return nil, err
		}
		resp.History = history

		if !allowRedirects || !resp.IsRedirect() {
			c.recordOutcome(resp)
			return resp, nil
		}
		if hop >= maxRedirects {
			if c.metrics != nil {
				c.metrics.IncrementFailed()
			}
			return nil, &TooManyRedirects{URL: rawURL, Max: maxRedirects}
		}

		location := resp.Header.Get("Location")
		if location == "" {
			c.recordOutcome(resp)
			return resp, nil
		}
		next, err := resolveRedirect(rawURL, location)
		if err != nil {
			c.recordOutcome(resp)
			return resp, nil
		}

		history = append(history, resp)
		if c.metrics != nil {
			c.metrics.IncrementRedirect()
		}

		switch resp.StatusCode {
		case 303:
			method = "GET"
			body = nil
		case 301, 302:
			if method != "GET" && method != "HEAD" {
				method = "GET"
				body = nil
			}
		case 307, 308:
			// method and body are preserved unchanged
		}
		rawURL = next
	}
}

// recordOutcome increments the success/failed counter for a request's final
// (non-redirected) Response, matching Response.Ok()'s definition of success.
func (c *core) recordOutcome(resp *Response) {
	if c.metrics == nil {
		return
	}
	if resp.Ok() {
		c.metrics.IncrementSuccess()
	} else {
		c.metrics.IncrementFailed()
	}
}

func resolveRedirect(base, location string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	loc, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(loc).String(), nil
}

// roundTripOnce performs exactly one request/response exchange: no redirect
// following. It merges c's defaults with req's per-call overrides, dispatches
// to the HTTP/1.1 or HTTP/2 path, decodes compression (unless req.Stream),
// and attaches cookies, fingerprint digests and timing to the result.
func (c *core) roundTripOnce(ctx context.Context, req *Request, method, rawURL string, body Body, jar *cookiejar.Jar) (*Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &RequestException{URL: rawURL, Err: err}
	}
	if len(req.Params) > 0 {
		q := u.Query()
		for k, vals := range req.Params {
			q[k] = vals // new wins: an explicit Params entry replaces any same-key query value already in the URL
		}
		u.RawQuery = q.Encode()
	}

	verify := c.verify
	if req.Verify != nil {
		verify = *req.Verify
	}
	useHTTP2 := c.http2
	if req.HTTP2 != nil {
		useHTTP2 = *req.HTTP2
	}
	connectTimeout := c.connectTimeout
	if req.ConnectTimeout > 0 {
		connectTimeout = req.ConnectTimeout
	}
	readTimeout := c.readTimeout
	if req.ReadTimeout > 0 {
		readTimeout = req.ReadTimeout
	}

	profile := c.profile
	if !useHTTP2 {
		profile = http1OnlyProfile(profile)
	}

	proxy := c.resolveProxy(u.Scheme, req)

	var bodyData []byte
	contentType := ""
	if body != nil {
		bodyData, contentType, err = body.encode()
		if err != nil {
			return nil, &RequestException{URL: rawURL, Err: err}
		}
	}

	header := c.buildHeaders(profile, req, u, jar, contentType, len(bodyData))

	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = defaultPort(u.Scheme)
	}
	addr := net.JoinHostPort(host, port)

	proxyKey := ""
	if proxy != nil {
		proxyKey = proxy.String()
	}
	key := poolKey(u.Scheme, addr, profile.ID, proxyKey, verify)

	timing := &Timing{}
	var statusCode int
	var status, proto string
	var respHeader *headers.Ordered
	var rawBody []byte
	var tlsVersion, tlsCipher uint16
	var hasTLS bool

	if useHTTP2 {
		rt := h2RoundTripFor(key, profile, proxy, connectTimeout, verify == VerifyInsecure)
		res, rtErr := h2RoundTrip(ctx, rt, method, u.String(), header, bodyData, timing)
		if rtErr != nil {
			return nil, classifyRoundTripError(rawURL, rtErr)
		}
		statusCode, status, proto, respHeader, rawBody = res.statusCode, res.status, res.proto, res.header, res.body
		tlsVersion, tlsCipher, hasTLS = res.tlsVersion, res.tlsCipher, res.hasTLS
	} else {
		absoluteForm := proxy != nil && u.Scheme == "http"
		if absoluteForm {
			if proxy.User != nil {
				header.Set("Proxy-Authorization", proxyAuthHeader(proxy))
			}
		}
		hreq := &http1.Request{Method: method, URL: u, Header: header, AbsoluteForm: absoluteForm}
		if len(bodyData) > 0 {
			hreq.Body = bytes.NewReader(bodyData)
			hreq.ContentLength = int64(len(bodyData))
		}
		dctx := dialCtx{
			ctx:                ctx,
			pool:               c.pool,
			key:                key,
			scheme:             u.Scheme,
			addr:               addr,
			rawURL:             rawURL,
			profile:            profile,
			proxy:              proxy,
			connectTimeout:     connectTimeout,
			insecureSkipVerify: verify == VerifyInsecure,
		}
		res, rtErr := h1RoundTrip(dctx, hreq, readTimeout, timing)
		if rtErr != nil {
			return nil, classifyRoundTripError(rawURL, rtErr)
		}
		statusCode, status, proto, respHeader, rawBody = res.statusCode, res.status, res.proto, res.header, res.body
		tlsVersion, tlsCipher, hasTLS = res.tlsVersion, res.tlsCipher, res.hasTLS
	}

	extractSetCookies(jar, u, respHeader)

	finalBody := rawBody
	if !req.Stream {
		if coding := compress.Coding(respHeader.Get("Content-Encoding")); coding != "" && coding != compress.Identity {
			decoded, derr := compress.DecodeAll(coding, rawBody)
			if derr != nil {
				return nil, &DecodingError{URL: rawURL, Err: derr}
			}
			finalBody = decoded
		}
	}

	_, ja3digest := fingerprint.JA3(profile)
	_, ja3n := fingerprint.JA3N(profile)
	ja4 := fingerprint.JA4(profile)

	resp := &Response{
		StatusCode: statusCode,
		Status:     status,
		Header:     respHeader,
		Body:       finalBody,
		URL:        u.String(),
		Proto:      proto,
		JA3:        ja3digest,
		JA3N:       ja3n,
		JA4:        ja4,
		Timing:     *timing,
		Request:    req,
	}
	if hasTLS {
		resp.TLSVersion = tls.VersionName(tlsVersion)
		resp.TLSCipher = tls.CipherSuiteName(tlsCipher)
	}
	return resp, nil
}

func (c *core) resolveProxy(scheme string, req *Request) *url.URL {
	if raw, ok := req.Proxy[scheme]; ok {
		if u, err := url.Parse(raw); err == nil {
			return applyProxyAuth(u, req.ProxyAuth)
		}
	}
	if u, ok := c.proxy[scheme]; ok {
		return u
	}
	return nil
}

func applyProxyAuth(u *url.URL, auth *BasicAuth) *url.URL {
	if auth == nil {
		return u
	}
	clone := *u
	clone.User = url.UserPassword(auth.Username, auth.Password)
	return &clone
}

// buildHeaders overlays session and per-request headers onto the profile's
// ordered template, preserving the profile's header order for any key the
// caller didn't add anew (headers.Ordered.Set keeps a matched key's original
// position; only genuinely new keys are appended).
func (c *core) buildHeaders(profile *browser.Profile, req *Request, u *url.URL, jar *cookiejar.Jar, contentType string, bodyLen int) *headers.Ordered {
	h := headers.New()
	h.Add("Host", u.Host)
	for _, key := range profile.HeaderOrder {
		val, ok := profile.HeaderValues[key]
		if strings.EqualFold(key, "User-Agent") {
			val, ok = profile.UserAgent(c.os), true
		}
		if !ok {
			continue
		}
		h.Add(key, val)
	}

	for _, e := range c.header.Entries() {
		h.Set(e.Key, e.Value)
	}

	if cookie := cookieHeaderFor(jar, u, req); cookie != "" {
		h.Set("Cookie", cookie)
	}

	if bodyLen > 0 {
		if contentType != "" && !h.Has("Content-Type") {
			h.Set("Content-Type", contentType)
		}
		h.Set("Content-Length", strconv.Itoa(bodyLen))
	}

	if req.Auth != nil {
		h.Set("Authorization", basicAuthHeader(req.Auth))
	}

	for _, e := range req.Header.Entries() {
		h.Set(e.Key, e.Value)
	}
	return h
}

func defaultPort(scheme string) string {
	if scheme == "https" {
		return "443"
	}
	return "80"
}
