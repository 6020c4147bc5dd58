package engine

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/arman-bd/httpmorph-go/browser"
	"github.com/arman-bd/httpmorph-go/headers"
	"github.com/arman-bd/httpmorph-go/http2engine"
)

// h2Transports caches one http2engine transport per poolKey (scheme,
// host:port, profile, proxy, verify), process-wide. golang.org/x/net/http2.Transport already pools its own
// connections internally (one per authority), so unlike the HTTP/1.1 path
// this only needs to avoid rebuilding the transport — and its dial hook —
// on every call.
var (
	h2mu         sync.Mutex
	h2transports = make(map[string]http.RoundTripper)
)

func h2RoundTripFor(key string, profile *browser.Profile, proxy *url.URL, connectTimeout time.Duration, insecureSkipVerify bool) http.RoundTripper {
	h2mu.Lock()
	defer h2mu.Unlock()
	if rt, ok := h2transports[key]; ok {
		return rt
	}
	rt := http2engine.NewTransport(http2engine.Config{
		Profile:            profile,
		Proxy:              proxy,
		DialTimeout:        connectTimeout,
		InsecureSkipVerify: insecureSkipVerify,
	})
	h2transports[key] = rt
	return rt
}

type h2Result struct {
	statusCode int
	status     string
	proto      string
	header     *headers.Ordered
	body       []byte
	tlsVersion uint16
	tlsCipher  uint16
	hasTLS     bool
}

func h2RoundTrip(ctx context.Context, rt http.RoundTripper, method, rawURL string, header *headers.Ordered, body []byte, timing *Timing) (*h2Result, error) {
	start := time.Now()
	var bodyReader io.Reader
	if len(body) > 0 {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, err
	}
	header.ApplyToRequest(req)
	if len(body) > 0 {
		req.ContentLength = int64(len(body))
	}

	resp, err := rt.RoundTrip(req)
	if timing != nil {
		timing.FirstByteUs = time.Since(start).Microseconds()
	}
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if timing != nil {
		timing.TotalUs = time.Since(start).Microseconds()
	}

	out := &h2Result{
		statusCode: resp.StatusCode,
		status:     resp.Status,
		proto:      resp.Proto,
		header:     headers.New(),
		body:       data,
	}
	for key, vals := range resp.Header {
		for _, v := range vals {
			out.header.Add(key, v)
		}
	}
	if resp.TLS != nil {
		out.tlsVersion = resp.TLS.Version
		out.tlsCipher = resp.TLS.CipherSuite
		out.hasTLS = true
	}
	return out, nil
}
