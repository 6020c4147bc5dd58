package engine

import (
	"bufio"
	"bytes"
	"iter"
	"strings"

	"github.com/arman-bd/httpmorph-go/headers"
)

// Timing is the connect/tls/first-byte/total quartet spec.md §3 requires on
// every Response.
type Timing struct {
	ConnectUs   int64
	TLSUs       int64
	FirstByteUs int64
	TotalUs     int64
}

// Response is the materialized result of one Session.Do / Client.Do call,
// after any redirects have been followed (spec.md §3).
type Response struct {
	StatusCode int
	Status     string
	Header     *headers.Ordered
	Body       []byte

	URL     string // the final URL, post-redirect
	History []*Response

	Proto      string // "HTTP/1.1" or "HTTP/2.0"
	TLSVersion string
	TLSCipher  string
	JA3        string
	JA3N       string
	JA4        string

	Timing Timing

	Request *Request
}

// Ok reports whether StatusCode is in [200, 400), per spec.md §7.
func (r *Response) Ok() bool { return r.StatusCode >= 200 && r.StatusCode < 400 }

// IsRedirect reports whether StatusCode is one of the redirect statuses the
// orchestrator follows (spec.md §4.10 step 5).
func (r *Response) IsRedirect() bool {
	switch r.StatusCode {
	case 301, 302, 303, 307, 308:
		return true
	default:
		return false
	}
}

// RaiseForStatus returns an *HTTPError if StatusCode >= 400, matching
// spec.md §6's Response.raise_for_status(); it is the only place an HTTPError
// is ever produced (Do itself never raises on a bare 4xx/5xx response).
func (r *Response) RaiseForStatus() error {
	if r.StatusCode >= 400 {
		return &HTTPError{StatusCode: r.StatusCode, URL: r.URL}
	}
	return nil
}

// Chunks yields the body in chunks of at most size bytes, for callers
// porting from the original's Response.iter_content(chunk_size).
func (r *Response) Chunks(size int) iter.Seq[[]byte] {
	if size <= 0 {
		size = 8192
	}
	return func(yield func([]byte) bool) {
		for off := 0; off < len(r.Body); off += size {
			end := off + size
			if end > len(r.Body) {
				end = len(r.Body)
			}
			if !yield(r.Body[off:end]) {
				return
			}
		}
	}
}

// Lines yields the body split on delim (default '\n', with a trailing '\r'
// trimmed), for callers porting from the original's
// Response.iter_lines(delim).
func (r *Response) Lines(delim byte) iter.Seq[string] {
	if delim == 0 {
		delim = '\n'
	}
	return func(yield func(string) bool) {
		scanner := bufio.NewScanner(bytes.NewReader(r.Body))
		scanner.Split(func(data []byte, atEOF bool) (advance int, token []byte, err error) {
			if atEOF && len(data) == 0 {
				return 0, nil, nil
			}
			if i := bytes.IndexByte(data, delim); i >= 0 {
				return i + 1, data[:i], nil
			}
			if atEOF {
				return len(data), data, nil
			}
			return 0, nil, nil
		})
		for scanner.Scan() {
			if !yield(strings.TrimSuffix(scanner.Text(), "\r")) {
				return
			}
		}
	}
}
