// Package http1 is a hand-rolled HTTP/1.1 wire codec (component C4).
//
// net/http's request writer canonicalizes and re-sorts headers and owns the
// request line itself, which is exactly the control this engine needs to
// take away from it: byte-level impersonation requires the caller to pick
// the header order and casing, and nothing else may move it.
package http1

import (
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/arman-bd/httpmorph-go/headers"
)

// Request is the wire-level shape of an HTTP/1.1 request: a method, a
// request-target, and an explicitly ordered header list.
type Request struct {
	Method string
	URL    *url.URL
	Header *headers.Ordered

	// AbsoluteForm, when true, writes the request-target as the full
	// absolute URI ("http://host/path?query") instead of origin-form
	// ("/path?query"). Set this when the connection in Write's w goes
	// directly to an HTTP proxy for a cleartext-HTTP target (spec.md §4.3):
	// the proxy has no CONNECT-tunnel context to infer the target host
	// from, so RFC 7230 §5.3.2 requires the absolute-form here. Any
	// connection that is itself a TLS session, or one already tunnelled to
	// the origin via CONNECT, uses origin-form as usual.
	AbsoluteForm bool

	// Body, if non-nil, is written after the header block. If ContentLength
	// is negative, Body is framed with chunked transfer-encoding; otherwise
	// exactly ContentLength bytes are copied from it.
	Body          io.Reader
	ContentLength int64
}

// Write serializes req to w in its exact header order, with either a
// Content-Length-framed or chunked body.
func Write(w io.Writer, req *Request) error {
	target := req.URL.RequestURI()
	if req.AbsoluteForm {
		target = req.URL.String()
	}
	if _, err := fmt.Fprintf(w, "%s %s HTTP/1.1\r\n", req.Method, target); err != nil {
		return err
	}

	for _, e := range req.Header.Entries() {
		if _, err := fmt.Fprintf(w, "%s: %s\r\n", e.Key, e.Value); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return err
	}

	if req.Body == nil {
		return nil
	}
	if req.ContentLength < 0 {
		return writeChunked(w, req.Body)
	}
	_, err := io.CopyN(w, req.Body, req.ContentLength)
	if err == io.EOF {
		err = nil
	}
	return err
}

func writeChunked(w io.Writer, body io.Reader) error {
	buf := make([]byte, 32*1024)
	for {
		n, rerr := body.Read(buf)
		if n > 0 {
			if _, err := fmt.Fprintf(w, "%s\r\n", strconv.FormatInt(int64(n), 16)); err != nil {
				return err
			}
			if _, err := w.Write(buf[:n]); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\r\n"); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			_, err := io.WriteString(w, "0\r\n\r\n")
			return err
		}
		if rerr != nil {
			return rerr
		}
	}
}
