package engine

import (
	"bufio"
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/arman-bd/httpmorph-go/browser"
	"github.com/arman-bd/httpmorph-go/headers"
	"github.com/arman-bd/httpmorph-go/http1"
	"github.com/arman-bd/httpmorph-go/pool"
	"github.com/arman-bd/httpmorph-go/tlsengine"
)

type h1Result struct {
	statusCode int
	status     string
	proto      string
	header     *headers.Ordered
	body       []byte
	tlsVersion uint16
	tlsCipher  uint16
	hasTLS     bool
}

// dialCtx bundles everything acquireConnection and h1RoundTrip need about
// one request's connection target, shared across the pool-retry loop.
type dialCtx struct {
	ctx                context.Context
	pool               *pool.Pool
	key                string
	scheme             string
	addr               string
	rawURL             string
	profile            *browser.Profile
	proxy              *url.URL
	connectTimeout     time.Duration
	insecureSkipVerify bool
}

var errPoolExhausted = errors.New("engine: connection retries exhausted")

// h1RoundTrip drives one HTTP/1.1 request/response exchange over a pooled or
// freshly-dialed connection.
//
// A connection taken from the pool already passed isAlive's liveness probe,
// but the peer can still close it in the gap between that probe and this
// write (e.g. an idle-timeout race), so the first write/read on a pooled
// connection gets one retry against a freshly dialed connection before any
// response byte has been seen — after that point a retry would risk
// re-running a non-idempotent request against a server that already
// received it once.
func h1RoundTrip(dctx dialCtx, hreq *http1.Request, readTimeout time.Duration, timing *Timing) (*h1Result, error) {
	start := time.Now()
	for attempt := 0; attempt < 2; attempt++ {
		conn, fromPool, err := acquireConnection(dctx.ctx, dctx.pool, dctx.key, dctx.scheme, dctx.addr, dctx.profile, dctx.proxy, dctx.connectTimeout, dctx.insecureSkipVerify, timing)
		if err != nil {
			return nil, err
		}

		if readTimeout > 0 {
			conn.SetDeadline(time.Now().Add(readTimeout))
		}

		if err := http1.Write(conn, hreq); err != nil {
			if fromPool {
				dctx.pool.Discard()
				conn.Close()
				continue
			}
			conn.Close()
			return nil, err
		}

		br := bufio.NewReader(conn)
		_, peekErr := br.Peek(1)
		resp, err := http1.ReadResponse(br)
		if timing != nil {
			timing.FirstByteUs = time.Since(start).Microseconds()
		}
		if err != nil {
			if fromPool {
				dctx.pool.Discard()
				conn.Close()
				if peekErr != nil {
					continue // no response byte arrived: safe to retry
				}
				return nil, err
			}
			conn.Close()
			return nil, err
		}

		body, err := resp.ReadBody()
		if err != nil {
			if fromPool {
				dctx.pool.Discard()
			}
			conn.Close()
			return nil, err
		}

		result := &h1Result{
			statusCode: resp.StatusCode,
			status:     resp.Status,
			proto:      resp.Proto,
			header:     resp.Header,
			body:       body,
		}
		if tctx, ok := conn.Conn.(*tlsengine.Context); ok {
			cs := tctx.ConnectionState()
			result.tlsVersion = cs.Version
			result.tlsCipher = cs.CipherSuite
			result.hasTLS = true
		}

		conn.SetDeadline(time.Time{})
		if shouldCloseAfter(resp.Header) {
			if fromPool {
				dctx.pool.Discard()
			}
			conn.Close()
		} else {
			conn.LastUsed = time.Now()
			if !dctx.pool.Put(conn) {
				conn.Close()
			}
		}
		if timing != nil {
			timing.TotalUs = time.Since(start).Microseconds()
		}
		return result, nil
	}
	return nil, &RequestException{URL: dctx.rawURL, Err: errPoolExhausted}
}

func shouldCloseAfter(h *headers.Ordered) bool {
	return strings.EqualFold(h.Get("Connection"), "close")
}
