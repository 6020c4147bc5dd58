package pool

import (
	"net"
	"time"
)

// Connection is a pooled transport-level connection (component C8). It
// wraps whatever net.Conn tlsengine/transport produced — plain TCP for
// cleartext HTTP/1.1, or a *tlsengine.Context for TLS — along with the
// bookkeeping the pool needs to decide when to retire it.
type Connection struct {
	net.Conn

	// Key identifies the pool bucket this connection belongs to, normally
	// "scheme|host:port|profileID" so connections shaped by different
	// browser profiles are never mixed.
	Key string

	// Protocol is the ALPN-negotiated protocol (e.g. "http/1.1" or "h2"),
	// or "h1" when no ALPN value was negotiated (cleartext HTTP/1.1).
	Protocol string

	CreatedAt time.Time
	LastUsed  time.Time

	uses int
}

// Uses returns how many times this connection has been checked out.
func (c *Connection) Uses() int { return c.uses }

// Idle returns how long this connection has been sitting unused.
func (c *Connection) Idle() time.Duration { return time.Since(c.LastUsed) }
