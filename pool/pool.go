// Package pool is the connection pool (component C8): a host-keyed set of
// idle connections available for reuse, with per-host and total caps and a
// liveness probe run at checkout so a connection the server silently closed
// doesn't surface as a confusing mid-request write error.
package pool

import (
	"net"
	"sync"
	"time"
)

const (
	defaultMaxPerHost  = 16
	defaultMaxTotal    = 100
	defaultIdleTimeout = 60 * time.Second
)

// Pool holds idle connections, keyed by Connection.Key, ready for reuse.
type Pool struct {
	mu   sync.Mutex
	idle map[string][]*Connection

	inUse int
	total int

	MaxPerHost  int
	MaxTotal    int
	IdleTimeout time.Duration
}

// New returns a Pool with the given caps. A zero value for any of
// maxPerHost, maxTotal or idleTimeout uses this engine's default.
func New(maxPerHost, maxTotal int, idleTimeout time.Duration) *Pool {
	if maxPerHost <= 0 {
		maxPerHost = defaultMaxPerHost
	}
	if maxTotal <= 0 {
		maxTotal = defaultMaxTotal
	}
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}
	return &Pool{
		idle:        make(map[string][]*Connection),
		MaxPerHost:  maxPerHost,
		MaxTotal:    maxTotal,
		IdleTimeout: idleTimeout,
	}
}

// Get removes and returns an idle, live connection for key, preferring the
// most recently used one (LIFO — a warm connection is more likely to still
// be alive and has better cache locality on the server side). It silently
// discards any stale or dead connections it finds ahead of a usable one.
func (p *Pool) Get(key string) (*Connection, bool) {
	p.mu.Lock()
	bucket := p.idle[key]
	for len(bucket) > 0 {
		c := bucket[len(bucket)-1]
		bucket = bucket[:len(bucket)-1]
		p.idle[key] = bucket
		p.total--

		if c.Idle() > p.IdleTimeout || !isAlive(c.Conn) {
			p.mu.Unlock()
			c.Close()
			p.mu.Lock()
			continue
		}
		p.inUse++
		p.mu.Unlock()
		c.uses++
		c.LastUsed = time.Now()
		return c, true
	}
	p.mu.Unlock()
	return nil, false
}

// Put returns a connection to the pool for reuse. It reports false (and
// closes nothing itself — the caller must Close c) when the pool is at
// capacity and c can't be stored. Put leaves c.LastUsed as the caller set
// it; Get measures idle time from that value. Only a connection that Get
// handed out counts against InUse, so putting a freshly dialed connection
// leaves InUse unchanged.
func (p *Pool) Put(c *Connection) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c.uses > 0 {
		p.inUse--
	}
	if len(p.idle[c.Key]) >= p.MaxPerHost || p.total >= p.MaxTotal {
		return false
	}
	p.idle[c.Key] = append(p.idle[c.Key], c)
	p.total++
	return true
}

// Discard tells the pool a checked-out connection was broken and will not
// be returned. The caller is still responsible for closing it.
func (p *Pool) Discard() {
	p.mu.Lock()
	p.inUse--
	p.mu.Unlock()
}

// Stats reports current pool occupancy, mainly for metrics and tests. InUse
// counts connections Get handed out that have not yet come back through Put
// or Discard; freshly dialed connections are not counted.
type Stats struct {
	Idle  int
	InUse int
}

func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{Idle: p.total, InUse: p.inUse}
}

// CloseIdle closes and removes every idle connection, e.g. on Session.Close.
func (p *Pool) CloseIdle() {
	p.mu.Lock()
	all := p.idle
	p.idle = make(map[string][]*Connection)
	p.total = 0
	p.mu.Unlock()

	for _, bucket := range all {
		for _, c := range bucket {
			c.Close()
		}
	}
}

// isAlive performs a zero-expectation liveness probe: a live idle
// connection has no data waiting, so a read with a very short deadline
// should time out. Any other outcome (EOF, reset, or unexpected data) means
// the peer closed it or something is very wrong, so the connection must not
// be reused — this is the "stale connection, retry once" signal the request
// orchestrator relies on.
func isAlive(conn net.Conn) bool {
	if err := conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return false
	}
	defer conn.SetReadDeadline(time.Time{})

	one := make([]byte, 1)
	n, err := conn.Read(one)
	if n > 0 {
		return false // a server must not send unsolicited bytes on an idle keep-alive connection
	}
	if err == nil {
		return false
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return true
	}
	return false
}
