package pool

import (
	"net"
	"testing"
	"time"
)

func pipePair(t *testing.T) (client, server net.Conn) {
	t.Helper()
	client, server = net.Pipe()
	return
}

func TestPutThenGetReturnsSameConnection(t *testing.T) {
	p := New(2, 10, time.Minute)
	client, server := pipePair(t)
	defer server.Close()

	c := &Connection{Conn: client, Key: "example.com:443", CreatedAt: time.Now(), LastUsed: time.Now()}
	if !p.Put(c) {
		t.Fatal("Put should have succeeded under capacity")
	}

	got, ok := p.Get("example.com:443")
	if !ok {
		t.Fatal("expected a connection back from Get")
	}
	if got != c {
		t.Error("Get returned a different connection than was Put")
	}
	if got.Uses() != 1 {
		t.Errorf("Uses() = %d, want 1", got.Uses())
	}
}

func TestGetOnEmptyKeyReturnsFalse(t *testing.T) {
	p := New(2, 10, time.Minute)
	if _, ok := p.Get("nothing-here"); ok {
		t.Error("expected Get on an empty bucket to report false")
	}
}

func TestGetDiscardsStaleConnections(t *testing.T) {
	p := New(2, 10, time.Millisecond)
	client, server := pipePair(t)
	defer server.Close()
	defer client.Close()

	c := &Connection{Conn: client, Key: "k", CreatedAt: time.Now(), LastUsed: time.Now().Add(-time.Hour)}
	p.Put(c)

	if _, ok := p.Get("k"); ok {
		t.Error("expected a connection idle past IdleTimeout to be discarded, not returned")
	}
}

func TestGetDiscardsDeadConnections(t *testing.T) {
	p := New(2, 10, time.Minute)
	client, server := pipePair(t)
	server.Close() // simulate the peer closing the connection while idle

	c := &Connection{Conn: client, Key: "k", CreatedAt: time.Now(), LastUsed: time.Now()}
	p.Put(c)

	if _, ok := p.Get("k"); ok {
		t.Error("expected a dead (peer-closed) connection to be discarded, not returned")
	}
}

func TestPutRespectsMaxPerHost(t *testing.T) {
	p := New(1, 10, time.Minute)
	c1 := &Connection{Conn: mustPipe(t), Key: "k", LastUsed: time.Now()}
	c2 := &Connection{Conn: mustPipe(t), Key: "k", LastUsed: time.Now()}

	if !p.Put(c1) {
		t.Fatal("first Put should succeed")
	}
	if p.Put(c2) {
		t.Error("second Put should fail: MaxPerHost is 1")
	}
}

func TestStatsReflectsOccupancy(t *testing.T) {
	p := New(2, 10, time.Minute)
	c := &Connection{Conn: mustPipe(t), Key: "k", LastUsed: time.Now()}
	p.Put(c)

	if s := p.Stats(); s.Idle != 1 {
		t.Errorf("Stats().Idle = %d, want 1", s.Idle)
	}
	p.Get("k")
	if s := p.Stats(); s.InUse != 1 || s.Idle != 0 {
		t.Errorf("Stats() after Get = %+v, want InUse=1 Idle=0", s)
	}
}

func mustPipe(t *testing.T) net.Conn {
	t.Helper()
	c, _ := net.Pipe()
	return c
}
