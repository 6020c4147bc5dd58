package transport

import (
	"bufio"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestDialDirectConnectsToListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		buf := make([]byte, 5)
		io.ReadFull(c, buf)
		c.Write(buf)
	}()

	conn, err := Dial(context.Background(), Config{DialTimeout: time.Second}, "https", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.Write([]byte("hello"))
	buf := make([]byte, 5)
	io.ReadFull(conn, buf)
	if string(buf) != "hello" {
		t.Errorf("echo = %q, want hello", buf)
	}
	<-done
}

func TestDialDirectConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close() // nobody is listening now

	_, err = Dial(context.Background(), Config{DialTimeout: time.Second}, "https", addr)
	if err == nil {
		t.Fatal("expected a connection error")
	}
	if _, ok := err.(*ConnectionError); !ok {
		t.Errorf("err = %T, want *ConnectionError", err)
	}
}

// fakeProxy accepts one CONNECT request and, if it should succeed, replies
// 200 and then starts echoing bytes so the test can prove the tunnel is a
// transparent pipe to the "target" after the CONNECT handshake.
func fakeProxy(t *testing.T, status int, wantAuth string) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()

		req, err := http.ReadRequest(bufio.NewReader(c))
		if err != nil {
			return
		}
		if wantAuth != "" && req.Header.Get("Proxy-Authorization") != wantAuth {
			c.Write([]byte("HTTP/1.1 407 Proxy Authentication Required\r\n\r\n"))
			return
		}
		if status != http.StatusOK {
			c.Write([]byte("HTTP/1.1 502 Bad Gateway\r\n\r\n"))
			return
		}
		c.Write([]byte("HTTP/1.1 200 Connection Established\r\n\r\n"))

		buf := make([]byte, 5)
		if _, err := io.ReadFull(c, buf); err != nil {
			return
		}
		c.Write(buf)
	}()
	return ln
}

func TestDialThroughProxyTunnelsSuccessfully(t *testing.T) {
	ln := fakeProxy(t, http.StatusOK, "")
	defer ln.Close()

	proxyURL := &url.URL{Scheme: "http", Host: ln.Addr().String()}
	conn, err := Dial(context.Background(), Config{Proxy: proxyURL, DialTimeout: time.Second}, "https", "example.com:443")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.Write([]byte("hello"))
	buf := make([]byte, 5)
	io.ReadFull(conn, buf)
	if string(buf) != "hello" {
		t.Errorf("echo through tunnel = %q, want hello", buf)
	}
}

func TestDialThroughProxySendsBasicAuth(t *testing.T) {
	want := "Basic dXNlcjpwYXNz" // base64("user:pass")
	ln := fakeProxy(t, http.StatusOK, want)
	defer ln.Close()

	proxyURL := &url.URL{Scheme: "http", Host: ln.Addr().String(), User: url.UserPassword("user", "pass")}
	conn, err := Dial(context.Background(), Config{Proxy: proxyURL, DialTimeout: time.Second}, "https", "example.com:443")
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
}

// fakePlainProxy accepts one connection and immediately echoes bytes back,
// without expecting a CONNECT handshake first — it stands in for a proxy
// receiving an absolute-form cleartext-HTTP request.
func fakePlainProxy(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		buf := make([]byte, 5)
		if _, err := io.ReadFull(c, buf); err != nil {
			return
		}
		c.Write(buf)
	}()
	return ln
}

func TestDialThroughProxyHTTPTargetSkipsConnect(t *testing.T) {
	ln := fakePlainProxy(t)
	defer ln.Close()

	proxyURL := &url.URL{Scheme: "http", Host: ln.Addr().String()}
	conn, err := Dial(context.Background(), Config{Proxy: proxyURL, DialTimeout: time.Second}, "http", "example.com:80")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.Write([]byte("hello"))
	buf := make([]byte, 5)
	if _, err := io.ReadFull(conn, buf); err != nil {
		t.Fatal(err)
	}
	if string(buf) != "hello" {
		t.Errorf("echo = %q, want hello (no CONNECT handshake should have been sent)", buf)
	}
}

func TestDialThroughProxyRejectsNon200(t *testing.T) {
	ln := fakeProxy(t, http.StatusBadGateway, "")
	defer ln.Close()

	proxyURL := &url.URL{Scheme: "http", Host: ln.Addr().String()}
	_, err := Dial(context.Background(), Config{Proxy: proxyURL, DialTimeout: time.Second}, "https", "example.com:443")
	if err == nil {
		t.Fatal("expected a proxy error")
	}
	pe, ok := err.(*ProxyError)
	if !ok {
		t.Fatalf("err = %T, want *ProxyError", err)
	}
	if pe.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", pe.StatusCode)
	}
}
