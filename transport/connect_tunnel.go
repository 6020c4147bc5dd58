package transport

import (
	"bufio"
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// connectTunnel establishes an HTTP CONNECT tunnel to target over an
// already-dialed proxy connection proxyConn. On success the caller can use
// proxyConn directly as a transparent byte pipe to target (TLS, if any, is
// layered on top by tlsengine).
func connectTunnel(ctx context.Context, proxyConn net.Conn, proxyURL *url.URL, target string) error {
	req := &http.Request{
		Method: http.MethodConnect,
		URL:    &url.URL{Opaque: target},
		Host:   target,
		Header: make(http.Header),
	}
	if proxyURL.User != nil {
		password, _ := proxyURL.User.Password()
		creds := base64.StdEncoding.EncodeToString([]byte(proxyURL.User.Username() + ":" + password))
		req.Header.Set("Proxy-Authorization", "Basic "+creds)
	}
	req = req.WithContext(ctx)

	if err := req.Write(proxyConn); err != nil {
		return &ProxyError{Proxy: proxyURL.Host, Target: target, Err: err}
	}

	resp, err := http.ReadResponse(bufio.NewReader(proxyConn), req)
	if err != nil {
		return &ProxyError{Proxy: proxyURL.Host, Target: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusProxyAuthRequired {
		return &ProxyError{Proxy: proxyURL.Host, Target: target, StatusCode: resp.StatusCode, Err: ErrProxyAuthRequired}
	}
	if resp.StatusCode != http.StatusOK {
		return &ProxyError{Proxy: proxyURL.Host, Target: target, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return nil
}
