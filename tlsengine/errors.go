package tlsengine

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
)

// HandshakeError wraps any failure during the TLS handshake that isn't more
// specifically a CertificateError or a Timeout.
type HandshakeError struct {
	ServerName string
	Err        error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("tlsengine: handshake with %s failed: %v", e.ServerName, e.Err)
}

func (e *HandshakeError) Unwrap() error { return e.Err }

// CertificateError wraps a certificate chain validation failure.
type CertificateError struct {
	ServerName string
	Err        error
}

func (e *CertificateError) Error() string {
	return fmt.Sprintf("tlsengine: certificate for %s rejected: %v", e.ServerName, e.Err)
}

func (e *CertificateError) Unwrap() error { return e.Err }

// TimeoutError reports that the handshake did not complete before its
// context deadline.
type TimeoutError struct {
	ServerName string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("tlsengine: handshake with %s timed out", e.ServerName)
}

func (e *TimeoutError) Timeout() bool { return true }

// classifyHandshakeError turns a raw error from (*utls.UConn).HandshakeContext
// into one of the typed errors above, preserving the original error via
// Unwrap for callers that want to inspect it further.
func classifyHandshakeError(serverName string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{ServerName: serverName}
	}
	var certErr x509.CertificateInvalidError
	var authErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &authErr) || errors.As(err, &hostErr) {
		return &CertificateError{ServerName: serverName, Err: err}
	}
	return &HandshakeError{ServerName: serverName, Err: err}
}
