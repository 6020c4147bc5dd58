// Package compress decodes response bodies encoded with the
// content-codings this engine advertises in Accept-Encoding (component C6):
// gzip, deflate, br and zstd. Decoders come from the same third-party stack
// the rest of this module uses — klauspost/compress's gzip/flate/zstd
// implementations and andybalholm/brotli — rather than the standard
// library's compress/gzip and compress/flate.
package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	kzflate "github.com/klauspost/compress/flate"
	kzgzip "github.com/klauspost/compress/gzip"
	kzzstd "github.com/klauspost/compress/zstd"
)

// Coding identifies a content-coding token as it appears in a
// Content-Encoding header.
type Coding string

const (
	Identity Coding = "identity"
	Gzip     Coding = "gzip"
	Deflate  Coding = "deflate"
	Brotli   Coding = "br"
	Zstd     Coding = "zstd"
)

// ErrUnsupportedCoding is returned by NewReader for any coding this package
// doesn't implement.
var ErrUnsupportedCoding = errors.New("compress: unsupported content-encoding")

// NewReader wraps r with a decoder for coding. The caller owns closing the
// returned ReadCloser (which, for Identity, is a no-op wrapper around r).
func NewReader(coding Coding, r io.Reader) (io.ReadCloser, error) {
	switch coding {
	case "", Identity:
		return io.NopCloser(r), nil
	case Gzip:
		zr, err := kzgzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("compress: gzip: %w", err)
		}
		return zr, nil
	case Deflate:
		return kzflate.NewReader(r), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case Zstd:
		zr, err := kzzstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("compress: zstd: %w", err)
		}
		return readCloserFunc{Reader: zr, closeFn: zr.Close}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCoding, coding)
	}
}

// readCloserFunc adapts a reader whose Close method doesn't return an error
// (klauspost/compress's zstd.Decoder.Close is void) to io.ReadCloser.
type readCloserFunc struct {
	io.Reader
	closeFn func()
}

func (r readCloserFunc) Close() error {
	r.closeFn()
	return nil
}

// NewWriter wraps w with an encoder for coding, for the rare request body
// that opts into a content-coding. The caller must Close the returned
// WriteCloser to flush the final block.
func NewWriter(coding Coding, w io.Writer) (io.WriteCloser, error) {
	switch coding {
	case "", Identity:
		return nopWriteCloser{w}, nil
	case Gzip:
		return kzgzip.NewWriter(w), nil
	case Deflate:
		fw, err := kzflate.NewWriter(w, kzflate.DefaultCompression)
		if err != nil {
			return nil, fmt.Errorf("compress: deflate: %w", err)
		}
		return fw, nil
	case Brotli:
		return brotli.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCoding, coding)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// EncodeAll fully encodes body under coding.
func EncodeAll(coding Coding, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := NewWriter(coding, &buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(body); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeAll fully decodes body under coding. It exists alongside NewReader
// for call sites that already have the whole compressed body in memory (for
// example a small JSON error response) and don't want to manage a streaming
// reader's lifetime.
func DecodeAll(coding Coding, body []byte) ([]byte, error) {
	r, err := NewReader(coding, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
