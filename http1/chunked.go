package http1

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxChunkSize is the largest chunk-size value this decoder accepts before
// allocating or reading its data. A server (or a peer impersonating one)
// advertising anything past 2^31 in a single chunk is either malformed or
// attempting a memory-exhaustion attack against the growPreservingReceived
// allocator below; reject it outright rather than trying to honor it.
const maxChunkSize = 1 << 31

// readChunked decodes a chunked transfer-coded body (RFC 7230 §4.1):
// "<hex-size>[;ext...]\r\n<data>\r\n" repeated, terminated by a zero-size
// chunk and an optional trailer header block.
func readChunked(r *bufio.Reader) ([]byte, error) {
	buf := make([]byte, 0, 64<<10)
	var received int64

	for {
		sizeLine, err := readLine(r)
		if err != nil {
			return buf, err
		}
		sizeLine = stripChunkExtension(sizeLine)
		size, err := strconv.ParseInt(sizeLine, 16, 64)
		if err != nil {
			return buf, fmt.Errorf("http1: malformed chunk size %q: %w", sizeLine, err)
		}
		if size < 0 || size > maxChunkSize {
			return buf, fmt.Errorf("http1: chunk size %d exceeds %d byte limit", size, int64(maxChunkSize))
		}
		if size == 0 {
			if err := drainTrailers(r); err != nil {
				return buf, err
			}
			return buf, nil
		}

		need := received + size
		for received < need {
			if int64(cap(buf)) < need {
				buf = growPreservingReceived(buf, received)
				if int64(cap(buf)) < need {
					grown := make([]byte, received, need)
					copy(grown, buf[:received])
					buf = grown
				}
			}
			space := buf[received:cap(buf)]
			if int64(len(space)) > need-received {
				space = space[:need-received]
			}
			n, err := r.Read(space)
			received += int64(n)
			buf = buf[:received]
			if err != nil {
				return buf, err
			}
		}

		// Consume the trailing CRLF after the chunk data.
		if _, err := readLine(r); err != nil {
			return buf, err
		}
	}
}

func stripChunkExtension(line string) string {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return strings.TrimSpace(line[:idx])
	}
	return strings.TrimSpace(line)
}

// drainTrailers reads and discards trailer headers up to the blank line
// that ends the chunked body. This engine doesn't expose trailers to
// callers (no component names a use for them), but it must still consume
// them so the connection is left positioned at the next response.
func drainTrailers(r *bufio.Reader) error {
	for {
		line, err := readLine(r)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if line == "" {
			return nil
		}
	}
}
