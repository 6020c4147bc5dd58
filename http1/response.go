package http1

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arman-bd/httpmorph-go/headers"
)

// Response is the parsed shape of an HTTP/1.1 response line plus headers.
// Body is left unread; call ReadBody to materialize it according to the
// framing ReadResponse already determined (Content-Length, chunked, or
// close-delimited).
type Response struct {
	StatusCode int
	Status     string
	Proto      string
	Header     *headers.Ordered

	framing       bodyFraming
	contentLength int64
	r             *bufio.Reader
}

type bodyFraming int

const (
	framingNone bodyFraming = iota
	framingContentLength
	framingChunked
	framingCloseDelimited
)

var errMalformedStatusLine = errors.New("http1: malformed status line")

// ReadResponse parses a status line and header block from r. It does not
// read the body; call (*Response).ReadBody for that.
func ReadResponse(r *bufio.Reader) (*Response, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 {
		return nil, errMalformedStatusLine
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad status code %q", errMalformedStatusLine, parts[1])
	}
	status := parts[1]
	if len(parts) == 3 {
		status = parts[1] + " " + parts[2]
	}

	resp := &Response{
		StatusCode: code,
		Status:     status,
		Proto:      parts[0],
		Header:     headers.New(),
		r:          r,
	}

	for {
		line, err := readLine(r)
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			continue // tolerate a malformed header line rather than aborting the whole response
		}
		key := line[:idx]
		val := strings.TrimSpace(line[idx+1:])
		resp.Header.Add(key, val)
	}

	resp.determineFraming()
	return resp, nil
}

func (resp *Response) determineFraming() {
	if te := resp.Header.Get("Transfer-Encoding"); strings.EqualFold(te, "chunked") {
		resp.framing = framingChunked
		return
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil && n >= 0 {
			resp.framing = framingContentLength
			resp.contentLength = n
			return
		}
	}
	if resp.StatusCode == 204 || resp.StatusCode == 304 || resp.StatusCode/100 == 1 {
		resp.framing = framingNone
		return
	}
	resp.framing = framingCloseDelimited
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadBody fully reads and returns the response body according to the
// framing determined by ReadResponse.
//
// The growth loop below fixes a real class of bug: a reallocating buffer
// must always be resliced to the number of bytes actually received so far
// (received), never to a nominal total like Content-Length — that field is
// meaningless (or, for chunked/close-delimited bodies, doesn't exist) until
// every byte has arrived, so copying by it mid-read either truncates the
// tail or copies uninitialized memory into the result.
func (resp *Response) ReadBody() ([]byte, error) {
	switch resp.framing {
	case framingNone:
		return nil, nil
	case framingContentLength:
		return readExactly(resp.r, resp.contentLength)
	case framingChunked:
		return readChunked(resp.r)
	default:
		return readUntilClose(resp.r)
	}
}

func readExactly(r *bufio.Reader, n int64) ([]byte, error) {
	buf := make([]byte, 0, initialCap(n))
	var received int64
	for received < n {
		if len(buf) == cap(buf) {
			buf = growPreservingReceived(buf, received)
		}
		space := buf[received:cap(buf)]
		if int64(len(space)) > n-received {
			space = space[:n-received]
		}
		nn, err := r.Read(space)
		received += int64(nn)
		buf = buf[:received]
		if err != nil {
			if err == io.EOF && received == n {
				break
			}
			return buf, err
		}
	}
	return buf, nil
}

func readUntilClose(r *bufio.Reader) ([]byte, error) {
	buf := make([]byte, 0, 32*1024)
	var received int64
	chunk := make([]byte, 32*1024)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			received += int64(n)
			buf = append(buf, chunk[:n]...)
		}
		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return buf, err
		}
	}
}

// growPreservingReceived doubles buf's capacity while preserving exactly the first
// `received` bytes — the bytes actually read so far, not buf's stale
// length or any externally-reported total size.
func growPreservingReceived(buf []byte, received int64) []byte {
	newCap := cap(buf) * 2
	if newCap == 0 {
		newCap = 4096
	}
	grown := make([]byte, received, newCap)
	copy(grown, buf[:received])
	return grown
}

// initialCap is the starting capacity of a Content-Length body buffer:
// 64 KiB, or n itself when the body is smaller. Larger bodies grow from
// there by doubling.
func initialCap(n int64) int64 {
	if n <= 0 {
		return 4096
	}
	if n > 64<<10 {
		return 64 << 10
	}
	return n
}
