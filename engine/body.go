// Package engine is the request orchestrator and session/client surface
// (components C9 and C10): it merges session defaults with per-call
// arguments, resolves a connection through the pool (C8), drives it through
// the HTTP/1.1 codec (C4) or the HTTP/2 transport (C5), and handles
// redirects, the pool-stale retry, timeouts, and compression.
package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
)

// Body is the tagged union spec.md §9 calls for: the binding layer's
// dynamic `data=bytes|str|dict`/`json=`/`files=` inputs, re-expressed as a
// closed Go interface so the orchestrator can switch on the concrete type
// instead of reflecting over an empty interface.
type Body interface {
	// encode serializes the body, returning its bytes, the Content-Type it
	// implies ("" if the caller must already have set one), and any
	// serialization error.
	encode() (data []byte, contentType string, err error)
}

// BytesBody is a body supplied as raw bytes or a string; it implies no
// Content-Type of its own.
type BytesBody struct {
	Data []byte
}

func (b BytesBody) encode() ([]byte, string, error) { return b.Data, "", nil }

// FormBody is a body supplied as a string-keyed map, serialized as
// application/x-www-form-urlencoded.
type FormBody struct {
	Values url.Values
}

func (b FormBody) encode() ([]byte, string, error) {
	return []byte(b.Values.Encode()), "application/x-www-form-urlencoded", nil
}

// JSONBody is a body supplied as an arbitrary Go value, serialized as UTF-8
// JSON. Per spec.md §4.10 step 3, a request with both Json and a sibling
// Data field set has Json win; callers enforce that by only ever
// constructing one Body value per request.
type JSONBody struct {
	Value any
}

func (b JSONBody) encode() ([]byte, string, error) {
	data, err := json.Marshal(b.Value)
	if err != nil {
		return nil, "", fmt.Errorf("engine: encode json body: %w", err)
	}
	return data, "application/json", nil
}

// FilePart is one file entry of a MultipartBody.
type FilePart struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// MultipartBody is a body supplied as a file set plus ordinary form fields,
// serialized as multipart/form-data with a fresh random boundary per
// spec.md §4.10 step 3.
type MultipartBody struct {
	Files  []FilePart
	Fields map[string]string
}

func (b MultipartBody) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range b.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("engine: encode multipart field %q: %w", k, err)
		}
	}
	for _, f := range b.Files {
		var part io.Writer
		var err error
		if f.ContentType != "" {
			h := make(map[string][]string)
			h["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name=%q; filename=%q`, f.FieldName, f.FileName)}
			h["Content-Type"] = []string{f.ContentType}
			part, err = w.CreatePart(h)
		} else {
			part, err = w.CreateFormFile(f.FieldName, f.FileName)
		}
		if err != nil {
			return nil, "", fmt.Errorf("engine: encode multipart file %q: %w", f.FieldName, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("engine: write multipart file %q: %w", f.FieldName, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("engine: close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
