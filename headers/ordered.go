// Package headers provides an order- and case-preserving HTTP header list.
//
// net/http's http.Header is a map[string][]string keyed by canonical casing,
// which loses both the exact byte casing and the insertion order a browser
// fingerprinting target cares about. Ordered fixes both: entries are stored
// in a slice, and ApplyToRequest writes them into the raw header map bypassing
// net/http's canonicalization.
package headers

import "net/http"

// Entry is a single header key/value pair with its original casing.
type Entry struct {
	Key   string
	Value string
}

// Ordered is a drop-in companion to http.Header that preserves the exact
// capitalisation and insertion order of HTTP headers.
//
// Ordered is NOT safe for concurrent use without external synchronisation.
// Each Request/Session owns its own Ordered snapshot built before the
// goroutine issuing the request starts, so no additional locking is required.
type Ordered struct {
	entries []Entry
}

// New returns an empty Ordered header list.
func New() *Ordered { return &Ordered{} }

// Add appends key/value, preserving the exact casing of key. Multiple calls
// with the same key produce multiple entries (like http.Header.Add).
func (h *Ordered) Add(key, value string) {
	h.entries = append(h.entries, Entry{Key: key, Value: value})
}

// Set replaces the first entry whose key matches key (case-insensitively)
// with the new value and removes any subsequent duplicates. If no entry with
// that key exists, Set behaves like Add. The position of the first match is
// preserved; the casing of the surviving entry becomes key.
func (h *Ordered) Set(key, value string) {
	canon := http.CanonicalHeaderKey(key)
	replaced := false
	out := h.entries[:0]
	for _, e := range h.entries {
		if http.CanonicalHeaderKey(e.Key) == canon {
			if !replaced {
				out = append(out, Entry{Key: key, Value: value})
				replaced = true
			}
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, Entry{Key: key, Value: value})
	}
	h.entries = out
}

// Del removes all entries whose key matches key (case-insensitively).
func (h *Ordered) Del(key string) {
	canon := http.CanonicalHeaderKey(key)
	out := h.entries[:0]
	for _, e := range h.entries {
		if http.CanonicalHeaderKey(e.Key) != canon {
			out = append(out, e)
		}
	}
	h.entries = out
}

// Get returns the value of the first entry whose key matches key
// (case-insensitively), or "" if none exists.
func (h *Ordered) Get(key string) string {
	canon := http.CanonicalHeaderKey(key)
	for _, e := range h.entries {
		if http.CanonicalHeaderKey(e.Key) == canon {
			return e.Value
		}
	}
	return ""
}

// Has reports whether any entry matches key (case-insensitively).
func (h *Ordered) Has(key string) bool {
	canon := http.CanonicalHeaderKey(key)
	for _, e := range h.entries {
		if http.CanonicalHeaderKey(e.Key) == canon {
			return true
		}
	}
	return false
}

// Len returns the number of entries, including duplicates.
func (h *Ordered) Len() int { return len(h.entries) }

// Entries returns the entries in insertion order. The returned slice must
// not be mutated by the caller.
func (h *Ordered) Entries() []Entry { return h.entries }

// Clone returns a deep copy of the receiver.
func (h *Ordered) Clone() *Ordered {
	c := &Ordered{entries: make([]Entry, len(h.entries))}
	copy(c.entries, h.entries)
	return c
}

// Merge appends every entry of other whose key is not already present in h,
// preserving h's existing entries and their order. Use this to overlay
// caller-supplied overrides on top of a profile's default header template
// without duplicating keys the caller already set.
func (h *Ordered) Merge(other *Ordered) {
	for _, e := range other.entries {
		if !h.Has(e.Key) {
			h.entries = append(h.entries, e)
		}
	}
}

// ApplyToRequest writes every entry of h into req.Header, preserving exact
// key casing and insertion order, by writing directly into the underlying
// map instead of going through http.Header.Set/Add (which canonicalizes the
// key). Any headers already present on req are replaced, not merged.
func (h *Ordered) ApplyToRequest(req *http.Request) {
	req.Header = make(http.Header, len(h.entries))
	for _, e := range h.entries {
		req.Header[e.Key] = append(req.Header[e.Key], e.Value)
	}
}

// ToHTTPHeader converts h to a standard http.Header map. Insertion order is
// lost (maps are unordered) but the exact key casing is preserved because the
// raw key is used as the map key rather than its canonical form.
func (h *Ordered) ToHTTPHeader() http.Header {
	out := make(http.Header, len(h.entries))
	for _, e := range h.entries {
		out[e.Key] = append(out[e.Key], e.Value)
	}
	return out
}
