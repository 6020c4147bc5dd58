package headers_test

import (
	"net/http"
	"testing"

	"github.com/arman-bd/httpmorph-go/headers"
)

func TestOrderedPreservesInsertionOrderAndCasing(t *testing.T) {
	h := headers.New()
	h.Add("sec-ch-ua-platform", `"macOS"`)
	h.Add("User-Agent", "test-agent")
	h.Add("Accept", "*/*")

	got := h.Entries()
	want := []string{"sec-ch-ua-platform", "User-Agent", "Accept"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Key != want[i] {
			t.Errorf("entry %d key = %q, want %q", i, e.Key, want[i])
		}
	}
}

func TestOrderedSetReplacesInPlace(t *testing.T) {
	h := headers.New()
	h.Add("Accept", "text/html")
	h.Add("User-Agent", "a")
	h.Set("Accept", "application/json")

	if got := h.Get("Accept"); got != "application/json" {
		t.Errorf("Get(Accept) = %q, want application/json", got)
	}
	if h.Entries()[0].Key != "Accept" {
		t.Errorf("Set should keep the original position, got order %v", h.Entries())
	}
}

func TestOrderedSetRemovesDuplicates(t *testing.T) {
	h := headers.New()
	h.Add("X-Foo", "1")
	h.Add("X-Foo", "2")
	h.Set("X-Foo", "3")
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
	if got := h.Get("X-Foo"); got != "3" {
		t.Errorf("Get(X-Foo) = %q, want 3", got)
	}
}

func TestOrderedGetCaseInsensitive(t *testing.T) {
	h := headers.New()
	h.Add("sec-ch-ua", "x")
	if got := h.Get("Sec-Ch-Ua"); got != "x" {
		t.Errorf("Get case-insensitive = %q, want x", got)
	}
}

func TestOrderedDel(t *testing.T) {
	h := headers.New()
	h.Add("A", "1")
	h.Add("B", "2")
	h.Del("a")
	if h.Has("A") {
		t.Error("expected A removed")
	}
	if !h.Has("B") {
		t.Error("expected B to remain")
	}
}

func TestOrderedMergeDoesNotOverwriteExisting(t *testing.T) {
	base := headers.New()
	base.Add("User-Agent", "custom-ua")

	defaults := headers.New()
	defaults.Add("User-Agent", "default-ua")
	defaults.Add("Accept", "*/*")

	base.Merge(defaults)

	if got := base.Get("User-Agent"); got != "custom-ua" {
		t.Errorf("Merge overwrote caller header: got %q", got)
	}
	if got := base.Get("Accept"); got != "*/*" {
		t.Errorf("Merge should have added Accept, got %q", got)
	}
}

func TestApplyToRequestPreservesCasing(t *testing.T) {
	h := headers.New()
	h.Add("sec-ch-ua-mobile", "?0")

	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	h.ApplyToRequest(req)

	if _, ok := req.Header["sec-ch-ua-mobile"]; !ok {
		t.Errorf("expected raw-cased key preserved, got %v", req.Header)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	h := headers.New()
	h.Add("A", "1")
	c := h.Clone()
	c.Add("B", "2")
	if h.Len() != 1 {
		t.Errorf("mutating clone affected original, Len() = %d", h.Len())
	}
}
