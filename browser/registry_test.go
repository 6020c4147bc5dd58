package browser_test

import (
	"testing"

	"github.com/arman-bd/httpmorph-go/browser"
)

func TestLookupResolvesAlias(t *testing.T) {
	p, err := browser.Lookup("chrome")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "chrome142" {
		t.Errorf("ID = %q, want chrome142", p.ID)
	}
}

func TestLookupEmptyDefaultsToChrome(t *testing.T) {
	p, err := browser.Lookup("")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "chrome142" {
		t.Errorf("ID = %q, want chrome142", p.ID)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := browser.Lookup("netscape-navigator"); err == nil {
		t.Fatal("expected an error for an unknown profile")
	}
}

func TestIDsAreSortedAndUnique(t *testing.T) {
	ids := browser.IDs()
	if len(ids) != 4 {
		t.Fatalf("len(IDs()) = %d, want 4", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Fatalf("IDs() not sorted: %v", ids)
		}
	}
}

func TestChrome142RequiredShape(t *testing.T) {
	p := browser.MustLookup("chrome142")

	if len(p.TLS.CipherSuites) < 15 {
		t.Errorf("chrome142 cipher suites = %d, want >= 15", len(p.TLS.CipherSuites))
	}
	if len(p.TLS.Extensions) < 16 {
		t.Errorf("chrome142 extensions = %d, want >= 16", len(p.TLS.Extensions))
	}
	if got, want := len(p.TLS.ALPNProtocols), 2; got != want {
		t.Errorf("chrome142 ALPN protocols = %d, want %d", got, want)
	}
	if p.TLS.ALPNProtocols[0] != "h2" {
		t.Errorf("chrome142 ALPN[0] = %q, want h2", p.TLS.ALPNProtocols[0])
	}
	if len(p.TLS.SupportedGroups) < 4 {
		t.Errorf("chrome142 supported groups = %d, want >= 4", len(p.TLS.SupportedGroups))
	}
}

func TestUserAgentFallsBackToDefaultOS(t *testing.T) {
	p := browser.MustLookup("safari17")
	if ua := p.UserAgent(browser.OSLinux); ua == "" {
		t.Error("expected a non-empty fallback User-Agent for an OS safari17 doesn't list")
	}
}

func TestEdgeSharesChromeTLSShape(t *testing.T) {
	chrome := browser.MustLookup("chrome142")
	edge := browser.MustLookup("edge142")
	if len(edge.TLS.CipherSuites) != len(chrome.TLS.CipherSuites) {
		t.Error("edge142 should share chrome142's cipher suite list")
	}
}
