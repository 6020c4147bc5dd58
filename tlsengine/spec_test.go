package tlsengine

import (
	"testing"

	"github.com/arman-bd/httpmorph-go/browser"
	utls "github.com/refraction-networking/utls"
)

func TestBuildSpecProducesOneExtensionPerProfileEntry(t *testing.T) {
	p := browser.MustLookup("chrome142")
	spec := buildSpec(p)
	if len(spec.Extensions) != len(p.TLS.Extensions) {
		t.Fatalf("got %d extensions, want %d", len(spec.Extensions), len(p.TLS.Extensions))
	}
}

func TestBuildSpecCipherSuitesAreCopiedNotAliased(t *testing.T) {
	p := browser.MustLookup("chrome142")
	spec := buildSpec(p)
	spec.CipherSuites[0] = 0xDEAD
	if p.TLS.CipherSuites[0] == 0xDEAD {
		t.Fatal("buildSpec must not alias the profile's cipher suite slice")
	}
}

func TestBuildSpecIsFreshEachCall(t *testing.T) {
	p := browser.MustLookup("chrome142")
	a := buildSpec(p)
	b := buildSpec(p)
	if &a.Extensions[0] == &b.Extensions[0] {
		t.Fatal("buildSpec must allocate a fresh extension list every call")
	}
}

func TestBuildKeyShareGREASEGetsPlaceholderByte(t *testing.T) {
	groups := []utls.CurveID{utls.CurveID(utls.GREASE_PLACEHOLDER), utls.X25519}
	shares := buildKeyShares(groups)
	if len(shares[0].Data) != 1 {
		t.Errorf("GREASE key share Data = %v, want a single placeholder byte", shares[0].Data)
	}
	if shares[1].Data != nil {
		t.Errorf("real group key share Data = %v, want nil so uTLS generates it", shares[1].Data)
	}
}

func TestBuildVersionsStartsWithGREASE(t *testing.T) {
	p := browser.MustLookup("chrome142")
	versions := buildVersions(p)
	if versions[0] != utls.GREASE_PLACEHOLDER {
		t.Errorf("versions[0] = %#x, want GREASE placeholder", versions[0])
	}
	if versions[1] != utls.VersionTLS13 {
		t.Errorf("versions[1] = %#x, want TLS 1.3", versions[1])
	}
}

func TestBuildSpecUnknownExtensionKindIsSkippedNotPanicked(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("buildExtension panicked on an unrecognised kind: %v", r)
		}
	}()
	if ext := buildExtension(browser.MustLookup("chrome142"), browser.ExtPSKBinder); ext != nil {
		t.Errorf("expected nil for the reserved/unused ExtPSKBinder kind, got %v", ext)
	}
}
