package http2engine

import (
	"testing"

	"github.com/arman-bd/httpmorph-go/browser"
)

func TestNewTransportWiresSettingsFromProfile(t *testing.T) {
	profile := browser.MustLookup("chrome142")
	rt := NewTransport(Config{Profile: profile})

	impl, ok := rt.(*roundTripper)
	if !ok {
		t.Fatalf("NewTransport returned %T, want *roundTripper", rt)
	}
	if impl.h2.MaxDecoderHeaderTableSize != 65536 {
		t.Errorf("MaxDecoderHeaderTableSize = %d, want 65536", impl.h2.MaxDecoderHeaderTableSize)
	}
	if impl.h2.MaxHeaderListSize != 262144 {
		t.Errorf("MaxHeaderListSize = %d, want 262144", impl.h2.MaxHeaderListSize)
	}
}

func TestNewTransportDefaultsToChromeProfile(t *testing.T) {
	rt := NewTransport(Config{})
	impl := rt.(*roundTripper)
	if impl.profile.ID != "chrome142" {
		t.Errorf("default profile = %q, want chrome142", impl.profile.ID)
	}
}

func TestPseudoHeaderOrderMatchesProfile(t *testing.T) {
	profile := browser.MustLookup("firefox141")
	order := PseudoHeaderOrder(profile)
	if order != profile.HTTP2.PseudoHeaderOrder {
		t.Error("PseudoHeaderOrder should echo the profile's own order")
	}
}
