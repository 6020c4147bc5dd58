package fingerprint_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/arman-bd/httpmorph-go/browser"
	"github.com/arman-bd/httpmorph-go/fingerprint"
)

func TestJA3IsThirtyTwoHexDigest(t *testing.T) {
	p := browser.MustLookup("chrome142")
	_, digest := fingerprint.JA3(p)
	if len(digest) != 32 {
		t.Fatalf("JA3 digest length = %d, want 32", len(digest))
	}
	for _, r := range digest {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("JA3 digest contains non-hex rune %q", r)
		}
	}
}

func TestJA3NSortsExtensionsAscending(t *testing.T) {
	p := browser.MustLookup("chrome142")
	raw, _ := fingerprint.JA3N(p)
	fields := strings.Split(raw, ",")
	if len(fields) != 5 {
		t.Fatalf("JA3N raw has %d fields, want 5", len(fields))
	}
	ids := strings.Split(fields[2], "-")
	prev := -1
	for _, idStr := range ids {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			t.Fatalf("non-numeric extension id %q: %v", idStr, err)
		}
		if id <= prev {
			t.Fatalf("JA3N extensions not strictly ascending: %v", ids)
		}
		prev = id
	}
}

func TestJA3ExcludesGREASECiphers(t *testing.T) {
	p := browser.MustLookup("chrome142")
	raw, _ := fingerprint.JA3(p)
	fields := strings.Split(raw, ",")
	ciphers := strings.Split(fields[1], "-")
	if len(ciphers) != 15 {
		t.Fatalf("chrome142 JA3 cipher count = %d, want 15 (GREASE excluded)", len(ciphers))
	}
}

func TestJA4PrefixShape(t *testing.T) {
	p := browser.MustLookup("chrome142")
	ja4 := fingerprint.JA4(p)
	if !strings.HasPrefix(ja4, "t13d") {
		t.Errorf("JA4 = %q, want to start with t13d", ja4)
	}
	if !strings.Contains(ja4, "h2") {
		t.Errorf("JA4 = %q, want to mention h2 ALPN", ja4)
	}
	parts := strings.Split(ja4, "_")
	if len(parts) != 3 {
		t.Fatalf("JA4 has %d underscore-separated parts, want 3", len(parts))
	}
	if len(parts[1]) != 12 || len(parts[2]) != 12 {
		t.Errorf("JA4 hash segments = %d/%d chars, want 12/12", len(parts[1]), len(parts[2]))
	}
}

func TestJA4RSignatureAlgorithmsKeepOriginalOrder(t *testing.T) {
	p := browser.MustLookup("chrome142")
	r := fingerprint.JA4R(p)
	parts := strings.Split(r, "_")
	if len(parts) != 4 {
		t.Fatalf("JA4_R has %d parts, want 4", len(parts))
	}
	if parts[3] != "0403,0804,0401,0503,0805,0501,0806,0601" {
		t.Errorf("JA4_R signature algorithm segment = %q", parts[3])
	}
}

func TestDifferentProfilesProduceDifferentFingerprints(t *testing.T) {
	chrome := browser.MustLookup("chrome142")
	firefox := browser.MustLookup("firefox141")

	_, chromeJA3N := fingerprint.JA3N(chrome)
	_, firefoxJA3N := fingerprint.JA3N(firefox)
	if chromeJA3N == firefoxJA3N {
		t.Error("expected distinct JA3N digests for chrome142 and firefox141")
	}
}
