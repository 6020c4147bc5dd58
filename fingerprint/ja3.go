// Package fingerprint computes JA3, JA3N and JA4 TLS client fingerprints
// directly from a browser.Profile's declarative component lists, rather than
// by re-parsing captured ClientHello bytes. Because tlsengine builds the
// wire ClientHello from exactly these lists (substituting fresh GREASE
// values at handshake time), the hash computed here is guaranteed to match
// what ends up on the wire for every GREASE-free (i.e. JA3N/JA4) fingerprint,
// and matches JA3 up to its inherently random GREASE fields.
package fingerprint

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/arman-bd/httpmorph-go/browser"
	utls "github.com/refraction-networking/utls"
)

// legacyClientHelloVersion is the wire value Chrome, Firefox and Safari all
// put in ClientHello.legacy_version regardless of their actual negotiated
// TLS version, since RFC 8446 requires TLS 1.3 clients to advertise 1.2
// there for middlebox compatibility.
const legacyClientHelloVersion = 0x0303

// extensionWireID maps a declarative ExtensionKind to its IANA TLS
// ExtensionType codepoint. ExtGREASE has no fixed codepoint — uTLS draws one
// of the 16 reserved GREASE values at handshake time — so it is excluded
// from every fingerprint computed here, matching how JA3/JA3N/JA4 treat
// GREASE in real captures.
func extensionWireID(k browser.ExtensionKind) (id uint16, ok bool) {
	switch k {
	case browser.ExtSNI:
		return 0, true
	case browser.ExtStatusRequest:
		return 5, true
	case browser.ExtSupportedGroups:
		return 10, true
	case browser.ExtECPointFormats:
		return 11, true
	case browser.ExtSignatureAlgorithms:
		return 13, true
	case browser.ExtALPN:
		return 16, true
	case browser.ExtSCT:
		return 18, true
	case browser.ExtExtendedMasterSecret:
		return 23, true
	case browser.ExtCompressCertificate:
		return 27, true
	case browser.ExtRecordSizeLimit:
		return 28, true
	case browser.ExtSessionTicket:
		return 35, true
	case browser.ExtSupportedVersions:
		return 43, true
	case browser.ExtPSKKeyExchangeModes:
		return 45, true
	case browser.ExtKeyShare:
		return 51, true
	case browser.ExtPadding:
		return 21, true
	case browser.ExtApplicationSettingsOld:
		return 17513, true
	case browser.ExtApplicationSettingsNew:
		return 17613, true
	case browser.ExtEncryptedClientHelloGREASE:
		return 65037, true
	case browser.ExtRenegotiationInfo:
		return 65281, true
	default:
		return 0, false
	}
}

func isGREASEValue(v uint16) bool {
	// The 16 reserved GREASE codepoints all have the form 0x?A?A.
	return v&0x0f0f == 0x0a0a && v>>8 == v&0xff
}

func joinUint16(vals []uint16, base16 bool) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		if base16 {
			parts[i] = fmt.Sprintf("%04x", v)
		} else {
			parts[i] = fmt.Sprintf("%d", v)
		}
	}
	return strings.Join(parts, "-")
}

func nonGREASECiphers(p *browser.Profile) []uint16 {
	out := make([]uint16, 0, len(p.TLS.CipherSuites))
	for _, c := range p.TLS.CipherSuites {
		if isGREASEValue(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func nonGREASEGroups(p *browser.Profile) []uint16 {
	out := make([]uint16, 0, len(p.TLS.SupportedGroups))
	for _, g := range p.TLS.SupportedGroups {
		if isGREASEValue(uint16(g)) {
			continue
		}
		out = append(out, uint16(g))
	}
	return out
}

// extensionIDsInOrder returns the wire extension IDs in ClientHello capture
// order, skipping GREASE slots.
func extensionIDsInOrder(p *browser.Profile) []uint16 {
	out := make([]uint16, 0, len(p.TLS.Extensions))
	for _, kind := range p.TLS.Extensions {
		id, ok := extensionWireID(kind)
		if !ok {
			continue // GREASE or otherwise fingerprint-invisible
		}
		out = append(out, id)
	}
	return out
}

// JA3 returns the classic JA3 fingerprint string
// (SSLVersion,Ciphers,Extensions,EllipticCurves,EllipticCurvePointFormats)
// and its MD5 digest, in JA3's original capture-order form. The digest is
// only meaningful up to GREASE randomness — two handshakes built from the
// same Profile will have the same JA3 string because GREASE values are
// excluded, even though the wire bytes differ each time.
func JA3(p *browser.Profile) (raw string, digest string) {
	raw = strings.Join([]string{
		fmt.Sprintf("%d", legacyClientHelloVersion),
		joinUint16(nonGREASECiphers(p), false),
		joinUint16(extensionIDsInOrder(p), false),
		joinUint16(nonGREASEGroups(p), false),
		joinUint16(toUint16(p.TLS.ECPointFormats), false),
	}, ",")
	sum := md5.Sum([]byte(raw))
	return raw, hex.EncodeToString(sum[:])
}

// JA3N is JA3 with the cipher suite and extension lists each sorted
// numerically ascending instead of kept in capture order, making it stable
// across implementations (like uTLS's ShuffleChromeTLSExtensions) that
// reorder them. Groups and EC point formats keep their profile order.
func JA3N(p *browser.Profile) (raw string, digest string) {
	ext := extensionIDsInOrder(p)
	sorted := append([]uint16(nil), ext...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	ciphers := nonGREASECiphers(p)
	sort.Slice(ciphers, func(i, j int) bool { return ciphers[i] < ciphers[j] })

	raw = strings.Join([]string{
		fmt.Sprintf("%d", legacyClientHelloVersion),
		joinUint16(ciphers, false),
		joinUint16(sorted, false),
		joinUint16(nonGREASEGroups(p), false),
		joinUint16(toUint16(p.TLS.ECPointFormats), false),
	}, ",")
	sum := md5.Sum([]byte(raw))
	return raw, hex.EncodeToString(sum[:])
}

func toUint16(b []uint8) []uint16 {
	out := make([]uint16, len(b))
	for i, v := range b {
		out[i] = uint16(v)
	}
	return out
}

// sigAlgoHex renders a profile's signature_algorithms list as 4-hex-digit
// codepoints in original (unsorted) order, as JA4 requires.
func sigAlgoHex(p *browser.Profile) string {
	parts := make([]string, len(p.TLS.SignatureAlgorithms))
	for i, s := range p.TLS.SignatureAlgorithms {
		parts[i] = fmt.Sprintf("%04x", uint16(s))
	}
	return strings.Join(parts, ",")
}

// ja4Prefix builds the fixed-width "t13d1516h2"-shaped prefix shared by JA4
// and JA4_R: protocol, TLS version, SNI-present flag, cipher count,
// extension count (every non-GREASE extension, SNI and ALPN included),
// and first ALPN value (truncated to 2 chars, "00" if absent).
func ja4Prefix(p *browser.Profile) string {
	version := "13"
	if p.TLS.MaxVersion == utls.VersionTLS12 {
		version = "12"
	}
	sni := "d" // this engine always sends SNI
	ciphers := len(nonGREASECiphers(p))

	// Per the JA4 spec the extension count includes every non-GREASE
	// extension (SNI and ALPN included); only the separate extension-hex
	// segment below excludes SNI and ALPN, since those are already encoded
	// by the "d" flag and the trailing ALPN value.
	extCount := 0
	for _, kind := range p.TLS.Extensions {
		if _, ok := extensionWireID(kind); ok {
			extCount++
		}
	}

	alpn := "00"
	if len(p.TLS.ALPNProtocols) > 0 {
		a := p.TLS.ALPNProtocols[0]
		if len(a) >= 2 {
			alpn = a[:2]
		} else {
			alpn = a
		}
	}

	return fmt.Sprintf("t%s%s%02d%02d%s", version, sni, ciphers, extCount, alpn)
}

// ja4ExtensionHex returns the JA4 extension segment: wire extension IDs,
// excluding SNI(0000) and ALPN(0010), as 4-hex-digit codepoints sorted
// numerically ascending and comma-joined.
func ja4ExtensionHex(p *browser.Profile) string {
	ids := make([]uint16, 0, len(p.TLS.Extensions))
	for _, kind := range p.TLS.Extensions {
		id, ok := extensionWireID(kind)
		if !ok || id == 0 || id == 16 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%04x", id)
	}
	return strings.Join(parts, ",")
}

func ja4CipherHex(p *browser.Profile) string {
	ciphers := nonGREASECiphers(p)
	sorted := append([]uint16(nil), ciphers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, c := range sorted {
		parts[i] = fmt.Sprintf("%04x", c)
	}
	return strings.Join(parts, ",")
}

func truncatedSHA256(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// JA4R returns the raw (unhashed) JA4_R fingerprint, useful for debugging
// and for the exact test fixtures this engine was validated against.
func JA4R(p *browser.Profile) string {
	return fmt.Sprintf("%s_%s_%s_%s", ja4Prefix(p), ja4CipherHex(p), ja4ExtensionHex(p), sigAlgoHex(p))
}

// JA4 returns the standard JA4 fingerprint: the same prefix as JA4_R with
// its two variable-length segments collapsed to 12-hex-character truncated
// SHA-256 digests.
func JA4(p *browser.Profile) string {
	cipherPart := truncatedSHA256(ja4CipherHex(p))
	extPart := truncatedSHA256(ja4ExtensionHex(p) + "_" + sigAlgoHex(p))
	return fmt.Sprintf("%s_%s_%s", ja4Prefix(p), cipherPart, extPart)
}
