package tlsengine

import (
	"github.com/arman-bd/httpmorph-go/browser"
	utls "github.com/refraction-networking/utls"
)

// buildSpec translates a browser.Profile's declarative TLS shape into a
// fresh *utls.ClientHelloSpec. It is called once per handshake (never
// cached) so that uTLS's GREASE substitution — which is seeded per
// connection — draws new values every time, exactly like a real browser
// opening a new connection.
//
// The extension construction order mirrors the uTLS ClientHelloSpec authors
// commonly use for custom Chrome-shaped specs: GREASE first, SNI second,
// then the fixed TLS 1.3 extension block, with padding last so its length
// calculation sees every preceding extension.
func buildSpec(p *browser.Profile) *utls.ClientHelloSpec {
	exts := make([]utls.TLSExtension, 0, len(p.TLS.Extensions))
	for _, kind := range p.TLS.Extensions {
		if ext := buildExtension(p, kind); ext != nil {
			exts = append(exts, ext)
		}
	}

	return &utls.ClientHelloSpec{
		CipherSuites:       append([]uint16(nil), p.TLS.CipherSuites...),
		CompressionMethods: append([]uint8(nil), p.TLS.CompressionMethods...),
		Extensions:         exts,
	}
}

func buildExtension(p *browser.Profile, kind browser.ExtensionKind) utls.TLSExtension {
	switch kind {
	case browser.ExtGREASE:
		return &utls.UtlsGREASEExtension{}
	case browser.ExtSNI:
		return &utls.SNIExtension{}
	case browser.ExtExtendedMasterSecret:
		return &utls.UtlsExtendedMasterSecretExtension{}
	case browser.ExtRenegotiationInfo:
		return &utls.RenegotiationInfoExtension{Renegotiation: utls.RenegotiateOnceAsClient}
	case browser.ExtSupportedGroups:
		return &utls.SupportedCurvesExtension{Curves: append([]utls.CurveID(nil), p.TLS.SupportedGroups...)}
	case browser.ExtECPointFormats:
		return &utls.SupportedPointsExtension{SupportedPoints: append([]uint8(nil), p.TLS.ECPointFormats...)}
	case browser.ExtSessionTicket:
		return &utls.SessionTicketExtension{}
	case browser.ExtALPN:
		return &utls.ALPNExtension{AlpnProtocols: append([]string(nil), p.TLS.ALPNProtocols...)}
	case browser.ExtStatusRequest:
		return &utls.StatusRequestExtension{}
	case browser.ExtSignatureAlgorithms:
		return &utls.SignatureAlgorithmsExtension{
			SupportedSignatureAlgorithms: append([]utls.SignatureScheme(nil), p.TLS.SignatureAlgorithms...),
		}
	case browser.ExtSCT:
		return &utls.SCTExtension{}
	case browser.ExtKeyShare:
		return &utls.KeyShareExtension{KeyShares: buildKeyShares(p.TLS.KeyShareGroups)}
	case browser.ExtPSKKeyExchangeModes:
		return &utls.PSKKeyExchangeModesExtension{Modes: []uint8{utls.PskModeDHE}}
	case browser.ExtSupportedVersions:
		return &utls.SupportedVersionsExtension{Versions: buildVersions(p)}
	case browser.ExtCompressCertificate:
		return &utls.UtlsCompressCertExtension{
			Algorithms: append([]utls.CertCompressionAlgo(nil), p.TLS.CertCompressionAlgos...),
		}
	case browser.ExtApplicationSettingsOld:
		return &utls.ApplicationSettingsExtension{SupportedProtocols: append([]string(nil), p.TLS.ALPSProtocols...)}
	case browser.ExtApplicationSettingsNew:
		return &utls.ApplicationSettingsExtensionNew{SupportedProtocols: append([]string(nil), p.TLS.ALPSProtocols...)}
	case browser.ExtRecordSizeLimit:
		return &utls.FakeRecordSizeLimitExtension{Limit: p.TLS.RecordSizeLimit}
	case browser.ExtEncryptedClientHelloGREASE:
		return utls.BoringGREASEECH()
	case browser.ExtPadding:
		return &utls.UtlsPaddingExtension{GetPaddingLen: utls.BoringPaddingStyle}
	default:
		return nil
	}
}

// buildKeyShares generates a key_share entry per group. A GREASE group gets
// a single zero byte as its "share" (real browsers never exchange real key
// material on a GREASE group); every other group is left with nil Data so
// uTLS generates real key material for it during the handshake.
func buildKeyShares(groups []utls.CurveID) []utls.KeyShare {
	out := make([]utls.KeyShare, 0, len(groups))
	for _, g := range groups {
		ks := utls.KeyShare{Group: g}
		if uint16(g) == utls.GREASE_PLACEHOLDER {
			ks.Data = []byte{0}
		}
		out = append(out, ks)
	}
	return out
}

// buildVersions returns the supported_versions list: GREASE first when the
// profile's extension list carries ExtGREASE, then every real TLS version
// from MaxVersion down to MinVersion.
func buildVersions(p *browser.Profile) []uint16 {
	all := []uint16{utls.VersionTLS13, utls.VersionTLS12, utls.VersionTLS11, utls.VersionTLS10}
	var out []uint16
	for _, kind := range p.TLS.Extensions {
		if kind == browser.ExtGREASE {
			out = append(out, utls.GREASE_PLACEHOLDER)
			break
		}
	}
	for _, v := range all {
		if v <= p.TLS.MaxVersion && v >= p.TLS.MinVersion {
			out = append(out, v)
		}
	}
	return out
}
