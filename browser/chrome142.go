package browser

import utls "github.com/refraction-networking/utls"

// greaseCurve is the GREASE_PLACEHOLDER value reinterpreted as a CurveID, for
// use in supported_groups and key_share lists. uTLS recognises this sentinel
// and substitutes a fresh reserved GREASE group at handshake time, so the
// same Profile produces a different GREASE value on every connection.
const greaseCurve = utls.CurveID(utls.GREASE_PLACEHOLDER)

// chrome142 is the normative Chrome 142 / macOS profile. Cipher order,
// extension order, group list and ALPS codepoint were cross-checked against
// the JA3N/JA4 fixtures captured for Chrome 142; see
// TestChrome142Fingerprint in the project this module traces its lineage to.
var chrome142 = &Profile{
	ID:    "chrome142",
	Alias: []string{"chrome"},

	DefaultOS: OSMacOS,
	UserAgents: map[OS]string{
		OSMacOS:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36",
		OSWindows: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36",
		OSLinux:   "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36",
	},

	TLS: TLS{
		MinVersion: utls.VersionTLS12,
		MaxVersion: utls.VersionTLS13,

		// GREASE, then the 15 real cipher suites in Chrome's fixed order.
		CipherSuites: []uint16{
			utls.GREASE_PLACEHOLDER,
			utls.TLS_AES_128_GCM_SHA256,
			utls.TLS_AES_256_GCM_SHA384,
			utls.TLS_CHACHA20_POLY1305_SHA256,
			utls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			utls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			utls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			utls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			utls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
			utls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
			utls.TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA,
			utls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
			utls.TLS_RSA_WITH_AES_128_GCM_SHA256,
			utls.TLS_RSA_WITH_AES_256_GCM_SHA384,
			utls.TLS_RSA_WITH_AES_128_CBC_SHA,
			utls.TLS_RSA_WITH_AES_256_CBC_SHA,
		},

		Extensions: []ExtensionKind{
			ExtGREASE,
			ExtSNI,
			ExtExtendedMasterSecret,
			ExtRenegotiationInfo,
			ExtSupportedGroups,
			ExtECPointFormats,
			ExtSessionTicket,
			ExtALPN,
			ExtStatusRequest,
			ExtSignatureAlgorithms,
			ExtSCT,
			ExtKeyShare,
			ExtPSKKeyExchangeModes,
			ExtSupportedVersions,
			ExtCompressCertificate,
			ExtApplicationSettingsNew,
			ExtRecordSizeLimit,
			ExtEncryptedClientHelloGREASE,
			ExtGREASE, // trailing GREASE, mirrors real Chrome captures
			ExtPadding,
		},

		SupportedGroups: []utls.CurveID{
			greaseCurve,
			utls.X25519MLKEM768,
			utls.X25519,
			utls.CurveP256,
			utls.CurveP384,
		},
		KeyShareGroups: []utls.CurveID{
			greaseCurve,
			utls.X25519MLKEM768,
			utls.X25519,
		},

		SignatureAlgorithms: []utls.SignatureScheme{
			utls.ECDSAWithP256AndSHA256,
			utls.PSSWithSHA256,
			utls.PKCS1WithSHA256,
			utls.ECDSAWithP384AndSHA384,
			utls.PSSWithSHA384,
			utls.PKCS1WithSHA384,
			utls.PSSWithSHA512,
			utls.PKCS1WithSHA512,
		},
		CompressionMethods:  []uint8{0x00},
		ECPointFormats:      []uint8{0x00},
		ALPNProtocols:       []string{"h2", "http/1.1"},
		ALPSProtocols:       []string{"h2"},
		CertCompressionAlgos: []utls.CertCompressionAlgo{utls.CertCompressionBrotli},
		// record_size_limit and padding are both present on real Chrome 142
		// captures, and both appear (as IDs 28 and 21) in the JA3 and JA3N
		// extension lists computed from this profile.
		RecordSizeLimit: 0x4001,
	},

	HTTP2: HTTP2{
		Settings: []Setting{
			{ID: SettingsHeaderTableSize, Value: 65536},
			{ID: SettingsEnablePush, Value: 0},
			{ID: SettingsInitialWindowSize, Value: 6291456},
			{ID: SettingsMaxHeaderListSize, Value: 262144},
		},
		WindowUpdateIncrement: 15663105,
		PseudoHeaderOrder:     [4]string{":method", ":authority", ":scheme", ":path"},
	},

	HeaderOrder: []string{
		"sec-ch-ua",
		"sec-ch-ua-mobile",
		"sec-ch-ua-platform",
		"Upgrade-Insecure-Requests",
		"User-Agent",
		"Accept",
		"sec-fetch-site",
		"sec-fetch-mode",
		"sec-fetch-user",
		"sec-fetch-dest",
		"Accept-Encoding",
		"Accept-Language",
	},
	HeaderValues: map[string]string{
		"sec-ch-ua":           `"Chromium";v="142", "Not_A Brand";v="24", "Google Chrome";v="142"`,
		"sec-ch-ua-mobile":    "?0",
		"sec-ch-ua-platform":  `"macOS"`,
		"Upgrade-Insecure-Requests": "1",
		"Accept":              "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
		"sec-fetch-site":      "none",
		"sec-fetch-mode":      "navigate",
		"sec-fetch-user":      "?1",
		"sec-fetch-dest":      "document",
		"Accept-Encoding":     "gzip, deflate, br, zstd",
		"Accept-Language":     "en-US,en;q=0.9",
	},
}
