package browser

import utls "github.com/refraction-networking/utls"

// firefox141 approximates a current-release Firefox on macOS. Firefox does
// not GREASE its ClientHello, uses a different cipher/extension order than
// Chrome, and omits Chrome's Client Hints (sec-ch-ua*) headers entirely.
var firefox141 = &Profile{
	ID:        "firefox141",
	Alias:     []string{"firefox"},
	DefaultOS: OSMacOS,
	UserAgents: map[OS]string{
		OSMacOS:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:141.0) Gecko/20100101 Firefox/141.0",
		OSWindows: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:141.0) Gecko/20100101 Firefox/141.0",
		OSLinux:   "Mozilla/5.0 (X11; Linux x86_64; rv:141.0) Gecko/20100101 Firefox/141.0",
	},

	TLS: TLS{
		MinVersion: utls.VersionTLS12,
		MaxVersion: utls.VersionTLS13,
		CipherSuites: []uint16{
			utls.TLS_AES_128_GCM_SHA256,
			utls.TLS_CHACHA20_POLY1305_SHA256,
			utls.TLS_AES_256_GCM_SHA384,
			utls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			utls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			utls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
			utls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
			utls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			utls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			utls.TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA,
			utls.TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA,
			utls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
			utls.TLS_RSA_WITH_AES_128_GCM_SHA256,
			utls.TLS_RSA_WITH_AES_256_GCM_SHA384,
			utls.TLS_RSA_WITH_AES_128_CBC_SHA,
			utls.TLS_RSA_WITH_AES_256_CBC_SHA,
		},
		Extensions: []ExtensionKind{
			ExtSNI,
			ExtExtendedMasterSecret,
			ExtRenegotiationInfo,
			ExtSupportedGroups,
			ExtECPointFormats,
			ExtSessionTicket,
			ExtALPN,
			ExtStatusRequest,
			ExtSCT,
			ExtKeyShare,
			ExtSupportedVersions,
			ExtSignatureAlgorithms,
			ExtPSKKeyExchangeModes,
			ExtRecordSizeLimit,
			ExtPadding,
		},
		SupportedGroups: []utls.CurveID{
			utls.X25519,
			utls.CurveP256,
			utls.CurveP384,
			utls.CurveP521,
		},
		KeyShareGroups: []utls.CurveID{utls.X25519, utls.CurveP256},
		SignatureAlgorithms: []utls.SignatureScheme{
			utls.ECDSAWithP256AndSHA256,
			utls.ECDSAWithP384AndSHA384,
			utls.ECDSAWithP521AndSHA512,
			utls.PSSWithSHA256,
			utls.PSSWithSHA384,
			utls.PSSWithSHA512,
			utls.PKCS1WithSHA256,
			utls.PKCS1WithSHA384,
			utls.PKCS1WithSHA512,
		},
		CompressionMethods: []uint8{0x00},
		ECPointFormats:     []uint8{0x00},
		ALPNProtocols:      []string{"h2", "http/1.1"},
		RecordSizeLimit:    0x4001,
	},

	HTTP2: HTTP2{
		Settings: []Setting{
			{ID: SettingsHeaderTableSize, Value: 65536},
			{ID: SettingsInitialWindowSize, Value: 131072},
			{ID: SettingsMaxFrameSize, Value: 16384},
		},
		WindowUpdateIncrement: 12517377,
		PseudoHeaderOrder:     [4]string{":method", ":path", ":authority", ":scheme"},
	},

	HeaderOrder: []string{
		"User-Agent",
		"Accept",
		"Accept-Language",
		"Accept-Encoding",
		"Upgrade-Insecure-Requests",
		"Sec-Fetch-Dest",
		"Sec-Fetch-Mode",
		"Sec-Fetch-Site",
		"Sec-Fetch-User",
	},
	HeaderValues: map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Accept-Encoding":           "gzip, deflate, br, zstd",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
	},
}
