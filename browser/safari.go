package browser

import utls "github.com/refraction-networking/utls"

// safari17 approximates Safari 17 on macOS. Safari offers a shorter cipher
// list than Chrome/Firefox, no GREASE, and a much smaller header set: this
// profile sends no Client Hints and no sec-fetch-* headers.
var safari17 = &Profile{
	ID:        "safari17",
	Alias:     []string{"safari"},
	DefaultOS: OSMacOS,
	UserAgents: map[OS]string{
		OSMacOS: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	},

	TLS: TLS{
		MinVersion: utls.VersionTLS12,
		MaxVersion: utls.VersionTLS13,
		CipherSuites: []uint16{
			utls.TLS_AES_256_GCM_SHA384,
			utls.TLS_AES_128_GCM_SHA256,
			utls.TLS_CHACHA20_POLY1305_SHA256,
			utls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
			utls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			utls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			utls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			utls.TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256,
			utls.TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256,
			utls.TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA,
			utls.TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA,
			utls.TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA,
			utls.TLS_RSA_WITH_AES_256_GCM_SHA384,
			utls.TLS_RSA_WITH_AES_128_GCM_SHA256,
			utls.TLS_RSA_WITH_AES_256_CBC_SHA,
			utls.TLS_RSA_WITH_AES_128_CBC_SHA,
		},
		Extensions: []ExtensionKind{
			ExtSNI,
			ExtExtendedMasterSecret,
			ExtRenegotiationInfo,
			ExtSupportedGroups,
			ExtECPointFormats,
			ExtALPN,
			ExtStatusRequest,
			ExtSignatureAlgorithms,
			ExtSCT,
			ExtKeyShare,
			ExtPSKKeyExchangeModes,
			ExtSupportedVersions,
			ExtCompressCertificate,
		},
		SupportedGroups: []utls.CurveID{utls.X25519, utls.CurveP256, utls.CurveP384, utls.CurveP521},
		KeyShareGroups:  []utls.CurveID{utls.X25519},
		SignatureAlgorithms: []utls.SignatureScheme{
			utls.ECDSAWithP256AndSHA256,
			utls.PSSWithSHA256,
			utls.PKCS1WithSHA256,
			utls.ECDSAWithP384AndSHA384,
			utls.ECDSAWithP521AndSHA512,
			utls.PSSWithSHA384,
			utls.PKCS1WithSHA384,
			utls.PSSWithSHA512,
			utls.PKCS1WithSHA512,
		},
		CompressionMethods:  []uint8{0x00},
		ECPointFormats:      []uint8{0x00},
		ALPNProtocols:       []string{"h2", "http/1.1"},
		CertCompressionAlgos: []utls.CertCompressionAlgo{utls.CertCompressionZlib},
	},

	HTTP2: HTTP2{
		Settings: []Setting{
			{ID: SettingsHeaderTableSize, Value: 4096},
			{ID: SettingsMaxConcurrentStreams, Value: 100},
			{ID: SettingsInitialWindowSize, Value: 2097152},
		},
		WindowUpdateIncrement: 10485760,
		PseudoHeaderOrder:     [4]string{":method", ":scheme", ":path", ":authority"},
	},

	HeaderOrder: []string{
		"Accept",
		"Accept-Language",
		"Accept-Encoding",
		"User-Agent",
	},
	HeaderValues: map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
		"Accept-Encoding": "gzip, deflate, br",
	},
}
