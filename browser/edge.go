package browser

// edge142 is Chromium-based Edge on the same engine revision as chrome142.
// It shares Chrome's TLS and HTTP/2 shape byte-for-byte (same engine) and
// differs in User-Agent, the sec-ch-ua brand list, a Windows default OS
// (with a "Windows" sec-ch-ua-platform value) and having no Linux
// User-Agent.
var edge142 = &Profile{
	ID:        "edge142",
	Alias:     []string{"edge"},
	DefaultOS: OSWindows,
	UserAgents: map[OS]string{
		OSWindows: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36 Edg/142.0.0.0",
		OSMacOS:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36 Edg/142.0.0.0",
	},

	TLS:   chrome142.TLS,
	HTTP2: chrome142.HTTP2,

	HeaderOrder: chrome142.HeaderOrder,
	HeaderValues: map[string]string{
		"sec-ch-ua":                 `"Chromium";v="142", "Not_A Brand";v="24", "Microsoft Edge";v="142"`,
		"sec-ch-ua-mobile":          "?0",
		"sec-ch-ua-platform":        `"Windows"`,
		"Upgrade-Insecure-Requests": "1",
		"Accept":                    chrome142.HeaderValues["Accept"],
		"sec-fetch-site":            "none",
		"sec-fetch-mode":            "navigate",
		"sec-fetch-user":            "?1",
		"sec-fetch-dest":            "document",
		"Accept-Encoding":           "gzip, deflate, br, zstd",
		"Accept-Language":           "en-US,en;q=0.9",
	},
}
