// Package config provides production-grade configuration management for the
// fingerprinting HTTP engine. It supports JSON-based configuration loading
// with safe defaults, so a deployment can be retuned without a rebuild.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds the tunable parameters for constructing a Session or Client
// (see engine.Option): which browser profile and OS to impersonate, timeout
// and redirect policy, proxy defaults, and connection pool sizing. The
// struct is designed to be loaded once at startup and then shared
// read-only across goroutines.
type Config struct {
	// Profile is the browser.Profile id (or alias, e.g. "chrome", "firefox")
	// whose TLS/HTTP2/header fingerprint every request reproduces.
	Profile string `json:"profile"`

	// OS selects the User-Agent OS variant: "macos", "windows" or "linux".
	OS string `json:"os"`

	// HTTP2 prefers HTTP/2 when the server's ALPN offers it.
	HTTP2 bool `json:"http2"`

	// InsecureSkipVerify disables TLS certificate chain validation. Leave
	// false outside of local testing against self-signed certificates.
	InsecureSkipVerify bool `json:"insecure_skip_verify"`

	// ConnectTimeout bounds the TCP dial and TLS handshake phase.
	ConnectTimeout time.Duration `json:"connect_timeout"`

	// ReadTimeout bounds writing the request and reading the response.
	ReadTimeout time.Duration `json:"read_timeout"`

	// MaxRedirects caps how many redirects a single Do call will follow
	// before returning engine.TooManyRedirects.
	MaxRedirects int `json:"max_redirects"`

	// ProxyURL, if set, is used for both http and https targets unless a
	// request overrides it. ProxyFile, if set, is a newline-delimited list
	// of candidate proxies a proxy.ProxyManager round-robins over.
	ProxyURL  string `json:"proxy_url"`
	ProxyFile string `json:"proxy_file"`

	// MaxIdleConnsPerHost and MaxIdleConnsTotal size the connection pool
	// (pool.New); IdleConnTimeout controls how long an idle connection is
	// kept before being discarded rather than reused.
	MaxIdleConnsPerHost int           `json:"max_idle_conns_per_host"`
	MaxIdleConnsTotal   int           `json:"max_idle_conns_total"`
	IdleConnTimeout     time.Duration `json:"idle_conn_timeout"`
}

// LoadConfig reads a JSON file at filename and deserialises it into a Config.
// It returns an error if the file cannot be opened or if the JSON is
// malformed. The returned *Config is ready to use; zero-value fields retain
// Go's zero values, so callers should apply DefaultConfig first and decode
// over it when partial overrides are expected.
func LoadConfig(filename string) (*Config, error) {
	f, err := os.Open(filename) // #nosec G304 -- filename is caller-provided config path
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", filename, err)
	}
	defer f.Close()

	var cfg Config
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields() // catch typos in config files early
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %q: %w", filename, err)
	}
	return &cfg, nil
}

// DefaultConfig returns a *Config pre-filled with sensible defaults: Chrome
// on macOS, HTTP/1.1 preferred, strict certificate verification, and the
// same pool sizing pool.New falls back to (16 per host, 100 total, 60s idle). Callers are free to
// mutate the returned struct; each call returns a fresh independent copy.
func DefaultConfig() *Config {
	return &Config{
		Profile:             "chrome",
		OS:                  "macos",
		HTTP2:               false,
		InsecureSkipVerify:  false,
		ConnectTimeout:      10 * time.Second,
		ReadTimeout:         30 * time.Second,
		MaxRedirects:        30,
		MaxIdleConnsPerHost: 16,
		MaxIdleConnsTotal:   100,
		IdleConnTimeout:     60 * time.Second,
	}
}
