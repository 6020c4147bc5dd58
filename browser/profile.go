// Package browser is the browser fingerprint registry (component C1).
//
// A Profile is a pure, immutable description of the wire-level behaviour a
// real browser exhibits: TLS ClientHello shape (cipher/extension/group
// order, ALPN offers, GREASE slots) and HTTP/2 connection preface shape
// (SETTINGS order, window-update increment, pseudo-header order, default
// header template). It owns no socket, no handshake state, and no mutable
// per-connection data — that is tlsengine's (C2) and http2engine's (C5) job.
//
// Extensions are stored as ExtensionKind tags rather than concrete uTLS
// extension objects: uTLS extension structs are mutated in place during a
// handshake (e.g. KeyShareExtension.KeyShares[i].Data is filled with the
// generated public key), so sharing one instance across concurrent
// handshakes would race. tlsengine builds a fresh *utls.ClientHelloSpec
// from a Profile's tags on every call to Handshake.
package browser

import utls "github.com/refraction-networking/utls"

// OS identifies the operating system variant a profile's User-Agent targets.
type OS string

const (
	OSMacOS   OS = "macos"
	OSWindows OS = "windows"
	OSLinux   OS = "linux"
)

// ExtensionKind tags a TLS extension's position in the ClientHello without
// carrying any per-connection state.
type ExtensionKind int

const (
	ExtGREASE ExtensionKind = iota
	ExtSNI
	ExtExtendedMasterSecret
	ExtRenegotiationInfo
	ExtSupportedGroups
	ExtECPointFormats
	ExtSessionTicket
	ExtALPN
	ExtStatusRequest
	ExtSignatureAlgorithms
	ExtSCT
	ExtKeyShare
	ExtPSKKeyExchangeModes
	ExtSupportedVersions
	ExtCompressCertificate
	ExtApplicationSettingsOld // ALPS, codepoint 17513
	ExtApplicationSettingsNew // ALPS, codepoint 17613 (Chrome 133+)
	ExtRecordSizeLimit
	ExtEncryptedClientHelloGREASE
	ExtPadding
	ExtPSKBinder // psk extension must be last when present; unused by chrome142 but reserved
)

// Setting is one HTTP/2 SETTINGS (identifier, value) pair in wire order.
type Setting struct {
	ID    uint16
	Value uint32
}

// Standard SETTINGS identifiers, RFC 7540 §6.5.2.
const (
	SettingsHeaderTableSize      uint16 = 0x1
	SettingsEnablePush           uint16 = 0x2
	SettingsMaxConcurrentStreams uint16 = 0x3
	SettingsInitialWindowSize    uint16 = 0x4
	SettingsMaxFrameSize         uint16 = 0x5
	SettingsMaxHeaderListSize    uint16 = 0x6
	SettingsEnableConnectProto   uint16 = 0x8
	SettingsNoRFC7540Priorities  uint16 = 0x9
)

// TLS groups bundles the ordered, pure-data TLS ClientHello parameters a
// Profile contributes to C2.
type TLS struct {
	MinVersion uint16
	MaxVersion uint16

	// CipherSuites is the ordered cipher suite list. Use
	// utls.GREASE_PLACEHOLDER as a literal entry to mark a GREASE slot; uTLS
	// substitutes a fresh reserved GREASE value there at handshake time.
	CipherSuites []uint16

	// Extensions is the ordered extension list by kind. ExtGREASE may appear
	// more than once (Chrome sends a leading and sometimes trailing GREASE
	// extension).
	Extensions []ExtensionKind

	// SupportedGroups is the ordered supported_groups (curves) list,
	// including utls.GREASE_PLACEHOLDER as CurveID where Chrome inserts its
	// GREASE group.
	SupportedGroups []utls.CurveID

	// KeyShareGroups is the ordered list of groups an actual key_share entry
	// is generated for (a prefix of SupportedGroups plus a leading GREASE
	// share with a single zero byte, matching Chrome).
	KeyShareGroups []utls.CurveID

	SignatureAlgorithms []utls.SignatureScheme
	CompressionMethods  []uint8
	// ECPointFormats is the ec_point_formats extension payload (RFC 8422),
	// distinct from CompressionMethods even though both are conventionally
	// just {0x00}.
	ECPointFormats      []uint8
	ALPNProtocols       []string
	ALPSProtocols       []string
	CertCompressionAlgos []utls.CertCompressionAlgo
	RecordSizeLimit     uint16
}

// HTTP2 bundles the ordered HTTP/2 connection-preface parameters.
type HTTP2 struct {
	// Settings is the exact (id, value) list, in order, sent in the first
	// SETTINGS frame.
	Settings []Setting

	// WindowUpdateIncrement is the connection-level WINDOW_UPDATE sent
	// immediately after SETTINGS.
	WindowUpdateIncrement uint32

	// PseudoHeaderOrder is the order in which :method/:authority/:scheme/
	// :path are written on every request stream.
	PseudoHeaderOrder [4]string
}

// Profile is the complete, immutable fingerprint for one browser/version.
type Profile struct {
	ID    string
	Alias []string

	// UserAgents maps OS to the User-Agent string a browser of this profile
	// sends on that OS.
	UserAgents map[OS]string
	DefaultOS  OS

	TLS   TLS
	HTTP2 HTTP2

	// HeaderOrder lists, in order, the header names this browser sends on a
	// typical navigation request. Dynamic values (User-Agent, Accept-
	// Language locale) are filled in by the caller; static ones come from
	// HeaderValues.
	HeaderOrder  []string
	HeaderValues map[string]string
}

// UserAgent returns the User-Agent string for the given OS, falling back to
// DefaultOS when os is empty or unrecognised for this profile.
func (p *Profile) UserAgent(os OS) string {
	if ua, ok := p.UserAgents[os]; ok {
		return ua
	}
	return p.UserAgents[p.DefaultOS]
}
