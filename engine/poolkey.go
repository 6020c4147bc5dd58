package engine

import "fmt"

// poolKey builds the bucket key pool.Connection.Key documents:
// "scheme|host:port|profileID", extended here with the proxy and verify
// mode so connections shaped by a different proxy or trust policy are
// never handed back for a request that doesn't want them.
func poolKey(scheme, hostport, profileID, proxyKey string, verify VerifyMode) string {
	return fmt.Sprintf("%s|%s|%s|%s|%d", scheme, hostport, profileID, proxyKey, verify)
}
