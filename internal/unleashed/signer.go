package unleashed

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign computes the api-auth-signature header value for a request: the
// base64-encoded HMAC-SHA256 of the query string, keyed with the API key.
// The string passed here must be byte-identical to the query string sent
// upstream or the call fails authentication.
func Sign(apiKey string, canonicalQuery string) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(canonicalQuery))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
