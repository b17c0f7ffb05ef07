package threecommas

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer produces the request signature 3Commas expects: a lowercase hex
// HMAC-SHA256 of the canonical query string, keyed by the API secret.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer for the given API secret
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign computes the hex digest over the canonical query string. The
// start_deal flow signs an empty query; callers adding signed endpoints with
// real parameters must canonicalize them (sorted key=value&...) before
// calling Sign.
func (s *Signer) Sign(query string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}
