package security

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

const linkTokenLength = 16

// LinkSigner derives the tokens embedded in admin quick-action links. The
// token is a truncated hash of the request id and a server secret, so it can
// be re-derived by the verifying endpoint without any stored nonce. It is not
// single-use by construction; replayed links are stopped by the pending-state
// guard on the decision itself. Rotating the secret invalidates every
// outstanding unactioned link.
type LinkSigner struct {
	secret string
}

func NewLinkSigner(secret string) *LinkSigner {
	return &LinkSigner{secret: secret}
}

// MakeToken returns the first 16 hex characters of SHA-256(id-secret).
func (s *LinkSigner) MakeToken(requestID string) string {
	sum := sha256.Sum256([]byte(requestID + "-" + s.secret))
	return hex.EncodeToString(sum[:])[:linkTokenLength]
}

// VerifyToken reports whether token matches the request id, comparing in
// constant time.
func (s *LinkSigner) VerifyToken(requestID, token string) bool {
	expected := s.MakeToken(requestID)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}
