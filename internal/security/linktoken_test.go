package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkSigner(t *testing.T) {
	signer := NewLinkSigner("secret-1")

	t.Run("Deterministic", func(t *testing.T) {
		a := signer.MakeToken("req-1")
		b := signer.MakeToken("req-1")
		assert.Equal(t, a, b)
		assert.Len(t, a, 16)
	})

	t.Run("VariesByRequest", func(t *testing.T) {
		assert.NotEqual(t, signer.MakeToken("req-1"), signer.MakeToken("req-2"))
	})

	t.Run("VariesBySecret", func(t *testing.T) {
		other := NewLinkSigner("secret-2")
		assert.NotEqual(t, signer.MakeToken("req-1"), other.MakeToken("req-1"))
	})

	t.Run("Verify", func(t *testing.T) {
		token := signer.MakeToken("req-1")
		assert.True(t, signer.VerifyToken("req-1", token))
		assert.False(t, signer.VerifyToken("req-2", token))
		assert.False(t, signer.VerifyToken("req-1", "0000000000000000"))
		assert.False(t, signer.VerifyToken("req-1", ""))
	})
}
