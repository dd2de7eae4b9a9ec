// Package codegen generates the numeric one-time codes used across the
// registration and login flows.
package codegen

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"minjec-portal-backend/internal/domain"
)

// Numeric returns an n-digit code drawn uniformly from [0, 10^n),
// zero-padded, so "0042" is a valid 4-digit code.
func Numeric(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", n)
	}
	bound := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", fmt.Errorf("failed to draw random code: %w", err)
	}
	return fmt.Sprintf("%0*d", n, v), nil
}

// ForPurpose returns a code sized for the given purpose.
func ForPurpose(p domain.CodePurpose) (string, error) {
	return Numeric(p.Digits())
}
