package domain

import "time"

type CodePurpose string

const (
	CodePurposeLogin              CodePurpose = "login"
	CodePurposeRegistration       CodePurpose = "registration"
	CodePurposePasswordReset      CodePurpose = "password_reset"
	CodePurposeApprovalActivation CodePurpose = "approval_activation"
)

// Digits returns the code width used for a purpose. Activation codes issued
// at approval time are 4 digits; every other purpose uses 6.
func (p CodePurpose) Digits() int {
	if p == CodePurposeApprovalActivation {
		return 4
	}
	return 6
}

// CodeRecord is a single-use verification code stored for an (email, purpose)
// pair. At most one unused record exists per pair; issuing a new code
// supersedes the previous one. Used flips to true exactly once, on successful
// verification or on expiry detection, and never back.
type CodeRecord struct {
	Email      string      `json:"email"`
	Purpose    CodePurpose `json:"purpose"`
	Code       string      `json:"-"`
	ExpiresAt  time.Time   `json:"expires_at"`
	Used       bool        `json:"used"`
	VerifiedAt *time.Time  `json:"verified_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Expired reports whether the record is past its expiry at the given instant.
func (c *CodeRecord) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
