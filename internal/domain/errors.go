package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a registration request id does not resolve.
	ErrNotFound = errors.New("registration request not found")

	// ErrInvalidOrExpiredCode is the single verification failure surfaced to
	// users. Wrong code, missing code and expired code are deliberately
	// indistinguishable so responses do not leak which emails hold codes.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
)

// AlreadyDecidedError reports an approve or reject attempt against a request
// that already left the pending state. It is an expected outcome of retries
// and concurrent decisions, not a bug.
type AlreadyDecidedError struct {
	CurrentStatus RegistrationStatus
}

func (e *AlreadyDecidedError) Error() string {
	return fmt.Sprintf("registration request already %s", e.CurrentStatus)
}

// ProvisioningError wraps a failure to create the identity, profile or role
// record during approval. The decision is not committed when it occurs.
type ProvisioningError struct {
	Stage string
	Err   error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning failed at %s: %v", e.Stage, e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

// ProviderAttempt records one provider's failure inside a dispatch.
type ProviderAttempt struct {
	Provider string
	Err      error
}

// AllProvidersFailedError reports that every configured notification provider
// rejected a send. Attempts holds the per-provider failures in trial order.
type AllProvidersFailedError struct {
	Attempts []ProviderAttempt
}

func (e *AllProvidersFailedError) Error() string {
	return fmt.Sprintf("all %d notification providers failed", len(e.Attempts))
}

// IsAlreadyDecided reports whether err is an AlreadyDecidedError.
func IsAlreadyDecided(err error) bool {
	var ade *AlreadyDecidedError
	return errors.As(err, &ade)
}
