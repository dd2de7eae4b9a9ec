package service

import (
	"context"
	"time"

	"minjec-portal-backend/internal/domain"
)

// ApprovalResult is returned to the caller so the admin surface can display
// the activation code directly even when email dispatch failed.
type ApprovalResult struct {
	IdentityID     string
	ActivationCode string
	EmailSent      bool
}

type ApprovalService interface {
	// Approve moves a pending request to approved, provisioning the identity,
	// profile and role record, and issues a 4-digit activation code. It fails
	// with domain.ErrNotFound, *domain.AlreadyDecidedError or
	// *domain.ProvisioningError; notification and audit-log failures never
	// fail the call.
	Approve(ctx context.Context, requestID, actingAdminID string) (*ApprovalResult, error)
	// Reject moves a pending request to rejected. A blank reason is replaced
	// with a fixed placeholder.
	Reject(ctx context.Context, requestID, actingAdminID, reason string) error
}

type RegistrationService interface {
	// Submit stores a new pending request and notifies the configured admin
	// address with quick-action links. Notification failure never fails the
	// submission.
	Submit(ctx context.Context, req *domain.RegistrationRequest) (string, error)
	ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.RegistrationRequest, error)
}

type OTPService interface {
	// Request generates, stores and emails a fresh code for the pair. Unlike
	// the approval flow, a dispatch failure here fails the call: no other
	// surface carries the code to the user.
	Request(ctx context.Context, email string, purpose domain.CodePurpose) (expiresIn time.Duration, err error)
	// Issue stores and emails a caller-generated code. Used by the approval
	// engine, which generates the activation code itself so it can persist it
	// on the request row first.
	Issue(ctx context.Context, email string, purpose domain.CodePurpose, code, username string) error
	// Verify redeems a code. Every failure surfaces as
	// domain.ErrInvalidOrExpiredCode; a matching expired code is burned on
	// detection.
	Verify(ctx context.Context, email string, purpose domain.CodePurpose, submitted string) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Admin, error)
}
