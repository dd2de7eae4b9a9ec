package repository

import (
	"context"
	"time"

	"minjec-portal-backend/internal/domain"
)

type RegistrationRepository interface {
	Create(ctx context.Context, req *domain.RegistrationRequest) error
	// GetByID returns domain.ErrNotFound when the id does not resolve.
	GetByID(ctx context.Context, id string) (*domain.RegistrationRequest, error)
	ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.RegistrationRequest, error)

	// MarkApproved and MarkRejected perform the terminal status transition as
	// a conditional update guarded on status = pending. They return false
	// when no row was updated, i.e. the request was already decided or the
	// caller lost the race to a concurrent decision.
	MarkApproved(ctx context.Context, id, adminID string, decidedAt time.Time, code string) (bool, error)
	MarkRejected(ctx context.Context, id, adminID string, decidedAt time.Time, reason string) (bool, error)
}

type CodeRepository interface {
	// Upsert stores a code for (email, purpose), superseding any previous
	// record for the pair and resetting its used/verified state.
	Upsert(ctx context.Context, rec *domain.CodeRecord) error
	// GetActive returns the unused record for the pair, or nil when none
	// exists.
	GetActive(ctx context.Context, email string, purpose domain.CodePurpose) (*domain.CodeRecord, error)
	// Consume flips used to true for the pair's unused record. verifiedAt is
	// set on successful verification and left nil on expiry detection. The
	// returned bool is false when no unused record remained, i.e. a
	// concurrent consumer won.
	Consume(ctx context.Context, email string, purpose domain.CodePurpose, verifiedAt *time.Time) (bool, error)
	// MarkExpired flips every unused record past its expiry, returning the
	// number of records swept.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

type ActivityLogRepository interface {
	Append(ctx context.Context, entry *domain.ActivityLogEntry) error
}

type ProfileRepository interface {
	UpsertProfile(ctx context.Context, p *domain.Profile) error
	UpsertFieldAgent(ctx context.Context, rec *domain.FieldAgentRecord) error
	UpsertOrganization(ctx context.Context, rec *domain.OrganizationRecord) error
}

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}
