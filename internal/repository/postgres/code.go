package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/repository"
)

type codeRepository struct {
	db *sql.DB
}

func NewCodeRepository(db *sql.DB) repository.CodeRepository {
	return &codeRepository{db: db}
}

// Upsert keys on (email, purpose): issuing a new code supersedes whatever
// record the pair held, used or not.
func (r *codeRepository) Upsert(ctx context.Context, rec *domain.CodeRecord) error {
	query := `INSERT INTO otp_codes (email, purpose, code, expires_at, used, verified_at, created_at)
	          VALUES ($1, $2, $3, $4, false, NULL, $5)
	          ON CONFLICT (email, purpose) DO UPDATE
	          SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at,
	              used = false, verified_at = NULL, created_at = EXCLUDED.created_at`
	rec.Used = false
	rec.VerifiedAt = nil
	rec.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, rec.Email, rec.Purpose, rec.Code, rec.ExpiresAt, rec.CreatedAt)
	return err
}

func (r *codeRepository) GetActive(ctx context.Context, email string, purpose domain.CodePurpose) (*domain.CodeRecord, error) {
	rec := &domain.CodeRecord{}
	var verifiedAt sql.NullTime
	query := `SELECT email, purpose, code, expires_at, used, verified_at, created_at
	          FROM otp_codes WHERE email = $1 AND purpose = $2 AND used = false`
	err := r.db.QueryRowContext(ctx, query, email, purpose).Scan(
		&rec.Email, &rec.Purpose, &rec.Code, &rec.ExpiresAt, &rec.Used, &verifiedAt, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		rec.VerifiedAt = &t
	}
	return rec, nil
}

// Consume flips the pair's unused record in one statement; the used = false
// guard makes it the serialization point for concurrent redemptions.
func (r *codeRepository) Consume(ctx context.Context, email string, purpose domain.CodePurpose, verifiedAt *time.Time) (bool, error) {
	query := `UPDATE otp_codes SET used = true, verified_at = $1
	          WHERE email = $2 AND purpose = $3 AND used = false`
	res, err := r.db.ExecContext(ctx, query, verifiedAt, email, purpose)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *codeRepository) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE otp_codes SET used = true WHERE used = false AND expires_at < $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
