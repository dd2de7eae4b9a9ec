package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/repository"
)

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

const registrationColumns = `id, email, username, role, external_id,
	region, commune, neighborhood,
	org_name, org_sector, org_address, org_phone,
	credential, status, approved_by, decided_at, rejection_reason,
	activation_code, created_at`

func (r *registrationRepository) Create(ctx context.Context, req *domain.RegistrationRequest) error {
	query := `INSERT INTO registration_requests (` + registrationColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	var region, commune, neighborhood sql.NullString
	if fa := req.FieldAgent; fa != nil {
		region = nullString(fa.Region)
		commune = nullString(fa.Commune)
		neighborhood = nullString(fa.Neighborhood)
	}
	var orgName, orgSector, orgAddress, orgPhone sql.NullString
	if org := req.Organization; org != nil {
		orgName = nullString(org.Name)
		orgSector = nullString(org.Sector)
		orgAddress = nullString(org.Address)
		orgPhone = nullString(org.Phone)
	}

	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.Email, req.Username, req.Role, req.ExternalID,
		region, commune, neighborhood,
		orgName, orgSector, orgAddress, orgPhone,
		nullString(req.Credential), req.Status, nil, nil, nil,
		nil, req.CreatedAt,
	)
	return err
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.RegistrationRequest, error) {
	query := `SELECT ` + registrationColumns + ` FROM registration_requests WHERE id = $1`
	req, err := scanRegistration(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *registrationRepository) ListByStatus(ctx context.Context, status domain.RegistrationStatus) ([]domain.RegistrationRequest, error) {
	query := `SELECT ` + registrationColumns + ` FROM registration_requests WHERE status = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RegistrationRequest
	for rows.Next() {
		req, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

// MarkApproved is the commit point of an approval: the status check and the
// terminal write happen in one statement so only one concurrent decision can
// observe a pending row and win.
func (r *registrationRepository) MarkApproved(ctx context.Context, id, adminID string, decidedAt time.Time, code string) (bool, error) {
	query := `UPDATE registration_requests
	          SET status = $1, approved_by = $2, decided_at = $3, activation_code = $4
	          WHERE id = $5 AND status = $6`
	res, err := r.db.ExecContext(ctx, query,
		domain.RegistrationStatusApproved, adminID, decidedAt, code,
		id, domain.RegistrationStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *registrationRepository) MarkRejected(ctx context.Context, id, adminID string, decidedAt time.Time, reason string) (bool, error) {
	query := `UPDATE registration_requests
	          SET status = $1, approved_by = $2, decided_at = $3, rejection_reason = $4
	          WHERE id = $5 AND status = $6`
	res, err := r.db.ExecContext(ctx, query,
		domain.RegistrationStatusRejected, adminID, decidedAt, reason,
		id, domain.RegistrationStatusPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*domain.RegistrationRequest, error) {
	req := &domain.RegistrationRequest{}
	var region, commune, neighborhood sql.NullString
	var orgName, orgSector, orgAddress, orgPhone sql.NullString
	var credential, approvedBy, rejectionReason, activationCode sql.NullString
	var decidedAt sql.NullTime

	err := row.Scan(
		&req.ID, &req.Email, &req.Username, &req.Role, &req.ExternalID,
		&region, &commune, &neighborhood,
		&orgName, &orgSector, &orgAddress, &orgPhone,
		&credential, &req.Status, &approvedBy, &decidedAt, &rejectionReason,
		&activationCode, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	switch req.Role {
	case domain.RoleFieldAgent:
		req.FieldAgent = &domain.FieldAgentAttributes{
			Region:       region.String,
			Commune:      commune.String,
			Neighborhood: neighborhood.String,
		}
	case domain.RoleOrganization:
		req.Organization = &domain.OrganizationAttributes{
			Name:    orgName.String,
			Sector:  orgSector.String,
			Address: orgAddress.String,
			Phone:   orgPhone.String,
		}
	}

	req.Credential = credential.String
	req.RejectionReason = rejectionReason.String
	if approvedBy.Valid {
		req.ApprovedBy = &approvedBy.String
	}
	if decidedAt.Valid {
		t := decidedAt.Time
		req.DecidedAt = &t
	}
	if activationCode.Valid {
		c := activationCode.String
		req.ActivationCode = &c
	}
	return req, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
