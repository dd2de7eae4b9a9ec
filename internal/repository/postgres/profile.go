package postgres

import (
	"context"
	"database/sql"
	"time"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// All three writes are keyed upserts with explicit conflict targets, so a
// retried approval against an already-provisioned identity never duplicates
// rows.

func (r *profileRepository) UpsertProfile(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO user_profiles (id, role, username, external_id, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO UPDATE
	          SET role = EXCLUDED.role, username = EXCLUDED.username, external_id = EXCLUDED.external_id`
	p.CreatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Role, p.Username, p.ExternalID, p.CreatedAt)
	return err
}

func (r *profileRepository) UpsertFieldAgent(ctx context.Context, rec *domain.FieldAgentRecord) error {
	query := `INSERT INTO field_agents (user_id, department, status)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_id) DO UPDATE
	          SET department = EXCLUDED.department, status = EXCLUDED.status`
	_, err := r.db.ExecContext(ctx, query, rec.UserID, rec.Department, rec.Status)
	return err
}

func (r *profileRepository) UpsertOrganization(ctx context.Context, rec *domain.OrganizationRecord) error {
	query := `INSERT INTO organizations (user_id, name, sector, address, phone, status)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (user_id) DO UPDATE
	          SET name = EXCLUDED.name, sector = EXCLUDED.sector,
	              address = EXCLUDED.address, phone = EXCLUDED.phone, status = EXCLUDED.status`
	_, err := r.db.ExecContext(ctx, query, rec.UserID, rec.Name, rec.Sector, rec.Address, rec.Phone, rec.Status)
	return err
}
