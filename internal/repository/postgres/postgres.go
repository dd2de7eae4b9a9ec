package postgres

import (
	"database/sql"

	"minjec-portal-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RegistrationRepository
	repository.CodeRepository
	repository.ActivityLogRepository
	repository.ProfileRepository
	repository.AdminRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		RegistrationRepository: NewRegistrationRepository(db),
		CodeRepository:         NewCodeRepository(db),
		ActivityLogRepository:  NewActivityLogRepository(db),
		ProfileRepository:      NewProfileRepository(db),
		AdminRepository:        NewAdminRepository(db),
	}
}
