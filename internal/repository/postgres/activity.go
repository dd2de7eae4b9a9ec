package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/repository"

	"github.com/google/uuid"
)

type activityLogRepository struct {
	db *sql.DB
}

func NewActivityLogRepository(db *sql.DB) repository.ActivityLogRepository {
	return &activityLogRepository{db: db}
}

// Append only; the table has no update or delete path.
func (r *activityLogRepository) Append(ctx context.Context, entry *domain.ActivityLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now()

	var metadata []byte
	if entry.Metadata != nil {
		var err error
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
	}

	query := `INSERT INTO activity_logs (id, actor_id, action, target_type, target_id, description, metadata, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.ActorID, entry.Action, entry.TargetType, entry.TargetID,
		entry.Description, metadata, entry.CreatedAt)
	return err
}
