package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"ops-dashboard/internal/domain"
)

type ActivityRepository interface {
	List(ctx context.Context) ([]domain.Activity, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

// List returns every activity. Ordering is left to the feed because
// timestamp encodings do not sort as text; details come back as written.
func (r *activityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	query := `
		SELECT id, action_type, entity_type, entity_id,
			COALESCE(details, 'null'::json) AS details, timestamp, user_id
		FROM activities
		ORDER BY id`

	var activities []domain.Activity
	err := r.db.SelectContext(ctx, &activities, query)
	return activities, err
}
