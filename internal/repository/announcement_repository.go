package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"ops-dashboard/internal/domain"
)

type AnnouncementRepository interface {
	List(ctx context.Context) ([]domain.Announcement, error)
}

type announcementRepository struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	query := `
		SELECT id, title, content, sender_id, visibility, visible_to, created_at
		FROM announcements
		ORDER BY id`

	var announcements []domain.Announcement
	err := r.db.SelectContext(ctx, &announcements, query)
	return announcements, err
}
