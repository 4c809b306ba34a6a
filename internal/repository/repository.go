package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Project      ProjectRepository
	Activity     ActivityRepository
	Announcement AnnouncementRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Project:      NewProjectRepository(db),
		Activity:     NewActivityRepository(db),
		Announcement: NewAnnouncementRepository(db),
	}
}
