package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"ops-dashboard/internal/domain"
)

type ProjectRepository interface {
	// List returns every project with its team members embedded.
	List(ctx context.Context) ([]domain.Project, error)
}

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

type memberRow struct {
	ProjectID string `db:"project_id"`
	domain.User
}

func (r *projectRepository) List(ctx context.Context) ([]domain.Project, error) {
	query := `
		SELECT id, title, status, created_by
		FROM projects
		ORDER BY created_at DESC, id`

	var projects []domain.Project
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return []domain.Project{}, nil
	}

	memberQuery := `
		SELECT pm.project_id, u.id, u.first_name, u.last_name, u.email, u.role
		FROM project_members pm
		JOIN users u ON u.id = pm.user_id
		ORDER BY pm.project_id, pm.added_at, u.id`

	var rows []memberRow
	if err := r.db.SelectContext(ctx, &rows, memberQuery); err != nil {
		return nil, err
	}

	members := make(map[string][]domain.User, len(projects))
	for _, row := range rows {
		members[row.ProjectID] = append(members[row.ProjectID], row.User)
	}
	for i := range projects {
		projects[i].TeamMembers = members[projects[i].ID]
		if projects[i].TeamMembers == nil {
			projects[i].TeamMembers = []domain.User{}
		}
	}
	return projects, nil
}
