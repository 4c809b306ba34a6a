package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/feed"
	"ops-dashboard/internal/metrics"
	"ops-dashboard/internal/repository"
	"ops-dashboard/internal/service/helpers"
)

const cacheKeyProjects = "feed:projects"

// ProjectView is a project as listed to a viewer.
type ProjectView struct {
	domain.Project
	StatusBadge domain.Badge `json:"status_badge"`
}

type Service interface {
	List(ctx context.Context, viewer domain.Viewer, q domain.ProjectQuery) ([]ProjectView, error)
	Team(ctx context.Context, viewer domain.Viewer, projectID string) ([]domain.User, error)
	ProfileProjects(ctx context.Context, viewer domain.Viewer, userID string) ([]ProjectView, error)
	// Visible is the raw membership-scoped listing other services build on.
	Visible(ctx context.Context, viewer domain.Viewer) ([]domain.Project, error)
}

type service struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	redis       *redis.Client
	metrics     *metrics.Metrics
	cacheTTL    time.Duration
}

func NewService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, redis *redis.Client, m *metrics.Metrics, cacheTTL time.Duration) Service {
	if m == nil {
		m = metrics.Noop()
	}
	return &service{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		redis:       redis,
		metrics:     m,
		cacheTTL:    cacheTTL,
	}
}

func (s *service) all(ctx context.Context) ([]domain.Project, error) {
	projects, err := helpers.CachedList(ctx, s.redis, s.metrics, cacheKeyProjects, s.cacheTTL, s.projectRepo.List)
	if err != nil {
		s.metrics.DataAccessFailures.WithLabelValues("projects").Inc()
		log.WithError(err).Error("failed to load projects")
		return nil, fmt.Errorf("%w: projects: %w", domain.ErrDataUnavailable, err)
	}
	return projects, nil
}

func (s *service) Visible(ctx context.Context, viewer domain.Viewer) ([]domain.Project, error) {
	projects, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return feed.VisibleProjects(projects, viewer), nil
}

func (s *service) List(ctx context.Context, viewer domain.Viewer, q domain.ProjectQuery) ([]ProjectView, error) {
	visible, err := s.Visible(ctx, viewer)
	if err != nil {
		return nil, err
	}

	status := domain.FilterValue(q.Status)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]ProjectView, 0, len(visible))
	for _, p := range visible {
		if status != "" && string(p.Status) != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		out = append(out, view(p))
	}
	return out, nil
}

func (s *service) Team(ctx context.Context, viewer domain.Viewer, projectID string) ([]domain.User, error) {
	projects, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	members, ok := feed.TeamRoster(projects, viewer, projectID)
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return members, nil
}

func (s *service) ProfileProjects(ctx context.Context, viewer domain.Viewer, userID string) ([]ProjectView, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.metrics.DataAccessFailures.WithLabelValues("users").Inc()
		return nil, fmt.Errorf("%w: users: %w", domain.ErrDataUnavailable, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	projects, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	scoped := feed.ProfileProjects(projects, viewer, user.ID)
	out := make([]ProjectView, 0, len(scoped))
	for _, p := range scoped {
		out = append(out, view(p))
	}
	return out, nil
}

func view(p domain.Project) ProjectView {
	return ProjectView{Project: p, StatusBadge: feed.StatusBadge(p.Status)}
}
