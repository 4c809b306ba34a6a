package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"ops-dashboard/internal/domain"
	core "ops-dashboard/internal/feed"
	"ops-dashboard/internal/metrics"
	"ops-dashboard/internal/pkg/i18n"
	"ops-dashboard/internal/repository"
	"ops-dashboard/internal/service/helpers"
)

const (
	cacheKeyUsers         = "feed:users"
	cacheKeyProjects      = "feed:projects"
	cacheKeyActivities    = "feed:activities"
	cacheKeyAnnouncements = "feed:announcements"
)

type Service interface {
	Activities(ctx context.Context, viewer domain.Viewer, q domain.FeedQuery) (domain.PaginatedResponse[domain.DisplayEvent], error)
	Announcements(ctx context.Context, viewer domain.Viewer, q domain.FeedQuery) (domain.PaginatedResponse[domain.DisplayEvent], error)
	Combined(ctx context.Context, viewer domain.Viewer, q domain.FeedQuery) (domain.PaginatedResponse[domain.DisplayEvent], error)
	AnnouncementCount(ctx context.Context, viewer domain.Viewer) (int, error)
	// Assemble returns the whole combined feed, unpaginated.
	Assemble(ctx context.Context, viewer domain.Viewer, q domain.FeedQuery) (domain.Feed, error)
}

type Options struct {
	CacheTTL time.Duration
	Location *time.Location
	Clock    func() time.Time
}

type service struct {
	userRepo         repository.UserRepository
	projectRepo      repository.ProjectRepository
	activityRepo     repository.ActivityRepository
	announcementRepo repository.AnnouncementRepository
	redis            *redis.Client
	metrics          *metrics.Metrics
	opts             Options
}

func NewService(
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	activityRepo repository.ActivityRepository,
	announcementRepo repository.AnnouncementRepository,
	redis *redis.Client,
	m *metrics.Metrics,
	opts Options,
) Service {
	if m == nil {
		m = metrics.Noop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &service{
		userRepo:         userRepo,
		projectRepo:      projectRepo,
		activityRepo:     activityRepo,
		announcementRepo: announcementRepo,
		redis:            redis,
		metrics:          m,
		opts:             opts,
	}
}

type source struct {
	activities    bool
	announcements bool
}

func (s *service) Activities(ctx context.Context, viewer domain.Viewer, q domain.FeedQuery) (domain.PaginatedResponse[domain.DisplayEvent], error) {
	return s.page(ctx, "activities", viewer, q, source{activities: true})
}

func (s *service) Announcements(ctx context.Context, viewer domain.Viewer, q domain.FeedQuery) (domain.PaginatedResponse[domain.DisplayEvent], error) {
	return s.page(ctx, "announcements", viewer, q, source{announcements: true})
}

func (s *service) Combined(ctx context.Context, viewer domain.Viewer, q domain.FeedQuery) (domain.PaginatedResponse[domain.DisplayEvent], error) {
	return s.page(ctx, "combined", viewer, q, source{activities: true, announcements: true})
}

func (s *service) AnnouncementCount(ctx context.Context, viewer domain.Viewer) (int, error) {
	f, err := s.build(ctx, "announcement_count", viewer, domain.FeedQuery{}, source{announcements: true})
	if err != nil {
		return 0, err
	}
	return f.Count, nil
}

func (s *service) Assemble(ctx context.Context, viewer domain.Viewer, q domain.FeedQuery) (domain.Feed, error) {
	return s.build(ctx, "export", viewer, q, source{activities: true, announcements: true})
}

func (s *service) page(ctx context.Context, name string, viewer domain.Viewer, q domain.FeedQuery, src source) (domain.PaginatedResponse[domain.DisplayEvent], error) {
	f, err := s.build(ctx, name, viewer, q, src)
	if err != nil {
		return domain.PaginatedResponse[domain.DisplayEvent]{}, err
	}
	return core.Paginate(f, q.Pagination()), nil
}

func (s *service) build(ctx context.Context, name string, viewer domain.Viewer, q domain.FeedQuery, src source) (domain.Feed, error) {
	filter := q.Filter()
	filter.Location = s.opts.Location
	filter.Now = s.opts.Clock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.Feed{}, err
	}
	byID := make(map[string]*domain.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	var events []domain.Event
	if src.activities {
		activities, err := s.loadActivities(ctx)
		if err != nil {
			return domain.Feed{}, err
		}
		for i := range activities {
			activities[i].User = lookup(byID, activities[i].UserID)
		}
		events = append(events, domain.ActivitiesToEvents(activities)...)

		if filter.ProjectScoped {
			projects, err := s.loadProjects(ctx)
			if err != nil {
				return domain.Feed{}, err
			}
			filter.Projects = projects
		}
	}
	if src.announcements {
		announcements, err := s.loadAnnouncements(ctx)
		if err != nil {
			return domain.Feed{}, err
		}
		for i := range announcements {
			announcements[i].Sender = lookup(byID, announcements[i].SenderID)
		}
		events = append(events, domain.AnnouncementsToEvents(announcements)...)
	}

	f := core.BuildFeed(events, viewer, filter)
	localize(f.Items, q.Lang)
	s.record(name, f)

	log.WithFields(log.Fields{
		"feed":   name,
		"viewer": viewer.ID,
		"count":  f.Count,
	}).Debug("feed assembled")

	return f, nil
}

func lookup(users map[string]*domain.User, id *string) *domain.User {
	if id == nil {
		return nil
	}
	u, ok := users[*id]
	if !ok {
		return nil
	}
	cp := *u
	return &cp
}

func (s *service) record(name string, f domain.Feed) {
	s.metrics.FeedRequests.WithLabelValues(name).Inc()
	s.metrics.FeedItems.WithLabelValues(name).Observe(float64(f.Count))
	for _, it := range f.Items {
		if !it.Timestamp.Valid {
			s.metrics.InvalidTimestamps.WithLabelValues(string(it.Kind)).Inc()
		}
	}
}

func (s *service) unavailable(sourceName string, err error) error {
	s.metrics.DataAccessFailures.WithLabelValues(sourceName).Inc()
	log.WithError(err).WithField("source", sourceName).Error("failed to load feed data")
	return fmt.Errorf("%w: %s: %w", domain.ErrDataUnavailable, sourceName, err)
}

func (s *service) loadUsers(ctx context.Context) ([]domain.User, error) {
	users, err := helpers.CachedList(ctx, s.redis, s.metrics, cacheKeyUsers, s.opts.CacheTTL, s.userRepo.List)
	if err != nil {
		return nil, s.unavailable("users", err)
	}
	return users, nil
}

func (s *service) loadProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := helpers.CachedList(ctx, s.redis, s.metrics, cacheKeyProjects, s.opts.CacheTTL, s.projectRepo.List)
	if err != nil {
		return nil, s.unavailable("projects", err)
	}
	return projects, nil
}

func (s *service) loadActivities(ctx context.Context) ([]domain.Activity, error) {
	activities, err := helpers.CachedList(ctx, s.redis, s.metrics, cacheKeyActivities, s.opts.CacheTTL, s.activityRepo.List)
	if err != nil {
		return nil, s.unavailable("activities", err)
	}
	return activities, nil
}

func (s *service) loadAnnouncements(ctx context.Context) ([]domain.Announcement, error) {
	announcements, err := helpers.CachedList(ctx, s.redis, s.metrics, cacheKeyAnnouncements, s.opts.CacheTTL, s.announcementRepo.List)
	if err != nil {
		return nil, s.unavailable("announcements", err)
	}
	return announcements, nil
}

// localize swaps display labels for the requested locale. Untranslated labels
// are left as they are.
func localize(items []domain.DisplayEvent, lang string) {
	if lang == "" {
		return
	}
	for i := range items {
		it := &items[i]
		it.Badge.Label = i18n.Translate(lang, it.Badge.Label)
		it.Actor.Role.Label = i18n.Translate(lang, it.Actor.Role.Label)
		if it.Actor.Missing || it.Actor.Name == core.UnnamedUserLabel {
			it.Actor.Name = i18n.Translate(lang, it.Actor.Name)
		}
		if it.EntityIcon != nil {
			icon := *it.EntityIcon
			icon.Label = i18n.Translate(lang, icon.Label)
			it.EntityIcon = &icon
		}
	}
}
