package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/service/feed"
	"ops-dashboard/internal/service/project"
)

type Summary struct {
	VisibleProjects   int                   `json:"visible_projects"`
	ProjectsByStatus  map[string]int        `json:"projects_by_status"`
	ActivityCount     int                   `json:"activity_count"`
	AnnouncementCount int                   `json:"announcement_count"`
	InvalidTimestamps int                   `json:"invalid_timestamps"`
	LatestActivityAt  *time.Time            `json:"latest_activity_at"`
	RecentActivities  []domain.DisplayEvent `json:"recent_activities"`
}

const recentLimit = 5

type Service interface {
	GetSummary(ctx context.Context, viewer domain.Viewer) (*Summary, error)
}

type service struct {
	feedSvc    feed.Service
	projectSvc project.Service
	redis      *redis.Client
	ttl        time.Duration
}

func NewService(feedSvc feed.Service, projectSvc project.Service, redis *redis.Client, ttl time.Duration) Service {
	return &service{
		feedSvc:    feedSvc,
		projectSvc: projectSvc,
		redis:      redis,
		ttl:        ttl,
	}
}

func (s *service) GetSummary(ctx context.Context, viewer domain.Viewer) (*Summary, error) {
	cacheKey := fmt.Sprintf("dashboard:summary:%s:%s", viewer.Role, viewer.ID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary Summary
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	projects, err := s.projectSvc.Visible(ctx, viewer)
	if err != nil {
		return nil, err
	}

	// One unpaginated build so every figure covers the same items.
	f, err := s.feedSvc.Assemble(ctx, viewer, domain.FeedQuery{Scope: "projects"})
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		VisibleProjects:  len(projects),
		ProjectsByStatus: map[string]int{},
		RecentActivities: []domain.DisplayEvent{},
	}
	for _, p := range projects {
		summary.ProjectsByStatus[string(p.Status)]++
	}
	for _, it := range f.Items {
		if it.Kind == domain.KindAnnouncement {
			summary.AnnouncementCount++
			continue
		}
		summary.ActivityCount++
		if !it.Timestamp.Valid {
			summary.InvalidTimestamps++
			continue
		}
		if summary.LatestActivityAt == nil {
			summary.LatestActivityAt = it.Timestamp.Instant
		}
		if len(summary.RecentActivities) < recentLimit {
			summary.RecentActivities = append(summary.RecentActivities, it)
		}
	}

	if s.redis != nil && s.ttl > 0 {
		if summaryJSON, err := json.Marshal(summary); err == nil {
			_ = s.redis.Set(ctx, cacheKey, summaryJSON, s.ttl).Err()
		}
	}

	return summary, nil
}
