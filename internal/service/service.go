package service

import (
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"ops-dashboard/internal/config"
	"ops-dashboard/internal/metrics"
	"ops-dashboard/internal/repository"
	"ops-dashboard/internal/service/auth"
	"ops-dashboard/internal/service/dashboard"
	"ops-dashboard/internal/service/export"
	"ops-dashboard/internal/service/feed"
	"ops-dashboard/internal/service/project"
)

type Services struct {
	Auth      auth.Service
	Feed      feed.Service
	Project   project.Service
	Dashboard dashboard.Service
	Export    export.Service
}

// NewServices wires the service layer. minioClient uploads exports and
// presignClient signs their links; export answers 503 when either is nil.
func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient, presignClient *minio.Client, m *metrics.Metrics, cfg *config.Config) (*Services, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	authService := auth.NewService(repos.User, cfg.JWTSecret)
	feedService := feed.NewService(
		repos.User,
		repos.Project,
		repos.Activity,
		repos.Announcement,
		redis,
		m,
		feed.Options{CacheTTL: cfg.FeedCacheTTL, Location: loc, Clock: time.Now},
	)
	projectService := project.NewService(repos.Project, repos.User, redis, m, cfg.FeedCacheTTL)
	dashboardService := dashboard.NewService(feedService, projectService, redis, cfg.FeedCacheTTL)

	var store export.ObjectStore
	if minioClient != nil {
		store = minioClient
	}
	var presigner export.Presigner
	if presignClient != nil {
		presigner = presignClient
	}
	exportService := export.NewService(feedService, store, presigner, cfg.MinIO.Bucket, cfg.MinIO.LinkExpiry)

	return &Services{
		Auth:      authService,
		Feed:      feedService,
		Project:   projectService,
		Dashboard: dashboardService,
		Export:    exportService,
	}, nil
}
