package handler

import (
	"time"

	"ops-dashboard/internal/service"
)

type Handlers struct {
	Feed      *FeedHandler
	Project   *ProjectHandler
	Dashboard *DashboardHandler
	Timestamp *TimestampHandler
}

func NewHandlers(services *service.Services, location *time.Location) *Handlers {
	return &Handlers{
		Feed:      NewFeedHandler(services.Feed, services.Export),
		Project:   NewProjectHandler(services.Project),
		Dashboard: NewDashboardHandler(services.Dashboard),
		Timestamp: NewTimestampHandler(location),
	}
}
