package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ops-dashboard/internal/domain"
)

type FeedService struct {
	mock.Mock
}

func (m *FeedService) Activities(ctx context.Context, v domain.Viewer, q domain.FeedQuery) (domain.PaginatedResponse[domain.DisplayEvent], error) {
	args := m.Called(ctx, v, q)
	return args.Get(0).(domain.PaginatedResponse[domain.DisplayEvent]), args.Error(1)
}

func (m *FeedService) Announcements(ctx context.Context, v domain.Viewer, q domain.FeedQuery) (domain.PaginatedResponse[domain.DisplayEvent], error) {
	args := m.Called(ctx, v, q)
	return args.Get(0).(domain.PaginatedResponse[domain.DisplayEvent]), args.Error(1)
}

func (m *FeedService) Combined(ctx context.Context, v domain.Viewer, q domain.FeedQuery) (domain.PaginatedResponse[domain.DisplayEvent], error) {
	args := m.Called(ctx, v, q)
	return args.Get(0).(domain.PaginatedResponse[domain.DisplayEvent]), args.Error(1)
}

func (m *FeedService) AnnouncementCount(ctx context.Context, v domain.Viewer) (int, error) {
	args := m.Called(ctx, v)
	return args.Int(0), args.Error(1)
}

func (m *FeedService) Assemble(ctx context.Context, v domain.Viewer, q domain.FeedQuery) (domain.Feed, error) {
	args := m.Called(ctx, v, q)
	return args.Get(0).(domain.Feed), args.Error(1)
}
