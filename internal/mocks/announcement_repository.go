package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ops-dashboard/internal/domain"
)

type AnnouncementRepository struct {
	mock.Mock
}

func (m *AnnouncementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Announcement), args.Error(1)
}
