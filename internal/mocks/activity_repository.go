package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ops-dashboard/internal/domain"
)

type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}
