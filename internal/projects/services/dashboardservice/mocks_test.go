package dashboardservice

import (
	"context"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/customerrepo"
	"github.com/Leopold1975/projects_control/internal/projects/repository/projectrepo"
	"github.com/Leopold1975/projects_control/internal/projects/repository/taskrepo"
	"github.com/stretchr/testify/mock"
)

type MockCounters struct {
	mock.Mock
}

func (m *MockCounters) CountProjectsByStatus(ctx context.Context,
	req projectrepo.ListProjectsRequest,
) (map[models.ProjectStatus]int, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(map[models.ProjectStatus]int), args.Error(1) //nolint:forcetypeassert
}

func (m *MockCounters) CountTasksByStatus(ctx context.Context,
	req taskrepo.ListTasksRequest,
) (map[models.TaskStatus]int, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(map[models.TaskStatus]int), args.Error(1) //nolint:forcetypeassert
}

func (m *MockCounters) CountCustomers(ctx context.Context, req customerrepo.ListCustomersRequest) (int, error) {
	args := m.Called(ctx, req)

	return args.Int(0), args.Error(1)
}
