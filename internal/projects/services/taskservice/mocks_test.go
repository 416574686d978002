package taskservice

import (
	"context"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/taskrepo"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTask(ctx context.Context, t models.Task) (int64, error) {
	args := m.Called(ctx, t)

	return args.Get(0).(int64), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) GetTask(ctx context.Context, id int64) (models.Task, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(models.Task), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) ListTasks(ctx context.Context, req taskrepo.ListTasksRequest) ([]models.Task, error) {
	args := m.Called(ctx, req)

	return args.Get(0).([]models.Task), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) UpdateTask(ctx context.Context, t models.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockRepository) DeleteTask(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) GetProject(ctx context.Context, id int64) (models.Project, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(models.Project), args.Error(1) //nolint:forcetypeassert
}
