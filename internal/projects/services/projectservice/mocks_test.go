package projectservice

import (
	"context"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/projectrepo"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateProject(ctx context.Context, p models.Project) (int64, error) {
	args := m.Called(ctx, p)

	return args.Get(0).(int64), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) GetProject(ctx context.Context, id int64) (models.Project, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(models.Project), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) ListProjects(ctx context.Context, req projectrepo.ListProjectsRequest) ([]models.Project, error) {
	args := m.Called(ctx, req)

	return args.Get(0).([]models.Project), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) UpdateProject(ctx context.Context, p models.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) DeleteProject(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepository) AddMember(ctx context.Context, projectID, userID int64) error {
	return m.Called(ctx, projectID, userID).Error(0)
}

func (m *MockRepository) RemoveMember(ctx context.Context, projectID, userID int64) error {
	return m.Called(ctx, projectID, userID).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUser(ctx context.Context, id int64) (models.User, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(models.User), args.Error(1) //nolint:forcetypeassert
}
