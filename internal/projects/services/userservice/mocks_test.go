package userservice

import (
	"context"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/userrepo"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, u models.User) (int64, error) {
	args := m.Called(ctx, u)

	return args.Get(0).(int64), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) GetUser(ctx context.Context, id int64) (models.User, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(models.User), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) ListUsers(ctx context.Context, req userrepo.ListUsersRequest) ([]models.User, error) {
	args := m.Called(ctx, req)

	return args.Get(0).([]models.User), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) UpdateUser(ctx context.Context, u models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockRepository) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
