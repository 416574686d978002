package authservice

import (
	"context"
	"time"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
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

func (m *MockRepository) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)

	return args.Get(0).(models.User), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *MockRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockRepository) CountUsers(ctx context.Context, role models.Role) (int, error) {
	args := m.Called(ctx, role)

	return args.Int(0), args.Error(1)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)

	return args.Bool(0), args.Error(1)
}
