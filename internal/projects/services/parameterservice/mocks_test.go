package parameterservice

import (
	"context"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	repo "github.com/Leopold1975/projects_control/internal/projects/repository/parameterrepo"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateParameter(ctx context.Context, p models.Parameter) (int64, error) {
	args := m.Called(ctx, p)

	return args.Get(0).(int64), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) GetParameter(ctx context.Context, id int64) (models.Parameter, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(models.Parameter), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) ListParameters(ctx context.Context, req repo.ListParametersRequest) ([]models.Parameter, error) {
	args := m.Called(ctx, req)

	return args.Get(0).([]models.Parameter), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) UpdateParameter(ctx context.Context, p models.Parameter) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) DeleteParameter(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) SetParameter(ctx context.Context, p models.Parameter) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockCache) GetParameter(ctx context.Context, key string) (models.Parameter, error) {
	args := m.Called(ctx, key)

	return args.Get(0).(models.Parameter), args.Error(1) //nolint:forcetypeassert
}

func (m *MockCache) DeleteParameter(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
