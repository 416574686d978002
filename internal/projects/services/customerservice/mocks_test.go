package customerservice

import (
	"context"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/customerrepo"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateCustomer(ctx context.Context, c models.Customer) (int64, error) {
	args := m.Called(ctx, c)

	return args.Get(0).(int64), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) GetCustomer(ctx context.Context, id int64) (models.Customer, error) {
	args := m.Called(ctx, id)

	return args.Get(0).(models.Customer), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) ListCustomers(ctx context.Context,
	req customerrepo.ListCustomersRequest,
) ([]models.Customer, error) {
	args := m.Called(ctx, req)

	return args.Get(0).([]models.Customer), args.Error(1) //nolint:forcetypeassert
}

func (m *MockRepository) UpdateCustomer(ctx context.Context, c models.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRepository) DeleteCustomer(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
