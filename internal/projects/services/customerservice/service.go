package customerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/validation"
	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/customerrepo"
	ps "github.com/Leopold1975/projects_control/internal/projects/services/permissionservice"
)

type CustomerService struct {
	customerRepo Repository
	access       Access
	now          func() time.Time
}

type Repository interface {
	CreateCustomer(context.Context, models.Customer) (int64, error)
	GetCustomer(context.Context, int64) (models.Customer, error)
	ListCustomers(context.Context, customerrepo.ListCustomersRequest) ([]models.Customer, error)
	UpdateCustomer(context.Context, models.Customer) error
	DeleteCustomer(context.Context, int64) error
}

type Access interface {
	DenyUnlessGranted(ctx context.Context, p models.Principal, perm ps.Permission, object any) error
}

func New(customerRepo Repository, access Access) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		access:       access,
		now:          time.Now,
	}
}

func mapRepoError(err error, where string) error {
	switch {
	case errors.Is(err, customerrepo.ErrNotFound):
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	case errors.Is(err, customerrepo.ErrInUse):
		return fmt.Errorf("%w: %w", apperr.ErrConflict, err)
	}

	return fmt.Errorf("%s error: %w", where, err)
}

func (cs *CustomerService) ListCustomers(ctx context.Context, p models.Principal,
	req ListCustomersRequest,
) ([]models.Customer, error) {
	if err := cs.access.DenyUnlessGranted(ctx, p, ps.CustomerList, nil); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	customers, err := cs.customerRepo.ListCustomers(ctx, customerrepo.ListCustomersRequest{
		ID:     nil,
		Search: req.Search,
		Offset: req.Offset,
		Limit:  req.Limit,
	})
	if err != nil {
		return nil, mapRepoError(err, "list customers")
	}

	return customers, nil
}

func (cs *CustomerService) GetCustomer(ctx context.Context, p models.Principal, id int64) (models.Customer, error) {
	c, err := cs.customerRepo.GetCustomer(ctx, id)
	if err != nil {
		return models.Customer{}, mapRepoError(err, "get customer")
	}

	if err := cs.access.DenyUnlessGranted(ctx, p, ps.CustomerView, c); err != nil {
		return models.Customer{}, err //nolint:wrapcheck
	}

	return c, nil
}

func (cs *CustomerService) CreateCustomer(ctx context.Context, p models.Principal,
	req CustomerRequest,
) (models.Customer, error) {
	if err := cs.access.DenyUnlessGranted(ctx, p, ps.CustomerCreate, nil); err != nil {
		return models.Customer{}, err //nolint:wrapcheck
	}

	if err := validation.Struct(req); err != nil {
		return models.Customer{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	now := cs.now()
	c := models.Customer{
		ID:        0,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := cs.customerRepo.CreateCustomer(ctx, c)
	if err != nil {
		return models.Customer{}, mapRepoError(err, "create customer")
	}

	c.ID = id

	return c, nil
}

func (cs *CustomerService) UpdateCustomer(ctx context.Context, p models.Principal, id int64,
	req CustomerRequest,
) (models.Customer, error) {
	c, err := cs.customerRepo.GetCustomer(ctx, id)
	if err != nil {
		return models.Customer{}, mapRepoError(err, "get customer")
	}

	if err := cs.access.DenyUnlessGranted(ctx, p, ps.CustomerEdit, c); err != nil {
		return models.Customer{}, err //nolint:wrapcheck
	}

	if err := validation.Struct(req); err != nil {
		return models.Customer{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	c.Name = req.Name
	c.Email = req.Email
	c.Phone = req.Phone
	c.Address = req.Address
	c.Notes = req.Notes
	c.UpdatedAt = cs.now()

	if err := cs.customerRepo.UpdateCustomer(ctx, c); err != nil {
		return models.Customer{}, mapRepoError(err, "update customer")
	}

	return c, nil
}

func (cs *CustomerService) DeleteCustomer(ctx context.Context, p models.Principal, id int64) error {
	c, err := cs.customerRepo.GetCustomer(ctx, id)
	if err != nil {
		return mapRepoError(err, "get customer")
	}

	if err := cs.access.DenyUnlessGranted(ctx, p, ps.CustomerDelete, c); err != nil {
		return err //nolint:wrapcheck
	}

	if err := cs.customerRepo.DeleteCustomer(ctx, id); err != nil {
		return mapRepoError(err, "delete customer")
	}

	return nil
}
