package userservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/passwords"
	"github.com/Leopold1975/projects_control/internal/pkg/validation"
	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/userrepo"
	ps "github.com/Leopold1975/projects_control/internal/projects/services/permissionservice"
)

var (
	ErrUnknownRole      = fmt.Errorf("%w: unknown role", apperr.ErrInvalid)
	ErrCustomerRequired = fmt.Errorf("%w: customer users need a customer", apperr.ErrInvalid)
	ErrRoleNotGrantable = fmt.Errorf("%w: role cannot be granted by this user", apperr.ErrForbidden)
	ErrSelfDeactivation = fmt.Errorf("%w: users cannot deactivate themselves", apperr.ErrConflict)
)

type UserService struct {
	userRepo   Repository
	access     Access
	bcryptCost int
	now        func() time.Time
}

type Repository interface {
	CreateUser(context.Context, models.User) (int64, error)
	GetUser(context.Context, int64) (models.User, error)
	ListUsers(context.Context, userrepo.ListUsersRequest) ([]models.User, error)
	UpdateUser(context.Context, models.User) error
	DeleteUser(context.Context, int64) error
}

type Access interface {
	DenyUnlessGranted(ctx context.Context, p models.Principal, perm ps.Permission, object any) error
	CanAssignRole(ctx context.Context, p models.Principal, role models.Role) bool
}

func New(userRepo Repository, access Access, bcryptCost int) *UserService {
	return &UserService{
		userRepo:   userRepo,
		access:     access,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

func mapRepoError(err error, where string) error {
	switch {
	case errors.Is(err, userrepo.ErrNotFound):
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	case errors.Is(err, userrepo.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", apperr.ErrConflict, err)
	}

	return fmt.Errorf("%s error: %w", where, err)
}

func checkRole(role models.Role, customerID *int64) error {
	if !role.Valid() {
		return ErrUnknownRole
	}

	if role == models.RoleCustomer && customerID == nil {
		return ErrCustomerRequired
	}

	return nil
}

func (us *UserService) ListUsers(ctx context.Context, p models.Principal, req ListUsersRequest) ([]models.User, error) {
	if err := us.access.DenyUnlessGranted(ctx, p, ps.UserList, nil); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	users, err := us.userRepo.ListUsers(ctx, userrepo.ListUsersRequest{
		Role:       req.Role,
		Active:     req.Active,
		CustomerID: req.CustomerID,
		Search:     req.Search,
		Offset:     req.Offset,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, mapRepoError(err, "list users")
	}

	return users, nil
}

func (us *UserService) GetUser(ctx context.Context, p models.Principal, id int64) (models.User, error) {
	u, err := us.userRepo.GetUser(ctx, id)
	if err != nil {
		return models.User{}, mapRepoError(err, "get user")
	}

	if err := us.access.DenyUnlessGranted(ctx, p, ps.UserView, u); err != nil {
		return models.User{}, err //nolint:wrapcheck
	}

	return u, nil
}

func (us *UserService) CreateUser(ctx context.Context, p models.Principal, req CreateUserRequest) (models.User, error) {
	if err := us.access.DenyUnlessGranted(ctx, p, ps.UserCreate, nil); err != nil {
		return models.User{}, err //nolint:wrapcheck
	}

	if err := validation.Struct(req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	if err := checkRole(req.Role, req.CustomerID); err != nil {
		return models.User{}, err
	}

	if !us.access.CanAssignRole(ctx, p, req.Role) {
		return models.User{}, ErrRoleNotGrantable
	}

	hash, err := passwords.Hash(req.Password, us.bcryptCost)
	if err != nil {
		return models.User{}, err //nolint:wrapcheck
	}

	now := us.now()
	u := models.User{ //nolint:exhaustruct
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		CustomerID:   req.CustomerID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if req.Role != models.RoleCustomer {
		u.CustomerID = nil
	}

	u.ID, err = us.userRepo.CreateUser(ctx, u)
	if err != nil {
		return models.User{}, mapRepoError(err, "create user")
	}

	return u, nil
}

func (us *UserService) UpdateUser(ctx context.Context, p models.Principal, id int64,
	req UpdateUserRequest,
) (models.User, error) {
	u, err := us.userRepo.GetUser(ctx, id)
	if err != nil {
		return models.User{}, mapRepoError(err, "get user")
	}

	if err := us.access.DenyUnlessGranted(ctx, p, ps.UserEdit, u); err != nil {
		return models.User{}, err //nolint:wrapcheck
	}

	if err := validation.Struct(req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	if req.Email != nil {
		u.Email = *req.Email
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}

	if req.LastName != nil {
		u.LastName = *req.LastName
	}

	if req.Active != nil && *req.Active != u.Active {
		if u.ID == p.UserID {
			return models.User{}, ErrSelfDeactivation
		}

		// toggling activity is an administrative edit, self edit is not enough
		if err := us.access.DenyUnlessGranted(ctx, p, ps.UserDelete, u); err != nil {
			return models.User{}, err //nolint:wrapcheck
		}

		u.Active = *req.Active
	}

	u.UpdatedAt = us.now()

	if err := us.userRepo.UpdateUser(ctx, u); err != nil {
		return models.User{}, mapRepoError(err, "update user")
	}

	return u, nil
}

func (us *UserService) ChangeRole(ctx context.Context, p models.Principal, id int64,
	req ChangeRoleRequest,
) (models.User, error) {
	if err := validation.Struct(req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	if err := checkRole(req.Role, req.CustomerID); err != nil {
		return models.User{}, err
	}

	u, err := us.userRepo.GetUser(ctx, id)
	if err != nil {
		return models.User{}, mapRepoError(err, "get user")
	}

	if err := us.access.DenyUnlessGranted(ctx, p, ps.UserChangeRole, u); err != nil {
		return models.User{}, err //nolint:wrapcheck
	}

	if !us.access.CanAssignRole(ctx, p, req.Role) {
		return models.User{}, ErrRoleNotGrantable
	}

	u.Role = req.Role
	u.CustomerID = nil

	if req.Role == models.RoleCustomer {
		u.CustomerID = req.CustomerID
	}

	u.UpdatedAt = us.now()

	if err := us.userRepo.UpdateUser(ctx, u); err != nil {
		return models.User{}, mapRepoError(err, "change role")
	}

	return u, nil
}

func (us *UserService) DeleteUser(ctx context.Context, p models.Principal, id int64) error {
	u, err := us.userRepo.GetUser(ctx, id)
	if err != nil {
		return mapRepoError(err, "get user")
	}

	if err := us.access.DenyUnlessGranted(ctx, p, ps.UserDelete, u); err != nil {
		return err //nolint:wrapcheck
	}

	if err := us.userRepo.DeleteUser(ctx, id); err != nil {
		return mapRepoError(err, "delete user")
	}

	return nil
}
