package userservice

import "github.com/Leopold1975/projects_control/internal/projects/domain/models"

type ListUsersRequest struct {
	Role       models.Role
	Active     *bool
	CustomerID *int64
	Search     string
	Offset     int `validate:"min=0"`
	Limit      int `validate:"min=0,max=500"`
}

type CreateUserRequest struct {
	Username   string      `json:"username"    validate:"required,alphanum,min=3,max=64"`
	Email      string      `json:"email"       validate:"required,email"`
	Password   string      `json:"password"    validate:"required,min=8,max=72"`
	FirstName  string      `json:"first_name"  validate:"max=128"` //nolint:tagliatelle
	LastName   string      `json:"last_name"   validate:"max=128"` //nolint:tagliatelle
	Role       models.Role `json:"role"        validate:"required"`
	CustomerID *int64      `json:"customer_id"` //nolint:tagliatelle
}

// UpdateUserRequest changes only the fields that are set.
type UpdateUserRequest struct {
	Email     *string `json:"email"      validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=128"` //nolint:tagliatelle
	LastName  *string `json:"last_name"  validate:"omitempty,max=128"` //nolint:tagliatelle
	Active    *bool   `json:"is_active"`                               //nolint:tagliatelle
}

type ChangeRoleRequest struct {
	Role       models.Role `json:"role"        validate:"required"`
	CustomerID *int64      `json:"customer_id"` //nolint:tagliatelle
}
