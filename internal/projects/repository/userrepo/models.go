package userrepo

import (
	"errors"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

type ListUsersRequest struct {
	Role       models.Role
	Active     *bool
	CustomerID *int64
	Search     string
	Offset     int
	Limit      int
}
