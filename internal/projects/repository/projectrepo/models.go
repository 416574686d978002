package projectrepo

import (
	"errors"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
)

var (
	ErrNotFound       = errors.New("project not found")
	ErrMemberNotFound = errors.New("project member not found")
	ErrInvalidRef     = errors.New("referenced customer or user does not exist")
)

type ListProjectsRequest struct {
	CustomerID *int64
	Status     models.ProjectStatus
	// ParticipantID keeps projects the user manages or is a member of.
	ParticipantID *int64
	Search        string
	Offset        int
	Limit         int
}
