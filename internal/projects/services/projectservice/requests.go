package projectservice

import (
	"time"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
)

type ListProjectsRequest struct {
	CustomerID *int64
	Status     models.ProjectStatus
	MemberID   *int64
	Search     string
	Offset     int `validate:"min=0"`
	Limit      int `validate:"min=0,max=500"`
}

type ProjectRequest struct {
	Name        string               `json:"name"        validate:"required,max=255"`
	Description string               `json:"description"`
	CustomerID  *int64               `json:"customer_id"` //nolint:tagliatelle
	ManagerID   *int64               `json:"manager_id"`  //nolint:tagliatelle
	Status      models.ProjectStatus `json:"status"`
	StartDate   *time.Time           `json:"start_date"` //nolint:tagliatelle
	EndDate     *time.Time           `json:"end_date"`   //nolint:tagliatelle
	// MemberIDs is only read on creation, membership changes go through AddMember and RemoveMember.
	MemberIDs []int64 `json:"member_ids"` //nolint:tagliatelle
}

type MemberRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"` //nolint:tagliatelle
}
