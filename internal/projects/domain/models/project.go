package models

import (
	"slices"
	"time"
)

type ProjectStatus string

const (
	ProjectPlanned   ProjectStatus = "planned"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

var ProjectStatuses = []ProjectStatus{ //nolint:gochecknoglobals
	ProjectPlanned, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled,
}

func (s ProjectStatus) Valid() bool {
	return slices.Contains(ProjectStatuses, s)
}

type Project struct {
	ID          int64         `json:"project_id"` //nolint:tagliatelle
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CustomerID  *int64        `json:"customer_id"` //nolint:tagliatelle
	ManagerID   *int64        `json:"manager_id"`  //nolint:tagliatelle
	Status      ProjectStatus `json:"status"`
	StartDate   *time.Time    `json:"start_date"` //nolint:tagliatelle
	EndDate     *time.Time    `json:"end_date"`   //nolint:tagliatelle
	MemberIDs   []int64       `json:"member_ids"` //nolint:tagliatelle
	CreatedAt   time.Time     `json:"created_at"` //nolint:tagliatelle
	UpdatedAt   time.Time     `json:"updated_at"` //nolint:tagliatelle
}

func (p Project) IsManager(userID int64) bool {
	return p.ManagerID != nil && *p.ManagerID == userID
}

func (p Project) IsMember(userID int64) bool {
	return slices.Contains(p.MemberIDs, userID)
}

// Participates reports whether the user manages or is a member of the project.
func (p Project) Participates(userID int64) bool {
	return p.IsManager(userID) || p.IsMember(userID)
}

func (p Project) BelongsToCustomer(customerID *int64) bool {
	return customerID != nil && p.CustomerID != nil && *p.CustomerID == *customerID
}
