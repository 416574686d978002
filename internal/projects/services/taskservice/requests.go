package taskservice

import (
	"time"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
)

type ListTasksRequest struct {
	ProjectID  *int64
	AssigneeID *int64
	Status     models.TaskStatus
	Priority   models.TaskPriority
	Overdue    bool
	Offset     int `validate:"min=0"`
	Limit      int `validate:"min=0,max=500"`
}

type CreateTaskRequest struct {
	ProjectID      int64               `json:"project_id"      validate:"required,gt=0"` //nolint:tagliatelle
	Title          string              `json:"title"           validate:"required,max=255"`
	Description    string              `json:"description"`
	Priority       models.TaskPriority `json:"priority"`
	AssigneeID     *int64              `json:"assignee_id"`                                 //nolint:tagliatelle
	DueDate        *time.Time          `json:"due_date"`                                    //nolint:tagliatelle
	EstimatedHours float64             `json:"estimated_hours" validate:"gte=0,lte=100000"` //nolint:tagliatelle
}

// UpdateTaskRequest changes only the fields that are set.
type UpdateTaskRequest struct {
	Title          *string              `json:"title"           validate:"omitempty,min=1,max=255"`
	Description    *string              `json:"description"`
	Priority       *models.TaskPriority `json:"priority"`
	DueDate        *time.Time           `json:"due_date"`                                              //nolint:tagliatelle
	ClearDueDate   bool                 `json:"clear_due_date"`                                        //nolint:tagliatelle
	EstimatedHours *float64             `json:"estimated_hours" validate:"omitempty,gte=0,lte=100000"` //nolint:tagliatelle
}

// AssignRequest with a nil AssigneeID unassigns the task.
type AssignRequest struct {
	AssigneeID *int64 `json:"assignee_id"` //nolint:tagliatelle
}

type StatusRequest struct {
	Status models.TaskStatus `json:"status" validate:"required"`
}
