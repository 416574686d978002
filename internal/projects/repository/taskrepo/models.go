package taskrepo

import (
	"errors"
	"time"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
)

var (
	ErrNotFound   = errors.New("task not found")
	ErrInvalidRef = errors.New("referenced project or user does not exist")
)

type ListTasksRequest struct {
	ProjectID  *int64
	AssigneeID *int64
	Status     models.TaskStatus
	Priority   models.TaskPriority
	// VisibleTo keeps tasks assigned to the user or belonging to a project it participates in.
	VisibleTo *int64
	// CustomerID keeps tasks of the customer's projects.
	CustomerID *int64
	// DueBefore keeps unfinished tasks due before the given time.
	DueBefore *time.Time
	Offset    int
	Limit     int
}
