package models

import (
	"slices"
	"time"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone} //nolint:gochecknoglobals

func (s TaskStatus) Valid() bool {
	return slices.Contains(TaskStatuses, s)
}

// taskTransitions lists the statuses reachable from each status.
var taskTransitions = map[TaskStatus][]TaskStatus{ //nolint:gochecknoglobals
	TaskTodo:       {TaskInProgress, TaskDone},
	TaskInProgress: {TaskTodo, TaskReview, TaskDone},
	TaskReview:     {TaskInProgress, TaskDone},
	TaskDone:       {TaskInProgress},
}

func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	if s == next {
		return true
	}

	return slices.Contains(taskTransitions[s], next)
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}

	return false
}

type Task struct {
	ID             int64        `json:"task_id"`    //nolint:tagliatelle
	ProjectID      int64        `json:"project_id"` //nolint:tagliatelle
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	AssigneeID     *int64       `json:"assignee_id"`     //nolint:tagliatelle
	CreatorID      *int64       `json:"creator_id"`      //nolint:tagliatelle
	DueDate        *time.Time   `json:"due_date"`        //nolint:tagliatelle
	EstimatedHours float64      `json:"estimated_hours"` //nolint:tagliatelle
	CompletedAt    *time.Time   `json:"completed_at"`    //nolint:tagliatelle
	CreatedAt      time.Time    `json:"created_at"`      //nolint:tagliatelle
	UpdatedAt      time.Time    `json:"updated_at"`      //nolint:tagliatelle
}

func (t Task) IsAssignee(userID int64) bool {
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

// SetStatus moves the task to status, stamping or clearing the completion time.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	if status == TaskDone && t.Status != TaskDone {
		t.CompletedAt = &now
	}

	if status != TaskDone {
		t.CompletedAt = nil
	}

	t.Status = status
}

func (t Task) Overdue(now time.Time) bool {
	return t.Status != TaskDone && t.DueDate != nil && t.DueDate.Before(now)
}
