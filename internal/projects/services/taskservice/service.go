package taskservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/validation"
	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/projectrepo"
	"github.com/Leopold1975/projects_control/internal/projects/repository/taskrepo"
	ps "github.com/Leopold1975/projects_control/internal/projects/services/permissionservice"
)

var (
	ErrUnknownStatus   = fmt.Errorf("%w: unknown task status", apperr.ErrInvalid)
	ErrUnknownPriority = fmt.Errorf("%w: unknown task priority", apperr.ErrInvalid)
	ErrNotParticipant  = fmt.Errorf("%w: assignee must be a member or the manager of the project", apperr.ErrInvalid)
	ErrTransition      = fmt.Errorf("%w: status transition not allowed", apperr.ErrConflict)
)

type TaskService struct {
	taskRepo    Repository
	projectRepo ProjectRepository
	access      Access
	now         func() time.Time
}

type Repository interface {
	CreateTask(context.Context, models.Task) (int64, error)
	GetTask(context.Context, int64) (models.Task, error)
	ListTasks(context.Context, taskrepo.ListTasksRequest) ([]models.Task, error)
	UpdateTask(context.Context, models.Task) error
	DeleteTask(context.Context, int64) error
}

type ProjectRepository interface {
	GetProject(context.Context, int64) (models.Project, error)
}

type Access interface {
	DenyUnlessGranted(ctx context.Context, p models.Principal, perm ps.Permission, object any) error
	IsGranted(ctx context.Context, p models.Principal, perm ps.Permission, object any) bool
}

func New(taskRepo Repository, projectRepo ProjectRepository, access Access) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		access:      access,
		now:         time.Now,
	}
}

func mapRepoError(err error, where string) error {
	switch {
	case errors.Is(err, taskrepo.ErrNotFound), errors.Is(err, projectrepo.ErrNotFound):
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	case errors.Is(err, taskrepo.ErrInvalidRef):
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	return fmt.Errorf("%s error: %w", where, err)
}

// load returns the task together with its project, which scopes every task permission.
func (ts *TaskService) load(ctx context.Context, id int64) (ps.TaskInProject, error) {
	t, err := ts.taskRepo.GetTask(ctx, id)
	if err != nil {
		return ps.TaskInProject{}, mapRepoError(err, "get task")
	}

	pr, err := ts.projectRepo.GetProject(ctx, t.ProjectID)
	if err != nil {
		return ps.TaskInProject{}, mapRepoError(err, "get project")
	}

	return ps.TaskInProject{Task: t, Project: pr}, nil
}

func (ts *TaskService) ListTasks(ctx context.Context, p models.Principal, req ListTasksRequest) ([]models.Task, error) {
	if err := ts.access.DenyUnlessGranted(ctx, p, ps.TaskList, nil); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	if req.Status != "" && !req.Status.Valid() {
		return nil, ErrUnknownStatus
	}

	if req.Priority != "" && !req.Priority.Valid() {
		return nil, ErrUnknownPriority
	}

	repoReq := taskrepo.ListTasksRequest{ //nolint:exhaustruct
		ProjectID:  req.ProjectID,
		AssigneeID: req.AssigneeID,
		Status:     req.Status,
		Priority:   req.Priority,
		Offset:     req.Offset,
		Limit:      req.Limit,
	}

	if req.Overdue {
		now := ts.now()
		repoReq.DueBefore = &now
	}

	switch {
	case ts.access.IsGranted(ctx, p, ps.ProjectListAll, nil):
	case p.Role == models.RoleCustomer:
		if p.CustomerID == nil {
			return []models.Task{}, nil
		}

		repoReq.CustomerID = p.CustomerID
	default:
		repoReq.VisibleTo = &p.UserID
	}

	tasks, err := ts.taskRepo.ListTasks(ctx, repoReq)
	if err != nil {
		return nil, mapRepoError(err, "list tasks")
	}

	return tasks, nil
}

func (ts *TaskService) GetTask(ctx context.Context, p models.Principal, id int64) (models.Task, error) {
	tp, err := ts.load(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if err := ts.access.DenyUnlessGranted(ctx, p, ps.TaskView, tp); err != nil {
		return models.Task{}, err //nolint:wrapcheck
	}

	return tp.Task, nil
}

func (ts *TaskService) checkAssignee(ctx context.Context, p models.Principal, tp ps.TaskInProject,
	assigneeID *int64,
) error {
	if err := ts.access.DenyUnlessGranted(ctx, p, ps.TaskAssign, tp); err != nil {
		return err //nolint:wrapcheck
	}

	if assigneeID != nil && !tp.Project.Participates(*assigneeID) {
		return ErrNotParticipant
	}

	return nil
}

func (ts *TaskService) CreateTask(ctx context.Context, p models.Principal, req CreateTaskRequest) (models.Task, error) {
	if err := validation.Struct(req); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	if !req.Priority.Valid() {
		return models.Task{}, ErrUnknownPriority
	}

	pr, err := ts.projectRepo.GetProject(ctx, req.ProjectID)
	if err != nil {
		return models.Task{}, mapRepoError(err, "get project")
	}

	if err := ts.access.DenyUnlessGranted(ctx, p, ps.TaskCreate, pr); err != nil {
		return models.Task{}, err //nolint:wrapcheck
	}

	now := ts.now()
	t := models.Task{
		ID:             0,
		ProjectID:      pr.ID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.TaskTodo,
		Priority:       req.Priority,
		AssigneeID:     nil,
		CreatorID:      &p.UserID,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		CompletedAt:    nil,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if req.AssigneeID != nil {
		if err := ts.checkAssignee(ctx, p, ps.TaskInProject{Task: t, Project: pr}, req.AssigneeID); err != nil {
			return models.Task{}, err
		}

		t.AssigneeID = req.AssigneeID
	}

	t.ID, err = ts.taskRepo.CreateTask(ctx, t)
	if err != nil {
		return models.Task{}, mapRepoError(err, "create task")
	}

	return t, nil
}

func (ts *TaskService) UpdateTask(ctx context.Context, p models.Principal, id int64,
	req UpdateTaskRequest,
) (models.Task, error) {
	tp, err := ts.load(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if err := ts.access.DenyUnlessGranted(ctx, p, ps.TaskEdit, tp); err != nil {
		return models.Task{}, err //nolint:wrapcheck
	}

	if err := validation.Struct(req); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	t := tp.Task

	if req.Title != nil {
		t.Title = *req.Title
	}

	if req.Description != nil {
		t.Description = *req.Description
	}

	if req.Priority != nil {
		if !req.Priority.Valid() {
			return models.Task{}, ErrUnknownPriority
		}

		t.Priority = *req.Priority
	}

	switch {
	case req.ClearDueDate:
		t.DueDate = nil
	case req.DueDate != nil:
		t.DueDate = req.DueDate
	}

	if req.EstimatedHours != nil {
		t.EstimatedHours = *req.EstimatedHours
	}

	return ts.save(ctx, t, "update task")
}

func (ts *TaskService) AssignTask(ctx context.Context, p models.Principal, id int64,
	req AssignRequest,
) (models.Task, error) {
	tp, err := ts.load(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if err := ts.checkAssignee(ctx, p, tp, req.AssigneeID); err != nil {
		return models.Task{}, err
	}

	t := tp.Task
	t.AssigneeID = req.AssigneeID

	return ts.save(ctx, t, "assign task")
}

func (ts *TaskService) ChangeStatus(ctx context.Context, p models.Principal, id int64,
	req StatusRequest,
) (models.Task, error) {
	if err := validation.Struct(req); err != nil {
		return models.Task{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	if !req.Status.Valid() {
		return models.Task{}, ErrUnknownStatus
	}

	tp, err := ts.load(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if err := ts.access.DenyUnlessGranted(ctx, p, ps.TaskChangeStatus, tp); err != nil {
		return models.Task{}, err //nolint:wrapcheck
	}

	t := tp.Task

	if !t.Status.CanTransitionTo(req.Status) {
		return models.Task{}, fmt.Errorf("%w: %s to %s", ErrTransition, t.Status, req.Status)
	}

	if t.Status == req.Status {
		return t, nil
	}

	t.SetStatus(req.Status, ts.now())

	return ts.save(ctx, t, "change status")
}

func (ts *TaskService) save(ctx context.Context, t models.Task, where string) (models.Task, error) {
	t.UpdatedAt = ts.now()

	if err := ts.taskRepo.UpdateTask(ctx, t); err != nil {
		return models.Task{}, mapRepoError(err, where)
	}

	return t, nil
}

func (ts *TaskService) DeleteTask(ctx context.Context, p models.Principal, id int64) error {
	tp, err := ts.load(ctx, id)
	if err != nil {
		return err
	}

	if err := ts.access.DenyUnlessGranted(ctx, p, ps.TaskDelete, tp); err != nil {
		return err //nolint:wrapcheck
	}

	if err := ts.taskRepo.DeleteTask(ctx, id); err != nil {
		return mapRepoError(err, "delete task")
	}

	return nil
}
