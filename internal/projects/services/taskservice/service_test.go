package taskservice

import (
	"context"
	"testing"
	"time"

	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/projectrepo"
	"github.com/Leopold1975/projects_control/internal/projects/repository/taskrepo"
	ps "github.com/Leopold1975/projects_control/internal/projects/services/permissionservice"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

var (
	admin    = models.Principal{UserID: 2, Role: models.RoleAdmin}
	manager  = models.Principal{UserID: 3, Role: models.RoleProjectManager}
	employee = models.Principal{UserID: 4, Role: models.RoleEmployee}
	outsider = models.Principal{UserID: 5, Role: models.RoleEmployee}
	customer = models.Principal{UserID: 6, Role: models.RoleCustomer, CustomerID: ptr(int64(10))}
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func project() models.Project {
	return models.Project{
		ID:         100,
		CustomerID: ptr(int64(10)),
		ManagerID:  ptr(int64(3)),
		MemberIDs:  []int64{4, 9},
	}
}

func task() models.Task {
	return models.Task{
		ID:         1,
		ProjectID:  100,
		Title:      "Login page",
		Status:     models.TaskTodo,
		Priority:   models.PriorityMedium,
		AssigneeID: ptr(int64(4)),
		CreatorID:  ptr(int64(3)),
	}
}

func newService(t *testing.T, stored models.Task) (*TaskService, *MockRepository) {
	t.Helper()

	repo := new(MockRepository)
	projects := new(MockProjectRepository)

	repo.On("GetTask", mock.Anything, stored.ID).Return(stored, nil).Maybe()
	repo.On("GetTask", mock.Anything, int64(404)).Return(models.Task{}, taskrepo.ErrNotFound).Maybe()
	projects.On("GetProject", mock.Anything, int64(100)).Return(project(), nil).Maybe()
	projects.On("GetProject", mock.Anything, int64(404)).Return(models.Project{}, projectrepo.ErrNotFound).Maybe()

	ts := New(repo, projects, ps.NewDefault())
	ts.now = func() time.Time { return now }

	return ts, repo
}

func TestListTasksScoping(t *testing.T) {
	ctx := context.Background()

	t.Run("admin", func(t *testing.T) {
		ts, repo := newService(t, task())
		repo.On("ListTasks", ctx, taskrepo.ListTasksRequest{Status: models.TaskTodo}).Return([]models.Task{task()}, nil)

		got, err := ts.ListTasks(ctx, admin, ListTasksRequest{Status: models.TaskTodo})
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("employee overdue", func(t *testing.T) {
		ts, repo := newService(t, task())
		repo.On("ListTasks", ctx, taskrepo.ListTasksRequest{VisibleTo: ptr(int64(4)), DueBefore: ptr(now)}).
			Return([]models.Task{}, nil)

		_, err := ts.ListTasks(ctx, employee, ListTasksRequest{Overdue: true})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("customer", func(t *testing.T) {
		ts, repo := newService(t, task())
		repo.On("ListTasks", ctx, taskrepo.ListTasksRequest{CustomerID: ptr(int64(10))}).Return([]models.Task{}, nil)

		_, err := ts.ListTasks(ctx, customer, ListTasksRequest{})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("bad filters", func(t *testing.T) {
		ts, _ := newService(t, task())

		_, err := ts.ListTasks(ctx, admin, ListTasksRequest{Status: "later"})
		require.ErrorIs(t, err, ErrUnknownStatus)

		_, err = ts.ListTasks(ctx, admin, ListTasksRequest{Priority: "whenever"})
		require.ErrorIs(t, err, ErrUnknownPriority)
	})
}

func TestGetTask(t *testing.T) {
	ctx := context.Background()
	ts, _ := newService(t, task())

	for _, p := range []models.Principal{admin, manager, employee, customer} {
		_, err := ts.GetTask(ctx, p, 1)
		require.NoError(t, err, p.Role)
	}

	_, err := ts.GetTask(ctx, outsider, 1)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = ts.GetTask(ctx, admin, 404)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("member creates", func(t *testing.T) {
		ts, repo := newService(t, task())
		repo.On("CreateTask", ctx, mock.MatchedBy(func(tk models.Task) bool {
			return tk.Status == models.TaskTodo && tk.Priority == models.PriorityMedium &&
				*tk.CreatorID == 4 && tk.AssigneeID == nil
		})).Return(int64(2), nil)

		tk, err := ts.CreateTask(ctx, employee, CreateTaskRequest{ProjectID: 100, Title: "Signup"})
		require.NoError(t, err)
		require.Equal(t, int64(2), tk.ID)
		require.Equal(t, now, tk.CreatedAt)
	})

	t.Run("manager assigns on create", func(t *testing.T) {
		ts, repo := newService(t, task())
		repo.On("CreateTask", ctx, mock.MatchedBy(func(tk models.Task) bool {
			return tk.IsAssignee(9)
		})).Return(int64(3), nil)

		_, err := ts.CreateTask(ctx, manager, CreateTaskRequest{ProjectID: 100, Title: "Signup", AssigneeID: ptr(int64(9))})
		require.NoError(t, err)
	})

	t.Run("member cannot assign", func(t *testing.T) {
		ts, _ := newService(t, task())

		_, err := ts.CreateTask(ctx, employee, CreateTaskRequest{ProjectID: 100, Title: "Signup", AssigneeID: ptr(int64(9))})
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("assignee outside project", func(t *testing.T) {
		ts, _ := newService(t, task())

		_, err := ts.CreateTask(ctx, manager, CreateTaskRequest{ProjectID: 100, Title: "Signup", AssigneeID: ptr(int64(5))})
		require.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("outsider", func(t *testing.T) {
		ts, _ := newService(t, task())

		_, err := ts.CreateTask(ctx, outsider, CreateTaskRequest{ProjectID: 100, Title: "Signup"})
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("missing project", func(t *testing.T) {
		ts, _ := newService(t, task())

		_, err := ts.CreateTask(ctx, admin, CreateTaskRequest{ProjectID: 404, Title: "Signup"})
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		ts, _ := newService(t, task())

		_, err := ts.CreateTask(ctx, admin, CreateTaskRequest{ProjectID: 100})
		require.ErrorIs(t, err, apperr.ErrInvalid)

		_, err = ts.CreateTask(ctx, admin, CreateTaskRequest{ProjectID: 100, Title: "x", Priority: "asap"})
		require.ErrorIs(t, err, ErrUnknownPriority)
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	stored := task()
	stored.DueDate = ptr(now)

	ts, repo := newService(t, stored)
	repo.On("UpdateTask", ctx, mock.MatchedBy(func(tk models.Task) bool {
		return tk.Title == "Renamed" && tk.DueDate == nil && tk.Priority == models.PriorityHigh
	})).Return(nil)

	req := UpdateTaskRequest{Title: ptr("Renamed"), ClearDueDate: true, Priority: ptr(models.PriorityHigh)}

	tk, err := ts.UpdateTask(ctx, manager, 1, req)
	require.NoError(t, err)
	require.Equal(t, "Renamed", tk.Title)

	_, err = ts.UpdateTask(ctx, employee, 1, req)
	require.ErrorIs(t, err, apperr.ErrForbidden, "assignee only moves the status")

	_, err = ts.UpdateTask(ctx, models.Principal{UserID: 9, Role: models.RoleEmployee}, 1, req)
	require.ErrorIs(t, err, apperr.ErrForbidden, "members do not edit")

	_, err = ts.UpdateTask(ctx, outsider, 1, req)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = ts.UpdateTask(ctx, customer, 1, req)
	require.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestAssignTask(t *testing.T) {
	ctx := context.Background()
	ts, repo := newService(t, task())

	repo.On("UpdateTask", ctx, mock.Anything).Return(nil)

	tk, err := ts.AssignTask(ctx, manager, 1, AssignRequest{AssigneeID: ptr(int64(9))})
	require.NoError(t, err)
	require.True(t, tk.IsAssignee(9))

	tk, err = ts.AssignTask(ctx, manager, 1, AssignRequest{})
	require.NoError(t, err)
	require.Nil(t, tk.AssigneeID)

	_, err = ts.AssignTask(ctx, manager, 1, AssignRequest{AssigneeID: ptr(int64(5))})
	require.ErrorIs(t, err, ErrNotParticipant)

	_, err = ts.AssignTask(ctx, employee, 1, AssignRequest{AssigneeID: ptr(int64(9))})
	require.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("done stamps completion", func(t *testing.T) {
		ts, repo := newService(t, task())
		repo.On("UpdateTask", ctx, mock.MatchedBy(func(tk models.Task) bool {
			return tk.Status == models.TaskDone && tk.CompletedAt != nil && tk.CompletedAt.Equal(now)
		})).Return(nil)

		tk, err := ts.ChangeStatus(ctx, employee, 1, StatusRequest{Status: models.TaskDone})
		require.NoError(t, err)
		require.Equal(t, models.TaskDone, tk.Status)
	})

	t.Run("reopen clears completion", func(t *testing.T) {
		stored := task()
		stored.Status = models.TaskDone
		stored.CompletedAt = ptr(now.Add(-time.Hour))

		ts, repo := newService(t, stored)
		repo.On("UpdateTask", ctx, mock.MatchedBy(func(tk models.Task) bool {
			return tk.Status == models.TaskInProgress && tk.CompletedAt == nil
		})).Return(nil)

		_, err := ts.ChangeStatus(ctx, manager, 1, StatusRequest{Status: models.TaskInProgress})
		require.NoError(t, err)
	})

	t.Run("illegal transition", func(t *testing.T) {
		stored := task()
		stored.Status = models.TaskDone

		ts, _ := newService(t, stored)

		_, err := ts.ChangeStatus(ctx, employee, 1, StatusRequest{Status: models.TaskReview})
		require.ErrorIs(t, err, ErrTransition)
		require.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		ts, repo := newService(t, task())

		_, err := ts.ChangeStatus(ctx, employee, 1, StatusRequest{Status: models.TaskTodo})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything)
	})

	t.Run("member who is not assignee", func(t *testing.T) {
		ts, _ := newService(t, task())

		_, err := ts.ChangeStatus(ctx, models.Principal{UserID: 9, Role: models.RoleEmployee}, 1,
			StatusRequest{Status: models.TaskInProgress})
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("assignee who left the project", func(t *testing.T) {
		stored := task()
		stored.AssigneeID = ptr(outsider.UserID)

		ts, repo := newService(t, stored)

		_, err := ts.ChangeStatus(ctx, outsider, 1, StatusRequest{Status: models.TaskInProgress})
		require.ErrorIs(t, err, apperr.ErrForbidden)

		_, err = ts.GetTask(ctx, outsider, 1)
		require.ErrorIs(t, err, apperr.ErrForbidden)
		repo.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything)
	})

	t.Run("unknown status", func(t *testing.T) {
		ts, _ := newService(t, task())

		_, err := ts.ChangeStatus(ctx, employee, 1, StatusRequest{Status: "blocked"})
		require.ErrorIs(t, err, ErrUnknownStatus)
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	ts, repo := newService(t, task())

	repo.On("DeleteTask", ctx, int64(1)).Return(nil)

	require.ErrorIs(t, ts.DeleteTask(ctx, employee, 1), apperr.ErrForbidden)
	require.NoError(t, ts.DeleteTask(ctx, manager, 1))
	require.ErrorIs(t, ts.DeleteTask(ctx, manager, 404), apperr.ErrNotFound)
}
