package server

import (
	"net/http"

	"github.com/Leopold1975/projects_control/internal/projects/api/oapi"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/services/taskservice"
)

// (GET /tasks).
func (s *Server) GetTasks(w http.ResponseWriter, r *http.Request, params oapi.GetTasksParams) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	tasks, err := s.taskService.ListTasks(r.Context(), p, taskservice.ListTasksRequest{
		ProjectID:  params.ProjectId,
		AssigneeID: params.AssigneeId,
		Status:     models.TaskStatus(deref(params.Status)),
		Priority:   models.TaskPriority(deref(params.Priority)),
		Overdue:    deref(params.Overdue),
		Offset:     deref(params.Offset),
		Limit:      deref(params.Limit),
	})
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, tasks)
}

// (POST /tasks).
func (s *Server) PostTasks(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req taskservice.CreateTaskRequest

	if !decode(w, r, &req) {
		return
	}

	t, err := s.taskService.CreateTask(r.Context(), p, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusCreated, t)
}

// (GET /tasks/{id}).
func (s *Server) GetTasksId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	t, err := s.taskService.GetTask(r.Context(), p, id)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, t)
}

// (PATCH /tasks/{id}).
func (s *Server) PatchTasksId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req taskservice.UpdateTaskRequest

	if !decode(w, r, &req) {
		return
	}

	t, err := s.taskService.UpdateTask(r.Context(), p, id, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, t)
}

// (DELETE /tasks/{id}).
func (s *Server) DeleteTasksId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := s.taskService.DeleteTask(r.Context(), p, id); err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, nil)
}

// (PUT /tasks/{id}/assign).
func (s *Server) PutTasksIdAssign(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req taskservice.AssignRequest

	if !decode(w, r, &req) {
		return
	}

	t, err := s.taskService.AssignTask(r.Context(), p, id, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, t)
}

// (PUT /tasks/{id}/status).
func (s *Server) PutTasksIdStatus(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req taskservice.StatusRequest

	if !decode(w, r, &req) {
		return
	}

	t, err := s.taskService.ChangeStatus(r.Context(), p, id, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, t)
}
