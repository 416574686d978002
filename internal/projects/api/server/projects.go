package server

import (
	"net/http"

	"github.com/Leopold1975/projects_control/internal/projects/api/oapi"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/services/projectservice"
)

// (GET /projects).
func (s *Server) GetProjects(w http.ResponseWriter, r *http.Request, params oapi.GetProjectsParams) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	projects, err := s.projectService.ListProjects(r.Context(), p, projectservice.ListProjectsRequest{
		CustomerID: params.CustomerId,
		Status:     models.ProjectStatus(deref(params.Status)),
		MemberID:   params.MemberId,
		Search:     deref(params.Search),
		Offset:     deref(params.Offset),
		Limit:      deref(params.Limit),
	})
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, projects)
}

// (POST /projects).
func (s *Server) PostProjects(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req projectservice.ProjectRequest

	if !decode(w, r, &req) {
		return
	}

	pr, err := s.projectService.CreateProject(r.Context(), p, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusCreated, pr)
}

// (GET /projects/{id}).
func (s *Server) GetProjectsId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	pr, err := s.projectService.GetProject(r.Context(), p, id)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, pr)
}

// (PUT /projects/{id}).
func (s *Server) PutProjectsId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req projectservice.ProjectRequest

	if !decode(w, r, &req) {
		return
	}

	pr, err := s.projectService.UpdateProject(r.Context(), p, id, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, pr)
}

// (DELETE /projects/{id}).
func (s *Server) DeleteProjectsId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := s.projectService.DeleteProject(r.Context(), p, id); err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, nil)
}

// (POST /projects/{id}/members).
func (s *Server) PostProjectsIdMembers(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req projectservice.MemberRequest

	if !decode(w, r, &req) {
		return
	}

	pr, err := s.projectService.AddMember(r.Context(), p, id, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, pr)
}

// (DELETE /projects/{id}/members/{userId}).
func (s *Server) DeleteProjectsIdMembersUserId(w http.ResponseWriter, r *http.Request, //nolint:revive,stylecheck
	id int64, userID int64,
) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	pr, err := s.projectService.RemoveMember(r.Context(), p, id, userID)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, pr)
}
