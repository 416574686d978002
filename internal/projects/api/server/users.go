package server

import (
	"net/http"

	"github.com/Leopold1975/projects_control/internal/projects/api/oapi"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/services/userservice"
)

// (GET /users).
func (s *Server) GetUsers(w http.ResponseWriter, r *http.Request, params oapi.GetUsersParams) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	users, err := s.userService.ListUsers(r.Context(), p, userservice.ListUsersRequest{
		Role:       models.Role(deref(params.Role)),
		Active:     params.Active,
		CustomerID: params.CustomerId,
		Search:     deref(params.Search),
		Offset:     deref(params.Offset),
		Limit:      deref(params.Limit),
	})
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, users)
}

// (POST /users).
func (s *Server) PostUsers(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req userservice.CreateUserRequest

	if !decode(w, r, &req) {
		return
	}

	u, err := s.userService.CreateUser(r.Context(), p, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusCreated, u)
}

// (GET /users/{id}).
func (s *Server) GetUsersId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	u, err := s.userService.GetUser(r.Context(), p, id)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, u)
}

// (PATCH /users/{id}).
func (s *Server) PatchUsersId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req userservice.UpdateUserRequest

	if !decode(w, r, &req) {
		return
	}

	u, err := s.userService.UpdateUser(r.Context(), p, id, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, u)
}

// (PUT /users/{id}/role).
func (s *Server) PutUsersIdRole(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req userservice.ChangeRoleRequest

	if !decode(w, r, &req) {
		return
	}

	u, err := s.userService.ChangeRole(r.Context(), p, id, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, u)
}

// (DELETE /users/{id}).
func (s *Server) DeleteUsersId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := s.userService.DeleteUser(r.Context(), p, id); err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, nil)
}
