package server

import (
	"net/http"

	"github.com/Leopold1975/projects_control/internal/projects/api/oapi"
	"github.com/Leopold1975/projects_control/internal/projects/services/customerservice"
)

// (GET /customers).
func (s *Server) GetCustomers(w http.ResponseWriter, r *http.Request, params oapi.GetCustomersParams) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	customers, err := s.customerService.ListCustomers(r.Context(), p, customerservice.ListCustomersRequest{
		Search: deref(params.Search),
		Offset: deref(params.Offset),
		Limit:  deref(params.Limit),
	})
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, customers)
}

// (POST /customers).
func (s *Server) PostCustomers(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req customerservice.CustomerRequest

	if !decode(w, r, &req) {
		return
	}

	c, err := s.customerService.CreateCustomer(r.Context(), p, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusCreated, c)
}

// (GET /customers/{id}).
func (s *Server) GetCustomersId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	c, err := s.customerService.GetCustomer(r.Context(), p, id)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, c)
}

// (PUT /customers/{id}).
func (s *Server) PutCustomersId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req customerservice.CustomerRequest

	if !decode(w, r, &req) {
		return
	}

	c, err := s.customerService.UpdateCustomer(r.Context(), p, id, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, c)
}

// (DELETE /customers/{id}).
func (s *Server) DeleteCustomersId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := s.customerService.DeleteCustomer(r.Context(), p, id); err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, nil)
}
