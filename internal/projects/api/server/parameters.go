package server

import (
	"net/http"

	"github.com/Leopold1975/projects_control/internal/projects/api/oapi"
	"github.com/Leopold1975/projects_control/internal/projects/services/parameterservice"
)

// (GET /parameter).
func (s *Server) GetParameter(w http.ResponseWriter, r *http.Request, params oapi.GetParameterParams) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	list, err := s.parameterService.ListParameters(r.Context(), p, parameterservice.ListParametersRequest{
		Key:     deref(params.Key),
		ValidAt: params.ValidAt,
		Offset:  deref(params.Offset),
		Limit:   deref(params.Limit),
	})
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, list)
}

// (POST /parameter).
func (s *Server) PostParameter(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req parameterservice.ParameterRequest

	if !decode(w, r, &req) {
		return
	}

	param, err := s.parameterService.CreateParameter(r.Context(), p, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusCreated, param)
}

// (GET /parameter/{id}).
func (s *Server) GetParameterId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	param, err := s.parameterService.GetParameter(r.Context(), p, id)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, param)
}

// (PUT /parameter/{id}).
func (s *Server) PutParameterId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req parameterservice.ParameterRequest

	if !decode(w, r, &req) {
		return
	}

	param, err := s.parameterService.UpdateParameter(r.Context(), p, id, req)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, param)
}

// (DELETE /parameter/{id}).
func (s *Server) DeleteParameterId(w http.ResponseWriter, r *http.Request, id int64) { //nolint:revive,stylecheck
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := s.parameterService.DeleteParameter(r.Context(), p, id); err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, nil)
}

// (GET /parameter/value/{key}).
func (s *Server) GetParameterValueKey(w http.ResponseWriter, r *http.Request, key string,
	params oapi.GetParameterValueKeyParams,
) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	param, err := s.parameterService.Value(r.Context(), p, key, params.At)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, param)
}
