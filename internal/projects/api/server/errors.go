package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
)

var (
	errTokenRequired = errors.New("token required")
	errInternal      = errors.New("internal error")
)

// Response is the envelope of every response body.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func (resp Response) ToJSON() []byte {
	b, err := json.Marshal(resp)
	if err != nil {
		b, err := json.Marshal(Response{Success: false, Error: err.Error(), Data: nil})
		if err != nil {
			return []byte(`{"success": false, "error": "marshal error"}`)
		}

		return b
	}

	return b
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

func handleError(w http.ResponseWriter, err error, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	e := Response{Success: false, Error: err.Error(), Data: nil}

	w.Write(e.ToJSON()) //nolint:errcheck
}

func writeData(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	resp := Response{Success: true, Error: "", Data: data}

	w.Write(resp.ToJSON()) //nolint:errcheck
}

// paramErrorHandler answers requests whose path or query parameters cannot be bound.
func paramErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	handleError(w, err, http.StatusBadRequest)
}
