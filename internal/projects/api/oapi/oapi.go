// Package oapi holds the HTTP contract of the projects API: the handler interface,
// typed request parameters and the chi wiring that binds them.
// Names follow oapi-codegen's chi-server output for openapi.yaml, so regenerating replaces this file.
package oapi

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.1.0 --config=oapi-codegen.yaml openapi.yaml

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

type contextKey string

// BearerAuthScopes is set in the request context of operations that require a token.
const BearerAuthScopes contextKey = "bearerAuth.Scopes"

type ListParams struct {
	Offset *int    `form:"offset,omitempty" json:"offset,omitempty"`
	Limit  *int    `form:"limit,omitempty"  json:"limit,omitempty"`
	Search *string `form:"search,omitempty" json:"search,omitempty"`
}

type GetUsersParams struct {
	ListParams
	Role       *string `form:"role,omitempty"        json:"role,omitempty"`
	Active     *bool   `form:"active,omitempty"      json:"active,omitempty"`
	CustomerId *int64  `form:"customer_id,omitempty" json:"customer_id,omitempty"` //nolint:revive,stylecheck,tagliatelle
}

type GetCustomersParams struct {
	ListParams
}

type GetProjectsParams struct {
	ListParams
	CustomerId *int64  `form:"customer_id,omitempty" json:"customer_id,omitempty"` //nolint:revive,stylecheck,tagliatelle
	Status     *string `form:"status,omitempty"      json:"status,omitempty"`
	MemberId   *int64  `form:"member_id,omitempty"   json:"member_id,omitempty"` //nolint:revive,stylecheck,tagliatelle
}

type GetTasksParams struct {
	ListParams
	ProjectId  *int64  `form:"project_id,omitempty"  json:"project_id,omitempty"`  //nolint:revive,stylecheck,tagliatelle
	AssigneeId *int64  `form:"assignee_id,omitempty" json:"assignee_id,omitempty"` //nolint:revive,stylecheck,tagliatelle
	Status     *string `form:"status,omitempty"      json:"status,omitempty"`
	Priority   *string `form:"priority,omitempty"    json:"priority,omitempty"`
	Overdue    *bool   `form:"overdue,omitempty"     json:"overdue,omitempty"`
}

type GetParameterParams struct {
	ListParams
	Key     *string    `form:"key,omitempty"      json:"key,omitempty"`
	ValidAt *time.Time `form:"valid_at,omitempty" json:"valid_at,omitempty"` //nolint:tagliatelle
}

type GetParameterValueKeyParams struct {
	At *time.Time `form:"at,omitempty" json:"at,omitempty"`
}

type ServerInterface interface {
	// (GET /healthz)
	GetHealthz(w http.ResponseWriter, r *http.Request)

	// (POST /auth/login)
	PostAuthLogin(w http.ResponseWriter, r *http.Request)
	// (POST /auth/register)
	PostAuthRegister(w http.ResponseWriter, r *http.Request)
	// (POST /auth/logout)
	PostAuthLogout(w http.ResponseWriter, r *http.Request)
	// (GET /auth/me)
	GetAuthMe(w http.ResponseWriter, r *http.Request)
	// (PUT /auth/password)
	PutAuthPassword(w http.ResponseWriter, r *http.Request)

	// (GET /users)
	GetUsers(w http.ResponseWriter, r *http.Request, params GetUsersParams)
	// (POST /users)
	PostUsers(w http.ResponseWriter, r *http.Request)
	// (GET /users/{id})
	GetUsersId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (PATCH /users/{id})
	PatchUsersId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (PUT /users/{id}/role)
	PutUsersIdRole(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (DELETE /users/{id})
	DeleteUsersId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck

	// (GET /customers)
	GetCustomers(w http.ResponseWriter, r *http.Request, params GetCustomersParams)
	// (POST /customers)
	PostCustomers(w http.ResponseWriter, r *http.Request)
	// (GET /customers/{id})
	GetCustomersId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (PUT /customers/{id})
	PutCustomersId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (DELETE /customers/{id})
	DeleteCustomersId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck

	// (GET /projects)
	GetProjects(w http.ResponseWriter, r *http.Request, params GetProjectsParams)
	// (POST /projects)
	PostProjects(w http.ResponseWriter, r *http.Request)
	// (GET /projects/{id})
	GetProjectsId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (PUT /projects/{id})
	PutProjectsId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (DELETE /projects/{id})
	DeleteProjectsId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (POST /projects/{id}/members)
	PostProjectsIdMembers(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (DELETE /projects/{id}/members/{userId})
	DeleteProjectsIdMembersUserId(w http.ResponseWriter, r *http.Request, id int64, userID int64) //nolint:revive,stylecheck

	// (GET /tasks)
	GetTasks(w http.ResponseWriter, r *http.Request, params GetTasksParams)
	// (POST /tasks)
	PostTasks(w http.ResponseWriter, r *http.Request)
	// (GET /tasks/{id})
	GetTasksId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (PATCH /tasks/{id})
	PatchTasksId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (DELETE /tasks/{id})
	DeleteTasksId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (PUT /tasks/{id}/assign)
	PutTasksIdAssign(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (PUT /tasks/{id}/status)
	PutTasksIdStatus(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck

	// (GET /parameter)
	GetParameter(w http.ResponseWriter, r *http.Request, params GetParameterParams)
	// (POST /parameter)
	PostParameter(w http.ResponseWriter, r *http.Request)
	// (GET /parameter/{id})
	GetParameterId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (PUT /parameter/{id})
	PutParameterId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (DELETE /parameter/{id})
	DeleteParameterId(w http.ResponseWriter, r *http.Request, id int64) //nolint:revive,stylecheck
	// (GET /parameter/value/{key})
	GetParameterValueKey(w http.ResponseWriter, r *http.Request, key string, params GetParameterValueKeyParams)

	// (GET /dashboard)
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type MiddlewareFunc func(http.Handler) http.Handler

type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// serve runs h through the middlewares, marking the request as secured when it needs a token.
func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, secured bool, h http.HandlerFunc) {
	ctx := r.Context()

	if secured {
		ctx = context.WithValue(ctx, BearerAuthScopes, []string{})
	}

	handler := http.Handler(h)

	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}

	handler.ServeHTTP(w, r.WithContext(ctx))
}

func (siw *ServerInterfaceWrapper) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	var id int64

	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath,
		chi.URLParam(r, name), &id)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})

		return 0, false
	}

	return id, true
}

func (siw *ServerInterfaceWrapper) query(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})

		return false
	}

	return true
}

func (siw *ServerInterfaceWrapper) listParams(w http.ResponseWriter, r *http.Request, p *ListParams) bool {
	return siw.query(w, r, "offset", &p.Offset) &&
		siw.query(w, r, "limit", &p.Limit) &&
		siw.query(w, r, "search", &p.Search)
}

// plain wraps operations without path or query parameters.
func (siw *ServerInterfaceWrapper) plain(secured bool,
	h func(http.ResponseWriter, *http.Request),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siw.serve(w, r, secured, h)
	}
}

// byID wraps secured operations addressed by the {id} path parameter.
func (siw *ServerInterfaceWrapper) byID(h func(http.ResponseWriter, *http.Request, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := siw.pathID(w, r, "id")
		if !ok {
			return
		}

		siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
			h(w, r, id)
		})
	}
}

func (siw *ServerInterfaceWrapper) GetUsers(w http.ResponseWriter, r *http.Request) {
	var params GetUsersParams

	if !siw.listParams(w, r, &params.ListParams) ||
		!siw.query(w, r, "role", &params.Role) ||
		!siw.query(w, r, "active", &params.Active) ||
		!siw.query(w, r, "customer_id", &params.CustomerId) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetUsers(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) GetCustomers(w http.ResponseWriter, r *http.Request) {
	var params GetCustomersParams

	if !siw.listParams(w, r, &params.ListParams) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetCustomers(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) GetProjects(w http.ResponseWriter, r *http.Request) {
	var params GetProjectsParams

	if !siw.listParams(w, r, &params.ListParams) ||
		!siw.query(w, r, "customer_id", &params.CustomerId) ||
		!siw.query(w, r, "status", &params.Status) ||
		!siw.query(w, r, "member_id", &params.MemberId) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetProjects(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) DeleteProjectsIdMembersUserId(w http.ResponseWriter, r *http.Request) { //nolint:revive,stylecheck
	id, ok := siw.pathID(w, r, "id")
	if !ok {
		return
	}

	userID, ok := siw.pathID(w, r, "userId")
	if !ok {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.DeleteProjectsIdMembersUserId(w, r, id, userID)
	})
}

func (siw *ServerInterfaceWrapper) GetTasks(w http.ResponseWriter, r *http.Request) {
	var params GetTasksParams

	if !siw.listParams(w, r, &params.ListParams) ||
		!siw.query(w, r, "project_id", &params.ProjectId) ||
		!siw.query(w, r, "assignee_id", &params.AssigneeId) ||
		!siw.query(w, r, "status", &params.Status) ||
		!siw.query(w, r, "priority", &params.Priority) ||
		!siw.query(w, r, "overdue", &params.Overdue) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetTasks(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) GetParameter(w http.ResponseWriter, r *http.Request) {
	var params GetParameterParams

	if !siw.listParams(w, r, &params.ListParams) ||
		!siw.query(w, r, "key", &params.Key) ||
		!siw.query(w, r, "valid_at", &params.ValidAt) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetParameter(w, r, params)
	})
}

func (siw *ServerInterfaceWrapper) GetParameterValueKey(w http.ResponseWriter, r *http.Request) {
	var key string

	err := runtime.BindStyledParameterWithLocation("simple", false, "key", runtime.ParamLocationPath,
		chi.URLParam(r, "key"), &key)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "key", Err: err})

		return
	}

	var params GetParameterValueKeyParams

	if !siw.query(w, r, "at", &params.At) {
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetParameterValueKey(w, r, key, params)
	})
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerWithOptions registers every operation of si under options.BaseURL.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler { //nolint:funlen
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}

	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		b := options.BaseURL

		r.Get(b+"/healthz", wrapper.plain(false, si.GetHealthz))

		r.Post(b+"/auth/login", wrapper.plain(false, si.PostAuthLogin))
		r.Post(b+"/auth/register", wrapper.plain(false, si.PostAuthRegister))
		r.Post(b+"/auth/logout", wrapper.plain(true, si.PostAuthLogout))
		r.Get(b+"/auth/me", wrapper.plain(true, si.GetAuthMe))
		r.Put(b+"/auth/password", wrapper.plain(true, si.PutAuthPassword))

		r.Get(b+"/users", wrapper.GetUsers)
		r.Post(b+"/users", wrapper.plain(true, si.PostUsers))
		r.Get(b+"/users/{id}", wrapper.byID(si.GetUsersId))
		r.Patch(b+"/users/{id}", wrapper.byID(si.PatchUsersId))
		r.Put(b+"/users/{id}/role", wrapper.byID(si.PutUsersIdRole))
		r.Delete(b+"/users/{id}", wrapper.byID(si.DeleteUsersId))

		r.Get(b+"/customers", wrapper.GetCustomers)
		r.Post(b+"/customers", wrapper.plain(true, si.PostCustomers))
		r.Get(b+"/customers/{id}", wrapper.byID(si.GetCustomersId))
		r.Put(b+"/customers/{id}", wrapper.byID(si.PutCustomersId))
		r.Delete(b+"/customers/{id}", wrapper.byID(si.DeleteCustomersId))

		r.Get(b+"/projects", wrapper.GetProjects)
		r.Post(b+"/projects", wrapper.plain(true, si.PostProjects))
		r.Get(b+"/projects/{id}", wrapper.byID(si.GetProjectsId))
		r.Put(b+"/projects/{id}", wrapper.byID(si.PutProjectsId))
		r.Delete(b+"/projects/{id}", wrapper.byID(si.DeleteProjectsId))
		r.Post(b+"/projects/{id}/members", wrapper.byID(si.PostProjectsIdMembers))
		r.Delete(b+"/projects/{id}/members/{userId}", wrapper.DeleteProjectsIdMembersUserId)

		r.Get(b+"/tasks", wrapper.GetTasks)
		r.Post(b+"/tasks", wrapper.plain(true, si.PostTasks))
		r.Get(b+"/tasks/{id}", wrapper.byID(si.GetTasksId))
		r.Patch(b+"/tasks/{id}", wrapper.byID(si.PatchTasksId))
		r.Delete(b+"/tasks/{id}", wrapper.byID(si.DeleteTasksId))
		r.Put(b+"/tasks/{id}/assign", wrapper.byID(si.PutTasksIdAssign))
		r.Put(b+"/tasks/{id}/status", wrapper.byID(si.PutTasksIdStatus))

		r.Get(b+"/parameter", wrapper.GetParameter)
		r.Post(b+"/parameter", wrapper.plain(true, si.PostParameter))
		r.Get(b+"/parameter/value/{key}", wrapper.GetParameterValueKey)
		r.Get(b+"/parameter/{id}", wrapper.byID(si.GetParameterId))
		r.Put(b+"/parameter/{id}", wrapper.byID(si.PutParameterId))
		r.Delete(b+"/parameter/{id}", wrapper.byID(si.DeleteParameterId))

		r.Get(b+"/dashboard", wrapper.plain(true, si.GetDashboard))
	})

	return r
}
