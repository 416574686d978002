package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/config"
	"github.com/Leopold1975/projects_control/internal/projects/api/oapi"
	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/services/authservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/customerservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/parameterservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/projectservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/taskservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/userservice"
	"github.com/Leopold1975/projects_control/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Server struct {
	serv             *http.Server
	authService      AuthService
	userService      UserService
	customerService  CustomerService
	projectService   ProjectService
	taskService      TaskService
	parameterService ParameterService
	dashboardService DashboardService
	lg               logger.Logger
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(context.Context, authservice.RegisterRequest) (string, error)
	Authenticate(ctx context.Context, token string) (models.Principal, error)
	Logout(ctx context.Context, token string) error
	Me(context.Context, models.Principal) (models.User, error)
	ChangePassword(context.Context, models.Principal, authservice.ChangePasswordRequest) error
}

type UserService interface {
	ListUsers(context.Context, models.Principal, userservice.ListUsersRequest) ([]models.User, error)
	GetUser(context.Context, models.Principal, int64) (models.User, error)
	CreateUser(context.Context, models.Principal, userservice.CreateUserRequest) (models.User, error)
	UpdateUser(context.Context, models.Principal, int64, userservice.UpdateUserRequest) (models.User, error)
	ChangeRole(context.Context, models.Principal, int64, userservice.ChangeRoleRequest) (models.User, error)
	DeleteUser(context.Context, models.Principal, int64) error
}

type CustomerService interface {
	ListCustomers(context.Context, models.Principal, customerservice.ListCustomersRequest) ([]models.Customer, error)
	GetCustomer(context.Context, models.Principal, int64) (models.Customer, error)
	CreateCustomer(context.Context, models.Principal, customerservice.CustomerRequest) (models.Customer, error)
	UpdateCustomer(context.Context, models.Principal, int64, customerservice.CustomerRequest) (models.Customer, error)
	DeleteCustomer(context.Context, models.Principal, int64) error
}

type ProjectService interface {
	ListProjects(context.Context, models.Principal, projectservice.ListProjectsRequest) ([]models.Project, error)
	GetProject(context.Context, models.Principal, int64) (models.Project, error)
	CreateProject(context.Context, models.Principal, projectservice.ProjectRequest) (models.Project, error)
	UpdateProject(context.Context, models.Principal, int64, projectservice.ProjectRequest) (models.Project, error)
	DeleteProject(context.Context, models.Principal, int64) error
	AddMember(context.Context, models.Principal, int64, projectservice.MemberRequest) (models.Project, error)
	RemoveMember(ctx context.Context, p models.Principal, projectID, userID int64) (models.Project, error)
}

type TaskService interface {
	ListTasks(context.Context, models.Principal, taskservice.ListTasksRequest) ([]models.Task, error)
	GetTask(context.Context, models.Principal, int64) (models.Task, error)
	CreateTask(context.Context, models.Principal, taskservice.CreateTaskRequest) (models.Task, error)
	UpdateTask(context.Context, models.Principal, int64, taskservice.UpdateTaskRequest) (models.Task, error)
	AssignTask(context.Context, models.Principal, int64, taskservice.AssignRequest) (models.Task, error)
	ChangeStatus(context.Context, models.Principal, int64, taskservice.StatusRequest) (models.Task, error)
	DeleteTask(context.Context, models.Principal, int64) error
}

type ParameterService interface {
	ListParameters(context.Context, models.Principal, parameterservice.ListParametersRequest) ([]models.Parameter, error)
	GetParameter(context.Context, models.Principal, int64) (models.Parameter, error)
	CreateParameter(context.Context, models.Principal, parameterservice.ParameterRequest) (models.Parameter, error)
	UpdateParameter(context.Context, models.Principal, int64, parameterservice.ParameterRequest) (models.Parameter, error)
	DeleteParameter(context.Context, models.Principal, int64) error
	Value(ctx context.Context, p models.Principal, key string, at *time.Time) (models.Parameter, error)
}

type DashboardService interface {
	Dashboard(context.Context, models.Principal) (models.Dashboard, error)
}

// Services groups the domain services the server exposes.
type Services struct {
	Auth       AuthService
	Users      UserService
	Customers  CustomerService
	Projects   ProjectService
	Tasks      TaskService
	Parameters ParameterService
	Dashboard  DashboardService
}

func New(cfg config.Config, svc Services, lg logger.Logger) *Server {
	s := &Server{ //nolint:exhaustruct
		authService:      svc.Auth,
		userService:      svc.Users,
		customerService:  svc.Customers,
		projectService:   svc.Projects,
		taskService:      svc.Tasks,
		parameterService: svc.Parameters,
		dashboardService: svc.Dashboard,
		lg:               lg,
	}

	s.serv = &http.Server{ //nolint:exhaustruct
		Addr:         cfg.Server.Addr,
		Handler:      s.Handler(cfg.CORS),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// Handler builds the routed handler; exposed for tests.
func (s *Server) Handler(cfg config.CORS) http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{ //nolint:exhaustruct
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "token"},
		AllowCredentials: false,
		MaxAge:           cfg.MaxAge,
	}))

	return oapi.HandlerWithOptions(s, oapi.ChiServerOptions{ //nolint:exhaustruct
		BaseURL:          "/v1",
		BaseRouter:       router,
		Middlewares:      []oapi.MiddlewareFunc{authMiddleware(s.authService), loggingMiddleware(s.lg)},
		ErrorHandlerFunc: paramErrorHandler,
	})
}

func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.serv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			close(errCh)
		}
	}()

	select {
	case <-ctx.Done():
		ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
		defer cancel()

		if err := s.Shutdown(ctxS); err != nil { //nolint:contextcheck
			return fmt.Errorf("context error: %w server error %w", ctxS.Err(), err)
		}

		if !errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("context cancelled error: %w", ctx.Err())
		}

		return nil
	case err := <-errCh:
		return fmt.Errorf("listen and serve error: %w", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.serv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server error: %w", err)
	}

	return nil
}

// fail writes err with the status of its category. Uncategorized errors are logged and hidden.
func (s *Server) fail(w http.ResponseWriter, err error) {
	code := statusCode(err)

	if code == http.StatusInternalServerError {
		s.lg.Errorf("internal error: %s", err.Error())
		handleError(w, errInternal, code)

		return
	}

	handleError(w, err, code)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		handleError(w, fmt.Errorf("%w: decode error: %w", apperr.ErrInvalid, err), http.StatusBadRequest)

		return false
	}

	return true
}

// principal returns the authenticated caller; the auth middleware guarantees it on secured routes.
func principal(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	p, ok := principalFrom(r.Context())
	if !ok {
		handleError(w, errTokenRequired, http.StatusUnauthorized)
	}

	return p, ok
}

func deref[T any](v *T) T {
	var zero T

	if v == nil {
		return zero
	}

	return *v
}

// (GET /healthz).
func (s *Server) GetHealthz(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// (POST /auth/login).
func (s *Server) PostAuthLogin(w http.ResponseWriter, r *http.Request) {
	var b LoginRequest

	if !decode(w, r, &b) {
		return
	}

	if b.Username == "" || b.Password == "" {
		handleError(w, fmt.Errorf("%w: username and password required", apperr.ErrInvalid), http.StatusBadRequest)

		return
	}

	token, err := s.authService.Login(r.Context(), b.Username, b.Password)
	if err != nil {
		s.fail(w, fmt.Errorf("login error: %w", err))

		return
	}

	writeData(w, http.StatusOK, TokenResponse{Token: token})
}

// (POST /auth/register).
func (s *Server) PostAuthRegister(w http.ResponseWriter, r *http.Request) {
	var req authservice.RegisterRequest

	if !decode(w, r, &req) {
		return
	}

	token, err := s.authService.Register(r.Context(), req)
	if err != nil {
		s.fail(w, fmt.Errorf("register error: %w", err))

		return
	}

	writeData(w, http.StatusCreated, TokenResponse{Token: token})
}

// (POST /auth/logout).
func (s *Server) PostAuthLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authService.Logout(r.Context(), tokenFrom(r.Context())); err != nil {
		s.fail(w, fmt.Errorf("logout error: %w", err))

		return
	}

	writeData(w, http.StatusOK, nil)
}

// (GET /auth/me).
func (s *Server) GetAuthMe(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	u, err := s.authService.Me(r.Context(), p)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, u)
}

// (PUT /auth/password).
func (s *Server) PutAuthPassword(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var req authservice.ChangePasswordRequest

	if !decode(w, r, &req) {
		return
	}

	if err := s.authService.ChangePassword(r.Context(), p, req); err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, nil)
}

// (GET /dashboard).
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	d, err := s.dashboardService.Dashboard(r.Context(), p)
	if err != nil {
		s.fail(w, err)

		return
	}

	writeData(w, http.StatusOK, d)
}
