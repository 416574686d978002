package server

import (
	"context"
	"time"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/services/authservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/parameterservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/projectservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/userservice"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)

	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req authservice.RegisterRequest) (string, error) {
	args := m.Called(ctx, req)

	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (models.Principal, error) {
	args := m.Called(ctx, token)

	return args.Get(0).(models.Principal), args.Error(1) //nolint:forcetypeassert
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, p models.Principal) (models.User, error) {
	args := m.Called(ctx, p)

	return args.Get(0).(models.User), args.Error(1) //nolint:forcetypeassert
}

func (m *MockAuthService) ChangePassword(ctx context.Context, p models.Principal,
	req authservice.ChangePasswordRequest,
) error {
	return m.Called(ctx, p, req).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, p models.Principal,
	req userservice.ListUsersRequest,
) ([]models.User, error) {
	args := m.Called(ctx, p, req)

	return args.Get(0).([]models.User), args.Error(1) //nolint:forcetypeassert
}

func (m *MockUserService) GetUser(ctx context.Context, p models.Principal, id int64) (models.User, error) {
	args := m.Called(ctx, p, id)

	return args.Get(0).(models.User), args.Error(1) //nolint:forcetypeassert
}

func (m *MockUserService) CreateUser(ctx context.Context, p models.Principal,
	req userservice.CreateUserRequest,
) (models.User, error) {
	args := m.Called(ctx, p, req)

	return args.Get(0).(models.User), args.Error(1) //nolint:forcetypeassert
}

func (m *MockUserService) UpdateUser(ctx context.Context, p models.Principal, id int64,
	req userservice.UpdateUserRequest,
) (models.User, error) {
	args := m.Called(ctx, p, id, req)

	return args.Get(0).(models.User), args.Error(1) //nolint:forcetypeassert
}

func (m *MockUserService) ChangeRole(ctx context.Context, p models.Principal, id int64,
	req userservice.ChangeRoleRequest,
) (models.User, error) {
	args := m.Called(ctx, p, id, req)

	return args.Get(0).(models.User), args.Error(1) //nolint:forcetypeassert
}

func (m *MockUserService) DeleteUser(ctx context.Context, p models.Principal, id int64) error {
	return m.Called(ctx, p, id).Error(0)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) ListProjects(ctx context.Context, p models.Principal,
	req projectservice.ListProjectsRequest,
) ([]models.Project, error) {
	args := m.Called(ctx, p, req)

	return args.Get(0).([]models.Project), args.Error(1) //nolint:forcetypeassert
}

func (m *MockProjectService) GetProject(ctx context.Context, p models.Principal, id int64) (models.Project, error) {
	args := m.Called(ctx, p, id)

	return args.Get(0).(models.Project), args.Error(1) //nolint:forcetypeassert
}

func (m *MockProjectService) CreateProject(ctx context.Context, p models.Principal,
	req projectservice.ProjectRequest,
) (models.Project, error) {
	args := m.Called(ctx, p, req)

	return args.Get(0).(models.Project), args.Error(1) //nolint:forcetypeassert
}

func (m *MockProjectService) UpdateProject(ctx context.Context, p models.Principal, id int64,
	req projectservice.ProjectRequest,
) (models.Project, error) {
	args := m.Called(ctx, p, id, req)

	return args.Get(0).(models.Project), args.Error(1) //nolint:forcetypeassert
}

func (m *MockProjectService) DeleteProject(ctx context.Context, p models.Principal, id int64) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockProjectService) AddMember(ctx context.Context, p models.Principal, id int64,
	req projectservice.MemberRequest,
) (models.Project, error) {
	args := m.Called(ctx, p, id, req)

	return args.Get(0).(models.Project), args.Error(1) //nolint:forcetypeassert
}

func (m *MockProjectService) RemoveMember(ctx context.Context, p models.Principal,
	projectID, userID int64,
) (models.Project, error) {
	args := m.Called(ctx, p, projectID, userID)

	return args.Get(0).(models.Project), args.Error(1) //nolint:forcetypeassert
}

type MockParameterService struct {
	mock.Mock
}

func (m *MockParameterService) ListParameters(ctx context.Context, p models.Principal,
	req parameterservice.ListParametersRequest,
) ([]models.Parameter, error) {
	args := m.Called(ctx, p, req)

	return args.Get(0).([]models.Parameter), args.Error(1) //nolint:forcetypeassert
}

func (m *MockParameterService) GetParameter(ctx context.Context, p models.Principal,
	id int64,
) (models.Parameter, error) {
	args := m.Called(ctx, p, id)

	return args.Get(0).(models.Parameter), args.Error(1) //nolint:forcetypeassert
}

func (m *MockParameterService) CreateParameter(ctx context.Context, p models.Principal,
	req parameterservice.ParameterRequest,
) (models.Parameter, error) {
	args := m.Called(ctx, p, req)

	return args.Get(0).(models.Parameter), args.Error(1) //nolint:forcetypeassert
}

func (m *MockParameterService) UpdateParameter(ctx context.Context, p models.Principal, id int64,
	req parameterservice.ParameterRequest,
) (models.Parameter, error) {
	args := m.Called(ctx, p, id, req)

	return args.Get(0).(models.Parameter), args.Error(1) //nolint:forcetypeassert
}

func (m *MockParameterService) DeleteParameter(ctx context.Context, p models.Principal, id int64) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockParameterService) Value(ctx context.Context, p models.Principal, key string,
	at *time.Time,
) (models.Parameter, error) {
	args := m.Called(ctx, p, key, at)

	return args.Get(0).(models.Parameter), args.Error(1) //nolint:forcetypeassert
}
