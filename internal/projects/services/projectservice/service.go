package projectservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/validation"
	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/projectrepo"
	"github.com/Leopold1975/projects_control/internal/projects/repository/userrepo"
	ps "github.com/Leopold1975/projects_control/internal/projects/services/permissionservice"
)

var (
	ErrUnknownStatus  = fmt.Errorf("%w: unknown project status", apperr.ErrInvalid)
	ErrDates          = fmt.Errorf("%w: end date precedes start date", apperr.ErrInvalid)
	ErrBadManager     = fmt.Errorf("%w: manager must be an active user allowed to manage projects", apperr.ErrInvalid)
	ErrBadMember      = fmt.Errorf("%w: member must be an active staff user", apperr.ErrInvalid)
	ErrManagerIsFixed = fmt.Errorf("%w: manager is not a member to remove", apperr.ErrConflict)
)

type ProjectService struct {
	projectRepo Repository
	userRepo    UserRepository
	access      Access
	now         func() time.Time
}

type Repository interface {
	CreateProject(context.Context, models.Project) (int64, error)
	GetProject(context.Context, int64) (models.Project, error)
	ListProjects(context.Context, projectrepo.ListProjectsRequest) ([]models.Project, error)
	UpdateProject(context.Context, models.Project) error
	DeleteProject(context.Context, int64) error
	AddMember(ctx context.Context, projectID, userID int64) error
	RemoveMember(ctx context.Context, projectID, userID int64) error
}

type UserRepository interface {
	GetUser(context.Context, int64) (models.User, error)
}

type Access interface {
	DenyUnlessGranted(ctx context.Context, p models.Principal, perm ps.Permission, object any) error
	IsGranted(ctx context.Context, p models.Principal, perm ps.Permission, object any) bool
}

func New(projectRepo Repository, userRepo UserRepository, access Access) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		access:      access,
		now:         time.Now,
	}
}

func mapRepoError(err error, where string) error {
	switch {
	case errors.Is(err, projectrepo.ErrNotFound), errors.Is(err, projectrepo.ErrMemberNotFound):
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	case errors.Is(err, projectrepo.ErrInvalidRef):
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	return fmt.Errorf("%s error: %w", where, err)
}

func (pss *ProjectService) ListProjects(ctx context.Context, p models.Principal,
	req ListProjectsRequest,
) ([]models.Project, error) {
	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ProjectList, nil); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	repoReq := projectrepo.ListProjectsRequest{
		CustomerID:    req.CustomerID,
		Status:        req.Status,
		ParticipantID: req.MemberID,
		Search:        req.Search,
		Offset:        req.Offset,
		Limit:         req.Limit,
	}

	switch {
	case pss.access.IsGranted(ctx, p, ps.ProjectListAll, nil):
	case p.Role == models.RoleCustomer:
		if p.CustomerID == nil {
			return []models.Project{}, nil
		}

		repoReq.CustomerID = p.CustomerID
	default:
		repoReq.ParticipantID = &p.UserID
	}

	projects, err := pss.projectRepo.ListProjects(ctx, repoReq)
	if err != nil {
		return nil, mapRepoError(err, "list projects")
	}

	return projects, nil
}

func (pss *ProjectService) GetProject(ctx context.Context, p models.Principal, id int64) (models.Project, error) {
	pr, err := pss.projectRepo.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, mapRepoError(err, "get project")
	}

	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ProjectView, pr); err != nil {
		return models.Project{}, err //nolint:wrapcheck
	}

	return pr, nil
}

func (pss *ProjectService) activeUser(ctx context.Context, id int64) (models.User, bool, error) {
	u, err := pss.userRepo.GetUser(ctx, id)
	if errors.Is(err, userrepo.ErrNotFound) {
		return models.User{}, false, nil
	} else if err != nil {
		return models.User{}, false, fmt.Errorf("get user error: %w", err)
	}

	return u, u.Active, nil
}

func (pss *ProjectService) checkManager(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}

	u, ok, err := pss.activeUser(ctx, *id)
	if err != nil {
		return err
	}

	if !ok || !pss.access.IsGranted(ctx, u.Principal(), ps.ProjectEdit, nil) {
		return ErrBadManager
	}

	return nil
}

func (pss *ProjectService) checkMember(ctx context.Context, id int64) error {
	u, ok, err := pss.activeUser(ctx, id)
	if err != nil {
		return err
	}

	// members work on tasks, so they need the staff task permissions
	if !ok || !pss.access.IsGranted(ctx, u.Principal(), ps.TaskChangeStatus, nil) {
		return ErrBadMember
	}

	return nil
}

func (pss *ProjectService) apply(ctx context.Context, pr *models.Project, req ProjectRequest) error {
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	if req.Status != "" && !req.Status.Valid() {
		return ErrUnknownStatus
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return ErrDates
	}

	if err := pss.checkManager(ctx, req.ManagerID); err != nil {
		return err
	}

	pr.Name = req.Name
	pr.Description = req.Description
	pr.CustomerID = req.CustomerID
	pr.ManagerID = req.ManagerID
	pr.StartDate = req.StartDate
	pr.EndDate = req.EndDate

	if req.Status != "" {
		pr.Status = req.Status
	}

	return nil
}

func (pss *ProjectService) CreateProject(ctx context.Context, p models.Principal,
	req ProjectRequest,
) (models.Project, error) {
	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ProjectCreate, nil); err != nil {
		return models.Project{}, err //nolint:wrapcheck
	}

	// a manager creating a project without naming one runs it
	if req.ManagerID == nil && p.Role == models.RoleProjectManager {
		req.ManagerID = &p.UserID
	}

	pr := models.Project{Status: models.ProjectPlanned} //nolint:exhaustruct

	if err := pss.apply(ctx, &pr, req); err != nil {
		return models.Project{}, err
	}

	for _, id := range req.MemberIDs {
		if pr.IsManager(id) || pr.IsMember(id) {
			continue
		}

		if err := pss.checkMember(ctx, id); err != nil {
			return models.Project{}, err
		}

		pr.MemberIDs = append(pr.MemberIDs, id)
	}

	now := pss.now()
	pr.CreatedAt = now
	pr.UpdatedAt = now

	id, err := pss.projectRepo.CreateProject(ctx, pr)
	if err != nil {
		return models.Project{}, mapRepoError(err, "create project")
	}

	pr.ID = id

	return pr, nil
}

func (pss *ProjectService) UpdateProject(ctx context.Context, p models.Principal, id int64,
	req ProjectRequest,
) (models.Project, error) {
	pr, err := pss.projectRepo.GetProject(ctx, id)
	if err != nil {
		return models.Project{}, mapRepoError(err, "get project")
	}

	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ProjectEdit, pr); err != nil {
		return models.Project{}, err //nolint:wrapcheck
	}

	if err := pss.apply(ctx, &pr, req); err != nil {
		return models.Project{}, err
	}

	pr.UpdatedAt = pss.now()

	if err := pss.projectRepo.UpdateProject(ctx, pr); err != nil {
		return models.Project{}, mapRepoError(err, "update project")
	}

	return pr, nil
}

func (pss *ProjectService) DeleteProject(ctx context.Context, p models.Principal, id int64) error {
	pr, err := pss.projectRepo.GetProject(ctx, id)
	if err != nil {
		return mapRepoError(err, "get project")
	}

	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ProjectDelete, pr); err != nil {
		return err //nolint:wrapcheck
	}

	if err := pss.projectRepo.DeleteProject(ctx, id); err != nil {
		return mapRepoError(err, "delete project")
	}

	return nil
}

func (pss *ProjectService) AddMember(ctx context.Context, p models.Principal, projectID int64,
	req MemberRequest,
) (models.Project, error) {
	if err := validation.Struct(req); err != nil {
		return models.Project{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	pr, err := pss.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return models.Project{}, mapRepoError(err, "get project")
	}

	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ProjectManageMembers, pr); err != nil {
		return models.Project{}, err //nolint:wrapcheck
	}

	if pr.Participates(req.UserID) {
		return pr, nil
	}

	if err := pss.checkMember(ctx, req.UserID); err != nil {
		return models.Project{}, err
	}

	if err := pss.projectRepo.AddMember(ctx, projectID, req.UserID); err != nil {
		return models.Project{}, mapRepoError(err, "add member")
	}

	pr.MemberIDs = append(pr.MemberIDs, req.UserID)

	return pr, nil
}

func (pss *ProjectService) RemoveMember(ctx context.Context, p models.Principal, projectID, userID int64,
) (models.Project, error) {
	pr, err := pss.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return models.Project{}, mapRepoError(err, "get project")
	}

	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ProjectManageMembers, pr); err != nil {
		return models.Project{}, err //nolint:wrapcheck
	}

	if pr.IsManager(userID) && !pr.IsMember(userID) {
		return models.Project{}, ErrManagerIsFixed
	}

	if err := pss.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		return models.Project{}, mapRepoError(err, "remove member")
	}

	members := make([]int64, 0, len(pr.MemberIDs))

	for _, id := range pr.MemberIDs {
		if id != userID {
			members = append(members, id)
		}
	}

	pr.MemberIDs = members

	return pr, nil
}
