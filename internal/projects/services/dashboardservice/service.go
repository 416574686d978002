package dashboardservice

import (
	"context"
	"fmt"
	"time"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/customerrepo"
	"github.com/Leopold1975/projects_control/internal/projects/repository/projectrepo"
	"github.com/Leopold1975/projects_control/internal/projects/repository/taskrepo"
	ps "github.com/Leopold1975/projects_control/internal/projects/services/permissionservice"
)

type DashboardService struct {
	projects  ProjectCounter
	tasks     TaskCounter
	customers CustomerCounter
	access    Access
	now       func() time.Time
}

type ProjectCounter interface {
	CountProjectsByStatus(context.Context, projectrepo.ListProjectsRequest) (map[models.ProjectStatus]int, error)
}

type TaskCounter interface {
	CountTasksByStatus(context.Context, taskrepo.ListTasksRequest) (map[models.TaskStatus]int, error)
}

type CustomerCounter interface {
	CountCustomers(context.Context, customerrepo.ListCustomersRequest) (int, error)
}

type Access interface {
	DenyUnlessGranted(ctx context.Context, p models.Principal, perm ps.Permission, object any) error
	IsGranted(ctx context.Context, p models.Principal, perm ps.Permission, object any) bool
}

func New(projects ProjectCounter, tasks TaskCounter, customers CustomerCounter, access Access) *DashboardService {
	return &DashboardService{
		projects:  projects,
		tasks:     tasks,
		customers: customers,
		access:    access,
		now:       time.Now,
	}
}

// scope narrows the counters to what p may list: everything, its customer's records or its participations.
type scope struct {
	all        bool
	customerID *int64
	userID     *int64
}

func (ds *DashboardService) scope(ctx context.Context, p models.Principal) scope {
	switch {
	case ds.access.IsGranted(ctx, p, ps.ProjectListAll, nil):
		return scope{all: true} //nolint:exhaustruct
	case p.Role == models.RoleCustomer:
		return scope{customerID: p.CustomerID} //nolint:exhaustruct
	}

	return scope{userID: &p.UserID} //nolint:exhaustruct
}

func (s scope) empty() bool {
	return !s.all && s.customerID == nil && s.userID == nil
}

// Dashboard counts projects and tasks by status, overdue tasks and customers visible to p.
func (ds *DashboardService) Dashboard(ctx context.Context, p models.Principal) (models.Dashboard, error) {
	if err := ds.access.DenyUnlessGranted(ctx, p, ps.DashboardView, nil); err != nil {
		return models.Dashboard{}, err //nolint:wrapcheck
	}

	d := models.Dashboard{
		Projects:     make(map[models.ProjectStatus]int, len(models.ProjectStatuses)),
		Tasks:        make(map[models.TaskStatus]int, len(models.TaskStatuses)),
		OverdueTasks: 0,
		Customers:    0,
	}

	for _, s := range models.ProjectStatuses {
		d.Projects[s] = 0
	}

	for _, s := range models.TaskStatuses {
		d.Tasks[s] = 0
	}

	sc := ds.scope(ctx, p)
	if sc.empty() {
		return d, nil
	}

	if ds.access.IsGranted(ctx, p, ps.ProjectList, nil) {
		counts, err := ds.projects.CountProjectsByStatus(ctx, projectrepo.ListProjectsRequest{ //nolint:exhaustruct
			CustomerID:    sc.customerID,
			ParticipantID: sc.userID,
		})
		if err != nil {
			return models.Dashboard{}, fmt.Errorf("count projects error: %w", err)
		}

		for s, n := range counts {
			d.Projects[s] = n
		}
	}

	if ds.access.IsGranted(ctx, p, ps.TaskList, nil) {
		req := taskrepo.ListTasksRequest{ //nolint:exhaustruct
			CustomerID: sc.customerID,
			VisibleTo:  sc.userID,
		}

		counts, err := ds.tasks.CountTasksByStatus(ctx, req)
		if err != nil {
			return models.Dashboard{}, fmt.Errorf("count tasks error: %w", err)
		}

		for s, n := range counts {
			d.Tasks[s] = n
		}

		now := ds.now()
		req.DueBefore = &now

		overdue, err := ds.tasks.CountTasksByStatus(ctx, req)
		if err != nil {
			return models.Dashboard{}, fmt.Errorf("count overdue tasks error: %w", err)
		}

		for _, n := range overdue {
			d.OverdueTasks += n
		}
	}

	if err := ds.countCustomers(ctx, p, sc, &d); err != nil {
		return models.Dashboard{}, err
	}

	return d, nil
}

func (ds *DashboardService) countCustomers(ctx context.Context, p models.Principal, sc scope,
	d *models.Dashboard,
) error {
	req := customerrepo.ListCustomersRequest{} //nolint:exhaustruct

	switch {
	case ds.access.IsGranted(ctx, p, ps.CustomerList, nil):
	case sc.customerID != nil:
		req.ID = sc.customerID
	default:
		return nil
	}

	n, err := ds.customers.CountCustomers(ctx, req)
	if err != nil {
		return fmt.Errorf("count customers error: %w", err)
	}

	d.Customers = n

	return nil
}
