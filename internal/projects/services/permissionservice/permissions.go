package permissionservice

import "github.com/Leopold1975/projects_control/internal/projects/domain/models"

type Permission string

const (
	UserList       Permission = "user.list"
	UserView       Permission = "user.view"
	UserCreate     Permission = "user.create"
	UserEdit       Permission = "user.edit"
	UserDelete     Permission = "user.delete"
	UserChangeRole Permission = "user.change_role"
	UserViewSelf   Permission = "user.view_self"
	UserEditSelf   Permission = "user.edit_self"

	CustomerList   Permission = "customer.list"
	CustomerView   Permission = "customer.view"
	CustomerCreate Permission = "customer.create"
	CustomerEdit   Permission = "customer.edit"
	CustomerDelete Permission = "customer.delete"

	ProjectList          Permission = "project.list"
	ProjectListAll       Permission = "project.list_all"
	ProjectView          Permission = "project.view"
	ProjectCreate        Permission = "project.create"
	ProjectEdit          Permission = "project.edit"
	ProjectDelete        Permission = "project.delete"
	ProjectManageMembers Permission = "project.manage_members"

	TaskList         Permission = "task.list"
	TaskView         Permission = "task.view"
	TaskCreate       Permission = "task.create"
	TaskEdit         Permission = "task.edit"
	TaskDelete       Permission = "task.delete"
	TaskAssign       Permission = "task.assign"
	TaskChangeStatus Permission = "task.change_status"

	ParameterList   Permission = "parameter.list"
	ParameterView   Permission = "parameter.view"
	ParameterCreate Permission = "parameter.create"
	ParameterEdit   Permission = "parameter.edit"
	ParameterDelete Permission = "parameter.delete"

	DashboardView Permission = "dashboard.view"
)

func AllPermissions() []Permission {
	return []Permission{
		UserList, UserView, UserCreate, UserEdit, UserDelete, UserChangeRole, UserViewSelf, UserEditSelf,
		CustomerList, CustomerView, CustomerCreate, CustomerEdit, CustomerDelete,
		ProjectList, ProjectListAll, ProjectView, ProjectCreate, ProjectEdit, ProjectDelete, ProjectManageMembers,
		TaskList, TaskView, TaskCreate, TaskEdit, TaskDelete, TaskAssign, TaskChangeStatus,
		ParameterList, ParameterView, ParameterCreate, ParameterEdit, ParameterDelete,
		DashboardView,
	}
}

// DefaultInheritance maps a role to the roles it directly inherits.
func DefaultInheritance() map[models.Role][]models.Role {
	return map[models.Role][]models.Role{
		models.RoleCustomer:       {models.RoleUser},
		models.RoleEmployee:       {models.RoleUser},
		models.RoleProjectManager: {models.RoleEmployee},
		models.RoleAdmin:          {models.RoleProjectManager, models.RoleCustomer},
		models.RoleSuperAdmin:     {models.RoleAdmin},
	}
}

// DefaultGrants maps a role to the permissions it holds on top of inherited ones.
func DefaultGrants() map[models.Role][]Permission {
	return map[models.Role][]Permission{
		models.RoleUser: {UserViewSelf, UserEditSelf, DashboardView},
		models.RoleCustomer: {
			CustomerView, ProjectList, ProjectView, TaskList, TaskView,
		},
		models.RoleEmployee: {
			UserList, UserView,
			CustomerList, CustomerView,
			ProjectList, ProjectView,
			TaskList, TaskView, TaskCreate, TaskEdit, TaskChangeStatus,
			ParameterList, ParameterView,
		},
		models.RoleProjectManager: {
			CustomerCreate, CustomerEdit,
			ProjectCreate, ProjectEdit, ProjectManageMembers,
			TaskAssign, TaskDelete,
		},
		models.RoleAdmin: {
			UserCreate, UserEdit, UserDelete, UserChangeRole,
			CustomerDelete,
			ProjectListAll, ProjectDelete,
			ParameterCreate, ParameterEdit, ParameterDelete,
		},
		models.RoleSuperAdmin: AllPermissions(),
	}
}
