package permissionservice

import (
	"context"
	"strings"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
)

// TaskInProject is the object voted on for task permissions; the project scopes access.
type TaskInProject struct {
	Task    models.Task
	Project models.Project
}

func hasPrefix(perm Permission, subject string) bool {
	return strings.HasPrefix(string(perm), subject+".")
}

func allow(ok bool) Decision {
	if ok {
		return Grant
	}

	return Deny
}

type UserVoter struct {
	h Hierarchy
}

func (v UserVoter) Supports(perm Permission, object any) bool {
	_, ok := object.(models.User)

	return ok && hasPrefix(perm, "user")
}

func (v UserVoter) Vote(_ context.Context, p models.Principal, perm Permission, object any) Decision {
	u, _ := object.(models.User)
	self := u.ID == p.UserID

	switch perm { //nolint:exhaustive
	case UserView:
		if self && v.h.HasPermission(p.Role, UserViewSelf) {
			return Grant
		}

		return allow(v.h.HasPermission(p.Role, UserView))
	case UserEdit:
		if self && v.h.HasPermission(p.Role, UserEditSelf) {
			return Grant
		}

		return allow(v.h.HasPermission(p.Role, UserEdit) && v.h.IsGranted(p.Role, u.Role))
	case UserDelete, UserChangeRole:
		if self {
			return Deny
		}

		return allow(v.h.HasPermission(p.Role, perm) && v.h.IsGranted(p.Role, u.Role))
	}

	return Abstain
}

type CustomerVoter struct {
	h Hierarchy
}

func (v CustomerVoter) Supports(perm Permission, object any) bool {
	_, ok := object.(models.Customer)

	return ok && hasPrefix(perm, "customer")
}

func (v CustomerVoter) Vote(_ context.Context, p models.Principal, perm Permission, object any) Decision {
	c, _ := object.(models.Customer)

	if !v.h.HasPermission(p.Role, perm) {
		return Deny
	}

	if p.Role == models.RoleCustomer {
		return allow(perm == CustomerView && p.CustomerID != nil && *p.CustomerID == c.ID)
	}

	return Grant
}

type ProjectVoter struct {
	h Hierarchy
}

func (v ProjectVoter) Supports(perm Permission, object any) bool {
	_, ok := object.(models.Project)

	return ok && hasPrefix(perm, "project")
}

func (v ProjectVoter) Vote(_ context.Context, p models.Principal, perm Permission, object any) Decision {
	pr, _ := object.(models.Project)

	if !v.h.HasPermission(p.Role, perm) {
		return Deny
	}

	if v.h.HasPermission(p.Role, ProjectListAll) {
		return Grant
	}

	switch perm { //nolint:exhaustive
	case ProjectView:
		if p.Role == models.RoleCustomer {
			return allow(pr.BelongsToCustomer(p.CustomerID))
		}

		return allow(pr.Participates(p.UserID))
	case ProjectEdit, ProjectManageMembers:
		return allow(pr.IsManager(p.UserID))
	}

	return Deny
}

type TaskVoter struct {
	h Hierarchy
}

func (v TaskVoter) Supports(perm Permission, object any) bool {
	switch object.(type) {
	case TaskInProject:
		return hasPrefix(perm, "task")
	case models.Project:
		return perm == TaskCreate
	}

	return false
}

func (v TaskVoter) Vote(_ context.Context, p models.Principal, perm Permission, object any) Decision {
	if !v.h.HasPermission(p.Role, perm) {
		return Deny
	}

	if v.h.HasPermission(p.Role, ProjectListAll) {
		return Grant
	}

	if pr, ok := object.(models.Project); ok {
		return allow(pr.Participates(p.UserID))
	}

	tp, _ := object.(TaskInProject)
	manager := tp.Project.IsManager(p.UserID)
	// assignee rights lapse once the user leaves the project
	assignee := tp.Task.IsAssignee(p.UserID) && tp.Project.Participates(p.UserID)

	switch perm { //nolint:exhaustive
	case TaskView:
		if p.Role == models.RoleCustomer {
			return allow(tp.Project.BelongsToCustomer(p.CustomerID))
		}

		return allow(tp.Project.Participates(p.UserID))
	case TaskEdit:
		return allow(manager)
	case TaskChangeStatus:
		return allow(manager || assignee)
	case TaskAssign, TaskDelete:
		return allow(manager)
	}

	return Deny
}

type ParameterVoter struct {
	h Hierarchy
}

func (v ParameterVoter) Supports(perm Permission, object any) bool {
	_, ok := object.(models.Parameter)

	return ok && hasPrefix(perm, "parameter")
}

func (v ParameterVoter) Vote(_ context.Context, p models.Principal, perm Permission, _ any) Decision {
	return allow(v.h.HasPermission(p.Role, perm))
}
