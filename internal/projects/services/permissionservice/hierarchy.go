package permissionservice

import (
	"slices"

	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
)

// Hierarchy resolves inherited roles and permissions. It is immutable after construction.
type Hierarchy struct {
	reachable   map[models.Role][]models.Role
	permissions map[models.Role]map[Permission]struct{}
}

func NewHierarchy(inheritance map[models.Role][]models.Role, grants map[models.Role][]Permission) Hierarchy {
	roles := make(map[models.Role]struct{})

	for r, parents := range inheritance {
		roles[r] = struct{}{}
		for _, p := range parents {
			roles[p] = struct{}{}
		}
	}

	for r := range grants {
		roles[r] = struct{}{}
	}

	h := Hierarchy{
		reachable:   make(map[models.Role][]models.Role, len(roles)),
		permissions: make(map[models.Role]map[Permission]struct{}, len(roles)),
	}

	for r := range roles {
		reach := resolve(r, inheritance)
		h.reachable[r] = reach

		perms := make(map[Permission]struct{})

		for _, rr := range reach {
			for _, p := range grants[rr] {
				perms[p] = struct{}{}
			}
		}

		h.permissions[r] = perms
	}

	return h
}

func DefaultHierarchy() Hierarchy {
	return NewHierarchy(DefaultInheritance(), DefaultGrants())
}

// resolve walks the inheritance graph breadth first. Cycles stop at visited roles.
func resolve(role models.Role, inheritance map[models.Role][]models.Role) []models.Role {
	visited := map[models.Role]struct{}{role: {}}
	order := []models.Role{role}

	for i := 0; i < len(order); i++ {
		for _, parent := range inheritance[order[i]] {
			if _, ok := visited[parent]; ok {
				continue
			}

			visited[parent] = struct{}{}
			order = append(order, parent)
		}
	}

	return order
}

// ReachableRoles returns role and every role it inherits. Unknown roles reach only themselves.
func (h Hierarchy) ReachableRoles(role models.Role) []models.Role {
	reach, ok := h.reachable[role]
	if !ok {
		return []models.Role{role}
	}

	return slices.Clone(reach)
}

func (h Hierarchy) Permissions(role models.Role) []Permission {
	perms := make([]Permission, 0, len(h.permissions[role]))
	for p := range h.permissions[role] {
		perms = append(perms, p)
	}

	slices.Sort(perms)

	return perms
}

func (h Hierarchy) HasPermission(role models.Role, perm Permission) bool {
	_, ok := h.permissions[role][perm]

	return ok
}

// IsGranted reports whether role reaches target through inheritance.
func (h Hierarchy) IsGranted(role, target models.Role) bool {
	return slices.Contains(h.reachable[role], target)
}
