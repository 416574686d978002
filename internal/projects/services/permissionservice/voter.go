package permissionservice

import (
	"context"
	"fmt"

	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
)

var ErrAccessDenied = fmt.Errorf("%w: access denied", apperr.ErrForbidden)

type Decision int

const (
	Abstain Decision = iota
	Grant
	Deny
)

func (d Decision) String() string {
	switch d {
	case Grant:
		return "grant"
	case Deny:
		return "deny"
	default:
		return "abstain"
	}
}

// Voter decides a single permission on a single kind of object.
type Voter interface {
	Supports(perm Permission, object any) bool
	Vote(ctx context.Context, p models.Principal, perm Permission, object any) Decision
}

// AccessManager combines the role hierarchy with the voters using an affirmative strategy.
type AccessManager struct {
	hierarchy Hierarchy
	voters    []Voter
}

func New(h Hierarchy, voters ...Voter) *AccessManager {
	return &AccessManager{
		hierarchy: h,
		voters:    voters,
	}
}

// NewDefault wires the default hierarchy with one voter per entity type.
func NewDefault() *AccessManager {
	h := DefaultHierarchy()

	return New(h,
		UserVoter{h},
		CustomerVoter{h},
		ProjectVoter{h},
		TaskVoter{h},
		ParameterVoter{h},
	)
}

func (am *AccessManager) Hierarchy() Hierarchy {
	return am.hierarchy
}

func (am *AccessManager) IsGranted(ctx context.Context, p models.Principal, perm Permission, object any) bool {
	denied := false

	for _, v := range am.voters {
		if !v.Supports(perm, object) {
			continue
		}

		switch v.Vote(ctx, p, perm, object) {
		case Grant:
			return true
		case Deny:
			denied = true
		case Abstain:
		}
	}

	if denied {
		return false
	}

	return am.hierarchy.HasPermission(p.Role, perm)
}

func (am *AccessManager) DenyUnlessGranted(ctx context.Context, p models.Principal, perm Permission, object any) error {
	if !am.IsGranted(ctx, p, perm, object) {
		return fmt.Errorf("%w: %s", ErrAccessDenied, perm)
	}

	return nil
}

// CanAssignRole reports whether p may give role to somebody.
func (am *AccessManager) CanAssignRole(ctx context.Context, p models.Principal, role models.Role) bool {
	return am.hierarchy.HasPermission(p.Role, UserChangeRole) && am.hierarchy.IsGranted(p.Role, role)
}
