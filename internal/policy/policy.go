// Package policy decides, per row and per operation, whether a caller may
// read or write it. Decisions depend only on the caller's identity, the
// caller's roles and the row's owner column.
package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"campus_hub/internal/models"
)

// ErrDenied is returned when a rule rejects the caller.
var ErrDenied = errors.New("permission denied")

// Resource names a guarded table.
type Resource string

const (
	Profiles     Resource = "profiles"
	Roles        Resource = "user_roles"
	TravelPosts  Resource = "travel_posts"
	Emergencies  Resource = "emergency_requests"
	Errands      Resource = "errand_requests"
	CarpoolRides Resource = "carpool_rides"
	ActivityLogs Resource = "activity_logs"
)

// Operation is the kind of access being checked.
type Operation string

const (
	Select Operation = "select"
	Insert Operation = "insert"
	Update Operation = "update"
	Delete Operation = "delete"
)

// Rule is a row predicate.
type Rule int

const (
	Deny Rule = iota
	Allow
	Authenticated
	Owner
	Admin
	OwnerOrAdmin
)

// RoleChecker answers hasRole(user, role). Implementations must read the
// role table directly, never through this package, or every admin check
// would recurse into the role table's own rules.
type RoleChecker interface {
	HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error)
}

var table = map[Resource]map[Operation]Rule{
	Profiles: {
		Select: Owner,
		Update: Owner,
	},
	Roles: {
		Select: Owner,
	},
	TravelPosts: {
		Select: Authenticated,
		Insert: Owner,
		Update: Owner,
		Delete: Owner,
	},
	Emergencies: {
		Select: OwnerOrAdmin,
		Insert: Owner,
		Update: Admin,
		Delete: Admin,
	},
	Errands: {
		Select: Allow,
		Insert: Owner,
		Update: Owner,
		Delete: Owner,
	},
	CarpoolRides: {
		Select: Allow,
		Insert: Owner,
		Update: Owner,
		Delete: Owner,
	},
	ActivityLogs: {
		Select: OwnerOrAdmin,
		Insert: Allow,
	},
}

// RuleFor returns the rule guarding op on res. Missing entries deny.
func RuleFor(res Resource, op Operation) Rule {
	return table[res][op]
}

// Rules holds the switches that change the default table.
type Rules struct {
	// AllowHelperCompletion lets any signed-in caller move an errand from
	// open to completed. The update rule itself is unchanged.
	AllowHelperCompletion bool
}

// Authorizer evaluates the rule table for a caller.
type Authorizer struct {
	roles RoleChecker
	rules Rules
}

// New builds an Authorizer that asks roles for admin membership.
func New(roles RoleChecker, rules Rules) *Authorizer {
	return &Authorizer{roles: roles, rules: rules}
}

// Rules returns the switches the Authorizer was built with.
func (a *Authorizer) Rules() Rules {
	return a.rules
}

// Authorize returns nil when caller may perform op on a row of res owned by
// owner, ErrDenied when the rule rejects it, or the role lookup error.
// A zero caller is anonymous.
func (a *Authorizer) Authorize(ctx context.Context, caller uuid.UUID, res Resource, op Operation, owner uuid.UUID) error {
	ok, err := a.eval(ctx, RuleFor(res, op), caller, owner)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s on %s: %w", op, res, ErrDenied)
	}
	return nil
}

// AuthorizeCompletion guards the errand and carpool completion transitions.
// open reports whether the row is still open. The helper path only covers
// open -> completed; every other case falls back to the update rule.
func (a *Authorizer) AuthorizeCompletion(ctx context.Context, caller uuid.UUID, res Resource, owner uuid.UUID, open bool) error {
	if res == Errands && a.rules.AllowHelperCompletion && caller != uuid.Nil && open {
		return nil
	}
	return a.Authorize(ctx, caller, res, Update, owner)
}

// IsAdmin is hasRole(caller, admin).
func (a *Authorizer) IsAdmin(ctx context.Context, caller uuid.UUID) (bool, error) {
	if caller == uuid.Nil {
		return false, nil
	}
	return a.roles.HasRole(ctx, caller, models.RoleAdmin)
}

func (a *Authorizer) eval(ctx context.Context, rule Rule, caller, owner uuid.UUID) (bool, error) {
	isOwner := caller != uuid.Nil && caller == owner
	switch rule {
	case Allow:
		return true, nil
	case Authenticated:
		return caller != uuid.Nil, nil
	case Owner:
		return isOwner, nil
	case Admin:
		return a.IsAdmin(ctx, caller)
	case OwnerOrAdmin:
		if isOwner {
			return true, nil
		}
		return a.IsAdmin(ctx, caller)
	default:
		return false, nil
	}
}

// Scope is what a list query may return.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAll
)

// SelectScope turns the select rule for res into a row filter for list
// queries, so a listing never returns a row Authorize would refuse.
func (a *Authorizer) SelectScope(ctx context.Context, caller uuid.UUID, res Resource) (Scope, error) {
	switch RuleFor(res, Select) {
	case Allow:
		return ScopeAll, nil
	case Authenticated:
		if caller == uuid.Nil {
			return ScopeNone, nil
		}
		return ScopeAll, nil
	case Owner:
		if caller == uuid.Nil {
			return ScopeNone, nil
		}
		return ScopeOwn, nil
	case Admin, OwnerOrAdmin:
		admin, err := a.IsAdmin(ctx, caller)
		if err != nil {
			return ScopeNone, err
		}
		if admin {
			return ScopeAll, nil
		}
		if caller == uuid.Nil || RuleFor(res, Select) == Admin {
			return ScopeNone, nil
		}
		return ScopeOwn, nil
	default:
		return ScopeNone, nil
	}
}
