package policy

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus_hub/internal/models"
)

type fakeRoles struct {
	admins map[uuid.UUID]bool
	calls  int
	err    error
}

func (f *fakeRoles) HasRole(_ context.Context, userID uuid.UUID, role string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return role == models.RoleAdmin && f.admins[userID], nil
}

func TestAuthorize(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	admin := uuid.New()
	anon := uuid.Nil

	tests := []struct {
		name   string
		res    Resource
		op     Operation
		caller uuid.UUID
		allow  bool
	}{
		{"profile select own", Profiles, Select, owner, true},
		{"profile select other", Profiles, Select, other, false},
		{"profile update own", Profiles, Update, owner, true},
		{"profile insert never", Profiles, Insert, owner, false},
		{"profile delete never", Profiles, Delete, owner, false},
		{"role select own", Roles, Select, owner, true},
		{"role select other", Roles, Select, other, false},
		{"role insert never", Roles, Insert, admin, false},
		{"role update never", Roles, Update, owner, false},
		{"travel select any signed in", TravelPosts, Select, other, true},
		{"travel select anonymous", TravelPosts, Select, anon, false},
		{"travel insert own", TravelPosts, Insert, owner, true},
		{"travel insert for someone else", TravelPosts, Insert, other, false},
		{"travel update other", TravelPosts, Update, other, false},
		{"travel delete admin not owner", TravelPosts, Delete, admin, false},
		{"emergency select own", Emergencies, Select, owner, true},
		{"emergency select admin", Emergencies, Select, admin, true},
		{"emergency select other", Emergencies, Select, other, false},
		{"emergency insert own", Emergencies, Insert, owner, true},
		{"emergency update owner", Emergencies, Update, owner, false},
		{"emergency update admin", Emergencies, Update, admin, true},
		{"emergency delete other", Emergencies, Delete, other, false},
		{"emergency delete admin", Emergencies, Delete, admin, true},
		{"errand select anonymous", Errands, Select, anon, true},
		{"errand update other", Errands, Update, other, false},
		{"errand update owner", Errands, Update, owner, true},
		{"carpool select other", CarpoolRides, Select, other, true},
		{"carpool delete other", CarpoolRides, Delete, other, false},
		{"carpool delete owner", CarpoolRides, Delete, owner, true},
		{"activity insert anonymous", ActivityLogs, Insert, anon, true},
		{"activity select own", ActivityLogs, Select, owner, true},
		{"activity select admin", ActivityLogs, Select, admin, true},
		{"activity select other", ActivityLogs, Select, other, false},
		{"activity update never", ActivityLogs, Update, owner, false},
		{"activity delete never", ActivityLogs, Delete, admin, false},
	}

	roles := &fakeRoles{admins: map[uuid.UUID]bool{admin: true}}
	a := New(roles, Rules{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Authorize(context.Background(), tt.caller, tt.res, tt.op, owner)
			if tt.allow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrDenied)
			}
		})
	}
}

func TestAuthorize_AnonymousNeverOwnsNullOwner(t *testing.T) {
	a := New(&fakeRoles{}, Rules{})
	err := a.Authorize(context.Background(), uuid.Nil, ActivityLogs, Select, uuid.Nil)
	assert.ErrorIs(t, err, ErrDenied)
}

func TestAuthorize_RoleLookupOnlyWhenNeeded(t *testing.T) {
	roles := &fakeRoles{}
	a := New(roles, Rules{})
	owner := uuid.New()

	require.NoError(t, a.Authorize(context.Background(), owner, Emergencies, Select, owner))
	require.NoError(t, a.Authorize(context.Background(), owner, TravelPosts, Update, owner))
	assert.Equal(t, 0, roles.calls)

	_ = a.Authorize(context.Background(), owner, Emergencies, Update, owner)
	assert.Equal(t, 1, roles.calls)

	_ = a.Authorize(context.Background(), uuid.Nil, Emergencies, Update, owner)
	assert.Equal(t, 1, roles.calls, "anonymous callers are never looked up")
}

func TestAuthorize_RoleLookupErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	a := New(&fakeRoles{err: boom}, Rules{})
	err := a.Authorize(context.Background(), uuid.New(), Emergencies, Update, uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrDenied)
}

func TestAuthorizeCompletion(t *testing.T) {
	owner := uuid.New()
	helper := uuid.New()
	ctx := context.Background()

	strict := New(&fakeRoles{}, Rules{})
	assert.NoError(t, strict.AuthorizeCompletion(ctx, owner, Errands, owner, true))
	assert.ErrorIs(t, strict.AuthorizeCompletion(ctx, helper, Errands, owner, true), ErrDenied)

	helping := New(&fakeRoles{}, Rules{AllowHelperCompletion: true})
	assert.NoError(t, helping.AuthorizeCompletion(ctx, owner, Errands, owner, true))
	assert.NoError(t, helping.AuthorizeCompletion(ctx, helper, Errands, owner, true))
	assert.ErrorIs(t, helping.AuthorizeCompletion(ctx, uuid.Nil, Errands, owner, true), ErrDenied)

	// a helper cannot re-complete a finished errand; the owner still can
	assert.ErrorIs(t, helping.AuthorizeCompletion(ctx, helper, Errands, owner, false), ErrDenied)
	assert.NoError(t, helping.AuthorizeCompletion(ctx, owner, Errands, owner, false))

	// the switch is errand-only
	assert.ErrorIs(t, helping.AuthorizeCompletion(ctx, helper, CarpoolRides, owner, true), ErrDenied)
}

func TestSelectScope(t *testing.T) {
	user := uuid.New()
	admin := uuid.New()
	a := New(&fakeRoles{admins: map[uuid.UUID]bool{admin: true}}, Rules{})
	ctx := context.Background()

	tests := []struct {
		res    Resource
		caller uuid.UUID
		want   Scope
	}{
		{TravelPosts, user, ScopeAll},
		{TravelPosts, uuid.Nil, ScopeNone},
		{Errands, uuid.Nil, ScopeAll},
		{CarpoolRides, user, ScopeAll},
		{Emergencies, user, ScopeOwn},
		{Emergencies, admin, ScopeAll},
		{Emergencies, uuid.Nil, ScopeNone},
		{ActivityLogs, user, ScopeOwn},
		{ActivityLogs, admin, ScopeAll},
		{Profiles, admin, ScopeOwn},
		{Roles, user, ScopeOwn},
	}
	for _, tt := range tests {
		got, err := a.SelectScope(ctx, tt.caller, tt.res)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s for %s", tt.res, tt.caller)
	}
}
