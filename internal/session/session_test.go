package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	mgr := NewManager(store, "test", zerolog.Nop())
	return mgr.Open("s1"), store
}

func TestFreshSessionDefaults(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	assert.False(t, s.IsAuthenticated(ctx))
	assert.Equal(t, RolePatient, s.CurrentRole(ctx))
	assert.Equal(t, "", s.Email(ctx))
}

func TestUnknownStoredRoleReadsAsPatient(t *testing.T) {
	ctx := context.Background()
	for _, stored := range []string{"", "root", "Doctor", "ADMIN", " patient", "nurse"} {
		t.Run(stored, func(t *testing.T) {
			s, store := newTestSession(t)
			require.NoError(t, store.Set(ctx, map[string]string{"test:s1:userRole": stored}))
			assert.Equal(t, RolePatient, s.CurrentRole(ctx))
		})
	}
}

func TestAuthenticatedFlagRequiresLiteralTrue(t *testing.T) {
	ctx := context.Background()
	for _, stored := range []string{"TRUE", "1", "yes", "true ", ""} {
		s, store := newTestSession(t)
		require.NoError(t, store.Set(ctx, map[string]string{"test:s1:isAuthenticated": stored}))
		assert.False(t, s.IsAuthenticated(ctx), "stored %q", stored)
	}
}

func TestLoginSetsAllFlags(t *testing.T) {
	ctx := context.Background()
	for _, role := range Roles {
		t.Run(role.String(), func(t *testing.T) {
			s, _ := newTestSession(t)
			require.NoError(t, s.Login(ctx, role, "user@example.com"))

			assert.True(t, s.IsAuthenticated(ctx))
			assert.Equal(t, role, s.CurrentRole(ctx))
			assert.Equal(t, "user@example.com", s.Email(ctx))
		})
	}
}

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)
	require.NoError(t, s.Login(ctx, RoleDoctor, "d@x.com"))

	flags := s.Flags(ctx)
	assert.Equal(t, Flags{IsAuthenticated: true, Role: RoleDoctor, Email: "d@x.com"}, flags)
}

func TestLogoutClearsFlags(t *testing.T) {
	ctx := context.Background()
	s, store := newTestSession(t)
	require.NoError(t, s.Login(ctx, RoleAdmin, "a@x.com"))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated(ctx))
	assert.Equal(t, RolePatient, s.CurrentRole(ctx))
	assert.Equal(t, "", s.Email(ctx))
	assert.Equal(t, 0, store.Len())
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	once, _ := newTestSession(t)
	require.NoError(t, once.Login(ctx, RoleDoctor, "d@x.com"))
	require.NoError(t, once.Logout(ctx))

	twice, _ := newTestSession(t)
	require.NoError(t, twice.Login(ctx, RoleDoctor, "d@x.com"))
	require.NoError(t, twice.Logout(ctx))
	require.NoError(t, twice.Logout(ctx))

	assert.Equal(t, once.Flags(ctx), twice.Flags(ctx))
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager(NewMemoryStore(), "", zerolog.Nop())
	a, b := mgr.Open("a"), mgr.Open("b")

	require.NoError(t, a.Login(ctx, RoleAdmin, "a@x.com"))

	assert.True(t, a.IsAuthenticated(ctx))
	assert.False(t, b.IsAuthenticated(ctx))
	assert.Equal(t, RolePatient, b.CurrentRole(ctx))
}

type brokenStore struct{}

var errBroken = errors.New("store offline")

func (brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (brokenStore) Set(context.Context, map[string]string) error      { return errBroken }
func (brokenStore) Delete(context.Context, ...string) error           { return errBroken }

func TestStoreFailures(t *testing.T) {
	ctx := context.Background()
	s := NewManager(brokenStore{}, "x", zerolog.Nop()).Open("s")

	assert.False(t, s.IsAuthenticated(ctx))
	assert.Equal(t, RolePatient, s.CurrentRole(ctx))
	assert.ErrorIs(t, s.Login(ctx, RoleDoctor, "d@x.com"), errBroken)
	assert.ErrorIs(t, s.Logout(ctx), errBroken)
}
