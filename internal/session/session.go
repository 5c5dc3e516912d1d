package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Flag names as they appear in storage.
const (
	KeyAuthenticated = "isAuthenticated"
	KeyRole          = "userRole"
	KeyEmail         = "userEmail"
)

const authenticatedValue = "true"

// Flags is a point-in-time read of a Session Flag Set.
type Flags struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Role            Role   `json:"userRole"`
	Email           string `json:"userEmail"`
}

// Manager hands out Sessions bound to one FlagStore.
type Manager struct {
	store  FlagStore
	prefix string
	log    zerolog.Logger
}

func NewManager(store FlagStore, prefix string, log zerolog.Logger) *Manager {
	if prefix == "" {
		prefix = "session"
	}
	return &Manager{store: store, prefix: prefix, log: log}
}

// Open returns the gate for one session ID. It does not touch storage.
func (m *Manager) Open(id string) *Session {
	return &Session{
		id:               id,
		store:            m.store,
		log:              m.log.With().Str("session_id", id).Logger(),
		keyAuthenticated: m.key(id, KeyAuthenticated),
		keyRole:          m.key(id, KeyRole),
		keyEmail:         m.key(id, KeyEmail),
	}
}

func (m *Manager) key(id, flag string) string {
	return fmt.Sprintf("%s:%s:%s", m.prefix, id, flag)
}

// Session is the role gate for a single session.
//
// Reads never fail: absent, malformed, or unreadable values fall back to
// the logged-out defaults. Writes report store errors.
type Session struct {
	id    string
	store FlagStore
	log   zerolog.Logger

	keyAuthenticated string
	keyRole          string
	keyEmail         string
}

func (s *Session) ID() string { return s.id }

func (s *Session) read(ctx context.Context, key string) string {
	v, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("session flag read failed")
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (s *Session) IsAuthenticated(ctx context.Context) bool {
	return s.read(ctx, s.keyAuthenticated) == authenticatedValue
}

func (s *Session) CurrentRole(ctx context.Context) Role {
	return RoleOrDefault(s.read(ctx, s.keyRole))
}

func (s *Session) Email(ctx context.Context) string {
	return s.read(ctx, s.keyEmail)
}

// Flags reads all three flags.
func (s *Session) Flags(ctx context.Context) Flags {
	return Flags{
		IsAuthenticated: s.IsAuthenticated(ctx),
		Role:            s.CurrentRole(ctx),
		Email:           s.Email(ctx),
	}
}

// Login sets all three flags. No credentials are checked.
func (s *Session) Login(ctx context.Context, role Role, email string) error {
	err := s.store.Set(ctx, map[string]string{
		s.keyAuthenticated: authenticatedValue,
		s.keyRole:          role.String(),
		s.keyEmail:         email,
	})
	if err != nil {
		return fmt.Errorf("login session %s: %w", s.id, err)
	}
	s.log.Debug().Str("role", role.String()).Msg("session logged in")
	return nil
}

// Logout removes all three flags. Calling it again is a no-op.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.keyAuthenticated, s.keyRole, s.keyEmail); err != nil {
		return fmt.Errorf("logout session %s: %w", s.id, err)
	}
	s.log.Debug().Msg("session logged out")
	return nil
}
