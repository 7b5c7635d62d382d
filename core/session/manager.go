package session

import (
	"context"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/shulehub/shule/core"
)

var (
	// ErrLoginInFlight guards duplicate login submissions; other operations
	// carry no such guard.
	ErrLoginInFlight = errors.New("a login request is already in progress")

	nowFunc = time.Now // mockable
)

type (
	// LoginService exchanges credentials for a full user record (incl. token).
	// Implemented by the api auth service.
	LoginService interface {
		Login(ctx context.Context, email, password string) (User, error)
	}

	// Manager is the process-wide source of truth for "who is logged in and
	// what can they do". It rehydrates from the Store on construction and keeps
	// memory and storage in sync on login/logout.
	Manager struct {
		mu      sync.Mutex
		store   Store
		auth    LoginService
		log     core.Logger
		user    *User
		loading bool
	}
)

func NewManager(store Store, auth LoginService, log core.Logger) *Manager {
	m := &Manager{store: store, auth: auth, log: log}
	if usr := store.Load(); usr != nil {
		if tokenExpired(usr.Token) {
			// a stale session is indistinguishable from none; drop it
			if err := store.Clear(); err != nil {
				log.Warn("clearing expired session", err)
			}
		} else {
			m.user = usr
		}
	}
	return m
}

// Current returns the authenticated user, or ok=false when the session is
// unauthenticated. Callers must never assume a user is present.
func (m *Manager) Current() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return User{}, false
	}
	return *m.user, true
}

// Loading reports whether a login call is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Login authenticates against the backend and, on success, persists the
// returned user record to memory and durable storage. Ordinary authentication
// failures come back as a *core.APIError carrying the backend's message; they
// are reported, never panicked, and leave existing storage untouched.
func (m *Manager) Login(ctx context.Context, email, password string) (User, error) {
	m.mu.Lock()
	if m.loading {
		m.mu.Unlock()
		return User{}, ErrLoginInFlight
	}
	m.loading = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	usr, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Save(usr); err != nil {
		return User{}, errors.Wrap(err, "persisting session")
	}
	m.user = &usr
	return usr, nil
}

// Logout clears the in-memory state and durable storage synchronously.
// Server-side revocation, if any, is the backend's concern.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = nil
	return m.store.Clear()
}

// tokenExpired inspects the exp claim without verifying the signature; the
// client holds no signing key and only needs to drop obviously dead sessions.
// Opaque (non-JWT) tokens are assumed live and left for the backend to judge.
func tokenExpired(token string) bool {
	if token == "" {
		return true
	}
	claims := new(jwt.StandardClaims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt > 0 && nowFunc().Unix() >= claims.ExpiresAt
}
