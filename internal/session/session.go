// Package session owns the authentication token. It is created once at app
// start and injected into everything that needs the token; no other
// component writes it.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Authenticator exchanges credentials for a token. *api.Client satisfies
// this.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Manager holds the current token and its durable copy. Reads happen from
// command goroutines, so access is guarded.
type Manager struct {
	auth  Authenticator
	store *Store
	log   *slog.Logger

	mu    sync.RWMutex
	token string
}

// NewManager builds a manager and restores any persisted token so a prior
// session survives restart.
func NewManager(auth Authenticator, store *Store, logger *slog.Logger) (*Manager, error) {
	m := &Manager{auth: auth, store: store, log: logger}
	if store != nil {
		token, err := store.Load()
		if err != nil {
			return nil, fmt.Errorf("restore session: %w", err)
		}
		m.token = token
		if token != "" {
			logger.Info("session restored")
		}
	}
	return m, nil
}

// Login authenticates and persists the token on success. The error
// distinguishes rejected credentials (api.ErrInvalidCredentials) from
// transport failure; nothing is persisted on any failure.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	token, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	if m.store != nil {
		if err := m.store.Save(token); err != nil {
			m.log.Warn("persist token", "err", err)
		}
	}
	m.log.Info("login succeeded", "user", username)
	return nil
}

// Logout clears the token in memory and on disk.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			m.log.Warn("clear token", "err", err)
		}
	}
	m.log.Info("logged out")
}

// Token returns the current token, "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// IsAuthenticated reports whether a token is held. Token presence alone
// gates access to protected views.
func (m *Manager) IsAuthenticated() bool {
	return m.Token() != ""
}
