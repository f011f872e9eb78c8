package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
)

// Manager hands out one Store per user session. Stores are created
// lazily on first access and dropped on logout.
type Manager struct {
	mu     sync.Mutex
	svc    *portssvc.ServiceContainer
	stores map[string]*Store
}

// NewManager creates a manager backed by the given services.
func NewManager(svc *portssvc.ServiceContainer) *Manager {
	return &Manager{svc: svc, stores: make(map[string]*Store)}
}

// Get returns the store for userID, creating it if needed. The store
// is returned unloaded when new; callers decide whether to Load.
func (m *Manager) Get(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[userID]; ok {
		return s
	}
	s := NewStore(userID, m.svc)
	m.stores[userID] = s
	return s
}

// GetLoaded returns the store for userID, loading the snapshot first
// when this is the session's first access.
func (m *Manager) GetLoaded(ctx context.Context, userID string) (*Store, error) {
	s := m.Get(userID)
	if !s.Loaded() {
		if err := s.Load(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Warm loads the user's snapshot in the background so the first
// dashboard request after login hits a ready store. Failures are
// logged and retried on the next GetLoaded call.
func (m *Manager) Warm(userID string, logger *slog.Logger) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := m.GetLoaded(ctx, userID); err != nil {
			logger.Warn("Failed to warm session store",
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
		}
	}()
}

// Drop discards the cached store for userID.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, userID)
}
