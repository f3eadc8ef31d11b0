package memory

import (
	"context"
	"sync"

	"github.com/aretw0/localsettings/pkg/domain"
)

// Store implements ports.SettingsStore in memory.
// Safe for concurrent use. Snapshots are values, so no copy on read is needed.
type Store struct {
	data map[string]domain.Settings
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Settings),
	}
}

// Save persists the snapshot in memory.
func (s *Store) Save(ctx context.Context, account string, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[account] = settings
	return nil
}

// Load retrieves the snapshot from memory.
func (s *Store) Load(ctx context.Context, account string) (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.data[account]
	if !ok {
		return domain.Settings{}, domain.ErrProfileNotFound
	}
	return settings, nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, account)
	return nil
}

// List returns the accounts with stored settings.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]string, 0, len(s.data))
	for id := range s.data {
		accounts = append(accounts, id)
	}
	return accounts, nil
}
