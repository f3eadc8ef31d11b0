package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/localsettings/internal/logging"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock is held if its owner dies.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates settings access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.SettingsStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	hooks   domain.LifecycleHooks
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHooks registers lifecycle hooks notified of applied and rejected changes.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// NewManager creates a new Manager with the given persistence store.
func NewManager(store ports.SettingsStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		now:     time.Now,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(account) after unlocking.
func (m *Manager) acquire(account string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[account]
	if !exists {
		entry = &lockEntry{}
		m.locks[account] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(account string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[account]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, account)
	}
}

// Load retrieves the stored snapshot of an account.
// Returns domain.ErrProfileNotFound when nothing was stored.
func (m *Manager) Load(ctx context.Context, account string) (domain.Settings, error) {
	var settings domain.Settings
	err := m.WithLock(ctx, account, func(ctx context.Context) error {
		var err error
		settings, err = m.store.Load(ctx, account)
		return err
	})
	return settings, err
}

// LoadOrDefault returns the stored snapshot, or the defaults when the account
// has none. The defaults are not persisted.
func (m *Manager) LoadOrDefault(ctx context.Context, account string) (domain.Settings, error) {
	var settings domain.Settings
	err := m.WithLock(ctx, account, func(ctx context.Context) error {
		var err error
		settings, err = m.loadOrDefault(ctx, account)
		return err
	})
	return settings, err
}

func (m *Manager) loadOrDefault(ctx context.Context, account string) (domain.Settings, error) {
	settings, err := m.store.Load(ctx, account)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return domain.DefaultSettings(), nil
}

// Apply reduces one change into the account snapshot and persists the result.
func (m *Manager) Apply(ctx context.Context, account string, change domain.Change) (domain.Settings, error) {
	return m.Reduce(ctx, account, change.Path, func(domain.Settings) (domain.Value, error) {
		return change.Value, nil
	})
}

// Reduce computes the new value of path from the current snapshot and
// persists the result, all under the account lock. Errors from fn or from
// the reducer are reported to the rejection hook.
func (m *Manager) Reduce(ctx context.Context, account string, path domain.Path, fn func(current domain.Settings) (domain.Value, error)) (domain.Settings, error) {
	var next domain.Settings
	err := m.WithLock(ctx, account, func(ctx context.Context) error {
		current, err := m.loadOrDefault(ctx, account)
		if err != nil {
			return err
		}

		value, err := fn(current)
		if err == nil {
			next, err = domain.Apply(current, domain.Change{Path: path, Value: value})
		}
		if err != nil {
			m.Reject(ctx, account, path, err)
			return err
		}

		if err := m.store.Save(ctx, account, next); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		m.publish(ctx, account, &current, next)
		return nil
	})
	return next, err
}

// Replace overwrites the account snapshot with its normalized form.
func (m *Manager) Replace(ctx context.Context, account string, input domain.Settings) error {
	settings, err := domain.Normalize(input)
	if err != nil {
		m.Reject(ctx, account, nil, err)
		return err
	}
	return m.WithLock(ctx, account, func(ctx context.Context) error {
		current, err := m.loadOrDefault(ctx, account)
		if err != nil {
			return err
		}
		if err := m.store.Save(ctx, account, settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		m.publish(ctx, account, &current, settings)
		return nil
	})
}

// Reset removes the stored snapshot so the account falls back to the defaults.
func (m *Manager) Reset(ctx context.Context, account string) error {
	return m.WithLock(ctx, account, func(ctx context.Context) error {
		current, err := m.loadOrDefault(ctx, account)
		if err != nil {
			return err
		}
		if err := m.store.Delete(ctx, account); err != nil {
			return fmt.Errorf("failed to delete settings: %w", err)
		}
		m.publish(ctx, account, &current, domain.DefaultSettings())
		return nil
	})
}

// Delete removes the stored snapshot without notifying hooks.
func (m *Manager) Delete(ctx context.Context, account string) error {
	return m.WithLock(ctx, account, func(ctx context.Context) error {
		return m.store.Delete(ctx, account)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying settings store.
func (m *Manager) Store() ports.SettingsStore {
	return m.store
}

// Reject notifies hooks of a change that was not applied.
func (m *Manager) Reject(ctx context.Context, account string, path domain.Path, err error) {
	m.logger.Debug("settings change rejected", "account", account, "path", path.String(), "error", err)
	m.hooks.EmitRejected(ctx, &domain.RejectedEvent{
		Account: account,
		Path:    path,
		Reason:  rejectReason(err),
	})
}

// publish emits one applied event per preference that differs.
func (m *Manager) publish(ctx context.Context, account string, old *domain.Settings, next domain.Settings) {
	diff := domain.Diff(account, old, next)
	if diff == nil {
		return
	}
	ts := m.now()
	for _, p := range domain.Paths() {
		value, changed := diff.Changed[p.String()]
		if !changed {
			continue
		}
		m.hooks.EmitApplied(ctx, &domain.ChangeEvent{
			Account:   account,
			Path:      p,
			Old:       domain.Lookup(*old, p),
			New:       value,
			Timestamp: ts,
		})
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrFieldDisabled):
		return "disabled"
	case errors.Is(err, domain.ErrUnknownPath), errors.Is(err, domain.ErrUnknownField):
		return "unknown"
	case errors.Is(err, domain.ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, domain.ErrInvalidValue):
		return "invalid_value"
	default:
		return "error"
	}
}

// WithLock executes a function while holding the lock for the account.
func (m *Manager) WithLock(ctx context.Context, account string, fn func(context.Context) error) error {
	entry := m.acquire(account)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(account)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, account, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"account", account,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
