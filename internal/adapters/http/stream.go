package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/localsettings/internal/logging"
	"github.com/aretw0/localsettings/pkg/domain"
)

// StreamManager fans applied changes out to SSE subscribers, per account.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // account -> set of channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager. A nil logger discards output.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for the account. The returned
// function unregisters and closes it.
func (sm *StreamManager) Subscribe(account string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[account]; !ok {
		sm.subscribers[account] = make(map[chan<- string]struct{})
	}
	sm.subscribers[account][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[account]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, account)
				}
			}
		})
	}
}

// Subscribers counts the open subscriptions of an account.
func (sm *StreamManager) Subscribers(account string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[account])
}

// Broadcast sends msg to every subscriber of the account. Slow clients with a
// full buffer miss the message.
func (sm *StreamManager) Broadcast(account string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[account] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message", "account", account)
		}
	}
}

// Hooks broadcasts every applied change as JSON.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnChangeApplied: func(_ context.Context, e *domain.ChangeEvent) {
			payload, err := json.Marshal(e)
			if err != nil {
				sm.logger.Error("SSE: encode change event", "err", err)
				return
			}
			sm.Broadcast(e.Account, string(payload))
		},
	}
}
