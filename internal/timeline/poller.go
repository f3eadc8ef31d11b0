// Package timeline holds the home timeline column logic: the reload poller
// that keeps a stale (partial) view refreshing and the column filter.
package timeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/localsettings/internal/logging"
)

// DefaultPollInterval is the delay between two fetches of a partial home timeline.
const DefaultPollInterval = 3 * time.Second

// Fetcher loads more of the home timeline.
type Fetcher interface {
	FetchMore(ctx context.Context) error
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) error

// FetchMore implements Fetcher.
func (f FetcherFunc) FetchMore(ctx context.Context) error { return f(ctx) }

// TickerFunc starts a repeating ticker and returns its channel and stop function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func defaultTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Poller runs at most one repeating fetch per mounted view.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
	ticker   TickerFunc
	logger   *slog.Logger
	onTick   func(err error)

	mu         sync.Mutex
	lifetime   context.Context
	stopLife   context.CancelFunc
	cancel     context.CancelFunc
	generation uint64
	active     uint64
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides DefaultPollInterval.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the logger for fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTicker replaces the time source; used by tests.
func WithTicker(t TickerFunc) Option {
	return func(p *Poller) {
		p.ticker = t
	}
}

// WithTickHook registers a callback invoked after every fetch.
func WithTickHook(hook func(err error)) Option {
	return func(p *Poller) {
		p.onTick = hook
	}
}

// NewPoller creates a poller. It does nothing until Mount.
func NewPoller(fetcher Fetcher, opts ...Option) *Poller {
	p := &Poller{
		fetcher:  fetcher,
		interval: DefaultPollInterval,
		ticker:   defaultTicker,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mount scopes the poller to ctx and applies the initial partial state.
// A previous mount and its interval are torn down first.
// Cancelling ctx has the same effect as Unmount.
func (p *Poller) Mount(ctx context.Context, partial bool) {
	p.mu.Lock()
	p.stopLocked()
	if p.stopLife != nil {
		p.stopLife()
	}
	p.lifetime, p.stopLife = context.WithCancel(ctx)
	p.mu.Unlock()

	p.Update(false, partial)
}

// Update reacts to a change of the view's partial flag. Becoming partial
// starts polling, becoming fresh stops it; anything else is a no-op.
func (p *Poller) Update(prevPartial, partial bool) {
	if prevPartial == partial {
		return
	}
	if !prevPartial && partial {
		p.start()
		return
	}
	p.stop()
}

// Unmount cancels any active interval. Later updates are ignored until the
// next Mount.
func (p *Poller) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	if p.stopLife != nil {
		p.stopLife()
		p.stopLife = nil
	}
	p.lifetime = nil
}

// Polling reports whether an interval is active.
func (p *Poller) Polling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active != 0
}

// Generation identifies the active interval; 0 when idle.
func (p *Poller) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *Poller) start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lifetime == nil || p.lifetime.Err() != nil {
		return
	}
	if p.active != 0 {
		return
	}

	ctx, cancel := context.WithCancel(p.lifetime)
	p.generation++
	p.active = p.generation
	p.cancel = cancel

	ticks, stopTicker := p.ticker(p.interval)
	p.logger.Debug("home timeline polling started", "generation", p.active, "interval", p.interval)
	go p.loop(ctx, p.active, ticks, stopTicker)
}

func (p *Poller) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Poller) stopLocked() {
	if p.active == 0 {
		return
	}
	p.logger.Debug("home timeline polling stopped", "generation", p.active)
	p.cancel()
	p.cancel = nil
	p.active = 0
}

func (p *Poller) loop(ctx context.Context, generation uint64, ticks <-chan time.Time, stopTicker func()) {
	defer stopTicker()
	defer p.release(generation)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			if ctx.Err() != nil {
				return
			}
			err := p.fetcher.FetchMore(ctx)
			if err != nil && ctx.Err() == nil {
				p.logger.Warn("home timeline fetch failed", "generation", generation, "error", err)
			}
			if p.onTick != nil {
				p.onTick(err)
			}
		}
	}
}

// release clears the active marker when the lifetime context ended on its own.
func (p *Poller) release(generation uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active == generation {
		p.active = 0
		p.cancel = nil
	}
}

// HomeView tracks the partial flag of a mounted home timeline and drives a Poller.
type HomeView struct {
	poller *Poller

	mu      sync.Mutex
	partial bool
}

// NewHomeView wraps a poller.
func NewHomeView(poller *Poller) *HomeView {
	return &HomeView{poller: poller}
}

// Mount mounts the view with its initial partial state.
func (v *HomeView) Mount(ctx context.Context, partial bool) {
	v.mu.Lock()
	v.partial = partial
	v.mu.Unlock()
	v.poller.Mount(ctx, partial)
}

// SetPartial records a new partial state and forwards the transition.
func (v *HomeView) SetPartial(partial bool) {
	v.mu.Lock()
	prev := v.partial
	v.partial = partial
	v.mu.Unlock()
	v.poller.Update(prev, partial)
}

// SetItems derives the partial state from the loaded status ids: a timeline
// that is empty or whose first slot is a gap (empty id) is partial.
func (v *HomeView) SetItems(ids []string) {
	v.SetPartial(IsPartial(ids))
}

// Unmount tears the view down.
func (v *HomeView) Unmount() {
	v.poller.Unmount()
}

// IsPartial reports whether a timeline has no first status: it is empty or
// starts with a gap marker.
func IsPartial(ids []string) bool {
	return len(ids) == 0 || ids[0] == ""
}
