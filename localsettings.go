package localsettings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/localsettings/internal/logging"
	"github.com/aretw0/localsettings/internal/runtime"
	"github.com/aretw0/localsettings/pkg/adapters/memory"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/ports"
	"github.com/aretw0/localsettings/pkg/session"
	"github.com/aretw0/localsettings/pkg/view"
)

// Engine is the high-level entry point for the library.
// It binds the settings dialog pages to per-account snapshots kept in a store.
type Engine struct {
	renderer *runtime.Renderer
	sessions *session.Manager
	store    ports.SettingsStore
	locker   ports.DistributedLocker
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

var _ ports.SettingsEngine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets the persistence store (default: in-memory).
func WithStore(store ports.SettingsStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking of account snapshots.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	sessionOpts := []session.Option{
		session.WithLogger(eng.logger),
		session.WithHooks(eng.hooks),
	}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}

	eng.sessions = session.NewManager(eng.store, sessionOpts...)
	eng.renderer = runtime.NewRenderer(runtime.WithLogger(eng.logger))
	return eng
}

// Settings returns the account snapshot, or the defaults when none is stored.
func (e *Engine) Settings(ctx context.Context, account string) (domain.Settings, error) {
	return e.sessions.LoadOrDefault(ctx, account)
}

// RenderPage renders the dialog page at index against the account snapshot.
// Out-of-range indexes render the first page.
func (e *Engine) RenderPage(ctx context.Context, account string, index int) (view.Page, error) {
	settings, err := e.Settings(ctx, account)
	if err != nil {
		return view.Page{}, err
	}
	return e.renderer.Render(index, settings, nil).View, nil
}

// RenderDialog renders the navigation bar and the page at index. Link and
// close entries, like out-of-range indexes, leave the first page selected.
func (e *Engine) RenderDialog(ctx context.Context, account string, index int) (view.Dialog, error) {
	settings, err := e.Settings(ctx, account)
	if err != nil {
		return view.Dialog{}, err
	}
	d := runtime.NewDialog(e.renderer, func() domain.Settings { return settings }, nil, nil)
	if index > 0 && index < e.renderer.Len() {
		if _, err := d.Navigate(index); err != nil {
			return view.Dialog{}, err
		}
	}
	return d.View(), nil
}

// RenderColumn renders the home column settings panel.
func (e *Engine) RenderColumn(ctx context.Context, account string) (view.Page, error) {
	settings, err := e.Settings(ctx, account)
	if err != nil {
		return view.Page{}, err
	}
	return e.renderer.RenderColumn(settings, nil).View, nil
}

// Describe returns the title and field descriptors of the dialog page at index.
func (e *Engine) Describe(index int) (string, []domain.FieldDescriptor) {
	return e.renderer.Descriptors(index)
}

// Pages returns the number of dialog pages.
func (e *Engine) Pages() int {
	return e.renderer.Len()
}

// Interact feeds an interaction to a field and applies the change it emits.
// Enablement is evaluated against the snapshot the change is applied to.
func (e *Engine) Interact(ctx context.Context, account, fieldID string, input view.Input) (domain.Settings, error) {
	d, ok := e.renderer.Field(fieldID)
	if !ok {
		err := fmt.Errorf("%w: %s", domain.ErrUnknownField, fieldID)
		e.sessions.Reject(ctx, account, nil, err)
		return domain.Settings{}, err
	}
	return e.sessions.Reduce(ctx, account, d.Path, func(current domain.Settings) (domain.Value, error) {
		change, err := runtime.Interact(current, d, input)
		if err != nil {
			return domain.Value{}, err
		}
		return change.Value, nil
	})
}

// Change applies a raw change event.
func (e *Engine) Change(ctx context.Context, account string, change domain.Change) (domain.Settings, error) {
	return e.sessions.Apply(ctx, account, change)
}

// Replace overwrites the account snapshot.
func (e *Engine) Replace(ctx context.Context, account string, settings domain.Settings) error {
	return e.sessions.Replace(ctx, account, settings)
}

// Reset restores the defaults for the account.
func (e *Engine) Reset(ctx context.Context, account string) error {
	return e.sessions.Reset(ctx, account)
}

// Accounts lists the accounts with stored settings.
func (e *Engine) Accounts(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// Store returns the underlying settings store.
func (e *Engine) Store() ports.SettingsStore {
	return e.store
}
