// Package cli wires configuration into the engine and its adapters for the
// command line entry points.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/localsettings"
	"github.com/aretw0/localsettings/internal/adapters/file"
	httpAdapter "github.com/aretw0/localsettings/internal/adapters/http"
	redisAdapter "github.com/aretw0/localsettings/internal/adapters/redis"
	"github.com/aretw0/localsettings/internal/adapters/sqlite"
	"github.com/aretw0/localsettings/internal/chat"
	"github.com/aretw0/localsettings/internal/config"
	"github.com/aretw0/localsettings/internal/logging"
	"github.com/aretw0/localsettings/internal/metrics"
	"github.com/aretw0/localsettings/internal/timeline"
	"github.com/aretw0/localsettings/pkg/adapters/memory"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/ports"
)

// Services is the wired application: engine, observability and the closers
// of every opened backend.
type Services struct {
	Config  config.Config
	Logger  *slog.Logger
	Engine  *localsettings.Engine
	Metrics *metrics.Metrics
	Streams *httpAdapter.StreamManager

	closers []func() error
}

// NewLogger builds the logger described by cfg.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	level := logging.ParseLevel(cfg.Level)
	if cfg.File != "" {
		return logging.NewWithFile(level, cfg.File)
	}
	return logging.New(level)
}

// Build opens the configured store and creates the engine. Applied and
// rejected changes feed both the metrics and the SSE streams.
func Build(cfg config.Config, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = NewLogger(cfg.Log)
	}
	s := &Services{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.New(),
		Streams: httpAdapter.NewStreamManager(logger),
	}

	store, locker, err := s.openStore()
	if err != nil {
		return nil, err
	}

	opts := []localsettings.Option{
		localsettings.WithStore(s.Metrics.InstrumentStore(store)),
		localsettings.WithLogger(logger),
		localsettings.WithLifecycleHooks(domain.MergeHooks(s.Metrics.Hooks(), s.Streams.Hooks())),
	}
	if locker != nil {
		opts = append(opts, localsettings.WithLocker(locker))
	}
	s.Engine = localsettings.New(opts...)
	return s, nil
}

func (s *Services) openStore() (ports.SettingsStore, ports.DistributedLocker, error) {
	cfg := s.Config
	switch cfg.Store.Driver {
	case config.DriverFile:
		s.Logger.Info("using file store", "path", cfg.Store.Path)
		return file.New(cfg.Store.Path), nil, nil
	case config.DriverRedis:
		var opts []redisAdapter.Option
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redisAdapter.WithTTL(cfg.Redis.TTL))
		}
		store := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		s.closers = append(s.closers, store.Close)
		s.Logger.Info("using redis store", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		return store, redisAdapter.NewLocker(store.Client(), redisAdapter.DefaultPrefix), nil
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		s.closers = append(s.closers, store.Close)
		s.Logger.Info("using sqlite store", "path", cfg.Store.Path)
		return store, nil, nil
	default:
		return memory.NewStore(), nil, nil
	}
}

// ConnData returns the chat connection data served over HTTP.
func (s *Services) ConnData() chat.ConnData {
	return chat.ConnData{
		PrebindURL:  s.Config.Chat.PrebindURL,
		JID:         s.Config.Chat.JID,
		HTTPBindURL: s.Config.Chat.HTTPBindURL,
	}
}

// Bootstrapper creates the chat bootstrapper for the configured endpoint,
// recording outcomes in the metrics.
func (s *Services) Bootstrapper(init chat.Initializer) *chat.Bootstrapper {
	return chat.NewBootstrapper(s.Config.Chat.ConnDataURL, init,
		chat.WithLogger(s.Logger),
		chat.WithObserver(func(o chat.Outcome) { s.Metrics.Bootstrap(string(o)) }),
	)
}

// Home creates a home timeline loader for url, polling at the configured
// interval and counting ticks in the metrics.
func (s *Services) Home(url string) *timeline.Home {
	return timeline.NewHome(timeline.NewHTTPSource(url, nil),
		timeline.WithInterval(s.Config.Timeline.PollInterval),
		timeline.WithLogger(s.Logger),
		timeline.WithTickHook(s.Metrics.PollTick),
	)
}

// HomeFilter compiles the home column settings of account.
func (s *Services) HomeFilter(ctx context.Context, account, me string) (*timeline.Filter, error) {
	settings, err := s.Engine.Settings(ctx, account)
	if err != nil {
		return nil, err
	}
	return timeline.NewFilter(settings.Home, me), nil
}

// Close releases every opened backend.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}
