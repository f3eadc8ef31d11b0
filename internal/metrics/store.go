package metrics

import (
	"context"
	"time"

	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/ports"
)

// InstrumentStore wraps store so every operation is timed.
func (m *Metrics) InstrumentStore(store ports.SettingsStore) ports.SettingsStore {
	return &instrumentedStore{next: store, m: m}
}

type instrumentedStore struct {
	next ports.SettingsStore
	m    *Metrics
}

func (s *instrumentedStore) Save(ctx context.Context, account string, settings domain.Settings) error {
	defer s.m.ObserveStore("save", time.Now())
	return s.next.Save(ctx, account, settings)
}

func (s *instrumentedStore) Load(ctx context.Context, account string) (domain.Settings, error) {
	defer s.m.ObserveStore("load", time.Now())
	return s.next.Load(ctx, account)
}

func (s *instrumentedStore) Delete(ctx context.Context, account string) error {
	defer s.m.ObserveStore("delete", time.Now())
	return s.next.Delete(ctx, account)
}

func (s *instrumentedStore) List(ctx context.Context) ([]string, error) {
	defer s.m.ObserveStore("list", time.Now())
	return s.next.List(ctx)
}
