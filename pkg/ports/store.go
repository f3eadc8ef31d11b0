package ports

import (
	"context"

	"github.com/aretw0/localsettings/pkg/domain"
)

// SettingsStore defines the interface for persisting account settings.
type SettingsStore interface {
	// Save persists the snapshot for a given account.
	Save(ctx context.Context, account string, settings domain.Settings) error

	// Load retrieves the snapshot for a given account.
	// Returns domain.ErrProfileNotFound if nothing was stored for the account.
	Load(ctx context.Context, account string) (domain.Settings, error)

	// Delete removes the stored snapshot. Deleting a missing account is not an error.
	Delete(ctx context.Context, account string) error

	// List returns the accounts with stored settings.
	List(ctx context.Context) ([]string, error)
}
