package ports

import (
	"context"

	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
)

// SettingsEngine is the stateless surface adapters (HTTP, MCP, CLI) drive.
type SettingsEngine interface {
	// Settings returns the account snapshot, or the defaults when none is stored.
	Settings(ctx context.Context, account string) (domain.Settings, error)

	// RenderPage renders the dialog page at index; out-of-range indexes render page 0.
	RenderPage(ctx context.Context, account string, index int) (view.Page, error)

	// RenderDialog renders the navigation bar with the page at index selected.
	RenderDialog(ctx context.Context, account string, index int) (view.Dialog, error)

	// RenderColumn renders the home column settings panel.
	RenderColumn(ctx context.Context, account string) (view.Page, error)

	// Interact feeds a user interaction to the field with the given id and
	// applies the resulting change.
	Interact(ctx context.Context, account, fieldID string, input view.Input) (domain.Settings, error)

	// Change applies a raw change event.
	Change(ctx context.Context, account string, change domain.Change) (domain.Settings, error)

	// Replace overwrites the account snapshot.
	Replace(ctx context.Context, account string, settings domain.Settings) error

	// Reset restores the defaults for the account.
	Reset(ctx context.Context, account string) error

	// Accounts lists the accounts with stored settings.
	Accounts(ctx context.Context) ([]string, error)
}
