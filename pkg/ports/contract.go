package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSettingsStoreContract runs a suite of tests to verify that a SettingsStore
// implementation adheres to the defined interface contract.
func RunSettingsStoreContract(t *testing.T, store SettingsStore) {
	ctx := context.Background()
	account := "contract-test-account-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		settings := domain.DefaultSettings()
		settings.Layout = domain.LayoutSingle
		settings.ContentWarnings.Filter = "^spoiler"
		settings.Collapsed.Auto.All = true

		err := store.Save(ctx, account, settings)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, account)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, settings, loaded)
	})

	t.Run("Save overwrites", func(t *testing.T) {
		settings := domain.DefaultSettings()
		settings.Stretch = false
		require.NoError(t, store.Save(ctx, account, settings))

		loaded, err := store.Load(ctx, account)
		require.NoError(t, err)
		assert.False(t, loaded.Stretch)
		assert.Equal(t, domain.LayoutAuto, loaded.Layout)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+account)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, account, domain.DefaultSettings())
		require.NoError(t, err)

		err = store.Delete(ctx, account)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, account)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound, "Load after Delete should return ErrProfileNotFound")

		assert.NoError(t, store.Delete(ctx, account), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := account + "-1"
		id2 := account + "-2"
		_ = store.Save(ctx, id1, domain.DefaultSettings())
		_ = store.Save(ctx, id2, domain.DefaultSettings())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		accounts, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, accounts, id1)
		assert.Contains(t, accounts, id2)
	})
}
