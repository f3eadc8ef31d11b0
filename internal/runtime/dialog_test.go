package runtime_test

import (
	"testing"

	"github.com/aretw0/localsettings/internal/runtime"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialog_Flow(t *testing.T) {
	settings := domain.DefaultSettings()
	emit := func(c domain.Change) {
		next, err := domain.Apply(settings, c)
		require.NoError(t, err)
		settings = next
	}
	closed := false
	d := runtime.NewDialog(runtime.NewRenderer(), func() domain.Settings { return settings }, emit, func() { closed = true })

	v := d.View()
	assert.Equal(t, "general", v.Page.ID)
	assert.False(t, v.Closed)
	assert.True(t, v.Navigation[0].Active)

	_, err := d.Navigate(int(runtime.PageContentWarnings))
	require.NoError(t, err)

	_, err = d.Interact("content_warnings.filter", view.Type("spoiler"))
	assert.ErrorIs(t, err, domain.ErrFieldDisabled)

	_, err = d.Interact("content_warnings.auto_unfold", view.Toggle(true))
	require.NoError(t, err)
	_, err = d.Interact("content_warnings.filter", view.Type("spoiler"))
	require.NoError(t, err)

	filter, ok := d.View().Page.Control("content_warnings.filter")
	require.True(t, ok)
	assert.True(t, filter.Enabled)
	assert.Equal(t, "spoiler", filter.Text)

	_, err = d.Navigate(6)
	require.NoError(t, err)
	assert.True(t, closed)
	assert.True(t, d.View().Closed)

	_, err = d.Interact("content_warnings.auto_unfold", view.Toggle(false))
	assert.ErrorIs(t, err, domain.ErrDialogClosed)
	assert.True(t, settings.ContentWarnings.AutoUnfold)
}
