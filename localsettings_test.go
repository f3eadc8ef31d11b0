package localsettings_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/localsettings"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_RenderPageDefaults(t *testing.T) {
	eng := localsettings.New()
	ctx := context.Background()

	page, err := eng.RenderPage(ctx, "alice", 0)
	require.NoError(t, err)
	assert.Equal(t, "General", page.Title)

	layout, ok := page.Control("layout")
	require.True(t, ok)
	require.Len(t, layout.Options, 3)
	assert.True(t, layout.Options[0].Selected, "auto is the default layout")

	fallback, err := eng.RenderPage(ctx, "alice", 42)
	require.NoError(t, err)
	assert.Equal(t, page, fallback, "out-of-range pages render the first page")

	assert.Equal(t, 5, eng.Pages())
}

func TestEngine_InteractRespectsDependencies(t *testing.T) {
	eng := localsettings.New()
	ctx := context.Background()

	_, err := eng.Interact(ctx, "alice", "collapsed.auto.all", view.Toggle(true))
	require.NoError(t, err)

	_, err = eng.Interact(ctx, "alice", "collapsed.auto.lengthy", view.Toggle(false))
	assert.ErrorIs(t, err, domain.ErrFieldDisabled, "auto.all disables the specific auto-collapse options")

	page, err := eng.RenderPage(ctx, "alice", 3)
	require.NoError(t, err)
	lengthy, ok := page.Control("collapsed.auto.lengthy")
	require.True(t, ok)
	assert.False(t, lengthy.Enabled)
	assert.True(t, lengthy.Checked, "disabled fields still show their value")

	settings, err := eng.Interact(ctx, "alice", "collapsed.auto.all", view.Toggle(false))
	require.NoError(t, err)
	assert.False(t, settings.Collapsed.Auto.All)

	settings, err = eng.Interact(ctx, "alice", "collapsed.auto.lengthy", view.Toggle(false))
	require.NoError(t, err)
	assert.False(t, settings.Collapsed.Auto.Lengthy)
}

func TestEngine_InteractErrors(t *testing.T) {
	var rejected []string
	eng := localsettings.New(localsettings.WithLifecycleHooks(domain.LifecycleHooks{
		OnChangeRejected: func(_ context.Context, e *domain.RejectedEvent) { rejected = append(rejected, e.Reason) },
	}))
	ctx := context.Background()

	_, err := eng.Interact(ctx, "bob", "does.not.exist", view.Toggle(true))
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	_, err = eng.Interact(ctx, "bob", "side_arm", view.Choose("everyone"))
	assert.ErrorIs(t, err, domain.ErrInvalidValue)

	_, err = eng.Interact(ctx, "bob", "stretch", view.Type("yes"))
	assert.ErrorIs(t, err, domain.ErrTypeMismatch)

	assert.Equal(t, []string{"unknown", "invalid_value", "type_mismatch"}, rejected)
}

func TestEngine_TextAndRadioFields(t *testing.T) {
	eng := localsettings.New()
	ctx := context.Background()

	_, err := eng.Interact(ctx, "carol", "content_warnings.filter", view.Type("^nsfw"))
	assert.ErrorIs(t, err, domain.ErrFieldDisabled, "the filter requires auto unfold")

	_, err = eng.Interact(ctx, "carol", "content_warnings.auto_unfold", view.Toggle(true))
	require.NoError(t, err)
	_, err = eng.Interact(ctx, "carol", "content_warnings.filter", view.Type("^nsfw"))
	require.NoError(t, err)

	settings, err := eng.Interact(ctx, "carol", "side_arm_reply_mode", view.Choose(domain.SideArmReplyRestrict))
	require.NoError(t, err)
	assert.Equal(t, "^nsfw", settings.ContentWarnings.Filter)
	assert.Equal(t, domain.SideArmReplyRestrict, settings.SideArmReplyMode)
}

func TestEngine_ReplaceResetAndColumn(t *testing.T) {
	eng := localsettings.New()
	ctx := context.Background()

	custom := domain.DefaultSettings()
	custom.Home.Shows.Reblog = false
	custom.Home.Regex.Body = "spoiler"
	require.NoError(t, eng.Replace(ctx, "dave", custom))

	column, err := eng.RenderColumn(ctx, "dave")
	require.NoError(t, err)
	reblog, ok := column.Control("home.shows.reblog")
	require.True(t, ok)
	assert.False(t, reblog.Checked)
	regex, ok := column.Control("home.regex.body")
	require.True(t, ok)
	assert.Equal(t, "spoiler", regex.Text)

	accounts, err := eng.Accounts(ctx)
	require.NoError(t, err)
	assert.Contains(t, accounts, "dave")

	require.NoError(t, eng.Reset(ctx, "dave"))
	settings, err := eng.Settings(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestEngine_ConcurrentInteractions(t *testing.T) {
	eng := localsettings.New()
	ctx := context.Background()

	fields := []string{"stretch", "navbar_under", "media.letterbox", "media.fullwidth", "inline_preview_cards"}
	var wg sync.WaitGroup
	for _, f := range fields {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			current, err := eng.Settings(ctx, "erin")
			assert.NoError(t, err)
			value := domain.Lookup(current, domain.ParsePath(id)).Truthy()
			_, err = eng.Interact(ctx, "erin", id, view.Toggle(!value))
			assert.NoError(t, err)
		}(f)
	}
	wg.Wait()

	got, err := eng.Settings(ctx, "erin")
	require.NoError(t, err)
	def := domain.DefaultSettings()
	for _, f := range fields {
		p := domain.ParsePath(f)
		assert.NotEqual(t, domain.Lookup(def, p), domain.Lookup(got, p), "field %s", f)
	}
}

func TestEngine_RenderDialog(t *testing.T) {
	eng := localsettings.New()
	ctx := context.Background()

	d, err := eng.RenderDialog(ctx, "frank", 2)
	require.NoError(t, err)
	assert.Equal(t, "Content warnings", d.Page.Title)
	require.Len(t, d.Navigation, 7)
	assert.True(t, d.Navigation[2].Active)
	assert.Equal(t, "CW", d.Navigation[2].TextIcon)

	d, err = eng.RenderDialog(ctx, "frank", 6)
	require.NoError(t, err)
	assert.Equal(t, "General", d.Page.Title, "the close entry is not a page")
	assert.False(t, d.Closed)
}

func TestEngine_Describe(t *testing.T) {
	engine := localsettings.New()

	title, fields := engine.Describe(3)
	assert.Equal(t, "Collapsed toots", title)
	require.NotEmpty(t, fields)
	assert.Equal(t, "collapsed.enabled", fields[0].ID)

	title, _ = engine.Describe(99)
	assert.Equal(t, "General", title)
}
