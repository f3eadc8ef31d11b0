package runtime_test

import (
	"testing"

	"github.com/aretw0/localsettings/internal/runtime"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Pages(t *testing.T) {
	r := runtime.NewRenderer()
	require.Equal(t, 5, r.Len())
	assert.Equal(t, []runtime.PageID{
		runtime.PageGeneral, runtime.PageCompose, runtime.PageContentWarnings,
		runtime.PageCollapsed, runtime.PageMedia,
	}, r.Pages())

	titles := []string{"General", "Compose box", "Content warnings", "Collapsed toots", "Media"}
	s := domain.DefaultSettings()
	for i, title := range titles {
		page := r.Render(i, s, nil).View
		assert.Equal(t, i, page.Index)
		assert.Equal(t, title, page.Title)
		assert.Equal(t, r.Pages()[i].String(), page.ID)
	}
}

func TestRenderer_OutOfRangeFallsBack(t *testing.T) {
	r := runtime.NewRenderer()
	s := domain.DefaultSettings()

	for _, index := range []int{-1, 5, 99} {
		page := r.Render(index, s, nil).View
		assert.Equal(t, "general", page.ID, "index %d", index)
		assert.Equal(t, 0, page.Index)
	}
}

func TestRenderer_CollapsedDependencies(t *testing.T) {
	r := runtime.NewRenderer()
	s := domain.DefaultSettings()
	index := int(runtime.PageCollapsed)

	page := r.Render(index, s, nil).View
	lengthy, ok := page.Control("collapsed.auto.lengthy")
	require.True(t, ok)
	assert.True(t, lengthy.Enabled)
	assert.True(t, lengthy.Checked)

	all := domain.CollapsedAutoAllLens.Set(s, true)
	page = r.Render(index, all, nil).View
	lengthy, _ = page.Control("collapsed.auto.lengthy")
	assert.False(t, lengthy.Enabled)
	assert.True(t, lengthy.Checked, "disabled controls keep their value")
	everything, _ := page.Control("collapsed.auto.all")
	assert.True(t, everything.Enabled)

	off := domain.CollapsedEnabledLens.Set(s, false)
	page = r.Render(index, off, nil).View
	for _, sec := range page.Sections {
		for _, c := range sec.Controls {
			if c.ID == "collapsed.enabled" {
				assert.True(t, c.Enabled)
				continue
			}
			assert.False(t, c.Enabled, c.ID)
		}
	}
}

func TestRenderer_ControlKinds(t *testing.T) {
	r := runtime.NewRenderer()
	s := domain.DefaultSettings()

	general := r.Render(int(runtime.PageGeneral), s, nil).View
	layout, ok := general.Control("layout")
	require.True(t, ok)
	assert.Equal(t, domain.ControlRadio, layout.Kind)
	require.Len(t, layout.Options, 3)
	assert.True(t, layout.Options[0].Selected)

	cw := r.Render(int(runtime.PageContentWarnings), s, nil).View
	filter, ok := cw.Control("content_warnings.filter")
	require.True(t, ok)
	assert.Equal(t, domain.ControlText, filter.Kind)
	assert.False(t, filter.Enabled)
}

func TestRenderedPage_Interact(t *testing.T) {
	r := runtime.NewRenderer()
	var emitted []domain.Change
	emit := func(c domain.Change) { emitted = append(emitted, c) }

	page := r.Render(int(runtime.PageMedia), domain.DefaultSettings(), emit)

	c, err := page.Interact("media.reveal_behind_cw", view.Toggle(true))
	require.NoError(t, err)
	assert.Equal(t, []domain.Change{c}, emitted)

	_, err = page.Interact("layout", view.Choose(domain.LayoutSingle))
	assert.ErrorIs(t, err, domain.ErrUnknownField)
	assert.Len(t, emitted, 1)
}

func TestRenderer_Column(t *testing.T) {
	r := runtime.NewRenderer()
	s := domain.DefaultSettings()
	s.Home.Shows.Reply = false

	col := r.RenderColumn(s, nil).View
	assert.Equal(t, "home", col.ID)
	require.Len(t, col.Sections, 2)
	reply, ok := col.Control("home.shows.reply")
	require.True(t, ok)
	assert.False(t, reply.Checked)
	body, ok := col.Control("home.regex.body")
	require.True(t, ok)
	assert.Equal(t, domain.ControlText, body.Kind)
}

func TestRenderer_Field(t *testing.T) {
	r := runtime.NewRenderer()

	d, ok := r.Field("home.shows.direct")
	require.True(t, ok)
	assert.Equal(t, "Show DMs", d.Label)

	_, ok = r.Field("nope")
	assert.False(t, ok)

	title, fields := r.Descriptors(42)
	assert.Equal(t, "General", title)
	assert.NotEmpty(t, fields)
}
