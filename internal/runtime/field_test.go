package runtime_test

import (
	"testing"

	"github.com/aretw0/localsettings/internal/runtime"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptor(path string, mutate func(*domain.FieldDescriptor)) domain.FieldDescriptor {
	d := domain.FieldDescriptor{ID: path, Path: domain.ParsePath(path), Label: path}
	if mutate != nil {
		mutate(&d)
	}
	return d
}

func TestEnabled(t *testing.T) {
	base := domain.DefaultSettings()
	lengthy := descriptor("collapsed.auto.lengthy", func(d *domain.FieldDescriptor) {
		d.DependsOn = []domain.Path{domain.ParsePath("collapsed.enabled")}
		d.DependsOnNot = []domain.Path{domain.ParsePath("collapsed.auto.all")}
	})

	tests := []struct {
		name     string
		settings domain.Settings
		field    domain.FieldDescriptor
		want     bool
	}{
		{"No Dependencies", base, descriptor("stretch", nil), true},
		{"Dependencies Met", base, lengthy, true},
		{"Positive Dependency Falsy", domain.CollapsedEnabledLens.Set(base, false), lengthy, false},
		{"Negative Dependency Truthy", domain.CollapsedAutoAllLens.Set(base, true), lengthy, false},
		{"Unresolved Dependency Is Falsy", base, descriptor("stretch", func(d *domain.FieldDescriptor) {
			d.DependsOn = []domain.Path{domain.ParsePath("does.not.exist")}
		}), false},
		{"Unresolved Negative Dependency Passes", base, descriptor("stretch", func(d *domain.FieldDescriptor) {
			d.DependsOnNot = []domain.Path{domain.ParsePath("does.not.exist")}
		}), true},
		{"Empty Text Is Falsy", base, descriptor("content_warnings.auto_unfold", func(d *domain.FieldDescriptor) {
			d.DependsOn = []domain.Path{domain.ParsePath("content_warnings.filter")}
		}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runtime.Enabled(tt.settings, tt.field))
		})
	}
}

func TestBuildControl(t *testing.T) {
	s := domain.DefaultSettings()
	s.SideArm = domain.SideArmDirect
	s.ContentWarnings.Filter = "nsfw"

	t.Run("Checkbox", func(t *testing.T) {
		c := runtime.BuildControl(s, descriptor("stretch", nil))
		assert.Equal(t, domain.ControlCheckbox, c.Kind)
		assert.True(t, c.Checked)
		assert.True(t, c.Enabled)
	})

	t.Run("Radio", func(t *testing.T) {
		c := runtime.BuildControl(s, descriptor("side_arm", func(d *domain.FieldDescriptor) {
			d.Options = []domain.FieldOption{
				{Value: domain.SideArmNone, Label: "None"},
				{Value: domain.SideArmDirect, Label: "Direct"},
			}
		}))
		assert.Equal(t, domain.ControlRadio, c.Kind)
		require.Len(t, c.Options, 2)
		assert.False(t, c.Options[0].Selected)
		assert.True(t, c.Options[1].Selected)
	})

	t.Run("Text", func(t *testing.T) {
		c := runtime.BuildControl(s, descriptor("content_warnings.filter", func(d *domain.FieldDescriptor) {
			d.Placeholder = "Regular expression"
			d.DependsOn = []domain.Path{domain.ParsePath("content_warnings.auto_unfold")}
		}))
		assert.Equal(t, domain.ControlText, c.Kind)
		assert.Equal(t, "nsfw", c.Text)
		assert.Equal(t, "Regular expression", c.Placeholder)
		assert.False(t, c.Enabled, "disabled controls keep their value")
	})

	t.Run("Options Win Over Placeholder", func(t *testing.T) {
		c := runtime.BuildControl(s, descriptor("layout", func(d *domain.FieldDescriptor) {
			d.Options = []domain.FieldOption{{Value: domain.LayoutAuto}}
			d.Placeholder = "ignored"
		}))
		assert.Equal(t, domain.ControlRadio, c.Kind)
		assert.Empty(t, c.Placeholder)
	})
}

func TestInteract(t *testing.T) {
	s := domain.DefaultSettings()
	layout := descriptor("layout", func(d *domain.FieldDescriptor) {
		d.Options = []domain.FieldOption{{Value: domain.LayoutAuto}, {Value: domain.LayoutSingle}}
	})
	filter := descriptor("home.regex.body", func(d *domain.FieldDescriptor) { d.Placeholder = "regex" })
	bar := descriptor("collapsed.show_action_bar", func(d *domain.FieldDescriptor) {
		d.DependsOn = []domain.Path{domain.ParsePath("collapsed.enabled")}
	})

	t.Run("Checkbox Emits Bool", func(t *testing.T) {
		c, err := runtime.Interact(s, bar, view.Toggle(false))
		require.NoError(t, err)
		assert.Equal(t, domain.NewChange("collapsed.show_action_bar", domain.Bool(false)), c)
	})

	t.Run("Radio Emits Option Value", func(t *testing.T) {
		c, err := runtime.Interact(s, layout, view.Choose(domain.LayoutSingle))
		require.NoError(t, err)
		assert.Equal(t, domain.String(domain.LayoutSingle), c.Value)
	})

	t.Run("Radio Rejects Unknown Option", func(t *testing.T) {
		_, err := runtime.Interact(s, layout, view.Choose("tablet"))
		assert.ErrorIs(t, err, domain.ErrInvalidValue)
	})

	t.Run("Text Emits Raw Text", func(t *testing.T) {
		c, err := runtime.Interact(s, filter, view.Type("  boost  "))
		require.NoError(t, err)
		assert.Equal(t, domain.String("  boost  "), c.Value)
	})

	t.Run("Wrong Input Kind", func(t *testing.T) {
		_, err := runtime.Interact(s, filter, view.Toggle(true))
		assert.ErrorIs(t, err, domain.ErrTypeMismatch)
		_, err = runtime.Interact(s, bar, view.Type("x"))
		assert.ErrorIs(t, err, domain.ErrTypeMismatch)
		_, err = runtime.Interact(s, layout, view.Input{})
		assert.ErrorIs(t, err, domain.ErrTypeMismatch)
	})

	t.Run("Disabled Field Emits Nothing", func(t *testing.T) {
		off := domain.CollapsedEnabledLens.Set(s, false)
		_, err := runtime.Interact(off, bar, view.Toggle(true))
		assert.ErrorIs(t, err, domain.ErrFieldDisabled)
	})
}
