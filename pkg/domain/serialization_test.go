package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAML_RoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.Layout = LayoutSingle
	s.ContentWarnings.Filter = "^(spoilers|politics)$"
	s.Collapsed.Auto.All = true

	data, err := MarshalYAML(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), "layout: single")

	back, err := UnmarshalYAML(data)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestUnmarshalYAML_PartialKeepsDefaults(t *testing.T) {
	s, err := UnmarshalYAML([]byte("media:\n  letterbox: false\n"))
	require.NoError(t, err)

	want := DefaultSettings()
	want.Media.Letterbox = false
	assert.Equal(t, want, s)
}

func TestUnmarshalYAML_Invalid(t *testing.T) {
	_, err := UnmarshalYAML([]byte("side_arm: everyone\n"))
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = UnmarshalYAML([]byte("layout: [\n"))
	assert.Error(t, err)
}

func TestUnmarshalYAML_SanitizesText(t *testing.T) {
	s, err := UnmarshalYAML([]byte("home:\n  regex:\n    body: \"x\\u0007y\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "xy", s.Home.Regex.Body)

	_, err = UnmarshalYAML([]byte("home:\n  regex:\n    body: \"" + strings.Repeat("x", MaxTextSize+1) + "\"\n"))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFromMap_SanitizesText(t *testing.T) {
	s, err := FromMap(map[string]any{
		"content_warnings": map[string]any{"filter": "cw\x1b[0m"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cw[0m", s.ContentWarnings.Filter)
}

func TestFromMap(t *testing.T) {
	s, err := FromMap(map[string]any{
		"layout": "multiple",
		"collapsed": map[string]any{
			"enabled": false,
			"auto":    map[string]any{"all": true},
		},
		"content_warnings": map[string]any{"filter": nil},
		"unknown_key":      true,
	})
	require.NoError(t, err)
	assert.Equal(t, LayoutMultiple, s.Layout)
	assert.False(t, s.Collapsed.Enabled)
	assert.True(t, s.Collapsed.Auto.All)
	assert.True(t, s.Collapsed.Auto.Notifications)
	assert.Empty(t, s.ContentWarnings.Filter)

	_, err = FromMap(map[string]any{"stretch": "yes"})
	assert.Error(t, err)
}
