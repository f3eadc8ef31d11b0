package localsettings_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/localsettings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, eng *localsettings.Engine, script string) string {
	t.Helper()
	var out bytes.Buffer
	r := localsettings.NewRunner()
	r.Input = strings.NewReader(script)
	r.Output = &out
	r.Headless = true
	require.NoError(t, r.Run(context.Background(), eng, "alice"))
	return out.String()
}

func TestRunner_NavigateAndToggle(t *testing.T) {
	eng := localsettings.New()

	out := runScript(t, eng, "3\ntoggle collapsed.enabled\n6\n")

	assert.Contains(t, out, "# Collapsed toots")
	assert.Contains(t, out, "_(disabled)_", "dependent fields are disabled after collapsing is turned off")
	assert.Contains(t, out, "Bye!")

	settings, err := eng.Settings(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, settings.Collapsed.Enabled)
}

func TestRunner_PreferencesLink(t *testing.T) {
	out := runScript(t, localsettings.New(), "5\nquit\n")
	assert.Contains(t, out, "Open /settings/preferences")
	assert.Contains(t, out, "Bye!")
}

func TestRunner_ReportsErrors(t *testing.T) {
	eng := localsettings.New()
	out := runScript(t, eng, "99\nfrobnicate layout\nchoose layout tablet\nchoose layout single\n")

	assert.Contains(t, out, "unknown navigation entry")
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, "invalid settings value")

	settings, err := eng.Settings(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "single", settings.Layout)
}

func TestRunner_RequiresIO(t *testing.T) {
	r := localsettings.NewRunner()
	assert.Error(t, r.Run(context.Background(), localsettings.New(), "alice"))
}
