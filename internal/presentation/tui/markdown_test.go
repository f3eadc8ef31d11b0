package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/localsettings/internal/presentation/tui"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
	"github.com/stretchr/testify/assert"
)

func TestPageMarkdown(t *testing.T) {
	page := view.Page{
		Title: "Content warnings",
		Sections: []view.Section{{
			Title: "Options",
			Controls: []view.Control{
				{ID: "content_warnings.auto_unfold", Kind: domain.ControlCheckbox, Label: "Unfold", Enabled: true, Checked: true},
				{ID: "content_warnings.filter", Kind: domain.ControlText, Label: "Filter", Placeholder: "Regular expression"},
				{ID: "layout", Kind: domain.ControlRadio, Label: "Layout:", Enabled: true, Hint: "pick one", Options: []view.Option{
					{Value: "auto", Label: "Auto", Selected: true},
					{Value: "single", Label: "Mobile"},
				}},
			},
		}},
	}

	md := tui.PageMarkdown(page)

	assert.Contains(t, md, "# Content warnings\n")
	assert.Contains(t, md, "## Options\n")
	assert.Contains(t, md, "- [x] Unfold `content_warnings.auto_unfold`\n")
	assert.Contains(t, md, "- Filter `content_warnings.filter`: _Regular expression_ _(disabled)_\n")
	assert.Contains(t, md, "  - (•) Auto `auto`\n")
	assert.Contains(t, md, "  - ( ) Mobile `single`\n")
	assert.Contains(t, md, "<br>pick one")
}

func TestMarkdown_Navigation(t *testing.T) {
	d := view.Dialog{
		Navigation: []view.NavEntry{
			{Index: 0, Title: "General", Active: true},
			{Index: 1, Title: "Preferences", Href: "/settings/preferences"},
		},
		Page: view.Page{Title: "General"},
	}
	md := tui.Markdown(d)
	assert.Contains(t, md, "**[0] General** · [1] Preferences ↗")
}

func TestRendererFor_NonTerminal(t *testing.T) {
	assert.False(t, tui.IsTerminal(&bytes.Buffer{}))
	assert.Nil(t, tui.RendererFor(&bytes.Buffer{}))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|___/")
}
