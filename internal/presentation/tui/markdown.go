package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
)

// Markdown renders a dialog view: the navigation bar followed by the page.
func Markdown(d view.Dialog) string {
	var sb strings.Builder

	entries := make([]string, len(d.Navigation))
	for i, e := range d.Navigation {
		label := fmt.Sprintf("[%d] %s", e.Index, e.Title)
		switch {
		case e.Active:
			label = "**" + label + "**"
		case e.Href != "":
			label += " ↗"
		}
		entries[i] = label
	}
	sb.WriteString(strings.Join(entries, " · "))
	sb.WriteString("\n\n")
	sb.WriteString(PageMarkdown(d.Page))
	return sb.String()
}

// PageMarkdown renders one page as a Markdown document.
func PageMarkdown(p view.Page) string {
	var sb strings.Builder
	sb.WriteString("# " + p.Title + "\n")

	for _, sec := range p.Sections {
		if sec.Title != "" {
			sb.WriteString("\n## " + sec.Title + "\n")
		}
		sb.WriteString("\n")
		for _, c := range sec.Controls {
			writeControl(&sb, c)
		}
	}
	return sb.String()
}

func writeControl(sb *strings.Builder, c view.Control) {
	suffix := ""
	if !c.Enabled {
		suffix = " _(disabled)_"
	}

	switch c.Kind {
	case domain.ControlRadio:
		fmt.Fprintf(sb, "- %s `%s`%s\n", c.Label, c.ID, suffix)
		for _, o := range c.Options {
			mark := "( )"
			if o.Selected {
				mark = "(•)"
			}
			fmt.Fprintf(sb, "  - %s %s `%s`\n", mark, o.Label, o.Value)
		}
	case domain.ControlText:
		text := c.Text
		if text == "" {
			text = "_" + c.Placeholder + "_"
		} else {
			text = "`" + text + "`"
		}
		fmt.Fprintf(sb, "- %s `%s`: %s%s\n", c.Label, c.ID, text, suffix)
	default:
		mark := "[ ]"
		if c.Checked {
			mark = "[x]"
		}
		fmt.Fprintf(sb, "- %s %s `%s`%s\n", mark, c.Label, c.ID, suffix)
	}

	if c.Hint != "" {
		fmt.Fprintf(sb, "  <br>%s\n", c.Hint)
	}
}
