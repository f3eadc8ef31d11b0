// Package view holds the presentation-neutral models the settings dialog
// renders to. Adapters turn them into JSON, Markdown or terminal output.
package view

import "github.com/aretw0/localsettings/pkg/domain"

// Option is one radio choice with its selection state.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Hint     string `json:"hint,omitempty"`
	Selected bool   `json:"selected"`
}

// Control is a rendered field. A disabled control still carries its value.
type Control struct {
	ID          string             `json:"id"`
	Kind        domain.ControlKind `json:"kind"`
	Path        domain.Path        `json:"path"`
	Label       string             `json:"label"`
	Hint        string             `json:"hint,omitempty"`
	Enabled     bool               `json:"enabled"`
	Checked     bool               `json:"checked,omitempty"`
	Text        string             `json:"text,omitempty"`
	Placeholder string             `json:"placeholder,omitempty"`
	Options     []Option           `json:"options,omitempty"`
}

// Section groups controls under an optional heading.
type Section struct {
	Title    string    `json:"title,omitempty"`
	Controls []Control `json:"controls"`
}

// Page is one rendered page of the settings dialog.
type Page struct {
	ID       string    `json:"id"`
	Index    int       `json:"index"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Control returns the control with the given id.
func (p Page) Control(id string) (Control, bool) {
	for _, s := range p.Sections {
		for _, c := range s.Controls {
			if c.ID == id {
				return c, true
			}
		}
	}
	return Control{}, false
}

// NavEntry is one item of the dialog navigation bar.
type NavEntry struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	Icon     string `json:"icon,omitempty"`
	TextIcon string `json:"text_icon,omitempty"`
	Href     string `json:"href,omitempty"`
	Close    bool   `json:"close,omitempty"`
	Active   bool   `json:"active"`
}

// Dialog is the full modal: navigation plus the current page.
type Dialog struct {
	Navigation []NavEntry `json:"navigation"`
	Page       Page       `json:"page"`
	Closed     bool       `json:"closed"`
}

// Input is a user interaction with a control. Exactly one member is expected:
// Checked for checkboxes, Text for text fields, Value for radio groups.
type Input struct {
	Checked *bool   `json:"checked,omitempty"`
	Text    *string `json:"text,omitempty"`
	Value   *string `json:"value,omitempty"`
}

// Toggle builds a checkbox interaction.
func Toggle(checked bool) Input { return Input{Checked: &checked} }

// Type builds a text field interaction.
func Type(text string) Input { return Input{Text: &text} }

// Choose builds a radio group interaction.
func Choose(value string) Input { return Input{Value: &value} }
