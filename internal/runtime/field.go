package runtime

import (
	"fmt"

	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
)

// Enabled computes whether a field accepts interactions:
// every DependsOn path must be truthy and every DependsOnNot path falsy.
// Empty lists are satisfied; paths that do not resolve are falsy.
func Enabled(s domain.Settings, d domain.FieldDescriptor) bool {
	for _, p := range d.DependsOn {
		if !domain.Lookup(s, p).Truthy() {
			return false
		}
	}
	for _, p := range d.DependsOnNot {
		if domain.Lookup(s, p).Truthy() {
			return false
		}
	}
	return true
}

// BuildControl renders a field against a snapshot.
func BuildControl(s domain.Settings, d domain.FieldDescriptor) view.Control {
	current := domain.Lookup(s, d.Path)
	c := view.Control{
		ID:      d.ID,
		Kind:    d.Mode(),
		Path:    d.Path,
		Label:   d.Label,
		Hint:    d.Hint,
		Enabled: Enabled(s, d),
	}

	switch c.Kind {
	case domain.ControlRadio:
		c.Options = make([]view.Option, len(d.Options))
		for i, o := range d.Options {
			c.Options[i] = view.Option{
				Value:    o.Value,
				Label:    o.Label,
				Hint:     o.Hint,
				Selected: current.Equal(domain.String(o.Value)),
			}
		}
	case domain.ControlText:
		c.Text = current.Text()
		c.Placeholder = d.Placeholder
	default:
		c.Checked, _ = current.AsBool()
	}
	return c
}

// Interact turns a user interaction into the change the field emits.
// Radio groups emit the chosen option value, text fields the raw text and
// checkboxes the boolean state. Disabled fields emit nothing.
func Interact(s domain.Settings, d domain.FieldDescriptor, in view.Input) (domain.Change, error) {
	if !Enabled(s, d) {
		return domain.Change{}, fmt.Errorf("%w: %s", domain.ErrFieldDisabled, d.ID)
	}

	switch d.Mode() {
	case domain.ControlRadio:
		if in.Value == nil {
			return domain.Change{}, fmt.Errorf("%w: radio field %s expects a value", domain.ErrTypeMismatch, d.ID)
		}
		for _, o := range d.Options {
			if o.Value == *in.Value {
				return domain.Change{Path: d.Path, Value: domain.String(o.Value)}, nil
			}
		}
		return domain.Change{}, fmt.Errorf("%w: %q is not an option of %s", domain.ErrInvalidValue, *in.Value, d.ID)
	case domain.ControlText:
		if in.Text == nil {
			return domain.Change{}, fmt.Errorf("%w: text field %s expects text", domain.ErrTypeMismatch, d.ID)
		}
		return domain.Change{Path: d.Path, Value: domain.String(*in.Text)}, nil
	default:
		if in.Checked == nil {
			return domain.Change{}, fmt.Errorf("%w: checkbox %s expects a checked state", domain.ErrTypeMismatch, d.ID)
		}
		return domain.Change{Path: d.Path, Value: domain.Bool(*in.Checked)}, nil
	}
}
