package domain

// ControlKind is the input a field renders as.
type ControlKind string

const (
	ControlCheckbox ControlKind = "checkbox"
	ControlRadio    ControlKind = "radio"
	ControlText     ControlKind = "text"
)

// FieldOption is one choice of a radio group.
type FieldOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	Hint  string `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// FieldDescriptor describes how one preference is edited and when it is enabled.
type FieldDescriptor struct {
	ID           string        `json:"id" yaml:"id"`
	Path         Path          `json:"path" yaml:"path"`
	Label        string        `json:"label" yaml:"label"`
	Hint         string        `json:"hint,omitempty" yaml:"hint,omitempty"`
	Options      []FieldOption `json:"options,omitempty" yaml:"options,omitempty"`
	DependsOn    []Path        `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	DependsOnNot []Path        `json:"depends_on_not,omitempty" yaml:"depends_on_not,omitempty"`
	Placeholder  string        `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Mode selects the control kind: options win over placeholder, checkbox is the fallback.
func (d FieldDescriptor) Mode() ControlKind {
	if len(d.Options) > 0 {
		return ControlRadio
	}
	if d.Placeholder != "" {
		return ControlText
	}
	return ControlCheckbox
}
