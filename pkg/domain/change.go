package domain

import "time"

// Change is the event a settings field emits when the user interacts with it.
// Changes are reduced into snapshots by Apply.
type Change struct {
	Path  Path  `json:"path"`
	Value Value `json:"value"`
}

// NewChange builds a change from a dotted path.
func NewChange(path string, v Value) Change {
	return Change{Path: ParsePath(path), Value: v}
}

// ChangeEvent is published after a change was applied to an account's settings.
type ChangeEvent struct {
	Account   string    `json:"account"`
	Path      Path      `json:"path"`
	Old       Value     `json:"old"`
	New       Value     `json:"new"`
	Timestamp time.Time `json:"timestamp"`
}
