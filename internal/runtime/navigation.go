package runtime

import (
	"fmt"
	"sync"

	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
)

// PreferencesHref is where the external preferences entry links to.
const PreferencesHref = "/settings/preferences"

type entryKind int

const (
	entryPage entryKind = iota
	entryLink
	entryClose
)

type navEntry struct {
	kind     entryKind
	title    string
	icon     string
	textIcon string
	href     string
}

var defaultEntries = []navEntry{
	{kind: entryPage, title: "General", icon: "cogs"},
	{kind: entryPage, title: "Compose box", icon: "pencil"},
	{kind: entryPage, title: "Content Warnings", textIcon: "CW"},
	{kind: entryPage, title: "Collapsed toots", icon: "angle-double-up"},
	{kind: entryPage, title: "Media", icon: "image"},
	{kind: entryLink, title: "Preferences", icon: "sliders", href: PreferencesHref},
	{kind: entryClose, title: "Close", icon: "times"},
}

// NavResult reports what selecting an entry did.
type NavResult struct {
	// Index is the current page after the selection.
	Index int
	// Href is set when the entry is an external link; the page is unchanged.
	Href string
	// Closed is true when the close entry was selected.
	Closed bool
}

// Navigator is the dialog navigation state machine.
// States are the page indexes plus closed; the initial state is page 0.
type Navigator struct {
	mu      sync.Mutex
	entries []navEntry
	current int
	closed  bool
	onClose func()
}

// NewNavigator creates a navigator at page 0. onClose is invoked once when
// the close entry is selected.
func NewNavigator(onClose func()) *Navigator {
	return &Navigator{
		entries: defaultEntries,
		onClose: onClose,
	}
}

// Select follows the navigation entry at position entry.
func (n *Navigator) Select(entry int) (NavResult, error) {
	n.mu.Lock()

	if n.closed {
		n.mu.Unlock()
		return NavResult{Index: n.current, Closed: true}, domain.ErrDialogClosed
	}
	if entry < 0 || entry >= len(n.entries) {
		n.mu.Unlock()
		return NavResult{Index: n.current}, fmt.Errorf("%w: %d", domain.ErrUnknownEntry, entry)
	}

	e := n.entries[entry]
	switch e.kind {
	case entryLink:
		res := NavResult{Index: n.current, Href: e.href}
		n.mu.Unlock()
		return res, nil
	case entryClose:
		n.closed = true
		res := NavResult{Index: n.current, Closed: true}
		onClose := n.onClose
		n.mu.Unlock()
		if onClose != nil {
			onClose()
		}
		return res, nil
	default:
		n.current = entry
		res := NavResult{Index: n.current}
		n.mu.Unlock()
		return res, nil
	}
}

// Current returns the current page index and whether the dialog is still open.
func (n *Navigator) Current() (int, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, !n.closed
}

// Entries renders the navigation bar, flagging the entry of the current page.
func (n *Navigator) Entries() []view.NavEntry {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]view.NavEntry, len(n.entries))
	for i, e := range n.entries {
		out[i] = view.NavEntry{
			Index:    i,
			Title:    e.title,
			Icon:     e.icon,
			TextIcon: e.textIcon,
			Href:     e.href,
			Close:    e.kind == entryClose,
			Active:   i == n.current,
		}
	}
	return out
}
