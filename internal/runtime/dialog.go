package runtime

import (
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
)

// Dialog is the settings modal: a navigator plus the page renderer, reading
// the latest snapshot on every render and forwarding changes to emit.
type Dialog struct {
	renderer *Renderer
	nav      *Navigator
	settings func() domain.Settings
	emit     Emitter
}

// NewDialog opens a dialog on the first page.
func NewDialog(renderer *Renderer, settings func() domain.Settings, emit Emitter, onClose func()) *Dialog {
	return &Dialog{
		renderer: renderer,
		nav:      NewNavigator(onClose),
		settings: settings,
		emit:     emit,
	}
}

// View renders the navigation bar and the current page.
func (d *Dialog) View() view.Dialog {
	index, open := d.nav.Current()
	return view.Dialog{
		Navigation: d.nav.Entries(),
		Page:       d.renderer.Render(index, d.settings(), d.emit).View,
		Closed:     !open,
	}
}

// Navigate selects a navigation entry.
func (d *Dialog) Navigate(entry int) (NavResult, error) {
	return d.nav.Select(entry)
}

// Interact forwards an interaction to a field of the current page.
func (d *Dialog) Interact(fieldID string, in view.Input) (domain.Change, error) {
	index, open := d.nav.Current()
	if !open {
		return domain.Change{}, domain.ErrDialogClosed
	}
	return d.renderer.Render(index, d.settings(), d.emit).Interact(fieldID, in)
}
