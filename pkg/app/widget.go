package app

import tea "github.com/charmbracelet/bubbletea"

// Widget is the contract every dashboard pane implements. The root
// model calls these from the single bubbletea goroutine, so widgets
// never need their own locking; anything slow happens in the scheduler
// and arrives as a DataUpdateEvent.
type Widget interface {
	// ID is the stable identifier used for routing events and focus.
	ID() string

	// Title is the text drawn in the pane border.
	Title() string

	// MinSize returns the smallest (width, height) the widget renders
	// legibly at. Panes below this show a "too small" placeholder.
	MinSize() (int, int)

	// Update receives broadcast messages: DataUpdateEvent for this
	// widget, TickEvent, and anything else the model forwards.
	Update(msg tea.Msg) tea.Cmd

	// HandleKey processes a key while focused. The bool reports whether
	// the key was consumed; unconsumed keys fall through to the global
	// bindings.
	HandleKey(key tea.KeyMsg) (tea.Cmd, bool)

	// Capturing reports whether the widget is in a modal substate
	// (compose overlay, menu) that must see every key before the
	// global bindings, including the ones that normally quit or move
	// focus.
	Capturing() bool

	// View renders the widget's content for exactly width x height
	// cells, excluding the border the model draws around it.
	View(width, height int) string
}
