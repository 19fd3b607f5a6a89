// Package term abstracts the terminal: the event types consumed by
// the editor and raw-mode control via golang.org/x/term.
package term

import "github.com/rivereed/lineedit/internal/keymap"

// EventKind discriminates the Event union.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventPaste
	EventResize
	EventFocusGained
	EventFocusLost
)

// MouseKind enumerates the mouse actions we pass through unexamined
// (the default engine ignores Event::Mouse per this package).
type MouseKind int

// Event is one terminal input event.
type Event struct {
	Kind EventKind

	// Key is populated when Kind == EventKey.
	Key keymap.Combo

	// Paste is populated when Kind == EventPaste; newlines are
	// already normalized to '\n'.
	Paste string

	// Cols, Rows are populated when Kind == EventResize.
	Cols, Rows int

	Mouse MouseKind
}
