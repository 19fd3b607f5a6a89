// Package emacsmode implements the Emacs edit mode: stateless beyond
// keybindings, with a single keybinding set mapping combos to events.
// Unlike internal/vi and internal/helix there is no grammar or mode
// sub-state — every key is looked up in the keybinding trie and the
// resulting Event.Name is dispatched to an edit.Command through a
// fixed widget table.
package emacsmode

import (
	"unicode"

	"github.com/rivereed/lineedit/internal/edit"
	"github.com/rivereed/lineedit/internal/editor"
	"github.com/rivereed/lineedit/internal/keymap"
)

// State accumulates the pending combo sequence of a chord in
// progress. This is the only state the mode carries — no mode stack,
// no parser, matching "stateless beyond keybindings".
type State struct {
	trie    *keymap.Trie
	pending []keymap.Combo
}

// New returns an Emacs mode consulting trie.
func New(trie *keymap.Trie) *State {
	return &State{trie: trie}
}

// HandleCombo feeds one decoded key combo. It returns true once the
// combo (possibly together with previously pending combos) resolved
// to a bound Event and was dispatched, or was rejected as unbound;
// false while waiting for more combos to complete a chord.
func (s *State) HandleCombo(combo keymap.Combo, e *editor.Editor) bool {
	s.pending = append(s.pending, combo)

	result, event := s.trie.FindSequence(s.pending)
	switch result {
	case keymap.ChordPrefix:
		return false
	case keymap.Matched:
		s.pending = nil
		s.dispatch(event, e)
		return true
	default:
		s.pending = nil
		// A combo that cannot extend any bound prefix falls through
		// to plain self-insertion for a bare printable character.
		if combo.Code == keymap.KeyChar && combo.Mod == keymap.ModNone && unicode.IsPrint(combo.Rune) {
			e.RunEditCommand(edit.Command{Kind: edit.InsertChar, Char: combo.Rune})
		}
		return true
	}
}

// dispatch resolves event, trying UntilFound alternatives in order
// until one has a widget bound.
func (s *State) dispatch(event keymap.Event, e *editor.Editor) {
	if cmd, ok := widgets[event.Name]; ok {
		e.RunEditCommand(cmd)
		return
	}
	for _, alt := range event.UntilFound {
		if cmd, ok := widgets[alt.Name]; ok {
			e.RunEditCommand(cmd)
			return
		}
	}
}

// widgets maps the named-widget vocabulary to the closed
// edit.Command set.
var widgets = map[string]edit.Command{
	"backward-char":        {Kind: edit.MoveLeft},
	"forward-char":         {Kind: edit.MoveRight},
	"backward-word":        {Kind: edit.MoveWordLeft},
	"forward-word":         {Kind: edit.MoveWordRight},
	"beginning-of-line":    {Kind: edit.MoveToLineStart},
	"end-of-line":          {Kind: edit.MoveToLineEnd},
	"beginning-of-buffer":  {Kind: edit.MoveToStart},
	"end-of-buffer":        {Kind: edit.MoveToEnd},
	"previous-line":        {Kind: edit.MoveLineUp},
	"next-line":            {Kind: edit.MoveLineDown},
	"delete-char":          {Kind: edit.Delete},
	"backward-delete-char": {Kind: edit.Backspace},
	"kill-word":            {Kind: edit.CutWordRight},
	"backward-kill-word":   {Kind: edit.CutWordLeft},
	"kill-line":            {Kind: edit.CutToLineEnd},
	"unix-line-discard":    {Kind: edit.ClearToInsertionPoint},
	"yank":                 {Kind: edit.PasteAfter},
	"upcase-word":          {Kind: edit.UppercaseWord},
	"downcase-word":        {Kind: edit.LowercaseWord},
	"capitalize-char":      {Kind: edit.CapitalizeChar},
	"transpose-words":      {Kind: edit.SwapWords},
	"transpose-chars":      {Kind: edit.SwapGraphemes},
	"undo":                 {Kind: edit.Undo},
	"redo":                 {Kind: edit.Redo},
	"select-all":           {Kind: edit.SelectAll},
}

// "clear-screen" and other terminal-level events are intentionally
// absent from widgets: they are handled by the painter, not the
// Editor, and dispatch simply finds no widget for them.
