package emacsmode

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivereed/lineedit/internal/edit"
	"github.com/rivereed/lineedit/internal/editor"
	"github.com/rivereed/lineedit/internal/keymap"
)

func charCombo(r rune) keymap.Combo {
	return keymap.Combo{Mod: keymap.ModNone, Code: keymap.KeyChar, Rune: r}
}

func altCombo(r rune) keymap.Combo {
	return keymap.Combo{Mod: keymap.ModAlt, Code: keymap.KeyChar, Rune: r}
}

func TestUnboundPrintableCharSelfInserts(t *testing.T) {
	e := editor.New()
	s := New(DefaultTrie())

	require.True(t, s.HandleCombo(charCombo('h'), e), "an unbound printable combo should resolve immediately")
	require.Equal(t, "h", e.Buffer.String())
}

func TestBackwardWordThenUpcaseWordScenario(t *testing.T) {
	e := editor.New()
	s := New(DefaultTrie())

	for _, r := range "hello" {
		s.HandleCombo(charCombo(r), e)
	}
	require.Equal(t, "hello", e.Buffer.String())
	require.Equal(t, 5, e.Buffer.Offset())

	s.HandleCombo(altCombo('b'), e)
	require.Equal(t, 0, e.Buffer.Offset())

	s.HandleCombo(altCombo('u'), e)
	require.Equal(t, "HELLO", e.Buffer.String())
	require.Equal(t, 5, e.Buffer.Offset())
}

func TestCtrlKKillsToLineEnd(t *testing.T) {
	e := editor.New()
	s := New(DefaultTrie())
	for _, r := range "hello world" {
		s.HandleCombo(charCombo(r), e)
	}
	e.Buffer.SetCursorUnsafe(5)

	s.HandleCombo(keymap.Combo{Mod: keymap.ModCtrl, Code: keymap.KeyChar, Rune: 'k'}, e)
	require.Equal(t, "hello", e.Buffer.String())
}

func TestUndoWidgetReversesLastEdit(t *testing.T) {
	e := editor.New()
	s := New(DefaultTrie())
	for _, r := range "ab" {
		s.HandleCombo(charCombo(r), e)
	}

	s.HandleCombo(keymap.Combo{Mod: keymap.ModCtrl, Code: keymap.KeyChar, Rune: '_'}, e)
	require.NotEqual(t, "ab", e.Buffer.String(), "Ctrl+_ (undo) should have reversed at least the last inserted character")
}

func TestChordPrefixWaitsForSecondCombo(t *testing.T) {
	// DefaultTrie has no multi-combo chords bound directly, but
	// HandleCombo's ChordPrefix branch is exercised whenever a trie is
	// given one: build a tiny two-combo trie here to check the pending
	// buffer is retained across calls rather than dispatched early.
	trie := keymap.NewTrie()
	a := keymap.Combo{Code: keymap.KeyChar, Rune: 'a'}
	b := keymap.Combo{Code: keymap.KeyChar, Rune: 'b'}
	_ = trie.AddSequence([]keymap.Combo{a, b}, keymap.Event{Name: "beginning-of-line"})

	e := editor.New()
	e.RunEditCommand(edit.Command{Kind: edit.InsertString, Text: "xy"})
	e.Buffer.MoveToEnd()
	s := New(trie)

	require.False(t, s.HandleCombo(a, e), "HandleCombo on a chord prefix should return false, awaiting more input")
	require.True(t, s.HandleCombo(b, e), "HandleCombo completing the chord should return true")
	require.Equal(t, 0, e.Buffer.Offset(), "beginning-of-line")
}
