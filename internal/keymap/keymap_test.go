package keymap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddBindingThenFindMatches(t *testing.T) {
	tr := NewTrie()
	combo := Combo{Mod: ModCtrl, Code: KeyChar, Rune: 'a'}
	require.NoError(t, tr.AddBinding(combo, Event{Name: "move-to-line-start"}))

	res, ev := tr.FindSequence([]Combo{combo})
	require.Equal(t, Matched, res)
	require.Equal(t, "move-to-line-start", ev.Name)
}

func TestChordPrefixReportedBeforeSequenceCompletes(t *testing.T) {
	tr := NewTrie()
	a := Combo{Code: KeyChar, Rune: 'a'}
	b := Combo{Code: KeyChar, Rune: 'b'}
	require.NoError(t, tr.AddSequence([]Combo{a, b}, Event{Name: "two-key-chord"}))

	res, _ := tr.FindSequence([]Combo{a})
	require.Equal(t, ChordPrefix, res)

	res, ev := tr.FindSequence([]Combo{a, b})
	require.Equal(t, Matched, res)
	require.Equal(t, "two-key-chord", ev.Name)
}

func TestUnboundSequenceIsNoMatch(t *testing.T) {
	tr := NewTrie()
	res, _ := tr.FindSequence([]Combo{{Code: KeyChar, Rune: 'z'}})
	require.Equal(t, NoMatch, res)
}

func TestLongerSequenceOverwritesShorterLeafWithPrefix(t *testing.T) {
	tr := NewTrie()
	a := Combo{Code: KeyChar, Rune: 'a'}
	b := Combo{Code: KeyChar, Rune: 'b'}

	require.NoError(t, tr.AddSequence([]Combo{a}, Event{Name: "single-a"}))
	require.NoError(t, tr.AddSequence([]Combo{a, b}, Event{Name: "a-then-b"}))

	res, _ := tr.FindSequence([]Combo{a})
	require.Equal(t, ChordPrefix, res, "single-a leaf was promoted to a prefix")
}

func TestEmptyUntilFoundEventIsRejected(t *testing.T) {
	tr := NewTrie()
	err := tr.AddBinding(Combo{Code: KeyChar, Rune: 'a'}, Event{UntilFound: []Event{}})
	require.Error(t, err, "AddBinding with a non-nil, empty UntilFound should be rejected")
}

func TestRemoveSequenceLeavesDeeperBindingsIntact(t *testing.T) {
	tr := NewTrie()
	a := Combo{Code: KeyChar, Rune: 'a'}
	b := Combo{Code: KeyChar, Rune: 'b'}
	tr.AddSequence([]Combo{a}, Event{Name: "single-a"})
	tr.AddSequence([]Combo{a, b}, Event{Name: "a-then-b"})

	tr.RemoveSequence([]Combo{a})

	res, ev := tr.FindSequence([]Combo{a, b})
	require.Equal(t, Matched, res)
	require.Equal(t, "a-then-b", ev.Name)
}
