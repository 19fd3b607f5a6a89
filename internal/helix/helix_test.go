package helix

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivereed/lineedit/internal/edit"
	"github.com/rivereed/lineedit/internal/editor"
)

func insertText(e *editor.Editor, text string) {
	e.RunEditCommand(edit.Command{Kind: edit.InsertString, Text: text})
}

func feedKeys(s *State, e *editor.Editor, keys string) {
	for _, r := range keys {
		s.HandleKey(r, e)
	}
}

func TestHelixDefaultEntryModeIsNormal(t *testing.T) {
	s := New()
	require.Equal(t, Normal, s.Mode())
}

func TestHelixWordForwardThenDeleteTakesTrailingGap(t *testing.T) {
	e := editor.New()
	insertText(e, "hello world")
	e.Buffer.MoveToStart()
	s := New()

	feedKeys(s, e, "wd")

	require.Equal(t, "world", e.Buffer.String())
	require.Equal(t, 0, e.Buffer.Offset())
}

func TestHelixNormalModeMotionResetsAnchorPerMotion(t *testing.T) {
	e := editor.New()
	insertText(e, "abcdef")
	e.Buffer.SetCursorUnsafe(2)
	s := New()

	feedKeys(s, e, "l")
	start, end, ok := e.Selection.Range(e.Buffer.Offset())
	require.True(t, ok, "a Normal-mode motion should leave an active selection")
	require.Equal(t, 2, start)
	require.Equal(t, 3, end)

	// A second motion in Normal mode resets the anchor to the cursor
	// rather than extending the first selection.
	feedKeys(s, e, "l")
	start, end, ok = e.Selection.Range(e.Buffer.Offset())
	require.True(t, ok)
	require.Equal(t, 3, start, "anchor reset, not extended")
	require.Equal(t, 4, end)
}

func TestHelixSelectModeAnchorStaysFixedAcrossMotions(t *testing.T) {
	e := editor.New()
	insertText(e, "abcdef")
	e.Buffer.SetCursorUnsafe(1)
	s := New()
	s.EnterSelect(e)

	feedKeys(s, e, "ll")

	start, end, ok := e.Selection.Range(e.Buffer.Offset())
	require.True(t, ok, "expected an active selection in Select mode")
	require.Equal(t, 1, start, "anchor fixed at 1")
	require.Equal(t, 3, end)
}

func TestHelixEscFromSelectClearsSelectionAndReturnsToNormal(t *testing.T) {
	e := editor.New()
	insertText(e, "abcdef")
	s := New()
	s.EnterSelect(e)
	feedKeys(s, e, "l")

	s.HandleEsc(e)
	require.Equal(t, Normal, s.Mode())

	_, _, ok := e.Selection.Range(e.Buffer.Offset())
	require.False(t, ok, "Esc from Select mode should clear the selection")
}
