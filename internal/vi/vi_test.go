package vi

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

func TestViDeleteWordBackwardFromEnd(t *testing.T) {
	e := editor.New()
	insertText(e, "This is a test")
	e.Buffer.MoveToEnd()

	s := New()
	s.HandleEsc(e) // Insert -> Normal
	e.Buffer.MoveToEnd()

	feedKeys(s, e, "db")

	require.Equal(t, "This is a ", e.Buffer.String())
	require.Equal(t, 10, e.Buffer.Offset())
}

func TestViDefaultEntryModeIsInsert(t *testing.T) {
	s := New()
	require.Equal(t, Insert, s.Mode(), "reedline's Vi default entry")
}

func TestViEscFromInsertMovesCursorLeftOneGrapheme(t *testing.T) {
	e := editor.New()
	insertText(e, "ab")
	s := New()

	s.HandleEsc(e)
	require.Equal(t, Normal, s.Mode())
	require.Equal(t, 1, e.Buffer.Offset(), "Vi's off-by-one convention")
}

func TestViCharSearchSemicolonReplaysLastFind(t *testing.T) {
	e := editor.New()
	insertText(e, "a.b.c.d")
	s := New()
	s.HandleEsc(e)
	e.Buffer.MoveToStart()

	feedKeys(s, e, "f.")
	require.Equal(t, 1, e.Buffer.Offset())
	feedKeys(s, e, ";")
	require.Equal(t, 3, e.Buffer.Offset())
}

func TestViDoubledCommandOperatesOnWholeLine(t *testing.T) {
	e := editor.New()
	insertText(e, "delete me")
	s := New()
	s.HandleEsc(e)
	e.Buffer.MoveToStart()

	feedKeys(s, e, "dd")
	require.Equal(t, "", e.Buffer.String())
}

func TestViChangeInsidePairEntersInsertMode(t *testing.T) {
	e := editor.New()
	insertText(e, `say "hello" now`)
	s := New()
	s.HandleEsc(e)
	e.Buffer.SetCursorUnsafe(6) // inside the quotes

	feedKeys(s, e, `ci"`)
	require.Equal(t, Insert, s.Mode())
	require.Equal(t, `say "" now`, e.Buffer.String())
}
