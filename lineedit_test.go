package lineedit

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivereed/lineedit/internal/completion"
	"github.com/rivereed/lineedit/internal/edit"
	"github.com/rivereed/lineedit/internal/editor"
	"github.com/rivereed/lineedit/internal/emacsmode"
	"github.com/rivereed/lineedit/internal/keymap"
	"github.com/rivereed/lineedit/internal/painter"
)

func insertText(ed *editor.Editor, text string) {
	ed.RunEditCommand(edit.Command{Kind: edit.InsertString, Text: text})
}

func TestNavigationCommandMapsArrowAndEraseKeys(t *testing.T) {
	_, ok := navigationCommand(keymap.Combo{Code: keymap.KeyLeft})
	require.True(t, ok, "KeyLeft should map to a navigation command")

	cmd, ok := navigationCommand(keymap.Combo{Code: keymap.KeyBackspace})
	require.True(t, ok)
	require.Equal(t, edit.Backspace, cmd.Kind)

	_, ok = navigationCommand(keymap.Combo{Code: keymap.KeyChar, Rune: 'a'})
	require.False(t, ok, "a plain printable char should not be a navigation command")
}

func TestHandleKeyCtrlCReturnsInterruptSignal(t *testing.T) {
	s := New(WithIO(strings.NewReader(""), io.Discard))
	ed := editor.New()
	sig, done := s.handleKey(keymap.Combo{Mod: keymap.ModCtrl, Code: keymap.KeyChar, Rune: 'c'}, ed, nil, nil, nil)
	require.True(t, done)
	require.Equal(t, SignalCtrlC, sig.Kind)
}

func TestHandleKeyCtrlDOnEmptyBufferReturnsEOFSignal(t *testing.T) {
	s := New(WithIO(strings.NewReader(""), io.Discard))
	ed := editor.New()
	sig, done := s.handleKey(keymap.Combo{Mod: keymap.ModCtrl, Code: keymap.KeyChar, Rune: 'd'}, ed, nil, nil, nil)
	require.True(t, done)
	require.Equal(t, SignalCtrlD, sig.Kind)
}

func TestHandleKeyCtrlDOnNonEmptyBufferFallsThroughToEmacsDispatch(t *testing.T) {
	s := New(WithIO(strings.NewReader(""), io.Discard))
	ed := editor.New()
	insertText(ed, "x")
	ed.Buffer.MoveToStart()
	emacsState := emacsmode.New(s.trie)

	sig, done := s.handleKey(keymap.Combo{Mod: keymap.ModCtrl, Code: keymap.KeyChar, Rune: 'd'}, ed, nil, nil, emacsState)
	require.False(t, done, "Ctrl+d on a non-empty buffer should not terminate ReadLine, got signal %+v", sig)
	require.Equal(t, "", ed.Buffer.String())
}

func TestHandleKeyEnterReturnsSuccessAndSavesHistory(t *testing.T) {
	s := New(WithIO(strings.NewReader(""), io.Discard))
	ed := editor.New()
	insertText(ed, "hello")

	sig, done := s.handleKey(keymap.Combo{Code: keymap.KeyEnter}, ed, nil, nil, nil)
	require.True(t, done)
	require.Equal(t, SignalSuccess, sig.Kind)
	require.Equal(t, "hello", sig.Line)

	n, err := s.hist.CountAll()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

type stubCompleter struct {
	suggestions []completion.Suggestion
}

func (c stubCompleter) Complete(line string, pos int) []completion.Suggestion {
	return c.suggestions
}

func TestHandleTabQuickCompletesASoleSuggestion(t *testing.T) {
	s := New(WithIO(strings.NewReader(""), io.Discard), WithCompleter(stubCompleter{
		suggestions: []completion.Suggestion{{Value: "foo", Span: completion.Span{Start: 0, End: 2}}},
	}))
	ed := editor.New()
	insertText(ed, "fo")

	sig, done := s.handleKey(keymap.Combo{Code: keymap.KeyTab}, ed, nil, nil, nil)
	require.False(t, done, "Tab should never terminate ReadLine, got %+v", sig)
	require.Equal(t, "foo", ed.Buffer.String())
	require.Equal(t, 3, ed.Buffer.Offset())
	require.False(t, s.activeMenu.IsActive(), "the menu should deactivate itself immediately after a quick-complete")
}

func TestHandleTabWithNoCompleterIsANoOp(t *testing.T) {
	s := New(WithIO(strings.NewReader(""), io.Discard))
	ed := editor.New()
	insertText(ed, "fo")

	s.handleKey(keymap.Combo{Code: keymap.KeyTab}, ed, nil, nil, nil)
	require.Equal(t, "fo", ed.Buffer.String())
}

type stubHighlighter struct{}

func (stubHighlighter) Highlight(line string, cursorPos int) completion.StyledText {
	return completion.StyledText{{Text: line}}
}

type stubHinter struct{}

func (stubHinter) CompleteHint() string  { return "-hint" }
func (stubHinter) NextHintToken() string { return "hint" }

func TestRepaintWiresHighlighterAndHinterIntoTheFrame(t *testing.T) {
	var out bytes.Buffer
	s := New(WithIO(strings.NewReader(""), &out), WithHighlighter(stubHighlighter{}), WithHinter(stubHinter{}))
	ed := editor.New()
	insertText(ed, "hello")

	s.repaint(painter.New(&out), ed)
	require.NotZero(t, out.Len(), "repaint should have written something to the output")
	require.Contains(t, out.String(), "hello")
}

func TestDefaultPromptRendersPlainIndicator(t *testing.T) {
	p := DefaultPrompt{}
	require.Equal(t, "> ", p.RenderPromptLeft())
	ind := p.RenderPromptHistorySearchIndicator(HistorySearchIndicator{Status: HistorySearchFailing, Term: "go"})
	require.Contains(t, ind, "failed")
	require.Contains(t, ind, "go")
}
