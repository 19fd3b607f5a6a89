// Package helix implements the Helix edit-mode state machine of
// Normal/Insert/Select, sharing the grammar package
// with internal/vi but differing in three ways:
// default mode is Normal, Normal-mode motions reset the selection
// anchor before running (one-grapheme-wide selections that grow as
// the motion runs), and 'w'/'e'/'b' use Helix's two-phase semantics.
package helix

import (
	"unicode"

	"github.com/rivereed/lineedit/internal/edit"
	"github.com/rivereed/lineedit/internal/editor"
	"github.com/rivereed/lineedit/internal/parse"
)

// Mode is the Helix sub-mode.
type Mode int

const (
	Normal Mode = iota
	Insert
	Select
)

// State is one Helix mode-machine instance.
type State struct {
	mode   Mode
	parser *parse.Parser
	search parse.CharSearch
}

// New returns a Helix mode machine starting in Normal mode.
func New() *State {
	p := parse.NewParser()
	p.SetStandaloneOperators(true)
	return &State{mode: Normal, parser: p}
}

// Mode reports the current sub-mode.
func (s *State) Mode() Mode { return s.mode }

// HandleKey consumes one rune, see vi.State.HandleKey for the
// local-keymap-first contract this mirrors.
func (s *State) HandleKey(r rune, e *editor.Editor) bool {
	if s.mode == Insert {
		return s.handleInsert(r, e)
	}
	return s.handleMotionMode(r, e)
}

// HandleEsc returns to Normal mode.
func (s *State) HandleEsc(e *editor.Editor) {
	if s.mode == Insert {
		e.RunEditCommand(edit.Command{Kind: edit.MoveLeft})
	}
	if s.mode == Select {
		e.Selection.Reset()
	}
	s.mode = Normal
}

func (s *State) handleInsert(r rune, e *editor.Editor) bool {
	if !unicode.IsPrint(r) {
		return false
	}
	e.RunEditCommand(edit.Command{Kind: edit.InsertChar, Char: r})
	return true
}

// EnterSelect switches to Select mode without disturbing the current
// anchor.
func (s *State) EnterSelect(e *editor.Editor) {
	if !e.Selection.Active() {
		e.Selection.Set(e.Buffer.Offset())
	}
	s.mode = Select
}

func (s *State) handleMotionMode(r rune, e *editor.Editor) bool {
	status := s.parser.Feed(r)
	switch status {
	case parse.Incomplete:
		return true
	case parse.Invalid:
		s.parser.Reset()
		return true
	}

	seq := s.parser.Sequence()
	s.parser.Reset()

	if !seq.IsComplete(true) {
		return true
	}

	s.apply(seq, e)
	return true
}

func (s *State) apply(seq parse.ParsedSequence, e *editor.Editor) {
	factor := seq.Factor()

	if seq.Motion.Motion == parse.MotionFindChar || seq.Motion.Motion == parse.MotionFindCharBack ||
		seq.Motion.Motion == parse.MotionTillChar || seq.Motion.Motion == parse.MotionTillCharBack {
		s.search.Remember(seq.Motion.Motion, seq.Motion.Char)
	}

	switch seq.Command {
	case parse.CmdNone:
		for i := 0; i < factor; i++ {
			s.runMotion(seq.Motion, e)
		}
	case parse.CmdDelete:
		// Helix's d is selection-first: it never carries a motion of
		// its own, it cuts whatever selection Normal/Select-mode
		// motions already built.
		e.RunEditCommand(edit.Command{Kind: edit.CutSelection})
	case parse.CmdChange:
		e.RunEditCommand(edit.Command{Kind: edit.CutSelection})
		s.mode = Insert
	case parse.CmdYank:
		e.RunEditCommand(edit.Command{Kind: edit.CopySelection})
	case parse.CmdPut:
		e.RunEditCommand(edit.Command{Kind: edit.PasteAfter})
	case parse.CmdPutBefore:
		e.RunEditCommand(edit.Command{Kind: edit.PasteBefore})
	case parse.CmdUndo:
		for i := 0; i < factor; i++ {
			e.RunEditCommand(edit.Command{Kind: edit.Undo})
		}
	case parse.CmdRedo:
		for i := 0; i < factor; i++ {
			e.RunEditCommand(edit.Command{Kind: edit.Redo})
		}
	case parse.CmdVisual:
		s.EnterSelect(e)
	}
}

// runMotion executes one motion step. In Normal mode every motion first resets the anchor to the current
// cursor position, so each motion produces a new one-grapheme-wide
// selection that extends as the motion runs; in Select mode the
// anchor is left untouched.
func (s *State) runMotion(res parse.ParseResult, e *editor.Editor) {
	if s.mode == Normal {
		e.Selection.Set(e.Buffer.Offset())
	} else if !e.Selection.Active() {
		e.Selection.Set(e.Buffer.Offset())
	}

	switch res.Motion {
	case parse.MotionLeft:
		e.RunEditCommand(edit.Command{Kind: edit.MoveLeft, Select: true})
	case parse.MotionRight:
		e.RunEditCommand(edit.Command{Kind: edit.MoveRight, Select: true})
	case parse.MotionUp:
		e.RunEditCommand(edit.Command{Kind: edit.MoveLineUp, Select: true})
	case parse.MotionDown:
		e.RunEditCommand(edit.Command{Kind: edit.MoveLineDown, Select: true})
	case parse.MotionWordForward:
		s.selectWordForward(e)
	case parse.MotionWordEnd, parse.MotionBigWordEnd:
		e.RunEditCommand(edit.Command{Kind: edit.MoveWordRight, Select: true})
		e.RunEditCommand(edit.Command{Kind: edit.MoveLeft, Select: true})
	case parse.MotionWordBackward:
		e.RunEditCommand(edit.Command{Kind: edit.MoveWordLeft, Select: true})
	case parse.MotionBigWordForward:
		e.RunEditCommand(edit.Command{Kind: edit.MoveBigWordRight, Select: true})
	case parse.MotionBigWordBackward:
		e.RunEditCommand(edit.Command{Kind: edit.MoveBigWordLeft, Select: true})
	case parse.MotionLineStart:
		e.RunEditCommand(edit.Command{Kind: edit.MoveToLineStart, Select: true})
	case parse.MotionLineEnd:
		e.RunEditCommand(edit.Command{Kind: edit.MoveToLineEnd, Select: true})
	case parse.MotionLine:
		start, end := e.Buffer.CurrentLineRange()
		e.Selection.Set(start)
		e.Buffer.SetCursorUnsafe(end)
	case parse.MotionFindChar:
		e.Buffer.MoveRightUntil(res.Char)
	case parse.MotionTillChar:
		e.Buffer.MoveRightBefore(res.Char)
	case parse.MotionFindCharBack:
		e.Buffer.MoveLeftUntil(res.Char)
	case parse.MotionTillCharBack:
		e.Buffer.MoveLeftBefore(res.Char)
	}
}

// selectWordForward implements this package difference #3: 'w'
// selects from the current position to the end of the current word
// *and then* to the start of the next word (landing in the gap before
// it), matching the scenario: Helix, "hello world" @0, `w d` ->
// "world" @0 (the word+trailing-gap "hello " is deleted).
func (s *State) selectWordForward(e *editor.Editor) {
	e.RunEditCommand(edit.Command{Kind: edit.MoveWordRight, Select: true})
}
