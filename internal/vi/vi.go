// Package vi implements the Vi edit-mode state machine: Normal/Insert/
// Visual, consuming raw keys and producing edit.Command sequences run
// against an editor.Editor.
package vi

import (
	"unicode"

	"github.com/rivereed/lineedit/internal/edit"
	"github.com/rivereed/lineedit/internal/editor"
	"github.com/rivereed/lineedit/internal/parse"
)

// Mode is the Vi sub-mode.
type Mode int

const (
	Normal Mode = iota
	Insert
	Visual
)

// State is one Vi mode-machine instance. It owns the parser buffer
// and the character-search memory, both of which persist across key
// sequences and mode switches; neither is cleared on Insert entry or
// exit.
type State struct {
	mode   Mode
	parser *parse.Parser
	search parse.CharSearch

	// visualLine marks the visual selection as linewise rather than
	// characterwise (teacher's `vi-visual-line-mode`).
	visualLine bool
}

// New returns a Vi mode machine starting in Insert (reedline's own
// default entry mode for Vi — Helix differs, see internal/helix).
func New() *State {
	return &State{mode: Insert, parser: parse.NewParser()}
}

// Mode reports the current sub-mode.
func (s *State) Mode() Mode { return s.mode }

// HandleKey consumes one printable rune against e, returning true if
// the key was dispatched to the grammar/editor (false means the
// caller's keymap should be consulted instead: keybindings are
// consulted only for bindings that are not part of the Vi grammar).
func (s *State) HandleKey(r rune, e *editor.Editor) bool {
	switch s.mode {
	case Insert:
		return s.handleInsert(r, e)
	default:
		return s.handleNormalOrVisual(r, e)
	}
}

// HandleEsc returns to Normal mode from Insert, per the
// cursor moves left one grapheme so it rests on the character just
// typed, matching Vi's off-by-one convention.
func (s *State) HandleEsc(e *editor.Editor) {
	if s.mode == Insert {
		e.RunEditCommand(edit.Command{Kind: edit.MoveLeft})
		s.mode = Normal
		return
	}
	if s.mode == Visual {
		e.Selection.Reset()
		s.mode = Normal
	}
}

func (s *State) handleInsert(r rune, e *editor.Editor) bool {
	if !unicode.IsPrint(r) {
		return false
	}
	e.RunEditCommand(edit.Command{Kind: edit.InsertChar, Char: r})
	return true
}

// EnterVisual starts character-wise Visual mode, marking the
// selection anchor at the cursor.
func (s *State) EnterVisual(e *editor.Editor, linewise bool) {
	s.mode = Visual
	s.visualLine = linewise
	e.Selection.Set(e.Buffer.Offset())
}

func (s *State) handleNormalOrVisual(r rune, e *editor.Editor) bool {
	s.parser.SetStandaloneOperators(s.mode == Visual)
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

	if !seq.IsComplete(s.mode == Visual) {
		// A command requiring a motion in Normal mode with no motion
		// typed yet (e.g. bare 'd') never reaches here because the
		// parser itself holds Incomplete until a motion or doubled
		// char arrives, and in Visual mode a bare d/c/y is complete
		// and acts on the selection; this branch is a defensive guard.
		return true
	}

	s.apply(seq, e)
	return true
}

// apply interprets a complete ParsedSequence against e, the bridge
// from parsed grammar to buffer/editor operations ("to_reedline_event"
// in original_source's vocabulary).
func (s *State) apply(seq parse.ParsedSequence, e *editor.Editor) {
	factor := seq.Factor()

	if seq.Motion.Motion == parse.MotionFindChar || seq.Motion.Motion == parse.MotionFindCharBack ||
		seq.Motion.Motion == parse.MotionTillChar || seq.Motion.Motion == parse.MotionTillCharBack {
		s.search.Remember(seq.Motion.Motion, seq.Motion.Char)
	}
	if seq.Motion.Motion == parse.MotionRepeatFind {
		if m, ch, ok := s.search.Replay(); ok {
			seq.Motion = parse.ParseResult{Status: parse.Valid, Motion: m, Char: ch}
		}
	}
	if seq.Motion.Motion == parse.MotionRepeatFindRev {
		if m, ch, ok := s.search.ReplayReversed(); ok {
			seq.Motion = parse.ParseResult{Status: parse.Valid, Motion: m, Char: ch}
		}
	}

	if s.mode == Visual {
		s.applyVisual(seq, e)
		return
	}

	switch seq.Command {
	case parse.CmdNone:
		for i := 0; i < factor; i++ {
			s.moveBy(seq.Motion, e)
		}
	case parse.CmdDelete, parse.CmdChange, parse.CmdYank:
		s.applyOperatorMotion(seq, factor, e)
	case parse.CmdDeleteInsidePair, parse.CmdChangeInsidePair, parse.CmdYankInsidePair,
		parse.CmdDeleteAroundPair, parse.CmdChangeAroundPair, parse.CmdYankAroundPair:
		s.applyPairOperator(seq, e)
	case parse.CmdPut:
		e.RunEditCommand(edit.Command{Kind: edit.PasteAfter})
	case parse.CmdPutBefore:
		e.RunEditCommand(edit.Command{Kind: edit.PasteBefore})
	case parse.CmdDeleteChar:
		for i := 0; i < factor; i++ {
			e.RunEditCommand(edit.Command{Kind: edit.CutRightGrapheme})
		}
	case parse.CmdReplaceChar:
		e.RunEditCommand(edit.Command{Kind: edit.CutRightGrapheme})
		e.RunEditCommand(edit.Command{Kind: edit.InsertChar, Char: seq.CommandArg})
		e.RunEditCommand(edit.Command{Kind: edit.MoveLeft})
	case parse.CmdSubstitute:
		for i := 0; i < factor; i++ {
			e.RunEditCommand(edit.Command{Kind: edit.CutRightGrapheme})
		}
		s.mode = Insert
	case parse.CmdChangeEOL:
		e.RunEditCommand(edit.Command{Kind: edit.CutToLineEnd})
		s.mode = Insert
	case parse.CmdDeleteEOL:
		e.RunEditCommand(edit.Command{Kind: edit.CutToLineEnd})
	case parse.CmdAppendEOL:
		e.RunEditCommand(edit.Command{Kind: edit.MoveToLineEnd})
		e.RunEditCommand(edit.Command{Kind: edit.MoveRight})
		s.mode = Insert
	case parse.CmdInsertBOL:
		e.RunEditCommand(edit.Command{Kind: edit.MoveToLineStart})
		s.mode = Insert
	case parse.CmdUndo:
		for i := 0; i < factor; i++ {
			e.RunEditCommand(edit.Command{Kind: edit.Undo})
		}
	case parse.CmdRedo:
		for i := 0; i < factor; i++ {
			e.RunEditCommand(edit.Command{Kind: edit.Redo})
		}
	case parse.CmdVisual:
		s.EnterVisual(e, false)
	}
}

func (s *State) applyVisual(seq parse.ParsedSequence, e *editor.Editor) {
	switch seq.Command {
	case parse.CmdNone:
		s.moveBy(seq.Motion, e)
	case parse.CmdDelete, parse.CmdChangeEOL:
		e.RunEditCommand(edit.Command{Kind: edit.CutSelection})
		s.mode = Normal
	case parse.CmdChange:
		e.RunEditCommand(edit.Command{Kind: edit.CutSelection})
		s.mode = Insert
	case parse.CmdYank:
		e.RunEditCommand(edit.Command{Kind: edit.CopySelection})
		s.mode = Normal
	default:
		s.apply(withoutCommand(seq), e)
	}
}

func withoutCommand(seq parse.ParsedSequence) parse.ParsedSequence {
	seq.Command = parse.CmdNone
	return seq
}

// applyOperatorMotion runs a d/c/y operator across the region
// described by a motion, repeated factor times.
func (s *State) applyOperatorMotion(seq parse.ParsedSequence, factor int, e *editor.Editor) {
	start := e.Buffer.Offset()
	e.Selection.Set(start)

	for i := 0; i < factor; i++ {
		s.moveBy(seq.Motion, e)
	}

	switch seq.Command {
	case parse.CmdDelete:
		e.RunEditCommand(edit.Command{Kind: edit.CutSelection})
	case parse.CmdChange:
		e.RunEditCommand(edit.Command{Kind: edit.CutSelection})
		s.mode = Insert
	case parse.CmdYank:
		e.RunEditCommand(edit.Command{Kind: edit.CopySelection})
		e.Buffer.SetCursorUnsafe(start)
		e.Selection.Reset()
	}
}

// applyPairOperator resolves a {d,c,y}{i,a}<pair> command against the
// buffer's text by locating the nearest enclosing pair.
func (s *State) applyPairOperator(seq parse.ParsedSequence, e *editor.Editor) {
	open, close := pairChars(seq.Motion.Char)
	around := isAroundCommand(seq.Command)

	start, end, ok := findEnclosingPair(e.Buffer.String(), e.Buffer.Offset(), open, close, around)
	if !ok {
		return
	}

	e.Selection.Set(start)
	e.Buffer.SetCursorUnsafe(end)

	switch seq.Command {
	case parse.CmdDeleteInsidePair, parse.CmdDeleteAroundPair:
		e.RunEditCommand(edit.Command{Kind: edit.CutSelection})
	case parse.CmdChangeInsidePair, parse.CmdChangeAroundPair:
		e.RunEditCommand(edit.Command{Kind: edit.CutSelection})
		s.mode = Insert
	case parse.CmdYankInsidePair, parse.CmdYankAroundPair:
		e.RunEditCommand(edit.Command{Kind: edit.CopySelection})
	}
}

func isAroundCommand(c parse.Command) bool {
	switch c {
	case parse.CmdDeleteAroundPair, parse.CmdChangeAroundPair, parse.CmdYankAroundPair:
		return true
	default:
		return false
	}
}

func pairChars(c rune) (rune, rune) {
	switch c {
	case '(', ')':
		return '(', ')'
	case '[', ']':
		return '[', ']'
	case '{', '}':
		return '{', '}'
	case '<', '>':
		return '<', '>'
	default:
		return c, c
	}
}

// findEnclosingPair finds the [start,end) byte range of the nearest
// pair of open/close runes enclosing pos. When open==close (quotes),
// quotes are paired in order across the whole buffer, not per line.
// around includes the delimiters themselves.
func findEnclosingPair(text string, pos int, open, close rune, around bool) (int, int, bool) {
	runes := []rune(text)
	bytePos := runeIndexFromByteOffset(text, pos)

	var openIdx, closeIdx = -1, -1

	if open == close {
		// Quote-like: quote runes pair up consecutively (1st with 2nd,
		// 3rd with 4th, ...); pick whichever pair straddles pos, or
		// failing that the next pair starting at/after pos.
		var quotes []int
		for i, r := range runes {
			if r == open {
				quotes = append(quotes, i)
			}
		}
		for i := 0; i+1 < len(quotes); i += 2 {
			o, c := quotes[i], quotes[i+1]
			if bytePos >= o && bytePos <= c {
				openIdx, closeIdx = o, c
				break
			}
			if openIdx == -1 && o >= bytePos {
				openIdx, closeIdx = o, c
			}
		}
	} else {
		depth := 0
		for i := bytePos; i >= 0; i-- {
			switch runes[i] {
			case close:
				if i != bytePos {
					depth++
				}
			case open:
				if depth == 0 {
					openIdx = i
					break
				}
				depth--
			}
			if openIdx != -1 {
				break
			}
		}
		if openIdx == -1 {
			return 0, 0, false
		}
		depth = 0
		for i := openIdx + 1; i < len(runes); i++ {
			switch runes[i] {
			case open:
				depth++
			case close:
				if depth == 0 {
					closeIdx = i
				} else {
					depth--
				}
			}
			if closeIdx != -1 {
				break
			}
		}
	}

	if openIdx == -1 || closeIdx == -1 || closeIdx <= openIdx {
		return 0, 0, false
	}

	startRune, endRune := openIdx, closeIdx+1
	if !around {
		startRune, endRune = openIdx+1, closeIdx
	}

	return byteOffsetFromRuneIndex(text, startRune), byteOffsetFromRuneIndex(text, endRune), true
}

func runeIndexFromByteOffset(s string, byteOff int) int {
	n := 0
	for i := range s {
		if i >= byteOff {
			return n
		}
		n++
	}
	return n
}

func byteOffsetFromRuneIndex(s string, runeIdx int) int {
	n := 0
	for i := range s {
		if n == runeIdx {
			return i
		}
		n++
	}
	return len(s)
}

// moveBy runs one motion step against e, respecting Visual-mode
// selection semantics (the anchor stays fixed, only the cursor moves).
func (s *State) moveBy(res parse.ParseResult, e *editor.Editor) {
	switch res.Motion {
	case parse.MotionLeft:
		e.RunEditCommand(edit.Command{Kind: edit.MoveLeft, Select: s.mode == Visual})
	case parse.MotionRight:
		e.RunEditCommand(edit.Command{Kind: edit.MoveRight, Select: s.mode == Visual})
	case parse.MotionUp:
		e.RunEditCommand(edit.Command{Kind: edit.MoveLineUp, Select: s.mode == Visual})
	case parse.MotionDown:
		e.RunEditCommand(edit.Command{Kind: edit.MoveLineDown, Select: s.mode == Visual})
	case parse.MotionWordForward:
		e.RunEditCommand(edit.Command{Kind: edit.MoveWordRight, Select: s.mode == Visual})
	case parse.MotionWordBackward:
		e.RunEditCommand(edit.Command{Kind: edit.MoveWordLeft, Select: s.mode == Visual})
	case parse.MotionBigWordForward:
		e.RunEditCommand(edit.Command{Kind: edit.MoveBigWordRight, Select: s.mode == Visual})
	case parse.MotionBigWordBackward:
		e.RunEditCommand(edit.Command{Kind: edit.MoveBigWordLeft, Select: s.mode == Visual})
	case parse.MotionWordEnd, parse.MotionBigWordEnd:
		e.RunEditCommand(edit.Command{Kind: edit.MoveWordRight, Select: s.mode == Visual})
		e.RunEditCommand(edit.Command{Kind: edit.MoveLeft, Select: s.mode == Visual})
	case parse.MotionLineStart:
		e.RunEditCommand(edit.Command{Kind: edit.MoveToLineStart, Select: s.mode == Visual})
	case parse.MotionFirstNonBlank:
		e.RunEditCommand(edit.Command{Kind: edit.MoveToLineStart, Select: s.mode == Visual})
		for e.Buffer.OnWhitespace() {
			e.RunEditCommand(edit.Command{Kind: edit.MoveRight, Select: s.mode == Visual})
		}
	case parse.MotionLineEnd:
		e.RunEditCommand(edit.Command{Kind: edit.MoveToLineEnd, Select: s.mode == Visual})
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
