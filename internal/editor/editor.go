// Package editor implements the Editor described in it
// wraps a LineBuffer with a clipboard (kill-ring) and an undo stack,
// and is the sole dispatcher of edit.Command values.
package editor

import (
	"github.com/rivereed/lineedit/internal/buffer"
	"github.com/rivereed/lineedit/internal/edit"
	"github.com/rivereed/lineedit/internal/undo"
)

// Editor owns one LineBuffer, one Clipboard, and one undo EditStack.
type Editor struct {
	Buffer    *buffer.LineBuffer
	Selection buffer.Selection
	Clip      Clipboard
	undo      *undo.Stack
}

// New returns an Editor around an empty LineBuffer.
func New() *Editor {
	e := &Editor{
		Buffer: buffer.New(),
		undo:   undo.NewStack(undo.DefaultCapacity),
	}
	e.undo.Insert(e.snapshot(), false)
	return e
}

func (e *Editor) snapshot() undo.Snapshot {
	return undo.Snapshot{Text: e.Buffer.String(), Cursor: e.Buffer.Offset()}
}

func (e *Editor) restore(s undo.Snapshot) {
	e.Buffer.SetBuffer(s.Text)
	// SetBuffer moves the cursor to the end; only override when the
	// snapshot's own cursor is still a valid offset into it.
	if s.Cursor >= 0 && s.Cursor <= len(s.Text) {
		for e.Buffer.Offset() > s.Cursor {
			e.Buffer.MoveLeft()
		}
	}
}

// RunEditCommand dispatches cmd to the buffer and, per its declared
// UndoBehavior, may push/coalesce/skip an undo snapshot.
func (e *Editor) RunEditCommand(cmd edit.Command) {
	if !isMovement(cmd.Kind) && !readsSelection(cmd.Kind) {
		if !cmd.Select {
			e.Selection.Reset()
		}
	}

	e.dispatch(cmd)

	switch cmd.Kind.UndoBehavior() {
	case edit.Full:
		e.undo.Insert(e.snapshot(), false)
	case edit.Coalesce:
		e.undo.Insert(e.snapshot(), true)
	case edit.Ignore:
		// no snapshot
	}
}

// readsSelection reports whether cmd's dispatch reads e.Selection
// itself, meaning RunEditCommand's usual reset-before-dispatch would
// clear the very region the command is about to act on. CutSelection
// and CopySelection clear the selection themselves once they're done
// with it (see cutSelection).
func readsSelection(k edit.Kind) bool {
	switch k {
	case edit.CutSelection, edit.CopySelection:
		return true
	default:
		return false
	}
}

func isMovement(k edit.Kind) bool {
	switch k {
	case edit.MoveLeft, edit.MoveRight, edit.MoveWordLeft, edit.MoveWordRight,
		edit.MoveBigWordLeft, edit.MoveBigWordRight, edit.MoveToStart, edit.MoveToEnd,
		edit.MoveToLineStart, edit.MoveToLineEnd, edit.MoveLineUp, edit.MoveLineDown,
		edit.MoveRightUntil, edit.MoveRightBefore, edit.MoveLeftUntil, edit.MoveLeftBefore:
		return true
	default:
		return false
	}
}

func (e *Editor) dispatch(cmd edit.Command) {
	b := e.Buffer

	switch cmd.Kind {
	case edit.MoveLeft:
		b.MoveLeft()
	case edit.MoveRight:
		b.MoveRight()
	case edit.MoveWordLeft:
		b.MoveWordLeft()
	case edit.MoveWordRight:
		b.MoveWordRight()
	case edit.MoveBigWordLeft:
		b.MoveBigWordLeft()
	case edit.MoveBigWordRight:
		b.MoveBigWordRight()
	case edit.MoveToStart:
		b.MoveToStart()
	case edit.MoveToEnd:
		b.MoveToEnd()
	case edit.MoveToLineStart:
		b.MoveToLineStart()
	case edit.MoveToLineEnd:
		b.MoveToLineEnd()
	case edit.MoveLineUp:
		b.MoveLineUp()
	case edit.MoveLineDown:
		b.MoveLineDown()
	case edit.MoveRightUntil:
		b.MoveRightUntil(cmd.Char)
	case edit.MoveRightBefore:
		b.MoveRightBefore(cmd.Char)
	case edit.MoveLeftUntil:
		b.MoveLeftUntil(cmd.Char)
	case edit.MoveLeftBefore:
		b.MoveLeftBefore(cmd.Char)

	case edit.InsertChar:
		b.InsertChar(cmd.Char)
	case edit.InsertString:
		b.InsertStr(cmd.Text)
	case edit.Backspace:
		b.DeleteLeftGrapheme()
	case edit.Delete:
		b.DeleteRightGrapheme()
	case edit.DeleteWordLeft:
		b.DeleteWordLeft()
	case edit.DeleteWordRight:
		b.DeleteWordRight()
	case edit.Clear:
		b.Clear()
	case edit.ClearToLineEnd:
		b.ClearToLineEnd()
	case edit.ClearToEnd:
		b.ClearToEnd()
	case edit.ClearToInsertionPoint:
		b.ClearToInsertionPoint()
	case edit.ReplaceRange:
		b.ReplaceRange(cmd.Start, cmd.End, cmd.Text)

	case edit.UppercaseWord:
		b.UppercaseWord()
	case edit.LowercaseWord:
		b.LowercaseWord()
	case edit.CapitalizeChar:
		b.CapitalizeChar()
	case edit.SwapWords:
		b.SwapWords()
	case edit.SwapGraphemes:
		b.SwapGraphemes()

	case edit.CutLeftGrapheme:
		start := b.Offset()
		b.MoveLeft()
		e.cutRange(b.Offset(), start, Normal)
	case edit.CutRightGrapheme:
		start := b.Offset()
		b.MoveRight()
		end := b.Offset()
		b.SetCursorUnsafe(start)
		e.cutRange(start, end, Normal)
	case edit.CutWordLeft:
		text := b.DeleteWordLeft()
		e.Clip.Set(text, Normal)
	case edit.CutWordRight:
		text := b.DeleteWordRight()
		e.Clip.Set(text, Normal)
	case edit.CutToLineEnd:
		text := b.ClearToLineEnd()
		e.Clip.Set(text, Normal)
	case edit.CutToEnd:
		text := b.ClearToEnd()
		e.Clip.Set(text, Normal)
	case edit.CutToInsertionPoint:
		text := b.ClearToInsertionPoint()
		e.Clip.Set(text, Normal)
	case edit.CutSelection:
		e.cutSelection(true)
	case edit.CopySelection:
		e.cutSelection(false)
	case edit.PasteBefore:
		e.pasteBefore()
	case edit.PasteAfter:
		e.pasteAfter()

	case edit.SelectAll:
		e.Selection.Set(0)

	case edit.Undo:
		e.undoOne()
	case edit.Redo:
		e.redoOne()
	}
}

// cutRange deletes [start,end) and stashes it on the clipboard,
// restoring the cursor to start (used by single-grapheme cuts, whose
// dispatch already moved the buffer cursor for the deletion).
func (e *Editor) cutRange(start, end int, mode ClipboardMode) {
	if start >= end {
		return
	}
	text := e.Buffer.String()[start:end]
	e.Buffer.ReplaceRange(start, end, "")
	e.Clip.Set(text, mode)
}

func (e *Editor) cutSelection(remove bool) {
	start, end, ok := e.Selection.Range(e.Buffer.Offset())
	if !ok {
		return
	}
	text := e.Buffer.String()[start:end]
	e.Clip.Set(text, Normal)
	if remove {
		e.Buffer.ReplaceRange(start, end, "")
	}
	e.Selection.Reset()
}

func (e *Editor) pasteBefore() {
	content, mode := e.Clip.Get()
	if content == "" {
		return
	}
	switch mode {
	case Lines:
		e.Buffer.MoveToLineStart()
		e.Buffer.InsertStr(content)
		e.Buffer.MoveLineUp()
	default:
		e.Buffer.InsertStr(content)
	}
}

func (e *Editor) pasteAfter() {
	content, mode := e.Clip.Get()
	if content == "" {
		return
	}
	switch mode {
	case Lines:
		e.Buffer.MoveToLineStart()
		e.Buffer.MoveLineDown()
		e.Buffer.InsertStr(content)
	default:
		e.Buffer.MoveRight()
		e.Buffer.InsertStr(content)
	}
}

// FindCharRight returns the offset of the next occurrence of c after
// the cursor, optionally restricted to the current line, and leaves
// the cursor where it was. There is no leftward counterpart.
func (e *Editor) FindCharRight(c rune, currentLine bool) (int, bool) {
	save := e.Buffer.Offset()
	defer e.Buffer.SetCursorUnsafe(save)

	if currentLine {
		_, lineEnd := e.Buffer.CurrentLineRange()
		if !e.Buffer.MoveRightUntil(c) || e.Buffer.Offset() > lineEnd {
			return 0, false
		}
		return e.Buffer.Offset(), true
	}

	if !e.Buffer.MoveRightUntil(c) {
		return 0, false
	}
	return e.Buffer.Offset(), true
}

// undoOne and redoOne restore the previous/next snapshot of the undo
// stack; they do nothing when the stack has none to restore.
func (e *Editor) undoOne() {
	if s, ok := e.undo.Undo(); ok {
		e.restore(s)
	}
}

func (e *Editor) redoOne() {
	if s, ok := e.undo.Redo(); ok {
		e.restore(s)
	}
}

// UndoDepth reports how many snapshots are on the undo stack.
func (e *Editor) UndoDepth() int { return e.undo.Len() }

// ClearUndo clears the undo/redo history entirely.
func (e *Editor) ClearUndo() {
	e.undo.Clear()
	e.undo.Insert(e.snapshot(), false)
}
