// Package menu implements the shared completion-popup contract of
// this package and its four concrete layouts (columnar, list, ide,
// diagnostic-fix), grounded on original_source/src/menu/context_menu.rs
// (the shared position/grid arithmetic every concrete menu reuses) and
// menu_functions.rs (can_partially_complete, selection-char parsing).
package menu

import (
	"strings"
	"unicode/utf8"

	"github.com/rivereed/lineedit/internal/completion"
	"github.com/rivereed/lineedit/internal/editor"
)

// Event is one of the menu_event variants.
type Event int

const (
	Activate Event = iota
	Deactivate
	EditEvent
	NextElement
	PreviousElement
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	NextPage
	PreviousPage
)

// MenuEvent carries the Activate/Edit payload ("values_already_updated")
// alongside the event kind, matching the Rust enum's associated bool.
type MenuEvent struct {
	Kind          Event
	ValuesUpdated bool
}

// Menu is the shared contract every concrete layout implements.
type Menu interface {
	IsActive() bool
	HandleEvent(ev MenuEvent, e *editor.Editor, c completion.Completer)
	UpdateValues(e *editor.Editor, c completion.Completer)
	UpdateWorkingDetails(screenWidth int)
	ReplaceInBuffer(e *editor.Editor)
	CanQuickComplete() (completion.Suggestion, bool)
	CanPartiallyComplete(e *editor.Editor) bool
	MenuString(availableLines int, useAnsi bool) string
	GetValues() []completion.Suggestion
}

// base holds the state and behavior common to all four menu layouts:
// activation, the cached suggestion list, and the "only the text typed
// since activation" anchor used by update_values's only_buffer_difference
// flag.
type base struct {
	active               bool
	onlyBufferDifference bool
	anchorBuffer         string
	anchorOffset         int
	values               []completion.Suggestion
}

func (b *base) IsActive() bool { return b.active }

func (b *base) activate(e *editor.Editor) {
	b.active = true
	b.anchorBuffer = e.Buffer.String()
	b.anchorOffset = e.Buffer.Offset()
}

func (b *base) deactivate() {
	b.active = false
	b.values = nil
}

func (b *base) GetValues() []completion.Suggestion { return b.values }

// updateValues fetches suggestions for the current buffer, or for the
// substring typed since activation when onlyBufferDifference is set.
func (b *base) updateValues(e *editor.Editor, c completion.Completer) {
	line := e.Buffer.String()
	pos := e.Buffer.Offset()
	if b.onlyBufferDifference && len(line) >= len(b.anchorBuffer) {
		line = line[len(b.anchorBuffer):]
		pos -= len(b.anchorBuffer)
		if pos < 0 {
			pos = 0
		}
	}
	b.values = c.Complete(line, pos)
}

// replaceInBuffer applies the selected suggestion's span, placing the
// cursor at the end of the inserted text and appending a space if
// AppendWhitespace is set.
func replaceInBuffer(e *editor.Editor, s completion.Suggestion) {
	line := e.Buffer.String()
	start, end := s.Span.Start, s.Span.End
	if end > len(line) {
		end = len(line)
	}
	if start > end {
		start = end
	}
	e.Buffer.ReplaceRange(start, end, s.Value)
	cursor := start + len(s.Value)
	if s.AppendWhitespace {
		e.Buffer.SetCursorUnsafe(cursor)
		e.Buffer.InsertChar(' ')
		cursor++
	}
	e.Buffer.SetCursorUnsafe(cursor)
}

// canQuickComplete reports the sole suggestion when activation produced
// exactly one.
func (b *base) canQuickComplete() (completion.Suggestion, bool) {
	if len(b.values) == 1 {
		return b.values[0], true
	}
	return completion.Suggestion{}, false
}

// canPartiallyComplete finds the longest common, case-folded prefix
// across all cached suggestions and, if it strictly extends the text
// already typed at the first suggestion's span, inserts it and keeps
// the menu open.
func (b *base) canPartiallyComplete(e *editor.Editor) bool {
	if len(b.values) == 0 {
		return false
	}
	prefix := commonPrefixFold(b.values)
	if prefix == "" {
		return false
	}

	span := b.values[0].Span
	line := e.Buffer.String()
	end := floorCharBoundary(line, span.End)
	start := floorCharBoundary(line, span.Start)
	if start > end {
		start = end
	}
	entered := line[start:end]

	if prefix == entered || !strings.HasPrefix(strings.ToLower(prefix), strings.ToLower(entered)) {
		return false
	}

	// ReplaceRange already repositions the cursor relative to the
	// length delta (see buffer.LineBuffer.ReplaceRange), so no further
	// adjustment is needed here.
	e.Buffer.ReplaceRange(start, end, prefix)
	return true
}

// commonPrefixFold returns the longest prefix shared by every
// suggestion's Value, compared case-insensitively but returned with the
// shortest suggestion's original casing, walking rune boundaries so a
// multibyte character is never split.
func commonPrefixFold(values []completion.Suggestion) string {
	if len(values) == 0 {
		return ""
	}
	shortest := values[0].Value
	for _, v := range values[1:] {
		if len(v.Value) < len(shortest) {
			shortest = v.Value
		}
	}

	matchRunes := 0
	for _, r := range shortest {
		ok := true
		for _, v := range values {
			vr, _ := utf8.DecodeRuneInString(nthRune(v.Value, matchRunes))
			if vr == utf8.RuneError || !foldEqual(vr, r) {
				ok = false
				break
			}
		}
		if !ok {
			break
		}
		matchRunes++
	}

	return string([]rune(shortest)[:matchRunes])
}

// nthRune returns s starting at its nth rune, used to re-slice each
// candidate string to the rune offset under comparison.
func nthRune(s string, n int) string {
	i := 0
	for idx := range s {
		if i == n {
			return s[idx:]
		}
		i++
	}
	return ""
}

func foldEqual(a, b rune) bool {
	return strings.EqualFold(string(a), string(b))
}

// floorCharBoundary walks index back to the nearest rune boundary,
// keeping byte-level span math safe against multibyte characters.
func floorCharBoundary(s string, index int) int {
	if index >= len(s) {
		return len(s)
	}
	if index <= 0 {
		return 0
	}
	for index > 0 && !utf8.RuneStart(s[index]) {
		index--
	}
	return index
}
