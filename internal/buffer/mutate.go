package buffer

import (
	"strings"
	"unicode"
)

//
// Mutation ----------------------------------------------------------------
//

// InsertChar inserts r at the cursor and advances past it.
func (lb *LineBuffer) InsertChar(r rune) {
	lb.InsertStr(string(r))
}

// InsertStr inserts s at the cursor and advances past it.
func (lb *LineBuffer) InsertStr(s string) {
	head := append([]byte{}, lb.lines[:lb.insertionPoint]...)
	head = append(head, s...)
	head = append(head, lb.lines[lb.insertionPoint:]...)
	lb.lines = head
	lb.insertionPoint += len(s)
}

// DeleteLeftGrapheme removes the grapheme cluster before the cursor.
func (lb *LineBuffer) DeleteLeftGrapheme() {
	start := lb.prevGraphemeBoundary(lb.insertionPoint)
	lb.ReplaceRange(start, lb.insertionPoint, "")
	lb.setOffset(start)
}

// DeleteRightGrapheme removes the grapheme cluster at/after the cursor.
func (lb *LineBuffer) DeleteRightGrapheme() {
	end := lb.nextGraphemeBoundary(lb.insertionPoint)
	lb.ReplaceRange(lb.insertionPoint, end, "")
}

// DeleteWordLeft deletes from the start of the previous word to the
// cursor, returning the deleted text.
func (lb *LineBuffer) DeleteWordLeft() string {
	start := lb.wordLeftBoundary()
	text := string(lb.lines[start:lb.insertionPoint])
	lb.ReplaceRange(start, lb.insertionPoint, "")
	lb.setOffset(start)
	return text
}

// DeleteWordRight deletes from the cursor to the start of the next
// word, returning the deleted text.
func (lb *LineBuffer) DeleteWordRight() string {
	end := lb.wordRightBoundary()
	text := string(lb.lines[lb.insertionPoint:end])
	lb.ReplaceRange(lb.insertionPoint, end, "")
	return text
}

func (lb *LineBuffer) wordLeftBoundary() int {
	save := lb.insertionPoint
	lb.moveWordLeft(false)
	result := lb.insertionPoint
	lb.insertionPoint = save
	return result
}

func (lb *LineBuffer) wordRightBoundary() int {
	save := lb.insertionPoint
	lb.moveWordRight(false)
	result := lb.insertionPoint
	lb.insertionPoint = save
	return result
}

// ClearToEnd deletes from the cursor to the end of the buffer.
func (lb *LineBuffer) ClearToEnd() string {
	text := string(lb.lines[lb.insertionPoint:])
	lb.ReplaceRange(lb.insertionPoint, len(lb.lines), "")
	return text
}

// ClearToLineEnd deletes from the cursor to FindCurrentLineEnd().
func (lb *LineBuffer) ClearToLineEnd() string {
	end := lb.FindCurrentLineEnd()
	text := string(lb.lines[lb.insertionPoint:end])
	lb.ReplaceRange(lb.insertionPoint, end, "")
	return text
}

// ClearToInsertionPoint deletes from the start of the buffer to the
// cursor.
func (lb *LineBuffer) ClearToInsertionPoint() string {
	text := string(lb.lines[:lb.insertionPoint])
	lb.ReplaceRange(0, lb.insertionPoint, "")
	lb.setOffset(0)
	return text
}

// ReplaceRange replaces the half-open byte range [start,end) with
// text. Out-of-range indices are the caller's bug (this is a thin
// wrapper over Go slice semantics and will panic just like one).
func (lb *LineBuffer) ReplaceRange(start, end int, text string) {
	next := append([]byte{}, lb.lines[:start]...)
	next = append(next, text...)
	next = append(next, lb.lines[end:]...)

	cursor := lb.insertionPoint
	switch {
	case cursor >= end:
		cursor += len(text) - (end - start)
	case cursor > start:
		cursor = start + len(text)
	}

	lb.lines = next
	lb.setOffset(cursor)
}

// UppercaseWord uppercases CurrentWordRange and leaves the cursor at
// its end.
func (lb *LineBuffer) UppercaseWord() { lb.mapWord(strings.ToUpper) }

// LowercaseWord lowercases CurrentWordRange.
func (lb *LineBuffer) LowercaseWord() { lb.mapWord(strings.ToLower) }

func (lb *LineBuffer) mapWord(f func(string) string) {
	start, end := lb.CurrentWordRange()
	word := string(lb.lines[start:end])
	lb.ReplaceRange(start, end, f(word))
	lb.setOffset(end - len(word) + len(f(word)))
}

// CapitalizeChar uppercases the grapheme at the cursor and advances
// past it.
func (lb *LineBuffer) CapitalizeChar() {
	end := lb.nextGraphemeBoundary(lb.insertionPoint)
	seg := string(lb.lines[lb.insertionPoint:end])
	upper := strings.ToUpper(seg)
	lb.ReplaceRange(lb.insertionPoint, end, upper)
	lb.setOffset(lb.insertionPoint + len(upper))
}

// SwapWords exchanges CurrentWordRange with the previous word.
func (lb *LineBuffer) SwapWords() {
	curStart, curEnd := lb.CurrentWordRange()

	save := lb.insertionPoint
	lb.setOffset(curStart)
	lb.moveWordLeft(false)
	prevStart := lb.insertionPoint
	prevEnd := prevStart
	for _, t := range lb.wordTokens() {
		if t.start == prevStart && t.end <= curStart && !isWordBoundaryToken(t.text) {
			prevEnd = t.end
			break
		}
	}
	lb.insertionPoint = save

	if isWordBoundaryToken(string(lb.lines[curStart:curEnd])) || prevStart >= prevEnd || prevEnd > curStart {
		return
	}

	prevWord := string(lb.lines[prevStart:prevEnd])
	curWord := string(lb.lines[curStart:curEnd])

	lb.ReplaceRange(curStart, curEnd, prevWord)
	lb.ReplaceRange(prevStart, prevEnd, curWord)
	lb.setOffset(prevStart + len(curWord) + (curStart - prevEnd) + len(prevWord))
}

// SwapGraphemes exchanges the left and right neighbors of the cursor.
// At buffer start, the cursor moves right one grapheme first; at
// buffer end, it moves left one grapheme first.
func (lb *LineBuffer) SwapGraphemes() {
	if lb.insertionPoint == 0 {
		lb.MoveRight()
	}
	if lb.insertionPoint >= len(lb.lines) {
		lb.MoveLeft()
	}

	right := lb.nextGraphemeBoundary(lb.insertionPoint)
	left := lb.prevGraphemeBoundary(lb.insertionPoint)
	if left == lb.insertionPoint || right == lb.insertionPoint {
		return
	}

	leftG := string(lb.lines[left:lb.insertionPoint])
	rightG := string(lb.lines[lb.insertionPoint:right])

	lb.ReplaceRange(left, right, rightG+leftG)
	lb.setOffset(left + len(rightG+leftG))
}

//
// Queries -------------------------------------------------------------------
//

// Line returns the 0-based line number the cursor is on.
func (lb *LineBuffer) Line() int {
	return strings.Count(string(lb.lines[:lb.insertionPoint]), "\n")
}

// NumLines returns the total number of lines in the buffer.
func (lb *LineBuffer) NumLines() int {
	return strings.Count(string(lb.lines), "\n") + 1
}

// IsCursorAtFirstLine reports whether the cursor is on line 0.
func (lb *LineBuffer) IsCursorAtFirstLine() bool { return lb.Line() == 0 }

// IsCursorAtLastLine reports whether the cursor is on the last line.
func (lb *LineBuffer) IsCursorAtLastLine() bool { return lb.Line() == lb.NumLines()-1 }

// CurrentWordRange returns the [start,end) byte range of the Unicode
// word token the cursor is within or immediately before.
func (lb *LineBuffer) CurrentWordRange() (int, int) {
	toks := lb.wordTokens()
	pos := lb.insertionPoint
	for _, t := range toks {
		if pos >= t.start && pos < t.end {
			return t.start, t.end
		}
	}
	for _, t := range toks {
		if t.start >= pos {
			return t.start, t.end
		}
	}
	return pos, pos
}

// CurrentLineRange returns the [start,end) byte range of the line the
// cursor is on (end excludes the trailing line terminator).
func (lb *LineBuffer) CurrentLineRange() (int, int) {
	return lb.currentLineStart(), lb.FindCurrentLineEnd()
}

// OnWhitespace reports whether the grapheme at the cursor is
// whitespace (false at end of buffer).
func (lb *LineBuffer) OnWhitespace() bool {
	if lb.insertionPoint >= len(lb.lines) {
		return false
	}
	r := []rune(string(lb.lines[lb.insertionPoint:]))[0]
	return unicode.IsSpace(r)
}
