// Package buffer implements the grapheme-aware, cursor-tracked text
// container every other layer of the editor manipulates: LineBuffer.
package buffer

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/clipperhouse/uax29/v2/words"
)

// LineBuffer is a UTF-8 string together with a single cursor (byte
// offset into the string), always kept on a grapheme-cluster boundary.
//
// lines may contain '\n' and "\r\n": cursor movement always treats a
// full grapheme atomically, and multi-line buffers are supported
// without any extra bookkeeping beyond scanning for line terminators.
type LineBuffer struct {
	lines          []byte
	insertionPoint int
}

// New returns an empty LineBuffer.
func New() *LineBuffer {
	return &LineBuffer{}
}

// NewFromString returns a LineBuffer containing s, cursor at its end.
func NewFromString(s string) *LineBuffer {
	lb := &LineBuffer{lines: []byte(s)}
	lb.insertionPoint = len(lb.lines)
	return lb
}

// String returns the full buffer contents.
func (lb *LineBuffer) String() string { return string(lb.lines) }

// SetBuffer replaces the contents and moves the cursor to the end.
func (lb *LineBuffer) SetBuffer(s string) {
	lb.lines = []byte(s)
	lb.insertionPoint = len(lb.lines)
}

// Clear empties the buffer and resets the cursor.
func (lb *LineBuffer) Clear() {
	lb.lines = lb.lines[:0]
	lb.insertionPoint = 0
}

// IsEmpty reports whether the buffer has no content.
func (lb *LineBuffer) IsEmpty() bool { return len(lb.lines) == 0 }

// Offset returns the current byte offset of the cursor.
func (lb *LineBuffer) Offset() int { return lb.insertionPoint }

// Len returns the buffer's byte length.
func (lb *LineBuffer) Len() int { return len(lb.lines) }

// SetCursorUnsafe moves the cursor to an arbitrary byte offset without
// checking it lands on a grapheme boundary. Unicode-unsafe per
// this package invariant (d): only call this when the caller can prove
// off is a boundary (e.g. restoring a previously-read offset).
func (lb *LineBuffer) SetCursorUnsafe(off int) {
	lb.setOffset(off)
}

// setOffset moves the cursor to a byte offset, clamped into range.
// Unicode-unsafe: callers must already know off lands on a grapheme
// boundary (every exported mutator below guarantees this).
func (lb *LineBuffer) setOffset(off int) {
	switch {
	case off < 0:
		off = 0
	case off > len(lb.lines):
		off = len(lb.lines)
	}
	lb.insertionPoint = off
}

// graphemeBoundaries returns the byte offsets of every grapheme
// cluster boundary in lb.lines, including 0 and len(lb.lines).
func (lb *LineBuffer) graphemeBoundaries() []int {
	bounds := []int{0}
	seg := graphemes.FromBytes(lb.lines)
	pos := 0
	for seg.Next() {
		pos += len(seg.Value())
		bounds = append(bounds, pos)
	}
	return bounds
}

// nextGraphemeBoundary returns the offset of the grapheme boundary
// immediately after off (off itself must be a boundary).
func (lb *LineBuffer) nextGraphemeBoundary(off int) int {
	bounds := lb.graphemeBoundaries()
	for i, b := range bounds {
		if b == off && i+1 < len(bounds) {
			return bounds[i+1]
		}
	}
	return len(lb.lines)
}

// prevGraphemeBoundary returns the offset of the grapheme boundary
// immediately before off (off itself must be a boundary).
func (lb *LineBuffer) prevGraphemeBoundary(off int) int {
	bounds := lb.graphemeBoundaries()
	for i, b := range bounds {
		if b == off && i > 0 {
			return bounds[i-1]
		}
	}
	return 0
}

//
// Movement --------------------------------------------------------------
//

// MoveLeft moves the cursor back one grapheme cluster.
func (lb *LineBuffer) MoveLeft() {
	lb.setOffset(lb.prevGraphemeBoundary(lb.insertionPoint))
}

// MoveRight moves the cursor forward one grapheme cluster.
func (lb *LineBuffer) MoveRight() {
	lb.setOffset(lb.nextGraphemeBoundary(lb.insertionPoint))
}

// MoveToStart moves the cursor to offset 0.
func (lb *LineBuffer) MoveToStart() { lb.setOffset(0) }

// MoveToEnd moves the cursor to the end of the buffer.
func (lb *LineBuffer) MoveToEnd() { lb.setOffset(len(lb.lines)) }

// MoveToLineStart moves the cursor to the start of its current line.
func (lb *LineBuffer) MoveToLineStart() {
	start := lb.currentLineStart()
	lb.setOffset(start)
}

// MoveToLineEnd moves the cursor to FindCurrentLineEnd().
func (lb *LineBuffer) MoveToLineEnd() {
	lb.setOffset(lb.FindCurrentLineEnd())
}

// currentLineStart returns the byte offset just after the previous
// '\n' (or 0 if there is none).
func (lb *LineBuffer) currentLineStart() int {
	idx := strings.LastIndexByte(string(lb.lines[:lb.insertionPoint]), '\n')
	if idx < 0 {
		return 0
	}
	return idx + 1
}

// FindCurrentLineEnd returns the byte index of the next '\n' (or the
// preceding '\r' if the next byte is '\n') from the cursor, or
// len(lines) if there is none.
func (lb *LineBuffer) FindCurrentLineEnd() int {
	rest := lb.lines[lb.insertionPoint:]
	idx := indexByte(rest, '\n')
	if idx < 0 {
		return len(lb.lines)
	}
	end := lb.insertionPoint + idx
	if end > 0 && lb.lines[end-1] == '\r' {
		end--
	}
	return end
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// MoveLineUp preserves the visual column: count the cursor's distance
// (in characters) to the previous '\n', jump to the previous line's
// start, then advance by the same character count (stopping at its
// own '\n').
func (lb *LineBuffer) MoveLineUp() {
	lineStart := lb.currentLineStart()
	if lineStart == 0 {
		return
	}
	col := charDistance(lb.lines[lineStart:lb.insertionPoint])

	prevLineStart := 0
	if idx := strings.LastIndexByte(string(lb.lines[:lineStart-1]), '\n'); idx >= 0 {
		prevLineStart = idx + 1
	}

	lb.setOffset(advanceChars(lb.lines, prevLineStart, col, lineStart-1))
}

// MoveLineDown is the downward counterpart of MoveLineUp.
func (lb *LineBuffer) MoveLineDown() {
	lineStart := lb.currentLineStart()
	col := charDistance(lb.lines[lineStart:lb.insertionPoint])

	curLineEnd := lb.FindCurrentLineEnd()
	if curLineEnd >= len(lb.lines) {
		return
	}
	nextLineStart := curLineEnd + 1
	if nextLineStart <= len(lb.lines) && nextLineStart > 0 && lb.lines[curLineEnd] == '\r' {
		nextLineStart++
	}

	nextEnd := len(lb.lines)
	if idx := indexByte(lb.lines[nextLineStart:], '\n'); idx >= 0 {
		nextEnd = nextLineStart + idx
	}

	lb.setOffset(advanceChars(lb.lines, nextLineStart, col, nextEnd))
}

// charDistance counts grapheme clusters in b.
func charDistance(b []byte) int {
	n := 0
	seg := graphemes.FromBytes(b)
	for seg.Next() {
		n++
	}
	return n
}

// advanceChars walks n grapheme clusters forward from start, never
// passing limit.
func advanceChars(lines []byte, start, n, limit int) int {
	off := start
	seg := graphemes.FromBytes(lines[start:limit])
	for i := 0; i < n && seg.Next(); i++ {
		off += len(seg.Value())
	}
	return off
}

//
// Word motions ------------------------------------------------------------
//

// isWordBoundaryToken reports whether s contains no alphanumeric rune
// (the the design definition of a "word boundary token").
func isWordBoundaryToken(s string) bool {
	for _, r := range s {
		if isAlnum(r) {
			return false
		}
	}
	return true
}

func isAlnum(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127 && isUnicodeWordChar(r)
}

// isUnicodeWordChar is a conservative predicate for "is this rune part
// of a word" beyond ASCII; letters and digits per unicode.IsLetter et
// al. are handled by the uax29 tokenizer upstream of this, this is
// only consulted for odd single-rune tokens.
func isUnicodeWordChar(r rune) bool {
	return unicodeIsLetterOrDigit(r)
}

// MoveWordLeft moves to the start of the previous Unicode word token.
func (lb *LineBuffer) MoveWordLeft() { lb.moveWordLeft(false) }

// MoveWordLeftSelect behaves exactly like MoveWordLeft: the buffer
// holds no selection anchor, so callers manage the anchor themselves.
func (lb *LineBuffer) MoveWordLeftSelect() { lb.moveWordLeft(true) }

func (lb *LineBuffer) moveWordLeft(_ bool) {
	toks := lb.wordTokens()
	pos := lb.insertionPoint
	for i := len(toks) - 1; i >= 0; i-- {
		t := toks[i]
		if t.end <= pos && !isWordBoundaryToken(t.text) {
			lb.setOffset(t.start)
			return
		}
	}
	lb.setOffset(0)
}

// MoveWordRight moves to the start of the next Unicode word token.
func (lb *LineBuffer) MoveWordRight() { lb.moveWordRight(false) }

// MoveWordRightSelect variant, see MoveWordLeftSelect.
func (lb *LineBuffer) MoveWordRightSelect() { lb.moveWordRight(true) }

func (lb *LineBuffer) moveWordRight(_ bool) {
	toks := lb.wordTokens()
	pos := lb.insertionPoint
	for _, t := range toks {
		// Strictly past pos: 'w' always advances at least one word,
		// even when the cursor already sits at a word's start.
		if t.start > pos && !isWordBoundaryToken(t.text) {
			lb.setOffset(t.start)
			return
		}
	}
	lb.setOffset(len(lb.lines))
}

type token struct {
	start, end int
	text       string
}

// wordTokens tokenizes the whole buffer using UAX-29 word boundaries.
func (lb *LineBuffer) wordTokens() []token {
	var toks []token
	seg := words.FromBytes(lb.lines)
	pos := 0
	for seg.Next() {
		v := seg.Value()
		toks = append(toks, token{start: pos, end: pos + len(v), text: string(v)})
		pos += len(v)
	}
	return toks
}

// MoveBigWordLeft moves left to the start of the previous
// whitespace-delimited run, ignoring Unicode word boundaries within it.
func (lb *LineBuffer) MoveBigWordLeft() {
	pos := lb.insertionPoint
	s := lb.lines
	for pos > 0 && isSpaceByte(s[pos-1]) {
		pos--
	}
	for pos > 0 && !isSpaceByte(s[pos-1]) {
		pos--
	}
	lb.setOffset(pos)
}

// MoveBigWordRight moves right to the start of the next
// whitespace-delimited run.
func (lb *LineBuffer) MoveBigWordRight() {
	pos := lb.insertionPoint
	s := lb.lines
	for pos < len(s) && !isSpaceByte(s[pos]) {
		pos++
	}
	for pos < len(s) && isSpaceByte(s[pos]) {
		pos++
	}
	lb.setOffset(pos)
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

//
// Character search --------------------------------------------------------
//

// MoveRightUntil moves the cursor onto the next occurrence of c after
// the cursor. Returns false if not found.
func (lb *LineBuffer) MoveRightUntil(c rune) bool {
	idx := lb.findRight(c)
	if idx < 0 {
		return false
	}
	lb.setOffset(idx)
	return true
}

// MoveRightBefore moves the cursor to just before the next occurrence
// of c.
func (lb *LineBuffer) MoveRightBefore(c rune) bool {
	idx := lb.findRight(c)
	if idx < 0 {
		return false
	}
	lb.setOffset(lb.prevGraphemeBoundary(idx))
	return true
}

// MoveLeftUntil moves the cursor onto the previous occurrence of c,
// searching backward from the cursor.
func (lb *LineBuffer) MoveLeftUntil(c rune) bool {
	idx := lb.findLeft(c)
	if idx < 0 {
		return false
	}
	lb.setOffset(idx)
	return true
}

// MoveLeftBefore moves the cursor to just after the previous
// occurrence of c.
func (lb *LineBuffer) MoveLeftBefore(c rune) bool {
	idx := lb.findLeft(c)
	if idx < 0 {
		return false
	}
	lb.setOffset(lb.nextGraphemeBoundary(idx))
	return true
}

func (lb *LineBuffer) findRight(c rune) int {
	rest := string(lb.lines[lb.insertionPoint:])
	off := 0
	first := true
	for _, r := range rest {
		if !first && r == c {
			return lb.insertionPoint + off
		}
		first = false
		off += runeLen(r)
	}
	return -1
}

func (lb *LineBuffer) findLeft(c rune) int {
	head := string(lb.lines[:lb.insertionPoint])
	runes := []rune(head)
	off := len(head)
	for i := len(runes) - 1; i >= 0; i-- {
		off -= runeLen(runes[i])
		if runes[i] == c {
			return off
		}
	}
	return -1
}

func runeLen(r rune) int {
	return len(string(r))
}
