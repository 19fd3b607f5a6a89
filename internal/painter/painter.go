// Package painter lays out prompt, buffer, hint, and menu into
// terminal rows and repaints them, grounded
// on the internal/ui/prompt.go (PrimaryPrint/RightPrint
// column bookkeeping) and its legacy update.go (moveCursorUp/Down,
// computePrompt's scroll-offset arithmetic).
package painter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/mattn/go-runewidth"

	"github.com/rivereed/lineedit/internal/completion"
)

// Frame is everything the painter needs to lay out one repaint: the
// prompt strings, the buffer text and cursor, an optional hint, and an
// optional pre-rendered menu block.
type Frame struct {
	PromptLeft      string
	PromptRight     string
	Indicator       string
	MultilineIndent string

	Buffer      string
	CursorBytes int // byte offset into Buffer

	// Styled, if non-nil, overrides Buffer for rendering: its
	// concatenated text must equal Buffer (completion.StyledText's own
	// invariant), and each segment's Style is emitted as a literal ANSI
	// prefix/reset pair around that segment's text.
	Styled completion.StyledText

	Hint string // dim text appended after the cursor

	Menu string // pre-rendered by internal/menu's MenuString
}

// Painter owns the terminal output stream and the row bookkeeping
// needed to clear and redraw a previous frame without scrollback
// corruption, grounded on the PrimaryPrint/tcUsedY fields.
type Painter struct {
	out   *bufio.Writer
	width int

	linesUsed int // rows from the previous repaint's top down to the row its cursor was left on
}

// New wraps w for buffered, single-flush-per-repaint output.
func New(w io.Writer) *Painter {
	return &Painter{out: bufio.NewWriter(w), width: 80}
}

// SetWidth updates the terminal column count used for wrap math,
// called on resize events.
func (p *Painter) SetWidth(cols int) {
	if cols > 0 {
		p.width = cols
	}
}

// displayWidth measures the rendered width of s after stripping ANSI
// styling (teacher go.mod's stripansi), using go-runewidth's
// UAX-14-ish east-asian width table.
func displayWidth(s string) int {
	return runewidth.StringWidth(stripansi.Strip(s))
}

// wrapLines counts the terminal rows a single logical (no-newline)
// line occupies at the given width: ceil(display_width/w), at least 1
// so an empty line still occupies its row.
func wrapLines(s string, width int) int {
	if width <= 0 {
		width = 1
	}
	w := displayWidth(s)
	if w == 0 {
		return 1
	}
	return (w + width - 1) / width
}

// RequiredLines computes prompt_lines + buffer_lines + hint_lines,
// each logical line's own wrap count summed across the text split on
// '\n'.
func RequiredLines(f Frame, width int) int {
	lines := 0
	lines += countWrapped(f.PromptLeft, width)
	lines += countWrapped(f.Buffer, width)
	if f.Hint != "" {
		lines += countWrapped(f.Hint, width)
	}
	return lines
}

func countWrapped(s string, width int) int {
	if s == "" {
		return 0
	}
	total := 0
	for _, line := range strings.Split(s, "\n") {
		total += wrapLines(line, width)
	}
	return total
}

// Repaint clears whatever the previous call left on screen and draws
// the new frame: left prompt, buffer (with cursor positioned inside
// it), right prompt right-aligned on the buffer's last row, hint text
// dimmed after the cursor, and the menu block beneath everything
// (grounded on the RefreshMultiline/RightPrint sequencing).
func (p *Painter) Repaint(f Frame) error {
	p.clearPrevious()

	var b strings.Builder
	b.WriteString(f.PromptLeft)
	b.WriteString(f.Indicator)

	var before, after string
	if f.Styled != nil {
		before, after = styledSplit(f.Styled, f.CursorBytes)
	} else {
		before, after = splitAtByte(f.Buffer, f.CursorBytes)
	}
	b.WriteString(before)
	b.WriteString(after)

	tail := after
	if f.Hint != "" {
		b.WriteString("\x1b[2m")
		b.WriteString(f.Hint)
		b.WriteString("\x1b[0m")
		tail += f.Hint
	}

	body := b.String()
	lastLineWidth := displayWidth(lastLine(body))
	trailer := ""
	if f.PromptRight != "" {
		if pad := p.width - lastLineWidth - displayWidth(f.PromptRight); pad > 0 {
			trailer = strings.Repeat(" ", pad) + f.PromptRight
		}
	}

	rendered := body + trailer
	if f.Menu != "" {
		rendered += "\n" + strings.TrimRight(f.Menu, "\n")
	}

	p.out.WriteString(rendered)

	// Reposition the cursor back to the edit point: everything after
	// `before` (the buffer's tail, hint, right prompt, and menu block)
	// was drawn for display purposes only.
	menuRows := countWrapped(strings.TrimRight(f.Menu, "\n"), p.width)
	if menuRows > 0 {
		fmt.Fprintf(p.out, "\x1b[%dA", menuRows)
	}
	tailCols := displayWidth(tail) + displayWidth(trailer)
	if tailCols > 0 {
		fmt.Fprintf(p.out, "\x1b[%dD", tailCols)
	}

	p.linesUsed = countWrapped(rendered, p.width) - 1 - menuRows
	return p.out.Flush()
}

// clearPrevious moves the cursor to the start of the previous frame
// and clears everything below it, mirroring the prior implementation's
// RefreshMultiline clear sequence.
func (p *Painter) clearPrevious() {
	if p.linesUsed > 0 {
		fmt.Fprintf(p.out, "\x1b[%dA", p.linesUsed)
	}
	p.out.WriteString("\r\x1b[J")
}

// styledSplit walks a Highlighter's StyledText and splits it at the
// plain-byte cursor offset, wrapping each resulting piece's segments in
// their Style's literal ANSI prefix/reset.
func styledSplit(segs completion.StyledText, at int) (string, string) {
	var before, after strings.Builder
	pos := 0
	for _, seg := range segs {
		start, end := pos, pos+len(seg.Text)
		pos = end

		writeStyled := func(w *strings.Builder, text string) {
			if text == "" {
				return
			}
			if seg.Style != "" {
				w.WriteString(seg.Style)
			}
			w.WriteString(text)
			if seg.Style != "" {
				w.WriteString("\x1b[0m")
			}
		}

		switch {
		case end <= at:
			writeStyled(&before, seg.Text)
		case start >= at:
			writeStyled(&after, seg.Text)
		default:
			cut := at - start
			writeStyled(&before, seg.Text[:cut])
			writeStyled(&after, seg.Text[cut:])
		}
	}
	return before.String(), after.String()
}

func splitAtByte(s string, at int) (string, string) {
	if at < 0 {
		at = 0
	}
	if at > len(s) {
		at = len(s)
	}
	return s[:at], s[at:]
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
