package menu

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rivereed/lineedit/internal/completion"
	"github.com/rivereed/lineedit/internal/editor"
)

// IDE is the single-column, optionally bordered menu: a description
// panel to the left or right depending on available space, anchored
// to the cursor column, grounded on original_source's ide_menu.rs
// (BorderSymbols, DescriptionMode, max_completion_height sizing). The
// completion column is as wide as the widest value (at least
// minWidth) and has no upper bound, so no entry is truncated.
type IDE struct {
	base

	border            bool
	minWidth          int
	maxHeight         int
	descriptionOnLeft bool // false = prefer right

	anchorCol int
	rowPos    int

	completionWidth int
}

// NewIDE returns an IDE menu with the borderless default.
func NewIDE() *IDE { return &IDE{minWidth: 10, maxHeight: 10} }

// WithBorder enables the rounded-box border, per with_default_border.
func (m *IDE) WithBorder() *IDE { m.border = true; return m }

func (m *IDE) HandleEvent(ev MenuEvent, e *editor.Editor, c completion.Completer) {
	switch ev.Kind {
	case Activate:
		m.activate(e)
		m.anchorCol = e.Buffer.Offset()
		if !ev.ValuesUpdated {
			m.updateValues(e, c)
		}
	case Deactivate:
		m.deactivate()
	case EditEvent:
		if !ev.ValuesUpdated {
			m.updateValues(e, c)
		}
		m.rowPos = 0
	case NextElement, MoveDown:
		if n := len(m.values); n > 0 {
			m.rowPos = (m.rowPos + 1) % n
		}
	case PreviousElement, MoveUp:
		if n := len(m.values); n > 0 {
			m.rowPos = (m.rowPos - 1 + n) % n
		}
	}
}

func (m *IDE) UpdateValues(e *editor.Editor, c completion.Completer) { m.updateValues(e, c); m.rowPos = 0 }

// UpdateWorkingDetails recomputes the completion column width (longest
// value, clamped to minWidth) and whether the description fits on the
// right.
func (m *IDE) UpdateWorkingDetails(screenWidth int) {
	width := m.minWidth
	for _, v := range m.values {
		if w := runewidth.StringWidth(v.Value); w > width {
			width = w
		}
	}
	m.completionWidth = width

	spaceLeft := screenWidth - m.anchorCol - width
	m.descriptionOnLeft = spaceLeft < width
}

func (m *IDE) ReplaceInBuffer(e *editor.Editor) {
	if m.rowPos < len(m.values) {
		replaceInBuffer(e, m.values[m.rowPos])
	}
}

func (m *IDE) CanQuickComplete() (completion.Suggestion, bool) { return m.canQuickComplete() }
func (m *IDE) CanPartiallyComplete(e *editor.Editor) bool      { return m.canPartiallyComplete(e) }

const ellipsis = "…"

func truncateEllipsis(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth || maxWidth <= 1 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth-1, "") + ellipsis
}

// MenuString renders the completion column (truncated/padded to
// completionWidth, bordered if enabled) with the selected row's
// description alongside it.
func (m *IDE) MenuString(availableLines int, useAnsi bool) string {
	height := m.maxHeight
	if availableLines > 0 && availableLines < height {
		height = availableLines
	}
	if m.border {
		height -= 2
	}
	if height < 0 {
		height = 0
	}
	if height > len(m.values) {
		height = len(m.values)
	}

	var b strings.Builder
	top, bottom := "", ""
	vert := ""
	if m.border {
		top = "╭" + strings.Repeat("─", m.completionWidth+2) + "╮\n"
		bottom = "╰" + strings.Repeat("─", m.completionWidth+2) + "╯\n"
		vert = "│"
	}
	b.WriteString(top)

	for i := 0; i < height; i++ {
		v := m.values[i]
		text := truncateEllipsis(v.Value, m.completionWidth)
		pad := m.completionWidth - runewidth.StringWidth(text)
		if pad < 0 {
			pad = 0
		}
		line := text + strings.Repeat(" ", pad)
		if useAnsi && i == m.rowPos {
			line = "\x1b[7m" + line + "\x1b[0m"
		}
		if m.border {
			line = vert + " " + line + " " + vert
		}

		if i == m.rowPos && v.Description != "" {
			if m.descriptionOnLeft {
				b.WriteString(v.Description + "  " + line)
			} else {
				b.WriteString(line + "  " + v.Description)
			}
		} else {
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	b.WriteString(bottom)
	return b.String()
}
