package menu

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/rivereed/lineedit/internal/completion"
	"github.com/rivereed/lineedit/internal/editor"
)

// Columnar is the grid menu of rows/cols derived from the
// longest suggestion plus padding against the terminal width, one
// description column when any suggestion carries a description,
// grounded on original_source's context_menu.rs (its move_next/
// move_previous row/col arithmetic is reused verbatim below).
type Columnar struct {
	base

	defaultCols int
	colPadding  int
	fixedWidth  int // 0 means "derive from content"

	cols, colWidth int
	colPos, rowPos int
}

// NewColumnar returns a Columnar menu with the stock layout
// defaults (4 columns, 2-space padding), matching context_menu.rs's
// DefaultColumnDetails.
func NewColumnar() *Columnar {
	return &Columnar{defaultCols: 4, colPadding: 2, cols: 1, colWidth: 1}
}

func (m *Columnar) HandleEvent(ev MenuEvent, e *editor.Editor, c completion.Completer) {
	switch ev.Kind {
	case Activate:
		m.activate(e)
		if !ev.ValuesUpdated {
			m.updateValues(e, c)
		}
	case Deactivate:
		m.deactivate()
	case EditEvent:
		if !ev.ValuesUpdated {
			m.updateValues(e, c)
		}
		m.resetPosition()
	case NextElement, MoveRight:
		m.moveNext()
	case PreviousElement, MoveLeft:
		m.movePrevious()
	case MoveDown, NextPage:
		m.moveDown()
	case MoveUp, PreviousPage:
		m.moveUp()
	}
}

func (m *Columnar) UpdateValues(e *editor.Editor, c completion.Completer) {
	m.updateValues(e, c)
	m.resetPosition()
}

func (m *Columnar) resetPosition() { m.colPos, m.rowPos = 0, 0 }

// UpdateWorkingDetails recomputes column count/width for the current
// screen width, grounded on
// context_menu.rs's update_working_details.
func (m *Columnar) UpdateWorkingDetails(screenWidth int) {
	if screenWidth <= 0 {
		screenWidth = 80
	}

	maxWidth := 0
	hasDescription := false
	for _, v := range m.values {
		w := runewidth.StringWidth(v.Value) + m.colPadding
		if w > maxWidth {
			maxWidth = w
		}
		if v.Description != "" {
			hasDescription = true
		}
	}

	if hasDescription {
		m.cols = 1
		m.colWidth = screenWidth
		return
	}

	defaultWidth := m.fixedWidth
	if defaultWidth == 0 {
		defaultWidth = screenWidth / max(m.defaultCols, 1)
	}
	if maxWidth > defaultWidth {
		m.colWidth = maxWidth
	} else {
		m.colWidth = defaultWidth
	}
	if m.colWidth < 1 {
		m.colWidth = 1
	}

	possibleCols := screenWidth / m.colWidth
	if possibleCols > m.defaultCols {
		m.cols = max(m.defaultCols, 1)
	} else {
		m.cols = max(possibleCols, 1)
	}
}

func (m *Columnar) getCols() int { return max(m.cols, 1) }

func (m *Columnar) getRows() int {
	cols := m.getCols()
	if len(m.values) == 0 {
		return 0
	}
	return (len(m.values) + cols - 1) / cols
}

// moveNext and movePrevious are context_menu.rs's move_next/
// move_previous translated directly: they wrap within the grid,
// skipping past trailing cells the suggestion count doesn't fill.
func (m *Columnar) moveNext() {
	newCol := m.colPos + 1
	newRow := m.rowPos
	if newCol >= m.getCols() {
		newRow++
		newCol = 0
	}
	if newRow >= m.getRows() {
		newRow, newCol = 0, 0
	}
	if pos := newRow*m.getCols() + newCol; pos >= len(m.values) {
		m.resetPosition()
	} else {
		m.colPos, m.rowPos = newCol, newRow
	}
}

func (m *Columnar) movePrevious() {
	cols, rows := m.getCols(), m.getRows()

	var newCol, newRow int
	if m.colPos > 0 {
		newCol, newRow = m.colPos-1, m.rowPos
	} else if m.rowPos > 0 {
		newCol, newRow = cols-1, m.rowPos-1
	} else {
		newCol, newRow = cols-1, max(rows-1, 0)
	}

	if pos := newRow*cols + newCol; pos >= len(m.values) {
		if cols > 0 {
			m.colPos = (len(m.values)%cols + cols - 1) % cols
		}
		m.rowPos = max(rows-1, 0)
	} else {
		m.colPos, m.rowPos = newCol, newRow
	}
}

func (m *Columnar) moveDown() {
	rows := m.getRows()
	if rows == 0 {
		return
	}
	m.rowPos = (m.rowPos + 1) % rows
}

func (m *Columnar) moveUp() {
	rows := m.getRows()
	if rows == 0 {
		return
	}
	if m.rowPos == 0 {
		m.rowPos = rows - 1
	} else {
		m.rowPos--
	}
}

func (m *Columnar) position() int { return m.rowPos*m.getCols() + m.colPos }

func (m *Columnar) ReplaceInBuffer(e *editor.Editor) {
	if pos := m.position(); pos < len(m.values) {
		replaceInBuffer(e, m.values[pos])
	}
}

func (m *Columnar) CanQuickComplete() (completion.Suggestion, bool) { return m.canQuickComplete() }
func (m *Columnar) CanPartiallyComplete(e *editor.Editor) bool      { return m.canPartiallyComplete(e) }

// MenuString renders the grid, highlighting the selected cell and
// collapsing to a single description column when present.
func (m *Columnar) MenuString(availableLines int, useAnsi bool) string {
	cols := m.getCols()
	rows := m.getRows()
	if availableLines > 0 && rows > availableLines {
		rows = availableLines
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if idx >= len(m.values) {
				continue
			}
			cell := m.values[idx]
			text := cell.Value
			if cell.Description != "" {
				pad := m.colWidth - runewidth.StringWidth(text) - runewidth.StringWidth(cell.Description)
				if pad < 1 {
					pad = 1
				}
				text = text + strings.Repeat(" ", pad) + cell.Description
			} else {
				pad := m.colWidth - runewidth.StringWidth(text)
				if pad < 0 {
					pad = 0
				}
				text = text + strings.Repeat(" ", pad)
			}
			if useAnsi && idx == m.position() {
				text = "\x1b[7m" + text + "\x1b[0m"
			}
			b.WriteString(text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
