package menu

import (
	"strconv"
	"strings"

	"github.com/rivereed/lineedit/internal/completion"
	"github.com/rivereed/lineedit/internal/editor"
)

// List is the paginated one-per-line menu: pages are fixed slices of
// pageSize entries, whatever the number of rows available on screen,
// and a trailing `!<n>` in the buffer selects the n-th entry on the
// current page,
// grounded on original_source's list_menu.rs (page sizing,
// parse_selection_char's `!` marker).
type List struct {
	base

	pageSize int
	page     int
	rowPos   int
}

// NewList returns a List menu with the default page size.
func NewList() *List { return &List{pageSize: 10} }

func (m *List) HandleEvent(ev MenuEvent, e *editor.Editor, c completion.Completer) {
	switch ev.Kind {
	case Activate:
		m.activate(e)
		if !ev.ValuesUpdated {
			m.updateValuesWithMarker(e, c)
		}
	case Deactivate:
		m.deactivate()
	case EditEvent:
		if !ev.ValuesUpdated {
			m.updateValuesWithMarker(e, c)
		}
	case NextElement, MoveDown:
		m.moveNext()
	case PreviousElement, MoveUp:
		m.movePrevious()
	case NextPage:
		m.changePage(1)
	case PreviousPage:
		m.changePage(-1)
	}
}

func (m *List) UpdateValues(e *editor.Editor, c completion.Completer) {
	m.updateValuesWithMarker(e, c)
}

// updateValuesWithMarker strips a trailing `!<n>` selection marker
// before querying the completer, then selects row n of the current
// page.
func (m *List) updateValuesWithMarker(e *editor.Editor, c completion.Completer) {
	line := e.Buffer.String()
	pos := e.Buffer.Offset()
	remainder, n, ok := parseBangSelection(line)
	if ok {
		pos -= len(line) - len(remainder)
		if pos < 0 {
			pos = 0
		}
		line = remainder
	}
	m.values = c.Complete(line, pos)
	if ok && n >= 1 && n <= m.pageSize {
		m.rowPos = n - 1
	} else {
		m.page, m.rowPos = 0, 0
	}
}

func parseBangSelection(s string) (remainder string, n int, ok bool) {
	i := strings.LastIndexByte(s, '!')
	if i < 0 {
		return s, 0, false
	}
	numPart := s[i+1:]
	if numPart == "" {
		return s, 0, false
	}
	v, err := strconv.Atoi(numPart)
	if err != nil || v < 0 {
		return s, 0, false
	}
	return s[:i], v, true
}

func (m *List) UpdateWorkingDetails(screenWidth int) {}

func (m *List) pageCount() int {
	if m.pageSize <= 0 || len(m.values) == 0 {
		return 1
	}
	return (len(m.values) + m.pageSize - 1) / m.pageSize
}

func (m *List) pageSlice() []completion.Suggestion {
	start := m.page * m.pageSize
	if start >= len(m.values) {
		return nil
	}
	end := start + m.pageSize
	if end > len(m.values) {
		end = len(m.values)
	}
	return m.values[start:end]
}

func (m *List) moveNext() {
	page := m.pageSlice()
	if len(page) == 0 {
		return
	}
	m.rowPos++
	if m.rowPos >= len(page) {
		m.rowPos = 0
		m.changePage(1)
	}
}

func (m *List) movePrevious() {
	if m.rowPos == 0 {
		m.changePage(-1)
		if page := m.pageSlice(); len(page) > 0 {
			m.rowPos = len(page) - 1
		}
		return
	}
	m.rowPos--
}

func (m *List) changePage(delta int) {
	pages := m.pageCount()
	m.page = ((m.page+delta)%pages + pages) % pages
	m.rowPos = 0
}

func (m *List) ReplaceInBuffer(e *editor.Editor) {
	page := m.pageSlice()
	if m.rowPos < len(page) {
		replaceInBuffer(e, page[m.rowPos])
	}
}

func (m *List) CanQuickComplete() (completion.Suggestion, bool) { return m.canQuickComplete() }
func (m *List) CanPartiallyComplete(e *editor.Editor) bool      { return m.canPartiallyComplete(e) }

// MenuString renders the current page, one suggestion per line, with a
// banner noting the page position among the total.
func (m *List) MenuString(availableLines int, useAnsi bool) string {
	page := m.pageSlice()

	var b strings.Builder
	b.WriteString("page ")
	b.WriteString(strconv.Itoa(m.page + 1))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(m.pageCount()))
	b.WriteByte('\n')

	for i, v := range page {
		if availableLines > 0 && i >= availableLines {
			break
		}
		line := v.Value
		if v.Description != "" {
			line += "  " + v.Description
		}
		if useAnsi && i == m.rowPos {
			line = "\x1b[7m" + line + "\x1b[0m"
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
