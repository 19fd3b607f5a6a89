package menu

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rivereed/lineedit/internal/completion"
	"github.com/rivereed/lineedit/internal/editor"
)

// Replacement is one span-for-text substitution an LSP code action
// asks for, grounded on
// original_source's diagnostic_fix_menu.rs/lsp code-action plumbing.
type Replacement struct {
	Span    completion.Span
	NewText string
}

// FixOption is one selectable code action: a title plus the ordered
// set of replacements it applies.
type FixOption struct {
	Title        string
	Description  string
	Replacements []Replacement
}

// DiagnosticFix is the one-line-per-fix menu of selecting
// an entry applies its Replacements in right-to-left span order so an
// earlier edit's offsets stay valid for a later one, with the cursor
// landing at the end of the first (leftmost) replacement.
type DiagnosticFix struct {
	base2
	fixes  []FixOption
	rowPos int
}

// base2 mirrors `base`'s activation bookkeeping without its
// completer-driven updateValues, since fixes are set directly via
// SetFixes rather than queried from a completion.Completer.
type base2 struct {
	active bool
}

func (b *base2) IsActive() bool { return b.active }

// NewDiagnosticFix returns an empty, inactive DiagnosticFix menu.
func NewDiagnosticFix() *DiagnosticFix { return &DiagnosticFix{} }

// SetFixes installs the available fixes for the current diagnostic,
// activating the menu (grounded on diagnostic_fix_menu.rs's set_fixes).
func (m *DiagnosticFix) SetFixes(fixes []FixOption) {
	m.fixes = fixes
	m.rowPos = 0
	m.active = len(fixes) > 0
}

func (m *DiagnosticFix) HandleEvent(ev MenuEvent, e *editor.Editor, c completion.Completer) {
	switch ev.Kind {
	case Deactivate:
		m.active = false
		m.fixes = nil
	case NextElement, MoveDown:
		if n := len(m.fixes); n > 0 {
			m.rowPos = (m.rowPos + 1) % n
		}
	case PreviousElement, MoveUp:
		if n := len(m.fixes); n > 0 {
			m.rowPos = (m.rowPos - 1 + n) % n
		}
	}
}

// UpdateValues is a no-op: fixes arrive via SetFixes, not a Completer.
func (m *DiagnosticFix) UpdateValues(e *editor.Editor, c completion.Completer) {}

func (m *DiagnosticFix) UpdateWorkingDetails(screenWidth int) {}

// ReplaceInBuffer applies the selected fix's replacements right-to-left
//, landing the cursor at the end of the first (leftmost)
// replacement, grounded on diagnostic_fix_menu.rs's replace_in_buffer.
func (m *DiagnosticFix) ReplaceInBuffer(e *editor.Editor) {
	if m.rowPos >= len(m.fixes) {
		return
	}
	fix := m.fixes[m.rowPos]
	if len(fix.Replacements) == 0 {
		return
	}

	ordered := append([]Replacement(nil), fix.Replacements...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Span.Start > ordered[j].Span.Start
	})

	line := e.Buffer.String()
	for _, r := range ordered {
		start, end := r.Span.Start, r.Span.End
		if end > len(line) {
			end = len(line)
		}
		if start > end {
			start = end
		}
		line = line[:start] + r.NewText + line[end:]
	}
	e.Buffer.SetBuffer(line)

	first := ordered[len(ordered)-1]
	cursor := first.Span.Start + len(first.NewText)
	if cursor > len(line) {
		cursor = len(line)
	}
	e.Buffer.SetCursorUnsafe(cursor)
}

func (m *DiagnosticFix) CanQuickComplete() (completion.Suggestion, bool) {
	return completion.Suggestion{}, false
}

func (m *DiagnosticFix) CanPartiallyComplete(e *editor.Editor) bool { return false }

func (m *DiagnosticFix) GetValues() []completion.Suggestion { return nil }

// MenuString renders one `>replacement (title)` line per fix.
func (m *DiagnosticFix) MenuString(availableLines int, useAnsi bool) string {
	var b strings.Builder
	for i, fix := range m.fixes {
		if availableLines > 0 && i >= availableLines {
			break
		}
		preview := ""
		if len(fix.Replacements) > 0 {
			preview = fix.Replacements[0].NewText
		}
		line := fmt.Sprintf(">%s (%s)", preview, fix.Title)
		if useAnsi && i == m.rowPos {
			line = "\x1b[7m" + line + "\x1b[0m"
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
