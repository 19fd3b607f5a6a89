// Package lineedit is the embedder-facing API: a Shell wires together
// the modal editor state machines, history, completion menus and the
// painter into one ReadLine call per top-level data-flow
// (Key event -> Mode dispatch -> Editor mutation -> Painter repaint),
// grounded on the root-package readline.go (its Instance
// type plays the same wiring role as Shell here).
package lineedit

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/rivereed/lineedit/internal/completion"
	"github.com/rivereed/lineedit/internal/config"
	"github.com/rivereed/lineedit/internal/edit"
	"github.com/rivereed/lineedit/internal/editor"
	"github.com/rivereed/lineedit/internal/emacsmode"
	"github.com/rivereed/lineedit/internal/helix"
	"github.com/rivereed/lineedit/internal/history"
	"github.com/rivereed/lineedit/internal/keymap"
	"github.com/rivereed/lineedit/internal/menu"
	"github.com/rivereed/lineedit/internal/painter"
	"github.com/rivereed/lineedit/internal/term"
	"github.com/rivereed/lineedit/internal/vi"
)

// EditingMode selects which modal state machine interprets keys.
type EditingMode int

const (
	Emacs EditingMode = iota
	Vi
	Helix
)

// Shell is the embedder-facing line editor. Construct one with New
// and call ReadLine in a loop.
type Shell struct {
	prompt      Prompt
	completer   completion.Completer
	highlighter completion.Highlighter
	hinter      completion.Hinter
	hist        history.History
	navCursor   *history.Cursor
	navActive   bool

	mode  EditingMode
	trie  *keymap.Trie
	cfg   *config.Config

	activeMenu menu.Menu

	in  io.Reader
	out io.Writer
}

// New builds a Shell from the given options, with an Emacs-mode,
// in-memory-history, no-completion default matching the own
// NewInMemoryHistory-by-default posture.
func New(opts ...Option) *Shell {
	s := &Shell{
		prompt: DefaultPrompt{},
		hist:   history.NewMemory(),
		mode:   Emacs,
		trie:   emacsmode.DefaultTrie(),
		cfg:    config.Default(),
		in:     os.Stdin,
		out:    os.Stdout,
	}
	for _, o := range opts {
		o(s)
	}
	switch s.cfg.GetString("editing-mode") {
	case "vi":
		s.mode = Vi
	case "helix":
		s.mode = Helix
	}
	s.navCursor = history.NewCursor(history.NavigationQuery{})
	return s
}

// ReadLine puts the terminal in raw mode, reads one logical line under
// the configured editing mode, and returns the resulting Signal.
func (s *Shell) ReadLine() (Signal, error) {
	f, ok := s.in.(*os.File)
	var raw *term.State
	if ok {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return Signal{}, err
		}
		raw = state
		defer term.Restore(int(f.Fd()), raw)
	}

	s.navCursor.SetQuery(history.NavigationQuery{})
	s.navActive = false

	ed := editor.New()
	p := painter.New(s.out)
	if cols, _, err := term.GetSize(0); err == nil {
		p.SetWidth(cols)
	}

	viState := vi.New()
	helixState := helix.New()
	emacsState := emacsmode.New(s.trie)

	reader := term.NewReader(bufio.NewReader(s.in))

	for {
		s.repaint(p, ed)

		ev, err := reader.ReadEvent()
		if err != nil {
			return Signal{}, err
		}

		switch ev.Kind {
		case term.EventResize:
			p.SetWidth(ev.Cols)
		case term.EventPaste:
			ed.RunEditCommand(edit.Command{Kind: edit.InsertString, Text: ev.Paste})
		case term.EventKey:
			sig, done := s.handleKey(ev.Key, ed, viState, helixState, emacsState)
			if done {
				return sig, nil
			}
		}
	}
}

func (s *Shell) handleKey(combo keymap.Combo, ed *editor.Editor, viState *vi.State, helixState *helix.State, emacsState *emacsmode.State) (Signal, bool) {
	if combo.Mod == keymap.ModCtrl && combo.Code == keymap.KeyChar {
		switch combo.Rune {
		case 'c':
			return Signal{Kind: SignalCtrlC}, true
		case 'd':
			if ed.Buffer.IsEmpty() {
				return Signal{Kind: SignalCtrlD}, true
			}
		case 'p':
			s.historyBack(ed)
			return Signal{}, false
		case 'n':
			s.historyForward(ed)
			return Signal{}, false
		}
	}
	if combo.Code == keymap.KeyEnter {
		if s.activeMenu != nil && s.activeMenu.IsActive() {
			s.activeMenu.ReplaceInBuffer(ed)
			s.activeMenu.HandleEvent(menu.MenuEvent{Kind: menu.Deactivate}, ed, s.completer)
			return Signal{}, false
		}
		line := ed.Buffer.String()
		s.saveHistory(line)
		return Signal{Kind: SignalSuccess, Line: line}, true
	}
	if combo.Code == keymap.KeyEsc && s.activeMenu != nil && s.activeMenu.IsActive() {
		s.activeMenu.HandleEvent(menu.MenuEvent{Kind: menu.Deactivate}, ed, s.completer)
		return Signal{}, false
	}
	if combo.Code == keymap.KeyTab {
		s.handleTab(ed)
		return Signal{}, false
	}

	// Up/Down recall history when the cursor is already on the buffer's
	// first/last line; otherwise they move within a multiline buffer,
	// same as every other navigation key below.
	if combo.Code == keymap.KeyUp && ed.Buffer.IsCursorAtFirstLine() {
		s.historyBack(ed)
		return Signal{}, false
	}
	if combo.Code == keymap.KeyDown && ed.Buffer.IsCursorAtLastLine() && s.navActive {
		s.historyForward(ed)
		return Signal{}, false
	}

	// In Vi/Helix mode navigation and erase keys are honored directly,
	// since those grammars only consume printable runes and Esc; Emacs
	// mode looks them up in its keymap trie instead.
	if s.mode != Emacs {
		if cmd, ok := navigationCommand(combo); ok {
			ed.RunEditCommand(cmd)
			return Signal{}, false
		}
	}

	switch s.mode {
	case Emacs:
		emacsState.HandleCombo(combo, ed)
	case Vi:
		s.dispatchModal(combo, ed, func(r rune) bool { return viState.HandleKey(r, ed) }, func() { viState.HandleEsc(ed) })
	case Helix:
		s.dispatchModal(combo, ed, func(r rune) bool { return helixState.HandleKey(r, ed) }, func() { helixState.HandleEsc(ed) })
	}
	return Signal{}, false
}

func (s *Shell) dispatchModal(combo keymap.Combo, ed *editor.Editor, handleKey func(rune) bool, handleEsc func()) {
	switch combo.Code {
	case keymap.KeyEsc:
		handleEsc()
	case keymap.KeyChar:
		handleKey(combo.Rune)
	}
}

// handleTab triggers or advances completion uniformly across editing
// modes (Tab is a readline-wide convention, not part of any one mode's
// own grammar). The first press quick-completes a sole candidate or
// extends the longest common prefix; a second press on
// an already-active menu cycles to the next suggestion.
func (s *Shell) handleTab(ed *editor.Editor) {
	if s.completer == nil {
		return
	}
	if s.activeMenu == nil {
		s.activeMenu = menu.NewColumnar()
	}
	if s.activeMenu.IsActive() {
		s.activeMenu.HandleEvent(menu.MenuEvent{Kind: menu.NextElement}, ed, s.completer)
		return
	}

	s.activeMenu.HandleEvent(menu.MenuEvent{Kind: menu.Activate}, ed, s.completer)
	if len(s.activeMenu.GetValues()) == 0 {
		s.activeMenu.HandleEvent(menu.MenuEvent{Kind: menu.Deactivate}, ed, s.completer)
		return
	}
	if _, ok := s.activeMenu.CanQuickComplete(); ok {
		s.activeMenu.ReplaceInBuffer(ed)
		s.activeMenu.HandleEvent(menu.MenuEvent{Kind: menu.Deactivate}, ed, s.completer)
		return
	}
	s.activeMenu.CanPartiallyComplete(ed)
}

func navigationCommand(c keymap.Combo) (edit.Command, bool) {
	switch c.Code {
	case keymap.KeyLeft:
		return edit.Command{Kind: edit.MoveLeft}, true
	case keymap.KeyRight:
		return edit.Command{Kind: edit.MoveRight}, true
	case keymap.KeyUp:
		return edit.Command{Kind: edit.MoveLineUp}, true
	case keymap.KeyDown:
		return edit.Command{Kind: edit.MoveLineDown}, true
	case keymap.KeyHome:
		return edit.Command{Kind: edit.MoveToLineStart}, true
	case keymap.KeyEnd:
		return edit.Command{Kind: edit.MoveToLineEnd}, true
	case keymap.KeyBackspace:
		return edit.Command{Kind: edit.Backspace}, true
	case keymap.KeyDelete:
		return edit.Command{Kind: edit.Delete}, true
	}
	return edit.Command{}, false
}

// historyBack recalls the previous history entry into the buffer,
// starting a navigation session (and remembering the in-progress
// buffer) on its first call.
func (s *Shell) historyBack(ed *editor.Editor) {
	if s.hist == nil {
		return
	}
	if !s.navActive {
		s.navCursor.SetQuery(history.NavigationQuery{Kind: history.Normal, SavedBuffer: ed.Buffer.String()})
		s.navActive = true
	}
	if err := s.navCursor.Back(s.hist); err != nil {
		return
	}
	if line, ok := s.navCursor.StringAtCursor(); ok {
		ed.Buffer.SetBuffer(line)
	}
}

// historyForward recalls the next (newer) history entry, or restores
// the buffer as it stood before navigation began once the newest
// entry is passed.
func (s *Shell) historyForward(ed *editor.Editor) {
	if s.hist == nil || !s.navActive {
		return
	}
	if err := s.navCursor.Forward(s.hist); err != nil {
		return
	}
	if line, ok := s.navCursor.StringAtCursor(); ok {
		ed.Buffer.SetBuffer(line)
		return
	}
	ed.Buffer.SetBuffer(s.navCursor.Query().SavedBuffer)
	s.navActive = false
}

func (s *Shell) saveHistory(line string) {
	if s.hist == nil {
		return
	}
	_, _ = s.hist.Save(history.Item{CommandLine: line, StartTimestamp: time.Now()})
	_ = s.hist.Sync()
}

// repaint renders the prompt, buffer, hint, and any active menu
// through the painter.
func (s *Shell) repaint(p *painter.Painter, ed *editor.Editor) {
	f := painter.Frame{
		PromptLeft:  s.prompt.RenderPromptLeft(),
		PromptRight: s.prompt.RenderPromptRight(),
		Buffer:      ed.Buffer.String(),
		CursorBytes: ed.Buffer.Offset(),
	}

	if s.highlighter != nil {
		f.Styled = s.highlighter.Highlight(f.Buffer, f.CursorBytes)
	}
	if s.hinter != nil {
		f.Hint = s.hinter.CompleteHint()
	}
	if s.activeMenu != nil && s.activeMenu.IsActive() {
		f.Menu = s.activeMenu.MenuString(10, true)
	}

	_ = p.Repaint(f)
}
