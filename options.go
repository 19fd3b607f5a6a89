package lineedit

import (
	"io"

	"github.com/rivereed/lineedit/internal/completion"
	"github.com/rivereed/lineedit/internal/config"
	"github.com/rivereed/lineedit/internal/history"
	"github.com/rivereed/lineedit/internal/keymap"
	"github.com/rivereed/lineedit/internal/menu"
)

// Option configures a Shell at construction time.
type Option func(*Shell)

// WithPrompt installs the Prompt contract implementation.
func WithPrompt(p Prompt) Option {
	return func(s *Shell) { s.prompt = p }
}

// WithCompleter installs the embedder's Completer.
func WithCompleter(c completion.Completer) Option {
	return func(s *Shell) { s.completer = c }
}

// WithHighlighter installs the embedder's Highlighter.
func WithHighlighter(h completion.Highlighter) Option {
	return func(s *Shell) { s.highlighter = h }
}

// WithHinter installs the embedder's Hinter.
func WithHinter(h completion.Hinter) Option {
	return func(s *Shell) { s.hinter = h }
}

// WithHistory replaces the default in-memory History backend (e.g.
// with a history.File for on-disk persistence).
func WithHistory(h history.History) Option {
	return func(s *Shell) { s.hist = h }
}

// WithEditingMode selects Emacs, Vi, or Helix as the active modal
// state machine.
func WithEditingMode(mode EditingMode) Option {
	return func(s *Shell) { s.mode = mode }
}

// WithKeymap replaces the Emacs-mode keybinding trie (has no effect in
// Vi/Helix mode, which use their own grammars).
func WithKeymap(trie *keymap.Trie) Option {
	return func(s *Shell) { s.trie = trie }
}

// WithConfig replaces the option/keybinding store.
func WithConfig(cfg *config.Config) Option {
	return func(s *Shell) { s.cfg = cfg }
}

// WithMenu installs a completion menu (Columnar/List/IDE/DiagnosticFix)
// that Tab/the embedder's bound widget activates.
func WithMenu(m menu.Menu) Option {
	return func(s *Shell) { s.activeMenu = m }
}

// WithIO redirects input/output away from os.Stdin/os.Stdout (e.g. for
// tests driving the Shell over pipes).
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Shell) { s.in = in; s.out = out }
}
