package emacsmode

import "github.com/rivereed/lineedit/internal/keymap"

// DefaultTrie builds the stock Emacs keybinding set.
func DefaultTrie() *keymap.Trie {
	t := keymap.NewTrie()

	bind := func(mod keymap.Modifier, code keymap.KeyCode, r rune, name string) {
		_ = t.AddBinding(keymap.Combo{Mod: mod, Code: code, Rune: r}, keymap.Event{Name: name})
	}

	bind(keymap.ModCtrl, keymap.KeyChar, 'a', "beginning-of-line")
	bind(keymap.ModCtrl, keymap.KeyChar, 'e', "end-of-line")
	bind(keymap.ModCtrl, keymap.KeyChar, 'f', "forward-char")
	bind(keymap.ModCtrl, keymap.KeyChar, 'b', "backward-char")
	bind(keymap.ModCtrl, keymap.KeyChar, 'd', "delete-char")
	bind(keymap.ModCtrl, keymap.KeyChar, 'h', "backward-delete-char")
	bind(keymap.ModCtrl, keymap.KeyChar, 'k', "kill-line")
	bind(keymap.ModCtrl, keymap.KeyChar, 'u', "unix-line-discard")
	bind(keymap.ModCtrl, keymap.KeyChar, 'y', "yank")
	bind(keymap.ModCtrl, keymap.KeyChar, 't', "transpose-chars")
	bind(keymap.ModCtrl, keymap.KeyChar, '_', "undo")

	bind(keymap.ModAlt, keymap.KeyChar, 'b', "backward-word")
	bind(keymap.ModAlt, keymap.KeyChar, 'f', "forward-word")
	bind(keymap.ModAlt, keymap.KeyChar, 'd', "kill-word")
	bind(keymap.ModAlt, keymap.KeyBackspace, 0, "backward-kill-word")
	bind(keymap.ModAlt, keymap.KeyChar, 'u', "upcase-word")
	bind(keymap.ModAlt, keymap.KeyChar, 'l', "downcase-word")
	bind(keymap.ModAlt, keymap.KeyChar, 'c', "capitalize-char")
	bind(keymap.ModAlt, keymap.KeyChar, 't', "transpose-words")
	bind(keymap.ModAlt, keymap.KeyChar, '<', "beginning-of-buffer")
	bind(keymap.ModAlt, keymap.KeyChar, '>', "end-of-buffer")

	_ = t.AddBinding(keymap.Combo{Code: keymap.KeyUp}, keymap.Event{Name: "previous-line"})
	_ = t.AddBinding(keymap.Combo{Code: keymap.KeyDown}, keymap.Event{Name: "next-line"})
	_ = t.AddBinding(keymap.Combo{Code: keymap.KeyLeft}, keymap.Event{Name: "backward-char"})
	_ = t.AddBinding(keymap.Combo{Code: keymap.KeyRight}, keymap.Event{Name: "forward-char"})
	_ = t.AddBinding(keymap.Combo{Code: keymap.KeyHome}, keymap.Event{Name: "beginning-of-line"})
	_ = t.AddBinding(keymap.Combo{Code: keymap.KeyEnd}, keymap.Event{Name: "end-of-line"})
	_ = t.AddBinding(keymap.Combo{Code: keymap.KeyDelete}, keymap.Event{Name: "delete-char"})
	_ = t.AddBinding(keymap.Combo{Code: keymap.KeyBackspace}, keymap.Event{Name: "backward-delete-char"})

	return t
}
