// Package keymap implements the keybinding trie: a tree of
// (modifier,key) combos mapping to a bound Event, supporting chord
// prefixes.
package keymap

import "fmt"

// Modifier is a bitmask of terminal key modifiers.
type Modifier int

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// KeyCode identifies a physical/logical key.
type KeyCode int

const (
	KeyChar KeyCode = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyTab
	KeyBackTab
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInsert
	KeyF
)

// Combo is one (modifier,key) pair in a binding sequence. Rune is only
// meaningful when Code == KeyChar; FNum is only meaningful when
// Code == KeyF.
type Combo struct {
	Mod  Modifier
	Code KeyCode
	Rune rune
	FNum int
}

// Event is what a completed keybinding sequence resolves to.
type Event struct {
	Name string

	// UntilFound lists events to try in order until one produces an
	// effect; constructing one with an empty slice is rejected by
	// Trie.AddSequence.
	UntilFound []Event
}

// node is either a leaf (Event != nil) or a Prefix (children != nil).
// Per invariant, a node cannot be both at once.
type node struct {
	event    *Event
	children map[Combo]*node
}

func (n *node) isLeaf() bool   { return n.event != nil }
func (n *node) isPrefix() bool { return n.children != nil }

// Trie is the keybinding dispatch tree.
type Trie struct {
	root *node
}

// NewTrie returns an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: &node{}}
}

// AddBinding binds a single combo directly at the root.
func (t *Trie) AddBinding(combo Combo, event Event) error {
	return t.AddSequence([]Combo{combo}, event)
}

// AddSequence inserts a binding for a sequence of combos. Inserting a
// binding whose path crosses an existing leaf promotes that leaf to a
// Prefix node (the leaf's own event is discarded, matching the design's
// "may overwrite a leaf with a prefix"). Constructing an
// Event{UntilFound: []Event{}} (non-nil, empty) is rejected.
func (t *Trie) AddSequence(seq []Combo, event Event) error {
	if event.UntilFound != nil && len(event.UntilFound) == 0 {
		return fmt.Errorf("keymap: UntilFound event must not be empty")
	}
	if len(seq) == 0 {
		return fmt.Errorf("keymap: empty binding sequence")
	}

	cur := t.root
	for i, combo := range seq {
		if cur.children == nil {
			cur.children = make(map[Combo]*node)
		}
		next, ok := cur.children[combo]
		if !ok {
			next = &node{}
			cur.children[combo] = next
		}

		if i == len(seq)-1 {
			next.event = &event
			// A leaf and a prefix cannot coexist at the same node:
			// bindings strictly longer than this one, previously
			// inserted through it, are discarded and this leaf wins.
			if next.children != nil {
				next.children = nil
			}
			return nil
		}

		// This combo is not the sequence's last: next must become a
		// Prefix node. If it was previously a leaf (a shorter binding
		// ended here), that leaf's event is discarded per the same
		// one-or-the-other invariant.
		next.event = nil
		cur = next
	}

	return nil
}

// RemoveSequence removes only the leaf at seq; any deeper bindings
// that pass through this path survive as a Prefix node.
func (t *Trie) RemoveSequence(seq []Combo) {
	cur := t.root
	for _, combo := range seq {
		if cur.children == nil {
			return
		}
		next, ok := cur.children[combo]
		if !ok {
			return
		}
		cur = next
	}
	cur.event = nil
}

// Result is what FindSequence reports for a candidate sequence.
type Result int

const (
	NoMatch Result = iota
	ChordPrefix
	Matched
)

// FindSequence walks seq down the trie. It reports Matched with the
// bound Event when seq resolves to a leaf, ChordPrefix when seq is a
// strict prefix of some longer binding (the caller should wait for
// more input), or NoMatch otherwise.
func (t *Trie) FindSequence(seq []Combo) (Result, Event) {
	cur := t.root
	for _, combo := range seq {
		if cur.children == nil {
			return NoMatch, Event{}
		}
		next, ok := cur.children[combo]
		if !ok {
			return NoMatch, Event{}
		}
		cur = next
	}

	switch {
	case cur.isLeaf():
		return Matched, *cur.event
	case cur.isPrefix():
		return ChordPrefix, Event{}
	default:
		return NoMatch, Event{}
	}
}
