package history

import (
	"fmt"
	"strings"
	"sync"
)

// Memory is a process-lifetime History backend with no persistence,
// the default bound to a Shell unless the WithHistory option replaces it
// (grounded on the `history.memory` default source in
// history.go's NewInMemoryHistory).
type Memory struct {
	mu      sync.Mutex
	items   []Item
	nextID  ItemID
	session SessionID
}

// NewMemory returns an empty in-memory history.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// Save appends item if its command line is non-empty and distinct
// from the previous entry.
func (m *Memory) Save(item Item) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(item.CommandLine) == "" {
		return Item{}, nil
	}
	if n := len(m.items); n > 0 && m.items[n-1].CommandLine == item.CommandLine {
		return m.items[n-1], nil
	}

	item.ID = m.nextID
	m.nextID++
	m.items = append(m.items, item)
	return item, nil
}

func (m *Memory) Load(id ItemID) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, it := range m.items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("history: no item with id %d", id)
}

func (m *Memory) Count(q Query) (int, error) {
	items, err := m.Search(q)
	return len(items), err
}

func (m *Memory) CountAll() (int, error) {
	return m.Count(Everything(Forward))
}

func (m *Memory) Search(q Query) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []Item
	iterate(m.items, q.Direction, func(it Item) bool {
		if !matches(it, q) {
			return true
		}
		matched = append(matched, it)
		return q.Limit == 0 || len(matched) < q.Limit
	})
	return matched, nil
}

func (m *Memory) Update(id ItemID, fn func(Item) Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, it := range m.items {
		if it.ID == id {
			m.items[i] = fn(it)
			return nil
		}
	}
	return fmt.Errorf("history: no item with id %d", id)
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}

func (m *Memory) Delete(id ItemID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, it := range m.items {
		if it.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("history: no item with id %d", id)
}

func (m *Memory) Sync() error { return nil }

func (m *Memory) Session() (SessionID, bool) { return m.session, m.session != 0 }

// iterate walks items in the requested direction, calling visit per
// item until it returns false.
func iterate(items []Item, dir Direction, visit func(Item) bool) {
	if dir == Forward {
		for _, it := range items {
			if !visit(it) {
				return
			}
		}
		return
	}
	for i := len(items) - 1; i >= 0; i-- {
		if !visit(items[i]) {
			return
		}
	}
}

// matches applies a Query's id/time bounds and Filter to one item.
func matches(it Item, q Query) bool {
	if q.StartID != nil {
		if q.Direction == Forward && it.ID <= *q.StartID {
			return false
		}
		if q.Direction == Backward && it.ID >= *q.StartID {
			return false
		}
	}
	if q.EndID != nil {
		if q.Direction == Forward && it.ID >= *q.EndID {
			return false
		}
		if q.Direction == Backward && it.ID <= *q.EndID {
			return false
		}
	}

	f := q.Filter
	if f.NotCommandLine != "" && it.CommandLine == f.NotCommandLine {
		return false
	}
	switch f.CommandLineOp {
	case MatchPrefix:
		if !strings.HasPrefix(it.CommandLine, f.CommandLine) {
			return false
		}
	case MatchSubstring:
		if !strings.Contains(it.CommandLine, f.CommandLine) {
			return false
		}
	case MatchExact:
		if it.CommandLine != f.CommandLine {
			return false
		}
	}
	if f.Hostname != "" && it.Hostname != f.Hostname {
		return false
	}
	if f.CwdExact != "" && it.Cwd != f.CwdExact {
		return false
	}
	if f.CwdPrefix != "" && !strings.HasPrefix(it.Cwd, f.CwdPrefix) {
		return false
	}
	if f.Session != nil && it.SessionID != *f.Session {
		return false
	}
	return true
}
