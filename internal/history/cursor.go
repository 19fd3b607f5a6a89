package history

// Cursor is a stateful navigator over a History under a
// NavigationQuery, grounded on
// original_source's history/cursor.rs: Back/Forward delegate entirely
// to History.Search with a one-item limit, so the cursor itself holds
// only the currently focused item and the active query.
type Cursor struct {
	query     NavigationQuery
	current   *Item
	skipDupes bool
}

// NewCursor returns a Cursor under the given query, focused on
// nothing.
func NewCursor(query NavigationQuery) *Cursor {
	return &Cursor{query: query, skipDupes: true}
}

// Query reports the active NavigationQuery.
func (c *Cursor) Query() NavigationQuery { return c.query }

// SetQuery replaces the active NavigationQuery and drops focus, as a
// new search mode starts from scratch.
func (c *Cursor) SetQuery(q NavigationQuery) {
	c.query = q
	c.current = nil
}

// StringAtCursor returns the command line currently focused, if any.
func (c *Cursor) StringAtCursor() (string, bool) {
	if c.current == nil {
		return "", false
	}
	return c.current.CommandLine, true
}

// Back moves toward older entries. A no-op at the oldest entry.
func (c *Cursor) Back(h History) error { return c.navigate(h, Backward) }

// Forward moves toward newer entries. Past the newest, focus returns
// to "none".
func (c *Cursor) Forward(h History) error { return c.navigate(h, Forward) }

func (c *Cursor) navigate(h History, dir Direction) error {
	if dir == Forward && c.current == nil {
		return nil
	}

	filter := c.searchFilter()

	var startID *ItemID
	if c.current != nil {
		id := c.current.ID
		startID = &id
	}

	items, err := h.Search(Query{
		Direction: dir,
		StartID:   startID,
		Limit:     1,
		Filter:    filter,
	})
	if err != nil {
		return err
	}

	switch {
	case len(items) == 1:
		c.current = &items[0]
	case dir == Forward:
		c.current = nil
	}
	return nil
}

func (c *Cursor) searchFilter() Filter {
	var f Filter
	switch c.query.Kind {
	case PrefixSearch:
		f = Filter{CommandLine: c.query.Term, CommandLineOp: MatchPrefix}
	case SubstringSearch:
		f = Filter{CommandLine: c.query.Term, CommandLineOp: MatchSubstring}
	default:
		f = Filter{}
	}
	if c.skipDupes && c.current != nil {
		f.NotCommandLine = c.current.CommandLine
	}
	return f
}
