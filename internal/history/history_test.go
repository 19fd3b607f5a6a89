package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemorySaveSuppressesConsecutiveDuplicate(t *testing.T) {
	m := NewMemory()
	_, err := m.Save(Item{CommandLine: "a"})
	require.NoError(t, err)
	_, err = m.Save(Item{CommandLine: "a"})
	require.NoError(t, err)

	n, err := m.CountAll()
	require.NoError(t, err)
	require.Equal(t, 1, n, "a repeated consecutive entry should not be re-saved")
}

func TestMemorySaveIgnoresBlankLine(t *testing.T) {
	m := NewMemory()
	_, err := m.Save(Item{CommandLine: "   "})
	require.NoError(t, err)
	n, _ := m.CountAll()
	require.Equal(t, 0, n)
}

func TestMemorySearchBackwardReturnsNewestFirst(t *testing.T) {
	m := NewMemory()
	m.Save(Item{CommandLine: "a"})
	m.Save(Item{CommandLine: "b"})
	m.Save(Item{CommandLine: "c"})

	items, err := m.Search(Everything(Backward))
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "c", items[0].CommandLine)
	require.Equal(t, "a", items[2].CommandLine)
}

func newMemoryCursor(t *testing.T, lines ...string) (*Memory, *Cursor) {
	t.Helper()
	m := NewMemory()
	for _, l := range lines {
		_, err := m.Save(Item{CommandLine: l})
		require.NoError(t, err)
	}
	return m, NewCursor(NavigationQuery{Kind: Normal})
}

func TestCursorBackStopsAtOldestEntry(t *testing.T) {
	m, c := newMemoryCursor(t, "a", "b", "c")

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Back(m))
	}
	s, ok := c.StringAtCursor()
	require.True(t, ok)
	require.Equal(t, "a", s)

	// One further Back stays put at the oldest rather than losing focus.
	require.NoError(t, c.Back(m))
	s, ok = c.StringAtCursor()
	require.True(t, ok)
	require.Equal(t, "a", s)
}

func TestCursorForwardPastNewestReturnsToNoFocus(t *testing.T) {
	m, c := newMemoryCursor(t, "a", "b", "c")

	c.Back(m) // -> c
	c.Back(m) // -> b
	c.Back(m) // -> a

	c.Forward(m) // -> b
	c.Forward(m) // -> c
	s, ok := c.StringAtCursor()
	require.True(t, ok)
	require.Equal(t, "c", s)

	require.NoError(t, c.Forward(m))
	_, ok = c.StringAtCursor()
	require.False(t, ok, "Forward past the newest entry should clear focus")
}

func TestCursorForwardIsANoOpWithoutFocus(t *testing.T) {
	m, c := newMemoryCursor(t, "a", "b")
	require.NoError(t, c.Forward(m))
	_, ok := c.StringAtCursor()
	require.False(t, ok, "Forward with no current focus should remain unfocused")
}

func TestCursorPrefixSearchFiltersCandidates(t *testing.T) {
	m, _ := newMemoryCursor(t, "git add", "git commit", "ls -la")
	c := NewCursor(NavigationQuery{Kind: PrefixSearch, Term: "git"})

	c.Back(m)
	s, ok := c.StringAtCursor()
	require.True(t, ok)
	require.Equal(t, "git commit", s)

	c.Back(m)
	s, ok = c.StringAtCursor()
	require.True(t, ok)
	require.Equal(t, "git add", s)
}

func TestFileSyncMergesForeignWritesAndTruncatesToCapacity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	writer, err := NewFileWithPath(0, path, 1, "host")
	require.NoError(t, err)
	for _, l := range []string{"a", "b", "c"} {
		_, err := writer.Save(Item{CommandLine: l})
		require.NoError(t, err)
	}
	require.NoError(t, writer.Sync())
	writer.Close()

	reader, err := NewFileWithPath(2, path, 2, "host")
	require.NoError(t, err)
	defer reader.Close()

	items, err := reader.Search(Everything(Forward))
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "b", items[0].CommandLine)
	require.Equal(t, "c", items[1].CommandLine)
}

func TestFileWritingPastCapacityKeepsLastEntriesInOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	f, err := NewFileWithPath(3, path, 1, "host")
	require.NoError(t, err)
	defer f.Close()

	for _, l := range []string{"a", "b", "c", "d", "e"} {
		_, err := f.Save(Item{CommandLine: l})
		require.NoError(t, err)
		require.NoError(t, f.Sync())
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "c\nd\ne\n", string(raw))

	items, err := f.Search(Everything(Forward))
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "c", items[0].CommandLine)
	require.Equal(t, "d", items[1].CommandLine)
	require.Equal(t, "e", items[2].CommandLine)
}

func TestFileEscapesEmbeddedNewlinesOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	f, err := NewFileWithPath(0, path, 1, "host")
	require.NoError(t, err)
	const multiline = "echo a\necho b"
	_, err = f.Save(Item{CommandLine: multiline})
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	f.Close()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "echo a<\\n>echo b\n", string(raw))

	reloaded, err := NewFileWithPath(0, path, 2, "host")
	require.NoError(t, err)
	defer reloaded.Close()

	items, err := reloaded.Search(Everything(Forward))
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, multiline, items[0].CommandLine)
}
