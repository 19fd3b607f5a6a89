package term

import (
	"golang.org/x/term"
)

// State is the terminal's mode prior to MakeRaw, restored on Restore.
type State struct {
	inner *term.State
}

// MakeRaw puts the terminal connected to fd into raw mode, returning
// the previous state so the caller can restore it (teacher's own
// readline.go calls term.MakeRaw/term.Restore in exactly this shape).
func MakeRaw(fd int) (*State, error) {
	s, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &State{inner: s}, nil
}

// Restore puts the terminal back into the state captured by MakeRaw.
// A nil state (MakeRaw failed, or was never called) is a no-op so
// defer sites can be unconditional.
func Restore(fd int, state *State) error {
	if state == nil {
		return nil
	}
	return term.Restore(fd, state.inner)
}

// GetSize returns the terminal's (columns, rows).
func GetSize(fd int) (cols, rows int, err error) {
	return term.GetSize(fd)
}
