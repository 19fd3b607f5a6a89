package lineedit

import "errors"

// SignalKind discriminates the Signal union returned by ReadLine.
type SignalKind int

const (
	SignalSuccess SignalKind = iota
	SignalCtrlC
	SignalCtrlD
)

// Signal is the result of one ReadLine call.
type Signal struct {
	Kind SignalKind
	Line string // populated when Kind == SignalSuccess
}

// ErrInterrupted and ErrEOF are sentinel errors for embedders that
// turn a CtrlC/CtrlD Signal into an error. ReadLine itself never
// returns them: it reports Ctrl-C and Ctrl-D as a Signal with a nil
// error.
var (
	ErrInterrupted = errors.New("lineedit: interrupted (ctrl-c)")
	ErrEOF         = errors.New("lineedit: end of input (ctrl-d)")
)
