// Package completion declares the embedder-supplied trait contracts
// consumed by internal/menu and internal/painter. These are open
// interfaces, one half of an open/closed polymorphism split, grounded
// on original_source's `completion.Candidate`/`completion.Values`
// naming.
package completion

// Span is a [Start,End) byte range in the line buffer that a
// Suggestion replaces in buffer").
type Span struct {
	Start, End int
}

// Suggestion is one completion candidate, named after the completion.Candidate fields
// (Value/Description/Style) with Extra generalizing the prior implementation's
// single Tag string into an open key/value bag for embedder-specific
// metadata (e.g. an LSP completion kind).
type Suggestion struct {
	Value            string
	Description      string
	Style            string
	Extra            map[string]string
	Span             Span
	AppendWhitespace bool
}

// Completer produces Suggestions for the buffer contents at pos.
type Completer interface {
	Complete(line string, pos int) []Suggestion
}

// WithBase is the optional richer contract:
// a Completer may additionally implement this to report the byte
// ranges the match "base" was derived from. No package in this module
// calls CompleteWithBase; the painter styles suggestions without it.
type WithBase interface {
	Completer
	CompleteWithBase(line string, pos int) ([]Suggestion, []Span)
}

// StyledSegment is one run of same-styled text; the concatenation of
// Text across a StyledText equals the highlighted line verbatim.
type StyledSegment struct {
	Style string
	Text  string
}

// StyledText is a Highlighter's full output for one line.
type StyledText []StyledSegment

// String concatenates the segments back into plain text.
func (t StyledText) String() string {
	var out []byte
	for _, seg := range t {
		out = append(out, seg.Text...)
	}
	return string(out)
}

// Highlighter produces styled text for one buffer line.
type Highlighter interface {
	Highlight(line string, cursorPos int) StyledText
}

// Hinter supplies inline suggestion text appended after the cursor.
type Hinter interface {
	CompleteHint() string
	NextHintToken() string
}
