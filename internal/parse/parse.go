// Package parse implements the grammar primitives shared by the Vi
// and Helix keystroke parsers: the
// multiplier/command/count/motion tuple and its completeness rule.
package parse

// Command identifies a Vi/Helix operator or standalone command.
type Command int

const (
	CmdNone Command = iota
	CmdDelete
	CmdChange
	CmdYank
	CmdPut
	CmdPutBefore
	CmdReplaceChar
	CmdDeleteChar
	CmdSubstitute
	CmdChangeEOL
	CmdDeleteEOL
	CmdAppendEOL
	CmdInsertBOL
	CmdUndo
	CmdRedo
	CmdVisual
	CmdHistorySearch
	CmdDeleteInsidePair
	CmdChangeInsidePair
	CmdYankInsidePair
	CmdDeleteAroundPair
	CmdChangeAroundPair
	CmdYankAroundPair
)

// RequiresMotion reports whether cmd needs a following motion to be
// complete.
func (c Command) RequiresMotion() bool {
	switch c {
	case CmdDelete, CmdChange, CmdYank:
		return true
	default:
		return false
	}
}

// EntersInsert reports whether cmd, once complete, switches the mode
// to Insert.
func (c Command) EntersInsert() bool {
	switch c {
	case CmdChange, CmdSubstitute, CmdChangeEOL, CmdAppendEOL, CmdInsertBOL,
		CmdHistorySearch, CmdChangeInsidePair, CmdChangeAroundPair:
		return true
	default:
		return false
	}
}

// Motion identifies a Vi/Helix motion.
type Motion int

const (
	MotionNone Motion = iota
	MotionLeft
	MotionRight
	MotionUp
	MotionDown
	MotionWordForward
	MotionWordBackward
	MotionBigWordForward
	MotionBigWordBackward
	MotionWordEnd
	MotionBigWordEnd
	MotionLineStart
	MotionFirstNonBlank
	MotionLineEnd
	MotionLine
	MotionFindChar   // f<ch>
	MotionTillChar   // t<ch>
	MotionFindCharBack
	MotionTillCharBack
	MotionRepeatFind      // ;
	MotionRepeatFindRev   // ,
	MotionInsidePair
	MotionAroundPair
)

// ParseStatus is the outcome of attempting to parse a motion.
type ParseStatus int

const (
	Invalid ParseStatus = iota
	Incomplete
	Valid
)

// ParseResult pairs a ParseStatus with the Motion it produced, when
// Valid.
type ParseResult struct {
	Status ParseStatus
	Motion Motion
	// Char is the argument to f/t/F/T and the pair character for
	// Inside/Around motions.
	Char rune
}

// ParsedSequence is the full grammar output: this package's
// `ParsedSequence { multiplier, command, count, motion }`.
type ParsedSequence struct {
	Multiplier int // 0 means "not given" (effective factor 1)
	Command    Command
	CommandArg rune // argument to r<ch>; f<ch> and friends carry theirs in Motion.Char
	Count      int  // 0 means "not given" (effective factor 1)
	Motion     ParseResult

	// PairOp is set when Command is one of the {d,c,y}{i,a}<pair>
	// family: true selects "around", false "inside".
	PairOp bool
}

// Factor returns multiplier*count with empty factors treated as 1.
func (p ParsedSequence) Factor() int {
	m := p.Multiplier
	if m == 0 {
		m = 1
	}
	c := p.Count
	if c == 0 {
		c = 1
	}
	return m * c
}

// IsComplete implements the completeness rule: the motion is Valid,
// OR the command does not require a motion, OR standalone is true and
// the command accepts the caller's current selection as its region
// (Vi Visual mode, or Helix's select-then-act grammar).
func (p ParsedSequence) IsComplete(standalone bool) bool {
	if p.Motion.Status == Valid {
		return true
	}
	if !p.Command.RequiresMotion() {
		return p.Command != CmdNone || p.Motion.Status == Valid
	}
	return standalone
}

// CharSearch remembers the last f/t/F/T target so that ';' and ','
// can replay it. Shared by Vi and Helix so that an
// embedder may wire Helix's own ';'/',' to the same replay logic.
type CharSearch struct {
	set    bool
	motion Motion
	char   rune
}

// Remember records a completed f/t/F/T motion.
func (c *CharSearch) Remember(m Motion, ch rune) {
	c.set = true
	c.motion = m
	c.char = ch
}

// Replay returns the motion/char to repeat verbatim (';').
func (c *CharSearch) Replay() (Motion, rune, bool) {
	return c.motion, c.char, c.set
}

// ReplayReversed returns the motion/char to repeat with direction
// flipped (',': ToRight<->ToLeft, TillRight<->TillLeft).
func (c *CharSearch) ReplayReversed() (Motion, rune, bool) {
	if !c.set {
		return MotionNone, 0, false
	}
	return reverseMotion(c.motion), c.char, true
}

func reverseMotion(m Motion) Motion {
	switch m {
	case MotionFindChar:
		return MotionFindCharBack
	case MotionFindCharBack:
		return MotionFindChar
	case MotionTillChar:
		return MotionTillCharBack
	case MotionTillCharBack:
		return MotionTillChar
	default:
		return m
	}
}
