package parse

import "unicode"

// pairCommand maps a command rune to the pair-operator Command base.
var pairCommand = map[rune]struct {
	inside, around Command
}{
	'd': {CmdDeleteInsidePair, CmdDeleteAroundPair},
	'c': {CmdChangeInsidePair, CmdChangeAroundPair},
	'y': {CmdYankInsidePair, CmdYankAroundPair},
}

// operatorCommand maps d/c/y to the Command they start. These are
// handled separately from simpleCommand because, unlike p/x/u/..,
// what follows them depends on standaloneOperators: a following
// motion/pair-target in Vi's operator-pending model, or nothing at
// all in Helix's/Visual's select-then-act model.
var operatorCommand = map[rune]Command{
	'd': CmdDelete,
	'c': CmdChange,
	'y': CmdYank,
}

var simpleCommand = map[rune]Command{
	'p': CmdPut,
	'P': CmdPutBefore,
	'x': CmdDeleteChar,
	's': CmdSubstitute,
	'C': CmdChangeEOL,
	'D': CmdDeleteEOL,
	'A': CmdAppendEOL,
	'I': CmdInsertBOL,
	'u': CmdUndo,
	'U': CmdRedo,
	'v': CmdVisual,
}

var motionRune = map[rune]Motion{
	'h': MotionLeft,
	'l': MotionRight,
	'j': MotionDown,
	'k': MotionUp,
	'b': MotionWordBackward,
	'B': MotionBigWordBackward,
	'w': MotionWordForward,
	'W': MotionBigWordForward,
	'e': MotionWordEnd,
	'E': MotionBigWordEnd,
	'0': MotionLineStart,
	'^': MotionFirstNonBlank,
	'$': MotionLineEnd,
	';': MotionRepeatFind,
	',': MotionRepeatFindRev,
}

// charSearchMotion maps f/t/F/T to the Motion expecting one more rune.
var charSearchMotion = map[rune]Motion{
	'f': MotionFindChar,
	't': MotionTillChar,
	'F': MotionFindCharBack,
	'T': MotionTillCharBack,
}

// stage enumerates where the Parser currently is in the grammar
// `digit* command? digit* motion?`.
type stage int

const (
	stageMultiplier stage = iota
	stageCommand
	stageCount
	stageMotion
	stageAwaitCharSearchArg
	stageAwaitReplaceArg
	stageAfterOperator // after a non-standalone d/c/y, awaiting doubled-char, i/a<pair>, count, or motion
	stageAwaitPairChar
)

// Parser accumulates keystrokes into a ParsedSequence following the
// grammar of this package One Parser instance is reused across
// keystrokes of a single pending command; Reset clears it after a
// complete or aborted parse.
type Parser struct {
	stage stage
	seq   ParsedSequence

	pairBase            rune // the d/c/y that started a pending {i,a}<pair> command
	standaloneOperators bool // Vi Visual / Helix: d/c/y act on the existing selection with no following motion
}

// NewParser returns a fresh Parser at the start of the grammar.
func NewParser() *Parser { return &Parser{} }

// SetStandaloneOperators selects which grammar d/c/y follow: false is
// Vi Normal mode's operator-pending model (a motion or pair-target
// must follow), true is Vi Visual's and Helix's select-then-act model
// (the operator completes immediately, acting on the caller's current
// selection). It persists across Reset, since it describes the mode
// the embedder is in, not state local to one keystroke sequence.
func (p *Parser) SetStandaloneOperators(standalone bool) {
	p.standaloneOperators = standalone
}

// Reset clears all accumulated state but preserves the
// standaloneOperators grammar choice.
func (p *Parser) Reset() {
	standalone := p.standaloneOperators
	*p = Parser{standaloneOperators: standalone}
}

// Feed consumes one rune and returns the current parse status. The
// caller should keep feeding runes while Incomplete is returned, emit
// on Valid (command may still be CmdNone when only a bare motion was
// typed), and Reset+drop the key on Invalid.
func (p *Parser) Feed(r rune) ParseStatus {
	switch p.stage {
	case stageMultiplier:
		if unicode.IsDigit(r) && r != '0' {
			p.seq.Multiplier = p.seq.Multiplier*10 + int(r-'0')
			return Incomplete
		}
		if unicode.IsDigit(r) && p.seq.Multiplier != 0 {
			// A '0' after a non-zero leading digit is itself a digit.
			p.seq.Multiplier = p.seq.Multiplier * 10
			return Incomplete
		}
		p.stage = stageCommand
		return p.Feed(r)

	case stageAwaitReplaceArg:
		p.seq.CommandArg = r
		p.seq.Motion = ParseResult{Status: Valid, Motion: MotionNone}
		return Valid

	case stageAwaitCharSearchArg:
		motion := p.seq.Motion.Motion
		p.seq.Motion = ParseResult{Status: Valid, Motion: motion, Char: r}
		return Valid

	case stageAfterOperator:
		if r == p.pairBase {
			p.seq.Motion = ParseResult{Status: Valid, Motion: MotionLine}
			return Valid
		}
		if r == 'i' || r == 'a' {
			pc, ok := pairCommand[p.pairBase]
			if !ok {
				return Invalid
			}
			if r == 'i' {
				p.seq.Command = pc.inside
			} else {
				p.seq.Command = pc.around
			}
			p.seq.PairOp = r == 'a'
			p.stage = stageAwaitPairChar
			return Incomplete
		}
		p.stage = stageCount
		return p.Feed(r)

	case stageAwaitPairChar:
		kind := MotionInsidePair
		if p.seq.PairOp {
			kind = MotionAroundPair
		}
		p.seq.Motion = ParseResult{Status: Valid, Motion: kind, Char: r}
		return Valid

	case stageCommand:
		if r == '0' {
			// A leading '0' before any digit was seen is the
			// line-start motion, never a count.
			p.seq.Motion = ParseResult{Status: Valid, Motion: MotionLineStart}
			return Valid
		}

		if cmd, ok := operatorCommand[r]; ok {
			p.seq.Command = cmd
			if p.standaloneOperators {
				return Valid
			}
			p.pairBase = r
			p.stage = stageAfterOperator
			return Incomplete
		}

		if cmd, ok := simpleCommand[r]; ok {
			p.seq.Command = cmd
			return Valid
		}

		if r == 'r' {
			p.seq.Command = CmdReplaceChar
			p.stage = stageAwaitReplaceArg
			return Incomplete
		}

		p.stage = stageCount
		return p.Feed(r)

	case stageCount:
		if unicode.IsDigit(r) {
			p.seq.Count = p.seq.Count*10 + int(r-'0')
			return Incomplete
		}
		p.stage = stageMotion
		return p.Feed(r)

	case stageMotion:
		return p.feedMotion(r)
	}

	return Invalid
}

func (p *Parser) feedMotion(r rune) ParseStatus {
	// Doubled command char (dd, cc, yy) -> Line motion.
	if doubled, ok := doubledCommand(p.seq.Command); ok && r == doubled {
		p.seq.Motion = ParseResult{Status: Valid, Motion: MotionLine}
		return Valid
	}

	if m, ok := charSearchMotion[r]; ok {
		p.seq.Motion = ParseResult{Status: Incomplete, Motion: m}
		p.stage = stageAwaitCharSearchArg
		return Incomplete
	}

	if m, ok := motionRune[r]; ok {
		p.seq.Motion = ParseResult{Status: Valid, Motion: m}
		return Valid
	}

	return Invalid
}

func doubledCommand(c Command) (rune, bool) {
	switch c {
	case CmdDelete:
		return 'd', true
	case CmdChange:
		return 'c', true
	case CmdYank:
		return 'y', true
	default:
		return 0, false
	}
}

// Sequence returns the ParsedSequence accumulated so far (valid to
// call once Feed has returned Valid).
func (p *Parser) Sequence() ParsedSequence { return p.seq }
