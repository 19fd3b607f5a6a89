package parse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func feedAll(p *Parser, s string) ParseStatus {
	var last ParseStatus
	for _, r := range s {
		last = p.Feed(r)
	}
	return last
}

func TestMultiplierTimesCountFactor(t *testing.T) {
	p := NewParser()
	status := feedAll(p, "2d2w")
	require.Equal(t, Valid, status)
	seq := p.Sequence()
	require.Equal(t, CmdDelete, seq.Command)
	require.Equal(t, MotionWordForward, seq.Motion.Motion)
	require.Equal(t, 4, seq.Factor(), "2 multiplier * 2 count")
}

func TestDoubledCommandCharIsLineMotion(t *testing.T) {
	p := NewParser()
	status := feedAll(p, "dd")
	require.Equal(t, Valid, status)
	require.Equal(t, MotionLine, p.Sequence().Motion.Motion)
}

func TestBareMotionWithNoCommandIsComplete(t *testing.T) {
	p := NewParser()
	status := feedAll(p, "w")
	require.Equal(t, Valid, status)
	seq := p.Sequence()
	require.Equal(t, CmdNone, seq.Command)
	require.True(t, seq.IsComplete(false), "a bare motion should be complete outside Visual mode")
}

func TestLeadingZeroIsLineStartNotACount(t *testing.T) {
	p := NewParser()
	status := feedAll(p, "0")
	require.Equal(t, Valid, status)
	require.Equal(t, MotionLineStart, p.Sequence().Motion.Motion)
}

func TestZeroAfterNonzeroDigitIsPartOfTheCount(t *testing.T) {
	p := NewParser()
	// "10w": multiplier=10, then motion w.
	status := feedAll(p, "10w")
	require.Equal(t, Valid, status)
	require.Equal(t, 10, p.Sequence().Multiplier)
}

func TestCommandRequiringMotionIsIncompleteAlone(t *testing.T) {
	p := NewParser()
	status := feedAll(p, "d")
	require.Equal(t, Incomplete, status)
	require.False(t, p.Sequence().IsComplete(false), "'d' alone (no motion, not in Visual mode) must not be complete")
}

func TestPairOperatorInsideQuote(t *testing.T) {
	p := NewParser()
	status := feedAll(p, `ci"`)
	require.Equal(t, Valid, status)
	seq := p.Sequence()
	require.Equal(t, CmdChangeInsidePair, seq.Command)
	require.Equal(t, '"', seq.Motion.Char)
	require.True(t, seq.Command.EntersInsert(), "a change-inside-pair command must enter Insert mode")
}

func TestCharSearchMemoryReplayAndReverse(t *testing.T) {
	var cs CharSearch
	cs.Remember(MotionFindChar, 'x')

	m, ch, ok := cs.Replay()
	require.True(t, ok)
	require.Equal(t, MotionFindChar, m)
	require.Equal(t, rune('x'), ch)

	m, ch, ok = cs.ReplayReversed()
	require.True(t, ok)
	require.Equal(t, MotionFindCharBack, m)
	require.Equal(t, rune('x'), ch)
}

func TestCharSearchAwaitsItsArgument(t *testing.T) {
	p := NewParser()
	status := feedAll(p, "f")
	require.Equal(t, Incomplete, status)
	status = feedAll(p, "q")
	require.Equal(t, Valid, status)
	require.Equal(t, rune('q'), p.Sequence().Motion.Char)
}
