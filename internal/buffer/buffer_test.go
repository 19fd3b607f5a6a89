package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertAndOffsetRoundTrip(t *testing.T) {
	lb := New()
	lb.InsertStr("hello")
	require.Equal(t, "hello", lb.String())
	require.Equal(t, 5, lb.Offset())

	lb.MoveLeft()
	lb.MoveLeft()
	require.Equal(t, 3, lb.Offset())
}

func TestGraphemeClusterNeverSplit(t *testing.T) {
	// "é" (e + combining acute) is one grapheme cluster; a family
	// emoji ZWJ sequence is another common multi-codepoint cluster.
	lb := NewFromString("a" + "é" + "b")
	lb.MoveToStart()
	lb.MoveRight() // past 'a'
	afterA := lb.Offset()
	lb.MoveRight() // past the whole e+combining-acute cluster
	afterCluster := lb.Offset()

	require.Equal(t, len("é"), afterCluster-afterA, "MoveRight must not split a grapheme cluster")

	lb.MoveLeft()
	require.Equal(t, afterA, lb.Offset())
}

func TestDeleteLeftGraphemeRemovesWholeCluster(t *testing.T) {
	lb := NewFromString("a" + "é")
	lb.MoveToEnd()
	lb.DeleteLeftGrapheme()
	require.Equal(t, "a", lb.String())
}

func TestMoveWordRightSkipsPunctuationBoundaryTokens(t *testing.T) {
	lb := NewFromString("foo, bar")
	lb.MoveToStart()
	lb.MoveWordRight()
	require.Equal(t, "bar", lb.String()[lb.Offset():], "punctuation-only tokens are not word stops")
}

func TestMoveWordRightAlwaysAdvancesPastCurrentWordStart(t *testing.T) {
	lb := NewFromString("foo bar baz")
	lb.MoveToStart() // cursor already sits at "foo"'s start
	lb.MoveWordRight()
	require.Equal(t, "bar baz", lb.String()[lb.Offset():], "MoveWordRight must still advance from a word's own start")
}

func TestMoveBigWordIgnoresInnerPunctuation(t *testing.T) {
	lb := NewFromString("foo,bar baz")
	lb.MoveToStart()
	lb.MoveBigWordRight()
	require.Equal(t, "baz", lb.String()[lb.Offset():])
}

func TestReplaceRangeAdjustsCursorByDelta(t *testing.T) {
	lb := NewFromString("readme")
	lb.SetCursorUnsafe(2) // cursor sits right at the replaced range's end
	lb.ReplaceRange(0, 2, "read")
	require.Equal(t, 4, lb.Offset())
	require.Equal(t, "readadme", lb.String())
}

func TestSwapGraphemesAtBufferEdges(t *testing.T) {
	lb := NewFromString("ab")
	lb.MoveToStart()
	lb.SwapGraphemes()
	require.Equal(t, "ba", lb.String())
}

func TestCharSearchMoveRightUntilAndBefore(t *testing.T) {
	lb := NewFromString("find.the.dot")
	lb.MoveToStart()
	require.True(t, lb.MoveRightUntil('.'), "MoveRightUntil('.') should find a match")
	require.Equal(t, byte('.'), lb.String()[lb.Offset()])

	lb.MoveToStart()
	require.True(t, lb.MoveRightBefore('.'), "MoveRightBefore('.') should find a match")
	require.Equal(t, byte('d'), lb.String()[lb.Offset()], "MoveRightBefore landed past the target char")
}

func TestCurrentWordRangeAtCursorInsideWord(t *testing.T) {
	lb := NewFromString("hello world")
	lb.SetCursorUnsafe(2) // inside "hello"
	start, end := lb.CurrentWordRange()
	require.Equal(t, "hello", lb.String()[start:end])
}
