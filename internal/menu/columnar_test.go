package menu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivereed/lineedit/internal/completion"
)

func suggestionsNamed(names ...string) []completion.Suggestion {
	out := make([]completion.Suggestion, len(names))
	for i, n := range names {
		out[i] = completion.Suggestion{Value: n}
	}
	return out
}

// TestColumnarGridExactlyFills checks that moving next rows*cols times
// returns to the original selection iff the suggestions exactly fill
// the grid.
func TestColumnarGridExactlyFills(t *testing.T) {
	m := NewColumnar()
	m.cols = 2
	m.values = suggestionsNamed("batcave", "batman", "batmobile", "batarang")

	start := m.position()
	for i := 0; i < m.getRows()*m.getCols(); i++ {
		m.moveNext()
	}
	require.Equal(t, start, m.position(), "full grid: position should return to start after rows*cols moves")
}

func TestColumnarGridPartialWraps(t *testing.T) {
	m := NewColumnar()
	m.cols = 2
	m.values = suggestionsNamed("batcave", "batman", "batmobile")

	start := m.position()
	for i := 0; i < m.getRows()*m.getCols(); i++ {
		m.moveNext()
	}
	require.NotEqual(t, start, m.position(), "non-full grid: wrapping skips the empty cell, so rows*cols moves do not land back on the start")
}

func TestColumnarMoveNextThenPreviousIsIdentity(t *testing.T) {
	m := NewColumnar()
	m.cols = 3
	m.values = suggestionsNamed("a", "b", "c", "d", "e")

	for start := 0; start < len(m.values); start++ {
		m.rowPos, m.colPos = start/m.cols, start%m.cols
		before := m.position()
		m.moveNext()
		m.movePrevious()
		require.Equal(t, before, m.position(), "moveNext+movePrevious from %d", before)
	}
}
