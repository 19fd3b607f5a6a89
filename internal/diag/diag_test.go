package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSinkDiscardsSilently(t *testing.T) {
	SetSink(nil)
	Tracef(LevelWarn, "should go nowhere: %d", 42) // must not panic
}

func TestWriterFormatsLevelPrefix(t *testing.T) {
	var buf bytes.Buffer
	SetSink(Writer{W: &buf})
	defer SetSink(nil)

	Tracef(LevelWarn, "disk at %d%%", 90)
	got := buf.String()
	require.Contains(t, got, "[WARN]")
	require.Contains(t, got, "disk at 90%")
}

func TestSetSinkNilRestoresDiscard(t *testing.T) {
	var buf bytes.Buffer
	SetSink(Writer{W: &buf})
	SetSink(nil)
	Tracef(LevelInfo, "dropped")
	require.Zero(t, buf.Len(), "buffer should stay empty once the sink was reset to discard")
}
