package painter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequiredLinesSingleLine(t *testing.T) {
	f := Frame{PromptLeft: "> ", Buffer: "hello"}
	require.Equal(t, 2, RequiredLines(f, 80))
}

func TestRequiredLinesWraps(t *testing.T) {
	f := Frame{PromptLeft: "", Buffer: "abcdefghij"}
	require.Equal(t, 3, RequiredLines(f, 4), "ceil(10/4)")
}

func TestRequiredLinesCountsHint(t *testing.T) {
	f := Frame{Buffer: "ab", Hint: "cd"}
	require.Equal(t, 2, RequiredLines(f, 80), "1 buffer + 1 hint")
}

func TestRequiredLinesStripsAnsiBeforeMeasuring(t *testing.T) {
	plain := Frame{Buffer: "hello"}
	styled := Frame{Buffer: "\x1b[1mhello\x1b[0m"}
	require.Equal(t, RequiredLines(plain, 80), RequiredLines(styled, 80), "ANSI styling must not affect required_lines")
}

func TestRequiredLinesMultilineBuffer(t *testing.T) {
	f := Frame{PromptLeft: "> ", Buffer: "line one\nline two"}
	require.Equal(t, 3, RequiredLines(f, 80), "1 prompt + 2 buffer lines")
}
