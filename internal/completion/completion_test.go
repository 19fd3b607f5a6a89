package completion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStyledTextStringConcatenatesSegments(t *testing.T) {
	st := StyledText{
		{Style: "\x1b[1m", Text: "foo"},
		{Style: "", Text: " "},
		{Style: "\x1b[32m", Text: "bar"},
	}
	require.Equal(t, "foo bar", st.String())
}

func TestStyledTextStringOnEmptySegmentsIsEmpty(t *testing.T) {
	var st StyledText
	require.Empty(t, st.String())
}
