package menu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivereed/lineedit/internal/completion"
	"github.com/rivereed/lineedit/internal/editor"
)

func TestCommonPrefixFoldCaseInsensitive(t *testing.T) {
	values := suggestionsNamed("README.md", "readme.txt", "Readme")
	got := commonPrefixFold(values)
	require.Equal(t, "Readme", got)
}

func TestCanPartiallyCompleteExtendsTypedText(t *testing.T) {
	e := editor.New()
	e.Buffer.InsertStr("re")

	b := &base{values: []completion.Suggestion{
		{Value: "readme", Span: completion.Span{Start: 0, End: 2}},
		{Value: "readline", Span: completion.Span{Start: 0, End: 2}},
	}}

	require.True(t, b.canPartiallyComplete(e), "common prefix 'read' extends 're'")
	require.Equal(t, "read", e.Buffer.String())
}

func TestCanPartiallyCompleteRefusesNonExtendingPrefix(t *testing.T) {
	e := editor.New()
	e.Buffer.InsertStr("read")

	b := &base{values: []completion.Suggestion{
		{Value: "read", Span: completion.Span{Start: 0, End: 4}},
	}}

	require.False(t, b.canPartiallyComplete(e), "prefix equals already-typed text")
}

func TestCanQuickCompleteOnlyWithSingleSuggestion(t *testing.T) {
	b := &base{values: suggestionsNamed("only")}
	_, ok := b.canQuickComplete()
	require.True(t, ok, "single suggestion should quick-complete")

	b.values = suggestionsNamed("a", "b")
	_, ok = b.canQuickComplete()
	require.False(t, ok, "multiple suggestions should not quick-complete")
}
