package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsAndGetBool(t *testing.T) {
	cfg := Default()
	require.Equal(t, "emacs", cfg.GetString("editing-mode"))
	require.False(t, cfg.GetBool("prompt-transient"), "default prompt-transient should be off")
}

func TestGetBoolAcceptsOnTrueAndOne(t *testing.T) {
	for _, v := range []string{"on", "On", "true", "1"} {
		cfg := &Config{Options: map[string]string{"x": v}}
		require.True(t, cfg.GetBool("x"), "GetBool(%q) should be true", v)
	}
	cfg := &Config{Options: map[string]string{"x": "off"}}
	require.False(t, cfg.GetBool("x"))
}

func TestLoadInputrcSetsOptionAndBinding(t *testing.T) {
	cfg := Default()
	src := strings.NewReader(`
# a comment
set editing-mode vi

"ax": forward-char
`)
	require.NoError(t, LoadInputrc(src, cfg))
	require.Equal(t, "vi", cfg.GetString("editing-mode"))
	require.Equal(t, "forward-char", cfg.Bindings["ax"])
}

func TestLoadInputrcSkipsMalformedBindingLine(t *testing.T) {
	cfg := Default()
	src := strings.NewReader("no-colon-here\n")
	require.NoError(t, LoadInputrc(src, cfg), "a malformed binding line should be skipped, not returned as an error")
	require.Empty(t, cfg.Bindings)
}

func TestLoadYAMLMergesOptionsAndBindings(t *testing.T) {
	cfg := Default()
	src := strings.NewReader(`
options:
  completion-ignore-case: "on"
bindings:
  ax: forward-char
`)
	require.NoError(t, LoadYAML(src, cfg))
	require.True(t, cfg.GetBool("completion-ignore-case"))
	require.Equal(t, "forward-char", cfg.Bindings["ax"])
}

func TestLoadYAMLRejectsInvalidDocument(t *testing.T) {
	cfg := Default()
	src := strings.NewReader("not: [valid: yaml")
	require.Error(t, LoadYAML(src, cfg))
}
