package lsp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStartWithNoCommandDegradesGracefully(t *testing.T) {
	p := Start(context.Background(), Config{})

	p.UpdateContent("some content") // must not block or panic
	require.Nil(t, p.CodeActions("content", Span{Start: 0, End: 1}, 10*time.Millisecond))
	require.Nil(t, p.Diagnostics())
	p.Shutdown() // must not block or panic
}

func TestDiagnosticsDrainsAStaleWake(t *testing.T) {
	p := &Provider{wake: make(chan struct{}, 1)}
	p.wake <- struct{}{}
	p.diagnostics = []Diagnostic{{Message: "stale"}}

	got := p.Diagnostics()
	require.Len(t, got, 1)
	require.Equal(t, "stale", got[0].Message)

	select {
	case <-p.wake:
		t.Fatal("Diagnostics should have drained the wake channel")
	default:
	}
}
