package term

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rivereed/lineedit/internal/keymap"
)

func newReader(s string) *Reader {
	return NewReader(bufio.NewReader(strings.NewReader(s)))
}

func TestReadEventPlainASCIIChar(t *testing.T) {
	ev, err := newReader("a").ReadEvent()
	require.NoError(t, err)
	require.Equal(t, EventKey, ev.Kind)
	require.Equal(t, keymap.KeyChar, ev.Key.Code)
	require.Equal(t, 'a', ev.Key.Rune)
}

func TestReadEventMultibyteUTF8Char(t *testing.T) {
	ev, err := newReader("é").ReadEvent()
	require.NoError(t, err)
	require.Equal(t, EventKey, ev.Kind)
	require.Equal(t, 'é', ev.Key.Rune)
}

func TestReadEventArrowKeys(t *testing.T) {
	cases := map[string]keymap.KeyCode{
		"\x1b[A": keymap.KeyUp,
		"\x1b[B": keymap.KeyDown,
		"\x1b[C": keymap.KeyRight,
		"\x1b[D": keymap.KeyLeft,
	}
	for seq, want := range cases {
		ev, err := newReader(seq).ReadEvent()
		require.NoError(t, err)
		require.Equal(t, EventKey, ev.Kind)
		require.Equal(t, want, ev.Key.Code)
	}
}

func TestReadEventDeleteKeyTildeSequence(t *testing.T) {
	ev, err := newReader("\x1b[3~").ReadEvent()
	require.NoError(t, err)
	require.Equal(t, EventKey, ev.Kind)
	require.Equal(t, keymap.KeyDelete, ev.Key.Code)
}

func TestReadEventBareEscWithNoFollowingBytes(t *testing.T) {
	ev, err := newReader("\x1b").ReadEvent()
	require.NoError(t, err)
	require.Equal(t, EventKey, ev.Kind)
	require.Equal(t, keymap.KeyEsc, ev.Key.Code)
}

func TestReadEventAltModifiedChar(t *testing.T) {
	ev, err := newReader("\x1bb").ReadEvent()
	require.NoError(t, err)
	require.Equal(t, EventKey, ev.Kind)
	require.Equal(t, keymap.KeyChar, ev.Key.Code)
	require.Equal(t, 'b', ev.Key.Rune)
	require.NotZero(t, ev.Key.Mod&keymap.ModAlt)
}

func TestReadEventBracketedPasteReadsFullPayload(t *testing.T) {
	ev, err := newReader("\x1b[200~hello world\x1b[201~").ReadEvent()
	require.NoError(t, err)
	require.Equal(t, EventPaste, ev.Kind)
	require.Equal(t, "hello world", ev.Paste)
}

func TestReadPastePayloadNormalizesCRLF(t *testing.T) {
	d := newReader("line1\r\nline2\r\x1b[201~")
	payload, err := d.ReadPastePayload()
	require.NoError(t, err)
	require.Equal(t, "line1\nline2\n", payload)
}

func TestReadPastePayloadStopsExactlyAtEndMarker(t *testing.T) {
	d := newReader("abc\x1b[201~REST")
	payload, err := d.ReadPastePayload()
	require.NoError(t, err)
	require.Equal(t, "abc", payload, "end marker bytes must not leak into the payload")
}
