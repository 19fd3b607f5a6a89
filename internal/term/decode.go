package term

import (
	"bufio"
	"strings"
	"unicode/utf8"

	"github.com/reiver/go-utf8s"

	"github.com/rivereed/lineedit/internal/keymap"
)

// Reader decodes a byte stream from a raw-mode terminal into Events.
type Reader struct {
	r *bufio.Reader

	// pasteActive is set between a bracketed-paste-start and
	// bracketed-paste-end sequence.
	pasteActive bool
}

// NewReader wraps r for event decoding.
func NewReader(r *bufio.Reader) *Reader {
	return &Reader{r: r}
}

const (
	bracketedPasteStart = "\x1b[200~"
	bracketedPasteEnd   = "\x1b[201~"
)

// ReadEvent blocks for the next decoded Event.
func (d *Reader) ReadEvent() (Event, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return Event{}, err
	}

	if b == 0x1b {
		return d.readEscape()
	}

	return d.readChar(b)
}

func (d *Reader) readChar(b byte) (Event, error) {
	if b < utf8.RuneSelf {
		return keyEvent(runeCombo(rune(b))), nil
	}

	// Multi-byte UTF-8: buffer bytes until utf8s reports a complete,
	// valid rune (pasted/typed non-ASCII input goes through the same
	// validation path as bracketed paste payloads).
	buf := []byte{b}
	for !utf8s.Valid(buf) && len(buf) < utf8.UTFMax {
		nb, err := d.r.ReadByte()
		if err != nil {
			return Event{}, err
		}
		buf = append(buf, nb)
	}

	r, _ := utf8.DecodeRune(buf)
	return keyEvent(runeCombo(r)), nil
}

func runeCombo(r rune) keymap.Combo {
	return keymap.Combo{Code: keymap.KeyChar, Rune: r}
}

func keyEvent(c keymap.Combo) Event {
	return Event{Kind: EventKey, Key: c}
}

// readEscape decodes CSI/SS3 sequences (arrows, home/end, page
// up/down, function keys, bracketed paste, focus events) or a bare
// Esc/Alt-modified key when no further bytes are immediately
// available.
func (d *Reader) readEscape() (Event, error) {
	peek, err := d.r.Peek(1)
	if err != nil || len(peek) == 0 {
		return keyEvent(keymap.Combo{Code: keymap.KeyEsc}), nil
	}

	if peek[0] != '[' && peek[0] != 'O' {
		// Alt+<char>.
		nb, _ := d.r.ReadByte()
		ev, err := d.readChar(nb)
		if err != nil {
			return Event{}, err
		}
		ev.Key.Mod |= keymap.ModAlt
		return ev, nil
	}

	intro, _ := d.r.ReadByte() // '[' or 'O'

	seq := []byte{intro}
	for {
		nb, err := d.r.ReadByte()
		if err != nil {
			return Event{}, err
		}
		seq = append(seq, nb)
		if (nb >= 'A' && nb <= 'Z') || nb == '~' {
			break
		}
	}

	ev := decodeCSI(seq)
	if ev.Kind == EventPaste {
		// decodeCSI only recognized the bracketed-paste-start marker
		// itself; the payload up to bracketed-paste-end still has to be
		// read off the wire before Shell can act on it.
		payload, err := d.ReadPastePayload()
		if err != nil {
			return Event{}, err
		}
		ev.Paste = payload
	}
	return ev, nil
}

func decodeCSI(seq []byte) Event {
	final := seq[len(seq)-1]

	if string(seq) == "[200~" {
		return Event{Kind: EventPaste}
	}

	switch final {
	case 'A':
		return keyEvent(keymap.Combo{Code: keymap.KeyUp})
	case 'B':
		return keyEvent(keymap.Combo{Code: keymap.KeyDown})
	case 'C':
		return keyEvent(keymap.Combo{Code: keymap.KeyRight})
	case 'D':
		return keyEvent(keymap.Combo{Code: keymap.KeyLeft})
	case 'H':
		return keyEvent(keymap.Combo{Code: keymap.KeyHome})
	case 'F':
		return keyEvent(keymap.Combo{Code: keymap.KeyEnd})
	case 'I':
		return Event{Kind: EventFocusGained}
	case 'O':
		return Event{Kind: EventFocusLost}
	case '~':
		switch string(seq[:len(seq)-1]) {
		case "[1", "[7":
			return keyEvent(keymap.Combo{Code: keymap.KeyHome})
		case "[3":
			return keyEvent(keymap.Combo{Code: keymap.KeyDelete})
		case "[4", "[8":
			return keyEvent(keymap.Combo{Code: keymap.KeyEnd})
		case "[5":
			return keyEvent(keymap.Combo{Code: keymap.KeyPageUp})
		case "[6":
			return keyEvent(keymap.Combo{Code: keymap.KeyPageDown})
		case "[2":
			return keyEvent(keymap.Combo{Code: keymap.KeyInsert})
		}
	}

	return keyEvent(keymap.Combo{Code: keymap.KeyEsc})
}

// ReadPastePayload reads raw bytes up to the bracketed-paste-end
// marker, validating the accumulated payload is well-formed UTF-8 and
// normalizing CRLF/CR to LF. The full "\x1b[201~" marker is matched here (not just its
// "201~" tail): this reads straight off the wire rather than through
// readEscape, so the marker's own ESC and '[' bytes are ordinary
// payload bytes until the whole sequence is seen.
func (d *Reader) ReadPastePayload() (string, error) {
	d.pasteActive = true
	defer func() { d.pasteActive = false }()
	var raw []byte
	marker := []byte(bracketedPasteEnd)

	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return "", err
		}
		raw = append(raw, b)
		if len(raw) >= len(marker) && string(raw[len(raw)-len(marker):]) == string(marker) {
			raw = raw[:len(raw)-len(marker)]
			break
		}
	}

	payload := string(raw)
	if !utf8s.Valid(raw) {
		payload = strings.ToValidUTF8(payload, string(utf8.RuneError))
	}

	return normalizeNewlines(payload), nil
}

func normalizeNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			out = append(out, '\n')
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
