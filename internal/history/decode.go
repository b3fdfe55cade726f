package history

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// zshMeta marks a metafied byte in zsh history; the byte after it is XOR 32.
const zshMeta = 0x83

// unmetafy reverses zsh's metafication in place and returns the shortened slice.
// A trailing meta byte with nothing after it is dropped.
func unmetafy(b []byte) []byte {
	out := b[:0]
	for i := 0; i < len(b); i++ {
		if b[i] == zshMeta {
			i++
			if i < len(b) {
				out = append(out, b[i]^32)
			}
			continue
		}
		out = append(out, b[i])
	}
	return out
}

// textDecoder turns raw line bytes into a string, replacing ill-formed
// UTF-8 with U+FFFD.
type textDecoder struct {
	dec *encoding.Decoder
}

func newTextDecoder() *textDecoder {
	return &textDecoder{dec: unicode.UTF8.NewDecoder()}
}

func (d *textDecoder) decode(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := d.dec.Bytes(b)
	if err != nil {
		return string([]rune(string(b)))
	}
	return string(out)
}
