// Package base32 implements the text transform used for deck codes.
//
// The alphabet is the RFC 4648 one (A-Z, 2-7), and the bit layout is the
// usual one: the input is read as a single bitstream, high bit first, five
// bits per output character, with the final group right-padded with zero
// bits. Two things differ from encoding/base32:
//
//   - Encode omits '=' padding unless asked for it.
//   - Decode is lenient. It ignores case, surrounding whitespace, '-'
//     separators and trailing '=' padding, and it silently drops bits left
//     over after the last full byte instead of rejecting the input.
//
// Deck codes in the wild depend on both, so neither may be tightened.
package base32

import (
	"errors"
	"fmt"
	"strings"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

	// Separator may be inserted anywhere in a code for readability.
	Separator = '-'
	// PadChar fills padded output to a multiple of eight characters.
	PadChar = '='

	bitsPerChar = 5
	charMask    = 1<<bitsPerChar - 1
	invalid     = 0xff
)

var decodeMap [256]byte

func init() {
	for i := range decodeMap {
		decodeMap[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		decodeMap[c] = byte(i)
		if c >= 'A' && c <= 'Z' {
			decodeMap[c+'a'-'A'] = byte(i)
		}
	}
}

// ErrInvalidCharacter is matched by every InvalidCharacterError.
var ErrInvalidCharacter = errors.New("base32: invalid character")

// InvalidCharacterError reports a character outside the alphabet. Offset is
// the byte offset in the input after whitespace, separators and padding
// were removed.
type InvalidCharacterError struct {
	Char   rune
	Offset int
}

func (e InvalidCharacterError) Error() string {
	return fmt.Sprintf("base32: illegal character %q at offset %d", e.Char, e.Offset)
}

// Is reports whether target is ErrInvalidCharacter.
func (e InvalidCharacterError) Is(target error) bool {
	return target == ErrInvalidCharacter
}

// EncodedLen returns the length of the text produced by Encode for n input
// bytes.
func EncodedLen(n int, pad bool) int {
	size := (n*8 + bitsPerChar - 1) / bitsPerChar
	if pad {
		size = (size + 7) / 8 * 8
	}
	return size
}

// Encode returns the base32 text for src. With pad set the output is filled
// with PadChar up to a multiple of eight characters.
func Encode(src []byte, pad bool) string {
	if len(src) == 0 {
		return ""
	}

	dst := make([]byte, 0, EncodedLen(len(src), pad))

	var buffer uint32
	bits := 0
	for _, b := range src {
		buffer = buffer<<8 | uint32(b)
		bits += 8
		for bits >= bitsPerChar {
			bits -= bitsPerChar
			dst = append(dst, alphabet[(buffer>>bits)&charMask])
		}
	}
	if bits > 0 {
		dst = append(dst, alphabet[(buffer<<(bitsPerChar-bits))&charMask])
	}

	if pad {
		for len(dst)%8 != 0 {
			dst = append(dst, PadChar)
		}
	}
	return string(dst)
}

// Decode returns the bytes encoded by text. An empty or all-whitespace
// input decodes to an empty slice.
func Decode(text string) ([]byte, error) {
	text = normalize(text)
	if text == "" {
		return []byte{}, nil
	}

	dst := make([]byte, 0, len(text)*bitsPerChar/8)

	var buffer uint32
	bits := 0
	for i, r := range text {
		if r >= 0x80 || decodeMap[r] == invalid {
			return nil, InvalidCharacterError{Char: r, Offset: i}
		}
		buffer = buffer<<bitsPerChar | uint32(decodeMap[r])
		bits += bitsPerChar
		if bits >= 8 {
			bits -= 8
			dst = append(dst, byte(buffer>>bits))
		}
	}
	// Fewer than eight bits remain; they are padding from Encode or noise
	// and are dropped either way.
	return dst, nil
}

func normalize(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, string(Separator), "")
	return strings.TrimRight(text, string(PadChar))
}

// Chunk splits text into runs of size characters joined by Separator, for
// codes that are read aloud or typed by hand. Decode removes the separators
// again. A size below one returns text unchanged.
func Chunk(text string, size int) string {
	if size < 1 || len(text) <= size {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/size)
	for i := 0; i < len(text); i += size {
		if i > 0 {
			b.WriteByte(Separator)
		}
		b.WriteString(text[i:min(i+size, len(text))])
	}
	return b.String()
}
