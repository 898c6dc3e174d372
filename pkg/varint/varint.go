// Package varint implements the unsigned variable-length integers used by
// the deck code wire format.
//
// Values are written in little-endian groups of seven bits. Every byte but
// the last has its high bit set, so zero encodes as a single 0x00 byte and
// the full 64-bit range needs at most ten bytes. This is the same layout as
// protobuf varints and encoding/binary's Uvarint.
package varint

import (
	"encoding/binary"
	"errors"
)

// MaxLen is the longest encoding of a 64-bit value.
const MaxLen = binary.MaxVarintLen64

// ErrMalformed is returned by Pop when the buffer ends before a byte with a
// clear continuation bit, or when the encoded value does not fit in 64 bits.
var ErrMalformed = errors.New("varint: byte sequence does not contain a valid varint")

// Append appends the encoding of v to dst and returns the extended slice.
func Append(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}

// FromUint64 returns the encoding of v.
func FromUint64(v uint64) []byte {
	return Append(make([]byte, 0, MaxLen), v)
}

// Pop decodes the varint at the front of *buf and advances *buf past it.
// It returns the value and the number of bytes consumed. On error *buf is
// left untouched.
func Pop(buf *[]byte) (uint64, int, error) {
	v, n := binary.Uvarint(*buf)
	if n <= 0 {
		return 0, 0, ErrMalformed
	}
	*buf = (*buf)[n:]
	return v, n, nil
}
