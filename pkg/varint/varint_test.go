package varint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromUint64(t *testing.T) {
	testCases := []struct {
		name  string
		value uint64
		want  []byte
	}{
		{name: "zero", value: 0, want: []byte{0x00}},
		{name: "one", value: 1, want: []byte{0x01}},
		{name: "largest single byte", value: 127, want: []byte{0x7f}},
		{name: "smallest two bytes", value: 128, want: []byte{0x80, 0x01}},
		{name: "three hundred", value: 300, want: []byte{0xac, 0x02}},
		{name: "card number", value: 47, want: []byte{0x2f}},
		{
			name:  "max uint64",
			value: math.MaxUint64,
			want:  []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromUint64(tc.value)
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, len(got), MaxLen)
		})
	}
}

func TestAppend(t *testing.T) {
	buf := []byte{0x13}
	buf = Append(buf, 3)
	buf = Append(buf, 200)

	assert.Equal(t, []byte{0x13, 0x03, 0xc8, 0x01}, buf)
}

func TestPop(t *testing.T) {
	t.Run("sequential values", func(t *testing.T) {
		values := []uint64{0, 1, 9, 127, 128, 16384, math.MaxUint32, math.MaxUint64}

		var buf []byte
		for _, v := range values {
			buf = Append(buf, v)
		}

		for _, want := range values {
			got, n, err := Pop(&buf)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Equal(t, len(FromUint64(want)), n)
		}
		assert.Empty(t, buf)
	})

	t.Run("consumes only the first varint", func(t *testing.T) {
		buf := []byte{0xac, 0x02, 0x05}

		got, n, err := Pop(&buf)
		require.NoError(t, err)
		assert.Equal(t, uint64(300), got)
		assert.Equal(t, 2, n)
		assert.Equal(t, []byte{0x05}, buf)
	})

	t.Run("empty buffer", func(t *testing.T) {
		var buf []byte

		_, _, err := Pop(&buf)
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("unterminated varint", func(t *testing.T) {
		buf := []byte{0x80, 0x81, 0xff}

		_, _, err := Pop(&buf)
		assert.ErrorIs(t, err, ErrMalformed)
		assert.Equal(t, []byte{0x80, 0x81, 0xff}, buf, "buffer must be untouched on error")
	})

	t.Run("overflows 64 bits", func(t *testing.T) {
		buf := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}

		_, _, err := Pop(&buf)
		assert.ErrorIs(t, err, ErrMalformed)
	})
}
