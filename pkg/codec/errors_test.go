package codec

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	testCases := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind only",
			err:  &Error{Kind: KindEmptyInput},
			want: "codec: deck code decodes to an empty byte string",
		},
		{
			name: "with code and detail",
			err:  &Error{Kind: KindInvalidCount, Code: "01DE002", Msg: "count 0 is below 1"},
			want: `codec: invalid card count "01DE002": count 0 is below 1`,
		},
		{
			name: "with cause",
			err:  &Error{Kind: KindMalformedVarint, Err: errors.New("buffer ended")},
			want: "codec: malformed varint: buffer ended",
		},
		{
			name: "out of range kind",
			err:  &Error{Kind: Kind(200)},
			want: "codec: kind(200)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "invalid_token", KindInvalidToken.String())
	assert.Equal(t, "unsupported_version", KindUnsupportedVersion.String())
	assert.Equal(t, "unknown_region", KindUnknownRegion.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestError_Is(t *testing.T) {
	err := &Error{Kind: KindInvalidToken, Code: "01XX002", Err: &Error{Kind: KindUnknownRegion, Code: "XX"}}

	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.True(t, errors.Is(err, ErrUnknownRegion))
	assert.False(t, errors.Is(err, ErrInvalidCount))

	// Only bare sentinels match.
	assert.False(t, errors.Is(ErrInvalidToken, &Error{Kind: KindInvalidToken, Code: "01DE002"}))
}

func TestError_Unwrap(t *testing.T) {
	_, cause := strconv.ParseUint("x1", 10, 8)
	err := &Error{Kind: KindInvalidToken, Err: cause}

	var numErr *strconv.NumError
	assert.ErrorAs(t, err, &numErr)
	assert.Equal(t, "x1", numErr.Num)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindEmptyInput, KindOf(ErrEmptyInput))
	assert.Equal(t, KindDecodeFailure, KindOf(fmt.Errorf("reading code: %w", &Error{Kind: KindDecodeFailure})))
}
