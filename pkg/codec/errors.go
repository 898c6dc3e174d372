package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies codec failures.
type Kind uint8

// Failure kinds. All of them stem from malformed input; none is transient.
const (
	KindUnknown Kind = iota
	KindInvalidToken
	KindInvalidCount
	KindDecodeFailure
	KindEmptyInput
	KindUnsupportedVersion
	KindMalformedVarint
	KindUnknownRegion
)

var kindNames = [...]string{
	KindUnknown:            "unknown",
	KindInvalidToken:       "invalid_token",
	KindInvalidCount:       "invalid_count",
	KindDecodeFailure:      "decode_failure",
	KindEmptyInput:         "empty_input",
	KindUnsupportedVersion: "unsupported_version",
	KindMalformedVarint:    "malformed_varint",
	KindUnknownRegion:      "unknown_region",
}

var kindMessages = [...]string{
	KindUnknown:            "unknown error",
	KindInvalidToken:       "invalid card token",
	KindInvalidCount:       "invalid card count",
	KindDecodeFailure:      "base32 decoding failed",
	KindEmptyInput:         "deck code decodes to an empty byte string",
	KindUnsupportedVersion: "unsupported deck code version",
	KindMalformedVarint:    "malformed varint",
	KindUnknownRegion:      "unknown region",
}

// String returns the snake_case name used in logs and metric labels.
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Error is returned by every failing codec operation.
type Error struct {
	Kind Kind
	// Code is the offending card code or region code, if there is one.
	Code string
	// Msg adds detail to the kind's message.
	Msg string
	// Err is the underlying cause.
	Err error
}

// Sentinels for errors.Is. A *Error matches the sentinel of its Kind.
var (
	ErrInvalidToken       = &Error{Kind: KindInvalidToken}
	ErrInvalidCount       = &Error{Kind: KindInvalidCount}
	ErrDecodeFailure      = &Error{Kind: KindDecodeFailure}
	ErrEmptyInput         = &Error{Kind: KindEmptyInput}
	ErrUnsupportedVersion = &Error{Kind: KindUnsupportedVersion}
	ErrMalformedVarint    = &Error{Kind: KindMalformedVarint}
	ErrUnknownRegion      = &Error{Kind: KindUnknownRegion}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("codec: ")
	if int(e.Kind) < len(kindMessages) {
		b.WriteString(kindMessages[e.Kind])
	} else {
		b.WriteString(e.Kind.String())
	}
	if e.Code != "" {
		fmt.Fprintf(&b, " %q", e.Code)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Code == "" && t.Msg == "" && t.Err == nil
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
