package resp

import (
	"errors"
	"fmt"
)

// ErrIncomplete reports that the buffered bytes are a valid prefix of some
// value but do not yet contain enough data to finish decoding it. It is the
// framing signal: the caller appends newly received bytes and retries the
// same decode.
var ErrIncomplete = errors.New("incomplete value: more bytes required")

// UnknownTagError reports an unrecognized leading tag byte.
type UnknownTagError struct {
	Tag byte
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown type tag %q", e.Tag)
}

// MalformedInputError reports a token that violates the wire grammar,
// e.g. a length or count that is not a valid integer literal.
type MalformedInputError struct {
	Token  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %q: %s", e.Token, e.Reason)
}

// UnsupportedTypeError reports a value outside the supported variant set
// handed to the encoder or to FromGo.
type UnsupportedTypeError struct {
	Value any
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported type %T", e.Value)
}

// ServerError is an application-level error reported by the server: a
// response whose first byte is '-'. The message text is passed through
// verbatim and never interpreted.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}
