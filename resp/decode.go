package resp

import (
	"bytes"
	"strconv"
)

// Decode reads exactly one top-level value from data and returns it together
// with the number of bytes it consumed; trailing bytes are left untouched.
//
// The decoder is grammar-driven: it reads one leading tag byte and dispatches
// to the matching reader, which consumes exactly tag + length/count token +
// payload. It fails with an *UnknownTagError for an unrecognized tag, a
// *MalformedInputError when a token violates the grammar, and ErrIncomplete
// when the available bytes are a valid prefix but not yet a whole value.
// A '-' error line is returned as a *ServerError.
func Decode(data []byte) (Value, int, error) {
	c := &cursor{buf: data}
	v, err := decodeValue(c)
	if err != nil {
		return nil, 0, err
	}
	return v, c.pos, nil
}

func decodeValue(c *cursor) (Value, error) {
	tag, err := c.readByte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case TagNull:
		return decodeNull(c)
	case TagBoolean:
		return decodeBoolean(c)
	case TagInteger:
		return decodeInteger(c)
	case TagFloat:
		return decodeFloat(c)
	case TagBulkString:
		return decodeBulkString(c)
	case TagSimpleString:
		return decodeSimpleString(c)
	case TagArray:
		return decodeArray(c)
	case TagMap:
		return decodeMap(c)
	case TagError:
		return decodeServerError(c)
	default:
		return nil, &UnknownTagError{Tag: tag}
	}
}

func decodeNull(c *cursor) (Value, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	if len(line) != 0 {
		return nil, &MalformedInputError{Token: string(line), Reason: "null carries no payload"}
	}
	return Null{}, nil
}

func decodeBoolean(c *cursor) (Value, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	switch string(line) {
	case "t":
		return Boolean(true), nil
	case "f":
		return Boolean(false), nil
	default:
		return nil, &MalformedInputError{Token: string(line), Reason: "boolean payload must be t or f"}
	}
}

func decodeInteger(c *cursor) (Value, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return nil, &MalformedInputError{Token: string(line), Reason: "not a valid integer literal"}
	}
	return Integer(n), nil
}

func decodeFloat(c *cursor) (Value, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	f, err := strconv.ParseFloat(string(line), 64)
	if err != nil {
		return nil, &MalformedInputError{Token: string(line), Reason: "not a valid float literal"}
	}
	return Float(f), nil
}

func decodeBulkString(c *cursor) (Value, error) {
	length, err := c.readCount()
	if err != nil {
		return nil, err
	}
	payload, err := c.readN(length)
	if err != nil {
		return nil, err
	}
	// The declared length must match the payload exactly, so the next two
	// bytes have to be the terminating CRLF.
	if err := c.expectCRLF(); err != nil {
		return nil, err
	}
	return BulkString(payload), nil
}

func decodeSimpleString(c *cursor) (Value, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	return SimpleString(line), nil
}

func decodeArray(c *cursor) (Value, error) {
	count, err := c.readCount()
	if err != nil {
		return nil, err
	}
	// The count is taken from the wire before any element exists; clamp the
	// preallocation to what the buffer could still hold (3 bytes per element
	// at minimum) so a huge declared count cannot force a huge allocation.
	arr := make(Array, 0, min(count, c.remaining()/3))
	for i := 0; i < count; i++ {
		item, err := decodeValue(c)
		if err != nil {
			return nil, err
		}
		arr = append(arr, item)
	}
	return arr, nil
}

func decodeMap(c *cursor) (Value, error) {
	count, err := c.readCount()
	if err != nil {
		return nil, err
	}
	// Same clamp as for arrays; the smallest possible pair is 6 bytes
	m := make(Map, 0, min(count, c.remaining()/6))
	for i := 0; i < count; i++ {
		key, err := decodeValue(c)
		if err != nil {
			return nil, err
		}
		value, err := decodeValue(c)
		if err != nil {
			return nil, err
		}
		m = append(m, Entry{Key: key, Value: value})
	}
	return m, nil
}

func decodeServerError(c *cursor) (Value, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, err
	}
	return nil, &ServerError{Message: string(line)}
}

// --------------------------------------------------------------------------
// Byte Cursor
// --------------------------------------------------------------------------

// cursor tracks the current decode position in a buffer. All read helpers
// report ErrIncomplete when the buffer runs out mid-token.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) readByte() (byte, error) {
	if c.remaining() < 1 {
		return 0, ErrIncomplete
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// readLine consumes bytes up to and including the next CRLF and returns the
// bytes before it
func (c *cursor) readLine() ([]byte, error) {
	idx := bytes.Index(c.buf[c.pos:], []byte(crlf))
	if idx < 0 {
		return nil, ErrIncomplete
	}
	line := c.buf[c.pos : c.pos+idx]
	c.pos += idx + len(crlf)
	return line, nil
}

func (c *cursor) readN(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, ErrIncomplete
	}
	data := c.buf[c.pos : c.pos+n]
	c.pos += n
	return data, nil
}

func (c *cursor) expectCRLF() error {
	if c.remaining() < len(crlf) {
		return ErrIncomplete
	}
	if string(c.buf[c.pos:c.pos+len(crlf)]) != crlf {
		return &MalformedInputError{
			Token:  string(c.buf[c.pos : c.pos+len(crlf)]),
			Reason: "declared length does not match payload",
		}
	}
	c.pos += len(crlf)
	return nil
}

// readCount reads a CRLF-terminated length/count token
func (c *cursor) readCount() (int, error) {
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(string(line))
	if err != nil || n < 0 {
		return 0, &MalformedInputError{Token: string(line), Reason: "not a valid length/count token"}
	}
	return n, nil
}
