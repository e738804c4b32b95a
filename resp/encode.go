package resp

import (
	"bytes"
	"strconv"
	"strings"
)

const crlf = "\r\n"

// Encode converts a value to its exact wire form. Unsupported variants are
// detected per element via type dispatch, so a bad element deep inside a
// container fails the whole encode.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch t := v.(type) {
	case Null:
		buf.WriteByte(TagNull)
		buf.WriteString(crlf)
	case Boolean:
		buf.WriteByte(TagBoolean)
		if t {
			buf.WriteByte('t')
		} else {
			buf.WriteByte('f')
		}
		buf.WriteString(crlf)
	case Integer:
		buf.WriteByte(TagInteger)
		buf.WriteString(strconv.FormatInt(int64(t), 10))
		buf.WriteString(crlf)
	case Float:
		buf.WriteByte(TagFloat)
		buf.WriteString(strconv.FormatFloat(float64(t), 'g', -1, 64))
		buf.WriteString(crlf)
	case BulkString:
		buf.WriteByte(TagBulkString)
		buf.WriteString(strconv.Itoa(len(t)))
		buf.WriteString(crlf)
		buf.WriteString(string(t))
		buf.WriteString(crlf)
	case SimpleString:
		if strings.Contains(string(t), crlf) {
			return &MalformedInputError{Token: string(t), Reason: "simple string contains CRLF"}
		}
		buf.WriteByte(TagSimpleString)
		buf.WriteString(string(t))
		buf.WriteString(crlf)
	case Array:
		buf.WriteByte(TagArray)
		buf.WriteString(strconv.Itoa(len(t)))
		buf.WriteString(crlf)
		for _, item := range t {
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
	case Map:
		buf.WriteByte(TagMap)
		buf.WriteString(strconv.Itoa(len(t)))
		buf.WriteString(crlf)
		for _, entry := range t {
			if err := encodeValue(buf, entry.Key); err != nil {
				return err
			}
			if err := encodeValue(buf, entry.Value); err != nil {
				return err
			}
		}
	default:
		return &UnsupportedTypeError{Value: v}
	}
	return nil
}
