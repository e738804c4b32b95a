package resp

import (
	"fmt"
	"math"
	"sort"
)

// --------------------------------------------------------------------------
// Value Model
// --------------------------------------------------------------------------

// Value is the tagged union of everything the wire protocol can carry.
// The concrete types are Null, Boolean, Integer, Float, BulkString,
// SimpleString, Array and Map.
type Value interface {
	// Type returns the protocol tag byte identifying the variant
	Type() byte
}

// Null is the protocol null value, encoded as "_\r\n"
type Null struct{}

// Boolean is encoded as "#t\r\n" or "#f\r\n"
type Boolean bool

// Integer is a 64-bit signed integer, encoded as ":<decimal>\r\n"
type Integer int64

// Float is a double-precision float, encoded as ",<decimal>\r\n"
type Float float64

// BulkString is the length-prefixed string variant,
// encoded as "$<byte-length>\r\n<bytes>\r\n"
type BulkString string

// SimpleString is the CRLF-terminated string variant, encoded as
// "+<bytes>\r\n". It must not contain an embedded CRLF.
type SimpleString string

// Array is an ordered sequence of values, encoded as "*<count>\r\n"
// followed by each element
type Array []Value

// Map is an ordered sequence of key/value pairs, encoded as
// "%<pair-count>\r\n" followed by each pair. Keys are conventionally
// strings, but any Value is accepted.
type Map []Entry

// Entry is a single key/value pair of a Map
type Entry struct {
	Key   Value
	Value Value
}

func (Null) Type() byte         { return TagNull }
func (Boolean) Type() byte      { return TagBoolean }
func (Integer) Type() byte      { return TagInteger }
func (Float) Type() byte        { return TagFloat }
func (BulkString) Type() byte   { return TagBulkString }
func (SimpleString) Type() byte { return TagSimpleString }
func (Array) Type() byte        { return TagArray }
func (Map) Type() byte          { return TagMap }

// Protocol tag bytes. Every scalar/length/count token is CRLF-terminated.
const (
	TagNull         byte = '_'
	TagBoolean      byte = '#'
	TagInteger      byte = ':'
	TagFloat        byte = ','
	TagBulkString   byte = '$'
	TagSimpleString byte = '+'
	TagArray        byte = '*'
	TagMap          byte = '%'
	TagError        byte = '-'
)

// --------------------------------------------------------------------------
// Native Go Conversion
// --------------------------------------------------------------------------

// FromGo converts a native Go value into the protocol value model.
// Strings become bulk strings, integer types become Integer (unsigned
// values above the signed 64-bit range are rejected, never wrapped),
// floats become Float, nil becomes Null. Slices become Arrays and maps become Maps; map
// keys are encoded in sorted order since Go map iteration is randomized.
// A Value passes through unchanged. Anything else fails with an
// UnsupportedTypeError.
func FromGo(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case string:
		return BulkString(t), nil
	case []byte:
		return BulkString(t), nil
	case bool:
		return Boolean(t), nil
	case int:
		return Integer(t), nil
	case int8:
		return Integer(t), nil
	case int16:
		return Integer(t), nil
	case int32:
		return Integer(t), nil
	case int64:
		return Integer(t), nil
	case uint:
		return fromUint64(uint64(t))
	case uint8:
		return Integer(t), nil
	case uint16:
		return Integer(t), nil
	case uint32:
		return Integer(t), nil
	case uint64:
		return fromUint64(t)
	case float32:
		return Float(t), nil
	case float64:
		return Float(t), nil
	case []any:
		arr := make(Array, 0, len(t))
		for _, item := range t {
			converted, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			arr = append(arr, converted)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		m := make(Map, 0, len(t))
		for _, k := range keys {
			converted, err := FromGo(t[k])
			if err != nil {
				return nil, err
			}
			m = append(m, Entry{Key: BulkString(k), Value: converted})
		}
		return m, nil
	default:
		return nil, &UnsupportedTypeError{Value: v}
	}
}

// fromUint64 converts an unsigned value into the signed Integer model,
// rejecting values that do not fit instead of wrapping silently
func fromUint64(v uint64) (Value, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("unsigned value %d overflows the integer model", v)
	}
	return Integer(v), nil
}

// --------------------------------------------------------------------------
// Display Helper
// --------------------------------------------------------------------------

// Sprint renders a value in a human-readable form for logs and CLI output
func Sprint(v Value) string {
	switch t := v.(type) {
	case nil, Null:
		return "(nil)"
	case Boolean:
		return fmt.Sprintf("%t", bool(t))
	case Integer:
		return fmt.Sprintf("%d", int64(t))
	case Float:
		return fmt.Sprintf("%g", float64(t))
	case BulkString:
		return string(t)
	case SimpleString:
		return string(t)
	case Array:
		s := "["
		for i, item := range t {
			if i > 0 {
				s += ", "
			}
			s += Sprint(item)
		}
		return s + "]"
	case Map:
		s := "{"
		for i, entry := range t {
			if i > 0 {
				s += ", "
			}
			s += Sprint(entry.Key) + ": " + Sprint(entry.Value)
		}
		return s + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}
