// Package resp implements the zcached wire protocol codec: a typed value
// model, the byte-exact encoder and an incremental, grammar-driven decoder.
//
// The package focuses on:
//   - A tagged union (Value) covering every type the protocol can carry
//   - Byte-exact encoding with per-element type dispatch
//   - Incremental decoding that distinguishes "not enough bytes yet"
//     (ErrIncomplete) from genuinely malformed input
//   - Self-delimiting framing: every container and bulk string is
//     length/count-prefixed, so a complete top-level value needs no
//     end-of-message sentinel or idle-timeout heuristic
//
// Key Components:
//
//   - Value: interface implemented by Null, Boolean, Integer, Float,
//     BulkString, SimpleString, Array and Map.
//
//   - Encode: converts a Value to its wire form. Fails with an
//     UnsupportedTypeError for anything outside the variant set, including
//     nested container elements.
//
//   - Decode: reads exactly one top-level value from a buffer and reports
//     how many bytes it consumed. On ErrIncomplete the caller appends newly
//     received bytes and retries the same decode; this is the sole framing
//     signal. Server error lines (leading '-') are surfaced as *ServerError.
//
//   - FromGo: converts native Go values (strings, numbers, booleans, nil,
//     slices, maps) into the Value model, mirroring the conversion used by
//     the client for SET/MSET arguments.
//
// Thread Safety:
//
//	All functions are pure and stateless; they are safe for concurrent use
//	without additional synchronization.
package resp
