// Package luaserde converts Go values to and from Lua runtime values.
//
// This package handles bidirectional conversion between arbitrary Go types
// and the six-variant dynamic value model of the lua package:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Go Value ←→ [Encoder / Decoder] ←→ lua.Value            │
//	└─────────────────────────────────────────────────────────┘
//
// # Encoding
//
// ToValue walks a Go value with reflection and produces one lua.Value:
//
//	Go shape                        Lua value
//	─────────────────────────────────────────────────────────
//	nil, nil pointer                nil
//	bool                            boolean
//	int8..int64, int                integer
//	uint8..uint64, uintptr          integer (reinterpreted)
//	float32, float64                number
//	string                          string
//	slice, array (incl. []byte)     sequential 1-based table
//	map                             table
//	struct                          table keyed by field name
//	pointer, interface              encoding of the referent
//	Variant                         string or one-entry table
//	lua.Value                       passed through unchanged
//
// Unsigned values above the signed 64-bit maximum reinterpret as negative
// integers rather than failing; the round trip through an unsigned target
// restores them.
//
// # Decoding
//
// FromValue interprets one lua.Value against the shape of the target:
//
//	value, _ := luaserde.ToValue(rt, user)
//	var back User
//	if err := luaserde.FromValue(value, &back); err != nil { ... }
//
// A target of type any infers the shape from the value's own tag (tables
// become map[any]any). Fixed-size array targets enforce exact sequential
// length; decoding a 3-element table into a [2]int fails with a length
// mismatch, as does a 2-element table into a [3]int.
//
// # Enums
//
// The Variant type bridges tagged unions. A unit variant encodes as a bare
// string equal to the variant name; a variant with a payload encodes as a
// one-entry table mapping the name to the encoded payload. Decoding accepts
// exactly those two shapes and the accessor methods Unit, Newtype, Tuple
// and Struct interpret the payload.
//
// # Struct tags
//
// Field names can be remapped with a `lua:"name"` tag; `lua:"-"` skips the
// field. Anonymous embedded structs flatten into the enclosing table.
// Unexported fields are ignored.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[decode] type_mismatch at user.age: Go type int, Lua type string
//	[decode] length_mismatch at rgb: expected 3 elements, got 2
//
// Every mismatch returns a typed error; a failed decode may leave the
// target partially written.
//
// # Thread Safety
//
// Each conversion builds a fresh Encoder or Decoder and shares no state
// with other calls. Values and their table handles belong to a lua.Runtime,
// which is not safe for concurrent use; give each goroutine its own.
//
// # Usage Tips
//
//   - Cyclic table graphs are not detected; encoding self-referential
//     data recurses without bound
//   - Decoding into any produces map[any]any for every table shape
//   - Tables outlive a conversion only as long as their Runtime does
package luaserde
