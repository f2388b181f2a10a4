package luaserde

import (
	"github.com/zrkn/rlua-serde/lua"
)

// ToValue encodes v into a single Lua value allocated on rt.
//
// Encoding is total over the supported Go kinds: it fails only when the
// runtime refuses an allocation or v contains an unsupported kind such as
// a channel or function.
func ToValue(rt *lua.Runtime, v any) (lua.Value, error) {
	return NewEncoder(rt).Encode(v)
}

// FromValue decodes a Lua value into out, which must be a non-nil pointer.
//
// Decoding is partial: the value's runtime shape must match the target's,
// otherwise a typed error is returned and out is left partially written.
func FromValue(v lua.Value, out any) error {
	return NewDecoder(v).Decode(out)
}

// As decodes a Lua value into a fresh T.
func As[T any](v lua.Value) (T, error) {
	var out T
	err := FromValue(v, &out)
	return out, err
}
