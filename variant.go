package luaserde

import (
	"github.com/zrkn/rlua-serde/errors"
	"github.com/zrkn/rlua-serde/lua"
)

// Variant is one named alternative of a tagged union.
//
// On encode, Payload holds the Go payload value; a nil Payload marks a unit
// variant, which encodes as a bare string equal to Name. Any other payload
// encodes as a one-entry table mapping Name to the encoded payload: a slice
// payload yields the tuple-variant shape, a struct or map payload the
// struct-variant shape.
//
// After a decode, Payload holds the raw lua.Value payload (or nil for a
// unit variant) and the accessor methods interpret it.
type Variant struct {
	Name    string
	Payload any
}

// Unit asserts the unit sub-protocol: the variant must carry no payload.
func (v Variant) Unit() error {
	if v.Payload != nil {
		return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Detail("variant %q carries a payload, want unit variant", v.Name).
			Build()
	}
	return nil
}

// Newtype decodes the variant's payload as a single value into out.
func (v Variant) Newtype(out any) error {
	payload, err := v.payloadValue()
	if err != nil {
		return err
	}
	return FromValue(payload, out)
}

// Tuple decodes the variant's payload as a fixed-arity sequence, one
// element per target. A payload with more or fewer sequential elements is
// a length mismatch.
func (v Variant) Tuple(outs ...any) error {
	payload, err := v.payloadValue()
	if err != nil {
		return err
	}
	table, ok := payload.(*lua.Table)
	if !ok {
		return errors.TypeMismatch(errors.PhaseDecode, []string{v.Name}, "tuple variant", payload.Type().String())
	}
	if got := table.Len(); got != len(outs) {
		return errors.LengthMismatch(errors.PhaseDecode, []string{v.Name}, len(outs), got)
	}
	it := table.Sequence()
	var elem lua.Value
	for i := 0; it.Next(&elem); i++ {
		if err := FromValue(elem, outs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Struct decodes the variant's payload as a map shape into out, typically
// a pointer to a struct.
func (v Variant) Struct(out any) error {
	payload, err := v.payloadValue()
	if err != nil {
		return err
	}
	if _, ok := payload.(*lua.Table); !ok {
		return errors.TypeMismatch(errors.PhaseDecode, []string{v.Name}, "struct variant", payload.Type().String())
	}
	return FromValue(payload, out)
}

func (v Variant) payloadValue() (lua.Value, error) {
	if v.Payload == nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Detail("variant %q has no payload, want payload variant", v.Name).
			Build()
	}
	payload, ok := v.Payload.(lua.Value)
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Detail("variant %q payload is %T, not a Lua value; accessors apply to decoded variants", v.Name, v.Payload).
			Build()
	}
	return payload, nil
}
