package luaserde

import (
	"reflect"
	"unicode/utf8"

	"github.com/zrkn/rlua-serde/errors"
	"github.com/zrkn/rlua-serde/lua"
)

var (
	luaValueType = reflect.TypeOf((*lua.Value)(nil)).Elem()
	variantType  = reflect.TypeOf((*Variant)(nil)).Elem()
)

// Decoder interprets one Lua value against the shape of a Go target.
// Decoders are cheap; build a fresh one per conversion.
type Decoder struct {
	value lua.Value
}

func NewDecoder(v lua.Value) *Decoder {
	if v == nil {
		v = lua.Nil
	}
	return &Decoder{value: v}
}

// Decode fills out, which must be a non-nil pointer, from the decoder's
// value. The target's type is the requested shape; a target of type any
// infers the shape from the value's own tag.
func (d *Decoder) Decode(out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Detail("decode target must be a non-nil pointer, got %T", out).
			Build()
	}
	return d.decode(rv.Elem(), d.value, nil)
}

func (d *Decoder) decode(rv reflect.Value, v lua.Value, path []string) error {
	if v == nil {
		v = lua.Nil
	}
	t := rv.Type()

	if t == variantType {
		return d.decodeVariant(rv, v, path)
	}
	if t == luaValueType || (t.Kind() != reflect.Interface && t.Implements(luaValueType)) {
		vv := reflect.ValueOf(v)
		if !vv.Type().AssignableTo(t) {
			return d.mismatch(t, v, path)
		}
		rv.Set(vv)
		return nil
	}

	switch rv.Kind() {
	case reflect.Interface:
		if t.NumMethod() != 0 {
			return errors.New(errors.PhaseDecode, errors.KindUnsupported).
				Path(path...).
				GoType(t.String()).
				Detail("cannot decode into non-empty interface").
				Build()
		}
		x, err := d.decodeAny(v, path)
		if err != nil {
			return err
		}
		if x == nil {
			rv.SetZero()
		} else {
			rv.Set(reflect.ValueOf(x))
		}
		return nil

	case reflect.Bool:
		b, ok := v.(lua.Bool)
		if !ok {
			return d.mismatch(t, v, path)
		}
		rv.SetBool(bool(b))
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := v.(lua.Integer)
		if !ok {
			return d.mismatch(t, v, path)
		}
		if rv.OverflowInt(int64(i)) {
			return errors.Overflow(errors.PhaseDecode, path, int64(i), t.String())
		}
		rv.SetInt(int64(i))
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i, ok := v.(lua.Integer)
		if !ok {
			return d.mismatch(t, v, path)
		}
		// Negative integers reinterpret into uint64 targets, undoing the
		// encoder's lossy widening; narrower targets still overflow.
		u := uint64(int64(i))
		if rv.OverflowUint(u) {
			return errors.Overflow(errors.PhaseDecode, path, int64(i), t.String())
		}
		rv.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		var f float64
		switch n := v.(type) {
		case lua.Number:
			f = float64(n)
		case lua.Integer:
			f = float64(n)
		default:
			return d.mismatch(t, v, path)
		}
		if rv.OverflowFloat(f) {
			return errors.Overflow(errors.PhaseDecode, path, f, t.String())
		}
		rv.SetFloat(f)
		return nil

	case reflect.String:
		s, ok := v.(lua.String)
		if !ok {
			return d.mismatch(t, v, path)
		}
		if !utf8.ValidString(string(s)) {
			return errors.InvalidUTF8(errors.PhaseDecode, path, []byte(s))
		}
		rv.SetString(string(s))
		return nil

	case reflect.Slice:
		table, ok := v.(*lua.Table)
		if !ok {
			return d.mismatch(t, v, path)
		}
		return d.decodeSlice(rv, table, path)

	case reflect.Array:
		table, ok := v.(*lua.Table)
		if !ok {
			return d.mismatch(t, v, path)
		}
		return d.decodeArray(rv, table, path)

	case reflect.Map:
		table, ok := v.(*lua.Table)
		if !ok {
			return d.mismatch(t, v, path)
		}
		return d.decodeMap(rv, table, path)

	case reflect.Struct:
		table, ok := v.(*lua.Table)
		if !ok {
			return d.mismatch(t, v, path)
		}
		return d.decodeStruct(rv, table, path)

	case reflect.Pointer:
		if lua.IsNil(v) {
			rv.SetZero()
			return nil
		}
		if rv.IsNil() {
			rv.Set(reflect.New(t.Elem()))
		}
		return d.decode(rv.Elem(), v, path)

	default:
		return errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Path(path...).
			GoType(t.String()).
			Detail("cannot decode into Go kind %s", rv.Kind()).
			Build()
	}
}

// decodeAny infers the target shape from the value's own tag.
func (d *Decoder) decodeAny(v lua.Value, path []string) (any, error) {
	switch val := v.(type) {
	case nil, lua.NilType:
		return nil, nil
	case lua.Bool:
		return bool(val), nil
	case lua.Integer:
		return int64(val), nil
	case lua.Number:
		return float64(val), nil
	case lua.String:
		if !utf8.ValidString(string(val)) {
			return nil, errors.InvalidUTF8(errors.PhaseDecode, path, []byte(val))
		}
		return string(val), nil
	case *lua.Table:
		m := make(map[any]any, val.Size())
		it := val.Pairs()
		var k, ev lua.Value
		for it.Next(&k, &ev) {
			key, err := d.decodeAny(k, path)
			if err != nil {
				return nil, err
			}
			value, err := d.decodeAny(ev, childPath(path, k.String()))
			if err != nil {
				return nil, err
			}
			m[key] = value
		}
		return m, nil
	default:
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(path...).
			LuaType(v.Type().String()).
			Detail("invalid value type").
			Build()
	}
}

func (d *Decoder) decodeSlice(rv reflect.Value, table *lua.Table, path []string) error {
	n := table.Len()
	slice := reflect.MakeSlice(rv.Type(), n, n)
	it := table.Sequence()
	var v lua.Value
	for i := 0; it.Next(&v); i++ {
		if err := d.decode(slice.Index(i), v, childPath(path, "["+lua.Integer(i+1).String()+"]")); err != nil {
			return err
		}
	}
	rv.Set(slice)
	return nil
}

func (d *Decoder) decodeArray(rv reflect.Value, table *lua.Table, path []string) error {
	n := rv.Len()
	if got := table.Len(); got != n {
		return errors.LengthMismatch(errors.PhaseDecode, path, n, got)
	}
	it := table.Sequence()
	var v lua.Value
	for i := 0; it.Next(&v); i++ {
		if err := d.decode(rv.Index(i), v, childPath(path, "["+lua.Integer(i+1).String()+"]")); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) decodeMap(rv reflect.Value, table *lua.Table, path []string) error {
	t := rv.Type()
	m := reflect.MakeMapWithSize(t, table.Size())
	it := table.Pairs()
	var k, v lua.Value
	for it.Next(&k, &v) {
		key := reflect.New(t.Key()).Elem()
		if err := d.decode(key, k, path); err != nil {
			return err
		}
		value := reflect.New(t.Elem()).Elem()
		if err := d.decode(value, v, childPath(path, k.String())); err != nil {
			return err
		}
		m.SetMapIndex(key, value)
	}
	rv.Set(m)
	return nil
}

func (d *Decoder) decodeStruct(rv reflect.Value, table *lua.Table, path []string) error {
	fields := structFields(rv.Type())
	byName := make(map[string]structField, len(fields))
	for _, f := range fields {
		byName[f.name] = f
	}

	it := table.Pairs()
	var k, v lua.Value
	for it.Next(&k, &v) {
		name, ok := k.(lua.String)
		if !ok {
			return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
				Path(path...).
				GoType(rv.Type().String()).
				LuaType(k.Type().String()).
				Detail("struct field keys must be strings").
				Build()
		}
		f, ok := byName[string(name)]
		if !ok {
			// Unknown keys are consumed and ignored.
			continue
		}
		if err := d.decode(rv.FieldByIndex(f.index), v, childPath(path, string(name))); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) decodeVariant(rv reflect.Value, v lua.Value, path []string) error {
	switch val := v.(type) {
	case lua.String:
		if !utf8.ValidString(string(val)) {
			return errors.InvalidUTF8(errors.PhaseDecode, path, []byte(val))
		}
		rv.Set(reflect.ValueOf(Variant{Name: string(val)}))
		return nil

	case *lua.Table:
		it := val.Pairs()
		var k, payload lua.Value
		if !it.Next(&k, &payload) {
			return errors.InvalidVariant(errors.PhaseDecode, path, "empty table, want a single-entry table")
		}
		name, ok := k.(lua.String)
		if !ok {
			return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
				Path(path...).
				LuaType(k.Type().String()).
				Detail("variant name must be a string").
				Build()
		}
		var k2, v2 lua.Value
		if it.Next(&k2, &v2) {
			return errors.InvalidVariant(errors.PhaseDecode, path, "table has more than one entry, want a single-entry table")
		}
		rv.Set(reflect.ValueOf(Variant{Name: string(name), Payload: payload}))
		return nil

	default:
		return errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Path(path...).
			GoType("Variant").
			LuaType(v.Type().String()).
			Detail("enum value must be a string or a single-entry table").
			Build()
	}
}

func (d *Decoder) mismatch(t reflect.Type, v lua.Value, path []string) error {
	return errors.TypeMismatch(errors.PhaseDecode, path, t.String(), v.Type().String())
}
