package luaserde

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/zrkn/rlua-serde/errors"
	"github.com/zrkn/rlua-serde/lua"
)

// Encoder converts one Go value into a Lua value allocated on a Runtime.
// Encoders are cheap; build a fresh one per conversion.
type Encoder struct {
	rt *lua.Runtime
}

func NewEncoder(rt *lua.Runtime) *Encoder {
	return &Encoder{rt: rt}
}

// Encode produces the Lua value for v.
func (e *Encoder) Encode(v any) (lua.Value, error) {
	return e.encode(v, nil)
}

func (e *Encoder) encode(v any, path []string) (lua.Value, error) {
	switch val := v.(type) {
	case nil:
		return lua.Nil, nil
	case lua.Value:
		return val, nil
	case Variant:
		return e.encodeVariant(val, path)
	case *Variant:
		if val == nil {
			return lua.Nil, nil
		}
		return e.encodeVariant(*val, path)
	}
	return e.encodeReflect(reflect.ValueOf(v), path)
}

func (e *Encoder) encodeReflect(rv reflect.Value, path []string) (lua.Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return lua.Bool(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return lua.Integer(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		// Values above the signed maximum reinterpret rather than fail.
		return lua.Integer(int64(rv.Uint())), nil

	case reflect.Float32, reflect.Float64:
		return lua.Number(rv.Float()), nil

	case reflect.String:
		return e.rt.NewString(rv.String())

	case reflect.Slice, reflect.Array:
		return e.encodeSequence(rv, path)

	case reflect.Map:
		return e.encodeMap(rv, path)

	case reflect.Struct:
		return e.encodeStruct(rv, path)

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return lua.Nil, nil
		}
		return e.encode(rv.Elem().Interface(), path)

	default:
		return nil, errors.New(errors.PhaseEncode, errors.KindUnsupported).
			Path(path...).
			GoType(rv.Type().String()).
			Detail("cannot encode Go kind %s", rv.Kind()).
			Build()
	}
}

func (e *Encoder) encodeSequence(rv reflect.Value, path []string) (lua.Value, error) {
	table, err := e.rt.NewTable()
	if err != nil {
		return nil, err
	}
	for i := 0; i < rv.Len(); i++ {
		elem, err := e.encode(rv.Index(i).Interface(), childPath(path, "["+strconv.Itoa(i)+"]"))
		if err != nil {
			return nil, err
		}
		if err := table.Set(lua.Integer(i+1), elem); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (e *Encoder) encodeMap(rv reflect.Value, path []string) (lua.Value, error) {
	table, err := e.rt.NewTable()
	if err != nil {
		return nil, err
	}
	iter := rv.MapRange()
	for iter.Next() {
		key, err := e.encode(iter.Key().Interface(), path)
		if err != nil {
			return nil, err
		}
		if lua.IsNil(key) {
			return nil, errors.New(errors.PhaseEncode, errors.KindInvalidKey).
				Path(path...).
				GoType(iter.Key().Type().String()).
				Detail("map key %v encodes to nil", iter.Key().Interface()).
				Build()
		}
		entry := childPath(path, fmt.Sprint(iter.Key().Interface()))
		value, err := e.encode(iter.Value().Interface(), entry)
		if err != nil {
			return nil, err
		}
		if err := table.Set(key, value); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (e *Encoder) encodeStruct(rv reflect.Value, path []string) (lua.Value, error) {
	table, err := e.rt.NewTable()
	if err != nil {
		return nil, err
	}
	for _, f := range structFields(rv.Type()) {
		key, err := e.rt.NewString(f.name)
		if err != nil {
			return nil, err
		}
		value, err := e.encode(rv.FieldByIndex(f.index).Interface(), childPath(path, f.name))
		if err != nil {
			return nil, err
		}
		if err := table.Set(key, value); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (e *Encoder) encodeVariant(v Variant, path []string) (lua.Value, error) {
	if v.Name == "" {
		return nil, errors.InvalidVariant(errors.PhaseEncode, path, "variant has no name")
	}
	name, err := e.rt.NewString(v.Name)
	if err != nil {
		return nil, err
	}
	if v.Payload == nil {
		// Unit variant: a bare string equal to the variant name.
		return name, nil
	}
	payload, err := e.encode(v.Payload, childPath(path, v.Name))
	if err != nil {
		return nil, err
	}
	table, err := e.rt.NewTable()
	if err != nil {
		return nil, err
	}
	if err := table.Set(name, payload); err != nil {
		return nil, err
	}
	return table, nil
}

func childPath(path []string, seg string) []string {
	child := make([]string, len(path), len(path)+1)
	copy(child, path)
	return append(child, seg)
}
