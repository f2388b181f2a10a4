package lua

import (
	"fmt"
	"math"
	"strconv"

	"github.com/zrkn/rlua-serde/errors"
)

// Type identifies the runtime tag of a Value.
type Type uint8

const (
	TypeNil Type = iota
	TypeBool
	TypeInteger
	TypeNumber
	TypeString
	TypeTable
)

func (t Type) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeTable:
		return "table"
	default:
		return "unknown"
	}
}

// Value is a single runtime value. Exactly six concrete types satisfy it:
// NilType, Bool, Integer, Number, String and *Table.
type Value interface {
	// Type returns the runtime tag of the value.
	Type() Type

	// String returns a display representation of the value.
	String() string
}

var (
	_ Value = Nil
	_ Value = False
	_ Value = Integer(0)
	_ Value = Number(0)
	_ Value = String("")
	_ Value = (*Table)(nil)
)

// NilType is the type of the Nil value.
type NilType byte

// Nil is the runtime's nil value. It is not Go's nil: a NilType value
// assigned to a Value interface is non-nil and compares equal to Nil.
const Nil = NilType(0)

func (NilType) Type() Type     { return TypeNil }
func (NilType) String() string { return "nil" }

// Bool is a runtime boolean.
type Bool bool

const (
	True  = Bool(true)
	False = Bool(false)
)

func (Bool) Type() Type { return TypeBool }

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Integer is a 64-bit signed runtime integer.
type Integer int64

func (Integer) Type() Type       { return TypeInteger }
func (i Integer) String() string { return strconv.FormatInt(int64(i), 10) }

// Number is a 64-bit float runtime number.
type Number float64

func (Number) Type() Type { return TypeNumber }

func (n Number) String() string {
	return fmt.Sprintf("%.14g", float64(n))
}

// String is immutable runtime text.
type String string

func (String) Type() Type       { return TypeString }
func (s String) String() string { return strconv.Quote(string(s)) }

// IsNil reports whether v is the runtime nil value, either as NilType or as
// an unset Go interface.
func IsNil(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(NilType)
	return ok
}

const maxCompareDepth = 100

// Equal reports deep structural equality of two values. Tables compare by
// contents; Integer and Number compare numerically across tags, mirroring
// the runtime's == operator. Comparison of structures nested deeper than an
// internal bound fails with an error, which also catches cyclic tables.
func Equal(x, y Value) (bool, error) {
	return equalDepth(x, y, maxCompareDepth)
}

func equalDepth(x, y Value, depth int) (bool, error) {
	if depth < 1 {
		return false, errors.New(errors.PhaseRuntime, errors.KindUnsupported).
			Detail("comparison exceeded maximum recursion depth").
			Build()
	}

	switch xv := x.(type) {
	case nil, NilType:
		return IsNil(y), nil
	case Bool:
		yv, ok := y.(Bool)
		return ok && xv == yv, nil
	case Integer:
		switch yv := y.(type) {
		case Integer:
			return xv == yv, nil
		case Number:
			return float64(xv) == float64(yv), nil
		}
		return false, nil
	case Number:
		switch yv := y.(type) {
		case Number:
			return xv == yv, nil
		case Integer:
			return float64(xv) == float64(yv), nil
		}
		return false, nil
	case String:
		yv, ok := y.(String)
		return ok && xv == yv, nil
	case *Table:
		yv, ok := y.(*Table)
		if !ok {
			return false, nil
		}
		return equalTables(xv, yv, depth)
	default:
		return false, nil
	}
}

func equalTables(x, y *Table, depth int) (bool, error) {
	if x == y {
		return true, nil
	}
	if x.Size() != y.Size() || x.Len() != y.Len() {
		return false, nil
	}

	it := x.Pairs()
	var k, xv Value
	for it.Next(&k, &xv) {
		eq, err := equalDepth(xv, y.Get(k), depth-1)
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

// numberToIntegerKey normalizes integral float keys to Integer keys.
func numberToIntegerKey(n Number) (Value, bool) {
	f := float64(n)
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return n, false
	}
	i := int64(f)
	if float64(i) != f {
		return n, false
	}
	return Integer(i), true
}
