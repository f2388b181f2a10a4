package luaserde

import (
	"errors"
	"math"
	"testing"

	codecerr "github.com/zrkn/rlua-serde/errors"
	"github.com/zrkn/rlua-serde/lua"
)

func mustEncode(t *testing.T, rt *lua.Runtime, v any) lua.Value {
	t.Helper()
	value, err := ToValue(rt, v)
	if err != nil {
		t.Fatalf("ToValue(%#v) failed: %v", v, err)
	}
	return value
}

func mustLiteral(t *testing.T, v lua.Value) string {
	t.Helper()
	s, err := lua.Literal(v)
	if err != nil {
		t.Fatalf("Literal failed: %v", err)
	}
	return s
}

func TestEncode_Scalars(t *testing.T) {
	rt := lua.NewRuntime()

	tests := []struct {
		input any
		want  lua.Value
		name  string
	}{
		{nil, lua.Nil, "nil"},
		{true, lua.True, "bool"},
		{int(42), lua.Integer(42), "int"},
		{int8(-5), lua.Integer(-5), "int8"},
		{int64(1 << 40), lua.Integer(1 << 40), "int64"},
		{uint8(200), lua.Integer(200), "uint8"},
		{uint32(7), lua.Integer(7), "uint32"},
		{float32(0.5), lua.Number(0.5), "float32"},
		{float64(2.5), lua.Number(2.5), "float64"},
		{"hello", lua.String("hello"), "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustEncode(t, rt, tt.input)
			if got != tt.want {
				t.Errorf("ToValue(%#v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEncode_UintReinterprets(t *testing.T) {
	rt := lua.NewRuntime()

	got := mustEncode(t, rt, uint64(math.MaxUint64))
	if got != lua.Integer(-1) {
		t.Errorf("ToValue(MaxUint64) = %v, want -1", got)
	}

	got = mustEncode(t, rt, uint64(math.MaxInt64))
	if got != lua.Integer(math.MaxInt64) {
		t.Errorf("ToValue(MaxInt64) = %v, want MaxInt64", got)
	}
}

func TestEncode_Sequences(t *testing.T) {
	rt := lua.NewRuntime()

	tests := []struct {
		input any
		name  string
		want  string
	}{
		{[]string{"a", "b"}, "string slice", `{"a", "b"}`},
		{[]int{}, "empty slice", "{}"},
		{[3]int{1, 2, 3}, "array", "{1, 2, 3}"},
		{[]byte{1, 2}, "byte slice", "{1, 2}"},
		{[][]int{{1}, {2, 3}}, "nested", "{{1}, {2, 3}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustLiteral(t, mustEncode(t, rt, tt.input))
			if got != tt.want {
				t.Errorf("ToValue(%#v) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestEncode_Maps(t *testing.T) {
	rt := lua.NewRuntime()

	got := mustLiteral(t, mustEncode(t, rt, map[string]int{"a": 1, "b": 2}))
	if got != "{a = 1, b = 2}" {
		t.Errorf("ToValue(string map) = %s", got)
	}

	// Integer keys starting at 1 land in the sequential part.
	got = mustLiteral(t, mustEncode(t, rt, map[int]int{1: 2, 4: 1}))
	if got != "{2, [4] = 1}" {
		t.Errorf("ToValue(int map) = %s", got)
	}
}

func TestEncode_NilMapKey(t *testing.T) {
	rt := lua.NewRuntime()

	_, err := ToValue(rt, map[*int]int{nil: 1})
	if !errors.Is(err, &codecerr.Error{Phase: codecerr.PhaseEncode, Kind: codecerr.KindInvalidKey}) {
		t.Errorf("ToValue(nil map key) error = %v, want invalid_key", err)
	}
}

func TestEncode_Struct(t *testing.T) {
	rt := lua.NewRuntime()

	type doc struct {
		Empty map[string]int `lua:"empty"`
		Int   int            `lua:"int"`
		Map   map[int]int    `lua:"map"`
		Seq   []string       `lua:"seq"`
	}
	in := doc{
		Empty: map[string]int{},
		Int:   1,
		Map:   map[int]int{1: 2, 4: 1},
		Seq:   []string{"a", "b"},
	}

	got := mustLiteral(t, mustEncode(t, rt, in))
	want := `{empty = {}, int = 1, map = {2, [4] = 1}, seq = {"a", "b"}}`
	if got != want {
		t.Errorf("ToValue(struct) = %s, want %s", got, want)
	}
}

func TestEncode_StructTags(t *testing.T) {
	rt := lua.NewRuntime()

	type tagged struct {
		Renamed  int `lua:"other"`
		Skipped  int `lua:"-"`
		Plain    int
		internal int
	}

	got := mustLiteral(t, mustEncode(t, rt, tagged{Renamed: 1, Skipped: 2, Plain: 3, internal: 4}))
	if got != "{Plain = 3, other = 1}" {
		t.Errorf("ToValue(tagged struct) = %s", got)
	}
}

func TestEncode_EmbeddedStruct(t *testing.T) {
	rt := lua.NewRuntime()

	type Base struct {
		ID int `lua:"id"`
	}
	type wrapper struct {
		Base
		Name string `lua:"name"`
	}

	got := mustLiteral(t, mustEncode(t, rt, wrapper{Base: Base{ID: 7}, Name: "x"}))
	if got != `{id = 7, name = "x"}` {
		t.Errorf("ToValue(embedded struct) = %s", got)
	}
}

func TestEncode_EmbeddedShadowing(t *testing.T) {
	rt := lua.NewRuntime()

	type Base struct {
		Name string `lua:"name"`
		Kind string `lua:"kind"`
	}
	type wrapper struct {
		Base
		Name string `lua:"name"`
	}

	// The outer field wins over the embedded one of the same name even
	// though it is declared after the embedded struct.
	in := wrapper{Base: Base{Name: "inner", Kind: "b"}, Name: "outer"}
	got := mustLiteral(t, mustEncode(t, rt, in))
	if got != `{kind = "b", name = "outer"}` {
		t.Errorf("ToValue(shadowed struct) = %s", got)
	}
}

func TestEncode_Pointers(t *testing.T) {
	rt := lua.NewRuntime()

	n := 5
	if got := mustEncode(t, rt, &n); got != lua.Integer(5) {
		t.Errorf("ToValue(*int) = %v, want 5", got)
	}

	var p *int
	if got := mustEncode(t, rt, p); !lua.IsNil(got) {
		t.Errorf("ToValue(nil *int) = %v, want nil", got)
	}
}

func TestEncode_ValuePassthrough(t *testing.T) {
	rt := lua.NewRuntime()

	table, err := rt.NewTable()
	if err != nil {
		t.Fatal(err)
	}
	got := mustEncode(t, rt, table)
	if got != lua.Value(table) {
		t.Error("ToValue(lua.Value) did not pass the value through")
	}
}

func TestEncode_Unsupported(t *testing.T) {
	rt := lua.NewRuntime()

	_, err := ToValue(rt, make(chan int))
	if !errors.Is(err, &codecerr.Error{Phase: codecerr.PhaseEncode, Kind: codecerr.KindUnsupported}) {
		t.Errorf("ToValue(chan) error = %v, want unsupported", err)
	}
}

func TestEncode_AllocationLimit(t *testing.T) {
	rt := lua.NewRuntimeWithLimits(lua.Limits{MaxTables: 1})

	_, err := ToValue(rt, [][]int{{1}})
	if !errors.Is(err, &codecerr.Error{Phase: codecerr.PhaseRuntime, Kind: codecerr.KindAllocation}) {
		t.Errorf("ToValue under table limit error = %v, want allocation", err)
	}
}
