package lua

import (
	"testing"
)

func TestValue_Types(t *testing.T) {
	tests := []struct {
		value Value
		name  string
		want  Type
	}{
		{Nil, "nil", TypeNil},
		{True, "bool", TypeBool},
		{Integer(42), "integer", TypeInteger},
		{Number(2.5), "number", TypeNumber},
		{String("s"), "string", TypeString},
		{&Table{}, "table", TypeTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Type(); got != tt.want {
				t.Errorf("Type() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_Display(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Nil, "nil"},
		{True, "true"},
		{False, "false"},
		{Integer(-7), "-7"},
		{Number(2.5), "2.5"},
		{String("hi"), `"hi"`},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsNil(t *testing.T) {
	if !IsNil(Nil) {
		t.Error("IsNil(Nil) = false")
	}
	if !IsNil(nil) {
		t.Error("IsNil(nil interface) = false")
	}
	if IsNil(Integer(0)) {
		t.Error("IsNil(0) = true")
	}
	if IsNil(False) {
		t.Error("IsNil(false) = true")
	}
}

func TestEqual_Scalars(t *testing.T) {
	tests := []struct {
		x, y Value
		name string
		want bool
	}{
		{Nil, Nil, "nil nil", true},
		{Nil, False, "nil false", false},
		{True, True, "bools", true},
		{Integer(1), Integer(1), "integers", true},
		{Integer(1), Integer(2), "integers differ", false},
		{Integer(1), Number(1.0), "integer vs number", true},
		{Number(1.0), Integer(1), "number vs integer", true},
		{Number(1.5), Integer(1), "number vs integer differ", false},
		{String("a"), String("a"), "strings", true},
		{String("a"), Integer(1), "string vs integer", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Equal(tt.x, tt.y)
			if err != nil {
				t.Fatalf("Equal failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestEqual_Tables(t *testing.T) {
	build := func() *Table {
		table := &Table{}
		mustSet(t, table, Integer(1), String("a"))
		mustSet(t, table, String("k"), Number(2.5))
		inner := &Table{}
		mustSet(t, inner, Integer(1), Integer(1))
		mustSet(t, table, String("inner"), inner)
		return table
	}

	x, y := build(), build()
	if eq, err := Equal(x, y); err != nil || !eq {
		t.Errorf("Equal(same contents) = %v, %v; want true", eq, err)
	}

	mustSet(t, y, String("k"), Number(3.5))
	if eq, err := Equal(x, y); err != nil || eq {
		t.Errorf("Equal(differing contents) = %v, %v; want false", eq, err)
	}

	// Same handle compares equal without recursion.
	if eq, err := Equal(x, x); err != nil || !eq {
		t.Errorf("Equal(same handle) = %v, %v; want true", eq, err)
	}
}

func TestEqual_CyclicTablesError(t *testing.T) {
	a, b := &Table{}, &Table{}
	mustSet(t, a, String("next"), b)
	mustSet(t, b, String("next"), a)

	if _, err := Equal(a, b); err == nil {
		t.Error("Equal(cyclic tables) succeeded, want depth error")
	}
}
