package lua

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zrkn/rlua-serde/errors"
)

// Literal renders v as a Lua value literal. Table output is deterministic:
// the sequential run first, then associative entries sorted by key.
// Cyclic tables are an error.
func Literal(v Value) (string, error) {
	var b strings.Builder
	if err := writeLiteral(&b, v, make(map[*Table]bool)); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeLiteral(b *strings.Builder, v Value, seen map[*Table]bool) error {
	switch val := v.(type) {
	case nil, NilType:
		b.WriteString("nil")
	case Bool, Integer, Number:
		b.WriteString(val.String())
	case String:
		b.WriteString(strconv.Quote(string(val)))
	case *Table:
		return writeTableLiteral(b, val, seen)
	default:
		return errors.Unsupported(errors.PhaseRuntime, "value type for literal")
	}
	return nil
}

func writeTableLiteral(b *strings.Builder, t *Table, seen map[*Table]bool) error {
	if seen[t] {
		return errors.Unsupported(errors.PhaseRuntime, "cyclic table in literal")
	}
	seen[t] = true
	defer delete(seen, t)

	b.WriteByte('{')
	first := true

	it := t.Sequence()
	var v Value
	for it.Next(&v) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		if err := writeLiteral(b, v, seen); err != nil {
			return err
		}
	}

	keys := make([]Value, 0, len(t.hash))
	for k := range t.hash {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	for _, k := range keys {
		if !first {
			b.WriteString(", ")
		}
		first = false
		if err := writeEntryKey(b, k, seen); err != nil {
			return err
		}
		b.WriteString(" = ")
		if err := writeLiteral(b, t.hash[k], seen); err != nil {
			return err
		}
	}

	b.WriteByte('}')
	return nil
}

func writeEntryKey(b *strings.Builder, k Value, seen map[*Table]bool) error {
	if s, ok := k.(String); ok && isIdentifier(string(s)) {
		b.WriteString(string(s))
		return nil
	}
	b.WriteByte('[')
	if err := writeLiteral(b, k, seen); err != nil {
		return err
	}
	b.WriteByte(']')
	return nil
}

// keyLess orders keys by type tag, then by value within a type, giving the
// literal renderer a stable associative-entry order.
func keyLess(x, y Value) bool {
	if x.Type() != y.Type() {
		return x.Type() < y.Type()
	}
	switch xv := x.(type) {
	case Integer:
		return xv < y.(Integer)
	case Number:
		return xv < y.(Number)
	case String:
		return xv < y.(String)
	case Bool:
		return !bool(xv) && bool(y.(Bool))
	default:
		return x.String() < y.String()
	}
}

var luaReserved = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

func isIdentifier(s string) bool {
	if s == "" || luaReserved[s] {
		return false
	}
	for i, r := range s {
		alpha := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !alpha && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}
