package luaserde

import (
	"reflect"
	"strings"
	"sync"
)

// structField describes one encodable/decodable field of a struct type.
type structField struct {
	name  string
	index []int
}

var fieldCache sync.Map // reflect.Type -> []structField

// structFields returns the fields of t in declaration order, honoring
// `lua` tags and flattening anonymous embedded structs. A shallower field
// shadows an embedded field of the same name; among fields at equal depth
// the first declared wins.
func structFields(t reflect.Type) []structField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]structField)
	}
	fields := collectFields(t)
	fieldCache.Store(t, fields)
	return fields
}

type embeddedStruct struct {
	t     reflect.Type
	index []int
}

// collectFields walks t breadth-first: all fields at one embedding depth
// claim their names before any embedded struct below them is entered.
func collectFields(t reflect.Type) []structField {
	var fields []structField
	seen := map[string]bool{}

	level := []embeddedStruct{{t: t}}
	for len(level) > 0 {
		var next []embeddedStruct
		for _, e := range level {
			for i := 0; i < e.t.NumField(); i++ {
				f := e.t.Field(i)
				tag := f.Tag.Get("lua")
				if tag == "-" {
					continue
				}

				if f.Anonymous && tag == "" && f.Type.Kind() == reflect.Struct && f.IsExported() {
					next = append(next, embeddedStruct{t: f.Type, index: childIndex(e.index, i)})
					continue
				}
				if !f.IsExported() {
					continue
				}

				name := f.Name
				if tag != "" {
					name, _, _ = strings.Cut(tag, ",")
					if name == "" {
						name = f.Name
					}
				}
				if seen[name] {
					continue
				}
				seen[name] = true

				fields = append(fields, structField{name: name, index: childIndex(e.index, i)})
			}
		}
		level = next
	}
	return fields
}

func childIndex(index []int, i int) []int {
	idx := make([]int, len(index), len(index)+1)
	copy(idx, index)
	return append(idx, i)
}
