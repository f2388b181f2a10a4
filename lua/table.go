package lua

import (
	"fmt"
	"math"

	"github.com/zrkn/rlua-serde/errors"
)

// Table is the hybrid array/hash container. The sequential part holds the
// contiguous run of non-nil values at integer keys 1..Len(); everything else
// lives in the hash part. A *Table is a shared handle into runtime-owned
// storage: copying the pointer does not copy the contents.
type Table struct {
	arr  []Value
	hash map[Value]Value
}

func (*Table) Type() Type { return TypeTable }

func (t *Table) String() string { return fmt.Sprintf("table: %p", t) }

// normalizeKey rejects nil and NaN keys and folds integral Number keys into
// Integer keys. Returned errors carry the runtime phase.
func normalizeKey(key Value) (Value, *errors.Error) {
	switch k := key.(type) {
	case nil, NilType:
		return nil, errors.InvalidKey(errors.PhaseRuntime, "table index is nil")
	case Number:
		if math.IsNaN(float64(k)) {
			return nil, errors.InvalidKey(errors.PhaseRuntime, "table index is NaN")
		}
		nk, _ := numberToIntegerKey(k)
		return nk, nil
	default:
		return key, nil
	}
}

// Get returns the value stored at key, or Nil if the key is absent.
// Nil and NaN keys read as absent.
func (t *Table) Get(key Value) Value {
	key, err := normalizeKey(key)
	if err != nil {
		return Nil
	}

	if i, ok := key.(Integer); ok {
		if idx := int64(i); idx >= 1 && idx <= int64(len(t.arr)) {
			return t.arr[idx-1]
		}
	}
	if v, ok := t.hash[key]; ok {
		return v
	}
	return Nil
}

// Set stores value at key. Assigning Nil removes the key. Nil and NaN keys
// are errors. Setting the element just past the sequential run extends it
// and migrates any now-contiguous hash entries into the array part, so Len
// stays the true border.
func (t *Table) Set(key, value Value) error {
	key, kerr := normalizeKey(key)
	if kerr != nil {
		return kerr
	}
	if value == nil {
		value = Nil
	}

	if i, ok := key.(Integer); ok {
		idx, n := int64(i), int64(len(t.arr))
		switch {
		case idx >= 1 && idx <= n:
			if IsNil(value) {
				t.removeSequential(idx)
			} else {
				t.arr[idx-1] = value
			}
			return nil
		case idx == n+1 && !IsNil(value):
			t.arr = append(t.arr, value)
			t.migrateSequential()
			return nil
		}
	}

	if IsNil(value) {
		delete(t.hash, key)
		return nil
	}
	if t.hash == nil {
		t.hash = make(map[Value]Value)
	}
	t.hash[key] = value
	return nil
}

// removeSequential deletes position idx from the array part. Elements past
// the new border spill into the hash part, keeping their integer keys.
func (t *Table) removeSequential(idx int64) {
	n := int64(len(t.arr))
	if idx == n {
		t.arr[n-1] = nil
		t.arr = t.arr[:n-1]
		return
	}
	if t.hash == nil {
		t.hash = make(map[Value]Value)
	}
	for j := idx; j < n; j++ {
		t.hash[Integer(j+1)] = t.arr[j]
		t.arr[j] = nil
	}
	t.arr = t.arr[:idx-1]
}

// migrateSequential pulls hash entries that became contiguous with the
// array part back into it.
func (t *Table) migrateSequential() {
	for {
		next := Integer(int64(len(t.arr)) + 1)
		v, ok := t.hash[next]
		if !ok {
			break
		}
		delete(t.hash, next)
		t.arr = append(t.arr, v)
	}
}

// Len returns the border: the count of the contiguous run of non-nil
// integer keys starting at 1.
func (t *Table) Len() int { return len(t.arr) }

// Size returns the total number of entries, sequential and associative.
func (t *Table) Size() int { return len(t.arr) + len(t.hash) }

// Pairs returns an iterator over every key/value entry. The sequential run
// comes first in index order; associative entries follow in unspecified
// order. The table must not be mutated while iterating.
func (t *Table) Pairs() *PairIterator {
	var keys []Value
	if len(t.hash) > 0 {
		keys = make([]Value, 0, len(t.hash))
		for k := range t.hash {
			keys = append(keys, k)
		}
	}
	return &PairIterator{t: t, keys: keys}
}

// PairIterator walks all entries of a table.
type PairIterator struct {
	t    *Table
	keys []Value
	i    int
}

// Next stores the next key/value entry into *k and *v and reports whether
// one was available.
func (it *PairIterator) Next(k, v *Value) bool {
	if it.i < len(it.t.arr) {
		*k = Integer(it.i + 1)
		*v = it.t.arr[it.i]
		it.i++
		return true
	}
	j := it.i - len(it.t.arr)
	if j < len(it.keys) {
		key := it.keys[j]
		*k = key
		*v = it.t.hash[key]
		it.i++
		return true
	}
	return false
}

// Sequence returns an iterator over the sequential run only.
func (t *Table) Sequence() *SeqIterator {
	return &SeqIterator{t: t}
}

// SeqIterator walks the contiguous 1-based run of a table.
type SeqIterator struct {
	t *Table
	i int
}

// Next stores the next sequential value into *v and reports whether one was
// available.
func (it *SeqIterator) Next(v *Value) bool {
	if it.i >= len(it.t.arr) {
		return false
	}
	*v = it.t.arr[it.i]
	it.i++
	return true
}
