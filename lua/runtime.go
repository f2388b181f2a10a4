package lua

import (
	"github.com/zrkn/rlua-serde/errors"
)

// Default allocation limits.
const (
	DefaultMaxStringSize = 16 << 20 // 16 MB per string
	DefaultMaxTables     = 1 << 20  // live tables per runtime
)

// Limits bounds what a Runtime will allocate. Zero fields take the defaults.
type Limits struct {
	MaxStringSize int
	MaxTables     int
}

func (l Limits) withDefaults() Limits {
	if l.MaxStringSize == 0 {
		l.MaxStringSize = DefaultMaxStringSize
	}
	if l.MaxTables == 0 {
		l.MaxTables = DefaultMaxTables
	}
	return l
}

// Runtime is the allocation context that owns string and table storage.
// It is not safe for concurrent use.
type Runtime struct {
	limits Limits
	tables int
}

// NewRuntime creates a runtime with default limits.
func NewRuntime() *Runtime {
	return NewRuntimeWithLimits(Limits{})
}

// NewRuntimeWithLimits creates a runtime with explicit limits.
func NewRuntimeWithLimits(l Limits) *Runtime {
	return &Runtime{limits: l.withDefaults()}
}

// NewString allocates a runtime string from s.
func (rt *Runtime) NewString(s string) (String, error) {
	if len(s) > rt.limits.MaxStringSize {
		return "", errors.AllocationFailed(errors.PhaseRuntime, "string", len(s))
	}
	return String(s), nil
}

// NewTable allocates an empty table owned by this runtime.
func (rt *Runtime) NewTable() (*Table, error) {
	if rt.tables >= rt.limits.MaxTables {
		return nil, errors.AllocationFailed(errors.PhaseRuntime, "table", rt.tables+1)
	}
	rt.tables++
	return &Table{}, nil
}
