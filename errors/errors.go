package errors

import (
	"fmt"
	"strings"
)

// Phase says which side of the conversion an error belongs to.
type Phase string

const (
	PhaseEncode  Phase = "encode"  // Go to Lua
	PhaseDecode  Phase = "decode"  // Lua to Go
	PhaseRuntime Phase = "runtime" // value allocation and table operations
)

// Kind is the error category.
type Kind string

const (
	KindTypeMismatch   Kind = "type_mismatch"
	KindLengthMismatch Kind = "length_mismatch"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindAllocation     Kind = "allocation"
	KindOverflow       Kind = "overflow"
	KindInvalidVariant Kind = "invalid_variant"
	KindInvalidKey     Kind = "invalid_key"
	KindUnsupported    Kind = "unsupported"
	KindCustom         Kind = "custom"
)

// Error describes a failed conversion or runtime operation. Phase and Kind
// drive errors.Is matching; the remaining fields carry message context.
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	LuaType string
	Detail  string
	Path    []string
}

// Error renders the phase, kind, path and whatever context is set as one
// line, with the cause chain appended.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Phase, e.Kind)

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	switch {
	case e.GoType != "" && e.LuaType != "":
		fmt.Fprintf(&b, ": Go type %s, Lua type %s", e.GoType, e.LuaType)
	case e.GoType != "":
		fmt.Fprintf(&b, ": Go type %s", e.GoType)
	case e.LuaType != "":
		fmt.Fprintf(&b, ": Lua type %s", e.LuaType)
	}

	if e.Detail != "" {
		if e.GoType != "" || e.LuaType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %s)", e.Cause)
	}

	return b.String()
}

// Unwrap exposes the cause to errors.Is chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same phase and kind, regardless of the
// context fields.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder assembles an Error field by field. Start with New, chain the
// context setters, finish with Build.
type Builder struct {
	err Error
}

// New starts a builder for the given phase and kind.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{err: Error{Phase: phase, Kind: kind}}
}

// Path records where in the structure the error occurred.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType records the Go side of the failed conversion.
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// LuaType records the Lua side of the failed conversion.
func (b *Builder) LuaType(t string) *Builder {
	b.err.LuaType = t
	return b
}

// Value records the offending value.
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause records the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail formats the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	b.err.Detail = msg
	return b
}

// Build returns the assembled error.
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, luaType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindTypeMismatch,
		Path:    path,
		GoType:  goType,
		LuaType: luaType,
	}
}

// LengthMismatch creates a length mismatch error for sequences and tuples
func LengthMismatch(phase Phase, path []string, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindLengthMismatch,
		Path:   path,
		Detail: fmt.Sprintf("expected %d elements, got %d", want, got),
		Value:  got,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, what string, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %s of size %d", what, size),
		Value:  size,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		GoType: targetType,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// InvalidVariant creates a malformed enum value error
func InvalidVariant(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidVariant,
		Path:   path,
		Detail: detail,
	}
}

// InvalidKey creates an invalid table key error
func InvalidKey(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidKey,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Custom creates a message-carrying error raised outside the codec core.
// The phase records whether the message originated while converting toward
// a Lua value or away from one.
func Custom(phase Phase, msg string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCustom,
		Detail: msg,
	}
}
