package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode   Phase = "encode"   // native value to foreign value
	PhaseDecode   Phase = "decode"   // foreign value to native value
	PhaseBind     Phase = "bind"     // input argument binding
	PhaseOutput   Phase = "output"   // result slot assignment
	PhaseDispatch Phase = "dispatch" // entry-point dispatch
	PhaseHandle   Phase = "handle"   // instance registry operations
	PhaseLoad     Phase = "load"     // fixture/wire loading
)

// Kind categorizes the error
type Kind string

const (
	KindConversion        Kind = "conversion"
	KindIndex             Kind = "index"
	KindOwnership         Kind = "ownership"
	KindSignatureMismatch Kind = "signature_mismatch"
	KindHandle            Kind = "handle"
	KindInvalidInput      Kind = "invalid_input"
	KindRegistration      Kind = "registration"
	KindNotFound          Kind = "not_found"
	KindUnsupported       Kind = "unsupported"
	KindOverflow          Kind = "overflow"
	KindInvalidData       Kind = "invalid_data"
)

// Error is the structured error type used throughout the kit
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Class  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Class != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Class != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", foreign class ")
			b.WriteString(e.Class)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("foreign class ")
			b.WriteString(e.Class)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Class != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the element/field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Class sets the foreign class name
func (b *Builder) Class(c string) *Builder {
	b.err.Class = c
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Conversion creates a conversion error between a foreign class and a Go type
func Conversion(phase Phase, path []string, goType, class string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConversion,
		Path:   path,
		GoType: goType,
		Class:  class,
	}
}

// Index creates an out-of-range index error
func Index(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIndex,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// FieldUnknown creates an index error for an undefined struct field
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIndex,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", fieldName),
	}
}

// Ownership creates an ownership misuse error
func Ownership(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOwnership,
		Detail: detail,
	}
}

// Handle creates an unknown-handle error
func Handle(id uint64) *Error {
	return &Error{
		Phase:  PhaseHandle,
		Kind:   KindHandle,
		Detail: fmt.Sprintf("unknown handle %d", id),
		Value:  id,
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

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		GoType: targetType,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Registration creates a registration error
func Registration(phase Phase, name string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Detail: fmt.Sprintf("register %q", name),
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// SignatureDesc describes one declared call signature for diagnostics
type SignatureDesc struct {
	Name     string
	Required int
	Options  []string
}

func (d SignatureDesc) String() string {
	var b strings.Builder
	if d.Name != "" {
		b.WriteString(d.Name)
	} else {
		b.WriteString("(unnamed)")
	}
	fmt.Fprintf(&b, ": %d required", d.Required)
	if len(d.Options) > 0 {
		b.WriteString(", options [")
		b.WriteString(strings.Join(d.Options, ", "))
		b.WriteByte(']')
	}
	return b.String()
}

// SignatureMismatchError is returned when no declared call signature
// matches the supplied argument vector
type SignatureMismatchError struct {
	Supplied   int
	Signatures []SignatureDesc
}

func (e *SignatureMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[bind] signature_mismatch: %d argument(s) match none of %d declared signature(s):",
		e.Supplied, len(e.Signatures))
	for _, sig := range e.Signatures {
		b.WriteString("\n  ")
		b.WriteString(sig.String())
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *SignatureMismatchError) Is(target error) bool {
	_, ok := target.(*SignatureMismatchError)
	return ok
}
