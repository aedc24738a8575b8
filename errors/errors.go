package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister  Phase = "register"  // type registration
	PhaseConstruct Phase = "construct" // instance construction
	PhaseFlatten   Phase = "flatten"   // decomposition into children and metadata
	PhaseUnflatten Phase = "unflatten" // reconstruction from children and metadata
)

// Kind categorizes the error
type Kind string

const (
	KindAlreadyRegistered   Kind = "already_registered"
	KindUnsafeInitOverwrite Kind = "unsafe_init_overwrite"
	KindFieldOrderMismatch  Kind = "field_order_mismatch"
	KindRedundantOption     Kind = "redundant_option"
	KindMissingCodec        Kind = "missing_codec"
	KindUninitializedField  Kind = "uninitialized_field"
	KindAbstractType        Kind = "abstract_type"
	KindLengthMismatch      Kind = "length_mismatch"
	KindNotRegistered       Kind = "not_registered"
	KindUnexportedField     Kind = "unexported_field"
	KindUnknownField        Kind = "unknown_field"
	KindTypeMismatch        Kind = "type_mismatch"
	KindUnsupported         Kind = "unsupported"
	KindInvalidInput        Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Field  string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.GoType != "" {
		b.WriteString(": type ")
		b.WriteString(e.GoType)
	}

	if e.Field != "" {
		if e.GoType != "" {
			b.WriteString(", field ")
		} else {
			b.WriteString(": field ")
		}
		b.WriteString(e.Field)
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Field != "" {
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

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Field sets the offending field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
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

// AlreadyRegistered reports a second registration of the same type
func AlreadyRegistered(goType string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindAlreadyRegistered,
		GoType: goType,
		Detail: "type is already registered as a tree node",
	}
}

// UnsafeInitOverwrite reports that a generated initializer would silently
// replace a hand-written initializer inherited from an embedded parent
func UnsafeInitOverwrite(goType, parent string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindUnsafeInitOverwrite,
		GoType: goType,
		Detail: fmt.Sprintf(
			"a generated initializer would discard the custom initializer of embedded %s; "+
				"register with WithOverwriteInheritedInit, WithoutGeneratedInit, or supply WithInit",
			parent),
	}
}

// FieldOrderMismatch reports that the declared field list diverges from the
// effective field list
func FieldOrderMismatch(goType string, declared, effective []string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindFieldOrderMismatch,
		GoType: goType,
		Detail: fmt.Sprintf(
			"declared fields [%s] do not match effective fields [%s]; "+
				"promoted fields from embedded structs require WithInheritedFields",
			strings.Join(declared, " "), strings.Join(effective, " ")),
	}
}

// RedundantOption reports a meaningless opt-in
func RedundantOption(goType, option string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRedundantOption,
		GoType: goType,
		Detail: fmt.Sprintf("%s given but the type has no field it applies to", option),
	}
}

// MissingCodec reports a type that does not satisfy the tree-codec contract
func MissingCodec(goType string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindMissingCodec,
		GoType: goType,
		Detail: "type does not implement Node; embed structree.Struct",
	}
}

// UninitializedField reports a field never assigned during construction
func UninitializedField(phase Phase, goType, field string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUninitializedField,
		GoType: goType,
		Field:  field,
		Detail: "no value assigned for field",
	}
}

// AbstractType reports construction of a type that was never registered
func AbstractType(goType string) *Error {
	return &Error{
		Phase:  PhaseConstruct,
		Kind:   KindAbstractType,
		GoType: goType,
		Detail: "type is not registered; embedding a registered type does not register the embedder",
	}
}

// LengthMismatch reports a children/metadata length divergence
func LengthMismatch(goType string, want, got int) *Error {
	return &Error{
		Phase:  PhaseUnflatten,
		Kind:   KindLengthMismatch,
		GoType: goType,
		Detail: fmt.Sprintf("metadata records %d child fields but %d children given", want, got),
	}
}

// NotRegistered reports a codec operation on an unregistered value
func NotRegistered(phase Phase, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotRegistered,
		GoType: goType,
		Detail: "value's type is not a registered tree node",
	}
}

// UnexportedField reports a field the codec could not reconstruct
func UnexportedField(goType, field string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindUnexportedField,
		GoType: goType,
		Field:  field,
		Detail: "unexported fields cannot round-trip through the tree codec",
	}
}

// UnknownField reports a field name absent from the type's declaration
func UnknownField(phase Phase, goType, field string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownField,
		GoType: goType,
		Field:  field,
		Detail: "no such field declared on type",
	}
}

// TypeMismatch reports a value not assignable to its field
func TypeMismatch(phase Phase, goType, field, got, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		GoType: goType,
		Field:  field,
		Detail: fmt.Sprintf("value of type %s is not assignable to %s", got, want),
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: detail,
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
