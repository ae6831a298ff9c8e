// Package modelerr defines the error taxonomy shared by every component of
// the address space. All failures are reported synchronously, leave the
// model unchanged, and can be matched with errors.Is against the sentinels
// declared here.
package modelerr

import (
	"errors"
	"fmt"
)

// Standard sentinels. Every error produced by the model wraps exactly one.
var (
	// ErrNotFound reports a lookup miss: an unknown node, browse name,
	// enumeration name or value, or a raw enum value outside the definition.
	ErrNotFound = errors.New("not found")
	// ErrInvalidEnumValue reports a candidate of acceptable shape that does
	// not resolve to a member of the enumeration.
	ErrInvalidEnumValue = errors.New("invalid enumeration value")
	// ErrInvalidArgumentType reports a candidate whose shape is neither an
	// integer nor a string.
	ErrInvalidArgumentType = errors.New("invalid argument type")
	// ErrDuplicateDefinition reports a repeated enumeration name or value, or
	// an explicit node id that is already taken.
	ErrDuplicateDefinition = errors.New("duplicate definition")
	// ErrReferenceIntegrity reports a reference whose endpoints or type do
	// not resolve, or a subtype edge that would close a cycle.
	ErrReferenceIntegrity = errors.New("reference integrity violation")
	// ErrInvalidDefinition reports a malformed definition: an empty
	// enumeration, an empty name, or a value outside the int32 range.
	ErrInvalidDefinition = errors.New("invalid definition")
	// ErrTypeMismatch reports a value whose built-in type tag does not match
	// the declared data type of a variable.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrDisposed reports an operation on an address space after Dispose.
	ErrDisposed = errors.New("address space disposed")
)

// Error carries the failing operation and a human readable detail alongside
// the sentinel it classifies as.
type Error struct {
	Op     string
	Err    error
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Detail == "":
		return e.Err.Error()
	case e.Op == "":
		return fmt.Sprintf("%s: %s", e.Err, e.Detail)
	case e.Detail == "":
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Err, e.Detail)
}

// Unwrap returns the sentinel.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error for op classified as sentinel. The detail is
// formatted with fmt.Sprintf semantics.
func New(op string, sentinel error, format string, args ...any) error {
	if sentinel == nil {
		panic("modelerr: nil sentinel")
	}
	return &Error{Op: op, Err: sentinel, Detail: fmt.Sprintf(format, args...)}
}

// Reason returns a short, stable label for the sentinel that err wraps,
// suitable for metric labels and structured log attributes.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidEnumValue):
		return "invalid_enum_value"
	case errors.Is(err, ErrInvalidArgumentType):
		return "invalid_argument_type"
	case errors.Is(err, ErrDuplicateDefinition):
		return "duplicate_definition"
	case errors.Is(err, ErrReferenceIntegrity):
		return "reference_integrity"
	case errors.Is(err, ErrInvalidDefinition):
		return "invalid_definition"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrDisposed):
		return "disposed"
	}
	return "unknown"
}
