// Package fault defines the single error type used throughout the parsing
// core: every operation that can fail over untrusted byte streams reports
// one of a small, deliberately coarse set of kinds.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies why a parsing operation failed.
type Kind string

const (
	// InsufficientData means a read would cross the cursor's end offset.
	InsufficientData = Kind("insufficient data")

	// InvalidValue means a decoded value violates a structural constraint:
	// overflow, a negative count or stride, an out-of-range seek argument,
	// malformed padding, a non-member raw-representable value, a malformed
	// range, an odd-length UTF-16 buffer, a missing terminator, or a
	// zero-progress sequence parser.
	InvalidValue = Kind("invalid value")

	// UserError means a user-supplied callback returned an error, or a
	// user-facing decode (e.g. UTF-8 validation) rejected the input.
	UserError = Kind("user error")
)

// Fault is the error type surfaced by every core operation that can fail.
type Fault struct {
	Kind Kind

	// Location is the byte offset of the first offending byte, when known.
	Location *int

	// Cause, when set, is the wrapped user-supplied error (non-embedded
	// builds only; this module always embeds it).
	Cause error
}

// New creates a Fault with no location.
func New(kind Kind, msg string) *Fault {
	return &Fault{Kind: kind, Cause: fmt.Errorf("%s", msg)}
}

// At creates a Fault located at the given byte offset.
func At(kind Kind, location int, msg string) *Fault {
	loc := location
	return &Fault{Kind: kind, Location: &loc, Cause: fmt.Errorf("%s", msg)}
}

// Wrap creates a Fault of the given kind wrapping cause, located at the
// given byte offset.
func Wrap(kind Kind, location int, cause error) *Fault {
	loc := location
	return &Fault{Kind: kind, Location: &loc, Cause: cause}
}

func (f *Fault) Error() string {
	if f == nil {
		return "<nil fault>"
	}

	if f.Location != nil {
		if f.Cause != nil {
			return fmt.Sprintf("%s at offset %d: %s", f.Kind, *f.Location, f.Cause)
		}
		return fmt.Sprintf("%s at offset %d", f.Kind, *f.Location)
	}

	if f.Cause != nil {
		return fmt.Sprintf("%s: %s", f.Kind, f.Cause)
	}

	return string(f.Kind)
}

// Unwrap lets errors.Is/errors.As see through to Cause.
func (f *Fault) Unwrap() error {
	if f == nil {
		return nil
	}
	return f.Cause
}

// Is reports whether target is a *Fault with the same Kind, letting callers
// write errors.Is(err, fault.InsufficientData) style checks via KindOf
// instead (Is is provided for completeness with a bare *Fault{Kind: k}).
func (f *Fault) Is(target error) bool {
	other, ok := target.(*Fault)
	if !ok || other == nil {
		return false
	}
	return f.Kind == other.Kind
}

// KindOf reports the Kind of err if err is (or wraps) a *Fault.
func KindOf(err error) (Kind, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return "", false
}
