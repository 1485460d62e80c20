// Package numeric supplies the overflow-aware arithmetic and bounded
// indexing vocabulary used to compute sizes, counts, and offsets from
// untrusted decoded values without triggering wraparound, division-by-zero,
// or out-of-bounds access.
//
// Every operation exists in two parallel forms: a Maybe-returning form that
// reports failure by returning an absent optional, and a Checked form that
// reports failure as a *fault.Fault{Kind: InvalidValue}. The fault-returning
// form is primitive; the Maybe-returning form is a thin wrapper that
// discards the fault (per the host specification's Design Notes: the
// natural primitive in a systems language is the fault-returning sum type).
package numeric

import (
	"github.com/pattyshack/bparse/fault"
)

// Integer is the set of built-in integer types this package, and the rest
// of this module's core, operates over.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Maybe is an optional value: Present reports whether Value is meaningful.
type Maybe[T any] struct {
	Value   T
	Present bool
}

// Some wraps v as a present Maybe.
func Some[T any](v T) Maybe[T] {
	return Maybe[T]{Value: v, Present: true}
}

// None is the absent Maybe for T.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// Get returns (v.Value, true) if present, else the zero value and false.
func (v Maybe[T]) Get() (T, bool) {
	return v.Value, v.Present
}

func overflow(msg string) error {
	return fault.New(fault.InvalidValue, msg)
}

func divideByZero() error {
	return fault.New(fault.InvalidValue, "division by zero")
}

func malformedRange() error {
	return fault.New(fault.InvalidValue, "malformed range: lower > upper")
}

// isSigned reports, at the type's fixed instantiation, whether T is a
// signed integer type. T-- on an unsigned zero wraps to its max value
// (non-negative); on a signed zero it becomes -1 (negative).
func isSigned[T Integer]() bool {
	var zero T
	zero--
	return zero < 0
}

// minusOne returns T(-1) without writing an untyped -1 literal, which would
// fail to compile for unsigned instantiations of T.
func minusOne[T Integer]() T {
	var zero T
	zero--
	return zero
}

// minSigned returns the minimum representable value of T, valid to call
// only when isSigned[T]() is true (its result is meaningless, but still
// well-defined Go, for unsigned T).
func minSigned[T Integer]() T {
	return T(1) << uint(bitWidth[T]()-1)
}

// bitWidth returns the bit width of T, selected by a switch on T's
// underlying built-in type (int/uint count as 64-bit).
func bitWidth[T Integer]() int {
	switch any(T(0)).(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32:
		return 32
	default:
		return 64
	}
}

// CheckedAdd returns a+b, or a *fault.Fault{Kind: InvalidValue} on overflow.
func CheckedAdd[T Integer](a, b T) (T, error) {
	sum := a + b
	if isSigned[T]() {
		if (b > 0 && sum < a) || (b < 0 && sum > a) {
			return 0, overflow("addition overflows")
		}
		return sum, nil
	}

	if sum < a {
		return 0, overflow("addition overflows")
	}
	return sum, nil
}

// CheckedSub returns a-b, or a *fault.Fault{Kind: InvalidValue} on overflow
// (for unsigned T, "overflow" means underflow past zero).
func CheckedSub[T Integer](a, b T) (T, error) {
	diff := a - b
	if isSigned[T]() {
		if (b < 0 && diff < a) || (b > 0 && diff > a) {
			return 0, overflow("subtraction overflows")
		}
		return diff, nil
	}

	if b > a {
		return 0, overflow("subtraction underflows")
	}
	return diff, nil
}

// CheckedMul returns a*b, or a *fault.Fault{Kind: InvalidValue} on overflow.
func CheckedMul[T Integer](a, b T) (T, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}

	// -1 * MinInt overflows (the result, MinInt's negation, doesn't fit) but
	// the product/a != b check below can't see it: product wraps back to
	// MinInt, and MinInt/-1 is itself the one division that wraps back to
	// MinInt (Go's documented MinInt/-1 special case), so the check
	// spuriously passes. Special-case it the same way CheckedDiv/CheckedMod
	// special-case MinInt/-1.
	if isSigned[T]() {
		if a == minusOne[T]() && b == minSigned[T]() {
			return 0, overflow("multiplication overflows")
		}
		if b == minusOne[T]() && a == minSigned[T]() {
			return 0, overflow("multiplication overflows")
		}
	}

	product := a * b
	if product/a != b {
		return 0, overflow("multiplication overflows")
	}
	return product, nil
}

// CheckedDiv returns a/b, or a *fault.Fault{Kind: InvalidValue} on division
// by zero or (signed only) on the single overflowing case MinInt / -1.
func CheckedDiv[T Integer](a, b T) (T, error) {
	var zero T
	if b == zero {
		return 0, divideByZero()
	}

	if isSigned[T]() && a == minSigned[T]() && b == minusOne[T]() {
		return 0, overflow("division overflows")
	}

	return a / b, nil
}

// CheckedMod returns a%b, or a *fault.Fault{Kind: InvalidValue} on modulo by
// zero or (signed only) on the single overflowing case MinInt % -1.
func CheckedMod[T Integer](a, b T) (T, error) {
	var zero T
	if b == zero {
		return 0, divideByZero()
	}

	if isSigned[T]() && a == minSigned[T]() && b == minusOne[T]() {
		return 0, nil
	}

	return a % b, nil
}

// CheckedNeg returns -a, or a *fault.Fault{Kind: InvalidValue} if a is the
// minimum representable (signed only) value, whose negation cannot be
// represented.
func CheckedNeg[T Integer](a T) (T, error) {
	if isSigned[T]() && a == minSigned[T]() {
		return 0, overflow("negation overflows")
	}
	return -a, nil
}

// CheckedHalfOpenRange validates lower <= upper and returns them as-is; it
// exists so range construction goes through the same failure vocabulary as
// arithmetic (a malformed range is as much a structural violation as an
// overflowing sum).
func CheckedHalfOpenRange[T Integer](lower, upper T) (T, T, error) {
	if lower > upper {
		return 0, 0, malformedRange()
	}
	return lower, upper, nil
}

// CheckedClosedRange validates lower <= upper for an inclusive [lower,
// upper] range.
func CheckedClosedRange[T Integer](lower, upper T) (T, T, error) {
	if lower > upper {
		return 0, 0, malformedRange()
	}
	return lower, upper, nil
}

// CheckedConvert losslessly converts a value of type S to type D, failing
// with *fault.Fault{Kind: InvalidValue} if the value is not representable
// in D (bits must be preserved exactly, matching the host specification's
// load-and-convert contract).
func CheckedConvert[D Integer, S Integer](v S) (D, error) {
	d := D(v)

	// Round-trip back to the *source* type S, which by construction can hold
	// v exactly, and compare there so the comparison never itself overflows.
	back := S(d)
	if back != v {
		return 0, overflow("value not representable in destination type")
	}

	// Converting between a negative source and an unsigned destination can
	// round-trip falsely when both types share a bit pattern (e.g. -1 as
	// int8 becomes 0xFF as uint8, which round-trips to -1 again). Guard
	// explicitly: a negative source must never land in an unsigned
	// destination.
	if isSigned[S]() && !isSigned[D]() && v < 0 {
		return 0, overflow("negative value not representable in unsigned type")
	}

	// The opposite direction round-trips falsely too: an unsigned source
	// whose high bit is set (e.g. uint8(200)) converts to a same-width
	// signed destination via bit-reinterpretation (int8(-56)), and
	// converting that back to the unsigned source type is the same
	// bit-reinterpretation in reverse, so back == v even though 200 is not
	// representable as int8. A non-negative source can only ever convert to
	// a negative destination through exactly this kind of reinterpretation
	// (widening a non-negative value never produces a negative result), so
	// this guard is exact regardless of S/D's relative widths.
	if !isSigned[S]() && isSigned[D]() && d < 0 {
		return 0, overflow("value not representable in destination type")
	}

	return d, nil
}

// --- Maybe-returning surface: thin wrappers over the Checked* primitives ---

// MaybeAdd is CheckedAdd discarding the fault.
func MaybeAdd[T Integer](a, b T) Maybe[T] {
	v, err := CheckedAdd(a, b)
	return toMaybe(v, err)
}

// MaybeSub is CheckedSub discarding the fault.
func MaybeSub[T Integer](a, b T) Maybe[T] {
	v, err := CheckedSub(a, b)
	return toMaybe(v, err)
}

// MaybeMul is CheckedMul discarding the fault.
func MaybeMul[T Integer](a, b T) Maybe[T] {
	v, err := CheckedMul(a, b)
	return toMaybe(v, err)
}

// MaybeDiv is CheckedDiv discarding the fault.
func MaybeDiv[T Integer](a, b T) Maybe[T] {
	v, err := CheckedDiv(a, b)
	return toMaybe(v, err)
}

// MaybeMod is CheckedMod discarding the fault.
func MaybeMod[T Integer](a, b T) Maybe[T] {
	v, err := CheckedMod(a, b)
	return toMaybe(v, err)
}

// MaybeNeg is CheckedNeg discarding the fault.
func MaybeNeg[T Integer](a T) Maybe[T] {
	v, err := CheckedNeg(a)
	return toMaybe(v, err)
}

// MaybeConvert is CheckedConvert discarding the fault.
func MaybeConvert[D Integer, S Integer](v S) Maybe[D] {
	d, err := CheckedConvert[D](v)
	return toMaybe(d, err)
}

// MaybeHalfOpenRange is CheckedHalfOpenRange discarding the fault, returning
// the pair as two Maybes that are both present iff lower <= upper.
func MaybeHalfOpenRange[T Integer](lower, upper T) (Maybe[T], Maybe[T]) {
	l, u, err := CheckedHalfOpenRange(lower, upper)
	if err != nil {
		return None[T](), None[T]()
	}
	return Some(l), Some(u)
}

// MaybeClosedRange is CheckedClosedRange discarding the fault.
func MaybeClosedRange[T Integer](lower, upper T) (Maybe[T], Maybe[T]) {
	l, u, err := CheckedClosedRange(lower, upper)
	if err != nil {
		return None[T](), None[T]()
	}
	return Some(l), Some(u)
}

func toMaybe[T Integer](v T, err error) Maybe[T] {
	if err != nil {
		return None[T]()
	}
	return Some(v)
}
