package numeric

import "github.com/pattyshack/bparse/fault"

func outOfBounds(msg string) error {
	return fault.New(fault.InvalidValue, msg)
}

// At returns seq[i] if i is a valid index, else an absent Maybe.
func At[T any](seq []T, i int) Maybe[T] {
	if i < 0 || i >= len(seq) {
		return None[T]()
	}
	return Some(seq[i])
}

// CheckedAt returns seq[i], or a *fault.Fault{Kind: InvalidValue} if i is
// out of bounds.
func CheckedAt[T any](seq []T, i int) (T, error) {
	if i < 0 || i >= len(seq) {
		var zero T
		return zero, outOfBounds("index out of bounds")
	}
	return seq[i], nil
}

// Slice returns seq[lower:upper] if the bounds are valid (0 <= lower <=
// upper <= len(seq)), else an absent Maybe.
func Slice[T any](seq []T, lower, upper int) Maybe[[]T] {
	if lower < 0 || lower > upper || upper > len(seq) {
		return None[[]T]()
	}
	return Some(seq[lower:upper])
}

// CheckedSlice returns seq[lower:upper], or a *fault.Fault{Kind:
// InvalidValue} if the bounds are invalid.
func CheckedSlice[T any](seq []T, lower, upper int) ([]T, error) {
	if lower < 0 || lower > upper || upper > len(seq) {
		return nil, outOfBounds("slice bounds out of range")
	}
	return seq[lower:upper], nil
}
