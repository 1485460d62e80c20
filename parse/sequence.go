package parse

import (
	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
)

// CountedSequence reads exactly n items via item, collecting them in
// order. n < 0 is fault.InvalidValue. Fails (and leaves c at the point of
// failure, matching item's own failure semantics) as soon as any item call
// fails.
func CountedSequence[T any](
	c *cursor.Cursor,
	n int,
	item func(*cursor.Cursor) (T, error),
) ([]T, error) {
	if n < 0 {
		return nil, fault.At(fault.InvalidValue, c.CurrentRange().Lower, "negative item count")
	}

	result := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := item(c)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// ExhaustiveSequence repeatedly calls item until c.IsEmpty(). Fails with
// fault.InvalidValue if an iteration consumes zero bytes while the cursor
// is still non-empty, which would otherwise loop forever.
func ExhaustiveSequence[T any](
	c *cursor.Cursor,
	item func(*cursor.Cursor) (T, error),
) ([]T, error) {
	var result []T
	for !c.IsEmpty() {
		before := c.Remaining()

		v, err := item(c)
		if err != nil {
			return nil, err
		}

		if c.Remaining() == before {
			return nil, fault.At(
				fault.InvalidValue,
				c.CurrentRange().Lower,
				"sequence item made no progress")
		}

		result = append(result, v)
	}
	return result, nil
}
