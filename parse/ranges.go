package parse

import (
	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
	"github.com/pattyshack/bparse/numeric"
)

// RangeStartCount reads a start offset and a count via bound, and returns
// the Range [start, start+count). count must be non-negative; start+count
// is computed via numeric.CheckedAdd to guard overflow.
//
// Deprecated: prefer RangeStartEnd plus a separate start+count computation
// at the call site; this constructor is kept for input that is naturally a
// base-plus-length pair. No package in this module calls it.
func RangeStartCount(
	c *cursor.Cursor,
	bound func(*cursor.Cursor) (int, error),
) (cursor.Range, error) {
	start, err := bound(c)
	if err != nil {
		return cursor.Range{}, err
	}

	count, err := bound(c)
	if err != nil {
		return cursor.Range{}, err
	}
	if count < 0 {
		return cursor.Range{}, fault.At(fault.InvalidValue, c.CurrentRange().Lower, "negative count")
	}

	upper, err := numeric.CheckedAdd(start, count)
	if err != nil {
		return cursor.Range{}, fault.At(fault.InvalidValue, c.CurrentRange().Lower, "start+count overflows")
	}

	return cursor.Range{Lower: start, Upper: upper}, nil
}

// RangeStartEnd reads two bounds via bound and returns them as a Range.
// When closed is true the second bound is inclusive and is converted to an
// exclusive upper bound by adding 1 (via numeric.CheckedAdd). Fails with
// fault.InvalidValue if the resulting lower > upper.
func RangeStartEnd(
	c *cursor.Cursor,
	bound func(*cursor.Cursor) (int, error),
	closed bool,
) (cursor.Range, error) {
	lower, err := bound(c)
	if err != nil {
		return cursor.Range{}, err
	}

	upper, err := bound(c)
	if err != nil {
		return cursor.Range{}, err
	}

	if closed {
		upper, err = numeric.CheckedAdd(upper, 1)
		if err != nil {
			return cursor.Range{}, fault.At(fault.InvalidValue, c.CurrentRange().Lower, "closed upper bound overflows")
		}
	}

	if lower > upper {
		return cursor.Range{}, fault.At(fault.InvalidValue, c.CurrentRange().Lower, "range lower exceeds upper")
	}

	return cursor.Range{Lower: lower, Upper: upper}, nil
}
