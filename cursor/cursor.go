// Package cursor implements the memory-safe byte-region view at the base of
// this parsing library: a borrowed, non-escaping handle over a contiguous
// immutable byte region, with bounds-checked movement, sub-region slicing,
// and deferred-range handoff.
//
// A Cursor never outlives the region it was built from (its Region is an
// unexported pointer shared by every cursor and sub-cursor derived from the
// same source); callers obtain a Cursor only through a bytesource.Source's
// scoped callback, never by storing one past the call that produced it.
package cursor

import (
	"unicode/utf8"

	"github.com/pattyshack/bparse/fault"
	"github.com/pattyshack/bparse/numeric"
)

// Region is the fixed, immutable backing byte sequence shared by a cursor
// and every cursor derived from it by slicing. It is never mutated after
// creation.
type Region struct {
	content []byte
}

// Len returns the region's total length.
func (r *Region) Len() int {
	return len(r.content)
}

// Cursor is a view over a Region with a movable start offset and (usually
// fixed) end offset. Zero value is not usable; construct with NewCursor.
//
// All mutating operations take *Cursor receivers: a Cursor is meant to be
// passed around by exclusive mutable reference, exactly like the teacher's
// *dwarf.Cursor, never shared across concurrent parsers.
type Cursor struct {
	region *Region
	start  int
	end    int
}

// NewCursor builds a Cursor spanning the whole of content. The returned
// cursor (and any cursor sliced from it) shares content's backing array;
// content must not be mutated afterward.
func NewCursor(content []byte) *Cursor {
	r := &Region{content: content}
	return &Cursor{region: r, start: 0, end: len(content)}
}

// RegionLength returns the fixed length of the underlying region, which may
// exceed Remaining() for a cursor produced by slicing.
func (c *Cursor) RegionLength() int {
	return c.region.Len()
}

// Remaining returns the number of bytes still readable.
func (c *Cursor) Remaining() int {
	return c.end - c.start
}

// IsEmpty reports whether Remaining() == 0.
func (c *Cursor) IsEmpty() bool {
	return c.start == c.end
}

// CurrentRange returns the cursor's (start, end) as a deferred Range.
func (c *Cursor) CurrentRange() Range {
	return Range{Lower: c.start, Upper: c.end}
}

// Bytes lends a read-only view of the remaining bytes. The returned slice
// must not be retained past the cursor's own lifetime or mutated.
func (c *Cursor) Bytes() []byte {
	return c.region.content[c.start:c.end]
}

// clone returns a value copy of the cursor (same region pointer, same
// offsets); used internally by Atomically and the seek/slice "Copy" variants.
func (c *Cursor) clone() Cursor {
	return Cursor{region: c.region, start: c.start, end: c.end}
}

// Clone returns an independent cursor over the same region and current
// offsets. Mutating the clone never affects c.
func (c *Cursor) Clone() Cursor {
	return c.clone()
}

func insufficientData(at int) error {
	return fault.At(fault.InsufficientData, at, "read past end of cursor")
}

func invalidValue(at int, msg string) error {
	return fault.At(fault.InvalidValue, at, msg)
}

// SliceSpanByBytes splits off a new cursor covering the next n bytes and
// advances the receiver past them. Requires n >= 0 and n <= Remaining();
// fails with fault.InvalidValue for a negative n, fault.InsufficientData if
// n exceeds what remains. The cursor is unchanged on failure.
func (c *Cursor) SliceSpanByBytes(n int) (Cursor, error) {
	if n < 0 {
		return Cursor{}, invalidValue(c.start, "negative byte count")
	}
	if n > c.Remaining() {
		return Cursor{}, insufficientData(c.start)
	}

	child := Cursor{region: c.region, start: c.start, end: c.start + n}
	c.start += n
	return child, nil
}

// SliceSpanByStride is SliceSpanByBytes(stride*count), with the product
// computed via the same overflow-checked algebra used for user-space
// arithmetic (see the numeric package). Negative operands or an overflowing
// product fail with fault.InvalidValue; a non-overflowing but
// out-of-range product fails with fault.InsufficientData.
func (c *Cursor) SliceSpanByStride(stride int, count int) (Cursor, error) {
	n, err := stridedByteCount(c.start, stride, count)
	if err != nil {
		return Cursor{}, err
	}
	return c.SliceSpanByBytes(n)
}

// SliceRangeByBytes is SliceSpanByBytes but returns a deferred Range.
func (c *Cursor) SliceRangeByBytes(n int) (Range, error) {
	child, err := c.SliceSpanByBytes(n)
	if err != nil {
		return Range{}, err
	}
	return child.CurrentRange(), nil
}

// SliceRangeByStride is SliceSpanByStride but returns a deferred Range.
func (c *Cursor) SliceRangeByStride(stride int, count int) (Range, error) {
	n, err := stridedByteCount(c.start, stride, count)
	if err != nil {
		return Range{}, err
	}
	return c.SliceRangeByBytes(n)
}

// SliceRemainingRange returns the current range and advances the cursor to
// its end. Never fails.
func (c *Cursor) SliceRemainingRange() Range {
	r := c.CurrentRange()
	c.start = c.end
	return r
}

// SliceValidatedUTF8 slices n bytes as SliceSpanByBytes and additionally
// verifies the bytes form valid UTF-8. On invalid UTF-8 it fails with
// fault.UserError located at the first offending byte; the cursor is
// unchanged on failure (the slice happens against a clone first).
func (c *Cursor) SliceValidatedUTF8(n int) (string, error) {
	clone := c.clone()
	child, err := clone.SliceSpanByBytes(n)
	if err != nil {
		return "", err
	}

	content := child.Bytes()
	if offset, ok := firstInvalidUTF8(content); ok {
		return "", fault.At(
			fault.UserError,
			child.start+offset,
			"invalid UTF-8 byte sequence")
	}

	*c = clone
	return string(content), nil
}

func firstInvalidUTF8(content []byte) (int, bool) {
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		if r == utf8.RuneError && size <= 1 {
			return i, true
		}
		i += size
	}
	return 0, false
}

// SeekToRelativeOffset moves start by +k within [start, end]; k must be
// non-negative. end is unchanged. Fails with fault.InvalidValue (and leaves
// the cursor unchanged) if k is negative or would move start past end.
func (c *Cursor) SeekToRelativeOffset(k int) error {
	if k < 0 || k > c.Remaining() {
		return invalidValue(c.start, "relative seek out of range")
	}
	c.start += k
	return nil
}

// SeekToRelativeOffsetCopy is SeekToRelativeOffset but returns a new cursor
// instead of mutating the receiver.
func (c *Cursor) SeekToRelativeOffsetCopy(k int) (Cursor, error) {
	clone := c.clone()
	if err := clone.SeekToRelativeOffset(k); err != nil {
		return Cursor{}, err
	}
	return clone, nil
}

// SeekToOffsetFromEnd sets start = end - k, with 0 <= k <= Remaining(). end
// is unchanged.
func (c *Cursor) SeekToOffsetFromEnd(k int) error {
	if k < 0 || k > c.Remaining() {
		return invalidValue(c.start, "seek-from-end out of range")
	}
	c.start = c.end - k
	return nil
}

// SeekToOffsetFromEndCopy is SeekToOffsetFromEnd but returns a new cursor.
func (c *Cursor) SeekToOffsetFromEndCopy(k int) (Cursor, error) {
	clone := c.clone()
	if err := clone.SeekToOffsetFromEnd(k); err != nil {
		return Cursor{}, err
	}
	return clone, nil
}

// SeekToAbsoluteOffset sets start = k and end = RegionLength(), with
// 0 <= k <= RegionLength(). This is the only seek that may move end forward,
// re-exposing bytes that a prior sub-slice had hidden.
func (c *Cursor) SeekToAbsoluteOffset(k int) error {
	if k < 0 || k > c.region.Len() {
		return invalidValue(c.start, "absolute seek out of range")
	}
	c.start = k
	c.end = c.region.Len()
	return nil
}

// SeekToAbsoluteOffsetCopy is SeekToAbsoluteOffset but returns a new cursor.
func (c *Cursor) SeekToAbsoluteOffsetCopy(k int) (Cursor, error) {
	clone := c.clone()
	if err := clone.SeekToAbsoluteOffset(k); err != nil {
		return Cursor{}, err
	}
	return clone, nil
}

// SeekToRange sets (start, end) = (r.Lower, r.Upper), validated against the
// region: 0 <= r.Lower <= r.Upper <= RegionLength().
func (c *Cursor) SeekToRange(r Range) error {
	if r.Lower < 0 || r.Lower > r.Upper || r.Upper > c.region.Len() {
		return invalidValue(c.start, "range out of bound for region")
	}
	c.start = r.Lower
	c.end = r.Upper
	return nil
}

// SeekToRangeCopy is SeekToRange but returns a new cursor.
func (c *Cursor) SeekToRangeCopy(r Range) (Cursor, error) {
	clone := c.clone()
	if err := clone.SeekToRange(r); err != nil {
		return Cursor{}, err
	}
	return clone, nil
}

// Atomically runs body on a clone of c; the clone is assigned back to c iff
// body returns nil. On failure c is left exactly as it was before the call.
// This is the only sanctioned recovery primitive: callers needing
// transactional failure across several parser calls wrap them in
// Atomically rather than hand-rolling a save/restore of the cursor state.
func (c *Cursor) Atomically(body func(*Cursor) error) error {
	clone := c.clone()
	if err := body(&clone); err != nil {
		return err
	}
	*c = clone
	return nil
}

func stridedByteCount(at int, stride int, count int) (int, error) {
	if stride < 0 || count < 0 {
		return 0, invalidValue(at, "negative stride or count")
	}

	n, err := numeric.CheckedMul(stride, count)
	if err != nil {
		return 0, invalidValue(at, "stride*count overflows")
	}

	return n, nil
}
