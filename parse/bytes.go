// Package parse builds aggregate parsing primitives — byte vectors,
// strings, sequences, ranges — on top of cursor, intcodec, and numeric.
// Grounded on the teacher's dwarf.Cursor.Bytes/String methods, generalized
// to the byte-count and encoding parameterization this module's core
// supports.
package parse

import (
	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
)

// RemainingBytes copies all remaining bytes from c and advances c to
// empty. Never fails.
func RemainingBytes(c *cursor.Cursor) []byte {
	content := make([]byte, c.Remaining())
	copy(content, c.Bytes())
	c.SliceRemainingRange()
	return content
}

// CountedBytes copies exactly n bytes, advancing c past them.
func CountedBytes(c *cursor.Cursor, n int) ([]byte, error) {
	if n < 0 {
		return nil, fault.At(fault.InvalidValue, c.CurrentRange().Lower, "negative byte count")
	}

	span, err := c.SliceSpanByBytes(n)
	if err != nil {
		return nil, err
	}

	content := make([]byte, n)
	copy(content, span.Bytes())
	return content, nil
}
