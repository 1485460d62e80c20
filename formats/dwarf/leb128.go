package dwarf

import (
	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
)

// uleb128 is the shared decode loop behind ULEB128/SLEB128: a sequence of
// 7-bit groups, low group first, each continued by a set high bit. This is
// a different shape than intcodec's fixed/padded modes (continuation-bit
// terminated rather than an explicit byte count), so it lives here rather
// than in intcodec.
func uleb128(c *cursor.Cursor, bitSize int) (uint64, int, byte, error) {
	start := c.CurrentRange().Lower

	var result uint64
	var shift int
	var upper byte

	err := c.Atomically(func(inner *cursor.Cursor) error {
		for shift < bitSize {
			span, err := inner.SliceSpanByBytes(1)
			if err != nil {
				return err
			}

			current := span.Bytes()[0]
			result |= uint64(current&0x7f) << uint(shift)
			shift += 7
			upper = current

			if current&0x80 == 0 {
				return nil
			}
		}

		return fault.At(fault.InvalidValue, start, "LEB128 not terminated within bit size")
	})
	if err != nil {
		return 0, 0, 0, err
	}

	return result, shift, upper, nil
}

// ULEB128 decodes an unsigned little-endian base-128 varint, the encoding
// DWARF uses for abbreviation codes, attribute/form pairs, and most
// non-negative operands. bitSize bounds how many bits the caller expects
// the value to occupy (64 for an unconstrained uint64).
func ULEB128(c *cursor.Cursor, bitSize int) (uint64, error) {
	result, _, _, err := uleb128(c, bitSize)
	return result, err
}

// SLEB128 decodes a signed little-endian base-128 varint: same group
// encoding as ULEB128, sign-extended from the last group's sign bit
// (0x40) when the value's significant bits end before bitSize.
func SLEB128(c *cursor.Cursor, bitSize int) (int64, error) {
	result, shift, upper, err := uleb128(c, bitSize)
	if err != nil {
		return 0, err
	}

	if shift < bitSize && upper&0x40 != 0 {
		result |= ^uint64(0) << uint(shift)
	}

	return int64(result), nil
}

// EncodeULEB128 appends v's ULEB128 encoding to buf and returns the result.
func EncodeULEB128(buf []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf = append(buf, b)
		if v == 0 {
			return buf
		}
	}
}

// EncodeSLEB128 appends v's SLEB128 encoding to buf and returns the result.
func EncodeSLEB128(buf []byte, v int64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7

		signBitSet := b&0x40 != 0
		done := (v == 0 && !signBitSet) || (v == -1 && signBitSet)
		if !done {
			b |= 0x80
		}
		buf = append(buf, b)
		if done {
			return buf
		}
	}
}
