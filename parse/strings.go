package parse

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
	"github.com/pattyshack/bparse/numeric"
)

// TerminatedUTF8 locates the first 0x00 byte, decodes the bytes before it
// as UTF-8 (repairing invalid sequences to U+FFFD), and consumes the
// terminator. Fails with fault.InvalidValue if no 0x00 is found, grounded
// on the teacher's dwarf.Cursor.String.
func TerminatedUTF8(c *cursor.Cursor) (string, error) {
	content := c.Bytes()

	end := -1
	for i, b := range content {
		if b == 0 {
			end = i
			break
		}
	}
	if end == -1 {
		return "", fault.At(fault.InvalidValue, c.CurrentRange().Lower, "string not terminated")
	}

	span, err := c.SliceSpanByBytes(end + 1)
	if err != nil {
		return "", err
	}

	return repairUTF8(span.Bytes()[:end]), nil
}

// WholeUTF8 decodes all remaining bytes as UTF-8, repairing invalid
// sequences to U+FFFD. Never fails.
func WholeUTF8(c *cursor.Cursor) string {
	return repairUTF8(RemainingBytes(c))
}

// CountedUTF8 slices n bytes and decodes them as UTF-8, repairing invalid
// sequences to U+FFFD.
func CountedUTF8(c *cursor.Cursor, n int) (string, error) {
	content, err := CountedBytes(c, n)
	if err != nil {
		return "", err
	}
	return repairUTF8(content), nil
}

func repairUTF8(content []byte) string {
	var out []rune
	for i := 0; i < len(content); {
		r, size := utf8.DecodeRune(content[i:])
		out = append(out, r)
		i += size
	}
	return string(out)
}

// WholeUTF16 decodes all remaining bytes as UTF-16 code units per order,
// repairing unpaired surrogates to U+FFFD (utf16.Decode's own behavior).
// Fails with fault.InvalidValue if Remaining() is odd.
func WholeUTF16(c *cursor.Cursor, order binary.ByteOrder) (string, error) {
	if c.Remaining()%2 != 0 {
		return "", fault.At(fault.InvalidValue, c.CurrentRange().Lower, "odd byte count for UTF-16 string")
	}

	content := RemainingBytes(c)
	units := decodeCodeUnits(content, order)
	return string(utf16.Decode(units)), nil
}

// CountedUTF16 slices codeUnits*2 bytes (computed via numeric.CheckedMul to
// guard overflow) and decodes them as UTF-16 per order.
func CountedUTF16(c *cursor.Cursor, order binary.ByteOrder, codeUnits int) (string, error) {
	if codeUnits < 0 {
		return "", fault.At(fault.InvalidValue, c.CurrentRange().Lower, "negative code unit count")
	}

	n, err := numeric.CheckedMul(codeUnits, 2)
	if err != nil {
		return "", fault.At(fault.InvalidValue, c.CurrentRange().Lower, "code unit count overflows byte count")
	}

	content, err := CountedBytes(c, n)
	if err != nil {
		return "", err
	}

	units := decodeCodeUnits(content, order)
	return string(utf16.Decode(units)), nil
}

func decodeCodeUnits(content []byte, order binary.ByteOrder) []uint16 {
	units := make([]uint16, len(content)/2)
	for i := range units {
		units[i] = order.Uint16(content[i*2 : i*2+2])
	}
	return units
}
