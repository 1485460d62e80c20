// Package intcodec decodes fixed-width signed and unsigned integers from a
// cursor, parameterized over the stored byte count and byte order rather
// than offering one hand-rolled method per width (the teacher's
// dwarf.Cursor does the latter: U8/S8/.../U64/S64, each a direct-sized
// load and nothing else). This package generalizes that single mode into
// four, all funneling through one generic core.
package intcodec

import (
	"encoding/binary"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
	"github.com/pattyshack/bparse/numeric"
)

// Integer is the set of integer types this package can decode into.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func isSignedType[T Integer]() bool {
	var zero T
	zero--
	return zero < 0
}

// sizeOf returns sizeof(T) in bytes. int/uint are treated as 64-bit, the
// only assumption this package makes about the target platform.
func sizeOf[T Integer]() int {
	switch any(T(0)).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32:
		return 4
	default:
		return 8
	}
}

func isBigEndian(order binary.ByteOrder) bool {
	return order.String() == "BigEndian"
}

// rawToUint64 interprets content (at most 8 bytes) as an unsigned integer
// per order, zero-extended into a uint64.
func rawToUint64(content []byte, order binary.ByteOrder) uint64 {
	var v uint64
	if isBigEndian(order) {
		for _, b := range content {
			v = v<<8 | uint64(b)
		}
		return v
	}

	for i := len(content) - 1; i >= 0; i-- {
		v = v<<8 | uint64(content[i])
	}
	return v
}

// signExtend sign-extends a value known to occupy byteCount significant
// bytes (byteCount*8 bits) out to the full 64 bits.
func signExtend(raw uint64, byteCount int) uint64 {
	if byteCount >= 8 {
		return raw
	}
	shift := uint(64 - byteCount*8)
	return uint64(int64(raw<<shift) >> shift)
}

func bitsToT[T Integer](bits uint64) T {
	if isSignedType[T]() {
		return T(int64(bits))
	}
	return T(bits)
}

// Load is the single generic decode core: it picks direct, narrow, or
// padded loading by comparing byteCount to sizeof(T). byteCount <= 0 is
// fault.InvalidValue. The cursor advances by byteCount bytes on success and
// is left unchanged on failure.
func Load[T Integer](c *cursor.Cursor, order binary.ByteOrder, byteCount int) (T, error) {
	if byteCount <= 0 {
		return 0, fault.At(fault.InvalidValue, c.CurrentRange().Lower, "non-positive byte count")
	}

	width := sizeOf[T]()
	switch {
	case byteCount <= width:
		return loadNarrowOrDirect[T](c, order, byteCount)
	default:
		return loadPadded[T](c, order, byteCount)
	}
}

// LoadFixed is mode 1: byteCount == sizeof(T), the shape of every one of
// the teacher's U8/S8/.../U64/S64 methods.
func LoadFixed[T Integer](c *cursor.Cursor, order binary.ByteOrder) (T, error) {
	return loadNarrowOrDirect[T](c, order, sizeOf[T]())
}

// LoadNarrow is mode 2: byteCount <= sizeof(T), sign- or zero-extending the
// decoded value out to T's full width.
func LoadNarrow[T Integer](c *cursor.Cursor, order binary.ByteOrder, byteCount int) (T, error) {
	if byteCount <= 0 {
		return 0, fault.At(fault.InvalidValue, c.CurrentRange().Lower, "non-positive byte count")
	}
	if byteCount > sizeOf[T]() {
		return 0, fault.At(fault.InvalidValue, c.CurrentRange().Lower, "byte count exceeds destination width")
	}
	return loadNarrowOrDirect[T](c, order, byteCount)
}

func loadNarrowOrDirect[T Integer](c *cursor.Cursor, order binary.ByteOrder, byteCount int) (T, error) {
	var result T
	err := c.Atomically(func(inner *cursor.Cursor) error {
		span, err := inner.SliceSpanByBytes(byteCount)
		if err != nil {
			return err
		}

		raw := rawToUint64(span.Bytes(), order)
		if isSignedType[T]() {
			raw = signExtend(raw, byteCount)
		}
		result = bitsToT[T](raw)
		return nil
	})
	return result, err
}

// LoadPadded is mode 3: byteCount > sizeof(T). The extra (byteCount -
// sizeof(T)) bytes must equal 0x00 if the significant value is unsigned or
// non-negative, or 0xFF if it is a negative signed value; any other
// padding byte fails with fault.InvalidValue located at the first
// offending byte.
func LoadPadded[T Integer](c *cursor.Cursor, order binary.ByteOrder, byteCount int) (T, error) {
	if byteCount <= sizeOf[T]() {
		return 0, fault.At(fault.InvalidValue, c.CurrentRange().Lower, "byte count does not exceed destination width")
	}
	return loadPadded[T](c, order, byteCount)
}

func loadPadded[T Integer](c *cursor.Cursor, order binary.ByteOrder, byteCount int) (T, error) {
	width := sizeOf[T]()
	padCount := byteCount - width

	var result T
	err := c.Atomically(func(inner *cursor.Cursor) error {
		start := inner.CurrentRange().Lower
		span, err := inner.SliceSpanByBytes(byteCount)
		if err != nil {
			return err
		}
		content := span.Bytes()

		var padding, significant []byte
		var padOffset int
		if isBigEndian(order) {
			padding, significant = content[:padCount], content[padCount:]
			padOffset = start
		} else {
			significant, padding = content[:width], content[width:]
			padOffset = start + width
		}

		raw := rawToUint64(significant, order)
		if isSignedType[T]() {
			raw = signExtend(raw, width)
		}

		expected := byte(0x00)
		if isSignedType[T]() && int64(raw) < 0 {
			expected = 0xFF
		}

		for i, b := range padding {
			if b != expected {
				return fault.At(
					fault.InvalidValue,
					padOffset+i,
					"padding byte does not match sign-extension of significant value")
			}
		}

		result = bitsToT[T](raw)
		return nil
	})
	return result, err
}

// LoadConvert loads a value of storage type S via LoadFixed, then converts
// it to D using numeric.CheckedConvert. Fails with fault.InvalidValue if
// the stored value does not fit D.
func LoadConvert[D Integer, S Integer](c *cursor.Cursor, order binary.ByteOrder) (D, error) {
	var result D
	err := c.Atomically(func(inner *cursor.Cursor) error {
		s, err := LoadFixed[S](inner, order)
		if err != nil {
			return err
		}

		d, err := numeric.CheckedConvert[D](s)
		if err != nil {
			return err
		}

		result = d
		return nil
	})
	return result, err
}

// DecodeEnum decodes a backing raw integer via Load and validates it
// against a finite case set, failing with fault.InvalidValue (unwrapped)
// if valid rejects it. This is the single generic contract behind every
// raw-representable enum in the domain stack (ELF's Class, DataEncoding,
// FileType, SectionType).
func DecodeEnum[T ~uint8 | ~uint16 | ~uint32 | ~uint64, Raw Integer](
	c *cursor.Cursor,
	order binary.ByteOrder,
	byteCount int,
	valid func(T) bool,
) (T, error) {
	var result T
	err := c.Atomically(func(inner *cursor.Cursor) error {
		start := inner.CurrentRange().Lower
		raw, err := Load[Raw](inner, order, byteCount)
		if err != nil {
			return err
		}

		value := T(raw)
		if !valid(value) {
			return fault.At(fault.InvalidValue, start, "value is not a member of the enumerated set")
		}

		result = value
		return nil
	})
	return result, err
}
