package dwarf

import (
	"encoding/binary"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/intcodec"
)

// readU8 decodes a single byte; byte order is irrelevant at this width, so
// callers that don't otherwise have a binary.ByteOrder handy (e.g. the
// abbreviation table's has-children flag) can use this directly.
func readU8(c *cursor.Cursor) (uint8, error) {
	return intcodec.LoadFixed[uint8](c, binary.LittleEndian)
}

func readU16(c *cursor.Cursor, order binary.ByteOrder) (uint16, error) {
	return intcodec.LoadFixed[uint16](c, order)
}

func readU32(c *cursor.Cursor, order binary.ByteOrder) (uint32, error) {
	return intcodec.LoadFixed[uint32](c, order)
}

func readU64(c *cursor.Cursor, order binary.ByteOrder) (uint64, error) {
	return intcodec.LoadFixed[uint64](c, order)
}
