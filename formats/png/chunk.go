package png

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/bparse/fault"
	"github.com/pattyshack/bparse/intcodec"
	"github.com/pattyshack/bparse/numeric"
	"github.com/pattyshack/bparse/parse"
)

// Chunk is one length-prefixed, CRC-guarded record from a PNG stream.
type Chunk struct {
	Type string
	Data []byte

	// Offset is the stream position of the chunk's length field, used to
	// locate faults reported against this chunk.
	Offset int
}

// parseChunk reads one chunk: a 4-byte big-endian length, a 4-byte ASCII
// type, length bytes of data, and a 4-byte big-endian CRC-32 trailer
// computed over the type and data.
func parseChunk(c *cursor.Cursor) (Chunk, error) {
	offset := c.CurrentRange().Lower

	length, err := intcodec.LoadFixed[uint32](c, binary.BigEndian)
	if err != nil {
		return Chunk{}, err
	}

	// length + 8 (type + CRC) must not overflow before it is used to bound
	// the chunk's extent.
	if _, err := numeric.CheckedAdd(length, uint32(8)); err != nil {
		return Chunk{}, fault.At(fault.InvalidValue, offset, "chunk length too large")
	}

	typeSpan, err := c.SliceSpanByBytes(4)
	if err != nil {
		return Chunk{}, err
	}
	typeBytes := typeSpan.Bytes()

	data, err := parse.CountedBytes(c, int(length))
	if err != nil {
		return Chunk{}, err
	}

	crcOffset := c.CurrentRange().Lower
	crc, err := intcodec.LoadFixed[uint32](c, binary.BigEndian)
	if err != nil {
		return Chunk{}, err
	}

	expected := crc32.ChecksumIEEE(append(append([]byte{}, typeBytes...), data...))
	if expected != crc {
		return Chunk{}, fault.At(
			fault.InvalidValue,
			crcOffset,
			"chunk CRC-32 mismatch")
	}

	return Chunk{Type: string(typeBytes), Data: data, Offset: offset}, nil
}
