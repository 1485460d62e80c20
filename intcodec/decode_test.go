package intcodec

import (
	"encoding/binary"
	"testing"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type DecodeSuite struct{}

func TestDecode(t *testing.T) {
	suite.RunTests(t, &DecodeSuite{})
}

func (DecodeSuite) TestLoadFixedEndianness(t *testing.T) {
	content := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}

	c := cursor.NewCursor(content)
	v, err := LoadFixed[uint64](c, binary.BigEndian)
	expect.Nil(t, err)
	expect.Equal(t, uint64(1), v)
	expect.True(t, c.IsEmpty())

	c2 := cursor.NewCursor(content)
	v2, err := LoadFixed[uint64](c2, binary.LittleEndian)
	expect.Nil(t, err)
	expect.Equal(t, uint64(0x0100000000000000), v2)
}

func (DecodeSuite) TestLoadNarrowSignExtension(t *testing.T) {
	content := []byte{0xFF, 0xFE}

	c := cursor.NewCursor(content)
	v, err := LoadNarrow[int32](c, binary.BigEndian, 2)
	expect.Nil(t, err)
	expect.Equal(t, int32(-2), v)

	c2 := cursor.NewCursor(content)
	v2, err := LoadNarrow[uint32](c2, binary.BigEndian, 2)
	expect.Nil(t, err)
	expect.Equal(t, uint32(0xFFFE), v2)
}

func (DecodeSuite) TestLoadPaddedValidatesSignExtension(t *testing.T) {
	// Negative int16(-2) padded into 4 bytes, big-endian: 0xFF 0xFF 0xFF 0xFE
	c := cursor.NewCursor([]byte{0xFF, 0xFF, 0xFF, 0xFE})
	v, err := LoadPadded[int16](c, binary.BigEndian, 4)
	expect.Nil(t, err)
	expect.Equal(t, int16(-2), v)

	// Bad padding: 0x00 instead of 0xFF.
	c2 := cursor.NewCursor([]byte{0x00, 0x00, 0xFF, 0xFE})
	_, err = LoadPadded[int16](c2, binary.BigEndian, 4)
	expect.Error(t, err)
	expect.Equal(t, 4, c2.Remaining())

	// Positive value, 0x00 padding required.
	c3 := cursor.NewCursor([]byte{0x00, 0x00, 0x00, 0x05})
	v3, err := LoadPadded[int16](c3, binary.BigEndian, 4)
	expect.Nil(t, err)
	expect.Equal(t, int16(5), v3)

	// Mismatched 0xB0 padding bytes.
	c4 := cursor.NewCursor([]byte{0xB0, 0xB0, 0xFF, 0xFE})
	_, err = LoadPadded[int16](c4, binary.BigEndian, 4)
	expect.Error(t, err)
}

func (DecodeSuite) TestLoadPaddedLittleEndian(t *testing.T) {
	// int16(-2) = 0xFFFE stored little-endian low bytes first, then padding.
	c := cursor.NewCursor([]byte{0xFE, 0xFF, 0xFF, 0xFF})
	v, err := LoadPadded[int16](c, binary.LittleEndian, 4)
	expect.Nil(t, err)
	expect.Equal(t, int16(-2), v)
}

func (DecodeSuite) TestLoadDispatcher(t *testing.T) {
	c := cursor.NewCursor([]byte{0x00, 0x00, 0x00, 0x05})
	v, err := Load[int16](c, binary.BigEndian, 4)
	expect.Nil(t, err)
	expect.Equal(t, int16(5), v)

	c2 := cursor.NewCursor([]byte{0x00, 0x05})
	v2, err := Load[int32](c2, binary.BigEndian, 2)
	expect.Nil(t, err)
	expect.Equal(t, int32(5), v2)

	c3 := cursor.NewCursor([]byte{0x00, 0x00, 0x00, 0x05})
	_, err = Load[int32](c3, binary.BigEndian, 0)
	expect.Error(t, err)
}

func (DecodeSuite) TestLoadConvert(t *testing.T) {
	c := cursor.NewCursor([]byte{0x00, 0x00, 0x00, 0x05})
	v, err := LoadConvert[int16, int32](c, binary.BigEndian)
	expect.Nil(t, err)
	expect.Equal(t, int16(5), v)

	c2 := cursor.NewCursor([]byte{0x7F, 0xFF, 0xFF, 0xFF})
	_, err = LoadConvert[int16, int32](c2, binary.BigEndian)
	expect.Error(t, err)
	expect.Equal(t, 4, c2.Remaining())

	// A same-width unsigned storage type whose high bit is set must not
	// silently bit-reinterpret into a signed destination.
	c3 := cursor.NewCursor([]byte{0xC8})
	_, err = LoadConvert[int8, uint8](c3, binary.BigEndian)
	expect.Error(t, err)
	expect.Equal(t, 1, c3.Remaining())
}

func (DecodeSuite) TestDecodeEnum(t *testing.T) {
	valid := func(v uint8) bool {
		return v == 1 || v == 2
	}

	c := cursor.NewCursor([]byte{0x02})
	v, err := DecodeEnum[uint8, uint8](c, binary.BigEndian, 1, valid)
	expect.Nil(t, err)
	expect.Equal(t, uint8(2), v)

	c2 := cursor.NewCursor([]byte{0x09})
	_, err = DecodeEnum[uint8, uint8](c2, binary.BigEndian, 1, valid)
	expect.Error(t, err)
	expect.Equal(t, 1, c2.Remaining())
}

func (DecodeSuite) TestLoadInsufficientData(t *testing.T) {
	c := cursor.NewCursor([]byte{0x01})
	_, err := LoadFixed[uint32](c, binary.BigEndian)
	expect.Error(t, err)
	expect.Equal(t, 1, c.Remaining())
}
