package dwarf

import (
	"testing"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type Leb128Suite struct{}

func TestLeb128(t *testing.T) {
	suite.RunTests(t, &Leb128Suite{})
}

func (Leb128Suite) TestULEB128RoundTrip(t *testing.T) {
	encoded := EncodeULEB128(nil, 624485)
	expect.Equal(t, []byte{0xE5, 0x8E, 0x26}, encoded)

	c := cursor.NewCursor(encoded)
	value, err := ULEB128(c, 32)
	expect.Nil(t, err)
	expect.Equal(t, uint64(624485), value)
	expect.True(t, c.IsEmpty())
}

func (Leb128Suite) TestSLEB128RoundTrip(t *testing.T) {
	encoded := EncodeSLEB128(nil, -123456)

	c := cursor.NewCursor(encoded)
	value, err := SLEB128(c, 64)
	expect.Nil(t, err)
	expect.Equal(t, int64(-123456), value)
	expect.True(t, c.IsEmpty())
}

func (Leb128Suite) TestSLEB128PositiveRoundTrip(t *testing.T) {
	encoded := EncodeSLEB128(nil, 624485)

	c := cursor.NewCursor(encoded)
	value, err := SLEB128(c, 64)
	expect.Nil(t, err)
	expect.Equal(t, int64(624485), value)
}

func (Leb128Suite) TestULEB128NotTerminated(t *testing.T) {
	c := cursor.NewCursor([]byte{0x80, 0x80, 0x80})

	_, err := ULEB128(c, 32)
	expect.NotNil(t, err)
}
