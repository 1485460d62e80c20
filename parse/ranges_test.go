package parse

import (
	"testing"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type RangesSuite struct{}

func TestRanges(t *testing.T) {
	suite.RunTests(t, &RangesSuite{})
}

func readInt(c *cursor.Cursor) (int, error) {
	span, err := c.SliceSpanByBytes(1)
	if err != nil {
		return 0, err
	}
	return int(span.Bytes()[0]), nil
}

func (RangesSuite) TestRangeStartCount(t *testing.T) {
	c := cursor.NewCursor([]byte{5, 3})
	r, err := RangeStartCount(c, readInt)
	expect.Nil(t, err)
	expect.Equal(t, 5, r.Lower)
	expect.Equal(t, 8, r.Upper)
}

func (RangesSuite) TestRangeStartCountNegative(t *testing.T) {
	c := cursor.NewCursor([]byte{5, 255})
	_, err := RangeStartCount(c, func(c *cursor.Cursor) (int, error) {
		span, err := c.SliceSpanByBytes(1)
		if err != nil {
			return 0, err
		}
		return int(int8(span.Bytes()[0])), nil
	})
	expect.Error(t, err)
}

func (RangesSuite) TestRangeStartEndHalfOpen(t *testing.T) {
	c := cursor.NewCursor([]byte{2, 9})
	r, err := RangeStartEnd(c, readInt, false)
	expect.Nil(t, err)
	expect.Equal(t, 2, r.Lower)
	expect.Equal(t, 9, r.Upper)
}

func (RangesSuite) TestRangeStartEndClosed(t *testing.T) {
	c := cursor.NewCursor([]byte{2, 9})
	r, err := RangeStartEnd(c, readInt, true)
	expect.Nil(t, err)
	expect.Equal(t, 2, r.Lower)
	expect.Equal(t, 10, r.Upper)
}

func (RangesSuite) TestRangeStartEndInvalid(t *testing.T) {
	c := cursor.NewCursor([]byte{9, 2})
	_, err := RangeStartEnd(c, readInt, false)
	expect.Error(t, err)
}
