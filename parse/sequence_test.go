package parse

import (
	"testing"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type SequenceSuite struct{}

func TestSequence(t *testing.T) {
	suite.RunTests(t, &SequenceSuite{})
}

func readByte(c *cursor.Cursor) (byte, error) {
	span, err := c.SliceSpanByBytes(1)
	if err != nil {
		return 0, err
	}
	return span.Bytes()[0], nil
}

func (SequenceSuite) TestCountedSequence(t *testing.T) {
	c := cursor.NewCursor([]byte{1, 2, 3, 4})
	got, err := CountedSequence(c, 3, readByte)
	expect.Nil(t, err)
	expect.Equal(t, []byte{1, 2, 3}, got)
	expect.Equal(t, 1, c.Remaining())

	_, err = CountedSequence(c, -1, readByte)
	expect.Error(t, err)

	c2 := cursor.NewCursor([]byte{1})
	_, err = CountedSequence(c2, 5, readByte)
	expect.Error(t, err)
}

func (SequenceSuite) TestExhaustiveSequence(t *testing.T) {
	c := cursor.NewCursor([]byte{1, 2, 3})
	got, err := ExhaustiveSequence(c, readByte)
	expect.Nil(t, err)
	expect.Equal(t, []byte{1, 2, 3}, got)
	expect.True(t, c.IsEmpty())
}

func (SequenceSuite) TestExhaustiveSequenceZeroProgressGuard(t *testing.T) {
	c := cursor.NewCursor([]byte{1, 2, 3})
	zeroProgress := func(c *cursor.Cursor) (byte, error) {
		return 0, nil
	}

	_, err := ExhaustiveSequence(c, zeroProgress)
	expect.Error(t, err)
}
