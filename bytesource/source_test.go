package bytesource

import (
	"bytes"
	"testing"

	"github.com/pattyshack/bparse/cursor"
	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type SourceSuite struct{}

func TestSource(t *testing.T) {
	suite.RunTests(t, &SourceSuite{})
}

func (SourceSuite) TestFromBytes(t *testing.T) {
	src := FromBytes([]byte{1, 2, 3})

	err := src.WithCursor(func(c *cursor.Cursor) error {
		expect.Equal(t, 3, c.Remaining())
		return nil
	})
	expect.Nil(t, err)
}

func (SourceSuite) TestFromBytesPropagatesError(t *testing.T) {
	src := FromBytes([]byte{1, 2, 3})
	boom := bytes.ErrTooLarge

	err := src.WithCursor(func(c *cursor.Cursor) error {
		return boom
	})
	expect.Equal(t, boom, err)
}

func (SourceSuite) TestWithCursorRange(t *testing.T) {
	src := FromBytes([]byte{1, 2, 3, 4, 5}).(RangedSource)
	r := cursor.Range{Lower: 1, Upper: 4}

	err := src.WithCursorRange(&r, func(c *cursor.Cursor) error {
		expect.Equal(t, []byte{2, 3, 4}, c.Bytes())
		_, err := c.SliceSpanByBytes(1)
		return err
	})
	expect.Nil(t, err)
	expect.Equal(t, 2, r.Lower)
	expect.Equal(t, 4, r.Upper)
}

func (SourceSuite) TestFromReaderAt(t *testing.T) {
	r := bytes.NewReader([]byte{9, 8, 7, 6})
	src := FromReaderAt(r, 4)

	err := src.WithCursor(func(c *cursor.Cursor) error {
		expect.Equal(t, []byte{9, 8, 7, 6}, c.Bytes())
		return nil
	})
	expect.Nil(t, err)
}

func (SourceSuite) TestParseFromBytes(t *testing.T) {
	src := FromBytes([]byte{42})

	v, err := ParseFromBytes(src, func(c *cursor.Cursor) (byte, error) {
		span, err := c.SliceSpanByBytes(1)
		if err != nil {
			return 0, err
		}
		return span.Bytes()[0], nil
	})
	expect.Nil(t, err)
	expect.Equal(t, byte(42), v)
}
