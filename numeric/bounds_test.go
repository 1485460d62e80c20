package numeric

import (
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type BoundsSuite struct{}

func TestBounds(t *testing.T) {
	suite.RunTests(t, &BoundsSuite{})
}

func (BoundsSuite) TestAt(t *testing.T) {
	seq := []int{10, 20, 30}

	v, ok := At(seq, 1).Get()
	expect.True(t, ok)
	expect.Equal(t, 20, v)

	_, ok = At(seq, 3).Get()
	expect.False(t, ok)

	_, ok = At(seq, -1).Get()
	expect.False(t, ok)
}

func (BoundsSuite) TestCheckedAt(t *testing.T) {
	seq := []int{10, 20, 30}

	v, err := CheckedAt(seq, 2)
	expect.Nil(t, err)
	expect.Equal(t, 30, v)

	_, err = CheckedAt(seq, 3)
	expect.Error(t, err)
}

func (BoundsSuite) TestSlice(t *testing.T) {
	seq := []byte{1, 2, 3, 4, 5}

	v, ok := Slice(seq, 1, 3).Get()
	expect.True(t, ok)
	expect.Equal(t, []byte{2, 3}, v)

	_, ok = Slice(seq, 3, 1).Get()
	expect.False(t, ok)

	_, ok = Slice(seq, 0, 6).Get()
	expect.False(t, ok)
}

func (BoundsSuite) TestCheckedSlice(t *testing.T) {
	seq := []byte{1, 2, 3, 4, 5}

	v, err := CheckedSlice(seq, 0, 5)
	expect.Nil(t, err)
	expect.Equal(t, seq, v)

	_, err = CheckedSlice(seq, -1, 2)
	expect.Error(t, err)
}
