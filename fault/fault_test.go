package fault

import (
	"errors"
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type FaultSuite struct{}

func TestFault(t *testing.T) {
	suite.RunTests(t, &FaultSuite{})
}

func (FaultSuite) TestErrorFormatting(t *testing.T) {
	f := New(InvalidValue, "bad things")
	expect.Equal(t, "invalid value: bad things", f.Error())

	located := At(InsufficientData, 42, "need more bytes")
	expect.Equal(t, "insufficient data at offset 42: need more bytes", located.Error())

	bare := &Fault{Kind: UserError}
	expect.Equal(t, "user error", bare.Error())
}

func (FaultSuite) TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	f := Wrap(UserError, 3, cause)

	expect.Equal(t, cause, f.Unwrap())
	expect.True(t, errors.Is(f, cause))
}

func (FaultSuite) TestKindOf(t *testing.T) {
	f := At(InvalidValue, 7, "nope")
	wrapped := errors.Join(f)

	kind, ok := KindOf(wrapped)
	expect.True(t, ok)
	expect.Equal(t, InvalidValue, kind)

	_, ok = KindOf(errors.New("not a fault"))
	expect.False(t, ok)
}
