package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the local error primitives shared by the service layer.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeRequestFailed, Message: "no access"}
		s.Equal("no access", err.Error())
	})

	s.Run("falls back to wrapped error text", func() {
		err := &Error{Code: CodeStorage, Err: errors.New("disk full")}
		s.Equal("disk full", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeMissingData}
		s.Equal("missing_data", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("bad field")
		err := &Error{Code: CodeInvalidDTO, Message: "invalid row", Err: inner}
		s.Equal(inner, errors.Unwrap(err))
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeMissingData, Message: "missing"}
		s.Nil(err.Unwrap())
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		s.True(errors.Is(New(CodeRequestFailed, "a"), &Error{Code: CodeRequestFailed}))
	})

	s.Run("does not match different codes", func() {
		s.False(errors.Is(New(CodeRequestFailed, "a"), &Error{Code: CodeMissingData}))
	})

	s.Run("does not match non-domain errors", func() {
		s.False((&Error{Code: CodeInvalidInput}).Is(errors.New("invalid_input")))
	})

	s.Run("works through fmt wrapping", func() {
		wrapped := fmt.Errorf("get metrics: %w", New(CodeMissingData, "Response missing data field"))
		s.True(errors.Is(wrapped, &Error{Code: CodeMissingData}))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("keeps the code of an existing domain error", func() {
		inner := New(CodeInvalidDTO, "invalid TeamMemberDTO.role")
		err := Wrap(inner, CodeRequestFailed, "map team")
		s.True(HasCode(err, CodeInvalidDTO))
		s.Equal("map team", err.Error())
	})

	s.Run("applies the given code to foreign errors", func() {
		err := Wrap(errors.New("boom"), CodeStorage, "read credentials")
		s.True(HasCode(err, CodeStorage))
	})
}

func (s *DomainErrorsSuite) TestNewf() {
	err := Newf(CodeInvalidInput, "unknown export format %q", "doc")
	s.Equal(`unknown export format "doc"`, err.Error())
	s.True(HasCode(err, CodeInvalidInput))
	s.False(HasCode(errors.New("x"), CodeInvalidInput))
}
