package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "tenderai/pkg/domain-errors"
)

// LimitsSuite tests pagination clamping and input limit helpers.
// The invariants "max must pass" and "max+1 must fail" guard every outgoing list request.
type LimitsSuite struct {
	suite.Suite
}

func TestLimitsSuite(t *testing.T) {
	suite.Run(t, new(LimitsSuite))
}

func (s *LimitsSuite) TestClampPage() {
	s.Equal(1, ClampPage(-5))
	s.Equal(1, ClampPage(0))
	s.Equal(7, ClampPage(7))
}

func (s *LimitsSuite) TestClampPageSize() {
	s.Equal(DefaultPageSize, ClampPageSize(0))
	s.Equal(1, ClampPageSize(-3))
	s.Equal(MaxPageSize, ClampPageSize(9999))
	s.Equal(MaxPageSize, ClampPageSize(MaxPageSize))
	s.Equal(50, ClampPageSize(50))
}

func (s *LimitsSuite) TestClampLimitAndOffset() {
	s.Equal(DefaultActivityLimit, ClampLimit(0, DefaultActivityLimit, MaxActivityLimit))
	s.Equal(MaxActivityLimit, ClampLimit(101, DefaultActivityLimit, MaxActivityLimit))
	s.Equal(1, ClampLimit(-1, DefaultActivityLimit, MaxActivityLimit))
	s.Equal(0, ClampOffset(-10))
	s.Equal(30, ClampOffset(30))
}

func (s *LimitsSuite) TestCheckSliceCount() {
	s.Run("passes when count equals max", func() {
		s.NoError(CheckSliceCount("tender_ids", MaxBulkTenderIDs, MaxBulkTenderIDs))
	})

	s.Run("fails when count exceeds max", func() {
		err := CheckSliceCount("tender_ids", MaxBulkTenderIDs+1, MaxBulkTenderIDs)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		s.Contains(err.Error(), "too many tender_ids")
	})
}

func (s *LimitsSuite) TestCheckStringLength() {
	s.NoError(CheckStringLength("search", strings.Repeat("a", MaxSearchLength), MaxSearchLength))
	err := CheckStringLength("search", strings.Repeat("a", MaxSearchLength+1), MaxSearchLength)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *LimitsSuite) TestCheckEachStringLength() {
	s.NoError(CheckEachStringLength("tags", []string{"rfp", "lot"}, MaxTagLength))
	s.Error(CheckEachStringLength("tags", []string{"rfp", strings.Repeat("x", MaxTagLength+1)}, MaxTagLength))
	s.NoError(CheckEachStringLength("tags", nil, MaxTagLength))
}
