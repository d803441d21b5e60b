package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tetrisdev/SPTServer/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "no loose loot table for location",
			expected: "NOT_FOUND: no loose loot table for location",
		},
		{
			name:     "data loss error",
			code:     errors.CodeDataLoss,
			message:  "weapon preset has a broken parent chain",
			expected: "DATA_LOSS: weapon preset has a broken parent chain",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("template not found").
		WithMeta("template_id", "5449016a4bdc2d6f028b456f").
		WithMeta("location", "bigmap")

	s.Assert().Equal("5449016a4bdc2d6f028b456f", err.Meta["template_id"])
	s.Assert().Equal("bigmap", err.Meta["location"])
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	inner := errors.NotFound("container template missing")
	wrapped := errors.Wrap(inner, "failed to populate container")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("failed to populate container", wrapped.Message)
	s.Assert().ErrorIs(wrapped, inner)
}

func (s *ErrorsTestSuite) TestWrapForeignErrorDefaultsToInternal() {
	inner := fmt.Errorf("boom")
	wrapped := errors.Wrap(inner, "pass aborted")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().ErrorIs(wrapped, inner)
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	inner := fmt.Errorf("node child_2 references missing parent")
	wrapped := errors.WrapWithCode(inner, errors.CodeDataLoss, "preset reparent failed")

	s.Assert().Equal(errors.CodeDataLoss, wrapped.Code)
	s.Assert().True(errors.IsDataLoss(wrapped))
}

func (s *ErrorsTestSuite) TestWrapNilReturnsNil() {
	s.Assert().Nil(errors.Wrap(nil, "ignored"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeDataLoss, "ignored"))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(errors.NotFound("missing")))
}

func (s *ErrorsTestSuite) TestIsMatchesByCode() {
	a := errors.FailedPrecondition("empty pool")
	b := errors.FailedPrecondition("another empty pool")

	s.Assert().ErrorIs(a, b)
	s.Assert().NotErrorIs(a, errors.NotFound("missing"))
}
