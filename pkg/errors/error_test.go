package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNew() {
	err := New(ErrCodeSymbolNotFound, "no instrument for symbol SBIN")
	suite.Equal(ErrCodeSymbolNotFound, err.Code)
	suite.Equal("[202] no instrument for symbol SBIN", err.Error())
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewf() {
	err := Newf(ErrCodeChunkFetchFailed, "fetch failed for %s (%s)", "TCS", "2024-01-01 to 2024-01-30")
	suite.Equal(ErrCodeChunkFetchFailed, err.Code)
	suite.Contains(err.Error(), "TCS")
	suite.Contains(err.Error(), "2024-01-01 to 2024-01-30")
}

func (suite *ErrorTestSuite) TestWrapAndUnwrap() {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrCodeChunkFetchFailed, "provider request failed", cause)

	suite.Equal(cause, err.Unwrap())
	suite.Contains(err.Error(), "connection refused")
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestWrapf() {
	cause := fmt.Errorf("disk full")
	err := Wrapf(ErrCodeWriteFailed, cause, "failed to write output for %s", "INFY")

	suite.Equal(ErrCodeWriteFailed, err.Code)
	suite.Contains(err.Error(), "INFY")
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeNoDataForSymbol, "no data")
	suite.Equal(ErrCodeNoDataForSymbol, GetCode(err))

	wrapped := fmt.Errorf("outer: %w", err)
	suite.Equal(ErrCodeNoDataForSymbol, GetCode(wrapped))

	suite.Equal(ErrCodeUnknown, GetCode(fmt.Errorf("plain error")))
	suite.Equal(ErrCodeUnknown, GetCode(nil))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeSymbolListNotFound, "symbols.txt missing")
	suite.True(HasCode(err, ErrCodeSymbolListNotFound))
	suite.False(HasCode(err, ErrCodeWriteFailed))
}
