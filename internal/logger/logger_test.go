package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)
}

func (suite *LoggerTestSuite) TestNewNopLogger() {
	logger := NewNopLogger()
	suite.NotNil(logger)

	// Should not panic, and should be safe to use with fields.
	logger.Info("discarded", zap.String("symbol", "SBIN"))
	logger.Error("also discarded")
}

func (suite *LoggerTestSuite) TestSyncNilInnerLogger() {
	logger := &Logger{Logger: nil}
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestStructuredLogging() {
	logger, err := NewLogger()
	suite.Require().NoError(err)

	// These should not panic.
	logger.Info("downloading chunk",
		zap.String("symbol", "TCS"),
		zap.String("range", "2024-01-01 to 2024-01-30"),
	)
	logger.Warn("no data returned", zap.String("symbol", "TCS"))
}
