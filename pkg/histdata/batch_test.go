package histdata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/arkad-labs/histbatch/internal/types"
	"github.com/arkad-labs/histbatch/pkg/daterange"
	"github.com/arkad-labs/histbatch/pkg/histdata/writer"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

type BatchDownloaderTestSuite struct {
	suite.Suite
	tempDir string
}

func TestBatchDownloaderSuite(t *testing.T) {
	suite.Run(t, new(BatchDownloaderTestSuite))
}

func (suite *BatchDownloaderTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *BatchDownloaderTestSuite) newBatch(fake *fakeProvider) *BatchDownloader {
	b := NewBatchDownloaderWith(fake, writer.NewCSVWriter(), nil)
	b.SetShowProgress(false)

	return b
}

func (suite *BatchDownloaderTestSuite) TestDownloadManyMixedResults() {
	// RELIANCE has no data at all; the batch still finishes SBIN and TCS.
	fake := &fakeProvider{
		respond: func(instrument string, chunk daterange.Range) (types.Dataset, error) {
			if instrument == "RELIANCE" {
				return types.Dataset{}, nil
			}

			return dailyCandles(instrument, chunk.Start, 1), nil
		},
	}

	b := suite.newBatch(fake)

	cfg := testConfig()
	cfg.OutputDir = suite.tempDir

	results := b.DownloadMany(context.Background(), []string{"SBIN", "RELIANCE", "TCS"}, cfg)
	suite.Require().Len(results, 3)
	suite.NotEmpty(results["SBIN"])
	suite.Empty(results["RELIANCE"])
	suite.NotEmpty(results["TCS"])

	suite.FileExists(results["SBIN"])
	suite.FileExists(results["TCS"])
}

func (suite *BatchDownloaderTestSuite) TestDownloadManyResolvesInstrumentFile() {
	instrumentFile := filepath.Join(suite.tempDir, "instruments.csv")
	suite.Require().NoError(writeFile(instrumentFile,
		"symbol,exchange,instrument_key,name\nSBIN,NSE,NSE_EQ|INE062A01020,SBI\n"))

	fake := &fakeProvider{
		respond: func(instrument string, chunk daterange.Range) (types.Dataset, error) {
			return dailyCandles(instrument, chunk.Start, 1), nil
		},
	}

	b := suite.newBatch(fake)

	cfg := testConfig()
	cfg.OutputDir = suite.tempDir
	cfg.InstrumentFile = instrumentFile

	results := b.DownloadMany(context.Background(), []string{"SBIN"}, cfg)
	suite.NotEmpty(results["SBIN"])

	suite.Require().NotEmpty(fake.calls)
	suite.Equal("NSE_EQ|INE062A01020", fake.calls[0].instrument)

	// Output files are named by the requested symbol, not the instrument key.
	suite.Contains(results["SBIN"], "SBIN_2024-01-01_to_2024-03-30")
}

func (suite *BatchDownloaderTestSuite) TestDownloadManyBadInstrumentFile() {
	fake := &fakeProvider{
		respond: func(instrument string, chunk daterange.Range) (types.Dataset, error) {
			return dailyCandles(instrument, chunk.Start, 1), nil
		},
	}

	b := suite.newBatch(fake)

	cfg := testConfig()
	cfg.OutputDir = suite.tempDir
	cfg.InstrumentFile = filepath.Join(suite.tempDir, "missing.csv")

	results := b.DownloadMany(context.Background(), []string{"SBIN", "TCS"}, cfg)
	suite.Require().Len(results, 2)
	suite.Empty(results["SBIN"])
	suite.Empty(results["TCS"])
	suite.Empty(fake.calls)
}

func (suite *BatchDownloaderTestSuite) TestDownloadFromListFile() {
	listFile := filepath.Join(suite.tempDir, "symbols.txt")
	suite.Require().NoError(writeFile(listFile, "SBIN\n\n  TCS  \n\n"))

	fake := &fakeProvider{
		respond: func(instrument string, chunk daterange.Range) (types.Dataset, error) {
			return dailyCandles(instrument, chunk.Start, 1), nil
		},
	}

	b := suite.newBatch(fake)

	cfg := testConfig()
	cfg.OutputDir = suite.tempDir

	results := b.DownloadFromListFile(context.Background(), listFile, cfg)
	suite.Require().Len(results, 2)
	suite.NotEmpty(results["SBIN"])
	suite.NotEmpty(results["TCS"])
}

func (suite *BatchDownloaderTestSuite) TestDownloadFromMissingListFile() {
	b := suite.newBatch(&fakeProvider{})

	cfg := testConfig()
	cfg.OutputDir = suite.tempDir

	results := b.DownloadFromListFile(context.Background(), filepath.Join(suite.tempDir, "nope.txt"), cfg)
	suite.NotNil(results)
	suite.Empty(results)
}

func (suite *BatchDownloaderTestSuite) TestSummary() {
	suite.Equal("Download summary: 2/3 symbols successful", Summary(map[string]string{
		"SBIN":     "/tmp/SBIN.csv",
		"RELIANCE": "",
		"TCS":      "/tmp/TCS.csv",
	}))
	suite.Equal("Download summary: 0/0 symbols successful", Summary(map[string]string{}))
}
