package histdata

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arkad-labs/histbatch/internal/types"
	"github.com/arkad-labs/histbatch/pkg/daterange"
	"github.com/arkad-labs/histbatch/pkg/histdata/provider"
	"github.com/arkad-labs/histbatch/pkg/symbolmap"
)

// fetchCall records one FetchRange invocation on the fake provider.
type fetchCall struct {
	instrument string
	chunk      daterange.Range
	timespan   provider.Timespan
}

// fakeProvider implements provider.Provider for testing. The respond function
// decides what each call returns.
type fakeProvider struct {
	calls   []fetchCall
	respond func(instrument string, chunk daterange.Range) (types.Dataset, error)
}

func (f *fakeProvider) FetchRange(_ context.Context, instrument string, chunk daterange.Range, timespan provider.Timespan) (types.Dataset, error) {
	f.calls = append(f.calls, fetchCall{instrument: instrument, chunk: chunk, timespan: timespan})

	if f.respond == nil {
		return types.Dataset{}, nil
	}

	return f.respond(instrument, chunk)
}

func dailyCandles(symbol string, start time.Time, days int) types.Dataset {
	var ds types.Dataset
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		ds.Append(types.Candle{
			Symbol: symbol,
			Time:   day,
			Open:   100 + float64(i),
			High:   101 + float64(i),
			Low:    99 + float64(i),
			Close:  100.5 + float64(i),
			Volume: 10000,
		})
	}

	return ds
}

func testConfig() Config {
	cfg, err := NewConfig()
	if err != nil {
		panic(err)
	}

	cfg.StartDate = "2024-01-01"
	cfg.EndDate = "2024-03-30"
	cfg.ChunkDelay = 0
	cfg.SymbolDelay = 0

	return cfg
}

type ChunkFetcherTestSuite struct {
	suite.Suite
}

func TestChunkFetcherSuite(t *testing.T) {
	suite.Run(t, new(ChunkFetcherTestSuite))
}

func (suite *ChunkFetcherTestSuite) TestFetchSuccess() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fake := &fakeProvider{
		respond: func(instrument string, chunk daterange.Range) (types.Dataset, error) {
			return dailyCandles(instrument, chunk.Start, 3), nil
		},
	}

	fetcher := NewChunkFetcher(fake, symbolmap.NewMapper(), nil)

	chunk := daterange.Range{Start: start, End: start.AddDate(0, 0, 29)}
	ds := fetcher.Fetch(context.Background(), "SBIN", chunk, testConfig())

	suite.Equal(3, ds.Len())
	suite.Require().Len(fake.calls, 1)
	suite.Equal("SBIN", fake.calls[0].instrument)
	suite.Equal(chunk, fake.calls[0].chunk)
	suite.Equal(provider.TimespanOneDay, fake.calls[0].timespan)
}

func (suite *ChunkFetcherTestSuite) TestFetchResolvesThroughMapper() {
	tempFile := suite.T().TempDir() + "/instruments.csv"
	suite.Require().NoError(writeFile(tempFile,
		"symbol,exchange,instrument_key,name\nSBIN,NSE,NSE_EQ|INE062A01020,SBI\n"))

	mapper, err := symbolmap.NewMapperFromFile(tempFile)
	suite.Require().NoError(err)

	fake := &fakeProvider{
		respond: func(instrument string, chunk daterange.Range) (types.Dataset, error) {
			return dailyCandles(instrument, chunk.Start, 1), nil
		},
	}

	fetcher := NewChunkFetcher(fake, mapper, nil)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	chunk := daterange.Range{Start: start, End: start}

	ds := fetcher.Fetch(context.Background(), "SBIN", chunk, testConfig())
	suite.False(ds.Empty())
	suite.Require().Len(fake.calls, 1)
	suite.Equal("NSE_EQ|INE062A01020", fake.calls[0].instrument)
}

func (suite *ChunkFetcherTestSuite) TestFetchUnknownSymbolReturnsEmpty() {
	tempFile := suite.T().TempDir() + "/instruments.csv"
	suite.Require().NoError(writeFile(tempFile,
		"symbol,exchange,instrument_key,name\nSBIN,NSE,NSE_EQ|INE062A01020,SBI\n"))

	mapper, err := symbolmap.NewMapperFromFile(tempFile)
	suite.Require().NoError(err)

	fake := &fakeProvider{}
	fetcher := NewChunkFetcher(fake, mapper, nil)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ds := fetcher.Fetch(context.Background(), "UNKNOWN", daterange.Range{Start: start, End: start}, testConfig())

	suite.True(ds.Empty())
	// Provider must not be called when resolution fails.
	suite.Empty(fake.calls)
}

func (suite *ChunkFetcherTestSuite) TestFetchProviderErrorReturnsEmpty() {
	fake := &fakeProvider{
		respond: func(string, daterange.Range) (types.Dataset, error) {
			return types.Dataset{}, fmt.Errorf("connection refused")
		},
	}

	fetcher := NewChunkFetcher(fake, symbolmap.NewMapper(), nil)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ds := fetcher.Fetch(context.Background(), "SBIN", daterange.Range{Start: start, End: start}, testConfig())

	suite.True(ds.Empty())
}
