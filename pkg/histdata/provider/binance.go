package provider

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"

	"github.com/arkad-labs/histbatch/internal/types"
	"github.com/arkad-labs/histbatch/pkg/daterange"
	"github.com/arkad-labs/histbatch/pkg/errors"
)

// Binance caps klines responses at 500 rows per request.
const binancePageSize = 500

// KlinesAPI abstracts the Binance klines endpoint so tests can substitute a fake.
type KlinesAPI interface {
	Klines(ctx context.Context, symbol string, interval string, startTimeMillis int64, endTimeMillis int64) ([]*binance.Kline, error)
}

type binanceAPI struct {
	client *binance.Client
}

func (b *binanceAPI) Klines(ctx context.Context, symbol string, interval string, startTimeMillis int64, endTimeMillis int64) ([]*binance.Kline, error) {
	return b.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		StartTime(startTimeMillis).
		EndTime(endTimeMillis).
		Limit(binancePageSize).
		Do(ctx)
}

// BinanceProvider fetches klines from the public Binance market data API.
// No authentication is required for historical klines.
type BinanceProvider struct {
	api KlinesAPI
}

// NewBinanceProvider creates a Binance provider.
func NewBinanceProvider() *BinanceProvider {
	return &BinanceProvider{api: &binanceAPI{client: binance.NewClient("", "")}}
}

// NewBinanceProviderWithAPI creates a Binance provider backed by a custom API
// implementation. Used in tests.
func NewBinanceProviderWithAPI(api KlinesAPI) *BinanceProvider {
	return &BinanceProvider{api: api}
}

// FetchRange downloads all klines for the instrument within the range,
// paginating past the 500 row response limit. The bar open time is used as the
// row timestamp.
func (p *BinanceProvider) FetchRange(ctx context.Context, instrument string, r daterange.Range, timespan Timespan) (types.Dataset, error) {
	startMillis := r.Start.UnixMilli()
	endMillis := r.End.AddDate(0, 0, 1).Add(-time.Millisecond).UnixMilli()

	var ds types.Dataset

	currentStart := startMillis
	for {
		klines, err := p.api.Klines(ctx, instrument, timespan.BinanceInterval(), currentStart, endMillis)
		if err != nil {
			return types.Dataset{}, errors.Wrapf(errors.ErrCodeChunkFetchFailed, err, "binance klines request failed for %s (%s)", instrument, r)
		}

		for _, k := range klines {
			candle, err := klineToCandle(instrument, k)
			if err != nil {
				return types.Dataset{}, err
			}

			ds.Append(candle)
		}

		if len(klines) < binancePageSize {
			break
		}

		// Continue from just past the close of the last bar to avoid
		// refetching it.
		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			break
		}
	}

	return ds, nil
}

func klineToCandle(instrument string, k *binance.Kline) (types.Candle, error) {
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return types.Candle{}, errors.Wrapf(errors.ErrCodeChunkParseFailed, err, "invalid open price %q for %s", k.Open, instrument)
	}

	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return types.Candle{}, errors.Wrapf(errors.ErrCodeChunkParseFailed, err, "invalid high price %q for %s", k.High, instrument)
	}

	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return types.Candle{}, errors.Wrapf(errors.ErrCodeChunkParseFailed, err, "invalid low price %q for %s", k.Low, instrument)
	}

	closePrice, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return types.Candle{}, errors.Wrapf(errors.ErrCodeChunkParseFailed, err, "invalid close price %q for %s", k.Close, instrument)
	}

	volume, err := strconv.ParseFloat(k.Volume, 64)
	if err != nil {
		return types.Candle{}, errors.Wrapf(errors.ErrCodeChunkParseFailed, err, "invalid volume %q for %s", k.Volume, instrument)
	}

	return types.Candle{
		Symbol: instrument,
		Time:   time.UnixMilli(k.OpenTime),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}
