// Package provider implements historical market data clients. Each provider
// fetches OHLCV bars for one instrument over one date range; chunking, delays,
// and persistence live in the calling pipeline.
package provider

import (
	"context"

	"github.com/arkad-labs/histbatch/internal/types"
	"github.com/arkad-labs/histbatch/pkg/daterange"
	"github.com/arkad-labs/histbatch/pkg/errors"
)

// Type identifies a market data provider implementation.
type Type string

const (
	TypePolygon Type = "polygon"
	TypeBinance Type = "binance"
)

// Provider fetches historical OHLCV data from an external source.
type Provider interface {
	// FetchRange returns all bars for the instrument within the inclusive
	// date range at the given interval. A range with no data yields an
	// empty dataset and a nil error; errors are reserved for transport and
	// parsing failures.
	FetchRange(ctx context.Context, instrument string, r daterange.Range, timespan Timespan) (types.Dataset, error)
}

// Config carries provider-specific settings.
type Config struct {
	// PolygonAPIKey authenticates against Polygon.io. Required for the
	// polygon provider; unused otherwise.
	PolygonAPIKey string
}

// NewProvider creates a provider of the given type.
func NewProvider(providerType Type, config Config) (Provider, error) {
	switch providerType {
	case TypePolygon:
		return NewPolygonProvider(config.PolygonAPIKey)
	case TypeBinance:
		return NewBinanceProvider(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", string(providerType))
	}
}
