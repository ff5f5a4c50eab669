package provider

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/arkad-labs/histbatch/internal/types"
	"github.com/arkad-labs/histbatch/pkg/daterange"
	"github.com/arkad-labs/histbatch/pkg/errors"
)

// AggsIterator abstracts the iterator returned by the Polygon aggregates API.
type AggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// AggsAPI abstracts the Polygon REST client so tests can substitute a fake.
type AggsAPI interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) AggsIterator
}

type polygonAPI struct {
	client *polygon.Client
}

func (p *polygonAPI) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) AggsIterator {
	return p.client.ListAggs(ctx, params, options...)
}

// PolygonProvider fetches aggregates from Polygon.io.
type PolygonProvider struct {
	api AggsAPI
}

// NewPolygonProvider creates a Polygon provider authenticated with the given API key.
func NewPolygonProvider(apiKey string) (*PolygonProvider, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon api key is required")
	}

	return &PolygonProvider{api: &polygonAPI{client: polygon.New(apiKey)}}, nil
}

// NewPolygonProviderWithAPI creates a Polygon provider backed by a custom API
// implementation. Used in tests.
func NewPolygonProviderWithAPI(api AggsAPI) *PolygonProvider {
	return &PolygonProvider{api: api}
}

// FetchRange downloads all aggregates for the instrument within the range.
// The range end is inclusive, so the request window extends to the end of the
// last day.
func (p *PolygonProvider) FetchRange(ctx context.Context, instrument string, r daterange.Range, timespan Timespan) (types.Dataset, error) {
	from := r.Start
	to := r.End.AddDate(0, 0, 1).Add(-time.Millisecond)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     instrument,
		Multiplier: timespan.Multiplier(),
		Timespan:   timespan.PolygonTimespan(),
		From:       models.Millis(from),
		To:         models.Millis(to),
	}.WithLimit(50000)

	iter := p.api.ListAggs(ctx, params)

	var ds types.Dataset

	for iter.Next() {
		agg := iter.Item()
		ds.Append(types.Candle{
			Symbol: instrument,
			Time:   time.Time(agg.Timestamp),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: agg.Volume,
		})
	}

	if err := iter.Err(); err != nil {
		return types.Dataset{}, errors.Wrapf(errors.ErrCodeChunkFetchFailed, err, "polygon aggregates request failed for %s (%s)", instrument, r)
	}

	return ds, nil
}
