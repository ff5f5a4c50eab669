package histdata

import (
	"context"

	"go.uber.org/zap"

	"github.com/arkad-labs/histbatch/internal/logger"
	"github.com/arkad-labs/histbatch/internal/types"
	"github.com/arkad-labs/histbatch/pkg/daterange"
	"github.com/arkad-labs/histbatch/pkg/histdata/provider"
	"github.com/arkad-labs/histbatch/pkg/symbolmap"
)

// ChunkFetcher obtains the data for a single symbol and chunk range. It is a
// fail-soft boundary: every failure is logged and reported as an empty
// dataset so one bad chunk never aborts the rest of a symbol's download.
type ChunkFetcher struct {
	provider provider.Provider
	mapper   *symbolmap.Mapper
	logger   *logger.Logger
}

// NewChunkFetcher creates a chunk fetcher. A nil mapper means symbols are
// passed to the provider unchanged.
func NewChunkFetcher(p provider.Provider, mapper *symbolmap.Mapper, log *logger.Logger) *ChunkFetcher {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ChunkFetcher{
		provider: p,
		mapper:   mapper,
		logger:   log,
	}
}

// Fetch downloads the bars for one chunk. The returned dataset is empty when
// the source has no data for the range or when anything goes wrong.
func (f *ChunkFetcher) Fetch(ctx context.Context, symbol string, chunk daterange.Range, cfg Config) types.Dataset {
	chunkCfg := cfg.WithOverrides(symbol, chunk)

	instrument, err := f.mapper.Resolve(symbol)
	if err != nil {
		f.logger.Warn("failed to resolve symbol, skipping chunk",
			zap.String("symbol", symbol),
			zap.String("range", chunk.String()),
			zap.Error(err),
		)

		return types.Dataset{}
	}

	ds, err := f.provider.FetchRange(ctx, instrument, chunk, chunkCfg.Interval)
	if err != nil {
		f.logger.Warn("chunk download failed, skipping",
			zap.String("symbol", symbol),
			zap.String("instrument", instrument),
			zap.String("range", chunk.String()),
			zap.Error(err),
		)

		return types.Dataset{}
	}

	if ds.Empty() {
		f.logger.Warn("no data returned for chunk",
			zap.String("symbol", symbol),
			zap.String("range", chunk.String()),
		)

		return types.Dataset{}
	}

	f.logger.Info("downloaded chunk",
		zap.String("symbol", symbol),
		zap.String("range", chunk.String()),
		zap.Int("rows", ds.Len()),
	)

	return ds
}
