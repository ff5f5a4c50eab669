package histdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/arkad-labs/histbatch/internal/logger"
	"github.com/arkad-labs/histbatch/internal/types"
	"github.com/arkad-labs/histbatch/pkg/daterange"
	"github.com/arkad-labs/histbatch/pkg/errors"
	"github.com/arkad-labs/histbatch/pkg/histdata/writer"
)

// SymbolDownloader drives the whole download pipeline for one symbol: split
// the date range into chunks, fetch each chunk with a fixed delay in between,
// merge and time-sort the results, and persist them to one output file.
type SymbolDownloader struct {
	fetcher *ChunkFetcher
	writer  writer.DatasetWriter
	logger  *logger.Logger

	// showProgress toggles the terminal progress bar. Off in tests.
	showProgress bool
}

// NewSymbolDownloader creates a per-symbol downloader.
func NewSymbolDownloader(fetcher *ChunkFetcher, w writer.DatasetWriter, log *logger.Logger) *SymbolDownloader {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &SymbolDownloader{
		fetcher:      fetcher,
		writer:       w,
		logger:       log,
		showProgress: true,
	}
}

// SetShowProgress toggles the terminal progress bar.
func (d *SymbolDownloader) SetShowProgress(show bool) {
	d.showProgress = show
}

// DownloadSymbol downloads all data for one symbol and returns the output
// file path, or an empty string on failure. No error ever escapes: every
// failure is logged and absorbed so the batch can continue with the next
// symbol.
func (d *SymbolDownloader) DownloadSymbol(ctx context.Context, symbol string, cfg Config) string {
	path, err := d.downloadSymbol(ctx, symbol, cfg)
	if err != nil {
		d.logger.Error("symbol download failed",
			zap.String("symbol", symbol),
			zap.Error(err),
		)

		return ""
	}

	return path
}

func (d *SymbolDownloader) downloadSymbol(ctx context.Context, symbol string, cfg Config) (string, error) {
	start, err := cfg.StartTime()
	if err != nil {
		return "", err
	}

	end, err := cfg.EndTime()
	if err != nil {
		return "", err
	}

	chunks := daterange.Split(start, end, cfg.ChunkDays)
	if len(chunks) == 0 {
		return "", errors.Newf(errors.ErrCodeInvalidDateRange, "no chunks for range %s to %s", cfg.StartDate, cfg.EndDate)
	}

	d.logger.Info("downloading symbol in chunks",
		zap.String("symbol", symbol),
		zap.Int("chunks", len(chunks)),
		zap.String("start", cfg.StartDate),
		zap.String("end", cfg.EndDate),
	)

	var bar *progressbar.ProgressBar
	if d.showProgress {
		bar = progressbar.NewOptions(len(chunks),
			progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", symbol)),
			progressbar.OptionShowCount(),
		)
	}

	var merged types.Dataset

	for i, chunk := range chunks {
		d.logger.Info("processing chunk",
			zap.String("symbol", symbol),
			zap.Int("chunk", i+1),
			zap.Int("total", len(chunks)),
			zap.String("range", chunk.String()),
		)

		ds := d.fetcher.Fetch(ctx, symbol, chunk, cfg)
		if !ds.Empty() {
			merged.Merge(ds)
		}

		if bar != nil {
			bar.Add(1)
		}

		// Fixed delay after every chunk call, success or not, to bound
		// the provider call rate.
		time.Sleep(cfg.ChunkDelay)
	}

	if bar != nil {
		bar.Finish()
	}

	if merged.Empty() {
		return "", errors.Newf(errors.ErrCodeNoDataForSymbol, "no data retrieved for %s", symbol)
	}

	merged.SortByTime()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeOutputDirFailed, err, "failed to create output directory %s", cfg.OutputDir)
	}

	path := filepath.Join(cfg.OutputDir, cfg.OutputFileName(symbol)+d.writer.Extension())

	outputPath, err := d.writer.Write(path, merged)
	if err != nil {
		return "", err
	}

	d.logger.Info("saved combined data",
		zap.String("symbol", symbol),
		zap.String("path", outputPath),
		zap.Int("rows", merged.Len()),
	)

	return outputPath, nil
}
