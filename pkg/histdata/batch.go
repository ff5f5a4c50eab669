package histdata

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arkad-labs/histbatch/internal/logger"
	"github.com/arkad-labs/histbatch/pkg/histdata/provider"
	"github.com/arkad-labs/histbatch/pkg/histdata/writer"
	"github.com/arkad-labs/histbatch/pkg/symbolmap"
)

// BatchDownloader downloads historical data for many symbols sequentially.
// One symbol mapper is built per batch and shared across all symbols; a
// failure on one symbol never stops the rest.
type BatchDownloader struct {
	provider provider.Provider
	writer   writer.DatasetWriter
	logger   *logger.Logger

	showProgress bool
}

// NewBatchDownloader creates a batch downloader with the provider and writer
// named in the config.
func NewBatchDownloader(cfg Config, log *logger.Logger) (*BatchDownloader, error) {
	p, err := provider.NewProvider(cfg.Provider, provider.Config{PolygonAPIKey: cfg.PolygonAPIKey})
	if err != nil {
		return nil, err
	}

	w, err := writer.NewWriter(cfg.Writer)
	if err != nil {
		return nil, err
	}

	return NewBatchDownloaderWith(p, w, log), nil
}

// NewBatchDownloaderWith creates a batch downloader from explicit
// collaborators. Used by tests and callers with custom providers.
func NewBatchDownloaderWith(p provider.Provider, w writer.DatasetWriter, log *logger.Logger) *BatchDownloader {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BatchDownloader{
		provider:     p,
		writer:       w,
		logger:       log,
		showProgress: true,
	}
}

// SetShowProgress toggles the per-symbol terminal progress bar.
func (b *BatchDownloader) SetShowProgress(show bool) {
	b.showProgress = show
}

// DownloadMany downloads data for each symbol in order and returns a map from
// symbol to output path, with an empty string marking a failed symbol. The
// map always has one entry per requested symbol, even when every download
// fails.
func (b *BatchDownloader) DownloadMany(ctx context.Context, symbols []string, cfg Config) map[string]string {
	results := make(map[string]string, len(symbols))

	mapper, err := b.newMapper(cfg)
	if err != nil {
		// Without a symbol mapper nothing can be resolved; mark the
		// whole batch failed rather than downloading wrong instruments.
		b.logger.Error("failed to build symbol mapper", zap.Error(err))

		for _, symbol := range symbols {
			results[symbol] = ""
		}

		return results
	}

	fetcher := NewChunkFetcher(b.provider, mapper, b.logger)
	downloader := NewSymbolDownloader(fetcher, b.writer, b.logger)
	downloader.SetShowProgress(b.showProgress)

	for _, symbol := range symbols {
		b.logger.Info("processing symbol", zap.String("symbol", symbol))

		path := downloader.DownloadSymbol(ctx, symbol, cfg)
		results[symbol] = path

		if path != "" {
			b.logger.Info("successfully downloaded symbol", zap.String("symbol", symbol), zap.String("path", path))
		} else {
			b.logger.Error("failed to download symbol", zap.String("symbol", symbol))
		}

		// Fixed delay between symbols to avoid provider rate limiting.
		time.Sleep(cfg.SymbolDelay)
	}

	return results
}

// DownloadFromListFile reads one symbol per non-blank line from a text file
// and downloads all of them. An unreadable file yields an empty result map.
func (b *BatchDownloader) DownloadFromListFile(ctx context.Context, path string, cfg Config) map[string]string {
	symbols, err := readSymbolList(path)
	if err != nil {
		b.logger.Error("failed to read symbol list file",
			zap.String("path", path),
			zap.Error(err),
		)

		return map[string]string{}
	}

	return b.DownloadMany(ctx, symbols, cfg)
}

func (b *BatchDownloader) newMapper(cfg Config) (*symbolmap.Mapper, error) {
	if cfg.InstrumentFile == "" {
		return symbolmap.NewMapper(), nil
	}

	return symbolmap.NewMapperFromFile(cfg.InstrumentFile)
}

func readSymbolList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var symbols []string

	for _, line := range strings.Split(string(data), "\n") {
		symbol := strings.TrimSpace(line)
		if symbol == "" {
			continue
		}

		symbols = append(symbols, symbol)
	}

	return symbols, nil
}

// Summary formats the batch outcome as "Download summary: N/M symbols successful".
func Summary(results map[string]string) string {
	success := 0

	for _, path := range results {
		if path != "" {
			success++
		}
	}

	return fmt.Sprintf("Download summary: %d/%d symbols successful", success, len(results))
}
