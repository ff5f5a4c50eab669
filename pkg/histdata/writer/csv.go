package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/arkad-labs/histbatch/internal/types"
	"github.com/arkad-labs/histbatch/pkg/errors"
)

// CSVWriter writes datasets as CSV files with a header row. The time column is
// named "date" for daily data and "timestamp" for intraday data, matching what
// downstream tooling expects from the original downloads.
type CSVWriter struct{}

// NewCSVWriter creates a CSV dataset writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// Extension returns ".csv".
func (w *CSVWriter) Extension() string {
	return ".csv"
}

// Write persists the dataset to path. Rows are written in dataset order.
func (w *CSVWriter) Write(path string, ds types.Dataset) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to create output file %s", path)
	}
	defer f.Close()

	cw := csv.NewWriter(f)

	timeColumn := ds.TimeColumn()

	if err := cw.Write([]string{timeColumn, "symbol", "open", "high", "low", "close", "volume"}); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write header to %s", path)
	}

	for _, c := range ds.Candles {
		record := []string{
			formatTime(c.Time, timeColumn),
			c.Symbol,
			fmt.Sprintf("%f", c.Open),
			fmt.Sprintf("%f", c.High),
			fmt.Sprintf("%f", c.Low),
			fmt.Sprintf("%f", c.Close),
			fmt.Sprintf("%f", c.Volume),
		}

		if err := cw.Write(record); err != nil {
			return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to write row to %s", path)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to flush %s", path)
	}

	return path, nil
}

func formatTime(t time.Time, timeColumn string) string {
	if timeColumn == "date" {
		return t.UTC().Format("2006-01-02")
	}

	return t.UTC().Format(time.RFC3339)
}
