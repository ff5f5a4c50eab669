// Package writer persists merged datasets to per-symbol output files.
package writer

import (
	"github.com/arkad-labs/histbatch/internal/types"
	"github.com/arkad-labs/histbatch/pkg/errors"
)

// Type identifies a dataset writer implementation.
type Type string

const (
	TypeCSV    Type = "csv"
	TypeDuckDB Type = "duckdb"
)

// DatasetWriter writes one merged dataset to a file.
type DatasetWriter interface {
	// Extension returns the output file extension, including the leading dot.
	Extension() string
	// Write persists the dataset to the given path and returns the path on
	// success.
	Write(path string, ds types.Dataset) (string, error)
}

// NewWriter creates a dataset writer of the given type.
func NewWriter(writerType Type) (DatasetWriter, error) {
	switch writerType {
	case TypeCSV:
		return NewCSVWriter(), nil
	case TypeDuckDB:
		return NewDuckDBWriter(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidWriter, "unsupported dataset writer: %s", string(writerType))
	}
}
