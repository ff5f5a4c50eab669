package writer

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/arkad-labs/histbatch/internal/types"
	"github.com/arkad-labs/histbatch/pkg/errors"
)

// DuckDBWriter stages the dataset in an in-memory DuckDB table and exports it
// as a Parquet file.
type DuckDBWriter struct{}

// NewDuckDBWriter creates a DuckDB-backed Parquet dataset writer.
func NewDuckDBWriter() *DuckDBWriter {
	return &DuckDBWriter{}
}

// Extension returns ".parquet".
func (w *DuckDBWriter) Extension() string {
	return ".parquet"
}

// Write stages all candles in a transaction and copies the table to path in
// Parquet format.
func (w *DuckDBWriter) Write(path string, ds types.Dataset) (outputPath string, err error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS market_data (
			id TEXT,
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to create staging table", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to begin transaction", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO market_data (id, time, symbol, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to prepare insert statement", err)
	}
	defer stmt.Close()

	for _, c := range ds.Candles {
		_, err = stmt.Exec(uuid.New().String(), c.Time, c.Symbol, c.Open, c.High, c.Low, c.Close, c.Volume)
		if err != nil {
			tx.Rollback()

			return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to stage row for %s", c.Symbol)
		}
	}

	if err = tx.Commit(); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to commit staging transaction", err)
	}

	_, err = db.Exec(fmt.Sprintf(`COPY market_data TO '%s' (FORMAT PARQUET)`, path))
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to export Parquet file %s", path)
	}

	return path, nil
}
