// Package histdata implements the chunked batch download pipeline for
// historical OHLCV data: per-chunk fetching, per-symbol orchestration, and
// multi-symbol batch runs with partial failure isolation.
package histdata

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/arkad-labs/histbatch/pkg/daterange"
	"github.com/arkad-labs/histbatch/pkg/errors"
	"github.com/arkad-labs/histbatch/pkg/histdata/provider"
	"github.com/arkad-labs/histbatch/pkg/histdata/writer"
)

const dateLayout = "2006-01-02"

// Config holds the settings for a download run. A base config describes the
// whole run; per-chunk views are derived with WithOverrides and never mutate
// the original.
type Config struct {
	// Symbol is the ticker being downloaded. Set per symbol by the batch
	// pipeline; empty in the base config.
	Symbol string `yaml:"symbol"`

	StartDate string `yaml:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `yaml:"end_date"   validate:"required,datetime=2006-01-02"`

	OutputDir string `yaml:"output_dir" default:"historical_data" validate:"required"`
	ChunkDays int    `yaml:"chunk_days" default:"30" validate:"min=1"`

	// ChunkDelay and SymbolDelay are fixed sleeps between provider calls
	// and between symbols, to stay under external rate limits.
	ChunkDelay  time.Duration `yaml:"chunk_delay" default:"1s" validate:"min=0"`
	SymbolDelay time.Duration `yaml:"symbol_delay" default:"1s" validate:"min=0"`

	Interval provider.Timespan `yaml:"interval" default:"1d"`
	Provider provider.Type     `yaml:"provider" default:"binance" validate:"oneof=polygon binance"`
	Writer   writer.Type       `yaml:"writer" default:"csv" validate:"oneof=csv duckdb"`

	// PolygonAPIKey authenticates the polygon provider. Unused otherwise.
	PolygonAPIKey string `yaml:"polygon_api_key"`

	// InstrumentFile points at the instrument master CSV used to resolve
	// symbols. When empty, symbols are passed to the provider unchanged.
	InstrumentFile string `yaml:"instrument_file"`
}

// NewConfig returns a config with all defaults applied.
func NewConfig() (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to apply config defaults", err)
	}

	return cfg, nil
}

// LoadConfig reads a YAML config file, applies defaults for unset fields, and
// validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
	}

	if err := defaults.Set(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to apply config defaults", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field constraints and date ordering.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := c.Interval.Validate(); err != nil {
		return err
	}

	start, err := c.StartTime()
	if err != nil {
		return err
	}

	end, err := c.EndTime()
	if err != nil {
		return err
	}

	if start.After(end) {
		return errors.Newf(errors.ErrCodeInvalidDateRange, "start date %s is after end date %s", c.StartDate, c.EndDate)
	}

	return nil
}

// StartTime parses StartDate as a UTC calendar date.
func (c Config) StartTime() (time.Time, error) {
	t, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidDateRange, err, "invalid start date %q", c.StartDate)
	}

	return t.UTC(), nil
}

// EndTime parses EndDate as a UTC calendar date.
func (c Config) EndTime() (time.Time, error) {
	t, err := time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidDateRange, err, "invalid end date %q", c.EndDate)
	}

	return t.UTC(), nil
}

// WithOverrides returns a copy of the config scoped to one symbol and one
// chunk range. All other settings are inherited unchanged.
func (c Config) WithOverrides(symbol string, r daterange.Range) Config {
	c.Symbol = symbol
	c.StartDate = r.Start.Format(dateLayout)
	c.EndDate = r.End.Format(dateLayout)

	return c
}

// OutputFileName returns the base output file name for one symbol, without
// directory or extension: "<symbol>_<start>_to_<end>".
func (c Config) OutputFileName(symbol string) string {
	return fmt.Sprintf("%s_%s_to_%s", symbol, c.StartDate, c.EndDate)
}
