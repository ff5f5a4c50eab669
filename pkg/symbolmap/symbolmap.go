// Package symbolmap resolves human-facing ticker symbols to the instrument
// identifiers required by market data providers.
//
// A Mapper is built once from an instrument master file and reused across a
// whole batch download; loading the file is the expensive step, lookups are
// map reads.
package symbolmap

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/moznion/go-optional"

	"github.com/arkad-labs/histbatch/pkg/errors"
)

// Instrument describes one row of the instrument master.
type Instrument struct {
	Symbol        string
	Exchange      string
	InstrumentKey string
	Name          string
}

// Mapper is a read-only symbol to instrument lookup table. The zero value is a
// passthrough mapper that resolves every symbol to itself, for providers that
// accept raw tickers.
type Mapper struct {
	instruments map[string]Instrument
}

// NewMapper returns a passthrough mapper with no instrument table.
func NewMapper() *Mapper {
	return &Mapper{instruments: nil}
}

// NewMapperFromFile loads an instrument master CSV with columns
// symbol,exchange,instrument_key,name (header row required) and returns a
// mapper over it. Symbols are matched case-insensitively.
func NewMapperFromFile(path string) (*Mapper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInstrumentFileNotFound, err, "failed to open instrument file %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInstrumentFileInvalid, err, "failed to read instrument file header from %s", path)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"symbol", "instrument_key"} {
		if _, ok := col[required]; !ok {
			return nil, errors.Newf(errors.ErrCodeInstrumentFileInvalid, "instrument file %s missing column %q", path, required)
		}
	}

	instruments := make(map[string]Instrument)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInstrumentFileInvalid, err, "failed to parse instrument file %s", path)
		}

		inst := Instrument{
			Symbol:        strings.TrimSpace(record[col["symbol"]]),
			InstrumentKey: strings.TrimSpace(record[col["instrument_key"]]),
		}
		if idx, ok := col["exchange"]; ok && idx < len(record) {
			inst.Exchange = strings.TrimSpace(record[idx])
		}

		if idx, ok := col["name"]; ok && idx < len(record) {
			inst.Name = strings.TrimSpace(record[idx])
		}

		if inst.Symbol == "" {
			continue
		}

		instruments[strings.ToUpper(inst.Symbol)] = inst
	}

	return &Mapper{instruments: instruments}, nil
}

// Lookup returns the instrument for the given symbol, or None when the mapper
// has a table and the symbol is not in it. A passthrough mapper always returns
// a synthetic instrument whose key equals the symbol.
func (m *Mapper) Lookup(symbol string) optional.Option[Instrument] {
	if m == nil || m.instruments == nil {
		return optional.Some(Instrument{Symbol: symbol, InstrumentKey: symbol})
	}

	inst, ok := m.instruments[strings.ToUpper(symbol)]
	if !ok {
		return optional.None[Instrument]()
	}

	return optional.Some(inst)
}

// Resolve returns the provider-facing instrument key for the given symbol.
func (m *Mapper) Resolve(symbol string) (string, error) {
	inst, err := m.Lookup(symbol).Take()
	if err != nil {
		return "", errors.Newf(errors.ErrCodeSymbolNotFound, "no instrument found for symbol %s", symbol)
	}

	return inst.InstrumentKey, nil
}

// Size returns the number of instruments loaded. A passthrough mapper has size zero.
func (m *Mapper) Size() int {
	return len(m.instruments)
}
