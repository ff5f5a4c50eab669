package types

import (
	"sort"
	"time"
)

// Candle represents a single OHLCV bar returned by a market data provider.
type Candle struct {
	Symbol string    `csv:"symbol"`
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// Dataset is an ordered collection of candles, typically the concatenation of
// several chunk downloads for one symbol.
type Dataset struct {
	Candles []Candle
}

// Append adds candles to the end of the dataset, preserving insertion order.
func (d *Dataset) Append(candles ...Candle) {
	d.Candles = append(d.Candles, candles...)
}

// Merge appends all candles from other after the existing candles.
func (d *Dataset) Merge(other Dataset) {
	d.Candles = append(d.Candles, other.Candles...)
}

// Len returns the number of candles in the dataset.
func (d Dataset) Len() int {
	return len(d.Candles)
}

// Empty reports whether the dataset contains no candles.
func (d Dataset) Empty() bool {
	return len(d.Candles) == 0
}

// SortByTime sorts candles ascending by their timestamp. The sort is stable:
// rows with equal timestamps keep their insertion order, and duplicate rows at
// chunk boundaries are preserved rather than deduplicated.
func (d *Dataset) SortByTime() {
	sort.SliceStable(d.Candles, func(i, j int) bool {
		return d.Candles[i].Time.Before(d.Candles[j].Time)
	})
}

// TimeColumn returns the name of the time column to use when serializing the
// dataset. Daily or coarser data (every timestamp at midnight UTC) uses "date";
// anything finer uses "timestamp".
func (d Dataset) TimeColumn() string {
	for _, c := range d.Candles {
		t := c.Time.UTC()
		if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0 {
			return "timestamp"
		}
	}

	return "date"
}
