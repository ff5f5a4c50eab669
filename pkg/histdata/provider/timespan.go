package provider

import (
	polygonModels "github.com/polygon-io/client-go/rest/models"

	"github.com/arkad-labs/histbatch/pkg/errors"
)

// Timespan is the bar interval for downloaded data, expressed in the compact
// form shared by most exchange APIs ("1m", "1h", "1d", ...).
type Timespan string

const (
	TimespanOneSecond      Timespan = "1s"
	TimespanOneMinute      Timespan = "1m"
	TimespanThreeMinutes   Timespan = "3m"
	TimespanFiveMinutes    Timespan = "5m"
	TimespanFifteenMinutes Timespan = "15m"
	TimespanThirtyMinutes  Timespan = "30m"
	TimespanOneHour        Timespan = "1h"
	TimespanTwoHours       Timespan = "2h"
	TimespanFourHours      Timespan = "4h"
	TimespanSixHours       Timespan = "6h"
	TimespanEightHours     Timespan = "8h"
	TimespanTwelveHours    Timespan = "12h"
	TimespanOneDay         Timespan = "1d"
	TimespanThreeDays      Timespan = "3d"
	TimespanOneWeek        Timespan = "1w"
	TimespanOneMonth       Timespan = "1M"
)

// Validate reports whether the timespan is one of the supported intervals.
func (t Timespan) Validate() error {
	switch t {
	case TimespanOneSecond, TimespanOneMinute, TimespanThreeMinutes, TimespanFiveMinutes,
		TimespanFifteenMinutes, TimespanThirtyMinutes, TimespanOneHour, TimespanTwoHours,
		TimespanFourHours, TimespanSixHours, TimespanEightHours, TimespanTwelveHours,
		TimespanOneDay, TimespanThreeDays, TimespanOneWeek, TimespanOneMonth:
		return nil
	default:
		return errors.Newf(errors.ErrCodeInvalidTimespan, "unsupported timespan: %s", string(t))
	}
}

// Multiplier returns the numeric prefix of the interval, used by providers
// that express intervals as multiplier plus unit.
func (t Timespan) Multiplier() int {
	switch t {
	case TimespanThreeMinutes, TimespanThreeDays:
		return 3
	case TimespanFiveMinutes:
		return 5
	case TimespanFifteenMinutes:
		return 15
	case TimespanThirtyMinutes:
		return 30
	case TimespanTwoHours:
		return 2
	case TimespanFourHours:
		return 4
	case TimespanSixHours:
		return 6
	case TimespanEightHours:
		return 8
	case TimespanTwelveHours:
		return 12
	default:
		return 1
	}
}

// PolygonTimespan maps the interval unit to the Polygon API timespan.
func (t Timespan) PolygonTimespan() polygonModels.Timespan {
	switch t {
	case TimespanOneSecond:
		return polygonModels.Second
	case TimespanOneMinute, TimespanThreeMinutes, TimespanFiveMinutes, TimespanFifteenMinutes, TimespanThirtyMinutes:
		return polygonModels.Minute
	case TimespanOneHour, TimespanTwoHours, TimespanFourHours, TimespanSixHours, TimespanEightHours, TimespanTwelveHours:
		return polygonModels.Hour
	case TimespanOneDay, TimespanThreeDays:
		return polygonModels.Day
	case TimespanOneWeek:
		return polygonModels.Week
	case TimespanOneMonth:
		return polygonModels.Month
	default:
		return polygonModels.Day
	}
}

// BinanceInterval returns the Binance klines interval string, which matches
// the compact form directly.
func (t Timespan) BinanceInterval() string {
	return string(t)
}
