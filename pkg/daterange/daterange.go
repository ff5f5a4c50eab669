// Package daterange provides calendar date interval splitting for chunked
// historical data downloads.
package daterange

import (
	"fmt"
	"time"
)

// Range represents an inclusive calendar date interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days covered by the range, inclusive.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// String formats the range as "YYYY-MM-DD to YYYY-MM-DD".
func (r Range) String() string {
	return fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// Split partitions the inclusive interval [start, end] into consecutive
// sub-ranges of at most chunkDays calendar days. The resulting ranges are
// contiguous, non-overlapping, chronologically ordered, and their union equals
// [start, end] exactly. A start equal to end yields a single one-day range.
//
// Split returns an empty slice when start is after end or chunkDays is less
// than one; both are caller contract violations.
func Split(start time.Time, end time.Time, chunkDays int) []Range {
	if chunkDays < 1 || start.After(end) {
		return nil
	}

	start = truncateToDay(start)
	end = truncateToDay(end)

	var chunks []Range

	current := start
	for !current.After(end) {
		chunkEnd := current.AddDate(0, 0, chunkDays-1)
		if chunkEnd.After(end) {
			chunkEnd = end
		}

		chunks = append(chunks, Range{Start: current, End: chunkEnd})
		current = chunkEnd.AddDate(0, 0, 1)
	}

	return chunks
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
