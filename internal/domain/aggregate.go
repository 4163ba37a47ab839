package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ErrDateParse is matched by every *DateParseError.
var ErrDateParse = errors.New("unparseable timestamp")

// DateParseError reports a timestamp that could not be placed against the
// aggregation window. It aborts the render.
type DateParseError struct {
	Label     string
	Timestamp string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("parse timestamp %q for %q", e.Timestamp, e.Label)
}

func (e *DateParseError) Unwrap() error { return ErrDateParse }

// timestampLayouts are tried in order. Spreadsheet date serials are turned
// into ISO dates by the source before they get here.
var timestampLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"Jan-2006",
	"Jan 02, 2006",
	"Jan 2006",
	"2006-01",
}

// ParseTimestamp parses s with the first layout that accepts it.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DroppedRows counts the rows Aggregate left out, by reason.
type DroppedRows struct {
	Unresolved  int
	OutOfWindow int
	Blank       int
}

// AggregateResult is the per-region mean plus what was dropped. Unresolved
// lists each unresolved label once; Dropped counts rows.
type AggregateResult struct {
	Values     map[RegionCode]float64
	Unresolved []string
	Dropped    DroppedRows
}

// Aggregate computes the mean value per resolved region. When window is
// non-nil, rows outside it are ignored and a row whose timestamp cannot be
// parsed fails the whole aggregation. NaN values count as missing. Regions
// without a qualifying row are absent from the result.
func Aggregate(rows []RawObservation, resolver Resolver, window *Window) (AggregateResult, error) {
	grouped := make(map[RegionCode][]float64)
	seenUnresolved := make(map[string]bool)
	var unresolved []string
	var dropped DroppedRows

	for _, row := range rows {
		code, ok := resolver.Resolve(row.RegionLabel)
		if !ok {
			dropped.Unresolved++
			if !seenUnresolved[row.RegionLabel] {
				seenUnresolved[row.RegionLabel] = true
				unresolved = append(unresolved, row.RegionLabel)
			}
			continue
		}

		if window != nil {
			ts, ok := ParseTimestamp(row.Timestamp)
			if !ok {
				return AggregateResult{}, &DateParseError{Label: row.RegionLabel, Timestamp: row.Timestamp}
			}
			if !window.Contains(ts) {
				dropped.OutOfWindow++
				continue
			}
		}

		if math.IsNaN(row.Value) {
			dropped.Blank++
			continue
		}
		grouped[code] = append(grouped[code], row.Value)
	}

	values := make(map[RegionCode]float64, len(grouped))
	for code, vs := range grouped {
		values[code] = stat.Mean(vs, nil)
	}
	return AggregateResult{Values: values, Unresolved: unresolved, Dropped: dropped}, nil
}
