package domain

import (
	"math"
	"time"
)

// Metric names a price series after conversion to $/MWh.
type Metric string

const (
	MetricNaturalGas  Metric = "natural_gas"
	MetricElectricity Metric = "electricity"
)

// RawObservation is one numeric cell from a source table. Timestamp is the
// source text and is parsed by Aggregate only when a window is applied.
type RawObservation struct {
	RegionLabel string
	Timestamp   string
	Value       float64
}

// RegionTable holds exactly one aggregated value per region for one metric.
type RegionTable struct {
	Metric Metric
	Values map[RegionCode]float64
}

// JoinedRecord is a region present in every joined table.
type JoinedRecord struct {
	Region   RegionCode         `json:"region"`
	Values   map[Metric]float64 `json:"values"`
	Category Category           `json:"category,omitempty"`
}

// Value returns the record's value for m and whether it is present.
func (r JoinedRecord) Value(m Metric) (float64, bool) {
	v, ok := r.Values[m]
	return v, ok
}

// ThresholdConfig holds one threshold per metric, in $/MWh.
type ThresholdConfig map[Metric]float64

// DefaultThresholds returns the gas and electricity defaults.
func DefaultThresholds() ThresholdConfig {
	return ThresholdConfig{
		MetricNaturalGas:  30,
		MetricElectricity: 105,
	}
}

// ValidThreshold reports whether v is a finite, non-negative threshold.
func ValidThreshold(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// Window is an inclusive date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether Start <= t <= End.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DefaultWindow covers 2020 through 2025.
func DefaultWindow() Window {
	return Window{
		Start: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Geo is a WGS-84 latitude/longitude pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Segment is a straight line between two coordinates.
type Segment struct {
	From Geo `json:"from"`
	To   Geo `json:"to"`
}

// SiteCount is one row of the industrial-site table.
type SiteCount struct {
	RegionLabel string
	Companies   int
}

// Boundaries carries region outlines and their area centroids.
type Boundaries struct {
	Rings     map[RegionCode][][]Geo
	Centroids map[RegionCode]Geo
}
