// Package domain models per-region energy price data and the map built from it.
//
// # Data Sources
//
// Natural gas prices come from the EIA "Natural Gas Industrial Price" workbook
// (sheet "Data 1"). It is a wide table: one Date column, one column per state,
// and one national column that is excluded from per-region processing.
//
// Electricity prices come from an EIA average-price workbook with one row per
// (state, period). It has no date column; each row is already a period average
// and a state may appear several times.
//
// An optional third table lists industrial companies per state and is only
// used to size map overlay markers.
//
// # Region Labels
//
// Gas columns use a composite label:
//
//	"<State Name> Natural Gas Industrial Price (Dollars per Thousand Cubic Feet)"
//
// One source column is misspelled ("Nevada Natural Gas Indutrial Price ...")
// and is matched by an override table before suffix stripping. Electricity
// and site tables use bare state names. Resolution is exact and case-sensitive
// against the 51-entry name table (50 states plus the District of Columbia);
// anything else resolves to nothing and the row is dropped.
//
// # Units
//
// Everything is compared in dollars per megawatt-hour:
//
//	gas:         $/kcf   x 3.29 = $/MWh   (1 kcf is roughly 3.29 MWh)
//	electricity: ¢/kWh   x 10   = $/MWh
//
// Conversion is a plain multiplication. Rounding happens only when text is
// rendered.
//
// # Classification
//
// Two-way mode tags a region High when any metric exceeds its threshold and
// Low otherwise. Three-way mode also tags High when any metric exceeds; it
// tags Low only when every thresholded metric is present and at or below,
// and Mixed when a metric is missing and none exceeds. "Exceeds" is strict,
// so a value equal to its threshold is always in the lower tag.
//
// # Statistics
//
// All percentiles use linear interpolation between order statistics, so the
// median, quartiles and the 5-point ladder agree at shared points. Clusters
// split on the data median and a fixed high cut of $50/MWh.
//
// # Label Layout
//
// Eleven north-eastern regions are too small for a readable label. Their
// labels go to fixed staggered positions in the Atlantic and a leader line
// is drawn back to the region centroid when one is known. Maine has no entry
// in the leader centroid table, so it is labeled without a line unless a
// centroid is supplied from boundaries or a geocoder.
package domain
