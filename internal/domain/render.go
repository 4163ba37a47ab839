package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Palette maps categories to hex fill colors.
type Palette map[Category]string

// DefaultPalette is green for High, red for Low and gray for Mixed.
func DefaultPalette() Palette {
	return Palette{
		CategoryHigh:  "#2ca02c",
		CategoryLow:   "#d62728",
		CategoryMixed: "#7f7f7f",
	}
}

// fallbackColor is used for categories the palette does not cover.
const fallbackColor = "#c7c7c7"

// Color returns the fill color for c.
func (p Palette) Color(c Category) string {
	if hex, ok := p[c]; ok {
		return hex
	}
	return fallbackColor
}

// FillCommand colors one region.
type FillCommand struct {
	Region   RegionCode `json:"region"`
	Category Category   `json:"category"`
	Color    string     `json:"color"`
	Hover    string     `json:"hover"`
	// Anchor is where a renderer without boundaries draws the region glyph.
	Anchor Geo `json:"anchor"`
	// Rings is the region outline, when boundaries were loaded.
	Rings [][]Geo `json:"-"`
}

// TextCommand draws one label.
type TextCommand struct {
	Region RegionCode `json:"region"`
	At     Geo        `json:"at"`
	Text   string     `json:"text"`
}

// LineCommand draws one leader line.
type LineCommand struct {
	Region  RegionCode `json:"region"`
	Segment Segment    `json:"segment"`
}

// MarkerCommand draws one industrial-site marker.
type MarkerCommand struct {
	Region RegionCode `json:"region"`
	At     Geo        `json:"at"`
	Count  int        `json:"count"`
	Radius float64    `json:"radius"`
	Text   string     `json:"text"`
}

// Render is everything a sink needs to draw the map and print the report.
type Render struct {
	Title       string          `json:"title"`
	GeneratedAt time.Time       `json:"generated_at"`
	Records     []JoinedRecord  `json:"records"`
	Fills       []FillCommand   `json:"fills"`
	Labels      []TextCommand   `json:"labels"`
	Lines       []LineCommand   `json:"lines"`
	Markers     []MarkerCommand `json:"markers,omitempty"`
	Legend      []Category      `json:"legend"`
	Report      *Report         `json:"report,omitempty"`
}

var printer = message.NewPrinter(language.English)

// FormatDollars renders v as "$1,234.56".
func FormatDollars(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// LabelText is the map label for a placement, e.g. "CA: $39.48".
func LabelText(p LabelPlacement) string {
	return fmt.Sprintf("%s: %s", p.Region, FormatDollars(p.Value))
}

var metricShortNames = map[Metric]string{
	MetricNaturalGas:  "Gas",
	MetricElectricity: "Elec",
}

// HoverText lists every metric of r, gas first, e.g.
// "CA: Gas $39.48/MWh, Elec $120.00/MWh".
func HoverText(r JoinedRecord) string {
	metrics := make([]Metric, 0, len(r.Values))
	for m := range r.Values {
		metrics = append(metrics, m)
	}
	sort.Slice(metrics, func(i, j int) bool {
		ri, rj := metricRank(metrics[i]), metricRank(metrics[j])
		if ri != rj {
			return ri < rj
		}
		return metrics[i] < metrics[j]
	})

	parts := make([]string, 0, len(metrics))
	for _, m := range metrics {
		name, ok := metricShortNames[m]
		if !ok {
			name = string(m)
		}
		parts = append(parts, fmt.Sprintf("%s %s/MWh", name, FormatDollars(r.Values[m])))
	}
	return fmt.Sprintf("%s: %s", r.Region, strings.Join(parts, ", "))
}

func metricRank(m Metric) int {
	switch m {
	case MetricNaturalGas:
		return 0
	case MetricElectricity:
		return 1
	default:
		return 2
	}
}

// Title describes the classification rule, e.g.
// "Regional energy prices (two-way; electricity > $105.00/MWh, natural_gas > $30.00/MWh)".
func (c Classifier) Title() string {
	mode := c.Mode
	if mode == "" {
		mode = ModeTwoWay
	}
	ms := c.metrics()
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		parts = append(parts, fmt.Sprintf("%s > %s/MWh", m, FormatDollars(c.Thresholds[m])))
	}
	return fmt.Sprintf("Regional energy prices (%s; %s)", mode, strings.Join(parts, ", "))
}

// BuildRender assembles draw commands. Records must already be classified.
// Fill anchors come from DefaultPositions. Title and Legend are left for the
// caller, which knows the classifier.
func BuildRender(records []JoinedRecord, placements []LabelPlacement, markers []MarkerCommand, report *Report, palette Palette) Render {
	if palette == nil {
		palette = DefaultPalette()
	}

	r := Render{
		GeneratedAt: clock.Now().UTC(),
		Records:     records,
		Fills:       make([]FillCommand, 0, len(records)),
		Labels:      make([]TextCommand, 0, len(placements)),
		Lines:       []LineCommand{},
		Markers:     markers,
		Report:      report,
	}

	for _, rec := range records {
		r.Fills = append(r.Fills, FillCommand{
			Region:   rec.Region,
			Category: rec.Category,
			Color:    palette.Color(rec.Category),
			Hover:    HoverText(rec),
			Anchor:   defaultPositions[rec.Region],
		})
	}

	for _, p := range placements {
		r.Labels = append(r.Labels, TextCommand{Region: p.Region, At: p.Anchor, Text: LabelText(p)})
		if p.Leader != nil {
			r.Lines = append(r.Lines, LineCommand{Region: p.Region, Segment: *p.Leader})
		}
	}
	return r
}
