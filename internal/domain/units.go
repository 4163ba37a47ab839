package domain

const (
	// KcfToMWh converts $/thousand cubic feet of natural gas to $/MWh.
	KcfToMWh = 3.29
	// CentsPerKWhToMWh converts ¢/kWh to $/MWh.
	CentsPerKWhToMWh = 10.0
)

// ToCanonicalUnit scales value by factor. No rounding is applied.
func ToCanonicalUnit(value, factor float64) float64 {
	return value * factor
}

// ConvertTable returns a new table with every value scaled by factor.
func ConvertTable(t RegionTable, factor float64) RegionTable {
	out := RegionTable{Metric: t.Metric, Values: make(map[RegionCode]float64, len(t.Values))}
	for code, v := range t.Values {
		out.Values[code] = ToCanonicalUnit(v, factor)
	}
	return out
}
