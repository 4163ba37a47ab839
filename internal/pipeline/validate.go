package pipeline

import (
	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
)

// Validation summarizes how well the loaded sources cover the regions.
type Validation struct {
	Unresolved map[domain.Metric][]string            `json:"unresolved"`
	Missing    map[domain.Metric][]domain.RegionCode `json:"missing"`
	JoinGaps   []domain.RegionCode                   `json:"join_gaps"`
	Joined     int                                   `json:"joined"`
}

// OK reports whether every label resolved and every region has both prices.
func (v Validation) OK() bool {
	for _, labels := range v.Unresolved {
		if len(labels) > 0 {
			return false
		}
	}
	for _, codes := range v.Missing {
		if len(codes) > 0 {
			return false
		}
	}
	return len(v.JoinGaps) == 0
}

// Validate checks label resolution, region coverage and join gaps. The gas
// national aggregate column is expected to be unresolved and is not reported.
func Validate(in *Inputs, window domain.Window) (Validation, error) {
	norm, err := Normalize(in, window)
	if err != nil {
		return Validation{}, err
	}

	unresolved := make(map[domain.Metric][]string, len(norm.Unresolved))
	for metric, labels := range norm.Unresolved {
		kept := make([]string, 0, len(labels))
		for _, l := range labels {
			if l != domain.NationalGasColumn {
				kept = append(kept, l)
			}
		}
		unresolved[metric] = kept
	}

	missing := map[domain.Metric][]domain.RegionCode{
		domain.MetricNaturalGas:  missingRegions(norm.Gas),
		domain.MetricElectricity: missingRegions(norm.Electricity),
	}

	return Validation{
		Unresolved: unresolved,
		Missing:    missing,
		JoinGaps:   domain.JoinGaps(norm.Gas, norm.Electricity),
		Joined:     len(domain.Join(norm.Gas, norm.Electricity)),
	}, nil
}

func missingRegions(t domain.RegionTable) []domain.RegionCode {
	var out []domain.RegionCode
	for _, code := range domain.RegionCodes() {
		if _, ok := t.Values[code]; !ok {
			out = append(out, code)
		}
	}
	return out
}
