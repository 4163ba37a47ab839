package domain

import (
	"context"
	"log/slog"
)

// ResolveCentroids returns known plus a looked-up centroid for every crowded
// region that known lacks. Lookup failures and empty answers leave the
// region without a centroid, which later means a label with no leader line.
// A nil locator disables lookups.
func ResolveCentroids(ctx context.Context, crowded, known map[RegionCode]Geo, locator CentroidLocator, logger *slog.Logger) map[RegionCode]Geo {
	out := MergePositions(known, nil)
	if locator == nil {
		return out
	}

	missing := make([]RegionCode, 0, len(crowded))
	for code := range crowded {
		if _, ok := out[code]; !ok {
			missing = append(missing, code)
		}
	}
	sortCodes(missing)

	for _, code := range missing {
		g, err := locator.Locate(ctx, code)
		if err != nil {
			logger.Warn("centroid lookup failed, label will have no leader line",
				"region", code,
				"error", err,
			)
			continue
		}
		if g == (Geo{}) {
			logger.Debug("centroid lookup returned no result", "region", code)
			continue
		}
		out[code] = g
	}
	return out
}
