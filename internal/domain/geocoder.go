package domain

import "context"

// CentroidLocator finds a representative coordinate for a region.
type CentroidLocator interface {
	// Locate returns the region's centroid. A zero Geo with a nil error
	// means the provider had no answer.
	Locate(ctx context.Context, code RegionCode) (Geo, error)
}
