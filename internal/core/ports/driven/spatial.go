package driven

import "github.com/custodia-labs/binderdash/internal/core/domain"

// SpatialIndex answers fixed-radius neighbour queries over a point set.
type SpatialIndex interface {
	// Query returns the ids (positions in the indexed slice) of all points
	// strictly closer than radius to p, in ascending order.
	Query(p domain.Coord, radius float64) []int

	// Len returns the number of indexed points.
	Len() int
}

// IndexBuilder creates spatial indexes.
type IndexBuilder interface {
	// Build indexes points. cellHint is the radius that queries will use;
	// implementations may ignore it.
	Build(points []domain.Coord, cellHint float64) SpatialIndex

	// Strategy identifies the implementation.
	Strategy() domain.IndexStrategy
}
