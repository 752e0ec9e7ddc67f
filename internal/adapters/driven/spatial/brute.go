package spatial

import (
	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
)

// Ensure BruteForce implements the interface.
var _ driven.IndexBuilder = (*BruteForce)(nil)

// BruteForce builds indexes that scan every point on each query.
type BruteForce struct{}

// NewBruteForce creates a brute-force index builder.
func NewBruteForce() *BruteForce {
	return &BruteForce{}
}

// Build wraps points. cellHint is ignored.
func (b *BruteForce) Build(points []domain.Coord, _ float64) driven.SpatialIndex {
	return &bruteIndex{points: points}
}

// Strategy returns domain.IndexBruteForce.
func (b *BruteForce) Strategy() domain.IndexStrategy {
	return domain.IndexBruteForce
}

type bruteIndex struct {
	points []domain.Coord
}

func (ix *bruteIndex) Query(p domain.Coord, radius float64) []int {
	var ids []int
	for i, q := range ix.points {
		if p.Distance(q) < radius {
			ids = append(ids, i)
		}
	}
	return ids
}

func (ix *bruteIndex) Len() int {
	return len(ix.points)
}
