package spatial

import (
	"math"
	"slices"

	"github.com/custodia-labs/binderdash/internal/core/domain"
	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
)

// DefaultCellSize is used when Build gets no usable cell hint.
const DefaultCellSize = 4.0

// Ensure Grid implements the interface.
var _ driven.IndexBuilder = (*Grid)(nil)

// Grid builds uniform cell-list indexes. Points are bucketed into cubes of
// side cellHint, so a query of that radius visits at most 27 cells.
type Grid struct{}

// NewGrid creates a grid index builder.
func NewGrid() *Grid {
	return &Grid{}
}

// Build buckets points into cells of side cellHint.
func (g *Grid) Build(points []domain.Coord, cellHint float64) driven.SpatialIndex {
	cell := cellHint
	if math.IsNaN(cell) || math.IsInf(cell, 0) || cell <= 0 {
		cell = DefaultCellSize
	}

	ix := &gridIndex{
		points: points,
		cell:   cell,
		cells:  make(map[cellKey][]int),
	}
	for i, p := range points {
		k := ix.key(p)
		ix.cells[k] = append(ix.cells[k], i)
	}
	return ix
}

// Strategy returns domain.IndexGrid.
func (g *Grid) Strategy() domain.IndexStrategy {
	return domain.IndexGrid
}

type cellKey [3]int

type gridIndex struct {
	points []domain.Coord
	cell   float64
	cells  map[cellKey][]int
}

func (ix *gridIndex) key(p domain.Coord) cellKey {
	return cellKey{
		int(math.Floor(p.X / ix.cell)),
		int(math.Floor(p.Y / ix.cell)),
		int(math.Floor(p.Z / ix.cell)),
	}
}

// Query visits every cell within ceil(radius/cell) of p's cell, which
// covers all points strictly closer than radius.
func (ix *gridIndex) Query(p domain.Coord, radius float64) []int {
	if radius <= 0 || len(ix.points) == 0 {
		return nil
	}

	span := int(math.Ceil(radius / ix.cell))
	c := ix.key(p)

	var ids []int
	for dx := -span; dx <= span; dx++ {
		for dy := -span; dy <= span; dy++ {
			for dz := -span; dz <= span; dz++ {
				for _, id := range ix.cells[cellKey{c[0] + dx, c[1] + dy, c[2] + dz}] {
					if p.Distance(ix.points[id]) < radius {
						ids = append(ids, id)
					}
				}
			}
		}
	}
	slices.Sort(ids)
	return ids
}

func (ix *gridIndex) Len() int {
	return len(ix.points)
}
