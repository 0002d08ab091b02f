package nav

import (
	"math"

	"github.com/jakecoffman/cp"
)

// WorldToGrid returns the cell containing the world point. Coordinates
// truncate toward the containing cell and are never rounded, otherwise
// points in the left half of a cell would map to the wrong neighbor.
func (g *Grid) WorldToGrid(p cp.Vector) (col, row int) {
	return int(math.Floor(p.X / g.cellSize)), int(math.Floor(p.Y / g.cellSize))
}

// GridToWorld returns the world-space center of the cell. The mapping is
// lossy: callers that need the exact original point within a cell must keep
// it themselves and substitute it back (see Pathfinder.FindPath).
func (g *Grid) GridToWorld(col, row int) cp.Vector {
	half := g.cellSize * 0.5
	return cp.Vector{
		X: float64(col)*g.cellSize + half,
		Y: float64(row)*g.cellSize + half,
	}
}
