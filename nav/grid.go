// Package nav provides grid-based pathfinding over hand-authored walkable
// regions: a walkability grid, A* search with pluggable heuristics and
// movement rules, and line-of-sight path optimization.
package nav

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultRadiusScale shrinks the actor radius used for grid erosion so
// actors can still fit through authored gaps that are only slightly wider
// than their body.
const DefaultRadiusScale = 0.7

// Area reports whether a disc of the given radius lies entirely inside
// walkable space. The scene layer implements this against its polygon
// regions.
type Area interface {
	DiscWalkable(center cp.Vector, radius float64) bool
}

// AreaFunc adapts a plain function to the Area interface.
type AreaFunc func(center cp.Vector, radius float64) bool

func (f AreaFunc) DiscWalkable(center cp.Vector, radius float64) bool {
	return f(center, radius)
}

// GridConfig holds the build parameters for a navigation grid. The scene
// loader passes these through from its config.
type GridConfig struct {
	Width       float64 // logical scene width in pixels
	Height      float64 // logical scene height in pixels
	CellSize    float64 // pixels per cell
	ActorRadius float64 // collision radius of the pathing actor
	RadiusScale float64 // erosion shrink factor, 0 means DefaultRadiusScale
}

// Grid is a walkability mask over fixed-size cells. It is built once per
// scene and never mutated afterwards, so searches can share it freely.
type Grid struct {
	cols     int
	rows     int
	cellSize float64
	walkable []bool
}

// BuildGrid samples every cell center against area and returns the finished
// grid. A cell is walkable only when the eroded actor disc around its
// center fits inside walkable space. A grid with zero walkable cells is
// valid; every search against it reports no path.
func BuildGrid(area Area, cfg GridConfig) (*Grid, error) {
	if cfg.CellSize <= 0 {
		return nil, fmt.Errorf("nav: cell size must be positive, got %v", cfg.CellSize)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("nav: grid area must be positive, got %vx%v", cfg.Width, cfg.Height)
	}
	if cfg.ActorRadius < 0 {
		return nil, fmt.Errorf("nav: actor radius must not be negative, got %v", cfg.ActorRadius)
	}
	if area == nil {
		return nil, fmt.Errorf("nav: area is nil")
	}

	scale := cfg.RadiusScale
	if scale <= 0 {
		scale = DefaultRadiusScale
	}
	radius := cfg.ActorRadius * scale

	cols := int(math.Ceil(cfg.Width / cfg.CellSize))
	rows := int(math.Ceil(cfg.Height / cfg.CellSize))

	g := &Grid{
		cols:     cols,
		rows:     rows,
		cellSize: cfg.CellSize,
		walkable: make([]bool, cols*rows),
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			center := g.GridToWorld(col, row)
			if area.DiscWalkable(center, radius) {
				g.walkable[row*cols+col] = true
			}
		}
	}
	return g, nil
}

func (g *Grid) Cols() int         { return g.cols }
func (g *Grid) Rows() int         { return g.rows }
func (g *Grid) CellSize() float64 { return g.cellSize }

// InBounds reports whether the cell coordinates lie inside the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.cols && row < g.rows
}

// IsWalkable reports whether the cell is walkable. Out-of-range cells are
// never walkable.
func (g *Grid) IsWalkable(col, row int) bool {
	if g == nil || !g.InBounds(col, row) {
		return false
	}
	return g.walkable[row*g.cols+col]
}

// WalkableAt reports walkability of the cell containing the world point.
func (g *Grid) WalkableAt(p cp.Vector) bool {
	col, row := g.WorldToGrid(p)
	return g.IsWalkable(col, row)
}

func (g *Grid) index(col, row int) int {
	return row*g.cols + col
}

var neighborOffsets = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Neighbors appends the walkable neighbor cells of (col, row) to dst and
// returns it. Out-of-range and blocked cells are skipped. The first four
// offsets are orthogonal, so 4-directional movement takes the prefix.
func (g *Grid) Neighbors(dst [][2]int, col, row int, diagonal bool) [][2]int {
	count := 4
	if diagonal {
		count = 8
	}
	for _, d := range neighborOffsets[:count] {
		nc, nr := col+d[0], row+d[1]
		if g.IsWalkable(nc, nr) {
			dst = append(dst, [2]int{nc, nr})
		}
	}
	return dst
}
