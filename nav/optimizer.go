package nav

import "github.com/jakecoffman/cp"

// losSampleScale sets the line-of-sight sampling step as a fraction of the
// cell size. A quarter cell is small enough that a sampled segment cannot
// skip over a blocked cell it actually crosses.
const losSampleScale = 0.25

// Optimizer collapses raw cell-by-cell paths into shorter waypoint lists by
// greedily skipping every waypoint that a straight walkable segment can
// bypass.
type Optimizer struct {
	grid *Grid
}

func NewOptimizer(grid *Grid) *Optimizer {
	return &Optimizer{grid: grid}
}

// Optimize returns a reduced copy of path. The first and last waypoints are
// always kept and no new points are introduced, so the result stays on the
// original route geometry. Optimizing an already optimized path returns the
// same waypoints.
func (o *Optimizer) Optimize(path []cp.Vector) []cp.Vector {
	if o == nil || o.grid == nil || len(path) == 0 {
		return path
	}
	out := make([]cp.Vector, 0, len(path))
	out = append(out, path[0])
	if len(path) <= 2 {
		out = append(out, path[1:]...)
		return out
	}

	i := 0
	for i < len(path)-1 {
		// Walk backwards from the goal to find the furthest waypoint the
		// current one can reach in a straight walkable line.
		furthest := i + 1
		for j := len(path) - 1; j > i+1; j-- {
			if o.LineOfSight(path[i], path[j]) {
				furthest = j
				break
			}
		}
		out = append(out, path[furthest])
		i = furthest
	}
	return out
}

// LineOfSight reports whether the straight segment between two world points
// stays on walkable cells, sampling at quarter-cell steps.
func (o *Optimizer) LineOfSight(a, b cp.Vector) bool {
	if o == nil || o.grid == nil {
		return false
	}
	delta := b.Sub(a)
	dist := delta.Length()
	if dist == 0 {
		return o.grid.WalkableAt(a)
	}
	step := o.grid.CellSize() * losSampleScale
	steps := int(dist/step) + 1
	dir := delta.Mult(1 / dist)
	for i := 0; i <= steps; i++ {
		d := step * float64(i)
		if d > dist {
			d = dist
		}
		if !o.grid.WalkableAt(a.Add(dir.Mult(d))) {
			return false
		}
	}
	return true
}
