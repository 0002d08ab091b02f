package nav

import "math"

// Heuristic estimates the remaining cost between two grid cells. To keep A*
// optimal it must never overestimate the true cost under the active
// MoveRules: use Octile for 8-directional movement with sqrt(2) diagonals
// and Manhattan only for 4-directional movement.
type Heuristic func(ax, ay, bx, by int) float64

func Manhattan(ax, ay, bx, by int) float64 {
	return math.Abs(float64(ax-bx)) + math.Abs(float64(ay-by))
}

func Euclidean(ax, ay, bx, by int) float64 {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return math.Sqrt(dx*dx + dy*dy)
}

func Octile(ax, ay, bx, by int) float64 {
	dx := math.Abs(float64(ax - bx))
	dy := math.Abs(float64(ay - by))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

func Chebyshev(ax, ay, bx, by int) float64 {
	dx := math.Abs(float64(ax - bx))
	dy := math.Abs(float64(ay - by))
	return math.Max(dx, dy)
}
