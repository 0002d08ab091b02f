package nav

import "github.com/jakecoffman/cp"

// Router couples the A* search with the path optimizer, producing waypoint
// lists that are ready for a movement controller to follow. This is the
// default policy for point-and-click actors: octile heuristic, diagonal
// movement, corner cutting rejected.
type Router struct {
	finder    *Pathfinder
	optimizer *Optimizer
}

func NewRouter(grid *Grid) *Router {
	return &Router{
		finder:    NewPathfinder(grid, Octile, PointAndClickRules()),
		optimizer: NewOptimizer(grid),
	}
}

// Finder exposes the underlying pathfinder for callers that need to tune
// search limits.
func (r *Router) Finder() *Pathfinder { return r.finder }

// FindPath returns an optimized waypoint list between two world points, or
// nil when no path exists.
func (r *Router) FindPath(start, goal cp.Vector) []cp.Vector {
	if r == nil {
		return nil
	}
	raw := r.finder.FindPath(start, goal)
	if raw == nil {
		return nil
	}
	return r.optimizer.Optimize(raw)
}

// FindRawPath returns the unoptimized cell-by-cell waypoint list, used by
// debug overlays.
func (r *Router) FindRawPath(start, goal cp.Vector) []cp.Vector {
	if r == nil {
		return nil
	}
	return r.finder.FindPath(start, goal)
}
