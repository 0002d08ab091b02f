package nav

import (
	"container/heap"
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultSnapRadius bounds the spiral search used to substitute a blocked
// start or goal cell with its nearest walkable cell.
const DefaultSnapRadius = 8

// Pathfinder runs A* searches over an immutable grid. All search
// bookkeeping is local to a single FindPath call, so one Pathfinder can be
// shared by any number of sequential callers within a frame.
type Pathfinder struct {
	grid      *Grid
	heuristic Heuristic
	rules     MoveRules

	// MaxExpanded caps the number of nodes popped from the open set before
	// the search gives up with no path. Zero means one full grid worth of
	// cells. The cap keeps worst-case latency deterministic without
	// wall-clock timeouts.
	MaxExpanded int

	// SnapRadius bounds the nearest-walkable substitution for blocked
	// endpoints. Zero means DefaultSnapRadius.
	SnapRadius int
}

// NewPathfinder creates a Pathfinder. A nil heuristic defaults to Octile,
// matched to the sqrt(2) diagonal cost of PointAndClickRules.
func NewPathfinder(grid *Grid, h Heuristic, rules MoveRules) *Pathfinder {
	if h == nil {
		h = Octile
	}
	return &Pathfinder{grid: grid, heuristic: h, rules: rules}
}

type searchNode struct {
	col, row int
	g, h, f  float64
	seq      int // insertion order, breaks remaining ties deterministically
	index    int // heap index
}

type openSet []*searchNode

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	if o[i].h != o[j].h {
		return o[i].h < o[j].h
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*o)
	*o = append(*o, n)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*o = old[:n-1]
	return node
}

// FindPath searches for a route between two world points and returns the
// raw waypoint list, one cell center per traversed cell. The first and last
// waypoints are replaced by the exact start and goal points when those
// share a cell with their grid node, so same-cell moves never snap to the
// cell center. A nil result means no path; callers are expected to fall
// back to direct movement.
func (p *Pathfinder) FindPath(start, goal cp.Vector) []cp.Vector {
	if p == nil || p.grid == nil {
		return nil
	}
	g := p.grid

	startCol, startRow := g.WorldToGrid(start)
	goalCol, goalRow := g.WorldToGrid(goal)

	var ok bool
	if !g.IsWalkable(startCol, startRow) {
		startCol, startRow, ok = p.nearestWalkable(startCol, startRow)
		if !ok {
			return nil
		}
	}
	if !g.IsWalkable(goalCol, goalRow) {
		goalCol, goalRow, ok = p.nearestWalkable(goalCol, goalRow)
		if !ok {
			return nil
		}
	}

	cells := p.search(startCol, startRow, goalCol, goalRow)
	if cells == nil {
		return nil
	}
	return p.toWaypoints(cells, start, goal)
}

// search runs the A* loop over grid cells and returns the traversed cells
// in start-to-goal order, or nil when no path exists.
func (p *Pathfinder) search(startCol, startRow, goalCol, goalRow int) [][2]int {
	g := p.grid
	startIdx := g.index(startCol, startRow)
	goalIdx := g.index(goalCol, goalRow)

	if startIdx == goalIdx {
		return [][2]int{{startCol, startRow}}
	}

	// Per-call bookkeeping: flat predecessor indices instead of node
	// pointers, discarded when the search returns.
	size := g.cols * g.rows
	cameFrom := make([]int, size)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	gScore := make([]float64, size)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	closed := make([]bool, size)

	open := &openSet{}
	heap.Init(open)

	gScore[startIdx] = 0
	seq := 0
	startH := p.heuristic(startCol, startRow, goalCol, goalRow)
	heap.Push(open, &searchNode{col: startCol, row: startRow, h: startH, f: startH})

	maxExpanded := p.MaxExpanded
	if maxExpanded <= 0 {
		maxExpanded = size
	}

	neighbors := make([][2]int, 0, 8)
	expanded := 0
	for open.Len() > 0 && expanded < maxExpanded {
		current := heap.Pop(open).(*searchNode)
		curIdx := g.index(current.col, current.row)
		if curIdx == goalIdx {
			return p.reconstruct(cameFrom, startIdx, goalIdx)
		}
		if closed[curIdx] {
			continue
		}
		closed[curIdx] = true
		expanded++

		neighbors = g.Neighbors(neighbors[:0], current.col, current.row, p.rules.AllowDiagonal)
		for _, n := range neighbors {
			nc, nr := n[0], n[1]
			nIdx := g.index(nc, nr)
			if closed[nIdx] {
				continue
			}
			if !p.rules.CanMove(g, current.col, current.row, nc, nr) {
				continue
			}
			tentative := gScore[curIdx] + p.rules.MoveCost(current.col, current.row, nc, nr)
			if tentative >= gScore[nIdx] {
				continue
			}
			cameFrom[nIdx] = curIdx
			gScore[nIdx] = tentative
			h := p.heuristic(nc, nr, goalCol, goalRow)
			seq++
			heap.Push(open, &searchNode{col: nc, row: nr, g: tentative, h: h, f: tentative + h, seq: seq})
		}
	}

	return nil
}

func (p *Pathfinder) reconstruct(cameFrom []int, startIdx, goalIdx int) [][2]int {
	cols := p.grid.cols
	cells := make([][2]int, 0, 32)
	for cur := goalIdx; cur != -1; cur = cameFrom[cur] {
		cells = append(cells, [2]int{cur % cols, cur / cols})
		if cur == startIdx {
			break
		}
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}

// toWaypoints converts traversed cells to world points and applies the
// precision fix: whenever the original start or goal falls inside its
// terminal cell, the exact point is used instead of the lossy cell center.
func (p *Pathfinder) toWaypoints(cells [][2]int, start, goal cp.Vector) []cp.Vector {
	g := p.grid
	startCol, startRow := g.WorldToGrid(start)
	goalCol, goalRow := g.WorldToGrid(goal)

	first := cells[0]
	last := cells[len(cells)-1]
	startExact := first[0] == startCol && first[1] == startRow
	goalExact := last[0] == goalCol && last[1] == goalRow

	if len(cells) == 1 {
		// Start and goal resolved to the same cell; hand back the exact
		// endpoints so the actor walks the short remainder directly.
		out := make([]cp.Vector, 2)
		out[0] = g.GridToWorld(first[0], first[1])
		out[1] = out[0]
		if startExact {
			out[0] = start
		}
		if goalExact {
			out[1] = goal
		}
		return out
	}

	out := make([]cp.Vector, len(cells))
	for i, c := range cells {
		out[i] = g.GridToWorld(c[0], c[1])
	}
	if startExact {
		out[0] = start
	}
	if goalExact {
		out[len(out)-1] = goal
	}
	return out
}

// nearestWalkable spirals outward from the cell and returns the closest
// walkable cell within SnapRadius rings, preferring smaller rings. Rings
// are Chebyshev shells, so a diagonal cell in ring r can win over a
// slightly closer orthogonal cell in ring r+1.
func (p *Pathfinder) nearestWalkable(col, row int) (int, int, bool) {
	g := p.grid
	maxRadius := p.SnapRadius
	if maxRadius <= 0 {
		maxRadius = DefaultSnapRadius
	}
	for radius := 1; radius <= maxRadius; radius++ {
		bestDist := math.Inf(1)
		bestCol, bestRow := 0, 0
		found := false
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				if absInt(dc) != radius && absInt(dr) != radius {
					continue // interior cells were covered by smaller rings
				}
				nc, nr := col+dc, row+dr
				if !g.IsWalkable(nc, nr) {
					continue
				}
				d := float64(dc*dc + dr*dr)
				if d < bestDist {
					bestDist = d
					bestCol, bestRow = nc, nr
					found = true
				}
			}
		}
		if found {
			return bestCol, bestRow, true
		}
	}
	return 0, 0, false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
