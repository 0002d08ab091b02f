package nav

import (
	"math"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
)

// pathCost converts a waypoint list back to cells and sums the step costs.
func pathCost(t *testing.T, g *Grid, rules MoveRules, path []cp.Vector) float64 {
	t.Helper()
	total := 0.0
	pc, pr := g.WorldToGrid(path[0])
	for _, p := range path[1:] {
		c, r := g.WorldToGrid(p)
		if c == pc && r == pr {
			continue
		}
		if !rules.CanMove(g, pc, pr, c, r) {
			t.Fatalf("path contains illegal step (%d,%d) -> (%d,%d)", pc, pr, c, r)
		}
		total += rules.MoveCost(pc, pr, c, r)
		pc, pr = c, r
	}
	return total
}

func TestFindPathMatchesDijkstra(t *testing.T) {
	cases := []struct {
		name string
		rows []string
	}{
		{"open", []string{
			".....",
			".....",
			".....",
		}},
		{"wall_with_detour", []string{
			"......",
			"..##..",
			"..##..",
			"......",
		}},
		{"maze", []string{
			".#....",
			".#.##.",
			".#.#..",
			"...#.#",
			".###..",
			"......",
		}},
	}
	rules := PointAndClickRules()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := gridFromRows(t, 16, c.rows)
			p := NewPathfinder(g, Octile, rules)

			start := g.GridToWorld(0, 0)
			goalCol, goalRow := g.Cols()-1, g.Rows()-1
			goal := g.GridToWorld(goalCol, goalRow)

			path := p.FindPath(start, goal)
			if path == nil {
				t.Fatalf("expected a path")
			}
			got := pathCost(t, g, rules, path)
			want := dijkstraCosts(g, rules, 0, 0)[goalRow*g.Cols()+goalCol]
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("path cost %v, brute-force shortest %v", got, want)
			}
		})
	}
}

func TestFindPathNoCornerCutting(t *testing.T) {
	g := gridFromRows(t, 16, []string{
		".#",
		"#.",
	})
	p := NewPathfinder(g, Octile, PointAndClickRules())
	if path := p.FindPath(g.GridToWorld(0, 0), g.GridToWorld(1, 1)); path != nil {
		t.Fatalf("diagonal step through an L of blocked cells must fail, got %v", path)
	}
}

func TestFindPathUnreachable(t *testing.T) {
	g := gridFromRows(t, 16, []string{
		"..#..",
		"..#..",
		"..#..",
	})
	p := NewPathfinder(g, Octile, PointAndClickRules())
	if path := p.FindPath(g.GridToWorld(0, 1), g.GridToWorld(4, 1)); path != nil {
		t.Fatalf("expected no path across a full wall, got %v", path)
	}
}

func TestFindPathExpansionCap(t *testing.T) {
	g := gridFromRows(t, 16, []string{
		"........",
		"........",
		"........",
	})
	p := NewPathfinder(g, Octile, PointAndClickRules())
	p.MaxExpanded = 2
	if path := p.FindPath(g.GridToWorld(0, 0), g.GridToWorld(7, 2)); path != nil {
		t.Fatalf("expected the expansion cap to report no path, got %v", path)
	}
}

func TestFindPathSnapsBlockedEndpoints(t *testing.T) {
	g := gridFromRows(t, 16, []string{
		"....#",
		"....#",
		"....#",
	})
	p := NewPathfinder(g, Octile, PointAndClickRules())

	// Goal sits inside the blocked column; the route must end at the
	// nearest walkable cell instead, never at the requested point.
	goal := g.GridToWorld(4, 1)
	path := p.FindPath(g.GridToWorld(0, 1), goal)
	if path == nil {
		t.Fatalf("expected a path to the substituted goal")
	}
	end := path[len(path)-1]
	col, row := g.WorldToGrid(end)
	if !g.IsWalkable(col, row) {
		t.Fatalf("path ends on blocked cell (%d,%d)", col, row)
	}
	if col != 3 || row != 1 {
		t.Fatalf("expected goal substituted with (3,1), got (%d,%d)", col, row)
	}
}

func TestFindPathSnapRadiusBound(t *testing.T) {
	g := gridFromRows(t, 16, []string{
		"..########",
		"..########",
	})
	p := NewPathfinder(g, Octile, PointAndClickRules())
	p.SnapRadius = 2
	if path := p.FindPath(g.GridToWorld(0, 0), g.GridToWorld(9, 0)); path != nil {
		t.Fatalf("goal farther than the snap radius from walkable space must fail, got %v", path)
	}
}

func TestFindPathSameCellKeepsExactEndpoints(t *testing.T) {
	g := gridFromRows(t, 32, []string{
		"..",
		"..",
	})
	p := NewPathfinder(g, Octile, PointAndClickRules())

	start := cp.Vector{X: 5, Y: 7}
	goal := cp.Vector{X: 20, Y: 28}
	path := p.FindPath(start, goal)
	if len(path) != 2 {
		t.Fatalf("expected 2 waypoints for a same-cell route, got %v", path)
	}
	if path[0] != start || path[1] != goal {
		t.Fatalf("same-cell route must keep exact endpoints, got %v", path)
	}
}

func TestFindPathExactEndpointsAcrossCells(t *testing.T) {
	g := gridFromRows(t, 16, []string{
		"....",
		"....",
	})
	p := NewPathfinder(g, Octile, PointAndClickRules())

	start := cp.Vector{X: 3, Y: 3}
	goal := cp.Vector{X: 60, Y: 28}
	path := p.FindPath(start, goal)
	if path == nil {
		t.Fatalf("expected a path")
	}
	if path[0] != start {
		t.Fatalf("first waypoint should be the exact start, got %v", path[0])
	}
	if path[len(path)-1] != goal {
		t.Fatalf("last waypoint should be the exact goal, got %v", path[len(path)-1])
	}
}

// The scenario from the acceptance checklist: a 10x10 grid with a wall
// across column 4, open only at row 7.
func TestWallWithGapScenario(t *testing.T) {
	rows := make([]string, 10)
	for r := 0; r < 10; r++ {
		line := strings.Repeat(".", 10)
		if r != 7 {
			line = line[:4] + "#" + line[5:]
		}
		rows[r] = line
	}
	g := gridFromRows(t, 32, rows)
	finder := NewPathfinder(g, Octile, PointAndClickRules())
	opt := NewOptimizer(g)

	start := cp.Vector{X: 16, Y: 16}
	goal := cp.Vector{X: 16 + 9*32, Y: 16}
	raw := finder.FindPath(start, goal)
	if raw == nil {
		t.Fatalf("expected a route through the gap")
	}

	through := false
	for _, p := range raw {
		if col, row := g.WorldToGrid(p); col == 4 && row == 7 {
			through = true
			break
		}
	}
	if !through {
		t.Fatalf("route must pass through the gap at (4,7): %v", raw)
	}

	optimized := opt.Optimize(raw)
	if len(optimized) > len(raw) {
		t.Fatalf("optimized path has %d waypoints, raw has %d", len(optimized), len(raw))
	}
	if optimized[0] != raw[0] || optimized[len(optimized)-1] != raw[len(raw)-1] {
		t.Fatalf("optimizer must keep the endpoints")
	}
}
