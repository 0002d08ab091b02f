// routecheck computes a route between two points of a scene and prints the
// waypoints, for checking authored walkable regions without starting the
// game.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/pointclick/nav"
	"github.com/milk9111/pointclick/scene"
)

func main() {
	sceneName := flag.String("scene", "demo.yaml", "scene file in scene/")
	from := flag.String("from", "", "start point as x,y (defaults to the scene spawn)")
	to := flag.String("to", "", "goal point as x,y")
	raw := flag.Bool("raw", false, "print the unoptimized cell-by-cell path")
	flag.Parse()

	scn, err := scene.Load(*sceneName)
	if err != nil {
		log.Fatalf("load scene %s: %v", *sceneName, err)
	}

	start := scn.Spawn()
	if *from != "" {
		start, err = parsePoint(*from)
		if err != nil {
			log.Fatalf("parse -from: %v", err)
		}
	}
	goal, err := parsePoint(*to)
	if err != nil {
		log.Fatalf("parse -to: %v", err)
	}

	router := nav.NewRouter(scn.Grid())
	path := router.FindPath(start, goal)
	if *raw {
		path = router.FindRawPath(start, goal)
	}
	if path == nil {
		fmt.Printf("no path from %v to %v\n", start, goal)
		os.Exit(1)
	}

	fmt.Printf("%d waypoints from (%g,%g) to (%g,%g):\n", len(path), start.X, start.Y, goal.X, goal.Y)
	for i, p := range path {
		fmt.Printf("  %2d: (%.1f, %.1f)\n", i, p.X, p.Y)
	}
}

func parsePoint(s string) (cp.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return cp.Vector{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return cp.Vector{}, fmt.Errorf("bad x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return cp.Vector{}, fmt.Errorf("bad y in %q: %w", s, err)
	}
	return cp.Vector{X: x, Y: y}, nil
}
