// Package script runs tengo tour scripts: a script exports an ordered list
// of destinations and a movement controller walks an actor through them,
// advancing on each completion callback.
package script

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/pointclick/motion"
	"github.com/milk9111/pointclick/scene"
)

// Tour is a scripted sequence of destinations for one actor.
type Tour struct {
	points []cp.Vector
	loop   bool
	next   int

	// re-entrancy state for advance: MoveTo to the actor's current
	// position completes synchronously, which calls back into advance.
	advancing bool
	reentered bool
}

// Load compiles a tour script by name from the scene script files.
func Load(name string) (*Tour, error) {
	src, err := scene.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	tour, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	return tour, nil
}

// Parse runs the script and extracts its exported globals: `points`, an
// array of [x, y] pairs, and optionally `loop`.
func Parse(src []byte) (*Tour, error) {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Run()
	if err != nil {
		return nil, fmt.Errorf("run tour script: %w", err)
	}

	raw := compiled.Get("points")
	if raw.IsUndefined() {
		return nil, fmt.Errorf("tour script does not define points")
	}
	entries := raw.Array()
	if len(entries) == 0 {
		return nil, fmt.Errorf("tour script defines no points")
	}

	points := make([]cp.Vector, 0, len(entries))
	for i, entry := range entries {
		pair, ok := entry.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("tour point %d is not an [x, y] pair", i)
		}
		x, okX := toFloat(pair[0])
		y, okY := toFloat(pair[1])
		if !okX || !okY {
			return nil, fmt.Errorf("tour point %d has non-numeric coordinates", i)
		}
		points = append(points, cp.Vector{X: x, Y: y})
	}

	tour := &Tour{points: points}
	if v := compiled.Get("loop"); v != nil {
		tour.loop = v.Bool()
	}
	return tour, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// Points returns a copy of the destination list.
func (t *Tour) Points() []cp.Vector {
	out := make([]cp.Vector, len(t.points))
	copy(out, t.points)
	return out
}

// Start walks the controller's actor through the tour. It owns the
// controller's completion callback while the tour runs.
func (t *Tour) Start(ctrl *motion.Controller) {
	if t == nil || ctrl == nil || len(t.points) == 0 {
		return
	}
	t.next = 0
	ctrl.OnMovementComplete(func() {
		t.advance(ctrl)
	})
	t.advance(ctrl)
}

// advance issues the next destination. A destination matching the actor's
// current position completes synchronously and re-enters advance through the
// completion callback, so advancement runs as a loop here, not as recursion,
// and gives up after one full pass that produced no movement.
func (t *Tour) advance(ctrl *motion.Controller) {
	if t.advancing {
		t.reentered = true
		return
	}
	t.advancing = true
	defer func() { t.advancing = false }()

	for tries := 0; tries < len(t.points); tries++ {
		if t.next >= len(t.points) {
			if !t.loop {
				return
			}
			t.next = 0
		}
		dest := t.points[t.next]
		t.next++
		t.reentered = false
		ctrl.MoveTo(dest, true)
		if !t.reentered {
			return
		}
	}
}
