package script

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/pointclick/motion"
)

func TestParse(t *testing.T) {
	tour, err := Parse([]byte(`
points := [[10, 20], [30.5, 40], [50, 60]]
loop := true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []cp.Vector{{X: 10, Y: 20}, {X: 30.5, Y: 40}, {X: 50, Y: 60}}
	got := tour.Points()
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
	if !tour.loop {
		t.Fatalf("loop flag not picked up")
	}
}

func TestParseLoopDefaultsOff(t *testing.T) {
	tour, err := Parse([]byte(`points := [[1, 2]]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tour.loop {
		t.Fatalf("loop should default to false")
	}
}

func TestParseComputedPoints(t *testing.T) {
	// Scripts may build the list programmatically.
	tour, err := Parse([]byte(`
points := []
for i := 0; i < 3; i++ {
	points = append(points, [i * 100, 50])
}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := tour.Points()
	if len(got) != 3 || got[2] != (cp.Vector{X: 200, Y: 50}) {
		t.Fatalf("computed points = %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no_points", `x := 1`},
		{"empty_points", `points := []`},
		{"not_a_pair", `points := [[1, 2, 3]]`},
		{"non_numeric", `points := [["a", "b"]]`},
		{"syntax_error", `points := [[1,`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src)); err == nil {
				t.Fatalf("Parse accepted %q", tt.src)
			}
		})
	}
}

func TestLoadEmbeddedTour(t *testing.T) {
	tour, err := Load("tour_demo.tengo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tour.Points()) == 0 {
		t.Fatalf("embedded demo tour has no points")
	}
}

func TestLoadMissingTour(t *testing.T) {
	if _, err := Load("no_such_tour.tengo"); err == nil {
		t.Fatalf("loading a missing tour should fail")
	}
}

type tourActor struct {
	pos cp.Vector
}

func (a *tourActor) Position() cp.Vector     { return a.pos }
func (a *tourActor) SetPosition(p cp.Vector) { a.pos = p }
func (a *tourActor) Size() cp.Vector         { return cp.Vector{X: 16, Y: 32} }

func TestTourDrivesController(t *testing.T) {
	tour, err := Parse([]byte(`points := [[100, 0], [100, 100]]`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	actor := &tourActor{}
	ctrl := motion.NewController(actor, nil, nil, motion.Config{Speed: 400})
	tour.Start(ctrl)

	if !ctrl.Moving() {
		t.Fatalf("tour start should begin movement")
	}
	for i := 0; i < 10000 && ctrl.Moving(); i++ {
		ctrl.Update(1.0 / 60.0)
	}
	if ctrl.Moving() {
		t.Fatalf("tour never finished")
	}
	if want := (cp.Vector{X: 100, Y: 100}); actor.pos != want {
		t.Fatalf("actor ended at %v, want %v", actor.pos, want)
	}
}

func TestLoopingTourOfCoincidentPointsStops(t *testing.T) {
	// Every destination matches the actor's position, so each MoveTo
	// completes synchronously. The tour must give up after one full pass
	// instead of recursing through the completion callback.
	tour, err := Parse([]byte(`
points := [[100, 0], [100, 0]]
loop := true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	actor := &tourActor{pos: cp.Vector{X: 100, Y: 0}}
	ctrl := motion.NewController(actor, nil, nil, motion.Config{Speed: 400})
	tour.Start(ctrl)

	if ctrl.Moving() {
		t.Fatalf("a tour that cannot move anywhere should leave the controller idle")
	}
}

func TestTourSkipsDuplicateDestinations(t *testing.T) {
	tour, err := Parse([]byte(`
points := [[100, 0], [100, 0], [200, 0]]
loop := true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	actor := &tourActor{pos: cp.Vector{X: 100, Y: 0}}
	ctrl := motion.NewController(actor, nil, nil, motion.Config{Speed: 400})
	tour.Start(ctrl)

	if !ctrl.Moving() {
		t.Fatalf("tour should skip past coincident points and keep moving")
	}
	for i := 0; i < 2000; i++ {
		ctrl.Update(1.0 / 60.0)
		if !ctrl.Moving() {
			t.Fatalf("looping tour went idle at frame %d", i)
		}
	}
}

func TestLoopingTourNeverIdles(t *testing.T) {
	tour, err := Parse([]byte(`
points := [[100, 0], [0, 0]]
loop := true
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	actor := &tourActor{}
	ctrl := motion.NewController(actor, nil, nil, motion.Config{Speed: 400})
	tour.Start(ctrl)

	for i := 0; i < 2000; i++ {
		ctrl.Update(1.0 / 60.0)
		if !ctrl.Moving() {
			t.Fatalf("looping tour went idle at frame %d", i)
		}
	}
}
