package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/pointclick/motion"
	"github.com/milk9111/pointclick/nav"
	"github.com/milk9111/pointclick/scene"
	"github.com/milk9111/pointclick/script"
)

const walkingSpeed = 140.0

type demoActor struct {
	pos  cp.Vector
	size cp.Vector
}

func (a *demoActor) Position() cp.Vector     { return a.pos }
func (a *demoActor) SetPosition(p cp.Vector) { a.pos = p }
func (a *demoActor) Size() cp.Vector         { return a.size }

type Game struct {
	frames int
	debug  bool

	sceneName string
	tourName  string

	scn     *scene.Scene
	router  *nav.Router
	actor   *demoActor
	ctrl    *motion.Controller
	tour    *script.Tour
	watcher *scene.Watcher

	// last requested route, kept for the debug overlay
	rawPath []cp.Vector
}

func NewGame(sceneName, tourName string, debug bool) (*Game, error) {
	g := &Game{
		sceneName: sceneName,
		tourName:  tourName,
		debug:     debug,
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}

	watcher, err := scene.NewWatcher("scene")
	if err != nil {
		log.Printf("scene watcher disabled: %v", err)
	} else {
		g.watcher = watcher
	}
	return g, nil
}

func (g *Game) loadScene() error {
	scn, err := scene.Load(g.sceneName)
	if err != nil {
		return err
	}
	g.scn = scn
	g.router = nav.NewRouter(scn.Grid())
	if g.actor == nil {
		g.actor = &demoActor{pos: scn.Spawn(), size: cp.Vector{X: 20, Y: 44}}
	}
	// A fresh controller drops any path computed against the old grid.
	g.ctrl = motion.NewController(g.actor, g.router, scn, motion.Config{Speed: walkingSpeed})
	g.rawPath = nil

	if g.tourName != "" {
		tour, err := script.Load(g.tourName)
		if err != nil {
			return err
		}
		g.tour = tour
		tour.Start(g.ctrl)
	}
	return nil
}

func (g *Game) Update() error {
	g.frames++

	if g.watcher != nil {
		select {
		case name := <-g.watcher.Events:
			log.Printf("scene file changed: %s, reloading", name)
			if err := g.loadScene(); err != nil {
				log.Printf("scene reload failed: %v", err)
			}
		case err := <-g.watcher.Errors:
			log.Printf("scene watcher: %v", err)
		default:
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		target := cp.Vector{X: float64(mx), Y: float64(my)}
		if g.debug {
			g.rawPath = g.router.FindRawPath(g.actor.Position(), target)
		}
		g.ctrl.MoveTo(target, true)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.ctrl.StopMovement()
	}

	g.ctrl.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawWalkableCells(screen)
	if g.debug {
		g.drawPaths(screen)
	}
	g.drawActor(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f  state: %s  (left click: walk, right click: stop)", ebiten.ActualFPS(), g.ctrl.State()))
}

func (g *Game) drawWalkableCells(screen *ebiten.Image) {
	grid := g.scn.Grid()
	size := float32(grid.CellSize())
	fill := color.RGBA{R: 40, G: 90, B: 40, A: 255}
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			if !grid.IsWalkable(col, row) {
				continue
			}
			vector.FillRect(screen, float32(col)*size, float32(row)*size, size-1, size-1, fill, false)
		}
	}
}

func (g *Game) drawPaths(screen *ebiten.Image) {
	drawPath(screen, g.rawPath, color.RGBA{R: 110, G: 110, B: 110, A: 160})
	drawPath(screen, g.ctrl.Path(), color.RGBA{R: 230, G: 200, B: 60, A: 220})
}

func drawPath(screen *ebiten.Image, path []cp.Vector, clr color.RGBA) {
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1.5, clr, true)
	}
	for _, p := range path {
		vector.FillRect(screen, float32(p.X)-2, float32(p.Y)-2, 4, 4, clr, false)
	}
}

func (g *Game) drawActor(screen *ebiten.Image) {
	pos := g.actor.Position()
	scale := g.scn.ScaleAt(pos.Y)
	w := g.actor.Size().X * scale
	h := g.actor.Size().Y * scale
	// The actor's position is its feet; the body rectangle extends upward.
	x := float32(pos.X - w/2)
	y := float32(pos.Y - h)
	vector.FillRect(screen, x, y, float32(w), float32(h), color.RGBA{R: 210, G: 170, B: 120, A: 255}, false)
	vector.StrokeRect(screen, x, y, float32(w), float32(h), 1.0, color.RGBA{R: 30, G: 30, B: 30, A: 255}, false)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	spec := g.scn.Spec()
	return spec.Width, spec.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
