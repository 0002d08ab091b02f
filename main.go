package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	sceneName := flag.String("scene", "demo.yaml", "scene file in scene/ (embedded names work too)")
	tourName := flag.String("tour", "", "tour script in scene/scripts/ to run instead of mouse control")
	debug := flag.Bool("debug", false, "draw raw and optimized paths")
	flag.Parse()

	game, err := NewGame(*sceneName, *tourName, *debug)
	if err != nil {
		log.Fatalf("load scene %s: %v", *sceneName, err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowTitle("pointclick")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
