package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "playground", "level name in levels/ (basename, .json optional)")
	flag.BoolVar(&opts.debug, "debug", false, "draw probe rays and collision shapes (F1 toggles)")
	flag.StringVar(&opts.feedAddr, "feed", "", "serve the websocket debug feed on this address")
	flag.BoolVar(&opts.watch, "watch", false, "hot reload prefabs from ./prefabs")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("platformcore")

	game, err := NewGame(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
