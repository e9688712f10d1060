package main

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"net/http"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/debugfeed"
	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
	"github.com/milk9111/platformcore/ecs/entity"
	"github.com/milk9111/platformcore/ecs/system"
	"github.com/milk9111/platformcore/levels"
	"github.com/milk9111/platformcore/obj"
	"github.com/milk9111/platformcore/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type options struct {
	level    string
	debug    bool
	feedAddr string
	watch    bool
}

type Game struct {
	frames int
	debug  bool

	world    *ecs.World
	geometry *obj.CollisionWorld
	// colors caches each prefab's debug colour.
	colors map[string]color.Color

	hub     *debugfeed.Hub
	server  *http.Server
	watcher *prefabs.Watcher

	jumps, landings int
}

func NewGame(opts options) (*Game, error) {
	lvl, err := levels.Load(opts.level)
	if err != nil {
		return nil, err
	}

	g := &Game{
		debug:    opts.debug,
		world:    ecs.NewWorld(),
		geometry: obj.NewCollisionWorld(lvl),
		colors:   make(map[string]color.Color),
	}

	if opts.watch {
		g.watcher, err = prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			return nil, fmt.Errorf("game: watch prefabs: %w", err)
		}
		g.world.AddSystem(system.NewReloadSystem(g.watcher))
	}

	if err := entity.BuildLevel(g.world, lvl, g.geometry, NewKeyboardSampler()); err != nil {
		g.Close()
		return nil, err
	}
	g.world.AddSystem(system.NewMotionSystem())
	g.world.AddSystem(system.NewCameraSystem())

	if opts.feedAddr != "" {
		g.hub = debugfeed.NewHub()
		g.server = &http.Server{Addr: opts.feedAddr, Handler: g.hub.Handler()}
		go func() {
			if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Game: debug feed: %v", err)
			}
		}()
		log.Printf("Game: debug feed on ws://%s/", opts.feedAddr)
		g.world.AddSystem(system.NewFeedSystem(g.hub))
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}

	g.frames++
	g.world.Step(1 / float64(ebiten.TPS()))
	for _, ev := range g.world.Events().Drain() {
		switch ev.Kind {
		case ecs.EventJumped, ecs.EventAirJumped:
			g.jumps++
		case ecs.EventLanded:
			g.landings++
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	v := view{center: g.cameraCenter(), width: baseWidth, height: baseHeight}

	for _, s := range g.geometry.Solids() {
		v.fillBB(screen, s.BB, colornames.Slategray)
	}
	if g.debug {
		drawSpace(screen, v, g.geometry.Space())
	}

	ecs.ForEach(g.world, component.ActorComponent.Kind(), func(_ ecs.Entity, actor *component.Actor) {
		drawActor(screen, v, actor.Controller.Inspect(), g.actorColor(actor.Prefab), g.debug)
	})

	hud := fmt.Sprintf("TPS: %.0f  FPS: %.2f  tick: %d\njumps: %d  landings: %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), g.world.Ticks(), g.jumps, g.landings)
	if g.hub != nil {
		hud += fmt.Sprintf("\nfeed viewers: %d  dropped: %d", g.hub.Subscribers(), g.hub.Dropped())
	}
	ebitenutil.DebugPrint(screen, hud)
}

// cameraCenter follows the first camera, or the player when the level has
// none.
func (g *Game) cameraCenter() cp.Vector {
	if _, cam, ok := ecs.First(g.world, component.CameraComponent.Kind()); ok && cam.Filter != nil {
		return cam.Position
	}
	if e, _, ok := ecs.First(g.world, component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(g.world, e, component.TransformComponent.Kind()); ok {
			return t.Position
		}
	}
	lvl := g.geometry.Level()
	return cp.Vector{X: float64(lvl.Width) / 2, Y: float64(lvl.Height) / 2}
}

func (g *Game) actorColor(prefab string) color.Color {
	if c, ok := g.colors[prefab]; ok {
		return c
	}
	c := color.Color(colornames.Crimson)
	if spec, err := prefabs.LoadPlayerSpec(prefab); err == nil {
		c = spec.DebugColor.Or(c)
	}
	g.colors[prefab] = c
	return c
}

// Close stops the debug feed and the prefab watcher.
func (g *Game) Close() {
	if g.server != nil {
		g.server.Close()
	}
	if g.hub != nil {
		g.hub.Close()
	}
	if g.watcher != nil {
		g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
