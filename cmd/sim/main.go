package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/milk9111/platformcore/debugfeed"
	"github.com/milk9111/platformcore/ecs"
	"github.com/milk9111/platformcore/ecs/component"
	"github.com/milk9111/platformcore/ecs/entity"
	"github.com/milk9111/platformcore/ecs/system"
	"github.com/milk9111/platformcore/levels"
	"github.com/milk9111/platformcore/obj"
	"github.com/milk9111/platformcore/prefabs"
	"github.com/milk9111/platformcore/telemetry"
)

type options struct {
	level        string
	ticks        int
	tps          int
	tracePath    string
	feedAddr     string
	playerScript string
	watch        bool
}

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "playground", "level name in levels/ (basename, .json optional)")
	flag.IntVar(&opts.ticks, "ticks", 600, "number of fixed steps to run")
	flag.IntVar(&opts.tps, "tps", 60, "steps per simulated second")
	flag.StringVar(&opts.tracePath, "trace", "", "write a per-tick CSV trace to this file")
	flag.StringVar(&opts.feedAddr, "feed", "", "serve the websocket debug feed on this address and run in real time")
	flag.StringVar(&opts.playerScript, "player-script", "", "drive the player with this script instead of standing still")
	flag.BoolVar(&opts.watch, "watch", false, "hot reload prefabs from ./prefabs")
	flag.Parse()

	summary, err := run(opts, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	log.Print(summary)
}

type summary struct {
	ticks  uint64
	rows   int
	events map[ecs.EventKind]int
}

func (s summary) String() string {
	return fmt.Sprintf("sim: %d ticks, %d trace rows, %d jumps, %d air jumps, %d dashes, %d landings, %d failed ticks",
		s.ticks, s.rows,
		s.events[ecs.EventJumped], s.events[ecs.EventAirJumped], s.events[ecs.EventDashed],
		s.events[ecs.EventLanded], s.events[ecs.EventTickFailed])
}

func run(opts options, stdout io.Writer) (summary, error) {
	res := summary{events: make(map[ecs.EventKind]int)}
	if opts.ticks <= 0 || opts.tps <= 0 {
		return res, errors.New("sim: ticks and tps must be positive")
	}
	dt := 1 / float64(opts.tps)

	lvl, err := levels.Load(opts.level)
	if err != nil {
		return res, err
	}
	geo := obj.NewCollisionWorld(lvl)
	w := ecs.NewWorld()

	if opts.watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			return res, fmt.Errorf("sim: watch prefabs: %w", err)
		}
		defer watcher.Close()
		w.AddSystem(system.NewReloadSystem(watcher))
	}

	if err := entity.BuildLevel(w, lvl, geo, nil); err != nil {
		return res, err
	}
	if opts.playerScript != "" {
		if err := scriptPlayer(w, opts.playerScript); err != nil {
			return res, err
		}
	}

	w.AddSystem(system.NewMotionSystem())
	w.AddSystem(system.NewCameraSystem())

	var trace *system.TraceSystem
	if opts.tracePath != "" {
		f, err := os.Create(opts.tracePath)
		if err != nil {
			return res, fmt.Errorf("sim: create trace: %w", err)
		}
		defer f.Close()
		trace = system.NewTraceSystem(telemetry.NewTraceWriter(f))
		w.AddSystem(trace)
	}

	var pace *time.Ticker
	if opts.feedAddr != "" {
		hub := debugfeed.NewHub()
		defer hub.Close()
		srv := &http.Server{Addr: opts.feedAddr, Handler: hub.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("sim: debug feed: %v", err)
			}
		}()
		defer srv.Close()
		fmt.Fprintf(stdout, "debug feed on ws://%s/\n", opts.feedAddr)
		w.AddSystem(system.NewFeedSystem(hub))

		pace = time.NewTicker(time.Duration(float64(time.Second) * dt))
		defer pace.Stop()
	}

	for i := 0; i < opts.ticks; i++ {
		if pace != nil {
			<-pace.C
		}
		w.Step(dt)
		for _, ev := range w.Events().Drain() {
			res.events[ev.Kind]++
		}
	}
	res.ticks = w.Ticks()

	if trace != nil {
		if err := trace.Flush(); err != nil {
			return res, err
		}
		res.rows = trace.Rows()
	}
	return res, nil
}

// scriptPlayer swaps the player's input for a script.
func scriptPlayer(w *ecs.World, script string) error {
	_, actor, ok := playerActor(w)
	if !ok {
		return errors.New("sim: level has no player")
	}
	s, err := system.NewScriptSampler(script, nil, actor.Controller, w.Clock())
	if err != nil {
		return err
	}
	actor.Sampler = s
	return nil
}

func playerActor(w *ecs.World) (ecs.Entity, *component.Actor, bool) {
	e, _, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	actor, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	return e, actor, ok
}
