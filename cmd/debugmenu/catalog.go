package main

import (
	"fmt"

	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/colors"
	"github.com/cristianoliveira/debugmenu/internal/console"
	"github.com/cristianoliveira/debugmenu/internal/defaults"
	"github.com/cristianoliveira/debugmenu/internal/logging"
	"github.com/cristianoliveira/debugmenu/internal/param"
	"github.com/cristianoliveira/debugmenu/internal/settings"
	"github.com/cristianoliveira/debugmenu/internal/storage"
)

const (
	groupCheats = "Cheats"
	groupWorld  = "World"

	// FlagShowFPS is the key of the sample persisted flag.
	FlagShowFPS = "show-fps"

	zoneCount = 40
)

var difficulties = []string{"Easy", "Normal", "Hard"}

// sampleWorld is the fake game state the sample actions drive. It is only
// touched from the console tick.
type sampleWorld struct {
	godMode    bool
	difficulty int
	enemies    int
	zone       int
	showFPS    bool
}

// registerSamples adds the demo actions: top-level spawners, a Cheats group
// covering every action kind and a World group long enough to scroll.
func registerSamples(c *console.Console, w *sampleWorld) {
	log := c.Logger()

	spawn := action.NewButton("", "Spawn Enemy", func() {
		w.enemies++
		log.Info("enemy spawned", "total", w.enemies)
	})
	spawn.ShortcutKey = "s"
	spawn.Notes = "Adds one enemy next to the player"

	spawnMany := action.NewInput("", "Spawn Enemies",
		param.MustQuery(
			param.Spec{Name: "kind", Type: param.String, Description: "Enemy kind"},
			param.Spec{Name: "count", Type: param.Int, Default: 1, Description: "How many to spawn"},
		),
		func(r *param.Response) {
			w.enemies += r.Int("count")
			log.Info("enemies spawned", "kind", r.String("kind"), "count", r.Int("count"), "total", w.enemies)
		})
	spawnMany.Notes = "Spawns a batch of enemies of one kind"

	c.Register("", spawn, spawnMany)

	godMode := action.NewSwitch("", "God Mode", false,
		func() {
			w.godMode = true
			log.Info("god mode enabled")
		},
		func() {
			w.godMode = false
			log.Info("god mode disabled")
		})
	godMode.ShortcutKey = "g"

	difficulty := action.NewEnum("", "Difficulty", difficulties,
		func() int { return w.difficulty },
		func(v int) {
			w.difficulty = v
			log.Info("difficulty changed", "difficulty", difficulties[v])
		})

	showFPS := action.NewBoolFlag("", "Show FPS", FlagShowFPS, false)
	showFPS.Notes = "Overlay the frame counter"

	teleport := action.NewInput("", "Teleport",
		param.MustQuery(
			param.Spec{Name: "x", Type: param.Float, Description: "Target x"},
			param.Spec{Name: "y", Type: param.Float, Description: "Target y"},
		),
		func(r *param.Response) {
			log.Info("teleported", "x", r.Float("x"), "y", r.Float("y"))
		})

	crash := action.NewButton("", "Throw Error", func() {
		log.Error("simulated failure", "enemies", w.enemies)
	})
	crash.Color = "red"
	crash.Notes = "Logs an error with its stack trace"

	c.Register(groupCheats, godMode, difficulty, showFPS, teleport, crash)
	showFPS.OnChange(func(f *action.Flag) { w.showFPS = f.AsBool() }, true)

	zones := make([]action.Action, 0, zoneCount)
	for i := 1; i <= zoneCount; i++ {
		zone := i
		b := action.NewButton("", fmt.Sprintf("Zone %02d", zone), func() {
			w.zone = zone
			log.Info("entered zone", "zone", zone)
		})
		b.StatusText = func() string {
			if w.zone == zone {
				return "here"
			}
			return ""
		}
		zones = append(zones, b)
	}
	c.Register(groupWorld, zones...)
}

// loadSettings reads the console preferences, falling back to defaults.
func loadSettings() (*settings.Settings, string) {
	path := settings.Path()
	s, err := settings.LoadFrom(path)
	if err != nil {
		colors.Warning(fmt.Sprintf("unable to load settings from %s, using defaults: %v", path, err))
		return settings.DefaultSettings(), path
	}
	return s, path
}

// openCatalog registers every action over store without a display so
// flags load their persisted values.
func openCatalog(store storage.Store) *console.Console {
	s, _ := loadSettings()
	c := console.New(console.Options{Settings: s, Store: store, Logger: logging.GetGlobal()})
	defaults.Register(c, defaults.Hooks{})
	registerSamples(c, &sampleWorld{})
	return c
}
