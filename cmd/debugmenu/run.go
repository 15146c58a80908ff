package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/debugmenu/cmd"
	"github.com/cristianoliveira/debugmenu/internal/colors"
	"github.com/cristianoliveira/debugmenu/internal/config"
	"github.com/cristianoliveira/debugmenu/internal/console"
	"github.com/cristianoliveira/debugmenu/internal/defaults"
	apperrors "github.com/cristianoliveira/debugmenu/internal/errors"
	"github.com/cristianoliveira/debugmenu/internal/input"
	"github.com/cristianoliveira/debugmenu/internal/logging"
	"github.com/cristianoliveira/debugmenu/internal/settings"
	"github.com/cristianoliveira/debugmenu/internal/storage"
	"github.com/cristianoliveira/debugmenu/internal/tui/render"
	"github.com/cristianoliveira/debugmenu/internal/tui/state"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// statsInterval is how often the sample world reports its state.
const statsInterval = 5 * time.Second

// errNotTerminal is returned when run is started without a TTY.
var errNotTerminal = errors.New("debug console requires an interactive terminal")

type runClient interface {
	OpenStore() (storage.Store, error)
	IsTerminal() bool
}

// NewRunCmd creates the run command with explicit dependencies.
func NewRunCmd(client runClient) *cobra.Command {
	if client == nil {
		panic("NewRunCmd: client dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "run",
		Short: "Open the debug console over a sample game world",
		Long: `Open the debug console in the terminal.

Press ` + "`" + ` to toggle the menu, arrows or j/k to move, enter to run an
action and esc to go back. Shortcut keys work while the menu is hidden.
Flags are persisted between runs and console settings are reloaded when
the settings file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !client.IsTerminal() {
				return errNotTerminal
			}
			store, err := client.OpenStore()
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			return runConsole(cmd.Context(), store)
		},
	}
}

func runConsole(ctx context.Context, store storage.Store) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	defer func() { _ = logging.ShutdownGlobal() }()

	s, path := loadSettings()
	surface := state.NewSurface(render.DefaultStyles())
	c := console.New(console.Options{
		Settings:            s,
		Store:               store,
		Logger:              logging.GetGlobal(),
		Surface:             surface,
		Notices:             apperrors.NewTUIHandler(nil),
		ConfirmDebounce:     config.GetDuration("confirm_debounce", 0),
		FastRepeatThreshold: config.GetDuration("fast_repeat_threshold", 500*time.Millisecond),
		FastRepeatInterval:  config.GetDuration("fast_repeat_interval", 50*time.Millisecond),
		LongPress:           config.GetDuration("long_press_duration", 500*time.Millisecond),
	})
	defer c.Close()

	m := state.New(state.Options{
		Console:  c,
		Surface:  surface,
		Keys:     input.NewKeys(input.DefaultKeyMap(), 0),
		Interval: config.GetDuration("tick_interval", state.DefaultInterval),
	})
	defaults.Register(c, m.Hooks())
	world := &sampleWorld{}
	registerSamples(c, world)

	// The alternate screen owns the terminal until the program exits.
	restore := colors.SetOutput(io.Discard, io.Discard)
	defer restore()

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(runCtx))
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && runCtx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		err := settings.Watch(runCtx, path, func(next *settings.Settings) {
			c.Post(func(c *console.Console) { c.ApplySettings(next) })
		})
		if err != nil {
			colors.Warning(fmt.Sprintf("settings reload disabled: %v", err))
		}
		return nil
	})
	g.Go(func() error {
		emitStats(runCtx, c, world, statsInterval)
		return nil
	})
	return g.Wait()
}

// emitStats posts a debug entry with the world state every interval until
// ctx is done. The state is read on the console tick.
func emitStats(ctx context.Context, c *console.Console, w *sampleWorld, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Post(func(c *console.Console) {
				c.Logger().Debug("world",
					"enemies", w.enemies,
					"zone", w.zone,
					"god_mode", w.godMode,
					"difficulty", difficulties[w.difficulty],
					"show_fps", w.showFPS,
				)
			})
		}
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewRunCmd(client))
}
