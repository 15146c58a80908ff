// Package defaults registers the built-in actions of the console.
package defaults

import (
	"fmt"
	"time"

	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/console"
	"github.com/cristianoliveira/debugmenu/internal/param"
)

// Group names.
const (
	GroupApplication = "Application"
	GroupLogger      = "Logger"
)

// Flag keys.
const (
	FlagTickRate          = "tick-rate"
	FlagBottomPanelHeight = "bottom-panel-height"
	FlagShowLogger        = "show-logger"
)

// ConfirmWord must be typed to run a destructive action.
const ConfirmWord = "clear"

// TickRates maps the Tick Rate flag values to tick intervals. Zero keeps
// the configured interval.
var TickRates = []time.Duration{0, time.Second / 30, time.Second / 60}

// PanelHeights maps the Bottom Panel Height flag values to panel rows.
var PanelHeights = []int{5, 8, 12}

// Hooks receives the effects of the default actions. Nil hooks are skipped.
type Hooks struct {
	Quit        func()
	TickRate    func(interval time.Duration)
	PanelHeight func(rows int)
	ShowLogger  func(show bool)
}

// Flags are the default flags registered by Register.
type Flags struct {
	TickRate          *action.Flag
	BottomPanelHeight *action.Flag
	ShowLogger        *action.Flag
}

// Register adds the Application and Logger groups as enabled by the console
// settings. The Logger group is skipped while the logger is disabled.
func Register(c *console.Console, hooks Hooks) Flags {
	var flags Flags
	s := c.Settings()
	if s.AddApplicationOptions {
		flags.TickRate = RegisterApplication(c, hooks)
	}
	if s.AddLoggerOptions && !s.DisableLogger {
		flags.BottomPanelHeight, flags.ShowLogger = RegisterLogger(c, hooks)
	}
	return flags
}

// RegisterApplication adds Quit, Clear Stored Values, Reset All Flags,
// Reset Flag and Tick Rate.
func RegisterApplication(c *console.Console, hooks Hooks) *action.Flag {
	quit := action.NewButton("", "Quit", hooks.Quit)
	quit.CloseMenuAfterTrigger = true

	clearStore := action.NewInput("", "Clear Stored Values",
		param.MustQuery(param.Spec{Name: "clear", Type: param.String, Description: "Type clear to confirm clearing"}),
		func(r *param.Response) {
			if r.String("clear") != ConfirmWord {
				return
			}
			if err := c.Store().Clear(); err != nil {
				c.Logger().Error("unable to clear stored values", "error", err)
				return
			}
			c.Logger().Info("Stored values cleared.")
		})
	clearStore.Color = "red"
	clearStore.CloseMenuAfterTrigger = true

	resetAll := action.NewInput("", "Reset All Flags",
		param.MustQuery(
			param.Spec{Name: "clear", Type: param.String, Description: "Type clear to confirm clearing"},
			param.Spec{Name: "invokeFlagListener", Type: param.Bool, Default: true,
				Description: "Set false to skip notifying flag listeners if the value was being reset"},
		),
		func(r *param.Response) {
			if r.String("clear") != ConfirmWord {
				return
			}
			n := c.Registry().ResetFlags(r.Bool("invokeFlagListener"))
			c.Logger().Info(fmt.Sprintf("%d flag(s) was being reset.", n))
		})
	resetAll.Color = "red"

	resetOne := action.NewInput("", "Reset Flag",
		param.MustQuery(
			param.Spec{Name: "flag", Type: param.String, Description: "The flag you want to reset the value"},
			param.Spec{Name: "invokeFlagListener", Type: param.Bool, Default: true,
				Description: "Set false to skip notifying flag listeners if the value is being reset"},
		),
		func(r *param.Response) {
			key := r.String("flag")
			if key == "" {
				return
			}
			f, err := c.Registry().Flag(key)
			if err != nil {
				return
			}
			f.Reset(r.Bool("invokeFlagListener"))
			c.Logger().Info(key + " was being reset.")
		})
	resetOne.Color = "red"

	tickRate := action.NewFlag(action.FlagSpec{
		Base:       action.Base{Name: "Tick Rate", Notes: "Ticks per second of the console loop"},
		Key:        FlagTickRate,
		Labels:     []string{"Default", "30", "60"},
		Persistent: true,
	})

	c.Register(GroupApplication, quit, clearStore, resetAll, resetOne, tickRate)
	tickRate.OnChange(func(f *action.Flag) {
		if hooks.TickRate != nil {
			hooks.TickRate(TickRates[f.AsInt()])
		}
	}, true)
	return tickRate
}

// RegisterLogger adds Clear Logger, Bottom Panel Height and Show Logger.
func RegisterLogger(c *console.Console, hooks Hooks) (height, show *action.Flag) {
	clearLogger := action.NewButton("", "Clear Logger", func() {
		c.LogBuffer().Clear()
	})
	clearLogger.Color = "red"

	height = action.NewFlag(action.FlagSpec{
		Base:       action.Base{Name: "Bottom Panel Height", Notes: "The panel height for logger panel and tooltip panel"},
		Key:        FlagBottomPanelHeight,
		Labels:     []string{"Small", "Medium", "Large"},
		Persistent: true,
	})

	show = action.NewBoolFlag("", "Show Logger", FlagShowLogger, true)
	show.ShortcutKey = "l"

	c.Register(GroupLogger, clearLogger, height, show)
	height.OnChange(func(f *action.Flag) {
		if hooks.PanelHeight != nil {
			hooks.PanelHeight(PanelHeights[f.AsInt()])
		}
	}, true)
	show.OnChange(func(f *action.Flag) {
		if hooks.ShowLogger != nil {
			hooks.ShowLogger(f.AsBool())
		}
	}, true)
	return height, show
}
