// Package console is the context object of the debug menu. It owns the
// registry, the flag store, the navigator and the log panel, and advances
// all of them from a single Tick call so mutations never interleave.
package console

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/errors"
	"github.com/cristianoliveira/debugmenu/internal/input"
	"github.com/cristianoliveira/debugmenu/internal/listwindow"
	"github.com/cristianoliveira/debugmenu/internal/logging"
	"github.com/cristianoliveira/debugmenu/internal/logstream"
	"github.com/cristianoliveira/debugmenu/internal/navigator"
	"github.com/cristianoliveira/debugmenu/internal/registry"
	"github.com/cristianoliveira/debugmenu/internal/search"
	"github.com/cristianoliveira/debugmenu/internal/settings"
	"github.com/cristianoliveira/debugmenu/internal/storage"
)

// Options configures a Console.
type Options struct {
	Settings *settings.Settings
	// Store persists flag values. Nil uses an in-memory store.
	Store storage.Store
	// Logger receives every console log entry before it reaches the panel.
	Logger logging.Logger
	// Surface renders the list. Nil renders nothing.
	Surface navigator.Surface
	// Notices receives action notices and rejected input.
	Notices errors.ErrorHandler

	// ConfirmDebounce delays a submitted input line. Zero runs it on the
	// next tick.
	ConfirmDebounce     time.Duration
	FastRepeatThreshold time.Duration
	FastRepeatInterval  time.Duration
	LongPress           time.Duration
}

// Console is the debug menu context. Tick must be called from one
// goroutine; other goroutines hand work over with Post.
type Console struct {
	settings *settings.Settings
	store    storage.Store
	log      logging.Logger
	stream   *logstream.Stream
	buffer   *logstream.Buffer
	registry *registry.Registry
	nav      *navigator.Navigator
	notices  errors.ErrorHandler

	// loggerOff mirrors settings.DisableLogger for stream subscribers.
	loggerOff atomic.Bool

	visible  bool
	prompt   *prompt
	debounce time.Duration
	now      time.Time
	ticks    uint64

	queueMu sync.Mutex
	queue   []func(*Console)

	toggleMu        sync.Mutex
	toggleObservers []toggleObserver
	nextObserverID  int

	cancels []func()
	closed  bool
}

type toggleObserver struct {
	id int
	fn func(visible bool)
}

// New creates a console with an empty registry and a hidden menu.
func New(opts Options) *Console {
	s := opts.Settings
	if s == nil {
		s = settings.DefaultSettings()
	}
	store := opts.Store
	if store == nil {
		store = storage.NewMemoryStore()
	}
	notices := opts.Notices
	if notices == nil {
		notices = errors.NewTUIHandler(nil)
	}

	c := &Console{
		settings: s,
		store:    store,
		stream:   logstream.New(),
		buffer:   logstream.NewBuffer(s.LoggerMaxLines),
		notices:  notices,
		debounce: opts.ConfirmDebounce,
	}
	c.loggerOff.Store(s.DisableLogger)
	c.log = logging.Tee(opts.Logger, c.stream)
	c.registry = registry.New(store, c.log)
	c.nav = navigator.New(c.registry.Tree().Root(), c, opts.Surface, c.registry, navigator.Options{
		Window: listwindow.Options{
			RowHeight:      1,
			ViewportHeight: float64(s.ViewportRows),
			Overscan:       s.OverscanRows,
		},
		FastRepeatThreshold: opts.FastRepeatThreshold,
		FastRepeatInterval:  opts.FastRepeatInterval,
		LongPress:           opts.LongPress,
		TooltipOnNavigation: s.ShowTooltipOnKeyboardNavigation,
	})

	c.cancels = append(c.cancels,
		c.registry.Subscribe(func(registry.Event) { c.nav.TreeChanged() }),
		c.stream.Subscribe(c.appendLog),
	)
	c.applySearch()
	return c
}

// Close releases subscriptions and the store. The console must not be
// used afterwards.
func (c *Console) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.DismissInput()
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// Registry returns the action catalog.
func (c *Console) Registry() *registry.Registry { return c.registry }

// Navigator returns the list navigator.
func (c *Console) Navigator() *navigator.Navigator { return c.nav }

// Store returns the flag store.
func (c *Console) Store() storage.Store { return c.store }

// Stream returns the log stream hosts publish to, from any goroutine.
func (c *Console) Stream() *logstream.Stream { return c.stream }

// LogBuffer returns the entries shown by the logger panel.
func (c *Console) LogBuffer() *logstream.Buffer { return c.buffer }

// Settings returns the active preferences.
func (c *Console) Settings() *settings.Settings { return c.settings }

// Logger returns the console logger. Entries also reach the log panel.
func (c *Console) Logger() logging.Logger { return c.log }

// Notices returns the handler receiving user-visible outcomes.
func (c *Console) Notices() errors.ErrorHandler { return c.notices }

func (c *Console) appendLog(e logstream.Entry) {
	if c.loggerOff.Load() {
		return
	}
	c.buffer.Append(e)
}

// ApplySettings switches to s, e.g. after the settings file changed. The
// overscan of an existing list window is kept.
func (c *Console) ApplySettings(s *settings.Settings) {
	if s == nil {
		return
	}
	c.settings = s
	c.loggerOff.Store(s.DisableLogger)
	c.buffer.SetMax(s.LoggerMaxLines)
	c.nav.SetTooltipOnNavigation(s.ShowTooltipOnKeyboardNavigation)
	c.nav.Window().SetViewportHeight(float64(s.ViewportRows))
	c.applySearch()
	if c.nav.Searching() {
		c.nav.Search(c.nav.Query())
	}
}

func (c *Console) applySearch() {
	p, err := search.NewProvider(c.settings.SearchMode, search.WithCaseInsensitive(!c.settings.CaseSensitiveSearch))
	if err != nil {
		c.log.Warn("unknown search mode, using substring", "mode", c.settings.SearchMode)
		p, _ = search.NewProvider(search.ModeSubstring, search.WithCaseInsensitive(!c.settings.CaseSensitiveSearch))
	}
	c.registry.Index().SetProvider(p)
}

// Register adds actions to the catalog; see registry.Registry.Register.
func (c *Console) Register(group string, actions ...action.Action) {
	c.registry.Register(group, actions...)
}

// Search filters the list. An empty query restores it.
func (c *Console) Search(query string) {
	c.nav.Search(query)
}

// Post queues fn to run on the next tick. It is safe to call from any
// goroutine.
func (c *Console) Post(fn func(*Console)) {
	if fn == nil {
		return
	}
	c.queueMu.Lock()
	c.queue = append(c.queue, fn)
	c.queueMu.Unlock()
}

func (c *Console) drain() {
	c.queueMu.Lock()
	queue := c.queue
	c.queue = nil
	c.queueMu.Unlock()
	for _, fn := range queue {
		fn(c)
	}
}

// Now returns the time of the current tick.
func (c *Console) Now() time.Time { return c.now }

// Tick advances the console by one frame: queued work, the deferred
// confirm, the menu toggle, shortcuts while hidden and navigation while
// shown.
func (c *Console) Tick(now time.Time, in input.Layer) {
	if in == nil {
		in = input.None{}
	}
	c.now = now
	c.ticks++

	c.drain()
	in.Update(now)
	c.runDueConfirm()

	if c.InputBlocked() {
		if in.MenuToggle() {
			c.DismissInput()
		}
		return
	}

	if in.MenuToggle() {
		c.ToggleMenu()
	}

	if !c.visible {
		c.dispatchShortcuts(in)
		return
	}

	if c.settings.EnableInputNavigation {
		c.nav.Update(now, in)
	} else {
		c.nav.Update(now, input.None{})
	}
}

func (c *Console) dispatchShortcuts(in input.Layer) {
	for _, a := range c.registry.Actions() {
		key := a.Info().ShortcutKey
		if key == "" || !in.KeyDown(key) {
			continue
		}
		if resolved, ok := c.registry.DispatchShortcut(key, c); ok {
			c.DisplayAction(resolved)
		}
		return
	}
}
