package console

import (
	"bytes"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/errors"
	"github.com/cristianoliveira/debugmenu/internal/logging"
	"github.com/cristianoliveira/debugmenu/internal/logstream"
	"github.com/cristianoliveira/debugmenu/internal/param"
	"github.com/cristianoliveira/debugmenu/internal/settings"
	"github.com/cristianoliveira/debugmenu/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// frame is the input of one tick.
type frame struct {
	toggle, confirm, back, up, down bool
	keys                            []string
}

func (f frame) Update(time.Time)         {}
func (f frame) Confirm() bool            { return f.confirm }
func (f frame) Back() bool               { return f.back }
func (f frame) MenuToggle() bool         { return f.toggle }
func (f frame) Up() bool                 { return f.up }
func (f frame) UpHeld() bool             { return f.up }
func (f frame) UpReleased() bool         { return false }
func (f frame) Down() bool               { return f.down }
func (f frame) DownHeld() bool           { return f.down }
func (f frame) DownReleased() bool       { return false }
func (f frame) KeyDown(code string) bool { return slices.Contains(f.keys, code) }

type harness struct {
	c       *Console
	notices *errors.TUIHandler
	logs    *bytes.Buffer
	clock   time.Time
}

func newTestConsole(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		notices: errors.NewTUIHandler(nil),
		logs:    &bytes.Buffer{},
		clock:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	opts.Notices = h.notices
	opts.Logger = logging.NewWriter(h.logs, logging.Config{Level: "debug"})
	h.c = New(opts)
	t.Cleanup(func() { _ = h.c.Close() })
	return h
}

func (h *harness) tick(f frame) {
	h.clock = h.clock.Add(10 * time.Millisecond)
	h.c.Tick(h.clock, f)
}

func (h *harness) latestNotice(t *testing.T) string {
	t.Helper()
	msg, ok := h.notices.GetLatest()
	require.True(t, ok, "no notice")
	return msg.Text
}

func TestMenuToggleNotifiesObservers(t *testing.T) {
	h := newTestConsole(t, Options{})
	var seen []bool
	cancel := h.c.OnMenuToggle(func(v bool) { seen = append(seen, v) })

	h.tick(frame{toggle: true})
	require.True(t, h.c.MenuVisible())
	h.tick(frame{toggle: true})
	require.False(t, h.c.MenuVisible())

	cancel()
	cancel()
	h.c.OpenMenu()
	assert.Equal(t, []bool{true, false}, seen)
}

func TestShortcutDispatchesFirstMatchWhileHidden(t *testing.T) {
	h := newTestConsole(t, Options{})
	var ran []string
	first := action.NewButton("", "Ping", func() { ran = append(ran, "first") })
	first.ShortcutKey = "p"
	second := action.NewButton("", "Pong", func() { ran = append(ran, "second") })
	second.ShortcutKey = "p"
	h.c.Register("", first, second)

	h.tick(frame{keys: []string{"p"}})
	assert.Equal(t, []string{"first"}, ran)
	assert.Equal(t, "Ping", h.latestNotice(t))

	h.c.OpenMenu()
	h.tick(frame{keys: []string{"p"}})
	assert.Equal(t, []string{"first"}, ran)
}

func TestShortcutNoticeCarriesStatus(t *testing.T) {
	h := newTestConsole(t, Options{})
	f := action.NewBoolFlag("", "Show FPS", "show-fps", false)
	f.ShortcutKey = "f"
	h.c.Register("", f)

	h.tick(frame{keys: []string{"f"}})
	assert.True(t, f.AsBool())
	assert.Equal(t, "Show FPS: On", h.latestNotice(t))
}

func newGreet(got *[]string) *action.Input {
	q := param.MustQuery(param.Spec{Name: "name", Type: param.String})
	return action.NewInput("", "Greet", q, func(r *param.Response) {
		*got = append(*got, r.String("name"))
	})
}

func TestInputConfirmRunsOnNextTick(t *testing.T) {
	h := newTestConsole(t, Options{})
	var got []string
	greet := newGreet(&got)
	h.c.Register("", greet)

	greet.Resolve(h.c)
	require.True(t, h.c.MenuVisible())
	require.True(t, h.c.InputBlocked())
	req, ok := h.c.Prompt()
	require.True(t, ok)
	assert.Equal(t, "Greet", req.Title)
	assert.Equal(t, "<name>", req.Prompt)

	h.c.SubmitInput("big bob")
	assert.Empty(t, got)
	assert.True(t, h.c.ConfirmPending())

	h.tick(frame{})
	assert.Equal(t, []string{"big bob"}, got)
	assert.False(t, h.c.InputBlocked())
}

func TestConfirmDebounceRestarts(t *testing.T) {
	h := newTestConsole(t, Options{ConfirmDebounce: 100 * time.Millisecond})
	var got []string
	greet := newGreet(&got)
	h.tick(frame{})

	greet.Resolve(h.c)
	h.c.SubmitInput("first")
	for i := 0; i < 5; i++ {
		h.tick(frame{})
	}
	require.Empty(t, got)

	h.c.SubmitInput("second")
	for i := 0; i < 9; i++ {
		h.tick(frame{})
	}
	require.Empty(t, got)

	h.tick(frame{})
	assert.Equal(t, []string{"second"}, got)
}

func TestBlockedInputSuspendsShortcutsAndToggleCancels(t *testing.T) {
	h := newTestConsole(t, Options{ConfirmDebounce: time.Second})
	var got []string
	greet := newGreet(&got)
	var pinged int
	ping := action.NewButton("", "Ping", func() { pinged++ })
	ping.ShortcutKey = "p"
	h.c.Register("", greet, ping)

	greet.Resolve(h.c)
	h.c.CloseMenu()
	h.tick(frame{keys: []string{"p"}})
	assert.Zero(t, pinged)

	h.c.SubmitInput("bob")
	h.tick(frame{toggle: true, keys: []string{"p"}})
	assert.False(t, h.c.InputBlocked())
	assert.Empty(t, got, "dismissing drops the pending confirm")
	assert.False(t, h.c.MenuVisible(), "toggle consumed by the prompt")
	assert.Zero(t, pinged)
}

func TestDismissReleasesBlock(t *testing.T) {
	h := newTestConsole(t, Options{})
	var got []string
	newGreet(&got).Resolve(h.c)
	h.c.SubmitInput("x")
	h.c.DismissInput()
	h.tick(frame{})

	assert.False(t, h.c.InputBlocked())
	assert.Empty(t, got)
}

func TestRejectedInputLogsWarning(t *testing.T) {
	h := newTestConsole(t, Options{})
	q := param.MustQuery(
		param.Spec{Name: "a", Type: param.Int},
		param.Spec{Name: "b", Type: param.Int},
	)
	var called bool
	in := action.NewInput("", "Add", q, func(*param.Response) { called = true })
	in.Resolve(h.c)
	h.c.SubmitInput("1")
	h.tick(frame{})

	assert.False(t, called)
	visible := h.c.LogBuffer().Visible()
	require.NotEmpty(t, visible)
	last := visible[len(visible)-1]
	assert.Equal(t, logstream.SeverityWarning, last.Severity)
	assert.Contains(t, last.Message, "input rejected")

	notice, ok := h.notices.GetLatest()
	require.True(t, ok)
	assert.Equal(t, errors.MessageTypeWarning, notice.Type)
	assert.Contains(t, notice.Text, "not enough args entered")
}

func TestKeyboardNavigationResolvesSelection(t *testing.T) {
	h := newTestConsole(t, Options{})
	var pinged int
	ping := action.NewButton("", "Ping", func() { pinged++ })
	ping.CloseMenuAfterTrigger = true
	h.c.Register("", ping, action.NewButton("Tools", "Other", nil))

	h.c.OpenMenu()
	h.tick(frame{down: true})
	h.tick(frame{confirm: true})

	assert.Equal(t, 1, pinged)
	assert.False(t, h.c.MenuVisible())
	assert.Equal(t, "Ping", h.latestNotice(t))
}

func TestInputNavigationCanBeDisabled(t *testing.T) {
	s := settings.DefaultSettings()
	s.EnableInputNavigation = false
	h := newTestConsole(t, Options{Settings: s})
	h.c.Register("", action.NewButton("", "Ping", nil))

	h.c.OpenMenu()
	h.tick(frame{down: true})
	assert.Equal(t, -1, h.c.Navigator().Index())
}

func TestBackClosesMenuAtRoot(t *testing.T) {
	h := newTestConsole(t, Options{})
	h.c.Register("Tools", action.NewButton("", "A", nil))
	h.c.OpenMenu()

	h.tick(frame{down: true})
	h.tick(frame{confirm: true})
	require.True(t, h.c.Navigator().BackVisible())

	h.tick(frame{back: true})
	assert.True(t, h.c.MenuVisible())
	h.tick(frame{back: true})
	assert.False(t, h.c.MenuVisible())
}

func TestPostRunsOnTick(t *testing.T) {
	h := newTestConsole(t, Options{})
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.c.Post(func(c *Console) {
				c.Register("Async", action.NewButton("", "Job", nil))
			})
		}()
	}
	wg.Wait()
	h.c.Post(nil)
	require.Zero(t, h.c.Registry().Len())

	h.tick(frame{})
	assert.Equal(t, 10, h.c.Registry().Len())
}

func TestSearchFollowsRegistryChanges(t *testing.T) {
	h := newTestConsole(t, Options{})
	h.c.Register("", action.NewButton("", "Target FPS", nil), action.NewButton("", "Quality Level", nil))

	h.c.Search("fps")
	require.Len(t, h.c.Navigator().Item().Children, 1)

	h.c.Register("Debug", action.NewButton("", "Show FPS", nil))
	assert.Len(t, h.c.Navigator().Item().Children, 2)

	h.c.Search("")
	assert.Len(t, h.c.Navigator().Item().Children, 3)
}

func TestApplySettingsSwitchesSearchMode(t *testing.T) {
	h := newTestConsole(t, Options{})
	h.c.Register("", action.NewButton("", "Target FPS", nil))

	h.c.Search("tfps")
	assert.Empty(t, h.c.Navigator().Item().Children)

	s := settings.DefaultSettings()
	s.SearchMode = settings.SearchModeFuzzy
	s.LoggerMaxLines = 2
	h.c.ApplySettings(s)
	assert.Len(t, h.c.Navigator().Item().Children, 1)

	for i := 0; i < 5; i++ {
		h.c.Logger().Info("line")
	}
	assert.Equal(t, 2, h.c.LogBuffer().Len())
}

func TestDisabledLoggerSkipsPanel(t *testing.T) {
	s := settings.DefaultSettings()
	s.DisableLogger = true
	h := newTestConsole(t, Options{Settings: s})

	h.c.Logger().Warn("hidden")
	assert.Zero(t, h.c.LogBuffer().Len())
	assert.Contains(t, h.logs.String(), "hidden")
}

func TestFlagsPersistThroughStore(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetInt(action.StoreKey("height"), 2))
	h := newTestConsole(t, Options{Store: store})

	f := action.NewFlag(action.FlagSpec{
		Base:       action.Base{Name: "Height"},
		Key:        "height",
		Labels:     []string{"Small", "Medium", "Large"},
		Persistent: true,
	})
	h.c.Register("Logger", f)
	assert.Equal(t, 2, f.AsInt())
	assert.True(t, f.Dirty())
}

func TestCloseReleasesStore(t *testing.T) {
	store := storage.NewMemoryStore()
	c := New(Options{Store: store})
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := store.GetInt("x", 0)
	assert.ErrorIs(t, err, storage.ErrClosed)
}

func TestStreamPublishFromOtherGoroutines(t *testing.T) {
	h := newTestConsole(t, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				h.c.Stream().Publish(logstream.Entry{Message: "host", Severity: logstream.SeverityInfo})
			}
		}()
	}
	for i := 0; i < 10; i++ {
		_ = h.c.LogBuffer().Text()
	}
	wg.Wait()

	assert.Equal(t, 100, h.c.LogBuffer().Len())
}
