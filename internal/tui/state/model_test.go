package state

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/console"
	"github.com/cristianoliveira/debugmenu/internal/defaults"
	"github.com/cristianoliveira/debugmenu/internal/errors"
	"github.com/cristianoliveira/debugmenu/internal/param"
	"github.com/cristianoliveira/debugmenu/internal/tui/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyToggle = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("`")}
	keySlash  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")}
	keyDown   = tea.KeyMsg{Type: tea.KeyDown}
	keyUp     = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter  = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc    = tea.KeyMsg{Type: tea.KeyEsc}
)

type fixture struct {
	t       *testing.T
	c       *console.Console
	m       *Model
	flags   defaults.Flags
	now     time.Time
	spawned int
	greeted string
}

// newFixture builds a console with Spawn and Greet at the top level followed
// by the default groups.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, now: time.Now()}

	surface := NewSurface(render.DefaultStyles())
	f.c = console.New(console.Options{Surface: surface, Notices: errors.NewTUIHandler(nil)})
	t.Cleanup(func() { _ = f.c.Close() })
	f.m = New(Options{Console: f.c, Surface: surface})

	spawn := action.NewButton("", "Spawn", func() { f.spawned++ })
	spawn.Notes = "Spawns one enemy"
	greet := action.NewInput("", "Greet",
		param.MustQuery(param.Spec{Name: "name", Type: param.String}),
		func(r *param.Response) { f.greeted = r.String("name") })
	f.c.Register("", spawn, greet)
	f.flags = defaults.Register(f.c, f.m.Hooks())

	f.m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	return f
}

func (f *fixture) tick() tea.Cmd {
	f.now = f.now.Add(200 * time.Millisecond)
	_, cmd := f.m.Update(tickMsg(f.now))
	return cmd
}

// press sends k and runs the tick seeing it plus the tick releasing it.
func (f *fixture) press(k tea.KeyMsg) {
	f.m.Update(k)
	f.tick()
	f.tick()
}

func (f *fixture) typeText(s string) {
	f.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (f *fixture) menu() string {
	var b strings.Builder
	f.m.renderMenu(&b)
	return b.String()
}

func (f *fixture) openGreet() {
	f.press(keyToggle)
	f.press(keyDown)
	f.press(keyDown)
	f.press(keyEnter)
	require.True(f.t, f.m.promptOpen)
}

func TestInitSchedulesTick(t *testing.T) {
	f := newFixture(t)

	assert.NotNil(t, f.m.Init())
	assert.Equal(t, DefaultInterval, f.m.Interval())
}

func TestHiddenViewHintsToggle(t *testing.T) {
	f := newFixture(t)

	assert.Contains(t, f.m.View(), "press ` to open the debug menu")
}

func TestToggleOpensMenu(t *testing.T) {
	f := newFixture(t)

	f.press(keyToggle)

	require.True(t, f.c.MenuVisible())
	menu := f.menu()
	assert.Contains(t, menu, render.RootTitle)
	assert.Contains(t, menu, "Spawn")
	assert.Contains(t, menu, "Greet")
	assert.Contains(t, menu, "Application (5)")
	assert.Contains(t, menu, "Logger (3)")
}

func TestKeyboardDrillDownAndBack(t *testing.T) {
	f := newFixture(t)
	f.press(keyToggle)

	f.press(keyDown)
	f.press(keyDown)
	f.press(keyDown)
	f.press(keyEnter)

	assert.True(t, f.m.surface.Back())
	assert.Equal(t, defaults.GroupApplication, f.m.surface.Label())
	assert.Contains(t, f.menu(), "Quit")

	f.press(keyEsc)

	assert.False(t, f.m.surface.Back())
	assert.True(t, f.c.MenuVisible())
	assert.Contains(t, f.menu(), "Spawn")
}

func TestQuitActionStopsProgram(t *testing.T) {
	f := newFixture(t)
	f.press(keyToggle)
	f.press(keyDown)
	f.press(keyDown)
	f.press(keyDown)
	f.press(keyEnter)
	f.press(keyUp)
	f.press(keyUp)
	require.Equal(t, "Quit", f.c.Navigator().Selected().Name)

	f.m.Update(keyEnter)
	cmd := f.tick()

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, f.m.View())
}

func TestInputPromptSubmitsOnNextTick(t *testing.T) {
	f := newFixture(t)
	f.openGreet()
	assert.True(t, f.c.InputBlocked())
	assert.Contains(t, f.m.View(), "Greet")

	f.typeText("Ada")
	f.m.Update(keyEnter)
	assert.Empty(t, f.greeted)

	f.tick()

	assert.Equal(t, "Ada", f.greeted)
	assert.False(t, f.m.promptOpen)
	assert.False(t, f.c.InputBlocked())
}

func TestEscDismissesPrompt(t *testing.T) {
	f := newFixture(t)
	f.openGreet()
	f.typeText("Ada")

	f.m.Update(keyEsc)
	f.tick()

	assert.False(t, f.m.promptOpen)
	assert.False(t, f.c.InputBlocked())
	assert.Empty(t, f.greeted)
}

func TestMenuToggleCancelsPrompt(t *testing.T) {
	f := newFixture(t)
	f.openGreet()

	f.m.Update(keyToggle)
	f.tick()

	assert.False(t, f.m.promptOpen)
	assert.False(t, f.c.InputBlocked())
	assert.True(t, f.c.MenuVisible())
}

func TestSearchFiltersAndRestores(t *testing.T) {
	f := newFixture(t)
	f.press(keyToggle)

	f.m.Update(keySlash)
	require.True(t, f.m.searching)
	f.typeText("spa")

	require.True(t, f.c.Navigator().Searching())
	menu := f.menu()
	assert.Contains(t, menu, searchTitle)
	assert.Contains(t, menu, "Spawn")
	assert.NotContains(t, menu, "Greet")

	f.m.Update(keyEnter)
	assert.False(t, f.m.searching)
	assert.True(t, f.c.Navigator().Searching())

	f.m.Update(keyEsc)
	f.tick()

	assert.False(t, f.c.Navigator().Searching())
	assert.Empty(t, f.m.search.Value())
	assert.Contains(t, f.menu(), "Greet")
}

func TestShortcutWhileHidden(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.m.showLogger)

	f.m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	f.tick()

	assert.False(t, f.c.MenuVisible())
	assert.False(t, f.m.showLogger)
	assert.Contains(t, f.m.View(), "Show Logger: Off")
}

func TestDefaultFlagHooks(t *testing.T) {
	f := newFixture(t)

	f.flags.TickRate.SetValue(1, true)
	assert.Equal(t, time.Second/30, f.m.Interval())

	f.flags.BottomPanelHeight.SetValue(2, true)
	assert.Equal(t, 12, f.m.panelRows)
	assert.Equal(t, 12, f.m.logs.Height)
}

func TestLoggerPanelFollowsAndHolds(t *testing.T) {
	f := newFixture(t)

	f.c.Logger().Info("hello panel")
	f.tick()
	assert.Contains(t, f.m.View(), "hello panel")

	f.m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	require.True(t, f.c.LogBuffer().Held())

	f.c.Logger().Info("later entry")
	f.tick()
	assert.NotContains(t, f.m.View(), "later entry")

	f.m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	require.False(t, f.c.LogBuffer().Held())
	f.tick()
	assert.Contains(t, f.m.View(), "later entry")
}

func TestMouseClickAndLongPress(t *testing.T) {
	f := newFixture(t)
	f.press(keyToggle)
	top := f.m.listTop()

	f.m.Update(tea.MouseMsg{Y: top, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f.m.Update(tea.MouseMsg{Y: top, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, 1, f.spawned)

	f.m.Update(tea.MouseMsg{Y: top, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f.tick()
	f.tick()
	f.tick()
	assert.Contains(t, f.m.surface.Tooltip(), "Spawns one enemy")

	f.m.Update(tea.MouseMsg{Y: top, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.Equal(t, 1, f.spawned)
}

func TestMouseReleaseOffListCancels(t *testing.T) {
	f := newFixture(t)
	f.press(keyToggle)

	f.m.Update(tea.MouseMsg{Y: f.m.listTop(), Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f.m.Update(tea.MouseMsg{Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	assert.Zero(t, f.spawned)
}

func TestCtrlCQuits(t *testing.T) {
	f := newFixture(t)

	_, cmd := f.m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
