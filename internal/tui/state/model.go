// Package state is the bubbletea model of the debug console. Every tick
// message advances the console once; key and mouse messages are handed to
// the input layer or to the navigator pointer API.
package state

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/debugmenu/internal/console"
	"github.com/cristianoliveira/debugmenu/internal/defaults"
	"github.com/cristianoliveira/debugmenu/internal/errors"
	"github.com/cristianoliveira/debugmenu/internal/input"
	"github.com/cristianoliveira/debugmenu/internal/tui/render"
)

const (
	// DefaultInterval is the frame interval without a Tick Rate override.
	DefaultInterval = 50 * time.Millisecond
	// NoticeTTL is how long a notice stays on the status line.
	NoticeTTL = 3 * time.Second
)

// Options configures a Model.
type Options struct {
	Console *console.Console
	// Surface must be the surface the console navigator renders to.
	Surface  *Surface
	Keys     *input.Keys
	Interval time.Duration
}

// Model renders a console and feeds it terminal input.
type Model struct {
	console *console.Console
	surface *Surface
	keys    *input.Keys
	notices *errors.TUIHandler
	styles  render.Styles
	help    help.Model

	prompt      textinput.Model
	promptTitle string
	promptOpen  bool

	search    textinput.Model
	searchKey key.Binding
	searching bool

	logs       viewport.Model
	logText    string
	showLogger bool
	panelRows  int

	width    int
	height   int
	interval time.Duration
	tickRate time.Duration
	quitting bool
}

// New creates the model. Register the default actions with Hooks before the
// program starts so persisted flags reach the model.
func New(opts Options) *Model {
	surface := opts.Surface
	if surface == nil {
		surface = NewSurface(render.DefaultStyles())
	}
	keys := opts.Keys
	if keys == nil {
		keys = input.NewKeys(input.DefaultKeyMap(), 0)
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	prompt := textinput.New()
	prompt.Prompt = "> "

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search actions"

	panelRows := defaults.PanelHeights[0]
	logs := viewport.New(0, panelRows)
	logs.KeyMap = viewport.KeyMap{
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "older logs")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "newer logs")),
	}

	m := &Model{
		console:    opts.Console,
		surface:    surface,
		keys:       keys,
		styles:     surface.Styles(),
		help:       help.New(),
		prompt:     prompt,
		search:     search,
		searchKey:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		logs:       logs,
		showLogger: !opts.Console.Settings().DisableLogger,
		panelRows:  panelRows,
		interval:   interval,
	}
	if h, ok := opts.Console.Notices().(*errors.TUIHandler); ok {
		m.notices = h
	}
	return m
}

// Hooks binds the default actions to the model.
func (m *Model) Hooks() defaults.Hooks {
	return defaults.Hooks{
		Quit:     func() { m.quitting = true },
		TickRate: func(d time.Duration) { m.tickRate = d },
		PanelHeight: func(rows int) {
			m.panelRows = rows
			m.resize()
		},
		ShowLogger: func(show bool) { m.showLogger = show },
	}
}

// Interval returns the current frame interval.
func (m *Model) Interval() time.Duration {
	if m.tickRate > 0 {
		return m.tickRate
	}
	return m.interval
}

// Init starts the frame loop.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.Interval())
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.handleTick(time.Time(msg))
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, m.updateFields(msg)
}

func (m *Model) handleTick(now time.Time) tea.Cmd {
	m.console.Tick(now, m.keys)
	cmd := m.syncPrompt()
	m.syncSearch()
	m.syncLogs()
	if m.quitting {
		return tea.Quit
	}
	return tea.Batch(cmd, tickCmd(m.Interval()))
}

// syncPrompt mirrors the console input request into the text field.
func (m *Model) syncPrompt() tea.Cmd {
	req, ok := m.console.Prompt()
	if !ok {
		if m.promptOpen {
			m.closePrompt()
		}
		return nil
	}
	if m.promptOpen && req.Title == m.promptTitle {
		return nil
	}
	m.searching = false
	m.search.Blur()
	m.promptOpen, m.promptTitle = true, req.Title
	m.prompt.Placeholder = req.Prompt
	m.prompt.SetValue(req.Prefill)
	m.prompt.CursorEnd()
	return m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.promptOpen, m.promptTitle = false, ""
	m.prompt.Blur()
	m.prompt.Reset()
}

func (m *Model) syncSearch() {
	if !m.searching && !m.console.Navigator().Searching() && m.search.Value() != "" {
		m.search.Reset()
	}
}

func (m *Model) syncLogs() {
	if !m.loggerShown() {
		return
	}
	text := m.console.LogBuffer().Text()
	if text == m.logText {
		return
	}
	m.logText = text
	follow := m.logs.AtBottom()
	m.logs.SetContent(render.LogText(text, m.width))
	if follow {
		m.logs.GotoBottom()
	}
}

func (m *Model) loggerShown() bool {
	return m.showLogger && !m.console.Settings().DisableLogger
}

func (m *Model) resize() {
	m.surface.SetWidth(m.width)
	m.help.Width = m.width
	m.logs.Width = m.width
	m.logs.Height = m.panelRows
	if m.width > 4 {
		m.prompt.Width = m.width - 4
		m.search.Width = m.width - 4
	}
}

// updateFields forwards other messages, such as cursor blinks, to the
// focused text field.
func (m *Model) updateFields(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.promptOpen:
		m.prompt, cmd = m.prompt.Update(msg)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	}
	return cmd
}
