package state

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return tea.Quit
	}
	if m.promptOpen {
		return m.handlePromptKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.loggerShown() && key.Matches(msg, m.logs.KeyMap.PageUp, m.logs.KeyMap.PageDown) {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		if m.logs.AtBottom() {
			m.console.LogBuffer().Resume()
		} else {
			m.console.LogBuffer().Hold()
		}
		return cmd
	}

	if m.console.MenuVisible() {
		nav := m.console.Navigator()
		switch {
		case key.Matches(msg, m.searchKey):
			m.searching = true
			return m.search.Focus()
		case nav.Searching() && key.Matches(msg, m.keys.KeyMap().Back):
			m.search.Reset()
			m.console.Search("")
			return nil
		}
	}

	m.keys.Feed(msg)
	return nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEnter:
		m.console.SubmitInput(m.prompt.Value())
		return nil
	case msg.Type == tea.KeyEsc:
		m.console.DismissInput()
		m.closePrompt()
		return nil
	case key.Matches(msg, m.keys.KeyMap().MenuToggle):
		// The console cancels the input on the next tick.
		m.keys.Feed(msg)
		return nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.Reset()
		m.console.Search("")
		return nil
	}
	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if query := m.search.Value(); query != prev {
		m.console.Search(query)
	}
	return cmd
}

// handleMouse maps pointer events on list rows to the navigator. Presses
// are stamped with the current tick so long presses resolve on tick time.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.console.MenuVisible() || m.console.InputBlocked() {
		return
	}
	nav := m.console.Navigator()
	now := m.console.Now()
	row, onRow := m.rowAt(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && onRow {
			nav.PointerDown(row, now)
		}
	case tea.MouseActionRelease:
		if onRow {
			nav.PointerUp(now)
		} else {
			nav.PointerExit()
		}
	case tea.MouseActionMotion:
		if !onRow {
			nav.PointerExit()
		}
	}
}

// rowAt returns the list row drawn on screen line y.
func (m *Model) rowAt(y int) (int, bool) {
	i := y - m.listTop()
	rows := m.console.Navigator().Window().VisibleRows()
	if i < 0 || i >= len(rows) {
		return 0, false
	}
	return rows[i], true
}

// listTop is the screen line of the first row; it must match renderMenu.
func (m *Model) listTop() int {
	if m.searchShown() {
		return 2
	}
	return 1
}

func (m *Model) searchShown() bool {
	return m.searching || m.console.Navigator().Searching()
}
