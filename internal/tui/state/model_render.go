package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/cristianoliveira/debugmenu/internal/tui/render"
)

const searchTitle = "Search"

// View renders the menu, the status line and the logger panel.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.console.MenuVisible() {
		m.renderMenu(&b)
	} else {
		toggle := m.keys.KeyMap().MenuToggle.Help().Key
		b.WriteString(m.styles.Muted.Render("press " + toggle + " to open the debug menu"))
	}

	if m.notices != nil {
		if msg, ok := m.notices.Current(m.console.Now(), NoticeTTL); ok {
			b.WriteString("\n")
			b.WriteString(render.Notice(m.styles, msg, m.width))
		}
	}

	if m.loggerShown() {
		b.WriteString("\n")
		b.WriteString(render.LogPanel(m.styles, m.logs.View(), m.width))
	}
	return b.String()
}

func (m *Model) renderMenu(b *strings.Builder) {
	nav := m.console.Navigator()

	label := m.surface.Label()
	if nav.Searching() {
		label = searchTitle
	}
	b.WriteString(render.Header(m.styles, label, m.surface.Back(), m.width))
	if m.searchShown() {
		b.WriteString("\n")
		b.WriteString(m.search.View())
	}

	window := nav.Window()
	rows := window.VisibleRows()
	for _, row := range rows {
		b.WriteString("\n")
		if slot, ok := window.RowSlot(row); ok {
			line, _ := m.surface.Line(slot)
			b.WriteString(line)
		}
	}
	drawn := len(rows)
	if drawn == 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("  no actions"))
		drawn = 1
	}
	for ; drawn < int(window.ViewportHeight()); drawn++ {
		b.WriteString("\n")
	}

	if tip := render.Tooltip(m.styles, m.surface.Tooltip(), m.width, m.panelRows); tip != "" {
		b.WriteString("\n")
		b.WriteString(tip)
	}
	if m.promptOpen {
		b.WriteString("\n")
		b.WriteString(render.Prompt(m.styles, m.promptTitle, m.prompt.View(), m.width))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.helpKeys()))
}

func (m *Model) helpKeys() []key.Binding {
	bindings := append(m.keys.KeyMap().ShortHelp(), m.searchKey)
	if m.loggerShown() {
		bindings = append(bindings, m.logs.KeyMap.PageUp)
	}
	return bindings
}
