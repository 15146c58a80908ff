// Package render turns navigator state into styled terminal lines.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/errors"
	"github.com/cristianoliveira/debugmenu/internal/tree"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	colorRed    = "1"
	colorGreen  = "2"
	colorYellow = "3"
	colorBlue   = "4"
	colorCyan   = "6"
	colorMuted  = "241"

	cursorSymbol = "›"
	groupSymbol  = "▸"
	backSymbol   = "‹"
	tail         = "…"

	// RootTitle is shown in the header at the top level.
	RootTitle = "Debug Menu"
)

var namedColors = map[string]string{
	"red":    colorRed,
	"green":  colorGreen,
	"yellow": colorYellow,
	"blue":   colorBlue,
	"cyan":   colorCyan,
}

// Styles holds every style of the surface.
type Styles struct {
	Header  lipgloss.Style
	Back    lipgloss.Style
	Cursor  lipgloss.Style
	Focused lipgloss.Style
	Group   lipgloss.Style
	On      lipgloss.Style
	Off     lipgloss.Style
	Status  lipgloss.Style
	Muted   lipgloss.Style
	Tooltip lipgloss.Style
	Panel   lipgloss.Style
	Notices map[errors.MessageType]lipgloss.Style
}

// DefaultStyles returns the built-in theme.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorBlue)),
		Back:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)),
		Cursor:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorBlue)),
		Focused: lipgloss.NewStyle().Bold(true),
		Group:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorBlue)),
		On:      lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Off:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Status:  lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		Tooltip: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Panel:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false),
		Notices: map[errors.MessageType]lipgloss.Style{
			errors.MessageTypeError:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
			errors.MessageTypeWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
			errors.MessageTypeSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
			errors.MessageTypeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)),
		},
	}
}

// RowState is the input of Row.
type RowState struct {
	Node    *tree.Node
	Focused bool
	Width   int
}

// Row renders one list row: the cursor, the name and the status, which is
// right aligned when Width is set.
func Row(s Styles, state RowState) string {
	if state.Node == nil {
		return ""
	}
	cursor := "  "
	if state.Focused {
		cursor = s.Cursor.Render(cursorSymbol) + " "
	}

	if state.Node.IsGroup() {
		label := fmt.Sprintf("%s %s (%d)", groupSymbol, state.Node.Name, len(state.Node.Children))
		label = fit(label, state.Width-2)
		return cursor + s.Group.Render(label)
	}

	a := state.Node.Action
	if a == nil {
		return cursor + fit(state.Node.Name, state.Width-2)
	}
	info := a.Info()
	name := info.Name
	if info.ShortcutKey != "" {
		name += " [" + info.ShortcutKey + "]"
	}
	status := a.Status()

	avail := state.Width - 2
	if state.Width > 0 && status.Text != "" {
		avail -= lipgloss.Width(status.Text) + 1
	}
	name = fit(name, avail)

	nameStyle := s.Status
	if c, ok := namedColors[strings.ToLower(info.Color)]; ok {
		nameStyle = nameStyle.Foreground(lipgloss.Color(c))
	} else if info.Color != "" {
		nameStyle = nameStyle.Foreground(lipgloss.Color(info.Color))
	}
	if state.Focused {
		nameStyle = nameStyle.Inherit(s.Focused)
	}

	line := cursor + nameStyle.Render(name)
	if status.Text == "" {
		return line
	}
	gap := 1
	if state.Width > 0 {
		gap = max(1, state.Width-2-lipgloss.Width(name)-lipgloss.Width(status.Text))
	}
	return line + strings.Repeat(" ", gap) + statusStyle(s, status.Tone).Render(status.Text)
}

func statusStyle(s Styles, tone action.Tone) lipgloss.Style {
	switch tone {
	case action.ToneOn:
		return s.On
	case action.ToneOff:
		return s.Off
	default:
		return s.Status
	}
}

// Header renders the group label and the back affordance.
func Header(s Styles, label string, back bool, width int) string {
	if label == "" {
		label = RootTitle
	}
	if !back {
		return s.Header.Render(fit(label, width))
	}
	return s.Back.Render(backSymbol+" ") + s.Header.Render(fit(label, width-2))
}

// Tooltip renders text in a box at most rows lines tall. Empty text
// renders nothing.
func Tooltip(s Styles, text string, width, rows int) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	style := s.Tooltip
	inner := width - style.GetHorizontalFrameSize()
	if width > 0 && inner > 0 {
		text = wordwrap.String(text, inner)
		style = style.Width(width - style.GetHorizontalBorderSize())
	}
	lines := strings.Split(text, "\n")
	if rows > 0 && len(lines) > rows {
		lines = lines[:rows]
		lines[rows-1] = fit(lines[rows-1]+" "+tail, inner)
	}
	for i, l := range lines {
		lines[i] = fit(l, inner)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// Notice renders a status line message.
func Notice(s Styles, msg errors.Message, width int) string {
	style, ok := s.Notices[msg.Type]
	if !ok {
		style = s.Status
	}
	return style.Render(fit(msg.Text, width))
}

// Prompt renders the title of an input request above its text field.
func Prompt(s Styles, title, field string, width int) string {
	return s.Header.Render(fit(title, width)) + "\n" + field
}

// LogPanel frames the logger panel body.
func LogPanel(s Styles, body string, width int) string {
	style := s.Panel
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(body)
}

// LogText truncates every log line to width so the panel never wraps.
func LogText(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = fit(l, width)
	}
	return strings.Join(lines, "\n")
}

// fit truncates value to width cells. A non-positive width keeps it.
func fit(value string, width int) string {
	if width <= 0 || lipgloss.Width(value) <= width {
		return value
	}
	return truncate.StringWithTail(value, uint(width), tail)
}
