package state

import (
	"github.com/cristianoliveira/debugmenu/internal/tree"
	"github.com/cristianoliveira/debugmenu/internal/tui/render"
)

// Surface keeps what the navigator bound for display. Rows are keyed by
// window slot and re-rendered only when their binding, status or the
// width changes.
type Surface struct {
	styles render.Styles
	width  int
	slots  map[int]*slotView

	label   string
	back    bool
	tooltip string
}

type slotView struct {
	node     *tree.Node
	focused  bool
	rendered bool
	status   string
	width    int
	line     string
}

// NewSurface creates an empty surface.
func NewSurface(styles render.Styles) *Surface {
	return &Surface{styles: styles, slots: map[int]*slotView{}}
}

// BindRow shows node in slot; a nil node hides the slot.
func (s *Surface) BindRow(slot int, node *tree.Node, focused bool) {
	if node == nil {
		delete(s.slots, slot)
		return
	}
	s.slots[slot] = &slotView{node: node, focused: focused}
}

func (s *Surface) ShowGroupLabel(text string)  { s.label = text }
func (s *Surface) ShowBackAffordance(show bool) { s.back = show }
func (s *Surface) ShowTooltip(text string)      { s.tooltip = text }

// Label returns the group label.
func (s *Surface) Label() string { return s.label }

// Back reports whether the back affordance is shown.
func (s *Surface) Back() bool { return s.back }

// Tooltip returns the tooltip text.
func (s *Surface) Tooltip() string { return s.tooltip }

// Styles returns the theme rows are rendered with.
func (s *Surface) Styles() render.Styles { return s.styles }

// SetWidth sets the row width in cells.
func (s *Surface) SetWidth(width int) { s.width = width }

// Bound returns the number of slots showing a node.
func (s *Surface) Bound() int { return len(s.slots) }

// Line returns the rendered row of slot.
func (s *Surface) Line(slot int) (string, bool) {
	v, ok := s.slots[slot]
	if !ok {
		return "", false
	}
	status := ""
	if v.node.Action != nil {
		status = v.node.Action.Status().Text
	}
	if !v.rendered || v.status != status || v.width != s.width {
		v.line = render.Row(s.styles, render.RowState{Node: v.node, Focused: v.focused, Width: s.width})
		v.rendered, v.status, v.width = true, status, s.width
	}
	return v.line, true
}
