// Package navigator is the keyboard selection state machine over the list
// currently shown: index movement with wrap and fast repeat, drill-down
// into groups with a single level of back navigation, long-press detection
// and tooltip coupling.
package navigator

import (
	"time"

	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/input"
	"github.com/cristianoliveira/debugmenu/internal/listwindow"
	"github.com/cristianoliveira/debugmenu/internal/tree"
)

// Defaults for Options.
const (
	DefaultFastRepeatThreshold = 500 * time.Millisecond
	DefaultFastRepeatInterval  = 50 * time.Millisecond
	DefaultLongPress           = 500 * time.Millisecond
)

// Host is what the navigator drives besides the list.
type Host interface {
	action.Host
	// InputBlocked reports whether a text input owns the keyboard.
	InputBlocked() bool
	// DisplayAction flashes a notice for an action that just ran.
	DisplayAction(a action.Action)
}

// Surface renders the navigator state.
type Surface interface {
	// BindRow shows node in slot; a nil node hides the slot.
	BindRow(slot int, node *tree.Node, focused bool)
	ShowGroupLabel(text string)
	ShowBackAffordance(show bool)
	// ShowTooltip shows text; an empty text hides the tooltip.
	ShowTooltip(text string)
}

// Searcher finds leaves for a query.
type Searcher interface {
	Search(query string) []*tree.Node
}

// Options configures a Navigator.
type Options struct {
	Window              listwindow.Options
	FastRepeatThreshold time.Duration
	FastRepeatInterval  time.Duration
	LongPress           time.Duration
	TooltipOnNavigation bool
}

func (o *Options) applyDefaults() {
	if o.FastRepeatThreshold <= 0 {
		o.FastRepeatThreshold = DefaultFastRepeatThreshold
	}
	if o.FastRepeatInterval <= 0 {
		o.FastRepeatInterval = DefaultFastRepeatInterval
	}
	if o.LongPress <= 0 {
		o.LongPress = DefaultLongPress
	}
}

type repeat struct {
	first, last time.Time
}

func (r *repeat) reset() { *r = repeat{} }

// press tracks a pointer held on one row.
type press struct {
	node         *tree.Node
	since        time.Time
	down         bool
	previousDown bool
}

// Navigator drives the selection over the children of the current node.
type Navigator struct {
	opts     Options
	host     Host
	surface  Surface
	searcher Searcher
	window   *listwindow.Window

	root    *tree.Node
	item    *tree.Node
	back    *tree.Node
	// backIndex is the selection of the back target when it was left.
	backIndex int
	index     int
	current *tree.Node

	up, down repeat
	press    press

	header      string
	backVisible bool
	tooltip     string

	searching bool
	query     string
}

// New creates a navigator showing root.
func New(root *tree.Node, host Host, surface Surface, searcher Searcher, opts Options) *Navigator {
	opts.applyDefaults()
	n := &Navigator{
		opts:      opts,
		host:      host,
		surface:   surface,
		searcher:  searcher,
		root:      root,
		index:     -1,
		backIndex: -1,
	}
	n.window = listwindow.New(opts.Window, n.bindRow)
	n.SetItem(root)
	return n
}

// Window returns the recycling window.
func (n *Navigator) Window() *listwindow.Window {
	return n.window
}

// Item returns the node whose children are shown.
func (n *Navigator) Item() *tree.Node {
	return n.item
}

// Index returns the selected row, or -1.
func (n *Navigator) Index() int {
	return n.index
}

// Selected returns the selected node.
func (n *Navigator) Selected() *tree.Node {
	if n.item == nil || n.index < 0 || n.index >= len(n.item.Children) {
		return nil
	}
	return n.item.Children[n.index]
}

// Header returns the group label, empty at the root.
func (n *Navigator) Header() string {
	return n.header
}

// BackVisible reports whether a sub-list is open.
func (n *Navigator) BackVisible() bool {
	return n.backVisible
}

// Tooltip returns the tooltip text.
func (n *Navigator) Tooltip() string {
	return n.tooltip
}

// SetTooltipOnNavigation toggles tooltips on selection change.
func (n *Navigator) SetTooltipOnNavigation(on bool) {
	n.opts.TooltipOnNavigation = on
}

// Searching reports whether search results are shown.
func (n *Navigator) Searching() bool {
	return n.searching
}

// Query returns the active search query.
func (n *Navigator) Query() string {
	return n.query
}

func (n *Navigator) rowCount() int {
	if n.item == nil {
		return 0
	}
	return len(n.item.Children)
}

func (n *Navigator) bindRow(slot int, s listwindow.Slot) {
	if n.surface == nil {
		return
	}
	if !s.Active || s.Row >= n.rowCount() {
		n.surface.BindRow(slot, nil, false)
		return
	}
	n.surface.BindRow(slot, n.item.Children[s.Row], s.Row == n.index)
}

// SetItem shows the children of item.
func (n *Navigator) SetItem(item *tree.Node) {
	n.current = nil
	n.item = item
	if n.window.RowCount() == n.rowCount() {
		n.window.Refresh()
	} else {
		n.window.SetRowCount(n.rowCount())
	}
}

// Refresh rebinds the current list, e.g. after status changes.
func (n *Navigator) Refresh() {
	if n.item == nil {
		return
	}
	n.window.Reorganize(false)
	n.window.RefreshRows(0, n.rowCount())
}

// Navigate drills into sub, remembering the current list as the back target.
func (n *Navigator) Navigate(sub *tree.Node) {
	n.back = n.item
	n.backIndex = n.index
	n.SetItem(sub)
	n.Refresh()
	n.backVisible = true
	n.header = sub.Name
	if n.surface != nil {
		n.surface.ShowBackAffordance(true)
		n.surface.ShowGroupLabel(sub.Name)
	}
}

// Back returns to the back target. Without one the menu closes. Back is
// ignored while a text input is open.
func (n *Navigator) Back() {
	if n.host.InputBlocked() {
		return
	}
	n.setTooltip("")
	if n.popBack() {
		return
	}
	n.host.CloseMenu()
}

func (n *Navigator) popBack() bool {
	n.current = nil
	if n.back == nil {
		return false
	}
	n.index = n.backIndex
	n.SetItem(n.back)
	if n.index >= 0 && n.index < n.rowCount() {
		n.window.ScrollToRow(n.index, 0)
		n.window.RefreshRows(n.index, 1)
	}
	n.back = nil
	n.backIndex = -1
	n.backVisible = false
	n.header = ""
	if n.surface != nil {
		n.surface.ShowBackAffordance(false)
		n.surface.ShowGroupLabel("")
	}
	return true
}

// Search shows the leaves matching query. An empty query restores the list
// shown before searching.
func (n *Navigator) Search(query string) {
	if query != "" {
		for n.backVisible {
			if !n.popBack() {
				break
			}
		}
		n.query = query
		var results []*tree.Node
		if n.searcher != nil {
			results = n.searcher.Search(query)
		}
		n.SetItem(&tree.Node{Name: "Search", Children: results})
		n.searching = true
		return
	}
	n.query = ""
	if n.searching {
		n.SetItem(n.root)
		n.searching = false
	}
}

// TreeChanged reloads the list after actions were added or removed.
func (n *Navigator) TreeChanged() {
	if n.searching {
		n.Search(n.query)
		return
	}
	if n.backVisible {
		n.popBack()
	}
	n.SetItem(n.root)
}

// MoveDown selects the next row, wrapping to the first.
func (n *Navigator) MoveDown() {
	n.move(1, -1)
}

// MoveUp selects the previous row, wrapping to the last.
func (n *Navigator) MoveUp() {
	n.move(-1, 1)
}

func (n *Navigator) move(delta, dir int) {
	count := n.rowCount()
	if count == 0 {
		return
	}
	prev := n.index
	n.index += delta
	if n.index < 0 {
		n.index = count - 1
	} else if n.index > count-1 {
		n.index = 0
	}
	n.window.ScrollToRow(n.index, dir)
	n.window.RefreshRows(prev, 1)
	n.window.RefreshRows(n.index, 1)
}

// Update runs one tick of keyboard navigation. now is the tick time.
func (n *Navigator) Update(now time.Time, in input.Layer) {
	n.updatePress(now)

	blocked := n.host.InputBlocked()
	if !blocked && in.Back() {
		n.Back()
	}

	if n.item == nil || !n.item.IsGroup() || len(n.item.Children) == 0 {
		n.setTooltip("")
		return
	}

	if !blocked {
		n.handleKeys(now, in)
	}

	if n.index < 0 {
		return
	}
	if n.index > len(n.item.Children)-1 {
		n.index = len(n.item.Children) - 1
	}
	sub := n.item.Children[n.index]
	if sub != n.current {
		n.setTooltip("")
		if n.opts.TooltipOnNavigation {
			n.showTooltipFor(sub)
		}
		n.current = sub
	}
	if !blocked && in.Confirm() {
		n.Click(sub)
	}
}

func (n *Navigator) handleKeys(now time.Time, in input.Layer) {
	up, upHeld, upReleased := in.Up, in.UpHeld, in.UpReleased
	down, downHeld, downReleased := in.Down, in.DownHeld, in.DownReleased
	if n.opts.Window.Reverse {
		up, down = down, up
		upHeld, downHeld = downHeld, upHeld
		upReleased, downReleased = downReleased, upReleased
	}

	if up() {
		n.up = repeat{first: now}
		n.MoveUp()
	}
	if n.fastRepeat(&n.up, now, upHeld()) {
		n.MoveUp()
	}
	if down() {
		n.down = repeat{first: now}
		n.MoveDown()
	}
	if n.fastRepeat(&n.down, now, downHeld()) {
		n.MoveDown()
	}

	if upReleased() {
		n.up.reset()
	}
	if downReleased() {
		n.down.reset()
	}
}

// fastRepeat reports whether a held key should fire again: held past the
// threshold and at least one interval since the last repeat.
func (n *Navigator) fastRepeat(r *repeat, now time.Time, held bool) bool {
	if !held || r.first.IsZero() {
		return false
	}
	if now.Sub(r.first) <= n.opts.FastRepeatThreshold {
		return false
	}
	if !r.last.IsZero() && now.Sub(r.last) <= n.opts.FastRepeatInterval {
		return false
	}
	r.last = now
	return true
}

// Click activates node: groups open, leaves resolve. A leaf that was just
// long-pressed does not resolve.
func (n *Navigator) Click(node *tree.Node) {
	if node == nil {
		return
	}
	if node.IsGroup() {
		n.Navigate(node)
		return
	}
	if n.press.node == node && n.press.previousDown {
		return
	}
	node.Action.Resolve(n.host)
	if node.Action.CanDisplay() {
		n.host.DisplayAction(node.Action)
	}
	if n.item != nil {
		for row, child := range n.item.Children {
			if child == node {
				n.window.RefreshRows(row, 1)
				break
			}
		}
	}
}

// PointerDown starts a press on row.
func (n *Navigator) PointerDown(row int, now time.Time) {
	if row < 0 || row >= n.rowCount() {
		return
	}
	n.press = press{node: n.item.Children[row], since: now, down: true}
}

// PointerUp ends the press and clicks the row unless it was a long press.
func (n *Navigator) PointerUp(now time.Time) {
	n.updatePress(now)
	node := n.press.node
	n.press.down = false
	if node != nil {
		n.Click(node)
	}
}

// PointerExit cancels the press without clicking.
func (n *Navigator) PointerExit() {
	n.press.down = false
	n.press.node = nil
}

// updatePress turns a press held past the long-press duration into a
// tooltip request.
func (n *Navigator) updatePress(now time.Time) {
	if !n.press.down || now.Sub(n.press.since) <= n.opts.LongPress {
		return
	}
	n.press.down = false
	n.press.previousDown = true
	n.showTooltipFor(n.press.node)
}

func (n *Navigator) showTooltipFor(node *tree.Node) {
	if node == nil || node.Action == nil {
		n.setTooltip("")
		return
	}
	n.setTooltip(node.Action.Description())
}

func (n *Navigator) setTooltip(text string) {
	if text == n.tooltip {
		return
	}
	n.tooltip = text
	if n.surface != nil {
		n.surface.ShowTooltip(text)
	}
}

// ClearTooltip hides the tooltip.
func (n *Navigator) ClearTooltip() {
	n.setTooltip("")
}
