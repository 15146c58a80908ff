// Package listwindow renders an arbitrarily long list through a fixed pool of
// reusable display slots. The pool is a circular buffer sized to the
// viewport; scrolling rebinds only the slots that rolled out of view.
package listwindow

import "math"

// DefaultOverscan is the number of extra rows kept bound above and below the
// viewport.
const DefaultOverscan = 1

// Slot is one reusable display binding.
type Slot struct {
	Row    int
	Active bool
}

// BindFunc is called whenever slot is rebound. An inactive slot holds no row.
type BindFunc func(slot int, s Slot)

// Options configures a Window. Heights share one unit, e.g. terminal lines.
type Options struct {
	RowHeight      float64
	ViewportHeight float64
	Overscan       int
	// Reverse lays rows out bottom-up; the scroll offset is then measured
	// from the bottom edge.
	Reverse bool
}

// Window maps a bounded slot pool onto rows [0, RowCount).
type Window struct {
	opts Options
	bind BindFunc

	slots       []Slot
	bufferStart int
	sourceStart int
	rowCount    int
	scrollY     float64
}

// New creates a window with an empty list. bind may be nil.
func New(opts Options, bind BindFunc) *Window {
	if opts.RowHeight <= 0 {
		opts.RowHeight = 1
	}
	if opts.ViewportHeight < opts.RowHeight {
		opts.ViewportHeight = opts.RowHeight
	}
	if opts.Overscan < 0 {
		opts.Overscan = 0
	}
	w := &Window{opts: opts, bind: bind}
	w.Reorganize(true)
	return w
}

// Capacity returns the pool size: ceil(viewport/row) + 2*overscan.
func (w *Window) Capacity() int {
	return len(w.slots)
}

func (w *Window) wantCapacity() int {
	return int(math.Ceil(w.opts.ViewportHeight/w.opts.RowHeight)) + 2*w.opts.Overscan
}

// resize matches the pool to the viewport. Slots dropped by a shrink are
// unbound. It reports whether the pool changed size.
func (w *Window) resize() bool {
	want := w.wantCapacity()
	if want == len(w.slots) {
		return false
	}
	if w.bind != nil {
		for i := want; i < len(w.slots); i++ {
			w.bind(i, Slot{Row: -1})
		}
	}
	w.slots = make([]Slot, want)
	return true
}

// RowCount returns the number of rows in the list.
func (w *Window) RowCount() int {
	return w.rowCount
}

// SetRowCount resizes the list. An unchanged count is a no-op; call Refresh
// to rebind the same rows.
func (w *Window) SetRowCount(n int) {
	if n < 0 {
		n = 0
	}
	if n == w.rowCount {
		return
	}
	w.rowCount = n
	w.Reorganize(true)
}

// Clear empties the list.
func (w *Window) Clear() {
	w.SetRowCount(0)
}

// Refresh rebinds every slot and scrolls back to the start.
func (w *Window) Refresh() {
	w.Reorganize(true)
}

// RefreshRows rebinds the slots currently holding rows [start, start+count).
func (w *Window) RefreshRows(start, count int) {
	for row := start; row < start+count; row++ {
		if slot, ok := w.RowSlot(row); ok {
			w.update(slot, row)
		}
	}
}

// ContentHeight is rowCount * rowHeight.
func (w *Window) ContentHeight() float64 {
	return float64(w.rowCount) * w.opts.RowHeight
}

// ViewportHeight returns the visible height.
func (w *Window) ViewportHeight() float64 {
	return w.opts.ViewportHeight
}

// RowHeight returns the height of one row.
func (w *Window) RowHeight() float64 {
	return w.opts.RowHeight
}

// SetViewportHeight resizes the viewport and the pool with it.
func (w *Window) SetViewportHeight(h float64) {
	if h < w.opts.RowHeight {
		h = w.opts.RowHeight
	}
	if h == w.opts.ViewportHeight {
		return
	}
	w.opts.ViewportHeight = h
	w.scrollY = w.clampScroll(w.scrollY)
	w.Reorganize(false)
}

func (w *Window) maxScroll() float64 {
	return math.Max(0, w.ContentHeight()-w.opts.ViewportHeight)
}

func (w *Window) clampScroll(y float64) float64 {
	return math.Min(math.Max(0, y), w.maxScroll())
}

// ScrollY returns the scroll offset from the leading edge.
func (w *Window) ScrollY() float64 {
	return w.scrollY
}

// SetScrollY scrolls to offset y and rebinds the slots that rolled out.
func (w *Window) SetScrollY(y float64) {
	y = w.clampScroll(y)
	if y == w.scrollY {
		return
	}
	w.scrollY = y
	w.Reorganize(false)
}

// ScrollPosition returns the normalized offset, 1 at the top and 0 at the bottom.
func (w *Window) ScrollPosition() float64 {
	max := w.maxScroll()
	if max == 0 {
		return 1
	}
	return 1 - w.scrollY/max
}

// SetScrollPosition scrolls to a normalized offset, 1 being the top.
func (w *Window) SetScrollPosition(pos float64) {
	pos = math.Min(math.Max(0, pos), 1)
	w.SetScrollY((1 - pos) * w.maxScroll())
}

// ScrollToRow brings row into view; see RowScrollPosition for dir.
func (w *Window) ScrollToRow(row, dir int) {
	w.SetScrollPosition(w.RowScrollPosition(row, dir))
}

// Reorganize rebinds slots for the current scroll offset. With clearAll, or
// when the window moved by a full pool or more, every slot is rebound;
// otherwise only the slots that rolled off are.
func (w *Window) Reorganize(clearAll bool) {
	if clearAll {
		w.scrollY = 0
	}
	resized := w.resize()
	n := len(w.slots)

	firstVisible := int(w.scrollY / w.opts.RowHeight)
	newStart := firstVisible - w.opts.Overscan
	diff := newStart - w.sourceStart

	switch {
	case clearAll || resized || abs(diff) >= n:
		w.sourceStart = newStart
		w.bufferStart = 0
		for i := range w.slots {
			w.update(i, newStart+i)
		}
	case diff < 0:
		for i := 1; i <= -diff; i++ {
			w.update(w.wrap(w.bufferStart-i), w.sourceStart-i)
		}
		w.sourceStart = newStart
		w.bufferStart = w.wrap(w.bufferStart + diff)
	case diff > 0:
		lastSlot := w.bufferStart + n - 1
		lastRow := w.sourceStart + n - 1
		for i := 1; i <= diff; i++ {
			w.update(w.wrap(lastSlot+i), lastRow+i)
		}
		w.sourceStart = newStart
		w.bufferStart = w.wrap(w.bufferStart + diff)
	}
}

func (w *Window) update(slot, row int) {
	s := Slot{Row: row, Active: row >= 0 && row < w.rowCount}
	if !s.Active {
		s.Row = -1
	}
	w.slots[slot] = s
	if w.bind != nil {
		w.bind(slot, s)
	}
}

func (w *Window) wrap(i int) int {
	n := len(w.slots)
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// SlotRow returns the logical row slot i represents:
// sourceStart + ((i - bufferStart) mod capacity).
func (w *Window) SlotRow(i int) int {
	return w.sourceStart + w.wrap(i-w.bufferStart)
}

// RowSlot returns the slot bound to row, if row is inside the window.
func (w *Window) RowSlot(row int) (int, bool) {
	if row < w.sourceStart || row >= w.sourceStart+len(w.slots) || row < 0 || row >= w.rowCount {
		return 0, false
	}
	return w.wrap(w.bufferStart + row - w.sourceStart), true
}

// Slots returns a copy of the slot pool in buffer order.
func (w *Window) Slots() []Slot {
	return append([]Slot(nil), w.slots...)
}

// BufferStart returns the slot holding the first row of the window.
func (w *Window) BufferStart() int {
	return w.bufferStart
}

// SourceStart returns the first row of the window. It may be negative.
func (w *Window) SourceStart() int {
	return w.sourceStart
}

// VisibleRows returns the rows overlapping the viewport, in display order.
func (w *Window) VisibleRows() []int {
	if w.rowCount == 0 {
		return nil
	}
	first := int(w.scrollY / w.opts.RowHeight)
	last := int(math.Ceil((w.scrollY+w.opts.ViewportHeight)/w.opts.RowHeight)) - 1
	if last >= w.rowCount {
		last = w.rowCount - 1
	}
	rows := make([]int, 0, last-first+1)
	for r := first; r <= last; r++ {
		rows = append(rows, r)
	}
	if w.opts.Reverse {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	return rows
}

// RowScrollPosition returns the normalized offset (1 = top) that brings row
// into view, centered where possible and clamped to the content. A non-zero
// dir aligns the far edge of the row instead, so continuous movement does
// not overshoot.
func (w *Window) RowScrollPosition(row, dir int) float64 {
	rh := w.opts.RowHeight
	vp := w.opts.ViewportHeight
	half := vp * 0.5
	content := w.ContentHeight()

	centre := (float64(row) + 0.5) * rh
	if dir != 0 {
		centre = float64(row+1)*rh - half
	}

	top := math.Max(0, centre-half)
	if bottom := top + vp; bottom > content {
		top = math.Max(0, top-(bottom-content))
	}
	return inverseLerp(content-vp, 0, top)
}

// inverseLerp returns where v falls between a and b, clamped to [0, 1].
func inverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return math.Min(math.Max((v-a)/(b-a), 0), 1)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
