// Package input defines the polled input capability the console reads once
// per tick, and a terminal implementation fed by key events.
package input

import "time"

// Layer reports the navigation state of the current tick.
type Layer interface {
	// Update latches the events received since the previous tick.
	Update(now time.Time)

	Confirm() bool
	Back() bool
	MenuToggle() bool

	// Up is true on the tick the key went down.
	Up() bool
	// UpHeld is true while the key stays down.
	UpHeld() bool
	// UpReleased is true on the tick the key went up.
	UpReleased() bool

	Down() bool
	DownHeld() bool
	DownReleased() bool

	// KeyDown reports whether code was pressed this tick.
	KeyDown(code string) bool
}

// None is a Layer that never reports input.
type None struct{}

func (None) Update(time.Time)    {}
func (None) Confirm() bool       { return false }
func (None) Back() bool          { return false }
func (None) MenuToggle() bool    { return false }
func (None) Up() bool            { return false }
func (None) UpHeld() bool        { return false }
func (None) UpReleased() bool    { return false }
func (None) Down() bool          { return false }
func (None) DownHeld() bool      { return false }
func (None) DownReleased() bool  { return false }
func (None) KeyDown(string) bool { return false }
