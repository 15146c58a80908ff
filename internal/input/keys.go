package input

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
)

// DefaultReleaseAfter is how long a direction key may go without a repeat
// event before it counts as released. Terminals send no key-up events.
const DefaultReleaseAfter = 120 * time.Millisecond

// KeyMap binds terminal keys to navigation intents.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Confirm    key.Binding
	Back       key.Binding
	MenuToggle key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Confirm:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "run")),
		Back:       key.NewBinding(key.WithKeys("esc", "backspace", "h", "left"), key.WithHelp("esc", "back")),
		MenuToggle: key.NewBinding(key.WithKeys("`", "f1"), key.WithHelp("`", "menu")),
	}
}

// ShortHelp lists the bindings for a help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Back, k.MenuToggle}
}

type direction struct {
	seen     bool
	holding  bool
	pressed  bool
	released bool
	lastSeen time.Time
}

func (d *direction) latch(now time.Time, releaseAfter time.Duration) {
	d.pressed, d.released = false, false
	switch {
	case d.seen && !d.holding:
		d.pressed = true
		d.holding = true
		d.lastSeen = now
	case d.seen:
		d.lastSeen = now
	case d.holding && now.Sub(d.lastSeen) > releaseAfter:
		d.holding = false
		d.released = true
	}
	d.seen = false
}

// Keys is a Layer fed by terminal key events. A direction key stays held
// while repeat events keep arriving within the release timeout.
type Keys struct {
	mu           sync.Mutex
	keymap       KeyMap
	releaseAfter time.Duration

	pending []string

	up, down                  direction
	confirm, back, menuToggle bool
	keysDown                  map[string]bool
}

// NewKeys creates a key-event layer. A non-positive releaseAfter uses
// DefaultReleaseAfter.
func NewKeys(keymap KeyMap, releaseAfter time.Duration) *Keys {
	if releaseAfter <= 0 {
		releaseAfter = DefaultReleaseAfter
	}
	return &Keys{keymap: keymap, releaseAfter: releaseAfter, keysDown: map[string]bool{}}
}

// KeyMap returns the bindings.
func (k *Keys) KeyMap() KeyMap {
	return k.keymap
}

// Feed records one key event. msg is typically a tea.KeyMsg.
func (k *Keys) Feed(msg fmt.Stringer) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pending = append(k.pending, msg.String())
}

// Update latches the events fed since the previous call.
func (k *Keys) Update(now time.Time) {
	k.mu.Lock()
	pending := k.pending
	k.pending = nil
	k.mu.Unlock()

	k.confirm, k.back, k.menuToggle = false, false, false
	k.keysDown = make(map[string]bool, len(pending))
	for _, s := range pending {
		k.keysDown[s] = true
		ks := keyString(s)
		switch {
		case key.Matches(ks, k.keymap.Up):
			k.up.seen = true
		case key.Matches(ks, k.keymap.Down):
			k.down.seen = true
		case key.Matches(ks, k.keymap.Confirm):
			k.confirm = true
		case key.Matches(ks, k.keymap.Back):
			k.back = true
		case key.Matches(ks, k.keymap.MenuToggle):
			k.menuToggle = true
		}
	}
	k.up.latch(now, k.releaseAfter)
	k.down.latch(now, k.releaseAfter)
}

func (k *Keys) Confirm() bool            { return k.confirm }
func (k *Keys) Back() bool               { return k.back }
func (k *Keys) MenuToggle() bool         { return k.menuToggle }
func (k *Keys) Up() bool                 { return k.up.pressed }
func (k *Keys) UpHeld() bool             { return k.up.holding }
func (k *Keys) UpReleased() bool         { return k.up.released }
func (k *Keys) Down() bool               { return k.down.pressed }
func (k *Keys) DownHeld() bool           { return k.down.holding }
func (k *Keys) DownReleased() bool       { return k.down.released }
func (k *Keys) KeyDown(code string) bool { return k.keysDown[code] }

type keyString string

func (s keyString) String() string { return string(s) }
