package console

import (
	"fmt"

	"github.com/cristianoliveira/debugmenu/internal/action"
)

// MenuVisible reports whether the menu is shown.
func (c *Console) MenuVisible() bool { return c.visible }

// OpenMenu shows the menu.
func (c *Console) OpenMenu() {
	if c.visible {
		return
	}
	c.setVisible(true)
}

// CloseMenu hides the menu.
func (c *Console) CloseMenu() {
	if !c.visible {
		return
	}
	c.setVisible(false)
}

// ToggleMenu flips the menu visibility.
func (c *Console) ToggleMenu() {
	c.setVisible(!c.visible)
}

func (c *Console) setVisible(visible bool) {
	c.visible = visible
	if visible {
		c.nav.Refresh()
	} else {
		c.nav.ClearTooltip()
	}
	c.toggleMu.Lock()
	observers := make([]toggleObserver, len(c.toggleObservers))
	copy(observers, c.toggleObservers)
	c.toggleMu.Unlock()
	for _, o := range observers {
		o.fn(visible)
	}
}

// OnMenuToggle subscribes fn to visibility changes.
func (c *Console) OnMenuToggle(fn func(visible bool)) (cancel func()) {
	c.toggleMu.Lock()
	c.nextObserverID++
	id := c.nextObserverID
	c.toggleObservers = append(c.toggleObservers, toggleObserver{id: id, fn: fn})
	c.toggleMu.Unlock()

	removed := false
	return func() {
		c.toggleMu.Lock()
		defer c.toggleMu.Unlock()
		if removed {
			return
		}
		removed = true
		for i, o := range c.toggleObservers {
			if o.id == id {
				c.toggleObservers = append(c.toggleObservers[:i], c.toggleObservers[i+1:]...)
				return
			}
		}
	}
}

// DisplayAction flashes a notice naming a that just ran.
func (c *Console) DisplayAction(a action.Action) {
	if a == nil {
		return
	}
	info := a.Info()
	status := a.Status().Text
	if status == "" {
		c.notices.Info(info.Name)
		return
	}
	c.notices.Info(fmt.Sprintf("%s: %s", info.Name, status))
}
