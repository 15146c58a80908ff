package action

// Toggle flips a boolean. The state is read and written through Get and Set;
// a toggle built with NewSwitch owns its state and runs On or Off instead.
type Toggle struct {
	Base
	Get func() bool
	Set func(bool)

	isOn bool
}

// NewToggle proxies the state to an external getter and setter.
func NewToggle(group, name string, get func() bool, set func(bool)) *Toggle {
	return &Toggle{Base: Base{Group: group, Name: name}, Get: get, Set: set}
}

// NewSwitch creates a self-contained toggle starting at initial.
func NewSwitch(group, name string, initial bool, on, off func()) *Toggle {
	t := &Toggle{Base: Base{Group: group, Name: name}, isOn: initial}
	t.Get = func() bool { return t.isOn }
	t.Set = func(v bool) {
		if v && on != nil {
			on()
		}
		if !v && off != nil {
			off()
		}
	}
	return t
}

// IsOn returns the current state.
func (t *Toggle) IsOn() bool {
	if t.Get == nil {
		return t.isOn
	}
	return t.Get()
}

// Resolve flips the state.
func (t *Toggle) Resolve(h Host) {
	t.isOn = !t.IsOn()
	if t.Set != nil {
		t.Set(t.isOn)
	}
	t.finish(h)
}

// Status renders On or Off.
func (t *Toggle) Status() Status {
	if t.StatusText != nil {
		return t.Base.Status()
	}
	return boolStatus(t.IsOn())
}
