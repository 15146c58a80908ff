package action

// Button runs a single effect.
type Button struct {
	Base
	Do func()
}

// NewButton creates a button in group.
func NewButton(group, name string, do func()) *Button {
	return &Button{Base: Base{Group: group, Name: name}, Do: do}
}

// Resolve runs the effect and closes the menu when configured to.
func (b *Button) Resolve(h Host) {
	if b.Do != nil {
		b.Do()
	}
	b.finish(h)
}
