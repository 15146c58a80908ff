package action

// Enum advances an external integer through Labels, wrapping to zero.
type Enum struct {
	Base
	Labels []string
	Get    func() int
	Set    func(int)
}

// NewEnum creates an enum cycle over labels.
func NewEnum(group, name string, labels []string, get func() int, set func(int)) *Enum {
	return &Enum{Base: Base{Group: group, Name: name}, Labels: labels, Get: get, Set: set}
}

// Resolve moves to the next label.
func (e *Enum) Resolve(h Host) {
	if len(e.Labels) == 0 || e.Get == nil || e.Set == nil {
		return
	}
	next := e.Get() + 1
	if next >= len(e.Labels) || next < 0 {
		next = 0
	}
	e.Set(next)
}

// Status shows the current label.
func (e *Enum) Status() Status {
	if e.StatusText != nil {
		return e.Base.Status()
	}
	if e.Get == nil {
		return Status{}
	}
	v := e.Get()
	if v < 0 || v >= len(e.Labels) {
		return Status{}
	}
	return Status{Text: e.Labels[v], Tone: ToneOn}
}
