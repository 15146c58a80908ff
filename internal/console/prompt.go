package console

import (
	"time"

	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/errors"
)

// prompt is an open input request and its pending confirmation.
type prompt struct {
	req action.InputRequest

	armed     bool
	text      string
	due       time.Time
	armedTick uint64
}

// Prompt returns the open input request.
func (c *Console) Prompt() (action.InputRequest, bool) {
	if c.prompt == nil {
		return action.InputRequest{}, false
	}
	return c.prompt.req, true
}

// InputBlocked reports whether an input request owns the keyboard. While
// blocked, shortcuts and navigation are suspended.
func (c *Console) InputBlocked() bool {
	return c.prompt != nil
}

// RequestInput opens req, replacing any request already open.
func (c *Console) RequestInput(req action.InputRequest) {
	c.prompt = &prompt{req: req}
	c.log.Debug("input requested", "title", req.Title)
}

// SubmitInput confirms text for the open request. The callback runs once
// the debounce window has passed, on a later tick; submitting again
// restarts the window with the new text.
func (c *Console) SubmitInput(text string) {
	if c.prompt == nil {
		return
	}
	c.prompt.armed = true
	c.prompt.text = text
	c.prompt.due = c.now.Add(c.debounce)
	c.prompt.armedTick = c.ticks
}

// ConfirmPending reports whether a submitted line waits for its tick.
func (c *Console) ConfirmPending() bool {
	return c.prompt != nil && c.prompt.armed
}

// DismissInput cancels the open request and releases the input block.
func (c *Console) DismissInput() {
	c.prompt = nil
}

func (c *Console) runDueConfirm() {
	p := c.prompt
	if p == nil || !p.armed {
		return
	}
	if c.ticks <= p.armedTick || c.now.Before(p.due) {
		return
	}
	// Released before the callback so it may open a follow-up request.
	c.DismissInput()
	if p.req.Submit == nil {
		return
	}
	if err := p.req.Submit(p.text); err != nil {
		errors.Report(c.notices, err)
	}
}
