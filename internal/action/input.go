package action

import (
	"errors"
	"strings"

	"github.com/cristianoliveira/debugmenu/internal/param"
)

// ErrInvalidInput is returned when parsed values fail to convert.
var ErrInvalidInput = errors.New("input not valid")

// Input asks for free text, parses it against Query and passes the typed
// response to Submit.
type Input struct {
	Base
	Query  *param.Query
	Submit func(*param.Response)

	last *param.Response
}

// NewInput creates an input action. A nil query accepts no parameters.
func NewInput(group, name string, query *param.Query, submit func(*param.Response)) *Input {
	if query == nil {
		query = param.MustQuery()
	}
	return &Input{Base: Base{Group: group, Name: name}, Query: query, Submit: submit}
}

// Resolve opens the menu when hidden and requests the input line.
func (in *Input) Resolve(h Host) {
	if !h.MenuVisible() {
		h.OpenMenu()
	}
	h.RequestInput(InputRequest{
		Title:   in.Name,
		Prompt:  in.Query.Display(),
		Prefill: in.Query.Prefill(),
		Submit: func(text string) error {
			return in.Handle(h, text)
		},
	})
}

// Handle parses text and runs Submit when every value is valid. Count
// mismatches reject the input without side effects.
func (in *Input) Handle(h Host, text string) error {
	log := h.Logger()
	resp, err := in.Query.Parse(text)
	if err != nil {
		log.Warn("input rejected", "action", in.Name, "error", err)
		return err
	}
	for _, w := range resp.Warnings() {
		log.Warn(w.String(), "action", in.Name)
	}

	in.last = resp
	if !resp.AllValid() {
		log.Warn("input not valid", "action", in.Name, "error", resp.Err())
		in.finish(h)
		return errors.Join(ErrInvalidInput, resp.Err())
	}
	if in.Submit != nil {
		in.Submit(resp)
	}
	in.finish(h)
	return nil
}

// LastResponse returns the most recently accepted response.
func (in *Input) LastResponse() *param.Response {
	return in.last
}

// CanDisplay is false; input actions open the menu themselves.
func (in *Input) CanDisplay() bool {
	return false
}

// Description appends the parameter list.
func (in *Input) Description() string {
	desc := in.Base.Description()
	params := in.Query.Describe()
	if strings.TrimSpace(params) == "" {
		return desc
	}
	return desc + "Input Params:\n" + params + "\n"
}
