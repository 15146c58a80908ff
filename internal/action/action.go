// Package action defines the debug actions exposed by the console: buttons,
// toggles, enum cycles, persisted flags and parameterized input commands.
package action

import (
	"strings"

	"github.com/cristianoliveira/debugmenu/internal/logging"
)

// Action is one invocable entry of the console.
type Action interface {
	// Info returns the common fields shared by every kind.
	Info() *Base
	// Resolve performs the action.
	Resolve(h Host)
	// Status returns the state shown next to the action name.
	Status() Status
	// Description returns the tooltip text.
	Description() string
	// CanDisplay reports whether a triggered action should flash a notice.
	CanDisplay() bool
}

// Host is the surface actions drive while resolving.
type Host interface {
	MenuVisible() bool
	OpenMenu()
	CloseMenu()
	RequestInput(req InputRequest)
	Logger() logging.Logger
}

// InputRequest asks the surface for one line of free text.
type InputRequest struct {
	Title   string
	Prompt  string
	Prefill string
	// Submit receives the confirmed text and reports a rejected line.
	Submit func(text string) error
}

// Tone selects how a status is rendered.
type Tone int

const (
	ToneNone Tone = iota
	ToneOn
	ToneOff
)

// Status is the display state of an action.
type Status struct {
	Text string
	Tone Tone
}

// Base holds the fields shared by every action kind.
type Base struct {
	Group                 string
	Name                  string
	ID                    string
	Notes                 string
	ShortcutKey           string
	Color                 string
	CloseMenuAfterTrigger bool
	// StatusText overrides the status shown for the action.
	StatusText func() string
}

// Info returns b.
func (b *Base) Info() *Base { return b }

// Status returns the custom status text, if any.
func (b *Base) Status() Status {
	if b.StatusText == nil {
		return Status{}
	}
	return Status{Text: b.StatusText()}
}

// Description lists the notes and the shortcut key.
func (b *Base) Description() string {
	var sb strings.Builder
	if strings.TrimSpace(b.Notes) != "" {
		sb.WriteString("Description:\n")
		sb.WriteString(b.Notes)
		sb.WriteString("\n")
	}
	if b.ShortcutKey != "" {
		sb.WriteString("Shortcut Key: ")
		sb.WriteString(b.ShortcutKey)
		sb.WriteString("\n")
	}
	return sb.String()
}

// CanDisplay reports whether the action closes the menu after it runs.
func (b *Base) CanDisplay() bool {
	return b.CloseMenuAfterTrigger
}

func (b *Base) finish(h Host) {
	if b.CloseMenuAfterTrigger {
		h.CloseMenu()
	}
}

func boolStatus(on bool) Status {
	if on {
		return Status{Text: "On", Tone: ToneOn}
	}
	return Status{Text: "Off", Tone: ToneOff}
}
