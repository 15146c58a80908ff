// Package errors routes user-visible outcomes to the active surface: the
// terminal for CLI commands, the status line for the console UI.
package errors

import (
	stderrors "errors"
	"sync"

	"github.com/cristianoliveira/debugmenu/internal/action"
	"github.com/cristianoliveira/debugmenu/internal/param"
	"github.com/cristianoliveira/debugmenu/internal/registry"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput prints coloured messages.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler handles errors by printing through a ColorOutput.
type CLIHandler struct {
	mu     sync.Mutex
	colors ColorOutput
}

// NewCLIHandler creates a CLIHandler printing through colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Success(msg)
}

// IsRecoverable reports whether err is a rejected user input or a lookup
// miss: the session carries on and the action simply did not run.
func IsRecoverable(err error) bool {
	return stderrors.Is(err, param.ErrTooFewArguments) ||
		stderrors.Is(err, param.ErrTooManyArguments) ||
		stderrors.Is(err, action.ErrInvalidInput) ||
		stderrors.Is(err, registry.ErrUnknownFlag) ||
		stderrors.Is(err, registry.ErrActionNotFound)
}

// Report sends err to h as a warning when it is recoverable and as an error
// otherwise. A nil err is ignored.
func Report(h ErrorHandler, err error) {
	if err == nil || h == nil {
		return
	}
	if IsRecoverable(err) {
		h.Warning(err.Error())
		return
	}
	h.Error(err.Error())
}
