package param

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewArguments is matched by TooFewArgumentsError.
	ErrTooFewArguments = errors.New("not enough arguments")
	// ErrTooManyArguments is matched by TooManyArgumentsError.
	ErrTooManyArguments = errors.New("too many arguments")
)

// DuplicateParamNameError is returned when a query already holds a parameter with the same name.
type DuplicateParamNameError struct {
	Name string
}

func (e *DuplicateParamNameError) Error() string {
	return fmt.Sprintf("parameters must have unique names, duplicated name: %s", e.Name)
}

// MissingDefaultValueError is returned when a required parameter follows an optional one.
type MissingDefaultValueError struct {
	Name     string
	Previous string
}

func (e *MissingDefaultValueError) Error() string {
	return fmt.Sprintf("parameter %q must have a default value because %q before it has one", e.Name, e.Previous)
}

// TooFewArgumentsError rejects input with fewer tokens than required parameters.
type TooFewArgumentsError struct {
	Required int
	Entered  int
}

func (e *TooFewArgumentsError) Error() string {
	return fmt.Sprintf("not enough args entered, required: %d, entered: %d", e.Required, e.Entered)
}

func (e *TooFewArgumentsError) Is(target error) bool {
	return target == ErrTooFewArguments
}

// TooManyArgumentsError rejects input with more tokens than declared parameters.
type TooManyArgumentsError struct {
	Max     int
	Entered int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("too many args entered, accepted: %d, entered: %d", e.Max, e.Entered)
}

func (e *TooManyArgumentsError) Is(target error) bool {
	return target == ErrTooManyArguments
}

// CoercionWarning records a token that could not be converted and fell back to the default.
type CoercionWarning struct {
	Param string
	Type  Type
	Token string
}

func (w CoercionWarning) String() string {
	return fmt.Sprintf("unable to parse the input %s for %s: %q", w.Type, w.Param, w.Token)
}
