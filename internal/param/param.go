// Package param defines typed parameters for free-text debug commands and
// the quote-aware parser that turns user input into typed values.
package param

import "fmt"

// Type is the value type of a parameter.
type Type int

const (
	Bool Type = iota
	Int
	Float
	String
)

// String returns the display name of the type.
func (t Type) String() string {
	switch t {
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Spec describes one parameter of a Query.
type Spec struct {
	Name        string
	Type        Type
	Description string
	// Default is nil for required parameters.
	Default any
	// Prefill returns the value shown in the input field when it opens.
	Prefill func() any
}

// Optional reports whether the parameter carries a default value.
func (s Spec) Optional() bool {
	return s.Default != nil
}

// describe renders "name?: Type = default (description)".
func (s Spec) describe() string {
	out := s.Name
	hasDefault := s.Default != nil && fmt.Sprint(s.Default) != ""
	if hasDefault {
		out += "?"
	}
	out += ": " + s.Type.String()
	if hasDefault {
		out += fmt.Sprintf(" = %v", s.Default)
	}
	if s.Description != "" {
		out += " (" + s.Description + ")"
	}
	return out
}
