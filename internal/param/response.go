package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Response maps the parameters of a query to the raw tokens the user entered.
// Typed values are computed on first access.
type Response struct {
	query  *Query
	tokens []string

	parsed   bool
	values   []any
	warnings []CoercionWarning
	err      error
}

// Parse validates raw input against the query. A query made of exactly one
// String parameter takes the input verbatim; otherwise the input is tokenized
// and matched positionally.
func (q *Query) Parse(input string) (*Response, error) {
	if q.singleString() {
		return &Response{query: q, tokens: []string{input}}, nil
	}

	tokens := Tokenize(input)
	if required := q.Required(); len(tokens) < required {
		return nil, &TooFewArgumentsError{Required: required, Entered: len(tokens)}
	}
	if len(tokens) > len(q.params) {
		return nil, &TooManyArgumentsError{Max: len(q.params), Entered: len(tokens)}
	}
	return &Response{query: q, tokens: tokens}, nil
}

// NewResponse binds tokens positionally without count validation.
func NewResponse(q *Query, tokens ...string) *Response {
	return &Response{query: q, tokens: tokens}
}

// Raw returns the token entered for name.
func (r *Response) Raw(name string) (string, bool) {
	_, i, ok := r.query.Lookup(name)
	if !ok || i >= len(r.tokens) {
		return "", false
	}
	return r.tokens[i], true
}

// Values returns the typed values in parameter order.
func (r *Response) Values() []any {
	r.parse()
	return r.values
}

// AllValid reports whether every parameter resolved to a typed value.
func (r *Response) AllValid() bool {
	r.parse()
	return r.err == nil
}

// Err returns the first conversion failure, if any.
func (r *Response) Err() error {
	r.parse()
	return r.err
}

// Warnings returns the tokens that fell back to their default value.
func (r *Response) Warnings() []CoercionWarning {
	r.parse()
	return r.warnings
}

// Value returns the typed value of name.
func (r *Response) Value(name string) any {
	_, i, ok := r.query.Lookup(name)
	if !ok {
		return nil
	}
	values := r.Values()
	if i >= len(values) {
		return nil
	}
	return values[i]
}

// String returns the value of a String parameter.
func (r *Response) String(name string) string {
	s, _ := r.Value(name).(string)
	return s
}

// Bool returns the value of a Bool parameter.
func (r *Response) Bool(name string) bool {
	b, _ := r.Value(name).(bool)
	return b
}

// Int returns the value of an Int parameter.
func (r *Response) Int(name string) int {
	n, _ := r.Value(name).(int)
	return n
}

// Float returns the value of a Float parameter.
func (r *Response) Float(name string) float64 {
	f, _ := r.Value(name).(float64)
	return f
}

func (r *Response) parse() {
	if r.parsed {
		return
	}
	r.parsed = true

	values := make([]any, 0, len(r.query.params))
	for i, spec := range r.query.params {
		var (
			v   any
			err error
		)
		if i < len(r.tokens) {
			v, err = r.convert(spec, r.tokens[i])
		} else {
			v, err = defaultOf(spec)
		}
		if err != nil {
			r.err = err
			r.values = nil
			return
		}
		values = append(values, v)
	}
	r.values = values
}

func (r *Response) convert(spec Spec, token string) (any, error) {
	switch spec.Type {
	case Bool:
		return parseBool(token), nil
	case Int:
		if token != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(token)); err == nil {
				return n, nil
			}
			r.warnings = append(r.warnings, CoercionWarning{Param: spec.Name, Type: spec.Type, Token: token})
		}
		return defaultOf(spec)
	case Float:
		if token != "" {
			if f, err := strconv.ParseFloat(strings.TrimSpace(token), 64); err == nil {
				return f, nil
			}
			r.warnings = append(r.warnings, CoercionWarning{Param: spec.Name, Type: spec.Type, Token: token})
		}
		return defaultOf(spec)
	case String:
		return token, nil
	default:
		return nil, fmt.Errorf("param %s: unsupported type %s", spec.Name, spec.Type)
	}
}

// parseBool accepts "true" and "false" in any case; anything else is false.
func parseBool(token string) bool {
	return strings.EqualFold(strings.TrimSpace(token), "true")
}

// defaultOf converts the default value of spec to the parameter type.
func defaultOf(spec Spec) (any, error) {
	if spec.Default == nil {
		return nil, fmt.Errorf("param %s: no value and no default", spec.Name)
	}
	switch spec.Type {
	case Bool:
		if b, ok := spec.Default.(bool); ok {
			return b, nil
		}
	case Int:
		switch d := spec.Default.(type) {
		case int:
			return d, nil
		case int32:
			return int(d), nil
		case int64:
			return int(d), nil
		}
	case Float:
		switch d := spec.Default.(type) {
		case float64:
			return d, nil
		case float32:
			return float64(d), nil
		case int:
			return float64(d), nil
		}
	case String:
		if s, ok := spec.Default.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("param %s: default %v is not a %s", spec.Name, spec.Default, spec.Type)
}
