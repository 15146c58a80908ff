package param

import (
	"fmt"
	"strings"
)

// Query is the ordered parameter list of an input action.
type Query struct {
	params []Spec
}

// NewQuery builds a query from specs, validating each one in order.
func NewQuery(specs ...Spec) (*Query, error) {
	q := &Query{}
	for _, spec := range specs {
		if err := q.Add(spec); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// MustQuery is like NewQuery but panics on a malformed definition.
func MustQuery(specs ...Spec) *Query {
	q, err := NewQuery(specs...)
	if err != nil {
		panic(err)
	}
	return q
}

// Add appends a parameter. Names must be unique and once a parameter has a
// default value every following parameter needs one too.
func (q *Query) Add(spec Spec) error {
	for _, p := range q.params {
		if p.Name == spec.Name {
			return &DuplicateParamNameError{Name: spec.Name}
		}
	}
	if n := len(q.params); n > 0 && q.params[n-1].Optional() && !spec.Optional() {
		return &MissingDefaultValueError{Name: spec.Name, Previous: q.params[n-1].Name}
	}
	q.params = append(q.params, spec)
	return nil
}

// Params returns a copy of the parameter list.
func (q *Query) Params() []Spec {
	if q == nil {
		return nil
	}
	out := make([]Spec, len(q.params))
	copy(out, q.params)
	return out
}

// Len returns the number of parameters.
func (q *Query) Len() int {
	if q == nil {
		return 0
	}
	return len(q.params)
}

// Required counts the parameters without a default value.
func (q *Query) Required() int {
	n := 0
	for _, p := range q.params {
		if !p.Optional() {
			n++
		}
	}
	return n
}

// Lookup finds a parameter by name.
func (q *Query) Lookup(name string) (Spec, int, bool) {
	for i, p := range q.params {
		if p.Name == name {
			return p, i, true
		}
	}
	return Spec{}, -1, false
}

// Display renders the parameter placeholder shown in the input prompt, e.g. "<name> <count>".
func (q *Query) Display() string {
	parts := make([]string, 0, q.Len())
	for _, p := range q.params {
		parts = append(parts, "<"+p.Name+">")
	}
	return strings.Join(parts, " ")
}

// Prefill joins the prefill values of the parameters with spaces.
// String values are quoted when the query has more than one parameter so
// they survive tokenizing.
func (q *Query) Prefill() string {
	parts := make([]string, 0, q.Len())
	for _, p := range q.params {
		if p.Prefill == nil {
			continue
		}
		v := p.Prefill()
		if v == nil {
			continue
		}
		s := fmt.Sprint(v)
		if p.Type == String && len(q.params) > 1 {
			s = `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// Describe lists every parameter on its own line.
func (q *Query) Describe() string {
	lines := make([]string, 0, q.Len())
	for _, p := range q.params {
		lines = append(lines, p.describe())
	}
	return strings.Join(lines, "\n")
}

// singleString reports whether the whole raw input maps to one String parameter.
func (q *Query) singleString() bool {
	return len(q.params) == 1 && q.params[0].Type == String
}
