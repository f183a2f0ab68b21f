package model

import (
	"fmt"
	"sort"
	"strings"
)

// FlowKind identifies one of the prediction interactions.
type FlowKind string

const (
	// FlowList is the aggregate flow: rank + category in, ranked colleges out.
	FlowList FlowKind = "list"
	// FlowSpecific is the single-scenario flow backed by the ML endpoint.
	FlowSpecific FlowKind = "specific"
)

// ParseFlowKind accepts a flow name case-insensitively.
func ParseFlowKind(raw string) (FlowKind, error) {
	switch kind := FlowKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case FlowList, FlowSpecific:
		return kind, nil
	default:
		return "", fmt.Errorf("model: unknown flow %q", raw)
	}
}

// OptionSet maps a field name to the ordered values the service allows for
// it. The zero value is an empty set. Values are copied on the way in and on
// the way out so a set cannot change once fetched.
type OptionSet struct {
	fields map[string][]string
}

// NewOptionSet copies values into an immutable OptionSet.
func NewOptionSet(values map[string][]string) OptionSet {
	set := OptionSet{fields: make(map[string][]string, len(values))}
	for name, list := range values {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set.fields[name] = append([]string(nil), list...)
	}
	return set
}

// Values returns a copy of the values declared for field.
func (s OptionSet) Values(field string) []string {
	values, ok := s.fields[field]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// Has reports whether field is present in the set, even with no values.
func (s OptionSet) Has(field string) bool {
	_, ok := s.fields[field]
	return ok
}

// Contains reports whether value is a permissible choice for field.
func (s OptionSet) Contains(field, value string) bool {
	for _, candidate := range s.fields[field] {
		if candidate == value {
			return true
		}
	}
	return false
}

// Fields lists the field names in lexical order.
func (s OptionSet) Fields() []string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of fields in the set.
func (s OptionSet) Len() int {
	return len(s.fields)
}

// FormState holds the raw value of every declared field exactly as the
// control surface reports it. Missing fields read as the empty string.
type FormState map[string]string

// Value returns the raw value for name.
func (f FormState) Value(name string) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// Clone returns a detached copy of the state.
func (f FormState) Clone() FormState {
	out := make(FormState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
