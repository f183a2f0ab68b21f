package formspec

import "github.com/goliatone/go-rankpredict/pkg/model"

// Kind tells how a field is captured and encoded.
type Kind string

const (
	KindInteger Kind = "integer"
	KindSelect  Kind = "select"
)

// Store keeps the parsed flows. It is safe for concurrent readers when
// treated as immutable after construction.
type Store struct {
	flows map[model.FlowKind]Flow
}

// Flow describes one prediction flow: which contract operations it calls and
// which fields its form declares, in display order.
type Flow struct {
	Kind             model.FlowKind `json:"kind"`
	Title            string         `json:"title"`
	OptionsOperation string         `json:"optionsOperation"`
	PredictOperation string         `json:"predictOperation"`
	// SortOptions alphabetises option values before they reach the controls.
	SortOptions bool    `json:"sortOptions"`
	Fields      []Field `json:"fields"`
}

// Field is a single form field.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	Label       string `json:"label" yaml:"label"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	// Source is the key of the options payload feeding a select; defaults to Name.
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
}

// Field looks up a field by name.
func (f Flow) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Selects returns the select fields in declaration order.
func (f Flow) Selects() []Field {
	return f.byKind(KindSelect)
}

// Inputs returns the integer fields in declaration order.
func (f Flow) Inputs() []Field {
	return f.byKind(KindInteger)
}

// Sources lists the option payload keys the flow expects.
func (f Flow) Sources() []string {
	selects := f.Selects()
	out := make([]string, 0, len(selects))
	for _, field := range selects {
		out = append(out, field.Source)
	}
	return out
}

func (f Flow) byKind(kind Kind) []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Kind == kind {
			out = append(out, field)
		}
	}
	return out
}
