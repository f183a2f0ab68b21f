package surface

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-rankpredict/pkg/formspec"
)

// Memory is an in-process surface. It backs tests and non-interactive use.
type Memory struct {
	mu      sync.Mutex
	inputs  map[string]*MemoryInput
	selects map[string]*MemorySelect
	history []Presentation
}

// NewMemory creates one control per field of flow. Inputs start at their
// field default.
func NewMemory(flow formspec.Flow) *Memory {
	m := &Memory{
		inputs:  make(map[string]*MemoryInput),
		selects: make(map[string]*MemorySelect),
	}
	for _, field := range flow.Fields {
		switch field.Kind {
		case formspec.KindSelect:
			m.selects[field.Name] = &MemorySelect{}
		default:
			m.inputs[field.Name] = &MemoryInput{value: field.Default}
		}
	}
	return m
}

// Controls returns the handles to inject into a controller.
func (m *Memory) Controls() Controls {
	c := Controls{
		Inputs:  make(map[string]InputControl, len(m.inputs)),
		Selects: make(map[string]SelectControl, len(m.selects)),
	}
	for name, input := range m.inputs {
		c.Inputs[name] = input
	}
	for name, sel := range m.selects {
		c.Selects[name] = sel
	}
	return c
}

// Input returns the named input.
func (m *Memory) Input(name string) (*MemoryInput, bool) {
	input, ok := m.inputs[name]
	return input, ok
}

// Select returns the named select.
func (m *Memory) Select(name string) (*MemorySelect, bool) {
	sel, ok := m.selects[name]
	return sel, ok
}

// Set types into an input or chooses a select entry.
func (m *Memory) Set(name, value string) error {
	if input, ok := m.inputs[name]; ok {
		input.Set(value)
		return nil
	}
	if sel, ok := m.selects[name]; ok {
		return sel.Choose(value)
	}
	return fmt.Errorf("surface: unknown field %q", name)
}

// Present implements View.
func (m *Memory) Present(p Presentation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, p)
}

// History returns every presentation received so far.
func (m *Memory) History() []Presentation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Presentation(nil), m.history...)
}

// Last returns the latest presentation.
func (m *Memory) Last() (Presentation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == 0 {
		return Presentation{}, false
	}
	return m.history[len(m.history)-1], true
}

// MemoryInput is a text input.
type MemoryInput struct {
	mu    sync.Mutex
	value string
}

func (i *MemoryInput) Set(value string) {
	i.mu.Lock()
	i.value = value
	i.mu.Unlock()
}

func (i *MemoryInput) Value() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value
}

// MemorySelect only accepts values among its current entries.
type MemorySelect struct {
	mu       sync.Mutex
	options  []Option
	selected string
}

// SetOptions replaces the entries and resets the selection to the first one.
func (s *MemorySelect) SetOptions(options []Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = append([]Option(nil), options...)
	s.selected = ""
	if len(s.options) > 0 {
		s.selected = s.options[0].Value
	}
}

// Options returns the current entries.
func (s *MemorySelect) Options() []Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Option(nil), s.options...)
}

// Choose selects value, which must be one of the entries.
func (s *MemorySelect) Choose(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, opt := range s.options {
		if opt.Value == value {
			s.selected = value
			return nil
		}
	}
	return fmt.Errorf("surface: %q is not an option", value)
}

func (s *MemorySelect) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}
