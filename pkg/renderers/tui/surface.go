// Package tui is a terminal control surface: selects and inputs are filled
// through survey prompts and every presentation change is printed.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/goliatone/go-rankpredict/pkg/formspec"
	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/render"
	"github.com/goliatone/go-rankpredict/pkg/renderers/text"
	"github.com/goliatone/go-rankpredict/pkg/surface"
)

// Surface holds the terminal state of one flow's form.
type Surface struct {
	flow     formspec.Flow
	driver   PromptDriver
	renderer render.Renderer
	theme    Theme
	out      io.Writer

	mu      sync.Mutex
	values  map[string]string
	entries map[string][]surface.Option
	last    surface.Presentation
	err     error
}

var _ surface.View = (*Surface)(nil)

// NewSurface builds a surface for flow. Inputs start at their field default.
func NewSurface(flow formspec.Flow, opts ...Option) *Surface {
	s := &Surface{
		flow:     flow,
		renderer: text.New(),
		values:   make(map[string]string, len(flow.Fields)),
		entries:  make(map[string][]surface.Option),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = newSurveyDriver(s.out)
	}
	for _, field := range flow.Fields {
		s.values[field.Name] = field.Default
	}
	return s
}

// Controls returns handles bound to this surface.
func (s *Surface) Controls() surface.Controls {
	c := surface.Controls{
		Inputs:  make(map[string]surface.InputControl),
		Selects: make(map[string]surface.SelectControl),
	}
	for _, field := range s.flow.Fields {
		ctrl := &control{surface: s, name: field.Name}
		if field.Kind == formspec.KindSelect {
			c.Selects[field.Name] = ctrl
		} else {
			c.Inputs[field.Name] = ctrl
		}
	}
	return c
}

// Collect prompts for every field in declaration order. Selects offer only
// their current entries; the previous answer is the default.
func (s *Surface) Collect(ctx context.Context) error {
	for _, field := range s.flow.Fields {
		var err error
		if field.Kind == formspec.KindSelect {
			err = s.promptSelect(ctx, field)
		} else {
			err = s.promptInput(ctx, field)
		}
		if err != nil {
			return fmt.Errorf("tui: %s: %w", field.Name, err)
		}
	}
	return nil
}

func (s *Surface) promptInput(ctx context.Context, field formspec.Field) error {
	help := field.HelpText
	if help == "" {
		help = field.Placeholder
	}
	answer, err := s.driver.Input(ctx, InputConfig{
		Message: field.Label,
		Default: s.value(field.Name),
		Help:    help,
	})
	if err != nil {
		return err
	}
	s.setValue(field.Name, answer)
	return nil
}

func (s *Surface) promptSelect(ctx context.Context, field formspec.Field) error {
	s.mu.Lock()
	entries := append([]surface.Option(nil), s.entries[field.Name]...)
	current := s.values[field.Name]
	s.mu.Unlock()

	if len(entries) == 0 {
		// Options never loaded; the service gets an empty value.
		return nil
	}
	labels := make([]string, len(entries))
	def := 0
	for i, entry := range entries {
		labels[i] = entry.Label
		if entry.Label == "" {
			labels[i] = "(none)"
		}
		if entry.Value == current {
			def = i
		}
	}

	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      labels,
		DefaultIndex: def,
		Help:         field.HelpText,
		PageSize:     12,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(entries) {
		return fmt.Errorf("selection %d out of range", idx)
	}
	s.setValue(field.Name, entries[idx].Value)
	return nil
}

// Again asks whether to run another prediction.
func (s *Surface) Again(ctx context.Context) (bool, error) {
	return s.driver.Confirm(ctx, ConfirmConfig{Message: "Predict again?", Default: true})
}

// Present prints the presentation through the renderer. Print failures are
// kept and reported by Err.
func (s *Surface) Present(p surface.Presentation) {
	s.mu.Lock()
	s.last = p
	page := render.Page{Flow: s.flow, Form: s.formLocked(), Presentation: p}
	s.mu.Unlock()

	if p.Phase == model.PhaseIdle {
		return
	}
	ctx := context.Background()
	out, err := s.renderer.Render(ctx, page)
	if err == nil {
		msg := strings.TrimRight(string(out), "\n")
		if p.ErrorVisible && s.theme.ErrorPrefix != "" {
			msg = s.theme.ErrorPrefix + msg
		} else if s.theme.InfoPrefix != "" {
			msg = s.theme.InfoPrefix + msg
		}
		err = s.driver.Info(ctx, msg)
	}
	if err != nil {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
	}
}

// Last returns the latest presentation.
func (s *Surface) Last() surface.Presentation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Err returns the first error hit while printing.
func (s *Surface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Surface) value(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[name]
}

func (s *Surface) setValue(name, value string) {
	s.mu.Lock()
	s.values[name] = value
	s.mu.Unlock()
}

func (s *Surface) formLocked() model.FormState {
	form := make(model.FormState, len(s.values))
	for k, v := range s.values {
		form[k] = v
	}
	return form
}

type control struct {
	surface *Surface
	name    string
}

func (c *control) Value() string {
	return c.surface.value(c.name)
}

// SetOptions replaces the entries and resets the answer to the first one.
func (c *control) SetOptions(options []surface.Option) {
	c.surface.mu.Lock()
	defer c.surface.mu.Unlock()
	c.surface.entries[c.name] = append([]surface.Option(nil), options...)
	c.surface.values[c.name] = ""
	if len(options) > 0 {
		c.surface.values[c.name] = options[0].Value
	}
}
