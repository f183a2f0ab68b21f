// Package surface defines the control surface a flow controller drives:
// select and input controls it reads and fills, and a View that receives a
// Presentation derived from the controller's RequestState after every
// transition.
package surface

import (
	"sort"

	"github.com/goliatone/go-rankpredict/pkg/display"
	"github.com/goliatone/go-rankpredict/pkg/model"
)

// Option is one entry of a select control. The unselected sentinel has an
// empty Value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SelectControl is a selection control whose entries the controller replaces.
type SelectControl interface {
	SetOptions(options []Option)
	Value() string
}

// InputControl is a free-text control.
type InputControl interface {
	Value() string
}

// View receives every presentation change.
type View interface {
	Present(Presentation)
}

// ViewFunc adapts a function to View.
type ViewFunc func(Presentation)

func (f ViewFunc) Present(p Presentation) { f(p) }

// Controls are the handles injected into a controller, keyed by field name.
type Controls struct {
	Inputs  map[string]InputControl
	Selects map[string]SelectControl
}

// FormState snapshots every control's current raw value.
func (c Controls) FormState() model.FormState {
	form := make(model.FormState, len(c.Inputs)+len(c.Selects))
	for name, input := range c.Inputs {
		if input != nil {
			form[name] = input.Value()
		}
	}
	for name, sel := range c.Selects {
		if sel != nil {
			form[name] = sel.Value()
		}
	}
	return form
}

// Names lists every bound field name, sorted.
func (c Controls) Names() []string {
	names := make([]string, 0, len(c.Inputs)+len(c.Selects))
	for name := range c.Inputs {
		names = append(names, name)
	}
	for name := range c.Selects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presentation is what the surface shows for one RequestState.
type Presentation struct {
	Phase          model.Phase   `json:"-"`
	LoadingVisible bool          `json:"loading"`
	SubmitEnabled  bool          `json:"submit_enabled"`
	ErrorVisible   bool          `json:"error_visible"`
	ErrorMessage   string        `json:"error,omitempty"`
	ResultVisible  bool          `json:"result_visible"`
	Result         display.Model `json:"result"`
}

// Derive maps a RequestState to its presentation. Loading hides earlier
// output and disables submission; every other phase leaves submission on.
func Derive(state model.RequestState) Presentation {
	p := Presentation{Phase: state.Phase(), SubmitEnabled: true}
	switch state.Phase() {
	case model.PhaseLoading:
		p.LoadingVisible = true
		p.SubmitEnabled = false
	case model.PhaseError:
		p.ErrorVisible = true
		p.ErrorMessage = state.Message()
	case model.PhaseSuccess:
		p.Result = display.Render(state.Response())
		p.ResultVisible = !p.Result.Empty()
	}
	return p
}
