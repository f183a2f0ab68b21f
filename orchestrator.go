package rankpredict

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/orchestrator"
	"github.com/goliatone/go-rankpredict/pkg/render"
	"github.com/goliatone/go-rankpredict/pkg/surface"
)

// FlowKind aliases model.FlowKind so callers can name a flow from the
// top-level package.
type FlowKind = model.FlowKind

const (
	FlowList     = model.FlowList
	FlowSpecific = model.FlowSpecific
)

// Option aliases orchestrator.Option.
type Option = orchestrator.Option

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Result is the outcome of a one-shot prediction.
type Result struct {
	State  model.RequestState
	Output []byte
}

// Predict runs one flow without a user in the loop: it loads the options,
// fills the form from values, submits once and renders the final
// presentation with rendererName. A failed option load is not fatal, the
// submission still goes out. The returned error is the submission error, if
// any; Result is populated either way.
func Predict(ctx context.Context, kind FlowKind, values map[string]string, rendererName string, options ...Option) (Result, error) {
	orch := orchestrator.New(options...)
	spec, err := orch.FormSpec(kind)
	if err != nil {
		return Result{}, err
	}

	mem := surface.NewMemory(spec)
	ctrl, err := orch.NewFlow(ctx, kind, mem.Controls(), mem)
	if err != nil {
		return Result{}, err
	}
	loadErr := ctrl.Start(ctx)

	for name, value := range values {
		if err := mem.Set(name, value); err != nil {
			if loadErr != nil {
				err = errors.Join(err, loadErr)
			}
			return Result{State: ctrl.State()}, fmt.Errorf("rankpredict: field %q: %w", name, err)
		}
	}

	state, submitErr := ctrl.Submit(ctx)
	last, _ := mem.Last()
	out, err := orch.Render(ctx, rendererName, render.Page{
		Flow:         spec,
		Form:         mem.Controls().FormState(),
		Options:      ctrl.Options(),
		Presentation: last,
	})
	if err != nil {
		return Result{State: state}, err
	}
	return Result{State: state, Output: out}, submitErr
}
