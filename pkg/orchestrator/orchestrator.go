package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-rankpredict/internal/contract"
	"github.com/goliatone/go-rankpredict/internal/logger"
	"github.com/goliatone/go-rankpredict/pkg/flow"
	"github.com/goliatone/go-rankpredict/pkg/formspec"
	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/options"
	"github.com/goliatone/go-rankpredict/pkg/render"
	"github.com/goliatone/go-rankpredict/pkg/request"
	"github.com/goliatone/go-rankpredict/pkg/surface"
)

const (
	defaultBaseURL      = "http://127.0.0.1:5000"
	defaultRendererName = "text"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithBaseURL sets the address of the prediction service.
func WithBaseURL(url string) Option {
	return func(o *Orchestrator) {
		o.baseURL = strings.TrimSpace(url)
	}
}

// WithHTTPClient injects the client used for option loads and submissions.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Orchestrator) {
		if client != nil {
			o.client = client
		}
	}
}

// WithLogger injects the logger handed to loaders and controllers.
func WithLogger(log logger.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.logger = log
		}
	}
}

// WithMetrics injects the lifecycle recorder, usually a *metrics.Recorder.
func WithMetrics(m flow.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithContract overrides the embedded service contract.
func WithContract(c *contract.Contract) Option {
	return func(o *Orchestrator) {
		o.contract = c
	}
}

// WithFormSpec overrides the embedded flow definitions.
func WithFormSpec(store *formspec.Store) Option {
	return func(o *Orchestrator) {
		o.specs = store
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when Render is called
// without an explicit name.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithStrictValidation makes controllers reject invalid forms locally
// instead of sending them.
func WithStrictValidation() Option {
	return func(o *Orchestrator) {
		o.strict = true
	}
}

// WithRequestIDs overrides the correlation id generator.
func WithRequestIDs(fn func() string) Option {
	return func(o *Orchestrator) {
		o.newID = fn
	}
}

// Orchestrator builds flow controllers bound to one service address. It
// applies the embedded contract, flow definitions and renderers by default
// while remaining open to dependency injection.
type Orchestrator struct {
	baseURL         string
	client          *http.Client
	logger          logger.Logger
	metrics         flow.Metrics
	specs           *formspec.Store
	registry        *render.Registry
	defaultRenderer string
	strict          bool
	newID           func() string

	mu            sync.Mutex
	contract      *contract.Contract
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(opts ...Option) *Orchestrator {
	o := &Orchestrator{
		baseURL:         defaultBaseURL,
		client:          http.DefaultClient,
		logger:          logger.NewNoOpLogger(),
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.baseURL == "" {
		o.baseURL = defaultBaseURL
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.specs == nil {
		store, err := formspec.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load flow definitions: %w", err)
			return
		}
		o.specs = store
	}
	if o.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			o.initialiseErr = err
			return
		}
		o.registry = registry
	}
}

// BaseURL returns the service address controllers talk to.
func (o *Orchestrator) BaseURL() string {
	return o.baseURL
}

// Registry returns the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// FormSpec returns the field definitions of kind, so callers can build a
// surface before asking for a controller.
func (o *Orchestrator) FormSpec(kind model.FlowKind) (formspec.Flow, error) {
	if o.initialiseErr != nil {
		return formspec.Flow{}, o.initialiseErr
	}
	spec, ok := o.specs.Flow(kind)
	if !ok {
		return formspec.Flow{}, fmt.Errorf("orchestrator: flow %q not defined", kind)
	}
	return spec, nil
}

// NewFlow returns a controller for kind wired to the service contract. The
// controller's option loader and response checks come from the operations
// the flow definition names.
func (o *Orchestrator) NewFlow(ctx context.Context, kind model.FlowKind, controls surface.Controls, view surface.View) (*flow.Controller, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	spec, err := o.FormSpec(kind)
	if err != nil {
		return nil, err
	}
	doc, err := o.loadContract(ctx)
	if err != nil {
		return nil, err
	}

	optionsOp, ok := doc.Operation(spec.OptionsOperation)
	if !ok {
		return nil, fmt.Errorf("orchestrator: operation %q not found", spec.OptionsOperation)
	}
	predictOp, ok := doc.Operation(spec.PredictOperation)
	if !ok {
		return nil, fmt.Errorf("orchestrator: operation %q not found", spec.PredictOperation)
	}

	var builderOpts []request.Option
	if o.strict {
		builderOpts = append(builderOpts, request.WithStrictValidation())
	}
	strategy, err := flow.StrategyFor(kind, request.NewBuilder(builderOpts...))
	if err != nil {
		return nil, err
	}

	loader := options.NewLoader(optionsOp.URL(o.baseURL), spec,
		options.WithHTTPClient(o.client),
		options.WithLogger(o.logger),
		options.WithValidator(optionsOp),
	)

	flowOpts := []flow.Option{
		flow.WithHTTPClient(o.client),
		flow.WithOptionSource(loader),
		flow.WithValidator(predictOp),
		flow.WithLogger(o.logger),
	}
	if o.metrics != nil {
		flowOpts = append(flowOpts, flow.WithMetrics(o.metrics))
	}
	if o.newID != nil {
		flowOpts = append(flowOpts, flow.WithRequestIDs(o.newID))
	}

	ctrl, err := flow.New(strategy, spec, predictOp.URL(o.baseURL), controls, view, flowOpts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build controller: %w", err)
	}
	return ctrl, nil
}

func (o *Orchestrator) loadContract(ctx context.Context) (*contract.Contract, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.contract != nil {
		return o.contract, nil
	}
	doc, err := contract.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load contract: %w", err)
	}
	o.contract = doc
	return doc, nil
}

// Render projects page with the named renderer, falling back to the
// configured default when name is empty.
func (o *Orchestrator) Render(ctx context.Context, name string, page render.Page) ([]byte, error) {
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}
	renderer, err := o.rendererFor(name)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}
