// Package flow drives one prediction flow: it loads the select options,
// runs submissions through the Idle → Loading → Success/Error lifecycle and
// keeps the surface in sync with the current RequestState.
package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goliatone/go-rankpredict/internal/logger"
	"github.com/goliatone/go-rankpredict/pkg/formspec"
	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/options"
	"github.com/goliatone/go-rankpredict/pkg/surface"
)

// ErrInFlight is returned by Submit while an earlier submission is loading.
var ErrInFlight = errors.New("flow: submission already in flight")

const maxBodyBytes = 4 << 20

// Submission outcomes reported to Metrics.
const (
	outcomeSuccess      = "success"
	outcomeInvalid      = "invalid"
	outcomeServiceError = "service_error"
	outcomeSchemaError  = "schema_error"
	outcomeNetworkError = "network_error"
)

// Controller owns the RequestState of one flow.
type Controller struct {
	strategy Strategy
	flow     formspec.Flow
	endpoint string
	controls surface.Controls
	view     surface.View

	client    *http.Client
	options   OptionSource
	validator Validator
	logger    logger.Logger
	metrics   Metrics
	newID     func() string

	mu    sync.Mutex
	state model.RequestState
	set   model.OptionSet
}

// New wires a controller. endpoint is the absolute URL submissions are
// POSTed to; view may be nil when nothing needs to observe presentations.
func New(strategy Strategy, flow formspec.Flow, endpoint string, controls surface.Controls, view surface.View, opts ...Option) (*Controller, error) {
	if strategy == nil {
		return nil, errors.New("flow: strategy is required")
	}
	if flow.Kind != "" && flow.Kind != strategy.Kind() {
		return nil, fmt.Errorf("flow: strategy %q does not match flow %q", strategy.Kind(), flow.Kind)
	}
	if endpoint == "" {
		return nil, errors.New("flow: endpoint is required")
	}
	if view == nil {
		view = surface.ViewFunc(func(surface.Presentation) {})
	}

	c := &Controller{
		strategy: strategy,
		flow:     flow,
		endpoint: endpoint,
		controls: controls,
		view:     view,
		client:   http.DefaultClient,
		logger:   logger.NewNoOpLogger(),
		metrics:  nopMetrics{},
		newID:    newRequestID,
		state:    model.Idle(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.logger = c.logger.WithFields(map[string]any{"flow": string(strategy.Kind())})
	return c, nil
}

// Kind returns the flow this controller drives.
func (c *Controller) Kind() model.FlowKind {
	return c.strategy.Kind()
}

// State returns the current RequestState.
func (c *Controller) State() model.RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Options returns the option set loaded by Start.
func (c *Controller) Options() model.OptionSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set
}

// Start presents the idle surface and, with an option source configured,
// loads and populates the select controls. A load failure moves the
// controller to Error; the form stays usable.
func (c *Controller) Start(ctx context.Context) error {
	c.view.Present(surface.Derive(c.State()))
	if c.options == nil {
		return nil
	}

	kind := string(c.Kind())
	set, err := c.options.Load(ctx)
	if err != nil {
		c.metrics.OptionsLoaded(kind, "error")
		c.logger.WithError(err).Warn("loading options failed", nil)

		c.mu.Lock()
		if c.state.Phase() == model.PhaseLoading {
			c.mu.Unlock()
			return err
		}
		c.state = model.Failed(model.UserMessage(err, model.MsgOptionsFailed))
		p := surface.Derive(c.state)
		c.mu.Unlock()
		c.view.Present(p)
		return err
	}

	c.mu.Lock()
	c.set = set
	c.mu.Unlock()
	options.Populate(set, c.flow, c.controls.Selects)
	c.metrics.OptionsLoaded(kind, "success")
	c.logger.Debug("options populated", map[string]any{"fields": set.Len()})
	return nil
}

// Submit runs one submission cycle and returns the terminal state it ended
// in. While a cycle is loading further calls return ErrInFlight and change
// nothing.
func (c *Controller) Submit(ctx context.Context) (model.RequestState, error) {
	kind := string(c.Kind())

	c.mu.Lock()
	if c.state.Phase() == model.PhaseLoading {
		current := c.state
		c.mu.Unlock()
		c.metrics.SubmissionIgnored(kind)
		return current, ErrInFlight
	}
	c.state = model.Loading()
	c.mu.Unlock()
	c.view.Present(surface.Derive(model.Loading()))

	id := c.newID()
	log := c.logger.WithFields(map[string]any{"request_id": id})
	started := time.Now()
	c.metrics.SubmissionStarted(kind)
	log.Debug("submission started", nil)

	final := model.Failed(model.MsgPredictionFailed)
	outcome := outcomeNetworkError
	defer func() {
		c.mu.Lock()
		c.state = final
		c.mu.Unlock()
		c.view.Present(surface.Derive(final))

		elapsed := time.Since(started)
		c.metrics.SubmissionFinished(kind, outcome, elapsed)
		log.Info("submission finished", map[string]any{
			"state":    final.Phase().String(),
			"outcome":  outcome,
			"duration": elapsed,
		})
	}()

	req, err := c.strategy.Build(c.controls.FormState())
	if err != nil {
		outcome = outcomeInvalid
		final = model.Failed(model.UserMessage(err, model.MsgPredictionFailed))
		log.WithError(err).Warn("request rejected before sending", nil)
		return final, err
	}

	resp, err := c.send(ctx, id, req)
	if err != nil {
		outcome = classify(err)
		final = model.Failed(model.UserMessage(err, model.MsgPredictionFailed))
		log.WithError(err).Warn("submission failed", nil)
		return final, err
	}

	outcome = outcomeSuccess
	final = model.Succeeded(resp)
	return final, nil
}

func (c *Controller) send(ctx context.Context, id string, req model.PredictionRequest) (model.PredictionResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &model.NetworkError{Op: "flow: encode request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &model.NetworkError{Op: "flow: build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", id)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &model.NetworkError{Op: "flow: do request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &model.NetworkError{Op: "flow: read body", Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if msg, ok := serviceMessage(body); ok {
			return nil, &model.ServiceError{Status: resp.StatusCode, Message: msg}
		}
		return nil, &model.NetworkError{Op: "flow: unexpected status", Status: resp.StatusCode}
	}

	if c.validator != nil {
		if err := c.validator.ValidateResponse(resp.StatusCode, body); err != nil {
			return nil, err
		}
	}

	decoded, err := c.strategy.Decode(body)
	if err != nil {
		return nil, &model.NetworkError{Op: "flow: decode response", Status: resp.StatusCode, Err: err}
	}
	return decoded, nil
}

// serviceMessage extracts a non-empty string "error" field.
func serviceMessage(body []byte) (string, bool) {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(envelope.Error, &msg); err != nil || msg == "" {
		return "", false
	}
	return msg, true
}

func classify(err error) string {
	var (
		serviceErr *model.ServiceError
		schemaErr  *model.SchemaError
	)
	switch {
	case errors.As(err, &serviceErr):
		return outcomeServiceError
	case errors.As(err, &schemaErr):
		return outcomeSchemaError
	default:
		return outcomeNetworkError
	}
}
