package flow

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-rankpredict/internal/logger"
	"github.com/goliatone/go-rankpredict/pkg/model"
)

// OptionSource supplies the option set at start-up.
type OptionSource interface {
	Load(ctx context.Context) (model.OptionSet, error)
}

// Validator checks a raw success body before it is decoded.
type Validator interface {
	ValidateResponse(status int, body []byte) error
}

// Metrics receives lifecycle events. *metrics.Recorder implements it.
type Metrics interface {
	SubmissionStarted(flow string)
	SubmissionFinished(flow, outcome string, elapsed time.Duration)
	SubmissionIgnored(flow string)
	OptionsLoaded(flow, outcome string)
}

// Option configures a Controller.
type Option func(*Controller)

// WithHTTPClient overrides the client used for submissions.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) {
		if client != nil {
			c.client = client
		}
	}
}

// WithOptionSource loads options on Start and populates the select controls.
func WithOptionSource(src OptionSource) Option {
	return func(c *Controller) {
		c.options = src
	}
}

// WithValidator checks success bodies before decoding.
func WithValidator(v Validator) Option {
	return func(c *Controller) {
		c.validator = v
	}
}

// WithLogger sets the logger transitions and failures are written to.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithMetrics reports lifecycle events to m.
func WithMetrics(m Metrics) Option {
	return func(c *Controller) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithRequestIDs overrides how submission cycle ids are generated.
func WithRequestIDs(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

func newRequestID() string {
	return uuid.NewString()
}

type nopMetrics struct{}

func (nopMetrics) SubmissionStarted(string)                         {}
func (nopMetrics) SubmissionFinished(string, string, time.Duration) {}
func (nopMetrics) SubmissionIgnored(string)                         {}
func (nopMetrics) OptionsLoaded(string, string)                     {}
