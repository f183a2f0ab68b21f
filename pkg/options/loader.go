// Package options fetches the permissible values of each select field from
// the prediction service and fills the bound select controls with them.
package options

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/goliatone/go-rankpredict/internal/logger"
	"github.com/goliatone/go-rankpredict/pkg/formspec"
	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/surface"
)

const maxBodyBytes = 4 << 20

// Validator checks a raw response body before it is decoded.
type Validator interface {
	ValidateResponse(status int, body []byte) error
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient overrides the client used for the options request.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// WithValidator checks the options body against a schema before decoding.
func WithValidator(v Validator) Option {
	return func(l *Loader) {
		l.validator = v
	}
}

// Loader performs the single GET of a flow's options endpoint.
type Loader struct {
	url       string
	flow      formspec.Flow
	client    *http.Client
	logger    logger.Logger
	validator Validator
}

// NewLoader builds a Loader for flow reading from url.
func NewLoader(url string, flow formspec.Flow, opts ...Option) *Loader {
	l := &Loader{
		url:    url,
		flow:   flow,
		client: http.DefaultClient,
		logger: logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load fetches the options payload and returns it keyed by field name.
// Fields the payload omits come back empty.
func (l *Loader) Load(ctx context.Context) (model.OptionSet, error) {
	started := time.Now()
	log := l.logger.WithFields(map[string]any{"flow": string(l.flow.Kind), "url": l.url})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return model.OptionSet{}, fail("build request", 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return model.OptionSet{}, fail("do request", 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return model.OptionSet{}, fail("read body", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.OptionSet{}, fail("unexpected status", resp.StatusCode, nil)
	}
	if l.validator != nil {
		if err := l.validator.ValidateResponse(resp.StatusCode, body); err != nil {
			log.WithError(err).Warn("options payload failed schema validation", nil)
			return model.OptionSet{}, &model.SchemaError{Op: "options", Reasons: []string{err.Error()}, Message: model.MsgOptionsFailed}
		}
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return model.OptionSet{}, fail("decode", resp.StatusCode, err)
	}

	values := make(map[string][]string, len(l.flow.Fields))
	for _, field := range l.flow.Selects() {
		raw, ok := payload[field.Source]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			log.Warn("options payload is missing a field", map[string]any{"source": field.Source})
			values[field.Name] = nil
			continue
		}
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return model.OptionSet{}, &model.SchemaError{
				Op:      "options",
				Reasons: []string{fmt.Sprintf("%s: %v", field.Source, err)},
				Message: model.MsgOptionsFailed,
			}
		}
		if l.flow.SortOptions {
			sort.Strings(list)
		}
		values[field.Name] = list
	}

	set := model.NewOptionSet(values)
	log.Debug("options loaded", map[string]any{"fields": set.Len(), "duration": time.Since(started)})
	return set, nil
}

func fail(op string, status int, err error) error {
	return &model.NetworkError{Op: "options: " + op, Status: status, Message: model.MsgOptionsFailed, Err: err}
}

// Populate replaces the entries of every bound select: the flow's
// placeholder as an empty-valued sentinel, then one entry per value with
// value and label equal to the raw string. Selects without a matching field
// are left alone.
func Populate(set model.OptionSet, flow formspec.Flow, selects map[string]surface.SelectControl) {
	for _, field := range flow.Selects() {
		ctrl, ok := selects[field.Name]
		if !ok || ctrl == nil {
			continue
		}
		values := set.Values(field.Name)
		entries := make([]surface.Option, 0, len(values)+1)
		entries = append(entries, surface.Option{Value: "", Label: field.Placeholder})
		for _, v := range values {
			entries = append(entries, surface.Option{Value: v, Label: v})
		}
		ctrl.SetOptions(entries)
	}
}
