package orchestrator

import (
	"fmt"

	"github.com/goliatone/go-rankpredict/pkg/render"
	"github.com/goliatone/go-rankpredict/pkg/renderers/html"
	"github.com/goliatone/go-rankpredict/pkg/renderers/jsonview"
	"github.com/goliatone/go-rankpredict/pkg/renderers/text"
)

// DefaultRegistry returns a registry holding the built-in text, json and
// html renderers. The html renderer takes htmlOpts.
func DefaultRegistry(htmlOpts ...html.Option) (*render.Registry, error) {
	registry := render.NewRegistry()
	registry.MustRegister(text.New(text.WithForm()))
	registry.MustRegister(jsonview.New())

	renderer, err := html.New(htmlOpts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: html renderer: %w", err)
	}
	if err := registry.Register(renderer); err != nil {
		return nil, err
	}
	return registry, nil
}
