// Package jsonview renders a flow page as a JSON document for scripting.
package jsonview

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-rankpredict/pkg/render"
	"github.com/goliatone/go-rankpredict/pkg/surface"
)

// Renderer emits one JSON object per page.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints the output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string        { return "json" }
func (r *Renderer) ContentType() string { return "application/json" }

type document struct {
	Flow         string               `json:"flow"`
	Phase        string               `json:"phase"`
	Form         map[string]string    `json:"form,omitempty"`
	Presentation surface.Presentation `json:"presentation"`
}

func (r *Renderer) Render(_ context.Context, page render.Page) ([]byte, error) {
	doc := document{
		Flow:         string(page.Flow.Kind),
		Phase:        page.Presentation.Phase.String(),
		Form:         page.Form,
		Presentation: page.Presentation,
	}
	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
