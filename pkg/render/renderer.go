// Package render turns a flow page (its form definition, current values and
// the presentation of its RequestState) into bytes for a given output
// format. Renderers register by name so callers can pick one from config.
package render

import (
	"context"
)

// Renderer converts a Page into a byte representation (text, HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page) ([]byte, error)
}
