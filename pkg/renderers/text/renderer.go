// Package text renders a flow page as plain terminal text.
package text

import (
	"context"
	"strings"

	"github.com/goliatone/go-rankpredict/pkg/display"
	"github.com/goliatone/go-rankpredict/pkg/render"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithForm includes the submitted field values above the result.
func WithForm() Option {
	return func(r *Renderer) {
		r.showForm = true
	}
}

// WithLoadingText overrides the line printed while a request is in flight.
func WithLoadingText(text string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(text) != "" {
			r.loading = text
		}
	}
}

// Renderer prints one line per visual element of the presentation.
type Renderer struct {
	showForm bool
	loading  string
}

var _ render.Renderer = (*Renderer)(nil)

// New builds a text renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{loading: "Predicting..."}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string        { return "text" }
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

func (r *Renderer) Render(_ context.Context, page render.Page) ([]byte, error) {
	var b strings.Builder
	if page.Flow.Title != "" {
		b.WriteString(page.Flow.Title)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("=", len(page.Flow.Title)))
		b.WriteString("\n\n")
	}
	if fields := page.Fields(); r.showForm && len(fields) > 0 {
		for _, field := range fields {
			value := field.Value
			if value == "" {
				value = "-"
			}
			b.WriteString(field.Label)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	p := page.Presentation
	if p.LoadingVisible {
		b.WriteString(r.loading)
		b.WriteByte('\n')
	}
	if p.ErrorVisible {
		b.WriteString("Error: ")
		b.WriteString(p.ErrorMessage)
		b.WriteByte('\n')
	}
	if p.ResultVisible {
		writeResult(&b, p.Result)
	}
	return []byte(b.String()), nil
}

func writeResult(b *strings.Builder, m display.Model) {
	switch m.Kind {
	case display.KindMatches:
		for i, row := range m.Rows {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(row.Institute)
			b.WriteByte('\n')
			b.WriteString("  ")
			b.WriteString(row.Branch)
			b.WriteByte('\n')
			b.WriteString("  ")
			b.WriteString(row.Stats())
			b.WriteByte('\n')
		}
	case display.KindOutcome:
		if m.Outcome == nil {
			return
		}
		b.WriteString(m.Outcome.StatusLine)
		if marker := tierMarker(m.Outcome.Tier); marker != "" {
			b.WriteString(" ")
			b.WriteString(marker)
		}
		b.WriteByte('\n')
		b.WriteString(m.Outcome.DetailsLine)
		b.WriteByte('\n')
		b.WriteString(m.Outcome.RecommendationLine)
		b.WriteByte('\n')
	default:
		for _, line := range m.Lines() {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
}

func tierMarker(tier display.Tier) string {
	switch tier {
	case display.TierHigh:
		return "[+]"
	case display.TierModerate:
		return "[~]"
	case display.TierLow:
		return "[-]"
	default:
		return ""
	}
}
