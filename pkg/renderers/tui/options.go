package tui

import (
	"io"

	"github.com/goliatone/go-rankpredict/pkg/render"
)

// Theme captures optional prefixes the surface puts in front of messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the surface.
type Option func(*Surface)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Surface) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the default survey driver prints messages.
func WithOutput(out io.Writer) Option {
	return func(s *Surface) {
		s.out = out
	}
}

// WithRenderer selects how presentations are printed. Defaults to text.
func WithRenderer(r render.Renderer) Option {
	return func(s *Surface) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Surface) {
		s.theme = theme
	}
}
