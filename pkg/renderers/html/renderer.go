// Package html renders a flow page as an HTML fragment using pongo2
// templates. Tier colours come from theme tokens so a go-theme selection can
// restyle the verdict without touching the templates.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-rankpredict/pkg/display"
	"github.com/goliatone/go-rankpredict/pkg/render"
	"github.com/goliatone/go-rankpredict/pkg/render/template"
	"github.com/goliatone/go-rankpredict/pkg/render/template/gotemplate"
)

// Theme token keys for the outcome tiers.
const (
	TokenChanceHigh     = "chance-high"
	TokenChanceModerate = "chance-moderate"
	TokenChanceLow      = "chance-low"
)

var defaultTokens = map[string]string{
	TokenChanceHigh:     "#27ae60",
	TokenChanceModerate: "#f39c12",
	TokenChanceLow:      "#e74c3c",
}

// Option configures the renderer.
type Option func(*Renderer)

// WithTemplateRenderer swaps the template engine.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTemplatesFS loads templates from fsys instead of the embedded set.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(r *Renderer) {
		r.templates = fsys
	}
}

// WithTheme applies a theme selection; its tokens override the tier colours.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// WithLoadingText overrides the loading indicator text.
func WithLoadingText(text string) Option {
	return func(r *Renderer) {
		if strings.TrimSpace(text) != "" {
			r.loadingText = text
		}
	}
}

// Renderer renders pages through the "page" template.
type Renderer struct {
	engine      template.TemplateRenderer
	templates   fs.FS
	theme       *theme.RendererConfig
	loadingText string
}

var _ render.Renderer = (*Renderer)(nil)

// New builds an HTML renderer backed by the embedded templates unless an
// engine or template FS is supplied.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{loadingText: "Predicting..."}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.engine == nil {
		if r.templates == nil {
			r.templates = TemplatesFS()
		}
		engine, err := gotemplate.New(gotemplate.WithFS(r.templates))
		if err != nil {
			return nil, fmt.Errorf("html: init templates: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

func (r *Renderer) Name() string        { return "html" }
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

func (r *Renderer) Render(ctx context.Context, page render.Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := map[string]any{
		"page":  r.pageView(page),
		"theme": buildThemeContext(r.theme),
	}
	out, err := r.engine.RenderTemplate("page", data)
	if err != nil {
		return nil, fmt.Errorf("html: render page: %w", err)
	}
	return []byte(out), nil
}

type pageView struct {
	Title         string             `json:"title"`
	Flow          string             `json:"flow"`
	Phase         string             `json:"phase"`
	Fields        []render.FieldView `json:"fields"`
	Loading       bool               `json:"loading"`
	LoadingText   string             `json:"loading_text"`
	SubmitEnabled bool               `json:"submit_enabled"`
	ErrorVisible  bool               `json:"error_visible"`
	Error         string             `json:"error"`
	ResultVisible bool               `json:"result_visible"`
	Kind          string             `json:"kind"`
	Message       string             `json:"message"`
	Rows          []display.Row      `json:"rows"`
	Outcome       *outcomeView       `json:"outcome"`
}

type outcomeView struct {
	Tier           string `json:"tier"`
	Color          string `json:"color"`
	StatusLine     string `json:"status_line"`
	DetailsLine    string `json:"details_line"`
	Recommendation string `json:"recommendation"`
}

func (r *Renderer) pageView(page render.Page) pageView {
	p := page.Presentation
	view := pageView{
		Title:         page.Flow.Title,
		Flow:          string(page.Flow.Kind),
		Phase:         p.Phase.String(),
		Fields:        page.Fields(),
		Loading:       p.LoadingVisible,
		LoadingText:   r.loadingText,
		SubmitEnabled: p.SubmitEnabled,
		ErrorVisible:  p.ErrorVisible,
		Error:         p.ErrorMessage,
		ResultVisible: p.ResultVisible,
		Kind:          string(p.Result.Kind),
		Message:       p.Result.Message,
		Rows:          p.Result.Rows,
	}
	if o := p.Result.Outcome; o != nil {
		view.Outcome = &outcomeView{
			Tier:           string(o.Tier),
			Color:          r.tierColor(o.Tier),
			StatusLine:     o.StatusLine,
			DetailsLine:    o.DetailsLine,
			Recommendation: sanitizeServiceText(o.Recommendation),
		}
	}
	return view
}

func (r *Renderer) tierColor(tier display.Tier) string {
	key := TokenChanceLow
	switch tier {
	case display.TierHigh:
		key = TokenChanceHigh
	case display.TierModerate:
		key = TokenChanceModerate
	}
	if r.theme != nil {
		if v := strings.TrimSpace(r.theme.Tokens[key]); v != "" {
			return v
		}
	}
	return defaultTokens[key]
}

type themeView struct {
	Name         string `json:"name"`
	Variant      string `json:"variant"`
	CSSVarsStyle string `json:"css_vars_style"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	return themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		name := strings.TrimSpace(key)
		value := strings.TrimSpace(vars[key])
		if name == "" || value == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
