package template_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-rankpredict/pkg/render/template/gotemplate"
	"github.com/goliatone/go-rankpredict/pkg/testsupport"
)

var templatesFS = fstest.MapFS{
	"hello.tpl":      {Data: []byte(`Hello {{ name }}!`)},
	"use-global.tpl": {Data: []byte(`env={{ settings.env }}`)},
	"use-filter.tpl": {Data: []byte(`{{ name|shout }}`)},
	"rank.tpl":       {Data: []byte(`{{ row.rank|thousands }} / {{ row.label|trim }}`)},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!" || written != result {
		t.Fatalf("unexpected output result=%q written=%q", result, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("register filter: %v", err)
	}

	result, _ := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_DefaultFiltersAndStructData(t *testing.T) {
	engine := newEngine(t)
	type row struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
	}

	result, err := engine.RenderTemplate("rank.tpl", map[string]any{"row": row{Rank: 15000, Label: "  OPEN "}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "15,000 / OPEN" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RenderString(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "x"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "1-x" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
