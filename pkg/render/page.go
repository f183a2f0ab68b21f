package render

import (
	"github.com/goliatone/go-rankpredict/pkg/formspec"
	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/surface"
)

// Page is everything a renderer may show for one flow.
type Page struct {
	Flow         formspec.Flow
	Form         model.FormState
	Options      model.OptionSet
	Presentation surface.Presentation
}

// FieldView is a field with its current value and, for selects, its entries
// as the surface offers them.
type FieldView struct {
	Name        string           `json:"name"`
	Kind        string           `json:"kind"`
	Label       string           `json:"label"`
	Placeholder string           `json:"placeholder,omitempty"`
	HelpText    string           `json:"help_text,omitempty"`
	Value       string           `json:"value"`
	Options     []surface.Option `json:"options,omitempty"`
}

// Fields flattens the page's form in declaration order.
func (p Page) Fields() []FieldView {
	out := make([]FieldView, 0, len(p.Flow.Fields))
	for _, field := range p.Flow.Fields {
		view := FieldView{
			Name:        field.Name,
			Kind:        string(field.Kind),
			Label:       field.Label,
			Placeholder: field.Placeholder,
			HelpText:    field.HelpText,
			Value:       p.Form.Value(field.Name),
		}
		if field.Kind == formspec.KindSelect {
			values := p.Options.Values(field.Name)
			view.Options = make([]surface.Option, 0, len(values)+1)
			view.Options = append(view.Options, surface.Option{Value: "", Label: field.Placeholder})
			for _, v := range values {
				view.Options = append(view.Options, surface.Option{Value: v, Label: v})
			}
		}
		out = append(out, view)
	}
	return out
}
