// Package contract loads the OpenAPI description of the prediction service
// and exposes, per operation, its endpoint and a compiled JSON Schema for the
// success body.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/xeipuuv/gojsonschema"

	"github.com/goliatone/go-rankpredict/pkg/model"
)

// Operation ids defined by the embedded contract.
const (
	OpListOptions     = "getOptions"
	OpListPredict     = "predict"
	OpSpecificOptions = "getSpecificOptions"
	OpSpecificPredict = "predictSpecific"
)

//go:embed predictor.openapi.yaml
var embeddedDocument []byte

// Document returns the raw embedded OpenAPI document.
func Document() []byte {
	return append([]byte(nil), embeddedDocument...)
}

// Operation is one endpoint of the service.
type Operation struct {
	ID     string
	Method string
	Path   string

	success *gojsonschema.Schema
}

// Contract indexes operations by id.
type Contract struct {
	operations map[string]Operation
}

// Load parses the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	return LoadFromData(ctx, embeddedDocument)
}

// LoadFromData parses and validates an OpenAPI document and compiles the
// success response schemas.
func LoadFromData(ctx context.Context, data []byte) (*Contract, error) {
	if len(data) == 0 {
		return nil, errors.New("contract: document is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("contract: document does not contain any paths")
	}

	c := &Contract{operations: make(map[string]Operation)}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil || op.OperationID == "" {
				continue
			}
			compiled, err := successSchema(op.Responses)
			if err != nil {
				return nil, fmt.Errorf("contract: operation %s: %w", op.OperationID, err)
			}
			c.operations[op.OperationID] = Operation{
				ID:      op.OperationID,
				Method:  strings.ToUpper(method),
				Path:    path,
				success: compiled,
			}
		}
	}
	return c, nil
}

// Operation looks up an operation by id.
func (c *Contract) Operation(id string) (Operation, bool) {
	if c == nil {
		return Operation{}, false
	}
	op, ok := c.operations[id]
	return op, ok
}

// IDs lists the known operation ids in lexical order.
func (c *Contract) IDs() []string {
	ids := make([]string, 0, len(c.operations))
	for id := range c.operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// URL joins the operation path onto baseURL.
func (o Operation) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + o.Path
}

// ValidateResponse checks a 2xx body against the operation's success schema.
// Bodies that are not JSON at all are left to the decoder.
func (o Operation) ValidateResponse(status int, body []byte) error {
	if o.success == nil || status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil
	}
	if !json.Valid(body) {
		return nil
	}
	result, err := o.success.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &model.SchemaError{Op: o.ID, Reasons: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}
	reasons := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		reasons = append(reasons, desc.String())
	}
	return &model.SchemaError{Op: o.ID, Reasons: reasons}
}

func successSchema(responses *openapi3.Responses) (*gojsonschema.Schema, error) {
	if responses == nil {
		return nil, nil
	}
	ref := responses.Status(http.StatusOK)
	if ref == nil || ref.Value == nil {
		return nil, nil
	}
	mt := ref.Value.Content.Get("application/json")
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(mt.Schema.Value)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	if raw, err = withNullTypes(raw); err != nil {
		return nil, fmt.Errorf("rewrite nullable: %w", err)
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}

// withNullTypes rewrites OpenAPI 3.0 `nullable: true` into a JSON Schema
// type list that admits null, since gojsonschema ignores the keyword.
func withNullTypes(raw []byte) ([]byte, error) {
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, err
	}
	rewriteNullable(schema)
	return json.Marshal(schema)
}

func rewriteNullable(node any) {
	switch v := node.(type) {
	case map[string]any:
		if nullable, _ := v["nullable"].(bool); nullable {
			if t, ok := v["type"].(string); ok {
				v["type"] = []any{t, "null"}
			}
		}
		delete(v, "nullable")
		for key, child := range v {
			if key == "enum" || key == "example" || key == "default" {
				continue
			}
			rewriteNullable(child)
		}
	case []any:
		for _, child := range v {
			rewriteNullable(child)
		}
	}
}
