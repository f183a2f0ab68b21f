package jsonview

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-rankpredict/pkg/formspec"
	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/render"
	"github.com/goliatone/go-rankpredict/pkg/surface"
)

func TestRenderOutcome(t *testing.T) {
	page := render.Page{
		Flow: formspec.Flow{Kind: model.FlowSpecific},
		Form: model.FormState{"rank": "15000"},
		Presentation: surface.Derive(model.Succeeded(model.SingleOutcome{
			Status:               "High Chance",
			StudentRank:          1200,
			PredictedCutoff:      2500,
			AdmissionProbability: 91.5,
			Recommendation:       "Safe choice",
		})),
	}

	out, err := New(WithIndent("  ")).Render(context.Background(), page)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "specific", doc["flow"])
	assert.Equal(t, "success", doc["phase"])

	presentation := doc["presentation"].(map[string]any)
	assert.Equal(t, true, presentation["result_visible"])
	outcome := presentation["result"].(map[string]any)["outcome"].(map[string]any)
	assert.Equal(t, "high", outcome["tier"])
	assert.Equal(t, "Your Rank: 1,200 | Predicted Cutoff: 2,500 | Admission Probability: 91.5%", outcome["details_line"])
}

func TestRenderError(t *testing.T) {
	out, err := New().Render(context.Background(), render.Page{
		Flow:         formspec.Flow{Kind: model.FlowList},
		Presentation: surface.Derive(model.Failed("rank must be positive")),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"flow": "list",
		"phase": "error",
		"presentation": {
			"loading": false,
			"submit_enabled": true,
			"error_visible": true,
			"error": "rank must be positive",
			"result_visible": false,
			"result": {"kind": ""}
		}
	}`, string(out))
}
