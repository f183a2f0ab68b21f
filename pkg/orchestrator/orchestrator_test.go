package orchestrator_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-rankpredict/internal/logger"
	"github.com/goliatone/go-rankpredict/internal/metrics"
	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/orchestrator"
	"github.com/goliatone/go-rankpredict/pkg/render"
	"github.com/goliatone/go-rankpredict/pkg/surface"
	"github.com/goliatone/go-rankpredict/pkg/testsupport"
)

func newOrchestrator(t *testing.T, svc *testsupport.Service, opts ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()
	base := []orchestrator.Option{
		orchestrator.WithBaseURL(svc.URL),
		orchestrator.WithHTTPClient(svc.Client()),
		orchestrator.WithLogger(logger.NewTestLogger(t)),
		orchestrator.WithRequestIDs(func() string { return "req-1" }),
	}
	return orchestrator.New(append(base, opts...)...)
}

func TestSpecificFlowEndToEnd(t *testing.T) {
	ctx := testsupport.Context()
	svc := testsupport.NewService(t)
	orch := newOrchestrator(t, svc)

	spec, err := orch.FormSpec(model.FlowSpecific)
	require.NoError(t, err)
	mem := surface.NewMemory(spec)
	ctrl, err := orch.NewFlow(ctx, model.FlowSpecific, mem.Controls(), mem)
	require.NoError(t, err)
	require.NoError(t, ctrl.Start(ctx))

	institutes, _ := mem.Select("institute_type")
	want := []surface.Option{
		{Value: "", Label: "-- Select Institute Type --"},
		{Value: "IIT", Label: "IIT"},
		{Value: "NIT", Label: "NIT"},
	}
	if diff := cmp.Diff(want, institutes.Options()); diff != "" {
		t.Fatalf("institute_type options mismatch (-want +got):\n%s", diff)
	}

	values := map[string]string{
		"rank":           "15000",
		"year":           "2024",
		"round":          "6",
		"is_pwd":         "0",
		"institute_type": "NIT",
		"quota":          "OS",
		"category":       "OPEN",
		"gender":         "Gender-Neutral",
		"institute_name": "National Institute of Technology Calicut",
		"branch":         "Computer Science and Engineering",
	}
	for name, value := range values {
		require.NoError(t, mem.Set(name, value), name)
	}

	state, err := ctrl.Submit(ctx)
	require.NoError(t, err)
	require.Equal(t, model.PhaseSuccess, state.Phase())

	requests := svc.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "/api/ml-options", requests[0].Path)
	post := requests[1]
	assert.Equal(t, http.MethodPost, post.Method)
	assert.Equal(t, "/api/predict-specific", post.Path)
	assert.Equal(t, "req-1", post.RequestID)
	assert.Equal(t, float64(15000), post.Body["rank"])
	assert.Equal(t, float64(0), post.Body["is_pwd"])
	assert.Equal(t, "Computer Science and Engineering", post.Body["branch"])

	last, _ := mem.Last()
	out, err := orch.Render(ctx, "", render.Page{Presentation: last})
	require.NoError(t, err)
	assert.Equal(t, "Status: Low Chance [-]\n"+
		"Your Rank: 15,000 | Predicted Cutoff: 9,000 | Admission Probability: 12%\n"+
		"Recommendation: Consider other options\n", string(out))
}

func TestListFlowRendersEveryFormat(t *testing.T) {
	ctx := testsupport.Context()
	svc := testsupport.NewService(t)
	recorder := metrics.New()
	orch := newOrchestrator(t, svc, orchestrator.WithMetrics(recorder))

	spec, err := orch.FormSpec(model.FlowList)
	require.NoError(t, err)
	mem := surface.NewMemory(spec)
	ctrl, err := orch.NewFlow(ctx, model.FlowList, mem.Controls(), mem)
	require.NoError(t, err)
	require.NoError(t, ctrl.Start(ctx))
	require.NoError(t, mem.Set("rank", "15000"))
	require.NoError(t, mem.Set("category", "OBC-NCL"))

	_, err = ctrl.Submit(ctx)
	require.NoError(t, err)

	last, _ := mem.Last()
	page := render.Page{Flow: spec, Form: mem.Controls().FormState(), Options: ctrl.Options(), Presentation: last}

	assert.ElementsMatch(t, []string{"html", "json", "text"}, orch.Registry().List())
	for _, name := range orch.Registry().List() {
		out, err := orch.Render(ctx, name, page)
		require.NoError(t, err, name)
		assert.Contains(t, string(out), "72.4%", name)
		assert.Contains(t, string(out), "100 - 6,000", name)
	}
}

func TestSchemaMismatchFromContract(t *testing.T) {
	ctx := testsupport.Context()
	svc := testsupport.NewService(t)
	svc.Reply("POST /api/predict-specific", http.StatusOK, `{"status":"High Chance","student_rank":"a lot"}`)
	orch := newOrchestrator(t, svc)

	spec, err := orch.FormSpec(model.FlowSpecific)
	require.NoError(t, err)
	mem := surface.NewMemory(spec)
	ctrl, err := orch.NewFlow(ctx, model.FlowSpecific, mem.Controls(), mem)
	require.NoError(t, err)

	state, err := ctrl.Submit(ctx)
	var schemaErr *model.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "predictSpecific", schemaErr.Op)
	assert.Equal(t, "Prediction failed.", state.Message())
}

func TestNullFieldsRenderAsZero(t *testing.T) {
	ctx := testsupport.Context()
	svc := testsupport.NewService(t)
	svc.Reply("GET /api/options", http.StatusOK, `{"categories":null}`)
	svc.Reply("POST /api/predict", http.StatusOK,
		`{"predictions":[{"institute_name":"IIT X","branch":"CSE","probability":72.35,"opening_rank":null,"closing_rank":6000,"year":2023}]}`)
	orch := newOrchestrator(t, svc)

	spec, err := orch.FormSpec(model.FlowList)
	require.NoError(t, err)
	mem := surface.NewMemory(spec)
	ctrl, err := orch.NewFlow(ctx, model.FlowList, mem.Controls(), mem)
	require.NoError(t, err)
	require.NoError(t, ctrl.Start(ctx))

	categories, _ := mem.Select("category")
	assert.Equal(t, []surface.Option{{Value: "", Label: "Select Your Category"}}, categories.Options())

	require.NoError(t, mem.Set("rank", "15000"))
	state, err := ctrl.Submit(ctx)
	require.NoError(t, err)
	require.Equal(t, model.PhaseSuccess, state.Phase())

	last, _ := mem.Last()
	require.Len(t, last.Result.Rows, 1)
	assert.Equal(t, "0 - 6,000", last.Result.Rows[0].CutoffRange)
}

func TestStrictValidationSkipsTheService(t *testing.T) {
	ctx := testsupport.Context()
	svc := testsupport.NewService(t)
	orch := newOrchestrator(t, svc, orchestrator.WithStrictValidation())

	spec, err := orch.FormSpec(model.FlowList)
	require.NoError(t, err)
	mem := surface.NewMemory(spec)
	ctrl, err := orch.NewFlow(ctx, model.FlowList, mem.Controls(), mem)
	require.NoError(t, err)
	require.NoError(t, mem.Set("rank", "0"))

	state, err := ctrl.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, "rank must be positive", state.Message())
	assert.Empty(t, svc.Requests())
}

func TestRenderUnknownFormat(t *testing.T) {
	orch := orchestrator.New()
	_, err := orch.Render(testsupport.Context(), "pdf", render.Page{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), `renderer "pdf"`), err.Error())
}

func TestFormSpecUnknownFlow(t *testing.T) {
	_, err := orchestrator.New().FormSpec(model.FlowKind("bulk"))
	require.Error(t, err)
}
