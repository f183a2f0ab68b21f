package text

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rankpredict/pkg/formspec"
	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/render"
	"github.com/goliatone/go-rankpredict/pkg/surface"
	"github.com/goliatone/go-rankpredict/pkg/testsupport"
)

func renderPage(t *testing.T, r *Renderer, page render.Page) string {
	t.Helper()
	out, err := r.Render(context.Background(), page)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderOutcome(t *testing.T) {
	page := render.Page{
		Presentation: surface.Derive(model.Succeeded(model.SingleOutcome{
			Status:               "Low Chance",
			StudentRank:          15000,
			PredictedCutoff:      9000,
			AdmissionProbability: 12,
			Recommendation:       "Consider other options",
		})),
	}
	want := "Status: Low Chance [-]\n" +
		"Your Rank: 15,000 | Predicted Cutoff: 9,000 | Admission Probability: 12%\n" +
		"Recommendation: Consider other options\n"
	if diff := cmp.Diff(want, renderPage(t, New(), page)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderMatchesWithForm(t *testing.T) {
	flow, _ := formspec.MustDefault().Flow(model.FlowList)
	page := render.Page{
		Flow: flow,
		Form: model.FormState{"rank": "15000"},
		Presentation: surface.Derive(model.Succeeded(model.CollegeMatchList{Predictions: []model.CollegeMatch{
			{InstituteName: "IIT X", Branch: "CSE", Probability: 72.35, OpeningRank: 100, ClosingRank: 6000, Year: 2023},
		}})),
	}
	want := "College Predictor\n=================\n\n" +
		"Your Rank: 15000\nCategory: -\n\n" +
		"IIT X\n  CSE\n  Chance: 72.4% | Cutoff Range: 100 - 6,000 | Year: 2023\n"
	if diff := cmp.Diff(want, renderPage(t, New(WithForm()), page)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderLoadingAndError(t *testing.T) {
	r := New(WithLoadingText("Working"))
	if got := renderPage(t, r, render.Page{Presentation: surface.Derive(model.Loading())}); got != "Working\n" {
		t.Fatalf("unexpected loading output %q", got)
	}
	if got := renderPage(t, r, render.Page{Presentation: surface.Derive(model.Failed("Prediction failed."))}); got != "Error: Prediction failed.\n" {
		t.Fatalf("unexpected error output %q", got)
	}
	if got := renderPage(t, r, render.Page{Presentation: surface.Derive(model.Succeeded(model.CollegeMatchList{}))}); got != "No suitable recommendations found for your rank and category.\n" {
		t.Fatalf("unexpected empty output %q", got)
	}
}

func TestRenderGolden(t *testing.T) {
	store := formspec.MustDefault()
	list, _ := store.Flow(model.FlowList)
	specific, _ := store.Flow(model.FlowSpecific)

	cases := []struct {
		name   string
		golden string
		page   render.Page
	}{
		{
			name:   "list matches",
			golden: "list_matches.golden.txt",
			page: render.Page{
				Flow: list,
				Form: model.FormState{"rank": "15000", "category": "OPEN"},
				Presentation: surface.Derive(model.Succeeded(model.CollegeMatchList{Predictions: []model.CollegeMatch{
					{InstituteName: "IIT X", Branch: "CSE", Probability: 72.35, OpeningRank: 100, ClosingRank: 6000, Year: 2023},
					{InstituteName: "NIT Y", Branch: "Mechanical Engineering", Probability: 5, OpeningRank: 12000, ClosingRank: 15500, Year: 2022},
				}})),
			},
		},
		{
			name:   "specific outcome",
			golden: "specific_outcome.golden.txt",
			page: render.Page{
				Flow: specific,
				Form: model.FormState{
					"rank": "15000", "year": "2024", "round": "6", "is_pwd": "0",
					"institute_type": "NIT", "quota": "OS", "category": "OPEN", "gender": "Gender-Neutral",
				},
				Presentation: surface.Derive(model.Succeeded(model.SingleOutcome{
					Status:               "High Chance",
					StudentRank:          15000,
					PredictedCutoff:      21500,
					AdmissionProbability: 88.5,
					Recommendation:       "Safe choice",
				})),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := renderPage(t, New(WithForm()), tc.page)
			path := filepath.Join("testdata", tc.golden)
			if testsupport.WriteMaybeGolden(t, path, []byte(got)) {
				return
			}
			want := testsupport.MustReadGoldenString(t, path)
			if diff := testsupport.CompareGolden(want, got); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
