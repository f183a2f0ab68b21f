package display

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rankpredict/pkg/model"
)

func TestRenderMatchesScenario(t *testing.T) {
	got := Render(model.CollegeMatchList{Predictions: []model.CollegeMatch{{
		InstituteName: "IIT X",
		Branch:        "CSE",
		Probability:   72.35,
		OpeningRank:   100,
		ClosingRank:   6000,
		Year:          2023,
	}}})

	want := Model{
		Kind: KindMatches,
		Rows: []Row{{
			Institute:   "IIT X",
			Branch:      "CSE",
			Chance:      "72.4%",
			CutoffRange: "100 - 6,000",
			Year:        "2023",
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
	if stats := got.Rows[0].Stats(); stats != "Chance: 72.4% | Cutoff Range: 100 - 6,000 | Year: 2023" {
		t.Fatalf("unexpected stats line %q", stats)
	}
}

func TestRenderMatchesPreservesOrder(t *testing.T) {
	list := model.CollegeMatchList{Predictions: []model.CollegeMatch{
		{InstituteName: "C", Probability: 10},
		{InstituteName: "A", Probability: 90},
		{InstituteName: "B", Probability: 50},
	}}
	got := RenderMatches(list)
	if len(got.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got.Rows))
	}
	var order []string
	for _, row := range got.Rows {
		order = append(order, row.Institute)
	}
	if diff := cmp.Diff([]string{"C", "A", "B"}, order); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderMatchesEmpty(t *testing.T) {
	for name, resp := range map[string]model.PredictionResponse{
		"empty slice": model.CollegeMatchList{Predictions: []model.CollegeMatch{}},
		"nil slice":   model.CollegeMatchList{},
	} {
		t.Run(name, func(t *testing.T) {
			got := Render(resp)
			want := Model{Kind: KindEmpty, Message: NoMatchesMessage}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("model mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{NoMatchesMessage}, got.Lines()); diff != "" {
				t.Fatalf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderOutcomeLowChance(t *testing.T) {
	got := Render(model.SingleOutcome{
		Status:               "Low Chance",
		StudentRank:          15000,
		PredictedCutoff:      9000,
		AdmissionProbability: 12.0,
		Recommendation:       "Consider other options",
	})

	want := []string{
		"Status: Low Chance",
		"Your Rank: 15,000 | Predicted Cutoff: 9,000 | Admission Probability: 12%",
		"Recommendation: Consider other options",
	}
	if diff := cmp.Diff(want, got.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if got.Outcome.Tier != TierLow {
		t.Fatalf("expected low tier, got %q", got.Outcome.Tier)
	}
}

func TestRenderOutcomeKeepsProbabilityAsGiven(t *testing.T) {
	got := RenderOutcome(model.SingleOutcome{Status: "High Chance", AdmissionProbability: 85.25})
	if got.Outcome.DetailsLine != "Your Rank: 0 | Predicted Cutoff: 0 | Admission Probability: 85.25%" {
		t.Fatalf("unexpected details line %q", got.Outcome.DetailsLine)
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]Tier{
		"High Chance":     TierHigh,
		"Moderate Chance": TierModerate,
		"Low Chance":      TierLow,
		"Unknown":         TierLow,
		"high chance":     TierLow,
		"":                TierLow,
	}
	for status, want := range cases {
		if got := Classify(status); got != want {
			t.Errorf("Classify(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := map[float64]string{
		72.35: "72.4%",
		72.34: "72.3%",
		0:     "0.0%",
		100:   "100.0%",
		5.05:  "5.1%",
		99.96: "100.0%",
	}
	for in, want := range cases {
		if got := FormatPercent(in); got != want {
			t.Errorf("FormatPercent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatRange(t *testing.T) {
	if got := FormatRange(1234567, 89); got != "1,234,567 - 89" {
		t.Fatalf("unexpected range %q", got)
	}
}

func TestRenderNil(t *testing.T) {
	if !Render(nil).Empty() {
		t.Fatalf("nil response should render nothing")
	}
	var list *model.CollegeMatchList
	if !Render(list).Empty() {
		t.Fatalf("nil pointer should render nothing")
	}
}
