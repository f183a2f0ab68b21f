// Package display projects prediction responses into a display model. It is
// pure: the same response always yields the same model, and no surface is
// touched.
package display

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-rankpredict/pkg/model"
)

// NoMatchesMessage is shown when the list flow returns no candidates.
const NoMatchesMessage = "No suitable recommendations found for your rank and category."

// Kind selects which part of Model is populated.
type Kind string

const (
	KindNone    Kind = ""
	KindEmpty   Kind = "empty"
	KindMatches Kind = "matches"
	KindOutcome Kind = "outcome"
)

// Tier is the visual classification of a SingleOutcome status.
type Tier string

const (
	TierHigh     Tier = "high"
	TierModerate Tier = "moderate"
	TierLow      Tier = "low"
)

// Model is what a surface shows in its result area.
type Model struct {
	Kind    Kind     `json:"kind"`
	Message string   `json:"message,omitempty"`
	Rows    []Row    `json:"rows,omitempty"`
	Outcome *Outcome `json:"outcome,omitempty"`
}

// Row is one candidate of the list flow, already formatted.
type Row struct {
	Institute   string `json:"institute"`
	Branch      string `json:"branch"`
	Chance      string `json:"chance"`
	CutoffRange string `json:"cutoff_range"`
	Year        string `json:"year"`
}

// Stats is the summary line shown under the institute and branch.
func (r Row) Stats() string {
	return "Chance: " + r.Chance + " | Cutoff Range: " + r.CutoffRange + " | Year: " + r.Year
}

// Outcome is the formatted specific-flow verdict.
type Outcome struct {
	Status         string `json:"status"`
	Tier           Tier   `json:"tier"`
	StatusLine     string `json:"status_line"`
	DetailsLine    string `json:"details_line"`
	Recommendation string `json:"recommendation"`
	// RecommendationLine is Recommendation with its label.
	RecommendationLine string `json:"recommendation_line"`
}

// Empty reports whether nothing is to be shown.
func (m Model) Empty() bool {
	return m.Kind == KindNone
}

// Lines flattens the model into plain text, one entry per visual line.
func (m Model) Lines() []string {
	switch m.Kind {
	case KindEmpty:
		return []string{m.Message}
	case KindMatches:
		lines := make([]string, 0, len(m.Rows)*3)
		for _, row := range m.Rows {
			lines = append(lines, row.Institute, row.Branch, row.Stats())
		}
		return lines
	case KindOutcome:
		if m.Outcome == nil {
			return nil
		}
		return []string{m.Outcome.StatusLine, m.Outcome.DetailsLine, m.Outcome.RecommendationLine}
	default:
		return nil
	}
}

// String joins Lines with newlines.
func (m Model) String() string {
	return strings.Join(m.Lines(), "\n")
}

// Render dispatches on the response variant. A nil response renders nothing.
func Render(resp model.PredictionResponse) Model {
	switch r := resp.(type) {
	case model.CollegeMatchList:
		return RenderMatches(r)
	case *model.CollegeMatchList:
		if r == nil {
			return Model{}
		}
		return RenderMatches(*r)
	case model.SingleOutcome:
		return RenderOutcome(r)
	case *model.SingleOutcome:
		if r == nil {
			return Model{}
		}
		return RenderOutcome(*r)
	default:
		return Model{}
	}
}

// RenderMatches keeps the service order; it never sorts.
func RenderMatches(list model.CollegeMatchList) Model {
	if len(list.Predictions) == 0 {
		return Model{Kind: KindEmpty, Message: NoMatchesMessage}
	}
	rows := make([]Row, 0, len(list.Predictions))
	for _, match := range list.Predictions {
		rows = append(rows, Row{
			Institute:   match.InstituteName,
			Branch:      match.Branch,
			Chance:      FormatPercent(match.Probability),
			CutoffRange: FormatRange(match.OpeningRank, match.ClosingRank),
			Year:        strconv.FormatInt(int64(match.Year), 10),
		})
	}
	return Model{Kind: KindMatches, Rows: rows}
}

func RenderOutcome(outcome model.SingleOutcome) Model {
	return Model{
		Kind: KindOutcome,
		Outcome: &Outcome{
			Status:     outcome.Status,
			Tier:       Classify(outcome.Status),
			StatusLine: "Status: " + outcome.Status,
			DetailsLine: "Your Rank: " + humanize.Comma(int64(outcome.StudentRank)) +
				" | Predicted Cutoff: " + humanize.Comma(int64(outcome.PredictedCutoff)) +
				" | Admission Probability: " + formatNumber(outcome.AdmissionProbability) + "%",
			Recommendation:     outcome.Recommendation,
			RecommendationLine: "Recommendation: " + outcome.Recommendation,
		},
	}
}

// Classify matches status exactly; anything unrecognised is low.
func Classify(status string) Tier {
	switch status {
	case model.StatusHighChance:
		return TierHigh
	case model.StatusModerateChance:
		return TierModerate
	default:
		return TierLow
	}
}

// FormatPercent renders v with one decimal and a percent sign. Rounding is
// half away from zero on the shortest decimal form of v, so 72.35 becomes
// "72.4%".
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64) + "%"
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	if !ok {
		return strconv.FormatFloat(v, 'f', 1, 64) + "%"
	}
	return r.FloatString(1) + "%"
}

// FormatRange renders "opening - closing" with thousands grouping.
func FormatRange(opening, closing model.Whole) string {
	return humanize.Comma(int64(opening)) + " - " + humanize.Comma(int64(closing))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
