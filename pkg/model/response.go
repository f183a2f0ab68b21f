package model

// PredictionResponse is the tagged response variant: CollegeMatchList for the
// list flow, SingleOutcome for the specific flow.
type PredictionResponse interface {
	Flow() FlowKind
	isPredictionResponse()
}

// CollegeMatch is one candidate seat returned by the list flow.
type CollegeMatch struct {
	InstituteName string  `json:"institute_name"`
	Branch        string  `json:"branch"`
	Probability   float64 `json:"probability"`
	OpeningRank   Whole   `json:"opening_rank"`
	ClosingRank   Whole   `json:"closing_rank"`
	Year          Whole   `json:"year"`
}

// CollegeMatchList keeps the service's ranking; it is never re-sorted.
type CollegeMatchList struct {
	Predictions []CollegeMatch `json:"predictions"`
}

func (CollegeMatchList) Flow() FlowKind       { return FlowList }
func (CollegeMatchList) isPredictionResponse() {}

// Known SingleOutcome statuses. The set is open: other strings are valid and
// render with the low-chance treatment.
const (
	StatusHighChance     = "High Chance"
	StatusModerateChance = "Moderate Chance"
	StatusLowChance      = "Low Chance"
)

// SingleOutcome is the specific-flow verdict.
type SingleOutcome struct {
	Status               string  `json:"status"`
	StudentRank          Whole   `json:"student_rank"`
	PredictedCutoff      Whole   `json:"predicted_cutoff"`
	AdmissionProbability float64 `json:"admission_probability"`
	Recommendation       string  `json:"recommendation"`
}

func (SingleOutcome) Flow() FlowKind       { return FlowSpecific }
func (SingleOutcome) isPredictionResponse() {}
