package model

// PredictionRequest is the tagged request variant. The concrete types are
// RankCategoryRequest and SpecificRequest; both marshal to the exact wire
// body their predict endpoint expects.
type PredictionRequest interface {
	Flow() FlowKind
	isPredictionRequest()
}

// RankCategoryRequest is the list-flow payload.
type RankCategoryRequest struct {
	Rank     Int    `json:"rank"`
	Category string `json:"category"`
}

func (RankCategoryRequest) Flow() FlowKind      { return FlowList }
func (RankCategoryRequest) isPredictionRequest() {}

// SpecificRequest is the specific-flow payload. Field order matches the
// order the service documents.
type SpecificRequest struct {
	Rank          Int    `json:"rank"`
	Year          Int    `json:"year"`
	Round         Int    `json:"round"`
	IsPWD         Int    `json:"is_pwd"`
	InstituteType string `json:"institute_type"`
	Quota         string `json:"quota"`
	Category      string `json:"category"`
	Gender        string `json:"gender"`
	InstituteName string `json:"institute_name"`
	Branch        string `json:"branch"`
}

func (SpecificRequest) Flow() FlowKind      { return FlowSpecific }
func (SpecificRequest) isPredictionRequest() {}
