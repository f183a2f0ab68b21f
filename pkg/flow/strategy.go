package flow

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-rankpredict/pkg/model"
	"github.com/goliatone/go-rankpredict/pkg/request"
)

// Strategy is the per-flow part of a Controller: how the request is built
// from the form and how a success body is decoded.
type Strategy interface {
	Kind() model.FlowKind
	Build(form model.FormState) (model.PredictionRequest, error)
	Decode(body []byte) (model.PredictionResponse, error)
}

// StrategyFor returns the built-in strategy for kind. A nil builder uses the
// default, non-strict one.
func StrategyFor(kind model.FlowKind, builder *request.Builder) (Strategy, error) {
	if builder == nil {
		builder = request.NewBuilder()
	}
	switch kind {
	case model.FlowList:
		return listStrategy{builder: builder}, nil
	case model.FlowSpecific:
		return specificStrategy{builder: builder}, nil
	default:
		return nil, fmt.Errorf("flow: unknown flow %q", kind)
	}
}

type listStrategy struct {
	builder *request.Builder
}

func (listStrategy) Kind() model.FlowKind { return model.FlowList }

func (s listStrategy) Build(form model.FormState) (model.PredictionRequest, error) {
	req, err := s.builder.RankCategory(form)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (listStrategy) Decode(body []byte) (model.PredictionResponse, error) {
	var out model.CollegeMatchList
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type specificStrategy struct {
	builder *request.Builder
}

func (specificStrategy) Kind() model.FlowKind { return model.FlowSpecific }

func (s specificStrategy) Build(form model.FormState) (model.PredictionRequest, error) {
	req, err := s.builder.Specific(form)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (specificStrategy) Decode(body []byte) (model.PredictionResponse, error) {
	var out model.SingleOutcome
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return out, nil
}
