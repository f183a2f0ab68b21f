// Package request turns raw form values into typed prediction requests.
package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-rankpredict/pkg/model"
)

// Option customises a Builder.
type Option func(*Builder)

// WithStrictValidation rejects requests the service would refuse anyway
// (non-positive rank, is_pwd outside 0/1, unparseable numbers) before they
// are sent.
func WithStrictValidation() Option {
	return func(b *Builder) {
		b.strict = true
	}
}

// Builder reads FormState into PredictionRequests. It holds no state besides
// its options and is safe for concurrent use.
type Builder struct {
	strict bool
}

// NewBuilder constructs a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// RankCategory builds the list-flow request.
func (b *Builder) RankCategory(form model.FormState) (model.RankCategoryRequest, error) {
	req := model.RankCategoryRequest{
		Rank:     ParseInt(form.Value("rank")),
		Category: form.Value("category"),
	}
	if b.strict {
		var verr ValidationError
		verr.checkRank(req.Rank)
		if err := verr.result(); err != nil {
			return model.RankCategoryRequest{}, err
		}
	}
	return req, nil
}

// Specific builds the specific-flow request.
func (b *Builder) Specific(form model.FormState) (model.SpecificRequest, error) {
	req := model.SpecificRequest{
		Rank:          ParseInt(form.Value("rank")),
		Year:          ParseInt(form.Value("year")),
		Round:         ParseInt(form.Value("round")),
		IsPWD:         ParseInt(form.Value("is_pwd")),
		InstituteType: form.Value("institute_type"),
		Quota:         form.Value("quota"),
		Category:      form.Value("category"),
		Gender:        form.Value("gender"),
		InstituteName: form.Value("institute_name"),
		Branch:        form.Value("branch"),
	}
	if b.strict {
		var verr ValidationError
		verr.checkRank(req.Rank)
		verr.checkValid("year", req.Year)
		verr.checkValid("round", req.Round)
		if !req.IsPWD.Valid || (req.IsPWD.Value != 0 && req.IsPWD.Value != 1) {
			verr.add("is_pwd", "is_pwd must be 0 or 1")
		}
		if err := verr.result(); err != nil {
			return model.SpecificRequest{}, err
		}
	}
	return req, nil
}

// Build dispatches on kind.
func (b *Builder) Build(kind model.FlowKind, form model.FormState) (model.PredictionRequest, error) {
	var (
		req model.PredictionRequest
		err error
	)
	switch kind {
	case model.FlowList:
		req, err = b.RankCategory(form)
	case model.FlowSpecific:
		req, err = b.Specific(form)
	default:
		return nil, fmt.Errorf("request: unknown flow %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ParseInt reads a base-10 integer prefix the way a lenient form parser
// does: leading whitespace and an optional sign are accepted, parsing stops
// at the first non-digit, and input without any leading digit is invalid.
func ParseInt(raw string) model.Int {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return model.InvalidInt()
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return model.InvalidInt()
	}
	return model.IntOf(v)
}
