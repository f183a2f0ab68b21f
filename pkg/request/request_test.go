package request

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rankpredict/pkg/model"
)

func TestParseInt(t *testing.T) {
	cases := map[string]model.Int{
		"15000":    model.IntOf(15000),
		"  42":     model.IntOf(42),
		"-7":       model.IntOf(-7),
		"+8":       model.IntOf(8),
		"12abc":    model.IntOf(12),
		"3.9":      model.IntOf(3),
		"":         model.InvalidInt(),
		"abc":      model.InvalidInt(),
		"-":        model.InvalidInt(),
		" ":        model.InvalidInt(),
		"1e5":      model.IntOf(1),
	}
	for raw, want := range cases {
		if got := ParseInt(raw); got != want {
			t.Errorf("ParseInt(%q) = %v, want %v", raw, got, want)
		}
	}
	if got := ParseInt("99999999999999999999"); got.Valid {
		t.Errorf("overflow should be invalid, got %v", got)
	}
}

func TestRankCategoryBuild(t *testing.T) {
	req, err := NewBuilder().RankCategory(model.FormState{"rank": "15000", "category": "OBC-NCL"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := model.RankCategoryRequest{Rank: model.IntOf(15000), Category: "OBC-NCL"}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestInvalidRankSerialisesAsNull(t *testing.T) {
	req, err := NewBuilder().Build(model.FlowList, model.FormState{"rank": "abc"})
	if err != nil {
		t.Fatalf("non-strict builder must not reject input: %v", err)
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"rank":null,"category":""}` {
		t.Fatalf("unexpected payload %s", data)
	}
}

func TestSpecificBuildCopiesValuesVerbatim(t *testing.T) {
	form := model.FormState{
		"rank":           "15000",
		"year":           "2024",
		"round":          "6",
		"is_pwd":         "0",
		"institute_type": "IIT",
		"quota":          "AI",
		"category":       "GEN",
		"gender":         "Gender-Neutral",
		"institute_name": "Indian Institute of Technology Bombay",
		"branch":         " Computer Science and Engineering ",
	}
	req, err := NewBuilder().Build(model.FlowSpecific, form)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"rank":15000,"year":2024,"round":6,"is_pwd":0,"institute_type":"IIT","quota":"AI","category":"GEN","gender":"Gender-Neutral","institute_name":"Indian Institute of Technology Bombay","branch":" Computer Science and Engineering "}`
	if string(data) != want {
		t.Fatalf("payload mismatch:\nwant %s\ngot  %s", want, data)
	}
}

func TestSpecificBuildUnselected(t *testing.T) {
	req, err := NewBuilder().Specific(model.FormState{"rank": "1"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := model.SpecificRequest{
		Rank:  model.IntOf(1),
		Year:  model.InvalidInt(),
		Round: model.InvalidInt(),
		IsPWD: model.InvalidInt(),
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestStrictValidation(t *testing.T) {
	b := NewBuilder(WithStrictValidation())

	_, err := b.RankCategory(model.FormState{"rank": "0", "category": "GEN"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := model.UserMessage(err, model.MsgPredictionFailed); got != "rank must be positive" {
		t.Fatalf("unexpected user message %q", got)
	}

	_, err = b.Specific(model.FormState{"rank": "10", "year": "2024", "round": "x", "is_pwd": "2"})
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	var fields []string
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	if diff := cmp.Diff([]string{"round", "is_pwd"}, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	if _, err := b.Specific(model.FormState{"rank": "10", "year": "2024", "round": "1", "is_pwd": "1"}); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
}

func TestBuildUnknownFlow(t *testing.T) {
	if _, err := NewBuilder().Build("other", model.FormState{}); err == nil {
		t.Fatalf("expected error for unknown flow")
	}
}
