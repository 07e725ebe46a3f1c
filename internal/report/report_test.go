package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/grammatch/internal/advisor"
	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/matcher"
)

func modifiersReport(t *testing.T) (Report, matcher.Result) {
	t.Helper()
	topic, err := curriculum.GetTopic("modifiers")
	if err != nil {
		t.Fatal(err)
	}
	res := matcher.Match(topic.Rules, topic.Questions, matcher.DefaultWeights())
	return Build(topic, topic.Rules, topic.Questions, res), res
}

func TestBuild(t *testing.T) {
	r, res := modifiersReport(t)

	if _, err := uuid.Parse(r.RunID); err != nil {
		t.Errorf("run id %q is not a uuid: %v", r.RunID, err)
	}
	if r.GeneratedAt.IsZero() {
		t.Error("expected a timestamp")
	}
	if r.Topic.Slug != "modifiers" || r.Topic.Level != curriculum.LevelHSC {
		t.Errorf("unexpected topic info %+v", r.Topic)
	}
	if r.Stats != matcher.ComputeStats(res) {
		t.Errorf("stats = %+v, want %+v", r.Stats, matcher.ComputeStats(res))
	}
	if len(r.Rules) != 14 {
		t.Fatalf("expected 14 rule entries, got %d", len(r.Rules))
	}

	for _, rule := range r.Rules {
		if len(rule.Questions) != len(res.Mapping[rule.ID]) {
			t.Errorf("rule %d: %d questions, mapping has %d", rule.ID, len(rule.Questions), len(res.Mapping[rule.ID]))
		}
		for i, q := range rule.Questions {
			if q.ID != res.Mapping[rule.ID][i] {
				t.Errorf("rule %d question %d = %s, want mapping order %s", rule.ID, i, q.ID, res.Mapping[rule.ID][i])
			}
		}
	}

	var ids []string
	for _, u := range r.Unmatched {
		ids = append(ids, u.ID)
		if u.Text == "" {
			t.Errorf("%s: missing text", u.ID)
		}
	}
	if strings.Join(ids, ",") != strings.Join(res.Unmatched, ",") {
		t.Errorf("unmatched = %v, want %v", ids, res.Unmatched)
	}
}

func TestBuildRunIDsDiffer(t *testing.T) {
	a, _ := modifiersReport(t)
	b, _ := modifiersReport(t)
	if a.RunID == b.RunID {
		t.Error("expected a fresh run id per build")
	}
}

func TestBuildEmpty(t *testing.T) {
	r := Build(curriculum.Topic{Slug: "empty"}, nil, nil, matcher.Match(nil, nil, matcher.DefaultWeights()))
	if r.Rules == nil || r.Unmatched == nil {
		t.Error("expected empty, non-nil slices")
	}
	if r.Stats.TotalQuestions != 0 {
		t.Errorf("expected no questions, got %d", r.Stats.TotalQuestions)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	r, _ := modifiersReport(t)
	var buf bytes.Buffer
	if err := Write(&buf, r, FormatJSON); err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, key := range []string{"run_id", "generated_at", "topic", "stats", "rules", "unmatched"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if _, ok := got["advice"]; ok {
		t.Error("advice should be omitted when empty")
	}
}

func TestWriteYAML(t *testing.T) {
	r, _ := modifiersReport(t)
	var buf bytes.Buffer
	if err := Write(&buf, r, FormatYAML); err != nil {
		t.Fatal(err)
	}

	var got struct {
		RunID string `yaml:"run_id"`
		Stats struct {
			Total int `yaml:"total_questions"`
		} `yaml:"stats"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if got.RunID != r.RunID {
		t.Errorf("run_id = %q, want %q", got.RunID, r.RunID)
	}
	if got.Stats.Total != r.Stats.TotalQuestions {
		t.Errorf("total = %d, want %d", got.Stats.Total, r.Stats.TotalQuestions)
	}
}

func TestWriteText(t *testing.T) {
	r, _ := modifiersReport(t)
	r.Advice = []advisor.Advice{
		{QuestionID: "mod-sylhet-2018-b", Suggestion: &advisor.Suggestion{RuleID: intPtr(3), Confidence: 0.8, Reasoning: "adverb before adjective"}},
		{QuestionID: "mod-chattogram-2016-a", Err: "rate limited"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, r, FormatText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Unmatched (2)",
		"mod-sylhet-2018-b",
		"mod-barishal-2017-a",
		"rule 3",
		"error: rate limited",
		"avg confidence",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestWriteAdviceRuleZero(t *testing.T) {
	r, _ := modifiersReport(t)
	r.Advice = []advisor.Advice{
		{QuestionID: "q-zero", Suggestion: &advisor.Suggestion{RuleID: intPtr(0), Confidence: 0.6, Reasoning: "gerund as subject"}},
		{QuestionID: "q-none", Suggestion: &advisor.Suggestion{Confidence: 0.1, Reasoning: "no instruction"}},
	}

	var text bytes.Buffer
	if err := Write(&text, r, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text.String(), "q-zero → rule 0") {
		t.Errorf("rule 0 should be reported as a suggestion:\n%s", text.String())
	}
	if !strings.Contains(text.String(), "no rule fits") {
		t.Errorf("missing suggestion should read as no rule:\n%s", text.String())
	}

	var buf bytes.Buffer
	if err := Write(&buf, r, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Advice []struct {
			Suggestion map[string]any `json:"suggestion"`
		} `json:"advice"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got.Advice) != 2 {
		t.Fatalf("advice entries = %d, want 2", len(got.Advice))
	}
	if id, ok := got.Advice[0].Suggestion["rule_id"]; !ok || id != float64(0) {
		t.Errorf("rule_id = %v (present %v), want 0", id, ok)
	}
	if id, ok := got.Advice[1].Suggestion["rule_id"]; !ok || id != nil {
		t.Errorf("rule_id = %v (present %v), want null", id, ok)
	}
}

func intPtr(n int) *int { return &n }

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Report{}, Format("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}
