// Package report turns a matcher run into a serialisable document and
// renders it as text, JSON or YAML.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/grammatch/internal/advisor"
	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/matcher"
)

// Report is the outcome of one matcher run over one topic.
type Report struct {
	RunID       string           `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	Topic       TopicInfo        `json:"topic" yaml:"topic"`
	Stats       matcher.Stats    `json:"stats" yaml:"stats"`
	Rules       []RuleEntry      `json:"rules" yaml:"rules"`
	Unmatched   []UnmatchedEntry `json:"unmatched" yaml:"unmatched"`
	Advice      []advisor.Advice `json:"advice,omitempty" yaml:"advice,omitempty"`
}

type TopicInfo struct {
	Slug  string           `json:"slug" yaml:"slug"`
	Title string           `json:"title" yaml:"title"`
	Level curriculum.Level `json:"level" yaml:"level"`
}

// RuleEntry is a rule with the questions mapped to it, in mapping order.
type RuleEntry struct {
	ID        int             `json:"id" yaml:"id"`
	Title     string          `json:"title" yaml:"title"`
	Questions []QuestionEntry `json:"questions" yaml:"questions"`
}

type QuestionEntry struct {
	ID         string  `json:"id" yaml:"id"`
	Board      string  `json:"board,omitempty" yaml:"board,omitempty"`
	Year       int     `json:"year,omitempty" yaml:"year,omitempty"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

// UnmatchedEntry explains a classification failure.
type UnmatchedEntry struct {
	ID               string   `json:"id" yaml:"id"`
	Text             string   `json:"text" yaml:"text"`
	Hints            []string `json:"hints" yaml:"hints"`
	Keywords         []string `json:"keywords" yaml:"keywords"`
	SuggestedRuleIDs []int    `json:"suggested_rule_ids" yaml:"suggested_rule_ids"`
	Confidence       float64  `json:"confidence" yaml:"confidence"`
}

// Build assembles a report for result, which must come from matching rules
// against questions. Rules keep input order; questions unknown to result
// are skipped.
func Build(topic curriculum.Topic, rules []curriculum.Rule, questions []curriculum.Question, result matcher.Result) Report {
	r := Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Topic:       TopicInfo{Slug: topic.Slug, Title: topic.Title, Level: topic.Level},
		Stats:       matcher.ComputeStats(result),
		Rules:       make([]RuleEntry, 0, len(rules)),
		Unmatched:   make([]UnmatchedEntry, 0, len(result.Unmatched)),
	}

	for _, rule := range rules {
		entry := RuleEntry{ID: rule.ID, Title: rule.Title, Questions: []QuestionEntry{}}
		for _, q := range matcher.QuestionsForRule(rule.ID, result.Mapping, questions) {
			a, _ := result.AnalysisFor(q.ID)
			entry.Questions = append(entry.Questions, QuestionEntry{
				ID:         q.ID,
				Board:      q.Board,
				Year:       q.Year,
				Confidence: a.Confidence,
			})
		}
		r.Rules = append(r.Rules, entry)
	}

	byID := make(map[string]curriculum.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	for _, id := range result.Unmatched {
		q, ok := byID[id]
		if !ok {
			continue
		}
		a, _ := result.AnalysisFor(id)
		r.Unmatched = append(r.Unmatched, UnmatchedEntry{
			ID:               id,
			Text:             q.Text,
			Hints:            nonNil(a.Hints),
			Keywords:         nonNil(a.Keywords),
			SuggestedRuleIDs: nonNilInts(a.SuggestedRuleIDs),
			Confidence:       a.Confidence,
		})
	}
	return r
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilInts(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
