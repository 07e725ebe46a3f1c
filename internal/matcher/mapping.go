package matcher

import (
	"context"

	"github.com/abhisek/grammatch/internal/curriculum"
)

// Mapping links rule ids to the question ids accepted for them.
type Mapping map[int][]string

// Result bundles one matcher run.
type Result struct {
	Analyses  []Analysis `json:"analyses" yaml:"analyses"`
	Mapping   Mapping    `json:"mapping" yaml:"mapping"`
	Unmatched []string   `json:"unmatched" yaml:"unmatched"`
}

// Match analyzes questions against rules and assembles the mapping and the
// unmatched list.
func Match(rules []curriculum.Rule, questions []curriculum.Question, w Weights) Result {
	return assemble(rules, Analyze(rules, questions, w), w)
}

func assemble(rules []curriculum.Rule, analyses []Analysis, w Weights) Result {
	return Result{
		Analyses:  analyses,
		Mapping:   BuildMapping(rules, analyses, w),
		Unmatched: Unmatched(analyses, w),
	}
}

// MatchConcurrent is Match using AnalyzeConcurrent.
func MatchConcurrent(ctx context.Context, rules []curriculum.Rule, questions []curriculum.Question, w Weights, workers int) (Result, error) {
	analyses, err := AnalyzeConcurrent(ctx, rules, questions, w, workers)
	if err != nil {
		return Result{}, err
	}
	return assemble(rules, analyses, w), nil
}

// BuildMapping places every accepted question under each rule it suggests.
// Every input rule id gets a list, possibly empty. Question ids appear once
// per rule, in analysis order.
func BuildMapping(rules []curriculum.Rule, analyses []Analysis, w Weights) Mapping {
	m := make(Mapping, len(rules))
	for _, r := range rules {
		m[r.ID] = []string{}
	}
	if len(rules) == 0 {
		return m
	}

	seen := make(map[int]map[string]bool, len(rules))
	for _, a := range analyses {
		if !a.Matched(w) {
			continue
		}
		for _, id := range a.SuggestedRuleIDs {
			list, ok := m[id]
			if !ok {
				continue
			}
			if seen[id] == nil {
				seen[id] = make(map[string]bool)
			}
			if seen[id][a.QuestionID] {
				continue
			}
			seen[id][a.QuestionID] = true
			m[id] = append(list, a.QuestionID)
		}
	}
	return m
}

// Unmatched returns the ids of questions with no suggestion or with a
// confidence at or below the acceptance threshold, in analysis order.
func Unmatched(analyses []Analysis, w Weights) []string {
	ids := []string{}
	for _, a := range analyses {
		if !a.Matched(w) {
			ids = append(ids, a.QuestionID)
		}
	}
	return ids
}

// QuestionsForRule resolves the question ids mapped to ruleID, keeping
// mapping order. Unknown rule or question ids yield nothing.
func QuestionsForRule(ruleID int, m Mapping, questions []curriculum.Question) []curriculum.Question {
	out := []curriculum.Question{}
	ids, ok := m[ruleID]
	if !ok || len(ids) == 0 {
		return out
	}
	byID := make(map[string]curriculum.Question, len(questions))
	for _, q := range questions {
		if _, dup := byID[q.ID]; !dup {
			byID[q.ID] = q
		}
	}
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out
}

// AnalysisFor returns the analysis of questionID, if present.
func (r Result) AnalysisFor(questionID string) (Analysis, bool) {
	for _, a := range r.Analyses {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return Analysis{}, false
}
