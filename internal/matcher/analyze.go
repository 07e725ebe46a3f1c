// Package matcher links free-text practice questions to the grammar rules
// they exercise. It reads the instructional hints a question carries in
// parentheses, extracts grammar keywords from them, and scores every rule by
// title and description overlap plus fixed pattern bonuses.
//
// All functions are pure: the same rules, questions and weights always give
// the same result, and data problems degrade to "no match" rather than
// errors.
package matcher

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/abhisek/grammatch/internal/curriculum"
	"golang.org/x/sync/errgroup"
)

// Analysis is the matcher's reading of a single question.
type Analysis struct {
	QuestionID       string   `json:"question_id" yaml:"question_id"`
	Hints            []string `json:"hints" yaml:"hints"`
	Keywords         []string `json:"keywords" yaml:"keywords"`
	SuggestedRuleIDs []int    `json:"suggested_rule_ids" yaml:"suggested_rule_ids"`
	Confidence       float64  `json:"confidence" yaml:"confidence"`
}

// Matched reports whether the analysis clears the acceptance threshold.
func (a Analysis) Matched(w Weights) bool {
	return len(a.SuggestedRuleIDs) > 0 && a.Confidence > w.AcceptThreshold
}

// preparedRule caches the normalised rule text shared by every question.
type preparedRule struct {
	id    int
	title string
	desc  string
}

func prepareRules(rules []curriculum.Rule) []preparedRule {
	out := make([]preparedRule, len(rules))
	for i, r := range rules {
		out[i] = preparedRule{
			id:    r.ID,
			title: canonical(normalize(r.Title)),
			desc:  canonical(normalize(r.Description)),
		}
	}
	return out
}

// Analyze returns one Analysis per question, in question order.
func Analyze(rules []curriculum.Rule, questions []curriculum.Question, w Weights) []Analysis {
	prepared := prepareRules(rules)
	out := make([]Analysis, len(questions))
	for i, q := range questions {
		out[i] = analyzeOne(prepared, q, w)
	}
	return out
}

// AnalyzeConcurrent is Analyze spread over up to workers goroutines. Each
// result is written to its question's index, so the output is identical to
// Analyze. The only error is cancellation of ctx.
func AnalyzeConcurrent(ctx context.Context, rules []curriculum.Rule, questions []curriculum.Question, w Weights, workers int) ([]Analysis, error) {
	if workers < 1 {
		workers = 1
	}
	prepared := prepareRules(rules)
	out := make([]Analysis, len(questions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range questions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = analyzeOne(prepared, questions[i], w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func analyzeOne(rules []preparedRule, q curriculum.Question, w Weights) Analysis {
	hints := ExtractHints(q.Text)
	keywords := ExtractKeywords(hints)
	suggested := rankRules(rules, hints, keywords, w)

	return Analysis{
		QuestionID:       q.ID,
		Hints:            hints,
		Keywords:         keywords,
		SuggestedRuleIDs: suggested,
		Confidence:       confidence(len(hints), len(keywords), len(suggested), w),
	}
}

type candidate struct {
	id    int
	score int
}

// rankRules scores every rule and returns the ids of the best ones. Ties
// keep rule input order. A repeated rule id is scored only the first time
// it appears.
func rankRules(rules []preparedRule, hints, keywords []string, w Weights) []int {
	canonHints := make([]string, len(hints))
	for i, h := range hints {
		canonHints[i] = canonical(h)
	}

	var cands []candidate
	seen := make(map[int]bool, len(rules))
	for _, r := range rules {
		if seen[r.id] {
			continue
		}
		seen[r.id] = true
		if s := scoreRule(r, canonHints, keywords, w); s > 0 {
			cands = append(cands, candidate{id: r.id, score: s})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].score > cands[j].score
	})

	n := min(len(cands), w.MaxSuggestions)
	ids := make([]int, n)
	for i := range n {
		ids[i] = cands[i].id
	}
	return ids
}

// ScoreRule exposes the score of a single rule against a question, for
// explaining results.
func ScoreRule(rule curriculum.Rule, questionText string, w Weights) int {
	hints := ExtractHints(questionText)
	canonHints := make([]string, len(hints))
	for i, h := range hints {
		canonHints[i] = canonical(h)
	}
	return scoreRule(prepareRules([]curriculum.Rule{rule})[0], canonHints, ExtractKeywords(hints), w)
}

func scoreRule(r preparedRule, hints, keywords []string, w Weights) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(r.title, kw) {
			score += w.TitleKeyword
		}
		if strings.Contains(r.desc, kw) {
			score += w.DescriptionKeyword
		}
	}
	for _, h := range hints {
		for _, p := range patternPhrases {
			if strings.Contains(h, p) && strings.Contains(r.title, p) {
				score += w.PhraseBonus
			}
		}
		for _, term := range instructionTerms {
			if usesTerm(h, term) && strings.Contains(r.title, term) {
				score += w.TermBonus
			}
		}
	}
	return score
}

// confidence weighs the evidence behind a suggestion. It is a heuristic
// in [0, 1], not a probability.
func confidence(hints, keywords, suggestions int, w Weights) float64 {
	if suggestions == 0 {
		return 0
	}
	c := w.BaseConfidence
	c += math.Min(w.HintStep*float64(hints), w.HintCap)
	c += math.Min(w.KeywordStep*float64(keywords), w.KeywordCap)
	if suggestions > 1 {
		c += w.MultiRuleBonus
	}
	return math.Min(c, 1.0)
}
