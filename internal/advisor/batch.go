package advisor

import (
	"context"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/matcher"
	"golang.org/x/sync/errgroup"
)

// Advice pairs an unmatched question with the model's suggestion, or with
// the error that prevented one.
type Advice struct {
	QuestionID string      `json:"question_id" yaml:"question_id"`
	Hints      []string    `json:"hints" yaml:"hints"`
	Suggestion *Suggestion `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Err        string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// AdviseUnmatched asks adv about every question in unmatchedIDs, running
// up to workers requests at a time. Results keep the order of unmatchedIDs.
// A failed question is recorded on its Advice; only cancellation of ctx
// aborts the batch.
func AdviseUnmatched(ctx context.Context, adv *Advisor, rules []curriculum.Rule, questions []curriculum.Question, unmatchedIDs []string, workers int) ([]Advice, error) {
	byID := make(map[string]curriculum.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	if workers < 1 {
		workers = 1
	}

	out := make([]Advice, len(unmatchedIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, id := range unmatchedIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			q, ok := byID[id]
			out[i] = Advice{QuestionID: id, Hints: matcher.ExtractHints(q.Text)}
			if !ok {
				out[i].Err = "unknown question"
				return nil
			}
			s, err := adv.Suggest(gctx, q, rules)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				out[i].Err = err.Error()
				return nil
			}
			out[i].Suggestion = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
