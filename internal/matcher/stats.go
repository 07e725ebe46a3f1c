package matcher

// Stats summarises a matcher run.
type Stats struct {
	TotalQuestions        int     `json:"total_questions" yaml:"total_questions"`
	MatchedQuestions      int     `json:"matched_questions" yaml:"matched_questions"`
	UnmatchedQuestions    int     `json:"unmatched_questions" yaml:"unmatched_questions"`
	AverageConfidence     float64 `json:"average_confidence" yaml:"average_confidence"`
	RulesWithQuestions    int     `json:"rules_with_questions" yaml:"rules_with_questions"`
	RulesWithoutQuestions int     `json:"rules_without_questions" yaml:"rules_without_questions"`
}

// ComputeStats summarises r. The average confidence is taken over every
// analysis, matched or not.
func ComputeStats(r Result) Stats {
	s := Stats{
		TotalQuestions:     len(r.Analyses),
		UnmatchedQuestions: len(r.Unmatched),
	}
	s.MatchedQuestions = s.TotalQuestions - s.UnmatchedQuestions

	if len(r.Analyses) > 0 {
		var sum float64
		for _, a := range r.Analyses {
			sum += a.Confidence
		}
		s.AverageConfidence = sum / float64(len(r.Analyses))
	}

	for _, ids := range r.Mapping {
		if len(ids) > 0 {
			s.RulesWithQuestions++
		} else {
			s.RulesWithoutQuestions++
		}
	}
	return s
}
