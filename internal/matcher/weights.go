package matcher

import "fmt"

// Weights holds the scoring and confidence constants of the matcher.
// The defaults are a hand-tuned heuristic with no labelled data behind
// them; override them for experiments, not to "fix" results.
type Weights struct {
	TitleKeyword       int `mapstructure:"title_keyword" json:"title_keyword" yaml:"title_keyword"`
	DescriptionKeyword int `mapstructure:"description_keyword" json:"description_keyword" yaml:"description_keyword"`
	PhraseBonus        int `mapstructure:"phrase_bonus" json:"phrase_bonus" yaml:"phrase_bonus"`
	TermBonus          int `mapstructure:"term_bonus" json:"term_bonus" yaml:"term_bonus"`
	MaxSuggestions     int `mapstructure:"max_suggestions" json:"max_suggestions" yaml:"max_suggestions"`

	BaseConfidence  float64 `mapstructure:"base_confidence" json:"base_confidence" yaml:"base_confidence"`
	HintStep        float64 `mapstructure:"hint_step" json:"hint_step" yaml:"hint_step"`
	HintCap         float64 `mapstructure:"hint_cap" json:"hint_cap" yaml:"hint_cap"`
	KeywordStep     float64 `mapstructure:"keyword_step" json:"keyword_step" yaml:"keyword_step"`
	KeywordCap      float64 `mapstructure:"keyword_cap" json:"keyword_cap" yaml:"keyword_cap"`
	MultiRuleBonus  float64 `mapstructure:"multi_rule_bonus" json:"multi_rule_bonus" yaml:"multi_rule_bonus"`
	AcceptThreshold float64 `mapstructure:"accept_threshold" json:"accept_threshold" yaml:"accept_threshold"`
}

// DefaultWeights returns the frozen production weights.
func DefaultWeights() Weights {
	return Weights{
		TitleKeyword:       3,
		DescriptionKeyword: 1,
		PhraseBonus:        5,
		TermBonus:          4,
		MaxSuggestions:     3,

		BaseConfidence:  0.3,
		HintStep:        0.1,
		HintCap:         0.3,
		KeywordStep:     0.05,
		KeywordCap:      0.2,
		MultiRuleBonus:  0.2,
		AcceptThreshold: 0.3,
	}
}

// Validate checks that every weight is usable.
func (w Weights) Validate() error {
	ints := []struct {
		name string
		v    int
	}{
		{"title_keyword", w.TitleKeyword},
		{"description_keyword", w.DescriptionKeyword},
		{"phrase_bonus", w.PhraseBonus},
		{"term_bonus", w.TermBonus},
	}
	for _, f := range ints {
		if f.v < 0 {
			return fmt.Errorf("weight %s must be >= 0, got %d", f.name, f.v)
		}
	}
	if w.MaxSuggestions < 1 {
		return fmt.Errorf("weight max_suggestions must be >= 1, got %d", w.MaxSuggestions)
	}

	unit := []struct {
		name string
		v    float64
	}{
		{"base_confidence", w.BaseConfidence},
		{"hint_step", w.HintStep},
		{"hint_cap", w.HintCap},
		{"keyword_step", w.KeywordStep},
		{"keyword_cap", w.KeywordCap},
		{"multi_rule_bonus", w.MultiRuleBonus},
		{"accept_threshold", w.AcceptThreshold},
	}
	for _, f := range unit {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("weight %s must be in [0, 1], got %g", f.name, f.v)
		}
	}
	return nil
}
