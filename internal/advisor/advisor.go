// Package advisor asks a language model for a second opinion on questions
// the heuristic matcher could not place. Its answers are reported next to
// the matcher's mapping and never change it.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/llm"
)

// Config tunes the requests sent to the model.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the advise command.
func DefaultConfig() Config {
	return Config{MaxTokens: 256, Temperature: 0.2}
}

// Advisor picks a rule for a question from a candidate list.
type Advisor struct {
	provider llm.Provider
	cfg      Config
}

func New(provider llm.Provider, cfg Config) *Advisor {
	return &Advisor{provider: provider, cfg: cfg}
}

// Suggestion is the model's verdict for one question. RuleID is nil when
// no candidate fits; zero is a valid rule ID.
type Suggestion struct {
	RuleID     *int    `json:"rule_id" yaml:"rule_id"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Reasoning  string  `json:"reasoning" yaml:"reasoning"`
}

// Found reports whether a candidate rule was chosen.
func (s Suggestion) Found() bool { return s.RuleID != nil }

type suggestionOutput struct {
	RuleID     *int    `json:"rule_id"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Suggest asks the model which of candidates q exercises. An ID outside
// candidates is treated as no suggestion.
func (a *Advisor) Suggest(ctx context.Context, q curriculum.Question, candidates []curriculum.Rule) (*Suggestion, error) {
	ctx = llm.WithPurpose(ctx, "advise")

	prompt, err := buildPrompt(q, candidates)
	if err != nil {
		return nil, fmt.Errorf("build advice prompt: %w", err)
	}

	req := llm.UserPrompt(systemPrompt, prompt, SuggestionSchema, a.cfg.MaxTokens)
	req.Temperature = a.cfg.Temperature

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM advice failed: %w", err)
	}

	var out suggestionOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse advice response: %w", err)
	}

	s := &Suggestion{Confidence: out.Confidence, Reasoning: out.Reasoning}
	if out.RuleID != nil && hasRule(candidates, *out.RuleID) {
		s.RuleID = out.RuleID
	}
	return s, nil
}

func hasRule(rules []curriculum.Rule, id int) bool {
	for _, r := range rules {
		if r.ID == id {
			return true
		}
	}
	return false
}

const systemPrompt = `You are an English grammar teacher preparing HSC and SSC board exam material in Bangladesh. You will see one practice question and a list of grammar rules. Decide which rule the question exercises.

Instructions:
- Read the blanks and any instruction in parentheses.
- If one listed rule clearly fits, return its ID.
- If none fits, return null for rule_id.
- Never invent rule IDs. Only use IDs from the list.
- Give a confidence between 0.0 and 1.0.
- Keep reasoning to one sentence.`

var promptTemplate = template.Must(template.New("advice").Parse(`Question: {{.Question.Text}}
{{if .Question.Board}}Board: {{.Question.Board}}{{if .Question.Year}} {{.Question.Year}}{{end}}
{{end}}{{if .Question.Answer}}Expected answer: {{.Question.Answer}}
{{end}}
Candidate rules:
{{range .Rules}}- {{.ID}}: {{.Title}}
{{end}}`))

func buildPrompt(q curriculum.Question, rules []curriculum.Rule) (string, error) {
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, struct {
		Question curriculum.Question
		Rules    []curriculum.Rule
	}{q, rules})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
