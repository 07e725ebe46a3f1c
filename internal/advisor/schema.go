package advisor

import "github.com/abhisek/grammatch/internal/llm"

// SuggestionSchema constrains the model to pick one candidate rule or none.
var SuggestionSchema = &llm.Schema{
	Name:        "rule-suggestion",
	Description: "The grammar rule a practice question exercises, chosen from a candidate list",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"rule_id": map[string]any{
				"type":        []any{"integer", "null"},
				"description": "ID of the best matching rule from the candidate list, or null if none fits",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "How sure the choice is, from 0.0 to 1.0",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One sentence on which part of the question points to the rule",
			},
		},
		"required":             []any{"rule_id", "confidence", "reasoning"},
		"additionalProperties": false,
	},
}
