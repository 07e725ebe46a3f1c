package curriculum

import "strings"

// QuestionFilter narrows a question list. Zero fields match everything.
type QuestionFilter struct {
	Board string
	Year  int
	Text  string
}

// FilterQuestions returns the questions matching every set field of f, in
// input order. Board names compare by canonical spelling.
func FilterQuestions(qs []Question, f QuestionFilter) []Question {
	board := ""
	if f.Board != "" {
		board = CanonicalBoard(f.Board)
	}
	text := fold(f.Text)

	var out []Question
	for _, q := range qs {
		if board != "" && CanonicalBoard(q.Board) != board {
			continue
		}
		if f.Year != 0 && q.Year != f.Year {
			continue
		}
		if text != "" && !strings.Contains(fold(q.Text), text) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// SearchRules returns rules whose title or description contains text,
// case-insensitively. An empty query returns all rules.
func SearchRules(rules []Rule, text string) []Rule {
	q := fold(text)
	if q == "" {
		return rules
	}
	var out []Rule
	for _, r := range rules {
		if strings.Contains(fold(r.Title), q) || strings.Contains(fold(r.Description), q) {
			out = append(out, r)
		}
	}
	return out
}

// Boards returns the distinct canonical boards appearing in qs, in first
// appearance order.
func Boards(qs []Question) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range qs {
		if q.Board == "" {
			continue
		}
		b := CanonicalBoard(q.Board)
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}
