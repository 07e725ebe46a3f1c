package report

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grammatch/internal/matcher"
	"github.com/abhisek/grammatch/internal/ui/theme"
)

// WriteText renders r for a terminal. Colour is dropped when w is not one.
func WriteText(w io.Writer, r Report) error {
	var b strings.Builder

	b.WriteString(theme.Title.Render(r.Topic.Title))
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %s · %s", r.Topic.Slug, r.Topic.Level)))
	b.WriteString("\n\n")

	for _, rule := range r.Rules {
		head := fmt.Sprintf("%2d. %s", rule.ID, rule.Title)
		if len(rule.Questions) == 0 {
			b.WriteString(theme.Subtitle.Render(head + "  (none)"))
			b.WriteString("\n")
			continue
		}
		b.WriteString(theme.Body.Render(head))
		b.WriteString("\n")
		for _, q := range rule.Questions {
			b.WriteString(fmt.Sprintf("      %s %s\n", theme.Keyword.Render(q.ID), theme.Subtitle.Render(fmt.Sprintf("%.2f", q.Confidence))))
		}
	}

	if len(r.Unmatched) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Unmatched.Render(fmt.Sprintf("Unmatched (%d)", len(r.Unmatched))))
		b.WriteString("\n")
		for _, u := range r.Unmatched {
			hints := strings.Join(u.Hints, " · ")
			if hints == "" {
				hints = "no hints"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", theme.Keyword.Render(u.ID), theme.Hint.Render(hints)))
		}
	}

	if len(r.Advice) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Title.Render("Advice"))
		b.WriteString("\n")
		for _, a := range r.Advice {
			switch {
			case a.Err != "":
				b.WriteString(fmt.Sprintf("  %s %s\n", a.QuestionID, theme.Unmatched.Render("error: "+a.Err)))
			case a.Suggestion == nil || !a.Suggestion.Found():
				b.WriteString(fmt.Sprintf("  %s %s\n", a.QuestionID, theme.Subtitle.Render("no rule fits")))
			default:
				b.WriteString(fmt.Sprintf("  %s → rule %d %s  %s\n", a.QuestionID, *a.Suggestion.RuleID,
					theme.Subtitle.Render(fmt.Sprintf("(%.2f)", a.Suggestion.Confidence)), a.Suggestion.Reasoning))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(StatsTable(r.Stats))

	if _, err := lipgloss.Fprintln(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// StatsTable renders s as aligned label/value rows.
func StatsTable(s matcher.Stats) string {
	rows := [][2]string{
		{"questions", fmt.Sprint(s.TotalQuestions)},
		{"matched", fmt.Sprint(s.MatchedQuestions)},
		{"unmatched", fmt.Sprint(s.UnmatchedQuestions)},
		{"avg confidence", fmt.Sprintf("%.2f", s.AverageConfidence)},
		{"rules with questions", fmt.Sprint(s.RulesWithQuestions)},
		{"rules without", fmt.Sprint(s.RulesWithoutQuestions)},
	}
	var b strings.Builder
	for i, row := range rows {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%-22s", row[0])))
		b.WriteString(theme.Body.Render(row[1]))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
