package ruledetail

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/matcher"
	"github.com/abhisek/grammatch/internal/screen"
	"github.com/abhisek/grammatch/internal/ui/components"
	"github.com/abhisek/grammatch/internal/ui/layout"
	"github.com/abhisek/grammatch/internal/ui/theme"
)

// RuleDetailScreen shows one rule and the questions mapped to it.
type RuleDetailScreen struct {
	data      screen.TopicData
	rule      curriculum.Rule
	questions []curriculum.Question
	top       int
}

var _ screen.Screen = (*RuleDetailScreen)(nil)
var _ screen.KeyHintProvider = (*RuleDetailScreen)(nil)
var _ screen.StatusProvider = (*RuleDetailScreen)(nil)

func New(data screen.TopicData, rule curriculum.Rule) *RuleDetailScreen {
	return &RuleDetailScreen{
		data:      data,
		rule:      rule,
		questions: matcher.QuestionsForRule(rule.ID, data.Result.Mapping, data.Topic.Questions),
	}
}

func (s *RuleDetailScreen) Init() tea.Cmd { return nil }

func (s *RuleDetailScreen) Title() string { return fmt.Sprintf("Rule %d", s.rule.ID) }

func (s *RuleDetailScreen) Status() string {
	return fmt.Sprintf("%d questions", len(s.questions))
}

func (s *RuleDetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
}

// Questions returns the questions shown, in mapping order.
func (s *RuleDetailScreen) Questions() []curriculum.Question { return s.questions }

func (s *RuleDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.top > 0 {
				s.top--
			}
		case "down", "j":
			if s.top < len(s.questions)-1 {
				s.top++
			}
		case "home", "g":
			s.top = 0
		}
	}
	return s, nil
}

func (s *RuleDetailScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(layout.Truncate(s.rule.Title, width-2)))
	b.WriteString("\n")
	if s.rule.Description != "" {
		b.WriteString(theme.Subtitle.Width(max(width-2, 10)).Render(s.rule.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(s.questions) == 0 {
		b.WriteString(theme.Hint.Render("  No questions map to this rule."))
		return b.String()
	}

	used := lipgloss.Height(b.String())
	for i := s.top; i < len(s.questions); i++ {
		card := s.card(s.questions[i], width)
		h := lipgloss.Height(card)
		if used+h > height && i > s.top {
			break
		}
		b.WriteString(card)
		b.WriteString("\n")
		used += h
	}
	return b.String()
}

func (s *RuleDetailScreen) card(q curriculum.Question, width int) string {
	inner := max(width-6, 10)
	head := theme.Keyword.Render(q.ID)
	if q.Board != "" {
		head += theme.Subtitle.Render(fmt.Sprintf("  %s %d", q.Board, q.Year))
	}
	lines := []string{head, theme.Body.Width(inner).Render(q.Text)}

	if a, ok := s.data.Result.AnalysisFor(q.ID); ok {
		if len(a.Hints) > 0 {
			lines = append(lines, theme.Hint.Render(layout.Truncate("hints: "+strings.Join(a.Hints, " · "), inner)))
		}
		lines = append(lines, components.ConfidenceBar{
			Value:     a.Confidence,
			Width:     min(inner, 40),
			Threshold: s.data.Weights.AcceptThreshold,
		}.View())
	}
	return theme.Card.Width(max(width-2, 12)).Render(strings.Join(lines, "\n"))
}
