package unmatched

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/screen"
	"github.com/abhisek/grammatch/internal/ui/components"
	"github.com/abhisek/grammatch/internal/ui/layout"
	"github.com/abhisek/grammatch/internal/ui/theme"
)

// UnmatchedScreen lists the questions the matcher could not classify.
type UnmatchedScreen struct {
	data      screen.TopicData
	questions []curriculum.Question
	list      components.List
}

var _ screen.Screen = (*UnmatchedScreen)(nil)
var _ screen.StatusProvider = (*UnmatchedScreen)(nil)

func New(data screen.TopicData) *UnmatchedScreen {
	byID := make(map[string]curriculum.Question, len(data.Topic.Questions))
	for _, q := range data.Topic.Questions {
		byID[q.ID] = q
	}

	s := &UnmatchedScreen{data: data}
	items := make([]components.ListItem, 0, len(data.Result.Unmatched))
	for _, id := range data.Result.Unmatched {
		q, ok := byID[id]
		if !ok {
			continue
		}
		s.questions = append(s.questions, q)
		items = append(items, components.ListItem{Label: q.ID, Badge: q.Board})
	}
	s.list = components.NewList(items)
	return s
}

func (s *UnmatchedScreen) Init() tea.Cmd { return nil }

func (s *UnmatchedScreen) Title() string { return s.data.Topic.Title + " · Unmatched" }

func (s *UnmatchedScreen) Status() string {
	return fmt.Sprintf("%d of %d", len(s.questions), len(s.data.Topic.Questions))
}

// Questions returns the unmatched questions in result order.
func (s *UnmatchedScreen) Questions() []curriculum.Question { return s.questions }

func (s *UnmatchedScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *UnmatchedScreen) View(width, height int) string {
	if len(s.questions) == 0 {
		return theme.Matched.Render("  Every question matched a rule.")
	}

	detail := s.detail(s.questions[s.list.Selected], width)
	listHeight := max(height-lipgloss.Height(detail)-1, 1)
	return s.list.View(width, listHeight) + "\n\n" + detail
}

func (s *UnmatchedScreen) detail(q curriculum.Question, width int) string {
	inner := max(width-6, 10)
	lines := []string{theme.Body.Width(inner).Render(q.Text)}

	a, ok := s.data.Result.AnalysisFor(q.ID)
	if ok {
		hints := "none"
		if len(a.Hints) > 0 {
			hints = strings.Join(a.Hints, " · ")
		}
		lines = append(lines, theme.Hint.Render(layout.Truncate("hints: "+hints, inner)))
		if len(a.Keywords) > 0 {
			lines = append(lines, theme.Keyword.Render(layout.Truncate("keywords: "+strings.Join(a.Keywords, ", "), inner)))
		}
		if len(a.SuggestedRuleIDs) > 0 {
			ids := make([]string, len(a.SuggestedRuleIDs))
			for i, id := range a.SuggestedRuleIDs {
				ids[i] = fmt.Sprint(id)
			}
			lines = append(lines, theme.Subtitle.Render("below threshold: rules "+strings.Join(ids, ", ")))
		}
		lines = append(lines, components.ConfidenceBar{
			Value:     a.Confidence,
			Width:     min(inner, 40),
			Threshold: s.data.Weights.AcceptThreshold,
		}.View())
	}
	return theme.Card.Width(max(width-2, 12)).Render(strings.Join(lines, "\n"))
}
