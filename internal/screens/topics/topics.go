package topics

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/matcher"
	"github.com/abhisek/grammatch/internal/router"
	"github.com/abhisek/grammatch/internal/screen"
	"github.com/abhisek/grammatch/internal/screens/rules"
	"github.com/abhisek/grammatch/internal/screens/unmatched"
	"github.com/abhisek/grammatch/internal/ui/components"
	"github.com/abhisek/grammatch/internal/ui/layout"
	"github.com/abhisek/grammatch/internal/ui/theme"
)

// TopicsScreen is the browser's home: one row per topic with its match rate.
type TopicsScreen struct {
	data []screen.TopicData
	list components.List
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.StatusProvider = (*TopicsScreen)(nil)

func New(data []screen.TopicData) *TopicsScreen {
	items := make([]components.ListItem, len(data))
	for i, d := range data {
		st := matcher.ComputeStats(d.Result)
		items[i] = components.ListItem{
			Label: fmt.Sprintf("%s  [%s]", d.Topic.Title, d.Topic.Level),
			Badge: fmt.Sprintf("%d/%d matched", st.MatchedQuestions, st.TotalQuestions),
			Dim:   st.TotalQuestions == 0,
		}
	}
	return &TopicsScreen{data: data, list: components.NewList(items)}
}

func (s *TopicsScreen) Init() tea.Cmd { return nil }

func (s *TopicsScreen) Title() string { return "Topics" }

func (s *TopicsScreen) Status() string {
	return fmt.Sprintf("%d topics", len(s.data))
}

func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Rules"},
		{Key: "u", Description: "Unmatched"},
	}
}

// Selected returns the highlighted topic, if any.
func (s *TopicsScreen) Selected() (screen.TopicData, bool) {
	if len(s.data) == 0 {
		return screen.TopicData{}, false
	}
	return s.data[s.list.Selected], true
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		d, ok := s.Selected()
		switch kmsg.String() {
		case "enter":
			if ok {
				return s, router.Push(rules.New(d))
			}
			return s, nil
		case "u":
			if ok {
				return s, router.Push(unmatched.New(d))
			}
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *TopicsScreen) View(width, height int) string {
	d, ok := s.Selected()
	if !ok {
		return theme.Hint.Render("  No topics loaded.")
	}

	summary := s.summary(d, width)
	listHeight := max(height-lipgloss.Height(summary)-1, 1)
	return s.list.View(width, listHeight) + "\n\n" + summary
}

func (s *TopicsScreen) summary(d screen.TopicData, width int) string {
	st := matcher.ComputeStats(d.Result)
	lines := []string{
		theme.Title.Render(d.Topic.Title) + theme.Subtitle.Render("  "+curriculum.LevelDisplayName(d.Topic.Level)),
		fmt.Sprintf("%d rules · %d questions · %d unmatched", len(d.Topic.Rules), st.TotalQuestions, st.UnmatchedQuestions),
		fmt.Sprintf("rules with questions %d · without %d", st.RulesWithQuestions, st.RulesWithoutQuestions),
		"average confidence " + components.ConfidenceBar{Value: st.AverageConfidence, Width: 24}.View(),
	}
	if boards := curriculum.Boards(d.Topic.Questions); len(boards) > 0 {
		lines = append(lines, theme.Subtitle.Render(layout.Truncate("boards: "+strings.Join(boards, ", "), width-4)))
	}
	return theme.Card.Width(max(width-2, 10)).Render(strings.Join(lines, "\n"))
}
