package rules

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/router"
	"github.com/abhisek/grammatch/internal/screen"
	"github.com/abhisek/grammatch/internal/screens/ruledetail"
	"github.com/abhisek/grammatch/internal/ui/components"
	"github.com/abhisek/grammatch/internal/ui/layout"
	"github.com/abhisek/grammatch/internal/ui/theme"
)

// RulesScreen lists a topic's rules with their mapped question counts.
type RulesScreen struct {
	data    screen.TopicData
	shown   []curriculum.Rule
	list    components.List
	search  components.SearchInput
	lastQry string
}

var _ screen.Screen = (*RulesScreen)(nil)
var _ screen.KeyHintProvider = (*RulesScreen)(nil)
var _ screen.StatusProvider = (*RulesScreen)(nil)
var _ screen.InputCapturer = (*RulesScreen)(nil)

func New(data screen.TopicData) *RulesScreen {
	s := &RulesScreen{
		data:   data,
		search: components.NewSearchInput("search rules"),
	}
	s.filter("")
	return s
}

func (s *RulesScreen) Init() tea.Cmd { return nil }

func (s *RulesScreen) Title() string { return s.data.Topic.Title + " · Rules" }

func (s *RulesScreen) Status() string {
	return fmt.Sprintf("%d/%d rules", len(s.shown), len(s.data.Topic.Rules))
}

func (s *RulesScreen) CapturingInput() bool { return s.search.Editing() }

func (s *RulesScreen) KeyHints() []layout.KeyHint {
	if s.search.Editing() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Questions"},
		{Key: "/", Description: "Search"},
	}
}

// Shown returns the rules currently listed, after the search filter.
func (s *RulesScreen) Shown() []curriculum.Rule { return s.shown }

func (s *RulesScreen) filter(q string) {
	s.lastQry = q
	s.shown = curriculum.SearchRules(s.data.Topic.Rules, q)
	items := make([]components.ListItem, len(s.shown))
	for i, r := range s.shown {
		n := len(s.data.Result.Mapping[r.ID])
		items[i] = components.ListItem{
			Label: fmt.Sprintf("%2d. %s", r.ID, r.Title),
			Badge: fmt.Sprintf("%d q", n),
			Dim:   n == 0,
		}
	}
	s.list.SetItems(items)
}

func (s *RulesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.search.Editing() {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		if q := s.search.Value(); q != s.lastQry {
			s.filter(q)
		}
		return s, cmd
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "/":
			return s, s.search.Start()
		case "enter":
			if len(s.shown) == 0 {
				return s, nil
			}
			return s, router.Push(ruledetail.New(s.data, s.shown[s.list.Selected]))
		}
	}
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *RulesScreen) View(width, height int) string {
	var top string
	if s.search.Editing() || s.search.Value() != "" {
		top = s.search.View() + "\n\n"
	} else {
		top = theme.Subtitle.Render(fmt.Sprintf("  %d questions mapped across %d rules", s.mappedCount(), len(s.data.Topic.Rules))) + "\n\n"
	}
	return top + s.list.View(width, max(height-2, 1))
}

func (s *RulesScreen) mappedCount() int {
	n := 0
	for _, ids := range s.data.Result.Mapping {
		n += len(ids)
	}
	return n
}
