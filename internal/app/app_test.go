package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grammatch/internal/curriculum"
	"github.com/abhisek/grammatch/internal/matcher"
	"github.com/abhisek/grammatch/internal/router"
	"github.com/abhisek/grammatch/internal/screen"
	"github.com/abhisek/grammatch/internal/screens/ruledetail"
	"github.com/abhisek/grammatch/internal/screens/rules"
	"github.com/abhisek/grammatch/internal/screens/topics"
	"github.com/abhisek/grammatch/internal/screens/unmatched"
)

func builtinData(t *testing.T) ([]screen.TopicData, int) {
	t.Helper()
	w := matcher.DefaultWeights()
	idx := -1
	var data []screen.TopicData
	for i, tp := range curriculum.AllTopics() {
		if tp.Slug == "modifiers" {
			idx = i
		}
		data = append(data, screen.TopicData{
			Topic:   tp,
			Result:  matcher.Match(tp.Rules, tp.Questions, w),
			Weights: w,
		})
	}
	if idx < 0 {
		t.Fatal("modifiers topic not found")
	}
	return data, idx
}

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

// send delivers msg and, when the reply is a navigation message, feeds it
// back the way the runtime would. Other commands are dropped.
func send(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(AppModel)
	if cmd == nil {
		return m, nil
	}
	switch next := cmd().(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		updated, _ = m.Update(next)
		return updated.(AppModel), nil
	}
	return m, cmd
}

// typeKeys delivers each rune without running the returned commands, since
// a focused text input answers with cursor blink ticks.
func typeKeys(m AppModel, s string) AppModel {
	for _, r := range s {
		updated, _ := m.Update(keyPress(string(r)))
		m = updated.(AppModel)
	}
	return m
}

func TestBrowseFlow(t *testing.T) {
	data, idx := builtinData(t)
	m := NewAppModel(data)

	if _, ok := m.router.Active().(*topics.TopicsScreen); !ok {
		t.Fatalf("expected topics screen at start, got %T", m.router.Active())
	}
	for range idx {
		m, _ = send(t, m, keyPress("down"))
	}

	m, _ = send(t, m, keyPress("enter"))
	rs, ok := m.router.Active().(*rules.RulesScreen)
	if !ok {
		t.Fatalf("expected rules screen, got %T", m.router.Active())
	}
	if got := len(rs.Shown()); got != len(data[idx].Topic.Rules) {
		t.Errorf("expected all %d rules listed, got %d", len(data[idx].Topic.Rules), got)
	}

	// Search narrows the list and esc clears it without leaving the screen.
	updated, _ := m.Update(keyPress("/"))
	m = updated.(AppModel)
	if !rs.CapturingInput() {
		t.Fatal("expected search to capture input after /")
	}
	m = typeKeys(m, "participle")
	found := false
	for _, r := range rs.Shown() {
		if r.ID == 4 {
			found = true
		}
	}
	if !found || len(rs.Shown()) >= len(data[idx].Topic.Rules) {
		t.Errorf("search did not narrow to participle rules: %v", rs.Shown())
	}

	m, _ = send(t, m, keyPress("esc"))
	if m.router.Depth() != 2 {
		t.Fatalf("esc while searching should not pop, depth %d", m.router.Depth())
	}
	if rs.CapturingInput() || len(rs.Shown()) != len(data[idx].Topic.Rules) {
		t.Errorf("esc should end the search and restore all rules")
	}

	// First rule lists its mapped questions.
	m, _ = send(t, m, keyPress("enter"))
	rd, ok := m.router.Active().(*ruledetail.RuleDetailScreen)
	if !ok {
		t.Fatalf("expected rule detail screen, got %T", m.router.Active())
	}
	ids := map[string]bool{}
	for _, q := range rd.Questions() {
		ids[q.ID] = true
	}
	if !ids["mod-dhaka-2023-a"] {
		t.Errorf("rule 1 should list mod-dhaka-2023-a, got %v", ids)
	}

	m, _ = send(t, m, keyPress("esc"))
	m, _ = send(t, m, keyPress("esc"))
	if m.router.Depth() != 1 {
		t.Fatalf("expected to be back on topics, depth %d", m.router.Depth())
	}
	m, _ = send(t, m, keyPress("esc"))
	if m.router.Depth() != 1 {
		t.Errorf("esc at the bottom should be a no-op")
	}

	m, _ = send(t, m, keyPress("u"))
	us, ok := m.router.Active().(*unmatched.UnmatchedScreen)
	if !ok {
		t.Fatalf("expected unmatched screen, got %T", m.router.Active())
	}
	got := map[string]bool{}
	for _, q := range us.Questions() {
		got[q.ID] = true
	}
	if len(got) != 2 || !got["mod-sylhet-2018-b"] || !got["mod-chattogram-2016-a"] {
		t.Errorf("unexpected unmatched questions: %v", got)
	}
}

func TestQuit(t *testing.T) {
	data, _ := builtinData(t)
	for _, key := range []tea.KeyPressMsg{keyPress("q"), {Code: 'c', Mod: tea.ModCtrl}} {
		_, cmd := NewAppModel(data).Update(key)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected QuitMsg", key)
		}
	}
}

func TestQuitKeyTypesWhileSearching(t *testing.T) {
	data, idx := builtinData(t)
	m := NewAppModel(data)
	for range idx {
		m, _ = send(t, m, keyPress("down"))
	}
	m, _ = send(t, m, keyPress("enter"))
	updated, _ := m.Update(keyPress("/"))
	m = updated.(AppModel)

	updated, cmd := m.Update(keyPress("q"))
	m = updated.(AppModel)
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("q should type into the search box, not quit")
		}
	}
	rs := m.router.Active().(*rules.RulesScreen)
	if !rs.CapturingInput() {
		t.Error("search should still be active")
	}
}

func TestScreenViews(t *testing.T) {
	data, idx := builtinData(t)
	d := data[idx]

	views := map[string]screen.Screen{
		"topics":     topics.New(data),
		"rules":      rules.New(d),
		"ruledetail": ruledetail.New(d, d.Topic.Rules[0]),
		"unmatched":  unmatched.New(d),
	}
	for name, s := range views {
		t.Run(name, func(t *testing.T) {
			if s.Title() == "" {
				t.Error("empty title")
			}
			if s.View(80, 20) == "" {
				t.Error("empty view")
			}
		})
	}
}
