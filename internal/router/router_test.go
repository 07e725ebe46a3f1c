package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grammatch/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	topics := &stubScreen{title: "Topics"}
	r := New(topics)

	rules := &stubScreen{title: "Rules"}
	r.Push(rules)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "Rules" {
		t.Errorf("expected active 'Rules', got %q", r.Active().Title())
	}
	if !rules.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	r := New(&stubScreen{title: "Topics"})
	r.Push(&stubScreen{title: "Rules"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "Topics" {
		t.Errorf("expected active 'Topics', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "Topics"})
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	r := New(&stubScreen{title: "Topics"})
	r.Push(&stubScreen{title: "Rules"})

	detail := &stubScreen{title: "Rule 4"}
	r.Replace(detail)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "Rule 4" {
		t.Errorf("expected active 'Rule 4', got %q", r.Active().Title())
	}
	if !detail.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestNavigationMessages(t *testing.T) {
	tests := []struct {
		name      string
		msgs      func(s screen.Screen) []tea.Msg
		wantDepth int
		wantTitle string
	}{
		{
			name:      "push",
			msgs:      func(s screen.Screen) []tea.Msg { return []tea.Msg{PushScreenMsg{Screen: s}} },
			wantDepth: 2,
			wantTitle: "Unmatched",
		},
		{
			name:      "push then pop",
			msgs:      func(s screen.Screen) []tea.Msg { return []tea.Msg{PushScreenMsg{Screen: s}, PopScreenMsg{}} },
			wantDepth: 1,
			wantTitle: "Topics",
		},
		{
			name:      "replace",
			msgs:      func(s screen.Screen) []tea.Msg { return []tea.Msg{ReplaceScreenMsg{Screen: s}} },
			wantDepth: 1,
			wantTitle: "Unmatched",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubScreen{title: "Topics"})
			for _, msg := range tt.msgs(&stubScreen{title: "Unmatched"}) {
				r.Update(msg)
			}
			if r.Depth() != tt.wantDepth {
				t.Errorf("depth = %d, want %d", r.Depth(), tt.wantDepth)
			}
			if got := r.Active().Title(); got != tt.wantTitle {
				t.Errorf("active = %q, want %q", got, tt.wantTitle)
			}
		})
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "Topics"}
	top := &stubScreen{title: "Rules"}
	r := New(bottom)
	r.Push(top)

	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if top.updates != 1 {
		t.Errorf("expected active screen to get 1 update, got %d", top.updates)
	}
	if bottom.updates != 0 {
		t.Errorf("expected covered screen to get no updates, got %d", bottom.updates)
	}
}

func TestCommandHelpers(t *testing.T) {
	s := &stubScreen{title: "Rules"}
	msg := Push(s)()
	push, ok := msg.(PushScreenMsg)
	if !ok || push.Screen != s {
		t.Errorf("Push() emitted %#v", msg)
	}
	if _, ok := Pop().(PopScreenMsg); !ok {
		t.Error("Pop() should emit PopScreenMsg")
	}
}

func TestView(t *testing.T) {
	r := New(&stubScreen{title: "Topics"})
	if got := r.View(80, 20); got != "Topics" {
		t.Errorf("View() = %q", got)
	}
}
